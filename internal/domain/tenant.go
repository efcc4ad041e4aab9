package domain

import (
	"context"
	"errors"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/router"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantDomain interface {
	Create(context.Context, *model.CreateTenantRequest) (*model.CreateTenantResponse, error)
	GetList(context.Context, *model.GetTenantsRequest) (*model.GetTenantsResponse, error)
	Get(context.Context, *model.GetTenantRequest) (*model.GetTenantResponse, error)
	Update(context.Context, *model.UpdateTenantRequest) (*model.UpdateTenantResponse, error)
}

type tenantDomain struct {
	tenantRepo   repository.TenantRepository
	roleVerifier *common.RoleVerifier
}

func NewTenantDomain(
	tenantRepo repository.TenantRepository,
	roleVerifier *common.RoleVerifier,
) TenantDomain {
	return &tenantDomain{tenantRepo: tenantRepo, roleVerifier: roleVerifier}
}

func (d *tenantDomain) Create(
	ctx context.Context, req *model.CreateTenantRequest,
) (*model.CreateTenantResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleSuperAdmin); err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Require name")
	}

	if err := checkTenantHandle(ctx, req.Handle); err != nil {
		return nil, err
	}

	_, err := d.tenantRepo.GetByHandle(ctx, req.Handle)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Handle is already taken")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get tenant by handle: %v", err)
		return nil, errorx.Unknown
	}

	tenant := &entity.Tenant{
		Base:   entity.Base{ID: uuid.NewString()},
		Name:   req.Name,
		Handle: req.Handle,
		Domain: req.Domain,
		Active: true,
	}
	if err := d.tenantRepo.Create(ctx, tenant); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create tenant: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateTenantResponse{ID: tenant.ID}, nil
}

func (d *tenantDomain) GetList(
	ctx context.Context, req *model.GetTenantsRequest,
) (*model.GetTenantsResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleSuperAdmin); err != nil {
		return nil, err
	}

	offset, limit, err := common.Paginate(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	tenants, total, err := d.tenantRepo.GetList(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tenant list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Tenant{}
	for i := range tenants {
		result = append(result, convertTenant(&tenants[i]))
	}

	return &model.GetTenantsResponse{
		Page:    router.NewPage(offset, limit, total),
		Tenants: result,
	}, nil
}

func (d *tenantDomain) Get(ctx context.Context, req *model.GetTenantRequest) (*model.GetTenantResponse, error) {
	if err := common.CheckTenant(ctx, req.ID); err != nil {
		return nil, err
	}

	tenant, err := d.tenantRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found tenant")
		}

		xcontext.Logger(ctx).Errorf("Cannot get tenant: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetTenantResponse{Tenant: convertTenant(tenant)}, nil
}

func (d *tenantDomain) Update(
	ctx context.Context, req *model.UpdateTenantRequest,
) (*model.UpdateTenantResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleSuperAdmin); err != nil {
		return nil, err
	}

	data := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, errorx.New(errorx.BadRequest, "Name cannot be empty")
		}
		data["name"] = *req.Name
	}

	if req.Domain != nil {
		data["domain"] = *req.Domain
	}

	if req.Active != nil {
		data["active"] = *req.Active
	}

	if len(data) == 0 {
		return &model.UpdateTenantResponse{}, nil
	}

	if err := d.tenantRepo.UpdateByID(ctx, req.ID, data); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found tenant")
		}

		xcontext.Logger(ctx).Errorf("Cannot update tenant: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateTenantResponse{}, nil
}
