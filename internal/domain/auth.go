package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/crypto"
	"github.com/alumnet-lab/backend/pkg/enum"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
}

type authDomain struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	memberRepo repository.MemberRepository
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	tenantRepo repository.TenantRepository,
	memberRepo repository.MemberRepository,
) AuthDomain {
	return &authDomain{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		memberRepo: memberRepo,
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Require name")
	}

	if len(req.Password) < minPasswordLength {
		return nil, errorx.New(errorx.BadRequest, "Password must have at least %d characters", minPasswordLength)
	}

	role := entity.RoleAlumni
	if req.Role != "" {
		role, err = enum.ToEnum[entity.UserRole](req.Role)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid role")
		}
	}

	// Privileged roles are only granted by invitations or operators.
	if role != entity.RoleAlumni && role != entity.RoleStudent {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot register with role %s", role)
	}

	tenant, err := d.tenantRepo.GetByHandle(ctx, req.TenantHandle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found tenant")
		}

		xcontext.Logger(ctx).Errorf("Cannot get tenant: %v", err)
		return nil, errorx.Unknown
	}

	if !tenant.Active {
		return nil, errorx.New(errorx.Unavailable, "Tenant is inactive")
	}

	user, err := d.createUser(ctx, &entity.User{
		TenantID:       tenant.ID,
		Email:          email,
		Name:           req.Name,
		Role:           role,
		Department:     req.Department,
		GraduationYear: req.GraduationYear,
	}, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := generateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.RegisterResponse{User: convertUser(user, true), AccessToken: token}, nil
}

func (d *authDomain) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := d.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if !crypto.ComparePassword(user.Password, req.Password) {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	token, err := generateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{User: convertUser(user, true), AccessToken: token}, nil
}

func (d *authDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: convertUser(user, true)}, nil
}

func (d *authDomain) createUser(ctx context.Context, user *entity.User, password string) (*entity.User, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	user, err := createUserWithMember(ctx, d.userRepo, d.memberRepo, user, password)
	if err != nil {
		return nil, err
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit registration: %v", err)
		return nil, errorx.Unknown
	}

	return user, nil
}
