package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/domain/notification"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/enum"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/storage"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BadgeDomain interface {
	GetList(context.Context, *model.GetBadgesRequest) (*model.GetBadgesResponse, error)
	Create(context.Context, *model.CreateBadgeRequest) (*model.CreateBadgeResponse, error)
	Update(context.Context, *model.UpdateBadgeRequest) (*model.UpdateBadgeResponse, error)
	Delete(context.Context, *model.DeleteBadgeRequest) (*model.DeleteBadgeResponse, error)
	UploadIcon(context.Context, *model.UploadBadgeIconRequest) (*model.UploadBadgeIconResponse, error)
	Award(context.Context, *model.AwardBadgeRequest) (*model.AwardBadgeResponse, error)
	Revoke(context.Context, *model.RevokeBadgeRequest) (*model.RevokeBadgeResponse, error)
	GetUserBadges(context.Context, *model.GetUserBadgesRequest) (*model.GetUserBadgesResponse, error)
}

type badgeDomain struct {
	badgeRepo     repository.BadgeRepository
	userBadgeRepo repository.UserBadgeRepository
	userRepo      repository.UserRepository
	memberRepo    repository.MemberRepository
	roleVerifier  *common.RoleVerifier
	storage       storage.Storage
	notifier      notification.Notifier
}

func NewBadgeDomain(
	badgeRepo repository.BadgeRepository,
	userBadgeRepo repository.UserBadgeRepository,
	userRepo repository.UserRepository,
	memberRepo repository.MemberRepository,
	roleVerifier *common.RoleVerifier,
	storage storage.Storage,
	notifier notification.Notifier,
) BadgeDomain {
	return &badgeDomain{
		badgeRepo:     badgeRepo,
		userBadgeRepo: userBadgeRepo,
		userRepo:      userRepo,
		memberRepo:    memberRepo,
		roleVerifier:  roleVerifier,
		storage:       storage,
		notifier:      notifier,
	}
}

func (d *badgeDomain) GetList(ctx context.Context, req *model.GetBadgesRequest) (*model.GetBadgesResponse, error) {
	tenantID, err := common.ResolveTenantID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	badges, err := d.badgeRepo.GetList(ctx, repository.BadgeFilter{
		TenantID:     tenantID,
		CriteriaType: entity.BadgeCriteriaType(req.CriteriaType),
		OnlyActive:   !(common.IsAdmin(ctx) && req.IncludeInactive),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get badges: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Badge{}
	for i := range badges {
		result = append(result, convertBadge(&badges[i]))
	}

	return &model.GetBadgesResponse{Badges: result}, nil
}

func (d *badgeDomain) Create(
	ctx context.Context, req *model.CreateBadgeRequest,
) (*model.CreateBadgeResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		return nil, err
	}

	var tenantID sql.NullString
	if req.Global {
		if !common.IsSuperAdmin(ctx) {
			return nil, errorx.New(errorx.PermissionDenied, "Only super admins can create global badges")
		}
	} else {
		id, err := common.ResolveTenantID(ctx, req.TenantID)
		if err != nil {
			return nil, err
		}
		tenantID = sql.NullString{Valid: true, String: id}
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, errorx.New(errorx.BadRequest, "Require name")
	}

	criteria, err := enum.ToEnum[entity.BadgeCriteriaType](req.CriteriaType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid criteria type")
	}

	if criteria != entity.BadgeCriteriaManual && req.CriteriaValue == 0 {
		return nil, errorx.New(errorx.BadRequest, "Require a positive criteria value")
	}

	if err := d.checkNameAvailable(ctx, req.Name); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	b := &entity.Badge{
		Base:                entity.Base{ID: uuid.NewString()},
		TenantID:            tenantID,
		Name:                req.Name,
		Category:            req.Category,
		Icon:                req.Icon,
		Color:               req.Color,
		CriteriaType:        criteria,
		CriteriaValue:       req.CriteriaValue,
		CriteriaDescription: req.CriteriaDescription,
		Points:              req.Points,
		Active:              active,
		Rare:                req.Rare,
		MaxRecipients:       req.MaxRecipients,
	}

	if err := d.badgeRepo.Create(ctx, b); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create badge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateBadgeResponse{ID: b.ID}, nil
}

func (d *badgeDomain) Update(
	ctx context.Context, req *model.UpdateBadgeRequest,
) (*model.UpdateBadgeResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		return nil, err
	}

	b, err := d.getManagedBadge(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	data := map[string]any{}
	if req.Name != nil && *req.Name != b.Name {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, errorx.New(errorx.BadRequest, "Name cannot be empty")
		}

		if err := d.checkNameAvailable(ctx, *req.Name); err != nil {
			return nil, err
		}

		data["name"] = *req.Name
	}

	if req.Category != nil {
		data["category"] = *req.Category
	}

	if req.Icon != nil {
		data["icon"] = *req.Icon
	}

	if req.Color != nil {
		data["color"] = *req.Color
	}

	if req.CriteriaDescription != nil {
		data["criteria_description"] = *req.CriteriaDescription
	}

	if req.Points != nil {
		data["points"] = *req.Points
	}

	if req.Active != nil {
		data["active"] = *req.Active
	}

	if req.Rare != nil {
		data["rare"] = *req.Rare
	}

	if req.MaxRecipients != nil {
		if *req.MaxRecipients != 0 && *req.MaxRecipients < b.CurrentRecipients {
			return nil, errorx.New(errorx.BadRequest,
				"Max recipients cannot be lower than current recipients (%d)", b.CurrentRecipients)
		}
		data["max_recipients"] = *req.MaxRecipients
	}

	if len(data) == 0 {
		return &model.UpdateBadgeResponse{}, nil
	}

	if err := d.badgeRepo.UpdateByID(ctx, b.ID, data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update badge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateBadgeResponse{}, nil
}

func (d *badgeDomain) Delete(
	ctx context.Context, req *model.DeleteBadgeRequest,
) (*model.DeleteBadgeResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		return nil, err
	}

	b, err := d.getManagedBadge(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.badgeRepo.DeleteByID(ctx, b.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete badge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteBadgeResponse{}, nil
}

func (d *badgeDomain) UploadIcon(
	ctx context.Context, req *model.UploadBadgeIconRequest,
) (*model.UploadBadgeIconResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		return nil, err
	}

	b, err := d.getManagedBadge(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	resp, err := common.ProcessImage(ctx, d.storage, "image", "badges")
	if err != nil {
		return nil, err
	}

	if err := d.badgeRepo.UpdateByID(ctx, b.ID, map[string]any{"icon": resp.URL}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update icon of badge: %v", err)
		return nil, errorx.Unknown
	}

	if b.Icon != "" {
		if err := d.storage.Delete(ctx, b.Icon); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot delete old icon of badge %s: %v", b.ID, err)
		}
	}

	return &model.UploadBadgeIconResponse{URL: resp.URL}, nil
}

func (d *badgeDomain) Award(ctx context.Context, req *model.AwardBadgeRequest) (*model.AwardBadgeResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		return nil, err
	}

	b, err := d.getVisibleBadge(ctx, req.BadgeID)
	if err != nil {
		return nil, err
	}

	if !b.Active {
		return nil, errorx.New(errorx.BadRequest, "Badge is inactive")
	}

	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if err := common.CheckTenant(ctx, user.TenantID); err != nil {
		return nil, errorx.New(errorx.NotFound, "Not found user")
	}

	if b.TenantID.Valid && b.TenantID.String != user.TenantID {
		return nil, errorx.New(errorx.BadRequest, "Badge doesn't belong to the tenant of user")
	}

	if _, err := d.userBadgeRepo.Get(ctx, user.ID, b.ID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "User already has this badge")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user badge: %v", err)
		return nil, errorx.Unknown
	}

	userBadge := &entity.UserBadge{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		BadgeID:   b.ID,
		TenantID:  sql.NullString{Valid: true, String: user.TenantID},
		AwardedAt: time.Now(),
		AwardedBy: xcontext.RequestUserID(ctx),
		Reason:    req.Reason,
		Metadata:  entity.Map(req.Metadata),
	}

	// The insert and the recipients counter share the transaction of Create,
	// so a failure of either leaves both unchanged.
	if err := d.userBadgeRepo.Create(ctx, userBadge); err != nil {
		if errors.Is(err, entity.ErrBadgeFull) {
			return nil, errorx.New(errorx.BadRequest, "Badge reached its max recipients")
		}

		if _, getErr := d.userBadgeRepo.Get(ctx, user.ID, b.ID); getErr == nil {
			return nil, errorx.New(errorx.AlreadyExists, "User already has this badge")
		}

		xcontext.Logger(ctx).Errorf("Cannot award badge: %v", err)
		return nil, errorx.Unknown
	}

	if b.Points > 0 {
		if err := d.memberRepo.IncreasePoints(ctx, user.ID, user.TenantID, b.Points, false); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot credit points of badge %s: %v", b.ID, err)
		}
	}

	d.notifier.Notify(ctx, notification.Message{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Type:     common.NotificationBadgeAwarded,
		Title:    "New badge",
		Data:     map[string]any{"Badge": b.Name, "badge_id": b.ID},
	})

	b.CurrentRecipients++
	return &model.AwardBadgeResponse{UserBadge: convertUserBadge(userBadge, convertBadge(b))}, nil
}

func (d *badgeDomain) Revoke(ctx context.Context, req *model.RevokeBadgeRequest) (*model.RevokeBadgeResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		return nil, err
	}

	b, err := d.getVisibleBadge(ctx, req.BadgeID)
	if err != nil {
		return nil, err
	}

	userBadge, err := d.userBadgeRepo.Get(ctx, req.UserID, b.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User doesn't have this badge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user badge: %v", err)
		return nil, errorx.Unknown
	}

	if err := common.CheckTenant(ctx, userBadge.TenantID.String); err != nil {
		return nil, errorx.New(errorx.NotFound, "User doesn't have this badge")
	}

	if err := d.userBadgeRepo.Delete(ctx, userBadge); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot revoke badge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RevokeBadgeResponse{}, nil
}

func (d *badgeDomain) GetUserBadges(
	ctx context.Context, req *model.GetUserBadgesRequest,
) (*model.GetUserBadgesResponse, error) {
	userID := req.UserID
	if userID == "me" {
		userID = xcontext.RequestUserID(ctx)
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if err := common.CheckTenant(ctx, user.TenantID); err != nil {
		return nil, errorx.New(errorx.NotFound, "Not found user")
	}

	badges, err := getUserBadges(ctx, d.userBadgeRepo, d.badgeRepo, user.ID, user.TenantID)
	if err != nil {
		return nil, err
	}

	return &model.GetUserBadgesResponse{Badges: badges}, nil
}

func (d *badgeDomain) checkNameAvailable(ctx context.Context, name string) error {
	_, err := d.badgeRepo.GetByName(ctx, name)
	if err == nil {
		return errorx.New(errorx.AlreadyExists, "Badge name %s is already used", name)
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get badge by name: %v", err)
		return errorx.Unknown
	}

	return nil
}

// getVisibleBadge returns a badge of the tenant of request or a global badge.
func (d *badgeDomain) getVisibleBadge(ctx context.Context, id string) (*entity.Badge, error) {
	b, err := d.badgeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found badge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get badge: %v", err)
		return nil, errorx.Unknown
	}

	if b.TenantID.Valid {
		if err := common.CheckTenant(ctx, b.TenantID.String); err != nil {
			return nil, errorx.New(errorx.NotFound, "Not found badge")
		}
	}

	return b, nil
}

// getManagedBadge also requires super admin for global badges.
func (d *badgeDomain) getManagedBadge(ctx context.Context, id string) (*entity.Badge, error) {
	b, err := d.getVisibleBadge(ctx, id)
	if err != nil {
		return nil, err
	}

	if !b.TenantID.Valid && !common.IsSuperAdmin(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only super admins can manage global badges")
	}

	return b, nil
}
