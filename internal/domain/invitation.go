package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/crypto"
	"github.com/alumnet-lab/backend/pkg/enum"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/pubsub"
	"github.com/alumnet-lab/backend/pkg/router"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// openableInvitationStatuses are the statuses from which an invitation can
// still be opened or accepted.
var openableInvitationStatuses = []entity.InvitationStatus{
	entity.InvitationPending,
	entity.InvitationSent,
	entity.InvitationOpened,
}

type InvitationDomain interface {
	Create(context.Context, *model.CreateInvitationRequest) (*model.CreateInvitationResponse, error)
	GetList(context.Context, *model.GetInvitationsRequest) (*model.GetInvitationsResponse, error)
	Open(context.Context, *model.OpenInvitationRequest) (*model.OpenInvitationResponse, error)
	Accept(context.Context, *model.AcceptInvitationRequest) (*model.AcceptInvitationResponse, error)
	Revoke(context.Context, *model.RevokeInvitationRequest) (*model.RevokeInvitationResponse, error)
}

type invitationDomain struct {
	invitationRepo repository.InvitationRepository
	tenantRepo     repository.TenantRepository
	userRepo       repository.UserRepository
	memberRepo     repository.MemberRepository
	roleVerifier   *common.RoleVerifier
	publisher      pubsub.Publisher
}

func NewInvitationDomain(
	invitationRepo repository.InvitationRepository,
	tenantRepo repository.TenantRepository,
	userRepo repository.UserRepository,
	memberRepo repository.MemberRepository,
	roleVerifier *common.RoleVerifier,
	publisher pubsub.Publisher,
) InvitationDomain {
	return &invitationDomain{
		invitationRepo: invitationRepo,
		tenantRepo:     tenantRepo,
		userRepo:       userRepo,
		memberRepo:     memberRepo,
		roleVerifier:   roleVerifier,
		publisher:      publisher,
	}
}

type invitationEvent struct {
	InvitationID string    `json:"invitation_id"`
	TenantID     string    `json:"tenant_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Link         string    `json:"link"`
	Body         string    `json:"body"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (d *invitationDomain) Create(
	ctx context.Context, req *model.CreateInvitationRequest,
) (*model.CreateInvitationResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.ReviewerRoles...); err != nil {
		return nil, err
	}

	tenantID, err := common.ResolveTenantID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	role := entity.RoleAlumni
	if req.Role != "" {
		role, err = enum.ToEnum[entity.UserRole](req.Role)
		if err != nil || role == entity.RoleSuperAdmin {
			return nil, errorx.New(errorx.BadRequest, "Invalid role")
		}
	}

	if (role == entity.RoleAdmin || role == entity.RoleStaff) && !common.IsAdmin(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only admins can invite %s", role)
	}

	tenant, err := d.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found tenant")
		}

		xcontext.Logger(ctx).Errorf("Cannot get tenant: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()
	_, err = d.invitationRepo.GetActiveByEmail(ctx, tenantID, email, now)
	if err == nil {
		return nil, errorx.New(errorx.BadRequest, "An active invitation already exists for this email")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get active invitation: %v", err)
		return nil, errorx.Unknown
	}

	token, err := crypto.RandomToken(crypto.InvitationTokenSize)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate invitation token: %v", err)
		return nil, errorx.Unknown
	}

	cfg := xcontext.Configs(ctx)
	invitation := &entity.Invitation{
		Base:      entity.Base{ID: uuid.NewString()},
		TenantID:  tenantID,
		Email:     email,
		Name:      req.Name,
		Phone:     req.Phone,
		Role:      role,
		Token:     token,
		Status:    entity.InvitationSent,
		ExpiresAt: now.Add(cfg.Invitation.TTL),
		InviterID: xcontext.RequestUserID(ctx),
	}
	if err := d.invitationRepo.Create(ctx, invitation); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create invitation: %v", err)
		return nil, errorx.Unknown
	}

	link := fmt.Sprintf("%s/invitations/%s", strings.TrimSuffix(cfg.ApiServer.FrontendURL, "/"), token)
	d.publishInvitation(ctx, invitation, tenant, link)

	return &model.CreateInvitationResponse{
		Invitation: convertInvitation(invitation),
		Link:       link,
	}, nil
}

func (d *invitationDomain) GetList(
	ctx context.Context, req *model.GetInvitationsRequest,
) (*model.GetInvitationsResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.ReviewerRoles...); err != nil {
		return nil, err
	}

	tenantID, err := common.ResolveTenantID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	offset, limit, err := common.Paginate(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	var status entity.InvitationStatus
	if req.Status != "" {
		status, err = enum.ToEnum[entity.InvitationStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status")
		}
	}

	invitations, total, err := d.invitationRepo.GetList(ctx, tenantID, status, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get invitations: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Invitation{}
	for i := range invitations {
		result = append(result, convertInvitation(&invitations[i]))
	}

	return &model.GetInvitationsResponse{
		Page:        router.NewPage(offset, limit, total),
		Invitations: result,
	}, nil
}

func (d *invitationDomain) Open(
	ctx context.Context, req *model.OpenInvitationRequest,
) (*model.OpenInvitationResponse, error) {
	invitation, err := d.getUsableInvitation(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	if invitation.Status != entity.InvitationOpened {
		err := d.invitationRepo.UpdateStatus(ctx, invitation.ID,
			[]entity.InvitationStatus{entity.InvitationPending, entity.InvitationSent}, entity.InvitationOpened)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot open invitation: %v", err)
			return nil, errorx.Unknown
		}
		invitation.Status = entity.InvitationOpened
	}

	tenant, err := d.tenantRepo.GetByID(ctx, invitation.TenantID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tenant of invitation: %v", err)
		return nil, errorx.Unknown
	}

	return &model.OpenInvitationResponse{
		Invitation: convertInvitation(invitation),
		TenantName: tenant.Name,
	}, nil
}

func (d *invitationDomain) Accept(
	ctx context.Context, req *model.AcceptInvitationRequest,
) (*model.AcceptInvitationResponse, error) {
	invitation, err := d.getUsableInvitation(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	if len(req.Password) < minPasswordLength {
		return nil, errorx.New(errorx.BadRequest, "Password must have at least %d characters", minPasswordLength)
	}

	name := req.Name
	if name == "" {
		name = invitation.Name
	}

	if name == "" {
		return nil, errorx.New(errorx.BadRequest, "Require name")
	}

	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	err = d.invitationRepo.UpdateStatus(txCtx, invitation.ID, openableInvitationStatuses, entity.InvitationAccepted)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Invitation is no longer valid")
		}

		xcontext.Logger(ctx).Errorf("Cannot accept invitation: %v", err)
		return nil, errorx.Unknown
	}

	user, err := createUserWithMember(txCtx, d.userRepo, d.memberRepo, &entity.User{
		TenantID:       invitation.TenantID,
		Email:          invitation.Email,
		Name:           name,
		Role:           invitation.Role,
		Department:     req.Department,
		GraduationYear: req.GraduationYear,
	}, req.Password)
	if err != nil {
		return nil, err
	}

	if err := xcontext.CommitDBTransaction(txCtx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit invitation acceptance: %v", err)
		return nil, errorx.Unknown
	}

	token, err := generateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.AcceptInvitationResponse{User: convertUser(user, true), AccessToken: token}, nil
}

func (d *invitationDomain) Revoke(
	ctx context.Context, req *model.RevokeInvitationRequest,
) (*model.RevokeInvitationResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.ReviewerRoles...); err != nil {
		return nil, err
	}

	invitation, err := d.invitationRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found invitation")
		}

		xcontext.Logger(ctx).Errorf("Cannot get invitation: %v", err)
		return nil, errorx.Unknown
	}

	if err := common.CheckTenant(ctx, invitation.TenantID); err != nil {
		return nil, errorx.New(errorx.NotFound, "Not found invitation")
	}

	err = d.invitationRepo.UpdateStatus(ctx, invitation.ID, openableInvitationStatuses, entity.InvitationExpired)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Invitation is already %s", invitation.Status)
		}

		xcontext.Logger(ctx).Errorf("Cannot revoke invitation: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RevokeInvitationResponse{}, nil
}

// getUsableInvitation returns the invitation of token if it can still be
// opened or accepted. An invitation found past its expiry is expired here.
func (d *invitationDomain) getUsableInvitation(ctx context.Context, token string) (*entity.Invitation, error) {
	invitation, err := d.invitationRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found invitation")
		}

		xcontext.Logger(ctx).Errorf("Cannot get invitation: %v", err)
		return nil, errorx.Unknown
	}

	switch invitation.Status {
	case entity.InvitationAccepted:
		return nil, errorx.New(errorx.BadRequest, "Invitation was already accepted")
	case entity.InvitationExpired:
		return nil, errorx.New(errorx.BadRequest, "Invitation expired")
	}

	if !time.Now().Before(invitation.ExpiresAt) {
		err := d.invitationRepo.UpdateStatus(ctx, invitation.ID, openableInvitationStatuses, entity.InvitationExpired)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Warnf("Cannot expire invitation: %v", err)
		}

		return nil, errorx.New(errorx.BadRequest, "Invitation expired")
	}

	return invitation, nil
}

// publishInvitation hands the invitation to the mail service. Failures are
// logged only, the invitation link is still returned to the inviter.
func (d *invitationDomain) publishInvitation(
	ctx context.Context, invitation *entity.Invitation, tenant *entity.Tenant, link string,
) {
	if d.publisher == nil {
		return
	}

	body, err := common.NotificationBody(common.NotificationInvitation, map[string]any{
		"Tenant": tenant.Name,
		"Link":   link,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot render invitation: %v", err)
	}

	b, err := json.Marshal(invitationEvent{
		InvitationID: invitation.ID,
		TenantID:     invitation.TenantID,
		Email:        invitation.Email,
		Name:         invitation.Name,
		Phone:        invitation.Phone,
		Link:         link,
		Body:         body,
		ExpiresAt:    invitation.ExpiresAt,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal invitation event: %v", err)
		return
	}

	topic := xcontext.Configs(ctx).Invitation.Topic
	err = d.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(invitation.Email), Msg: b})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish invitation: %v", err)
		common.PromCounters[common.NotificationFailureTotal].WithLabelValues(common.NotificationInvitation).Inc()
	}
}
