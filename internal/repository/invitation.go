package repository

import (
	"context"
	"time"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type InvitationRepository interface {
	Create(ctx context.Context, invitation *entity.Invitation) error
	GetByID(ctx context.Context, id string) (*entity.Invitation, error)
	GetByToken(ctx context.Context, token string) (*entity.Invitation, error)

	// GetActiveByEmail returns a pending or sent invitation which isn't
	// expired yet.
	GetActiveByEmail(ctx context.Context, tenantID, email string, now time.Time) (*entity.Invitation, error)
	GetList(ctx context.Context, tenantID string, status entity.InvitationStatus, offset, limit int) ([]entity.Invitation, int64, error)
	UpdateStatus(ctx context.Context, id string, from []entity.InvitationStatus, to entity.InvitationStatus) error
	ExpireBefore(ctx context.Context, now time.Time) (int64, error)
}

type invitationRepository struct{}

func NewInvitationRepository() *invitationRepository {
	return &invitationRepository{}
}

func (r *invitationRepository) Create(ctx context.Context, invitation *entity.Invitation) error {
	return xcontext.DB(ctx).Create(invitation).Error
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*entity.Invitation, error) {
	var result entity.Invitation
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *invitationRepository) GetByToken(ctx context.Context, token string) (*entity.Invitation, error) {
	var result entity.Invitation
	if err := xcontext.DB(ctx).Take(&result, "token=?", token).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *invitationRepository) GetActiveByEmail(
	ctx context.Context, tenantID, email string, now time.Time,
) (*entity.Invitation, error) {
	var result entity.Invitation
	err := xcontext.DB(ctx).
		Where("tenant_id=? AND email=? AND status IN (?) AND expires_at>?",
			tenantID, email, entity.ActiveInvitationStatuses, now).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *invitationRepository) GetList(
	ctx context.Context, tenantID string, status entity.InvitationStatus, offset, limit int,
) ([]entity.Invitation, int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Invitation{}).Where("tenant_id=?", tenantID)
	if status != "" {
		tx = tx.Where("status=?", status)
	}

	tx = tx.Session(&gorm.Session{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var result []entity.Invitation
	if err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&result).Error; err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

func (r *invitationRepository) UpdateStatus(
	ctx context.Context, id string, from []entity.InvitationStatus, to entity.InvitationStatus,
) error {
	return updateOne(xcontext.DB(ctx).
		Model(&entity.Invitation{}).
		Where("id=? AND status IN (?)", id, from).
		Update("status", to))
}

func (r *invitationRepository) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Invitation{}).
		Where("status IN (?) AND expires_at<=?",
			[]entity.InvitationStatus{entity.InvitationPending, entity.InvitationSent, entity.InvitationOpened}, now).
		Update("status", entity.InvitationExpired)

	return tx.RowsAffected, tx.Error
}
