package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/dateutil"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/router"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
	"gorm.io/gorm"
)

type RewardDomain interface {
	GetList(context.Context, *model.GetRewardsRequest) (*model.GetRewardsResponse, error)
	Get(context.Context, *model.GetRewardRequest) (*model.GetRewardResponse, error)
	Create(context.Context, *model.CreateRewardRequest) (*model.CreateRewardResponse, error)
	Update(context.Context, *model.UpdateRewardRequest) (*model.UpdateRewardResponse, error)
	Delete(context.Context, *model.DeleteRewardRequest) (*model.DeleteRewardResponse, error)
}

type rewardDomain struct {
	rewardRepo   repository.RewardRepository
	roleVerifier *common.RoleVerifier
}

func NewRewardDomain(
	rewardRepo repository.RewardRepository,
	roleVerifier *common.RoleVerifier,
) RewardDomain {
	return &rewardDomain{rewardRepo: rewardRepo, roleVerifier: roleVerifier}
}

// rewardSource lets fuzzy match against title and description together.
type rewardSource []entity.Reward

func (s rewardSource) String(i int) string {
	return s[i].Title + " " + s[i].Description
}

func (s rewardSource) Len() int {
	return len(s)
}

func (d *rewardDomain) GetList(
	ctx context.Context, req *model.GetRewardsRequest,
) (*model.GetRewardsResponse, error) {
	tenantID, err := common.ResolveTenantID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	offset, limit, err := common.Paginate(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	// Only the admin scope sees templates out of their schedule or inactive.
	isAdmin := common.IsAdmin(ctx)
	rewards, err := d.rewardRepo.GetList(ctx, repository.RewardFilter{
		TenantID:        tenantID,
		Category:        req.Category,
		Featured:        req.Featured,
		IncludeInactive: isAdmin && req.IncludeInactive,
		EnforceSchedule: !isAdmin,
		Now:             time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reward list: %v", err)
		return nil, errorx.Unknown
	}

	if q := strings.TrimSpace(req.Q); q != "" {
		matches := fuzzy.FindFrom(q, rewardSource(rewards))
		ranked := make([]entity.Reward, 0, len(matches))
		for _, m := range matches {
			ranked = append(ranked, rewards[m.Index])
		}
		rewards = ranked
	}

	total := int64(len(rewards))
	if offset >= len(rewards) {
		rewards = nil
	} else {
		rewards = rewards[offset:min(offset+limit, len(rewards))]
	}

	result := []model.Reward{}
	for i := range rewards {
		result = append(result, convertReward(&rewards[i]))
	}

	return &model.GetRewardsResponse{
		Page:    router.NewPage(offset, limit, total),
		Rewards: result,
	}, nil
}

func (d *rewardDomain) Get(ctx context.Context, req *model.GetRewardRequest) (*model.GetRewardResponse, error) {
	reward, err := d.getVisibleReward(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &model.GetRewardResponse{Reward: convertReward(reward)}, nil
}

func (d *rewardDomain) Create(
	ctx context.Context, req *model.CreateRewardRequest,
) (*model.CreateRewardResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		return nil, err
	}

	tenantID, err := common.ResolveTenantID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, errorx.New(errorx.BadRequest, "Require title")
	}

	if err := validateSchedule(req.StartAt, req.EndAt); err != nil {
		return nil, err
	}

	tasks := []entity.RewardTask{}
	for _, t := range req.Tasks {
		tasks = append(tasks, entity.RewardTask{
			ID:          uuid.NewString(),
			Type:        t.Type,
			Title:       t.Title,
			Description: t.Description,
			Target:      t.Target,
			Points:      t.Points,
		})
	}

	if err := validateRewardTasks(tasks); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	reward := &entity.Reward{
		Base:                 entity.Base{ID: uuid.NewString()},
		TenantID:             tenantID,
		Title:                req.Title,
		Description:          req.Description,
		Category:             req.Category,
		Cost:                 req.Cost,
		StartAt:              ptrToNullTime(req.StartAt),
		EndAt:                ptrToNullTime(req.EndAt),
		Active:               active,
		Featured:             req.Featured,
		RequiresVerification: req.RequiresVerification,
		Tasks:                tasks,
		CreatedBy:            xcontext.RequestUserID(ctx),
	}

	if err := d.rewardRepo.Create(ctx, reward); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create reward: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateRewardResponse{ID: reward.ID}, nil
}

func (d *rewardDomain) Update(
	ctx context.Context, req *model.UpdateRewardRequest,
) (*model.UpdateRewardResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		return nil, err
	}

	reward, err := d.getTenantReward(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	data := map[string]any{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, errorx.New(errorx.BadRequest, "Title cannot be empty")
		}
		data["title"] = *req.Title
	}

	if req.Description != nil {
		data["description"] = *req.Description
	}

	if req.Category != nil {
		data["category"] = *req.Category
	}

	if req.Cost != nil {
		data["cost"] = *req.Cost
	}

	if req.Active != nil {
		data["active"] = *req.Active
	}

	if req.Featured != nil {
		data["featured"] = *req.Featured
	}

	if req.RequiresVerification != nil {
		data["requires_verification"] = *req.RequiresVerification
	}

	startAt, endAt := nullTimeToPtr(reward.StartAt), nullTimeToPtr(reward.EndAt)
	if req.ClearSchedule {
		startAt, endAt = nil, nil
	}

	if req.StartAt != nil {
		startAt = req.StartAt
	}

	if req.EndAt != nil {
		endAt = req.EndAt
	}

	if req.ClearSchedule || req.StartAt != nil || req.EndAt != nil {
		if err := validateSchedule(startAt, endAt); err != nil {
			return nil, err
		}

		data["start_at"] = ptrToNullTime(startAt)
		data["end_at"] = ptrToNullTime(endAt)
	}

	if req.Tasks != nil {
		tasks := []entity.RewardTask{}
		for _, t := range req.Tasks {
			id := t.ID
			if id == "" {
				id = uuid.NewString()
			}

			tasks = append(tasks, entity.RewardTask{
				ID:          id,
				Type:        t.Type,
				Title:       t.Title,
				Description: t.Description,
				Target:      t.Target,
				Points:      t.Points,
			})
		}

		if err := validateRewardTasks(tasks); err != nil {
			return nil, err
		}

		data["tasks"] = entity.Array[entity.RewardTask](tasks)
	}

	if len(data) == 0 {
		return &model.UpdateRewardResponse{}, nil
	}

	if err := d.rewardRepo.UpdateByID(ctx, reward.ID, data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update reward: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateRewardResponse{}, nil
}

func (d *rewardDomain) Delete(
	ctx context.Context, req *model.DeleteRewardRequest,
) (*model.DeleteRewardResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		return nil, err
	}

	reward, err := d.getTenantReward(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.rewardRepo.DeleteByID(ctx, reward.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete reward: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteRewardResponse{}, nil
}

// getTenantReward returns the reward if it belongs to the tenant of request.
func (d *rewardDomain) getTenantReward(ctx context.Context, id string) (*entity.Reward, error) {
	return getTenantReward(ctx, d.rewardRepo, id)
}

func (d *rewardDomain) getVisibleReward(ctx context.Context, id string) (*entity.Reward, error) {
	reward, err := d.getTenantReward(ctx, id)
	if err != nil {
		return nil, err
	}

	if common.IsAdmin(ctx) {
		return reward, nil
	}

	if !reward.Active || !dateutil.InWindow(time.Now(), nullTimeToPtr(reward.StartAt), nullTimeToPtr(reward.EndAt)) {
		return nil, errorx.New(errorx.NotFound, "Not found reward")
	}

	return reward, nil
}

func getTenantReward(ctx context.Context, rewardRepo repository.RewardRepository, id string) (*entity.Reward, error) {
	reward, err := rewardRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found reward")
		}

		xcontext.Logger(ctx).Errorf("Cannot get reward: %v", err)
		return nil, errorx.Unknown
	}

	if err := common.CheckTenant(ctx, reward.TenantID); err != nil {
		return nil, errorx.New(errorx.NotFound, "Not found reward")
	}

	return reward, nil
}

func validateSchedule(startAt, endAt *time.Time) error {
	if startAt != nil && endAt != nil && !startAt.Before(*endAt) {
		return errorx.New(errorx.BadRequest, "Start time must be before end time")
	}

	return nil
}

func validateRewardTasks(tasks []entity.RewardTask) error {
	if len(tasks) == 0 {
		return errorx.New(errorx.BadRequest, "Require at least one task")
	}

	ids := map[string]bool{}
	for _, t := range tasks {
		if strings.TrimSpace(t.Title) == "" {
			return errorx.New(errorx.BadRequest, "Require title of task")
		}

		if t.Target <= 0 {
			return errorx.New(errorx.BadRequest, "Target of task %s must be positive", t.Title)
		}

		if ids[t.ID] {
			return errorx.New(errorx.BadRequest, "Duplicated task id %s", t.ID)
		}
		ids[t.ID] = true
	}

	return nil
}
