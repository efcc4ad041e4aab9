package domain

import (
	"context"
	"time"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/enum"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
)

type ShareDomain interface {
	Create(context.Context, *model.CreateShareRequest) (*model.CreateShareResponse, error)
	GetStats(context.Context, *model.GetShareStatsRequest) (*model.GetShareStatsResponse, error)
}

type shareDomain struct {
	shareRepo repository.ShareRepository
}

func NewShareDomain(shareRepo repository.ShareRepository) ShareDomain {
	return &shareDomain{shareRepo: shareRepo}
}

func (d *shareDomain) Create(ctx context.Context, req *model.CreateShareRequest) (*model.CreateShareResponse, error) {
	tenantID, err := common.ResolveTenantID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	if req.PostID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require post id")
	}

	platform := entity.ShareOther
	if req.Platform != "" {
		platform, err = enum.ToEnum[entity.SharePlatform](req.Platform)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid platform")
		}
	}

	share := &entity.Share{
		ID:        uuid.NewString(),
		PostID:    req.PostID,
		UserID:    xcontext.RequestUserID(ctx),
		TenantID:  tenantID,
		Platform:  platform,
		Metadata:  req.Metadata,
		CreatedAt: time.Now(),
	}
	if err := d.shareRepo.Insert(ctx, share); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot insert share: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateShareResponse{ID: share.ID}, nil
}

func (d *shareDomain) GetStats(
	ctx context.Context, req *model.GetShareStatsRequest,
) (*model.GetShareStatsResponse, error) {
	tenantID, err := common.ResolveTenantID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	counts, err := d.shareRepo.CountByPlatform(ctx, tenantID, req.PostID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count shares: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetShareStatsResponse{Platforms: []model.PlatformCount{}}
	for _, c := range counts {
		resp.Total += c.Count
		resp.Platforms = append(resp.Platforms, model.PlatformCount{
			Platform: string(c.Platform),
			Count:    c.Count,
		})
	}

	return resp, nil
}
