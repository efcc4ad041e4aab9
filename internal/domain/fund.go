package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/enum"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/router"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FundDomain interface {
	Create(context.Context, *model.CreateFundRequest) (*model.CreateFundResponse, error)
	GetList(context.Context, *model.GetFundsRequest) (*model.GetFundsResponse, error)
	Get(context.Context, *model.GetFundRequest) (*model.GetFundResponse, error)
	Update(context.Context, *model.UpdateFundRequest) (*model.UpdateFundResponse, error)
	Delete(context.Context, *model.DeleteFundRequest) (*model.DeleteFundResponse, error)
	Recompute(context.Context, *model.RecomputeFundRequest) (*model.RecomputeFundResponse, error)
	CreateCampaign(context.Context, *model.CreateCampaignRequest) (*model.CreateCampaignResponse, error)
	Donate(context.Context, *model.DonateRequest) (*model.DonateResponse, error)
	GetDonations(context.Context, *model.GetDonationsRequest) (*model.GetDonationsResponse, error)
}

type fundDomain struct {
	fundRepo     repository.FundRepository
	campaignRepo repository.CampaignRepository
	donationRepo repository.DonationRepository
	roleVerifier *common.RoleVerifier
}

func NewFundDomain(
	fundRepo repository.FundRepository,
	campaignRepo repository.CampaignRepository,
	donationRepo repository.DonationRepository,
	roleVerifier *common.RoleVerifier,
) FundDomain {
	return &fundDomain{
		fundRepo:     fundRepo,
		campaignRepo: campaignRepo,
		donationRepo: donationRepo,
		roleVerifier: roleVerifier,
	}
}

func (d *fundDomain) Create(ctx context.Context, req *model.CreateFundRequest) (*model.CreateFundResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		return nil, err
	}

	tenantID, err := common.ResolveTenantID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, errorx.New(errorx.BadRequest, "Require name")
	}

	fund := &entity.Fund{
		Base:        entity.Base{ID: uuid.NewString()},
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   xcontext.RequestUserID(ctx),
		Status:      entity.FundActive,
	}
	if err := d.fundRepo.Create(ctx, fund); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create fund: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateFundResponse{ID: fund.ID}, nil
}

func (d *fundDomain) GetList(ctx context.Context, req *model.GetFundsRequest) (*model.GetFundsResponse, error) {
	tenantID, err := common.ResolveTenantID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	offset, limit, err := common.Paginate(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	var status entity.FundStatus
	if req.Status != "" {
		status, err = enum.ToEnum[entity.FundStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status")
		}
	}

	funds, total, err := d.fundRepo.GetList(ctx, tenantID, status, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get funds: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Fund{}
	for i := range funds {
		campaigns, err := d.campaignRepo.GetByFundID(ctx, funds[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get campaigns of fund: %v", err)
			return nil, errorx.Unknown
		}

		result = append(result, convertFund(&funds[i], campaignIDs(campaigns)))
	}

	return &model.GetFundsResponse{
		Page:  router.NewPage(offset, limit, total),
		Funds: result,
	}, nil
}

func (d *fundDomain) Get(ctx context.Context, req *model.GetFundRequest) (*model.GetFundResponse, error) {
	fund, err := d.getFund(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	campaigns, err := d.campaignRepo.GetByFundID(ctx, fund.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get campaigns of fund: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Campaign{}
	for i := range campaigns {
		result = append(result, convertCampaign(&campaigns[i]))
	}

	return &model.GetFundResponse{
		Fund:      convertFund(fund, campaignIDs(campaigns)),
		Campaigns: result,
	}, nil
}

func (d *fundDomain) Update(ctx context.Context, req *model.UpdateFundRequest) (*model.UpdateFundResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		return nil, err
	}

	fund, err := d.getFund(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	data := map[string]any{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, errorx.New(errorx.BadRequest, "Name cannot be empty")
		}
		data["name"] = *req.Name
	}

	if req.Description != nil {
		data["description"] = *req.Description
	}

	if req.Status != nil {
		status, err := enum.ToEnum[entity.FundStatus](*req.Status)
		if err != nil || status == entity.FundArchived {
			return nil, errorx.New(errorx.BadRequest, "Status must be active or suspended")
		}
		data["status"] = status
	}

	if len(data) == 0 {
		return &model.UpdateFundResponse{}, nil
	}

	if err := d.fundRepo.UpdateByID(ctx, fund.ID, data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update fund: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateFundResponse{}, nil
}

// Delete archives the fund, the row is kept with its donations.
func (d *fundDomain) Delete(ctx context.Context, req *model.DeleteFundRequest) (*model.DeleteFundResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		return nil, err
	}

	fund, err := d.getFund(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.fundRepo.UpdateByID(ctx, fund.ID, map[string]any{"status": entity.FundArchived}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot archive fund: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.fundRepo.DeleteByID(ctx, fund.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete fund: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit fund deletion: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteFundResponse{}, nil
}

func (d *fundDomain) Recompute(
	ctx context.Context, req *model.RecomputeFundRequest,
) (*model.RecomputeFundResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		return nil, err
	}

	fund, err := d.getFund(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.fundRepo.RecomputeTotal(ctx, fund.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot recompute fund: %v", err)
		return nil, errorx.Unknown
	}

	fund, err = d.getFund(ctx, fund.ID)
	if err != nil {
		return nil, err
	}

	return &model.RecomputeFundResponse{TotalRaised: fund.TotalRaised}, nil
}

func (d *fundDomain) CreateCampaign(
	ctx context.Context, req *model.CreateCampaignRequest,
) (*model.CreateCampaignResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		return nil, err
	}

	fund, err := d.getFund(ctx, req.FundID)
	if err != nil {
		return nil, err
	}

	if fund.Status != entity.FundActive {
		return nil, errorx.New(errorx.BadRequest, "Fund is %s", fund.Status)
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, errorx.New(errorx.BadRequest, "Require title")
	}

	if req.GoalAmount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Goal amount must be positive")
	}

	campaign := &entity.Campaign{
		Base:        entity.Base{ID: uuid.NewString()},
		TenantID:    fund.TenantID,
		FundID:      fund.ID,
		Title:       req.Title,
		Description: req.Description,
		GoalAmount:  req.GoalAmount,
		Status:      entity.CampaignActive,
	}
	if err := d.campaignRepo.Create(ctx, campaign); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create campaign: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCampaignResponse{ID: campaign.ID}, nil
}

func (d *fundDomain) Donate(ctx context.Context, req *model.DonateRequest) (*model.DonateResponse, error) {
	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Amount must be positive")
	}

	campaign, err := d.getCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}

	fund, err := d.getFund(ctx, campaign.FundID)
	if err != nil {
		return nil, err
	}

	if fund.Status != entity.FundActive {
		return nil, errorx.New(errorx.BadRequest, "Fund is %s", fund.Status)
	}

	reference := req.Reference
	if reference == "" {
		reference = uuid.NewString()
	}

	donation := &entity.Donation{
		Base:       entity.Base{ID: uuid.NewString()},
		TenantID:   campaign.TenantID,
		CampaignID: campaign.ID,
		DonorID:    xcontext.RequestUserID(ctx),
		Amount:     req.Amount,
		Reference:  reference,
	}

	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	if err := d.campaignRepo.IncreaseRaised(txCtx, campaign.ID, req.Amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Campaign is closed")
		}

		xcontext.Logger(ctx).Errorf("Cannot increase raised amount: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.donationRepo.Create(txCtx, donation); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create donation: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.fundRepo.RecomputeTotal(txCtx, fund.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot recompute fund: %v", err)
		return nil, errorx.Unknown
	}

	campaign, err = d.campaignRepo.GetByID(txCtx, campaign.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
		return nil, errorx.Unknown
	}

	fund, err = d.fundRepo.GetByID(txCtx, fund.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get fund: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.CommitDBTransaction(txCtx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit donation: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DonateResponse{
		Donation:     convertDonation(donation),
		RaisedAmount: campaign.RaisedAmount,
		FundTotal:    fund.TotalRaised,
	}, nil
}

func (d *fundDomain) GetDonations(
	ctx context.Context, req *model.GetDonationsRequest,
) (*model.GetDonationsResponse, error) {
	campaign, err := d.getCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}

	offset, limit, err := common.Paginate(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	donations, err := d.donationRepo.GetByCampaignID(ctx, campaign.ID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get donations: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Donation{}
	for i := range donations {
		result = append(result, convertDonation(&donations[i]))
	}

	return &model.GetDonationsResponse{Donations: result}, nil
}

func (d *fundDomain) getFund(ctx context.Context, id string) (*entity.Fund, error) {
	fund, err := d.fundRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found fund")
		}

		xcontext.Logger(ctx).Errorf("Cannot get fund: %v", err)
		return nil, errorx.Unknown
	}

	if err := common.CheckTenant(ctx, fund.TenantID); err != nil {
		return nil, errorx.New(errorx.NotFound, "Not found fund")
	}

	return fund, nil
}

func (d *fundDomain) getCampaign(ctx context.Context, id string) (*entity.Campaign, error) {
	campaign, err := d.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
		return nil, errorx.Unknown
	}

	if err := common.CheckTenant(ctx, campaign.TenantID); err != nil {
		return nil, errorx.New(errorx.NotFound, "Not found campaign")
	}

	return campaign, nil
}

func campaignIDs(campaigns []entity.Campaign) []string {
	ids := []string{}
	for _, c := range campaigns {
		ids = append(ids, c.ID)
	}
	return ids
}
