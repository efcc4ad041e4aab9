package model

import "github.com/alumnet-lab/backend/pkg/router"

type CreateFundRequest struct {
	TenantID    string `json:"tenant_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateFundResponse struct {
	ID string `json:"id"`
}

type GetFundsRequest struct {
	TenantID string `form:"tenant_id"`
	Status   string `form:"status"`
	Offset   int    `form:"offset"`
	Limit    int    `form:"limit"`
}

type GetFundsResponse struct {
	router.Page `json:"-"`
	Funds       []Fund `json:"funds"`
}

type GetFundRequest struct {
	ID string `uri:"id"`
}

type GetFundResponse struct {
	Fund      Fund       `json:"fund"`
	Campaigns []Campaign `json:"campaigns"`
}

type UpdateFundRequest struct {
	ID          string  `uri:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type UpdateFundResponse struct{}

type DeleteFundRequest struct {
	ID string `uri:"id"`
}

type DeleteFundResponse struct{}

type RecomputeFundRequest struct {
	ID string `uri:"id"`
}

type RecomputeFundResponse struct {
	TotalRaised int64 `json:"total_raised"`
}

type CreateCampaignRequest struct {
	FundID      string `uri:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	GoalAmount  int64  `json:"goal_amount"`
}

type CreateCampaignResponse struct {
	ID string `json:"id"`
}

type DonateRequest struct {
	CampaignID string `uri:"id"`
	Amount     int64  `json:"amount"`
	Reference  string `json:"reference"`
}

type DonateResponse struct {
	Donation     Donation `json:"donation"`
	RaisedAmount int64    `json:"raised_amount"`
	FundTotal    int64    `json:"fund_total"`
}

type GetDonationsRequest struct {
	CampaignID string `uri:"id"`
	Offset     int    `form:"offset"`
	Limit      int    `form:"limit"`
}

type GetDonationsResponse struct {
	Donations []Donation `json:"donations"`
}
