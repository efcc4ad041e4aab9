package model

import "github.com/alumnet-lab/backend/pkg/router"

type ClaimRewardRequest struct {
	RewardID    string `uri:"id"`
	VoucherCode string `json:"voucher_code"`
	Note        string `json:"note"`
	IssuerID    string `json:"issuer_id"`
}

type ClaimRewardResponse struct {
	Activities []Activity `json:"activities"`
	Redemption Redemption `json:"redemption"`
}

type GetRedemptionsRequest struct {
	TenantID string `form:"tenant_id"`
	UserID   string `form:"user_id"`
	RewardID string `form:"reward_id"`
	Offset   int    `form:"offset"`
	Limit    int    `form:"limit"`
}

type GetRedemptionsResponse struct {
	router.Page `json:"-"`
	Redemptions []Redemption `json:"redemptions"`
}
