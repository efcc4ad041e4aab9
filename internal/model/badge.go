package model

type GetBadgesRequest struct {
	TenantID        string `form:"tenant_id"`
	CriteriaType    string `form:"criteria_type"`
	IncludeInactive bool   `form:"include_inactive"`
}

type GetBadgesResponse struct {
	Badges []Badge `json:"badges"`
}

type CreateBadgeRequest struct {
	// Global badges are available in every tenant. Only super admins can
	// create them.
	Global              bool   `json:"global"`
	TenantID            string `json:"tenant_id"`
	Name                string `json:"name"`
	Category            string `json:"category"`
	Icon                string `json:"icon"`
	Color               string `json:"color"`
	CriteriaType        string `json:"criteria_type"`
	CriteriaValue       uint64 `json:"criteria_value"`
	CriteriaDescription string `json:"criteria_description"`
	Points              uint64 `json:"points"`
	Active              *bool  `json:"active"`
	Rare                bool   `json:"rare"`
	MaxRecipients       uint64 `json:"max_recipients"`
}

type CreateBadgeResponse struct {
	ID string `json:"id"`
}

type UpdateBadgeRequest struct {
	ID                  string  `uri:"id"`
	Name                *string `json:"name"`
	Category            *string `json:"category"`
	Icon                *string `json:"icon"`
	Color               *string `json:"color"`
	CriteriaDescription *string `json:"criteria_description"`
	Points              *uint64 `json:"points"`
	Active              *bool   `json:"active"`
	Rare                *bool   `json:"rare"`
	MaxRecipients       *uint64 `json:"max_recipients"`
}

type UpdateBadgeResponse struct{}

type DeleteBadgeRequest struct {
	ID string `uri:"id"`
}

type DeleteBadgeResponse struct{}

type UploadBadgeIconRequest struct {
	ID string `uri:"id"`
}

type UploadBadgeIconResponse struct {
	URL string `json:"url"`
}

type AwardBadgeRequest struct {
	BadgeID  string         `uri:"id"`
	UserID   string         `json:"user_id"`
	Reason   string         `json:"reason"`
	Metadata map[string]any `json:"metadata"`
}

type AwardBadgeResponse struct {
	UserBadge UserBadge `json:"user_badge"`
}

type RevokeBadgeRequest struct {
	BadgeID string `uri:"id"`
	UserID  string `uri:"user_id"`
}

type RevokeBadgeResponse struct{}

type GetUserBadgesRequest struct {
	UserID string `uri:"id"`
}

type GetUserBadgesResponse struct {
	Badges []UserBadge `json:"badges"`
}
