package model

type CreateShareRequest struct {
	TenantID string         `json:"tenant_id"`
	PostID   string         `json:"post_id"`
	Platform string         `json:"platform"`
	Metadata map[string]any `json:"metadata"`
}

type CreateShareResponse struct {
	ID string `json:"id"`
}

type PlatformCount struct {
	Platform string `json:"platform"`
	Count    int64  `json:"count"`
}

type GetShareStatsRequest struct {
	TenantID string `form:"tenant_id"`
	PostID   string `form:"post_id"`
}

type GetShareStatsResponse struct {
	Total     int64           `json:"total"`
	Platforms []PlatformCount `json:"platforms"`
}
