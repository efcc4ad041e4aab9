package model

import "github.com/alumnet-lab/backend/pkg/router"

type CreateInvitationRequest struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type CreateInvitationResponse struct {
	Invitation Invitation `json:"invitation"`
	Link       string     `json:"link"`
}

type GetInvitationsRequest struct {
	TenantID string `form:"tenant_id"`
	Status   string `form:"status"`
	Offset   int    `form:"offset"`
	Limit    int    `form:"limit"`
}

type GetInvitationsResponse struct {
	router.Page `json:"-"`
	Invitations []Invitation `json:"invitations"`
}

type OpenInvitationRequest struct {
	Token string `uri:"token"`
}

type OpenInvitationResponse struct {
	Invitation Invitation `json:"invitation"`
	TenantName string     `json:"tenant_name"`
}

type AcceptInvitationRequest struct {
	Token          string `uri:"token"`
	Name           string `json:"name"`
	Password       string `json:"password"`
	Department     string `json:"department"`
	GraduationYear int    `json:"graduation_year"`
}

type AcceptInvitationResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

type RevokeInvitationRequest struct {
	ID string `uri:"id"`
}

type RevokeInvitationResponse struct{}
