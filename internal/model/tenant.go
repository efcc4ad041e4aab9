package model

import "github.com/alumnet-lab/backend/pkg/router"

type CreateTenantRequest struct {
	Name   string `json:"name"`
	Handle string `json:"handle"`
	Domain string `json:"domain"`
}

type CreateTenantResponse struct {
	ID string `json:"id"`
}

type GetTenantsRequest struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type GetTenantsResponse struct {
	router.Page `json:"-"`
	Tenants     []Tenant `json:"tenants"`
}

type GetTenantRequest struct {
	ID string `uri:"id"`
}

type GetTenantResponse struct {
	Tenant Tenant `json:"tenant"`
}

type UpdateTenantRequest struct {
	ID     string  `uri:"id"`
	Name   *string `json:"name"`
	Domain *string `json:"domain"`
	Active *bool   `json:"active"`
}

type UpdateTenantResponse struct{}
