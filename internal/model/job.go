package model

import "github.com/alumnet-lab/backend/pkg/router"

type CreateJobRequest struct {
	TenantID    string `json:"tenant_id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type CreateJobResponse struct {
	ID string `json:"id"`
}

type GetJobsRequest struct {
	TenantID string `form:"tenant_id"`
	Status   string `form:"status"`
	Offset   int    `form:"offset"`
	Limit    int    `form:"limit"`
}

type GetJobsResponse struct {
	router.Page `json:"-"`
	Jobs        []Job `json:"jobs"`
}

type CloseJobRequest struct {
	ID string `uri:"id"`
}

type CloseJobResponse struct{}

type ApplyJobRequest struct {
	JobID        string   `uri:"id"`
	ResumeURL    string   `json:"resume_url"`
	Skills       []string `json:"skills"`
	Experience   string   `json:"experience"`
	ContactEmail string   `json:"contact_email"`
	ContactPhone string   `json:"contact_phone"`
	CoverLetter  string   `json:"cover_letter"`
}

type ApplyJobResponse struct {
	Application JobApplication `json:"application"`
}

type UploadResumeRequest struct{}

type UploadResumeResponse struct {
	URL string `json:"url"`
}

type GetApplicationsRequest struct {
	JobID  string `uri:"id"`
	Status string `form:"status"`
	Offset int    `form:"offset"`
	Limit  int    `form:"limit"`
}

type GetApplicationsResponse struct {
	router.Page  `json:"-"`
	Applications []JobApplication `json:"applications"`
}

type GetMyApplicationsRequest struct{}

type GetMyApplicationsResponse struct {
	Applications []JobApplication `json:"applications"`
}

type ReviewApplicationRequest struct {
	ID     string `uri:"id"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type ReviewApplicationResponse struct {
	Application JobApplication `json:"application"`
}
