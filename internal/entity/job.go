package entity

import (
	"database/sql"

	"github.com/alumnet-lab/backend/pkg/enum"
)

type JobStatus string

var (
	JobOpen   = enum.New(JobStatus("open"))
	JobClosed = enum.New(JobStatus("closed"))
)

type Job struct {
	Base
	TenantID    string `gorm:"index"`
	Title       string
	Company     string
	Location    string
	Description string
	PostedBy    string
	Status      JobStatus
}

type JobApplicationStatus string

var (
	ApplicationApplied     = enum.New(JobApplicationStatus("Applied"))
	ApplicationShortlisted = enum.New(JobApplicationStatus("Shortlisted"))
	ApplicationRejected    = enum.New(JobApplicationStatus("Rejected"))
	ApplicationHired       = enum.New(JobApplicationStatus("Hired"))
)

type JobApplication struct {
	Base
	JobID        string `gorm:"uniqueIndex:idx_job_applicant"`
	Job          Job    `gorm:"foreignKey:JobID"`
	ApplicantID  string `gorm:"uniqueIndex:idx_job_applicant"`
	Applicant    User   `gorm:"foreignKey:ApplicantID"`
	TenantID     string `gorm:"index"`
	ResumeURL    string
	Skills       Array[string]
	Experience   string
	ContactEmail string
	ContactPhone string
	CoverLetter  string
	Status       JobApplicationStatus
	ReviewerID   sql.NullString
	ReviewedAt   sql.NullTime
	Notes        string
}
