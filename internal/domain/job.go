package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/domain/notification"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/enum"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/router"
	"github.com/alumnet-lab/backend/pkg/storage"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobDomain interface {
	Create(context.Context, *model.CreateJobRequest) (*model.CreateJobResponse, error)
	GetList(context.Context, *model.GetJobsRequest) (*model.GetJobsResponse, error)
	Close(context.Context, *model.CloseJobRequest) (*model.CloseJobResponse, error)
	Apply(context.Context, *model.ApplyJobRequest) (*model.ApplyJobResponse, error)
	UploadResume(context.Context, *model.UploadResumeRequest) (*model.UploadResumeResponse, error)
	GetApplications(context.Context, *model.GetApplicationsRequest) (*model.GetApplicationsResponse, error)
	GetMyApplications(context.Context, *model.GetMyApplicationsRequest) (*model.GetMyApplicationsResponse, error)
	Review(context.Context, *model.ReviewApplicationRequest) (*model.ReviewApplicationResponse, error)
}

type jobDomain struct {
	jobRepo         repository.JobRepository
	applicationRepo repository.JobApplicationRepository
	storage         storage.Storage
	notifier        notification.Notifier
}

func NewJobDomain(
	jobRepo repository.JobRepository,
	applicationRepo repository.JobApplicationRepository,
	storage storage.Storage,
	notifier notification.Notifier,
) JobDomain {
	return &jobDomain{
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		storage:         storage,
		notifier:        notifier,
	}
}

func (d *jobDomain) Create(ctx context.Context, req *model.CreateJobRequest) (*model.CreateJobResponse, error) {
	if common.HasRole(ctx, entity.RoleStudent) {
		return nil, errorx.New(errorx.PermissionDenied, "Students cannot post jobs")
	}

	tenantID, err := common.ResolveTenantID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Require title")
	}

	if req.Company == "" {
		return nil, errorx.New(errorx.BadRequest, "Require company")
	}

	job := &entity.Job{
		Base:        entity.Base{ID: uuid.NewString()},
		TenantID:    tenantID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: req.Description,
		PostedBy:    xcontext.RequestUserID(ctx),
		Status:      entity.JobOpen,
	}
	if err := d.jobRepo.Create(ctx, job); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create job: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateJobResponse{ID: job.ID}, nil
}

func (d *jobDomain) GetList(ctx context.Context, req *model.GetJobsRequest) (*model.GetJobsResponse, error) {
	tenantID, err := common.ResolveTenantID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	offset, limit, err := common.Paginate(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	var status entity.JobStatus
	if req.Status != "" {
		status, err = enum.ToEnum[entity.JobStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status")
		}
	}

	jobs, total, err := d.jobRepo.GetList(ctx, tenantID, status, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get jobs: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Job{}
	for i := range jobs {
		result = append(result, convertJob(&jobs[i]))
	}

	return &model.GetJobsResponse{Page: router.NewPage(offset, limit, total), Jobs: result}, nil
}

func (d *jobDomain) Close(ctx context.Context, req *model.CloseJobRequest) (*model.CloseJobResponse, error) {
	job, err := d.getManagedJob(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.jobRepo.UpdateStatus(ctx, job.ID, entity.JobOpen, entity.JobClosed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Job is already closed")
		}

		xcontext.Logger(ctx).Errorf("Cannot close job: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CloseJobResponse{}, nil
}

func (d *jobDomain) Apply(ctx context.Context, req *model.ApplyJobRequest) (*model.ApplyJobResponse, error) {
	job, err := d.getJob(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	if job.Status != entity.JobOpen {
		return nil, errorx.New(errorx.BadRequest, "Job is closed")
	}

	userID := xcontext.RequestUserID(ctx)
	if job.PostedBy == userID {
		return nil, errorx.New(errorx.BadRequest, "Cannot apply to your own job")
	}

	if req.ContactEmail != "" {
		if req.ContactEmail, err = normalizeEmail(req.ContactEmail); err != nil {
			return nil, err
		}
	}

	_, err = d.applicationRepo.Get(ctx, job.ID, userID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You already applied to this job")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get application: %v", err)
		return nil, errorx.Unknown
	}

	application := &entity.JobApplication{
		Base:         entity.Base{ID: uuid.NewString()},
		JobID:        job.ID,
		ApplicantID:  userID,
		TenantID:     job.TenantID,
		ResumeURL:    req.ResumeURL,
		Skills:       entity.Array[string](req.Skills),
		Experience:   req.Experience,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		CoverLetter:  req.CoverLetter,
		Status:       entity.ApplicationApplied,
	}
	if err := d.applicationRepo.Create(ctx, application); err != nil {
		// The unique index catches a concurrent application of the same user.
		if _, getErr := d.applicationRepo.Get(ctx, job.ID, userID); getErr == nil {
			return nil, errorx.New(errorx.AlreadyExists, "You already applied to this job")
		}

		xcontext.Logger(ctx).Errorf("Cannot create application: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ApplyJobResponse{Application: convertJobApplication(application)}, nil
}

func (d *jobDomain) UploadResume(
	ctx context.Context, req *model.UploadResumeRequest,
) (*model.UploadResumeResponse, error) {
	resp, err := common.ProcessFile(ctx, d.storage, "file", "resumes")
	if err != nil {
		return nil, err
	}

	return &model.UploadResumeResponse{URL: resp.URL}, nil
}

func (d *jobDomain) GetApplications(
	ctx context.Context, req *model.GetApplicationsRequest,
) (*model.GetApplicationsResponse, error) {
	job, err := d.getManagedJob(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	offset, limit, err := common.Paginate(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	var status entity.JobApplicationStatus
	if req.Status != "" {
		status, err = enum.ToEnum[entity.JobApplicationStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status")
		}
	}

	applications, total, err := d.applicationRepo.GetListByJobID(ctx, job.ID, status, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get applications: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.JobApplication{}
	for i := range applications {
		result = append(result, convertJobApplication(&applications[i]))
	}

	return &model.GetApplicationsResponse{
		Page:         router.NewPage(offset, limit, total),
		Applications: result,
	}, nil
}

func (d *jobDomain) GetMyApplications(
	ctx context.Context, req *model.GetMyApplicationsRequest,
) (*model.GetMyApplicationsResponse, error) {
	applications, err := d.applicationRepo.GetListByApplicantID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get my applications: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.JobApplication{}
	for i := range applications {
		result = append(result, convertJobApplication(&applications[i]))
	}

	return &model.GetMyApplicationsResponse{Applications: result}, nil
}

func (d *jobDomain) Review(
	ctx context.Context, req *model.ReviewApplicationRequest,
) (*model.ReviewApplicationResponse, error) {
	status, err := enum.ToEnum[entity.JobApplicationStatus](req.Status)
	if err != nil || status == entity.ApplicationApplied {
		return nil, errorx.New(errorx.BadRequest, "Status must be Shortlisted, Rejected or Hired")
	}

	application, err := d.applicationRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found application")
		}

		xcontext.Logger(ctx).Errorf("Cannot get application: %v", err)
		return nil, errorx.Unknown
	}

	job, err := d.getManagedJob(ctx, application.JobID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reviewerID := xcontext.RequestUserID(ctx)
	err = d.applicationRepo.UpdateByID(ctx, application.ID, map[string]any{
		"status":      status,
		"notes":       req.Notes,
		"reviewer_id": reviewerID,
		"reviewed_at": now,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot review application: %v", err)
		return nil, errorx.Unknown
	}

	application.Status = status
	application.Notes = req.Notes
	application.ReviewerID = sql.NullString{Valid: true, String: reviewerID}
	application.ReviewedAt = sql.NullTime{Valid: true, Time: now}

	d.notifier.Notify(ctx, notification.Message{
		TenantID: application.TenantID,
		UserID:   application.ApplicantID,
		Type:     common.NotificationJobApplication,
		Title:    "Job application updated",
		Data: map[string]any{
			"Job":            job.Title,
			"Status":         string(status),
			"application_id": application.ID,
		},
	})

	return &model.ReviewApplicationResponse{Application: convertJobApplication(application)}, nil
}

func (d *jobDomain) getJob(ctx context.Context, id string) (*entity.Job, error) {
	job, err := d.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found job")
		}

		xcontext.Logger(ctx).Errorf("Cannot get job: %v", err)
		return nil, errorx.Unknown
	}

	if err := common.CheckTenant(ctx, job.TenantID); err != nil {
		return nil, errorx.New(errorx.NotFound, "Not found job")
	}

	return job, nil
}

// getManagedJob returns the job if the caller posted it or administers its
// tenant.
func (d *jobDomain) getManagedJob(ctx context.Context, id string) (*entity.Job, error) {
	job, err := d.getJob(ctx, id)
	if err != nil {
		return nil, err
	}

	if job.PostedBy != xcontext.RequestUserID(ctx) && !common.IsAdmin(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the poster or an admin can manage this job")
	}

	return job, nil
}
