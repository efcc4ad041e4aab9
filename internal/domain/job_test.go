package domain

import (
	"testing"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func newJobDomain(s *suite) JobDomain {
	return NewJobDomain(
		repository.NewJobRepository(),
		repository.NewJobApplicationRepository(),
		s.storage,
		s.notifier,
	)
}

func Test_jobDomain_ApplyReview(t *testing.T) {
	s := newSuite(t)
	d := newJobDomain(s)

	_, err := d.Create(s.as(s.student), &model.CreateJobRequest{Title: "Intern", Company: "Acme"})
	requireErrorCode(t, err, errorx.PermissionDenied)

	_, err = d.Create(s.as(s.alumni), &model.CreateJobRequest{Title: "Intern"})
	requireErrorCode(t, err, errorx.BadRequest)

	job, err := d.Create(s.as(s.alumni), &model.CreateJobRequest{
		Title:    "Backend engineer",
		Company:  "Acme",
		Location: "Remote",
	})
	require.NoError(t, err)

	_, err = d.Apply(s.as(s.alumni), &model.ApplyJobRequest{JobID: job.ID})
	requireErrorCode(t, err, errorx.BadRequest)

	applied, err := d.Apply(s.as(s.student), &model.ApplyJobRequest{
		JobID:        job.ID,
		Skills:       []string{"go", "sql"},
		ContactEmail: "Student@Example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "Applied", applied.Application.Status)
	require.Equal(t, "student@example.com", applied.Application.ContactEmail)
	require.Equal(t, []string{"go", "sql"}, applied.Application.Skills)

	_, err = d.Apply(s.as(s.student), &model.ApplyJobRequest{JobID: job.ID})
	requireErrorCode(t, err, errorx.AlreadyExists)

	// Only the poster or an admin sees and reviews applications.
	_, err = d.GetApplications(s.as(s.staff), &model.GetApplicationsRequest{JobID: job.ID})
	requireErrorCode(t, err, errorx.PermissionDenied)

	applications, err := d.GetApplications(s.as(s.alumni), &model.GetApplicationsRequest{JobID: job.ID})
	require.NoError(t, err)
	require.Len(t, applications.Applications, 1)

	_, err = d.Review(s.as(s.alumni), &model.ReviewApplicationRequest{ID: applied.Application.ID, Status: "Applied"})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = d.Review(s.as(s.staff), &model.ReviewApplicationRequest{ID: applied.Application.ID, Status: "Hired"})
	requireErrorCode(t, err, errorx.PermissionDenied)

	reviewed, err := d.Review(s.as(s.admin), &model.ReviewApplicationRequest{
		ID:     applied.Application.ID,
		Status: "Shortlisted",
		Notes:  "Strong profile",
	})
	require.NoError(t, err)
	require.Equal(t, "Shortlisted", reviewed.Application.Status)
	require.Equal(t, s.admin.ID, reviewed.Application.ReviewerID)
	require.NotNil(t, reviewed.Application.ReviewedAt)

	messages := s.notifier.MessagesOf(common.NotificationJobApplication)
	require.Len(t, messages, 1)
	require.Equal(t, s.student.ID, messages[0].UserID)

	mine, err := d.GetMyApplications(s.as(s.student), &model.GetMyApplicationsRequest{})
	require.NoError(t, err)
	require.Len(t, mine.Applications, 1)
	require.Equal(t, "Shortlisted", mine.Applications[0].Status)
}

func Test_jobDomain_Close(t *testing.T) {
	s := newSuite(t)
	d := newJobDomain(s)

	job, err := d.Create(s.as(s.alumni), &model.CreateJobRequest{Title: "Analyst", Company: "Acme"})
	require.NoError(t, err)

	_, err = d.Close(s.as(s.staff), &model.CloseJobRequest{ID: job.ID})
	requireErrorCode(t, err, errorx.PermissionDenied)

	_, err = d.Close(s.as(s.alumni), &model.CloseJobRequest{ID: job.ID})
	require.NoError(t, err)

	_, err = d.Close(s.as(s.admin), &model.CloseJobRequest{ID: job.ID})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = d.Apply(s.as(s.staff), &model.ApplyJobRequest{JobID: job.ID})
	requireErrorCode(t, err, errorx.BadRequest)

	open, err := d.GetList(s.as(s.student), &model.GetJobsRequest{Status: "open"})
	require.NoError(t, err)
	require.Empty(t, open.Jobs)

	all, err := d.GetList(s.as(s.student), &model.GetJobsRequest{})
	require.NoError(t, err)
	require.Len(t, all.Jobs, 1)
}
