package domain

import (
	"database/sql"
	"time"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
)

func nullTimeToPtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}

	v := t.Time
	return &v
}

func ptrToNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}

	return sql.NullTime{Valid: true, Time: *t}
}

func convertUser(user *entity.User, includeSensitive bool) model.User {
	if user == nil {
		return model.User{}
	}

	u := model.User{
		ID:             user.ID,
		TenantID:       user.TenantID,
		Name:           user.Name,
		Role:           string(user.Role),
		Department:     user.Department,
		GraduationYear: user.GraduationYear,
	}

	if includeSensitive {
		u.Email = user.Email
	}

	return u
}

func convertTenant(tenant *entity.Tenant) model.Tenant {
	if tenant == nil {
		return model.Tenant{}
	}

	return model.Tenant{
		ID:        tenant.ID,
		Name:      tenant.Name,
		Handle:    tenant.Handle,
		Domain:    tenant.Domain,
		Active:    tenant.Active,
		CreatedAt: tenant.CreatedAt,
	}
}

func convertRewardTasks(tasks []entity.RewardTask) []model.RewardTask {
	result := []model.RewardTask{}
	for _, t := range tasks {
		result = append(result, model.RewardTask{
			ID:          t.ID,
			Type:        t.Type,
			Title:       t.Title,
			Description: t.Description,
			Target:      t.Target,
			Points:      t.Points,
		})
	}
	return result
}

func convertReward(reward *entity.Reward) model.Reward {
	if reward == nil {
		return model.Reward{}
	}

	return model.Reward{
		ID:                   reward.ID,
		TenantID:             reward.TenantID,
		Title:                reward.Title,
		Description:          reward.Description,
		Category:             reward.Category,
		Cost:                 reward.Cost,
		StartAt:              nullTimeToPtr(reward.StartAt),
		EndAt:                nullTimeToPtr(reward.EndAt),
		Active:               reward.Active,
		Featured:             reward.Featured,
		RequiresVerification: reward.RequiresVerification,
		Tasks:                convertRewardTasks(reward.Tasks),
		CreatedBy:            reward.CreatedBy,
		CreatedAt:            reward.CreatedAt,
	}
}

func convertActivity(activity *entity.UserTaskActivity) model.Activity {
	if activity == nil {
		return model.Activity{}
	}

	return model.Activity{
		ID:          activity.ID,
		RewardID:    activity.RewardID,
		TaskID:      activity.TaskID,
		UserID:      activity.UserID,
		TenantID:    activity.TenantID,
		Amount:      activity.Amount,
		Points:      activity.Points,
		Status:      string(activity.Status),
		VerifierID:  activity.VerifierID.String,
		VerifiedAt:  nullTimeToPtr(activity.VerifiedAt),
		Reason:      activity.Reason,
		SubmittedAt: nullTimeToPtr(activity.SubmittedAt),
		ClaimedAt:   nullTimeToPtr(activity.ClaimedAt),
		CreatedAt:   activity.CreatedAt,
		UpdatedAt:   activity.UpdatedAt,
	}
}

func convertActivities(activities []entity.UserTaskActivity) []model.Activity {
	result := []model.Activity{}
	for i := range activities {
		result = append(result, convertActivity(&activities[i]))
	}
	return result
}

func convertRedemption(redemption *entity.Redemption) model.Redemption {
	if redemption == nil {
		return model.Redemption{}
	}

	return model.Redemption{
		ID:          redemption.ID,
		TenantID:    redemption.TenantID,
		RewardID:    redemption.RewardID,
		UserID:      redemption.UserID,
		Cost:        redemption.Cost,
		VoucherCode: redemption.VoucherCode,
		IssuerID:    redemption.IssuerID,
		Note:        redemption.Note,
		CreatedAt:   redemption.CreatedAt,
	}
}

func convertBadge(badge *entity.Badge) model.Badge {
	if badge == nil {
		return model.Badge{}
	}

	return model.Badge{
		ID:                  badge.ID,
		TenantID:            badge.TenantID.String,
		Name:                badge.Name,
		Category:            badge.Category,
		Icon:                badge.Icon,
		Color:               badge.Color,
		CriteriaType:        string(badge.CriteriaType),
		CriteriaValue:       badge.CriteriaValue,
		CriteriaDescription: badge.CriteriaDescription,
		Points:              badge.Points,
		Active:              badge.Active,
		Rare:                badge.Rare,
		MaxRecipients:       badge.MaxRecipients,
		CurrentRecipients:   badge.CurrentRecipients,
	}
}

func convertUserBadge(userBadge *entity.UserBadge, badge model.Badge) model.UserBadge {
	if userBadge == nil {
		return model.UserBadge{}
	}

	return model.UserBadge{
		ID:        userBadge.ID,
		UserID:    userBadge.UserID,
		Badge:     badge,
		AwardedAt: userBadge.AwardedAt,
		AwardedBy: userBadge.AwardedBy,
		Reason:    userBadge.Reason,
		Metadata:  userBadge.Metadata,
	}
}

func convertFund(fund *entity.Fund, campaignIDs []string) model.Fund {
	if fund == nil {
		return model.Fund{}
	}

	if campaignIDs == nil {
		campaignIDs = []string{}
	}

	return model.Fund{
		ID:          fund.ID,
		TenantID:    fund.TenantID,
		Name:        fund.Name,
		Description: fund.Description,
		CreatedBy:   fund.CreatedBy,
		TotalRaised: fund.TotalRaised,
		CampaignIDs: campaignIDs,
		Status:      string(fund.Status),
		CreatedAt:   fund.CreatedAt,
	}
}

func convertCampaign(campaign *entity.Campaign) model.Campaign {
	if campaign == nil {
		return model.Campaign{}
	}

	return model.Campaign{
		ID:           campaign.ID,
		FundID:       campaign.FundID,
		Title:        campaign.Title,
		Description:  campaign.Description,
		GoalAmount:   campaign.GoalAmount,
		RaisedAmount: campaign.RaisedAmount,
		Status:       string(campaign.Status),
	}
}

func convertDonation(donation *entity.Donation) model.Donation {
	if donation == nil {
		return model.Donation{}
	}

	return model.Donation{
		ID:         donation.ID,
		CampaignID: donation.CampaignID,
		DonorID:    donation.DonorID,
		Amount:     donation.Amount,
		Reference:  donation.Reference,
		CreatedAt:  donation.CreatedAt,
	}
}

func convertInvitation(invitation *entity.Invitation) model.Invitation {
	if invitation == nil {
		return model.Invitation{}
	}

	return model.Invitation{
		ID:        invitation.ID,
		TenantID:  invitation.TenantID,
		Email:     invitation.Email,
		Name:      invitation.Name,
		Phone:     invitation.Phone,
		Role:      string(invitation.Role),
		Status:    string(invitation.Status),
		ExpiresAt: invitation.ExpiresAt,
		InviterID: invitation.InviterID,
		CreatedAt: invitation.CreatedAt,
	}
}

func convertJob(job *entity.Job) model.Job {
	if job == nil {
		return model.Job{}
	}

	return model.Job{
		ID:          job.ID,
		TenantID:    job.TenantID,
		Title:       job.Title,
		Company:     job.Company,
		Location:    job.Location,
		Description: job.Description,
		PostedBy:    job.PostedBy,
		Status:      string(job.Status),
		CreatedAt:   job.CreatedAt,
	}
}

func convertJobApplication(application *entity.JobApplication) model.JobApplication {
	if application == nil {
		return model.JobApplication{}
	}

	skills := []string(application.Skills)
	if skills == nil {
		skills = []string{}
	}

	return model.JobApplication{
		ID:           application.ID,
		JobID:        application.JobID,
		ApplicantID:  application.ApplicantID,
		ResumeURL:    application.ResumeURL,
		Skills:       skills,
		Experience:   application.Experience,
		ContactEmail: application.ContactEmail,
		ContactPhone: application.ContactPhone,
		CoverLetter:  application.CoverLetter,
		Status:       string(application.Status),
		ReviewerID:   application.ReviewerID.String,
		ReviewedAt:   nullTimeToPtr(application.ReviewedAt),
		Notes:        application.Notes,
		CreatedAt:    application.CreatedAt,
	}
}

func convertNotification(notification *entity.Notification) model.Notification {
	if notification == nil {
		return model.Notification{}
	}

	return model.Notification{
		ID:        notification.ID,
		Type:      notification.Type,
		Title:     notification.Title,
		Body:      notification.Body,
		Data:      notification.Data,
		ReadAt:    nullTimeToPtr(notification.ReadAt),
		CreatedAt: notification.CreatedAt,
	}
}
