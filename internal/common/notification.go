package common

import (
	"bytes"
	"text/template"
)

const (
	NotificationTaskApproved   = "task_approved"
	NotificationTaskRejected   = "task_rejected"
	NotificationRewardClaimed  = "reward_claimed"
	NotificationBadgeAwarded   = "badge_awarded"
	NotificationInvitation     = "invitation"
	NotificationJobApplication = "job_application"
)

var notificationTemplates = map[string]string{
	NotificationTaskApproved:   "Your task {{.Task}} of {{.Reward}} was approved, you earned {{.Points}} points",
	NotificationTaskRejected:   "Your task {{.Task}} of {{.Reward}} was rejected{{if .Reason}}: {{.Reason}}{{end}}",
	NotificationRewardClaimed:  "You claimed {{.Reward}}, voucher code {{.VoucherCode}}",
	NotificationBadgeAwarded:   "You received the badge {{.Badge}}",
	NotificationInvitation:     "You are invited to join {{.Tenant}}: {{.Link}}",
	NotificationJobApplication: "Your application for {{.Job}} is now {{.Status}}",
}

// NotificationBody renders the body of a notification type. Unknown types are
// rendered as an empty string.
func NotificationBody(typ string, data any) (string, error) {
	source, ok := notificationTemplates[typ]
	if !ok {
		return "", nil
	}

	return ExecuteTemplate(source, data)
}

func ExecuteTemplate(source string, data any) (string, error) {
	tmpl, err := template.New("template").Parse(source)
	if err != nil {
		return "", err
	}

	buffer := bytes.NewBuffer(nil)
	err = tmpl.Execute(buffer, data)
	if err != nil {
		return "", err
	}

	return buffer.String(), nil
}
