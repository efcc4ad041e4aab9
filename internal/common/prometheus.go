package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	RewardClaimTotal           = "reward_claims_total"
	TaskVerificationTotal      = "task_verifications_total"
	NotificationFailureTotal   = "notification_failures_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		RewardClaimTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RewardClaimTotal,
			Help: "Count of successful reward claims",
		}, []string{"tenant_id"}),
		TaskVerificationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: TaskVerificationTotal,
			Help: "Count of task verifications by action",
		}, []string{"action"}),
		NotificationFailureTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: NotificationFailureTotal,
			Help: "Count of notifications which could not be dispatched",
		}, []string{"type"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
	}
)
