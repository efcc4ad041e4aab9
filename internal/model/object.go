package model

import (
	"time"
)

type User struct {
	ID             string `json:"id"`
	TenantID       string `json:"tenant_id"`
	Email          string `json:"email,omitempty"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Department     string `json:"department,omitempty"`
	GraduationYear int    `json:"graduation_year,omitempty"`
}

type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Handle    string    `json:"handle"`
	Domain    string    `json:"domain"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type RewardTask struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Target      int64  `json:"target"`
	Points      uint64 `json:"points"`
}

type Reward struct {
	ID                   string       `json:"id"`
	TenantID             string       `json:"tenant_id"`
	Title                string       `json:"title"`
	Description          string       `json:"description"`
	Category             string       `json:"category"`
	Cost                 uint64       `json:"cost"`
	StartAt              *time.Time   `json:"start_at,omitempty"`
	EndAt                *time.Time   `json:"end_at,omitempty"`
	Active               bool         `json:"active"`
	Featured             bool         `json:"featured"`
	RequiresVerification bool         `json:"requires_verification"`
	Tasks                []RewardTask `json:"tasks"`
	CreatedBy            string       `json:"created_by"`
	CreatedAt            time.Time    `json:"created_at"`
}

type Activity struct {
	ID          string     `json:"id"`
	RewardID    string     `json:"reward_id"`
	TaskID      string     `json:"task_id"`
	UserID      string     `json:"user_id"`
	TenantID    string     `json:"tenant_id"`
	Amount      int64      `json:"amount"`
	Points      uint64     `json:"points"`
	Status      string     `json:"status"`
	VerifierID  string     `json:"verifier_id,omitempty"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Redemption struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	RewardID    string    `json:"reward_id"`
	UserID      string    `json:"user_id"`
	Cost        uint64    `json:"cost"`
	VoucherCode string    `json:"voucher_code"`
	IssuerID    string    `json:"issuer_id"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Badge struct {
	ID                  string `json:"id"`
	TenantID            string `json:"tenant_id,omitempty"`
	Name                string `json:"name"`
	Category            string `json:"category"`
	Icon                string `json:"icon"`
	Color               string `json:"color"`
	CriteriaType        string `json:"criteria_type"`
	CriteriaValue       uint64 `json:"criteria_value"`
	CriteriaDescription string `json:"criteria_description"`
	Points              uint64 `json:"points"`
	Active              bool   `json:"active"`
	Rare                bool   `json:"rare"`
	MaxRecipients       uint64 `json:"max_recipients"`
	CurrentRecipients   uint64 `json:"current_recipients"`
}

type UserBadge struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Badge     Badge          `json:"badge"`
	AwardedAt time.Time      `json:"awarded_at"`
	AwardedBy string         `json:"awarded_by"`
	Reason    string         `json:"reason,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type UserStatistic struct {
	User        User `json:"user"`
	Value       int  `json:"value"`
	CurrentRank int  `json:"current_rank"`
}

type Fund struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	TotalRaised int64     `json:"total_raised"`
	CampaignIDs []string  `json:"campaign_ids"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type Campaign struct {
	ID           string `json:"id"`
	FundID       string `json:"fund_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	GoalAmount   int64  `json:"goal_amount"`
	RaisedAmount int64  `json:"raised_amount"`
	Status       string `json:"status"`
}

type Donation struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id"`
	DonorID    string    `json:"donor_id"`
	Amount     int64     `json:"amount"`
	Reference  string    `json:"reference"`
	CreatedAt  time.Time `json:"created_at"`
}

type Invitation struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
	InviterID string    `json:"inviter_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Job struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	PostedBy    string    `json:"posted_by"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type JobApplication struct {
	ID           string     `json:"id"`
	JobID        string     `json:"job_id"`
	ApplicantID  string     `json:"applicant_id"`
	ResumeURL    string     `json:"resume_url"`
	Skills       []string   `json:"skills"`
	Experience   string     `json:"experience"`
	ContactEmail string     `json:"contact_email"`
	ContactPhone string     `json:"contact_phone"`
	CoverLetter  string     `json:"cover_letter"`
	Status       string     `json:"status"`
	ReviewerID   string     `json:"reviewer_id,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type Notification struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      map[string]any `json:"data,omitempty"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
