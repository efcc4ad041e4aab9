package entity

import (
	"time"

	"github.com/alumnet-lab/backend/pkg/enum"
)

type InvitationStatus string

var (
	InvitationPending  = enum.New(InvitationStatus("pending"))
	InvitationSent     = enum.New(InvitationStatus("sent"))
	InvitationOpened   = enum.New(InvitationStatus("opened"))
	InvitationAccepted = enum.New(InvitationStatus("accepted"))
	InvitationExpired  = enum.New(InvitationStatus("expired"))
)

// ActiveInvitationStatuses are the statuses which block a new invitation to the
// same email.
var ActiveInvitationStatuses = []InvitationStatus{InvitationPending, InvitationSent}

type Invitation struct {
	Base
	TenantID  string `gorm:"index"`
	Email     string `gorm:"index"`
	Name      string
	Phone     string
	Role      UserRole
	Token     string `gorm:"unique"`
	Status    InvitationStatus
	ExpiresAt time.Time `gorm:"index"`
	InviterID string
}
