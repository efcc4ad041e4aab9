package entity

import (
	"time"

	"github.com/alumnet-lab/backend/pkg/enum"
)

type SharePlatform string

var (
	ShareFacebook = enum.New(SharePlatform("facebook"))
	ShareTwitter  = enum.New(SharePlatform("twitter"))
	ShareLinkedIn = enum.New(SharePlatform("linkedin"))
	ShareWhatsApp = enum.New(SharePlatform("whatsapp"))
	ShareEmail    = enum.New(SharePlatform("email"))
	ShareCopyLink = enum.New(SharePlatform("copy_link"))
	ShareOther    = enum.New(SharePlatform("other"))
)

// Share is stored in a document collection rather than the SQL database.
type Share struct {
	ID        string         `bson:"_id"`
	PostID    string         `bson:"post_id"`
	UserID    string         `bson:"user_id,omitempty"`
	TenantID  string         `bson:"tenant_id"`
	Platform  SharePlatform  `bson:"platform"`
	Metadata  map[string]any `bson:"metadata,omitempty"`
	CreatedAt time.Time      `bson:"created_at"`
}
