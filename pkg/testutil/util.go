package testutil

import (
	"context"
	"time"

	"github.com/alumnet-lab/backend/config"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/authenticator"
	"github.com/alumnet-lab/backend/pkg/logger"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/bwmarrin/snowflake"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "test",
		ApiServer: config.APIServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 10,
			FrontendURL:  "http://localhost:3000",
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		File: config.FileConfigs{
			MaxSize:       1 << 20,
			IconSizePixel: 64,
		},
		Reward: config.RewardConfigs{
			BlockedRoles: []string{string(entity.RoleStudent)},
			Tiers:        config.DefaultTiers,
		},
		Invitation: config.InvitationConfigs{
			TTL:   time.Hour,
			Topic: "invitation",
		},
		Notification: config.NotificationConfigs{
			Topic: "notification",
		},
	}
}

// NewMockContext returns a context holding an empty in-memory database with
// every table migrated.
func NewMockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// Every connection to :memory: opens a different database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	cfg := MockConfigs()
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

// WithUser makes ctx act as a request authenticated by user.
func WithUser(ctx context.Context, user entity.User) context.Context {
	ctx = xcontext.WithRequestUserID(ctx, user.ID)
	ctx = xcontext.WithRequestTenantID(ctx, user.TenantID)
	ctx = xcontext.WithRequestRole(ctx, string(user.Role))
	return ctx
}
