package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/alumnet-lab/backend/config"
	"github.com/alumnet-lab/backend/pkg/authenticator"
	"github.com/alumnet-lab/backend/pkg/logger"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type (
	dbKey            struct{}
	dbTxKey          struct{}
	loggerKey        struct{}
	configsKey       struct{}
	tokenEngineKey   struct{}
	httpRequestKey   struct{}
	startTimeKey     struct{}
	clientIPKey      struct{}
	requestUserKey   struct{}
	requestTenantKey struct{}
	requestRoleKey   struct{}
	errorKey         struct{}
	snowflakeKey     struct{}
)

type dbTransaction struct {
	tx *gorm.DB
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current transaction if WithDBTransaction was called on this
// context, otherwise the root database.
func DB(ctx context.Context) *gorm.DB {
	if holder, ok := ctx.Value(dbTxKey{}).(*dbTransaction); ok && holder.tx != nil {
		return holder.tx
	}

	db, _ := ctx.Value(dbKey{}).(*gorm.DB)
	return db
}

func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTxKey{}, &dbTransaction{tx: DB(ctx).Begin()})
}

// CommitDBTransaction commits the transaction opened by WithDBTransaction.
// A failed commit leaves nothing to roll back.
func CommitDBTransaction(ctx context.Context) error {
	holder, ok := ctx.Value(dbTxKey{}).(*dbTransaction)
	if !ok || holder.tx == nil {
		return nil
	}

	err := holder.tx.Commit().Error
	holder.tx = nil
	return err
}

// WithRollbackDBTransaction is a no-op after the transaction was committed, so
// it is safe to defer it right after WithDBTransaction.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(dbTxKey{}).(*dbTransaction); ok && holder.tx != nil {
		holder.tx.Rollback()
		holder.tx = nil
	}

	return ctx
}

func WithLogger(ctx context.Context, logger logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewLogger(logger.SILENCE)
	}

	return l
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, _ := ctx.Value(configsKey{}).(config.Configs)
	return cfg
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine {
	engine, _ := ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine)
	return engine
}

func WithHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, req)
}

func HTTPRequest(ctx context.Context) *http.Request {
	req, _ := ctx.Value(httpRequestKey{}).(*http.Request)
	return req
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP is the address of the caller as resolved by the router, which only
// reads forwarding headers set by trusted proxies.
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

func StartTime(ctx context.Context) time.Time {
	t, _ := ctx.Value(startTimeKey{}).(time.Time)
	return t
}

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

func Error(ctx context.Context) error {
	err, _ := ctx.Value(errorKey{}).(error)
	return err
}

func WithSnowFlake(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey{}, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	node, _ := ctx.Value(snowflakeKey{}).(*snowflake.Node)
	return node
}
