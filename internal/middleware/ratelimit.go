package middleware

import (
	"context"

	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/ratelimit"
	"github.com/alumnet-lab/backend/pkg/router"
	"github.com/alumnet-lab/backend/pkg/xcontext"
)

// RateLimit rejects requests of a client ip which exceeded its budget. The ip
// comes from the router, see Router.SetTrustedProxies.
func RateLimit(limiter *ratelimit.Limiter) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if !limiter.Allow(xcontext.ClientIP(ctx)) {
			return ctx, errorx.New(errorx.TooManyRequests, "Too many requests, please try again later")
		}

		return ctx, nil
	}
}
