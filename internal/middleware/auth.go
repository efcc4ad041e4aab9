package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/router"
	"github.com/alumnet-lab/backend/pkg/xcontext"
)

const bearerPrefix = "Bearer "

type AuthVerifier struct {
	allowQuery bool
	optional   bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

// WithQueryToken also accepts the token in the access_token query parameter.
// Browsers cannot set headers when opening a websocket.
func (a *AuthVerifier) WithQueryToken() *AuthVerifier {
	a.allowQuery = true
	return a
}

// Optional lets anonymous requests through. A token, if present, must still be
// valid.
func (a *AuthVerifier) Optional() *AuthVerifier {
	a.optional = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := a.token(xcontext.HTTPRequest(ctx))
		if token == "" {
			if a.optional {
				return ctx, nil
			}

			return ctx, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		var accessToken model.AccessToken
		if err := xcontext.TokenEngine(ctx).Verify(token, &accessToken); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return ctx, errorx.New(errorx.Unauthenticated, "Invalid or expired access token")
		}

		if accessToken.ID == "" {
			return ctx, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		ctx = xcontext.WithRequestUserID(ctx, accessToken.ID)
		ctx = xcontext.WithRequestTenantID(ctx, accessToken.TenantID)
		ctx = xcontext.WithRequestRole(ctx, accessToken.Role)
		return ctx, nil
	}
}

func (a *AuthVerifier) token(req *http.Request) string {
	if req == nil {
		return ""
	}

	if header := req.Header.Get("Authorization"); strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}

	if a.allowQuery {
		return req.URL.Query().Get("access_token")
	}

	return ""
}
