package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alumnet-lab/backend/internal/middleware"
	"github.com/alumnet-lab/backend/pkg/ratelimit"
	"github.com/alumnet-lab/backend/pkg/router"
	"github.com/alumnet-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type pingResponse struct{}

func newLimitedRouter(t *testing.T, trustedProxies ...string) http.Handler {
	limiter, err := ratelimit.New(0.001, 1, 100)
	require.NoError(t, err)

	r := router.New(testutil.NewMockContext())
	require.NoError(t, r.SetTrustedProxies(trustedProxies))
	r.Before(middleware.RateLimit(limiter))
	router.GET(r, "/ping", func(ctx context.Context, req *struct{}) (*pingResponse, error) {
		return &pingResponse{}, nil
	})

	return r.Handler()
}

func ping(h http.Handler, remoteAddr string, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_IgnoresForwardedForOfClients(t *testing.T) {
	h := newLimitedRouter(t)

	require.Equal(t, http.StatusOK, ping(h, "1.2.3.4:5000", ""))
	for i := 0; i < 20; i++ {
		code := ping(h, "1.2.3.4:5000", fmt.Sprintf("10.1.0.%d", i))
		require.Equal(t, http.StatusTooManyRequests, code)
	}

	// Another peer has its own budget.
	require.Equal(t, http.StatusOK, ping(h, "5.6.7.8:5000", ""))
}

func TestRateLimit_TrustedProxy(t *testing.T) {
	h := newLimitedRouter(t, "10.0.0.0/8")

	require.Equal(t, http.StatusOK, ping(h, "10.0.0.1:80", "1.1.1.1"))
	require.Equal(t, http.StatusTooManyRequests, ping(h, "10.0.0.2:80", "1.1.1.1"))
	require.Equal(t, http.StatusOK, ping(h, "10.0.0.1:80", "2.2.2.2"))

	// Hops prepended by the client don't change who is limited.
	require.Equal(t, http.StatusTooManyRequests, ping(h, "10.0.0.1:80", "9.9.9.9, 1.1.1.1"))
}
