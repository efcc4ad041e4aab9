package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/pkg/router"
	"github.com/alumnet-lab/backend/pkg/xcontext"
)

func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return
		}

		code := strconv.Itoa(router.StatusOf(xcontext.Error(ctx)))
		common.PromCounters[common.HTTPRequestTotal].WithLabelValues(req.Method, code).Inc()
		common.PromHistograms[common.HTTPRequestDurationSeconds].
			WithLabelValues(req.Method, code).
			Observe(time.Since(xcontext.StartTime(ctx)).Seconds())
	}
}
