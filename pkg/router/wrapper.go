package router

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func wrap[Request, Response any](
	r *Router,
	method string,
	successStatus int,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		ctx := r.newContext(gctx)

		defer func() {
			if p := recover(); p != nil {
				xcontext.Logger(ctx).Errorf("Panic when handling %s %s: %v\n%s",
					method, gctx.Request.URL.Path, p, debug.Stack())

				msg := errorx.Unknown.Message
				if !xcontext.Configs(ctx).IsProduction() {
					msg = fmt.Sprintf("%v\n%s", p, debug.Stack())
				}

				ctx = xcontext.WithError(ctx, errorx.Unknown)
				writeJSON(ctx, gctx.Writer, http.StatusInternalServerError, response{Message: msg})
				r.runAfters(ctx)
			}
		}()

		resp, err := func() (*Response, error) {
			var err error
			ctx, err = r.runBefores(ctx)
			if err != nil {
				return nil, err
			}

			var req Request
			if err := bind(gctx, method, &req); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind request: %v", err)
				return nil, errorx.New(errorx.BadRequest, "Invalid request: %v", err)
			}

			return handler(ctx, &req)
		}()

		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(ctx, gctx.Writer, err)
		} else {
			writeResponse(ctx, gctx.Writer, successStatus, resp)
		}

		r.runAfters(ctx)
	}
}

func bind(gctx *gin.Context, method string, req any) error {
	if len(gctx.Params) > 0 {
		if err := gctx.ShouldBindUri(req); err != nil {
			return err
		}
	}

	if len(gctx.Request.URL.RawQuery) > 0 {
		if err := gctx.ShouldBindQuery(req); err != nil {
			return err
		}
	}

	if method == http.MethodGet || method == http.MethodDelete {
		return nil
	}

	if gctx.Request.ContentLength == 0 || gctx.ContentType() != binding.MIMEJSON {
		return nil
	}

	return gctx.ShouldBindJSON(req)
}
