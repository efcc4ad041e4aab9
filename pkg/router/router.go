package router

import (
	"context"
	"net/http"
	"time"

	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It returns the context which is
// passed to the next middleware. Returning an error stops the chain.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response was written.
type CloserFunc func(ctx context.Context)

type Router struct {
	engine *gin.Engine
	inner  gin.IRouter

	// root carries the process-wide values (configs, logger, db, token
	// engine). Every request context inherits them.
	root context.Context

	befores []MiddlewareFunc
	afters  []CloserFunc
}

func New(ctx context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	// Forwarding headers are ignored until proxies are configured.
	if err := engine.SetTrustedProxies(nil); err != nil {
		panic(err)
	}

	return &Router{engine: engine, inner: engine, root: ctx}
}

// SetTrustedProxies lists the ips or CIDRs of the reverse proxies whose
// X-Forwarded-For and X-Real-IP headers are honoured.
func (r *Router) SetTrustedProxies(proxies []string) error {
	return r.engine.SetTrustedProxies(proxies)
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(closer CloserFunc) {
	r.afters = append(r.afters, closer)
}

// Branch returns a router sharing the routes of r. Middlewares added to the
// branch do not affect r.
func (r *Router) Branch() *Router {
	return &Router{
		engine:  r.engine,
		inner:   r.inner,
		root:    r.root,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]CloserFunc{}, r.afters...),
	}
}

func (r *Router) Group(prefix string) *Router {
	branch := r.Branch()
	branch.inner = r.inner.Group(prefix)
	return branch
}

// Handle registers a raw http.Handler which bypasses the middleware chain.
func (r *Router) Handle(method, pattern string, h http.Handler) {
	r.inner.Handle(method, pattern, gin.WrapH(h))
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.GET(pattern, wrap(r, http.MethodGet, http.StatusOK, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrap(r, http.MethodPost, http.StatusOK, handler))
}

// CREATE registers a POST handler which responds 201 on success.
func CREATE[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrap(r, http.MethodPost, http.StatusCreated, handler))
}

func PATCH[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.PATCH(pattern, wrap(r, http.MethodPatch, http.StatusOK, handler))
}

func DELETE[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.DELETE(pattern, wrap(r, http.MethodDelete, http.StatusOK, handler))
}

// Stream registers a handler which takes over the connection, such as a
// websocket upgrade. The middleware chain still runs before it.
func Stream(r *Router, pattern string, handler func(ctx context.Context, w http.ResponseWriter, req *http.Request)) {
	r.inner.GET(pattern, func(gctx *gin.Context) {
		ctx := r.newContext(gctx)
		ctx, err := r.runBefores(ctx)
		if err != nil {
			writeError(ctx, gctx.Writer, err)
			return
		}

		handler(ctx, gctx.Writer, gctx.Request)
	})
}

func (r *Router) newContext(gctx *gin.Context) context.Context {
	ctx := mergeContext(gctx.Request.Context(), r.root)
	ctx = xcontext.WithHTTPRequest(ctx, gctx.Request)
	ctx = xcontext.WithClientIP(ctx, gctx.ClientIP())
	ctx = xcontext.WithStartTime(ctx, time.Now())
	return ctx
}

func (r *Router) runBefores(ctx context.Context) (context.Context, error) {
	for _, middleware := range r.befores {
		var err error
		ctx, err = middleware(ctx)
		if err != nil {
			return ctx, err
		}
	}

	return ctx, nil
}

func (r *Router) runAfters(ctx context.Context) {
	for _, closer := range r.afters {
		closer(ctx)
	}
}
