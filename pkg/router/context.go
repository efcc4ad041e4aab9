package router

import "context"

// valueContext keeps deadline and cancellation of the request context while
// looking values up in the request first and the root context second.
type valueContext struct {
	context.Context
	values context.Context
}

func mergeContext(request, root context.Context) context.Context {
	return &valueContext{Context: request, values: root}
}

func (c *valueContext) Value(key any) any {
	if v := c.Context.Value(key); v != nil {
		return v
	}

	return c.values.Value(key)
}
