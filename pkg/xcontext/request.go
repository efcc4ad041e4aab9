package xcontext

import "context"

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestUserKey{}, id)
}

func RequestUserID(ctx context.Context) string {
	id, _ := ctx.Value(requestUserKey{}).(string)
	return id
}

func WithRequestTenantID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestTenantKey{}, id)
}

func RequestTenantID(ctx context.Context) string {
	id, _ := ctx.Value(requestTenantKey{}).(string)
	return id
}

func WithRequestRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, requestRoleKey{}, role)
}

func RequestRole(ctx context.Context) string {
	role, _ := ctx.Value(requestRoleKey{}).(string)
	return role
}
