package middleware

import (
	"context"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/router"
)

type OnlyRoles struct {
	roleVerifier *common.RoleVerifier
	roles        []entity.UserRole
}

func NewOnlyRoles(roleVerifier *common.RoleVerifier, roles ...entity.UserRole) *OnlyRoles {
	return &OnlyRoles{roleVerifier: roleVerifier, roles: roles}
}

func (a *OnlyRoles) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if err := a.roleVerifier.Verify(ctx, a.roles...); err != nil {
			return ctx, err
		}

		return ctx, nil
	}
}
