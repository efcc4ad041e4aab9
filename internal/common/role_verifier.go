package common

import (
	"context"
	"errors"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RoleVerifier checks the role stored in database rather than the one in the
// access token, so a demoted user loses permissions immediately.
type RoleVerifier struct {
	userRepo repository.UserRepository
}

func NewRoleVerifier(userRepo repository.UserRepository) *RoleVerifier {
	return &RoleVerifier{userRepo: userRepo}
}

func (verifier *RoleVerifier) Verify(ctx context.Context, requiredRoles ...entity.UserRole) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	u, err := verifier.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.Unauthenticated, "User is not valid")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return errorx.Unknown
	}

	if !slices.Contains(requiredRoles, u.Role) {
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return nil
}

// HasRole only looks at the role of the access token.
func HasRole(ctx context.Context, roles ...entity.UserRole) bool {
	return slices.Contains(roles, entity.UserRole(xcontext.RequestRole(ctx)))
}

func IsAdmin(ctx context.Context) bool {
	return HasRole(ctx, entity.AdminRoles...)
}

func IsSuperAdmin(ctx context.Context) bool {
	return HasRole(ctx, entity.RoleSuperAdmin)
}

// ResolveTenantID returns the tenant which the request works on. Only super
// admins can act on a tenant other than their own.
func ResolveTenantID(ctx context.Context, tenantID string) (string, error) {
	own := xcontext.RequestTenantID(ctx)
	if tenantID == "" || tenantID == own {
		if own == "" {
			return "", errorx.New(errorx.BadRequest, "Require tenant id")
		}

		return own, nil
	}

	if !IsSuperAdmin(ctx) {
		return "", errorx.New(errorx.PermissionDenied, "Cannot access another tenant")
	}

	return tenantID, nil
}

// CheckTenant returns not found if the record doesn't belong to the tenant of
// the request. Super admins can access any tenant.
func CheckTenant(ctx context.Context, tenantID string) error {
	if IsSuperAdmin(ctx) {
		return nil
	}

	if tenantID != xcontext.RequestTenantID(ctx) {
		return errorx.New(errorx.NotFound, "Not found")
	}

	return nil
}
