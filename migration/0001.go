package migration

import (
	"context"

	"github.com/alumnet-lab/backend/pkg/xcontext"
)

// migrate0001 creates the missing member record of users which were imported
// directly into the users table.
func migrate0001(ctx context.Context) error {
	return xcontext.DB(ctx).Exec(`
		INSERT INTO members (user_id, tenant_id, created_at, updated_at,
			points, total_points, completed_tasks, redemptions)
		SELECT users.id, users.tenant_id, users.created_at, users.created_at, 0, 0, 0, 0
		FROM users
		WHERE users.deleted_at IS NULL AND NOT EXISTS (
			SELECT 1 FROM members
			WHERE members.user_id=users.id AND members.tenant_id=users.tenant_id
		)`).Error
}
