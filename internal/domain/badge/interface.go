package badge

import (
	"context"

	"github.com/alumnet-lab/backend/internal/entity"
)

type BadgeScanner interface {
	// Criteria returns the criteria type which this scanner evaluates.
	Criteria() entity.BadgeCriteriaType

	// Scan returns every active badge of the tenant (or global) whose criteria
	// the user meets. It doesn't care whether user already received them.
	Scan(ctx context.Context, userID, tenantID string) ([]entity.Badge, error)
}
