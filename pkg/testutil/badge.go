package testutil

import (
	"context"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/errorx"
)

type MockBadgeScanner struct {
	CriteriaValue entity.BadgeCriteriaType
	ScanFunc      func(ctx context.Context, userID, tenantID string) ([]entity.Badge, error)
}

func (b *MockBadgeScanner) Criteria() entity.BadgeCriteriaType {
	return b.CriteriaValue
}

func (b *MockBadgeScanner) Scan(ctx context.Context, userID, tenantID string) ([]entity.Badge, error) {
	if b.ScanFunc != nil {
		return b.ScanFunc(ctx, userID, tenantID)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}
