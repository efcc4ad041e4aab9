package common

import (
	"context"

	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/xcontext"
)

func MapKeys[K comparable, V any](m map[K]V) []K {
	var result []K
	for k := range m {
		result = append(result, k)
	}
	return result
}

// Paginate applies the default limit and rejects limits over the configured
// maximum.
func Paginate(ctx context.Context, offset, limit int) (int, int, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	if offset < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Offset must be non-negative")
	}

	if limit == 0 {
		limit = cfg.DefaultLimit
	}

	if limit < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", cfg.MaxLimit)
	}

	return offset, limit, nil
}
