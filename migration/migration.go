package migration

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/xcontext"
)

// Migrators can be run one by one with the migrate command. The key of a
// versioned migrator is its four-digit version, Migrate runs all of them.
var Migrators = map[string]func(context.Context) error{
	"auto": AutoMigrate,
	"0000": migrate0000,
	"0001": migrate0001,
}

// Migrate runs every versioned migrator which was not applied yet, in order.
// Each version runs in its own transaction together with its record in the
// migrations table.
func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	var current entity.Migration
	err := xcontext.DB(ctx).Model(&entity.Migration{}).
		Select("COALESCE(MAX(version), -1) AS version").
		Scan(&current).Error
	if err != nil {
		return err
	}

	for _, version := range versions() {
		if version <= current.Version {
			continue
		}

		if err := apply(ctx, version); err != nil {
			return fmt.Errorf("migrate version %04d: %w", version, err)
		}

		xcontext.Logger(ctx).Infof("Migrated to version %04d", version)
	}

	return nil
}

// AutoMigrate brings every table to the current entity definitions without
// recording a version.
func AutoMigrate(ctx context.Context) error {
	return entity.MigrateTable(ctx)
}

// migrate0000 creates the initial schema.
func migrate0000(ctx context.Context) error {
	return entity.MigrateTable(ctx)
}

func apply(ctx context.Context, version int) error {
	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	if err := Migrators[fmt.Sprintf("%04d", version)](txCtx); err != nil {
		return err
	}

	if err := xcontext.DB(txCtx).Create(&entity.Migration{Version: version}).Error; err != nil {
		return err
	}

	return xcontext.CommitDBTransaction(txCtx)
}

func versions() []int {
	result := []int{}
	for key := range Migrators {
		if version, err := strconv.Atoi(key); err == nil {
			result = append(result, version)
		}
	}

	sort.Ints(result)
	return result
}
