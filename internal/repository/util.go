package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// updateOne checks that the update affected exactly one row. No affected row
// is reported as gorm.ErrRecordNotFound, so a conditional update whose
// condition did not hold looks like a missing record.
func updateOne(tx *gorm.DB) error {
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func rangeLabel(lower, upper uint64) string {
	if upper == 0 {
		return fmt.Sprintf("%d+", lower)
	}

	return fmt.Sprintf("%d-%d", lower, upper-1)
}
