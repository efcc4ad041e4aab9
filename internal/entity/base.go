package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Base is embedded by every SQL entity. Deleting an entity only sets
// DeletedAt.
type Base struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Array is a slice stored as a JSON column.
type Array[T any] []T

func (a *Array[T]) Scan(src any) error {
	return scanJSON(src, a)
}

func (a Array[T]) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Map is a free-form JSON object column.
type Map map[string]any

func (m *Map) Scan(src any) error {
	return scanJSON(src, m)
}

func (m Map) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// scanJSON decodes a JSON column into dst. NULL leaves dst untouched.
func scanJSON(src, dst any) error {
	switch t := src.(type) {
	case nil:
		return nil
	case string:
		return json.Unmarshal([]byte(t), dst)
	case []byte:
		return json.Unmarshal(t, dst)
	default:
		return fmt.Errorf("cannot scan %T into a JSON column", src)
	}
}
