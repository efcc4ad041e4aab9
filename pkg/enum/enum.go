package enum

import (
	"fmt"
	"reflect"
)

var enumManager = map[string]any{}

type enum[T comparable] struct {
	toEnum map[string]T
	values *[]T
}

// New registers the value as a member of its enum type and returns it. It is
// only called at package initialization.
func New[T comparable](value T) T {
	v := reflect.ValueOf(value)
	t := v.Type()
	if _, ok := enumManager[t.String()]; !ok {
		enumManager[t.String()] = enum[T]{toEnum: make(map[string]T), values: &[]T{}}
	}

	e := enumManager[t.String()].(enum[T])
	e.toEnum[fmt.Sprint(value)] = value
	*e.values = append(*e.values, value)
	return value
}

func ToEnum[T comparable](s string) (T, error) {
	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT).String()]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.(enum[T]).toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}

// Values returns all registered values of T in registration order.
func Values[T comparable]() []T {
	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT).String()]
	if !ok {
		return nil
	}

	return append([]T{}, *e.(enum[T]).values...)
}
