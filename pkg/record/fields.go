package record

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// StringField binds a string member
func StringField[V any](name string, column int, required bool, ptr func(*V) *string) Field[V] {
	return Field[V]{
		Name:     name,
		Column:   column,
		Type:     String,
		Required: required,
		Format: func(v *V) (string, bool) {
			return *ptr(v), true
		},
		Parse: func(v *V, text string) error {
			*ptr(v) = text
			return nil
		},
	}
}

// DecimalField binds a nullable decimal member. An empty cell decodes to null.
func DecimalField[V any](name string, column int, required bool, ptr func(*V) *decimal.NullDecimal) Field[V] {
	return Field[V]{
		Name:     name,
		Column:   column,
		Type:     Decimal,
		Required: required,
		Format: func(v *V) (string, bool) {
			d := ptr(v)
			if !d.Valid {
				return "", false
			}
			return d.Decimal.String(), true
		},
		Parse: func(v *V, text string) error {
			if text == "" {
				*ptr(v) = decimal.NullDecimal{}
				return nil
			}
			d, err := decimal.NewFromString(text)
			if err != nil {
				return fmt.Errorf("field %s: %q is not a decimal", name, text)
			}
			*ptr(v) = decimal.NewNullDecimal(d)
			return nil
		},
	}
}

// IntegerField binds an int member. An empty cell decodes to zero.
func IntegerField[V any](name string, column int, required bool, ptr func(*V) *int) Field[V] {
	return Field[V]{
		Name:     name,
		Column:   column,
		Type:     Integer,
		Required: required,
		Format: func(v *V) (string, bool) {
			return strconv.Itoa(*ptr(v)), true
		},
		Parse: func(v *V, text string) error {
			if text == "" {
				*ptr(v) = 0
				return nil
			}
			n, err := strconv.Atoi(text)
			if err != nil {
				return fmt.Errorf("field %s: %q is not an integer", name, text)
			}
			*ptr(v) = n
			return nil
		},
	}
}
