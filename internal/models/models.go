package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// FormDataVersion is the version of the permitted form field set below.
// Bump it whenever a key is added or removed.
const FormDataVersion = 1

var permittedFormKeys = map[string]struct{}{
	"name":        {},
	"symbol":      {},
	"description": {},
	"supply":      {},
	"mintPrice":   {},
	"royaltyBps":  {},
	"externalUrl": {},
	"creators":    {},
	"attributes":  {},
	"launchType":  {},
	"startDate":   {},
	"endDate":     {},
	"whitelist":   {},
}

// PermittedFormKeys returns the sorted list of keys a draft's form data may carry.
func PermittedFormKeys() []string {
	keys := make([]string, 0, len(permittedFormKeys))
	for k := range permittedFormKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormData holds the values of a creation form, keyed by field name.
type FormData map[string]any

// Validate rejects keys outside the permitted set.
func (f FormData) Validate() error {
	var unknown []string
	for k := range f {
		if _, ok := permittedFormKeys[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown form field(s): %s", strings.Join(unknown, ", "))
	}
	return nil
}

// Clone returns a shallow copy so callers never share the stored map.
func (f FormData) Clone() FormData {
	if f == nil {
		return nil
	}
	out := make(FormData, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Implement the driver.Valuer interface for FormData
func (f FormData) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Implement the sql.Scanner interface for FormData
func (f *FormData) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*f = nil
		return nil
	default:
		return errors.New("type assertion to []byte failed")
	}

	if len(raw) == 0 {
		*f = nil
		return nil
	}

	decoded, err := decodeFormData(raw)
	if err != nil {
		return err
	}
	*f = decoded
	return nil
}

// Normalize returns a copy of f with every value in the form it has after
// a trip through storage, so a saved form compares equal to its loaded form.
// Integers become int64, other numbers float64, and integers too large for
// int64 stay json.Number so no digits are lost.
func (f FormData) Normalize() (FormData, error) {
	if f == nil {
		return nil, nil
	}
	raw, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return decodeFormData(raw)
}

func decodeFormData(raw []byte) (FormData, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var f FormData
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	for k, v := range f {
		f[k] = normalizeNumbers(v)
	}
	return f, nil
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if strings.ContainsAny(t.String(), ".eE") {
			if fl, err := t.Float64(); err == nil {
				return fl
			}
		}
		return t
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
		return t
	}
	return v
}

// Optional is a patch value. The zero value means "leave the field alone";
// Some sets it and None clears it. When decoded from JSON an absent key
// stays unset and an explicit null becomes None.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

func None[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// applyRequired copies a set value into dst. Clearing a required field is an error.
func applyRequired[T any](dst *T, o Optional[T], field string) error {
	if !o.Set {
		return nil
	}
	if !o.Valid {
		return fmt.Errorf("%s cannot be cleared", field)
	}
	*dst = o.Value
	return nil
}

// applyNullable copies a set value into dst, or clears dst on None.
func applyNullable[T any](dst **T, o Optional[T]) {
	if !o.Set {
		return
	}
	if !o.Valid {
		*dst = nil
		return
	}
	v := o.Value
	*dst = &v
}
