package shared

import "encoding/json"

// Optional distinguishes between a JSON field that was absent and one
// that was explicitly set, including set to null. Partial update
// requests use it so that omitted fields keep their current value
// while explicit nulls clear nullable fields.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns an Optional holding the given value
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns an Optional that was explicitly set to null
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// IsNull reports whether the field was set to an explicit null
func (o Optional[T]) IsNull() bool {
	return o.Set && o.Value == nil
}

// Get returns the value and whether a non-null value is present
func (o Optional[T]) Get() (T, bool) {
	if o.Set && o.Value != nil {
		return *o.Value, true
	}
	var zero T
	return zero, false
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when
// the field is present in the payload, so Set is always true here.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON implements json.Marshaler
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
