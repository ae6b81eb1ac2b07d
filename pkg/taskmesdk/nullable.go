package taskmesdk

import (
	"bytes"
	"encoding/json"
)

// Nullable tells an absent JSON field apart from an explicit null. Set is
// true whenever the key was present.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Value returns a present, non-null field.
func Value[T any](v T) Nullable[T] { return Nullable[T]{Set: true, Value: &v} }

// Null returns a present field holding null.
func Null[T any]() Nullable[T] { return Nullable[T]{Set: true} }

func (n Nullable[T]) IsZero() bool { return !n.Set }

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
