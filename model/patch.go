package model

import (
	"encoding/json"
	"time"
)

// Field is a tri-state patch value: absent, present-and-null, or present with
// a value. A plain pointer cannot tell "leave unchanged" apart from "clear",
// which the partial-update paths need for description, due date, and assignee.
//
// When used in a JSON request body, a missing key leaves the field absent and
// an explicit null marks it present-and-null.
type Field[T any] struct {
	present bool
	value   *T
}

// FieldOf returns a present field holding v.
func FieldOf[T any](v T) Field[T] {
	return Field[T]{present: true, value: &v}
}

// NullField returns a present field holding null.
func NullField[T any]() Field[T] {
	return Field[T]{present: true}
}

// Present reports whether the field was part of the patch at all.
func (f Field[T]) Present() bool { return f.present }

// Ptr returns the held value, nil when the field is absent or null.
func (f Field[T]) Ptr() *T { return f.value }

// Get returns the held value and whether a non-null value is present.
func (f Field[T]) Get() (T, bool) {
	if f.value == nil {
		var zero T
		return zero, false
	}
	return *f.value, true
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true
	if string(data) == "null" {
		f.value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.value = &v
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.value)
}

// TodoPatch describes a partial update to a todo. Only present fields are
// written; an empty patch is a no-op read-back.
type TodoPatch struct {
	Title       Field[string]
	Description Field[string]
	Completed   Field[bool]
	AssigneeID  Field[uint]
	DueDate     Field[string]
	CompletedAt Field[time.Time]
}

// Empty reports whether no field of the patch is present.
func (p TodoPatch) Empty() bool {
	return !p.Title.Present() && !p.Description.Present() && !p.Completed.Present() &&
		!p.AssigneeID.Present() && !p.DueDate.Present() && !p.CompletedAt.Present()
}
