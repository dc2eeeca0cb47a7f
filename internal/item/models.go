package item

import (
	"time"

	"github.com/google/uuid"
)

// Type discriminates item behavior.
type Type string

const (
	// TypeCheckbox marks items with boolean done/undone state.
	TypeCheckbox Type = "checkbox"
	// TypeCounter marks items with a clamped integer value.
	TypeCounter Type = "counter"
)

// Valid reports whether the type is one of the known variants.
func (t Type) Valid() bool {
	return t == TypeCheckbox || t == TypeCounter
}

// CheckboxState holds the checkbox variant's fields. CheckedBy and CheckedAt
// are set only while the item is checked.
type CheckboxState struct {
	IsChecked         bool
	CheckedBy         *uuid.UUID
	CheckedByUsername *string
	CheckedAt         *time.Time
}

// CounterState holds the counter variant's fields. Value stays within
// [0, Target] when a target is set, otherwise [0, ∞).
type CounterState struct {
	Value  int64
	Target *int64
}

// Item is a list entry. Exactly one of Checkbox or Counter is set, matching
// Type, so the wrong variant's fields cannot be read by accident.
type Item struct {
	ID           uuid.UUID
	ListID       uuid.UUID
	Text         string
	Type         Type
	Description  *string
	ParentItemID *uuid.UUID
	Checkbox     *CheckboxState
	Counter      *CounterState
	CreatedAt    time.Time
}
