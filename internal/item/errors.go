package item

import "errors"

var (
	// ErrItemNotFound signals that the item could not be located.
	ErrItemNotFound = errors.New("item not found")
	// ErrTextRequired is returned when the item text is empty after trimming.
	ErrTextRequired = errors.New("item text required")
	// ErrInvalidType rejects types outside {checkbox, counter}.
	ErrInvalidType = errors.New("invalid item type")
	// ErrParentNotFound indicates the referenced parent item does not exist.
	ErrParentNotFound = errors.New("parent item not found")
	// ErrParentListMismatch rejects parents belonging to a different list.
	ErrParentListMismatch = errors.New("parent item belongs to a different list")
	// ErrNotCheckbox is returned when toggling a non-checkbox item.
	ErrNotCheckbox = errors.New("item is not a checkbox")
	// ErrNotCounter is returned when applying a delta to a non-counter item.
	ErrNotCounter = errors.New("item is not a counter")
	// ErrInvalidCounterTarget rejects counter targets below one.
	ErrInvalidCounterTarget = errors.New("counter target must be at least 1")
)
