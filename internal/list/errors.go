package list

import "errors"

var (
	// ErrListNotFound indicates no list matches the given id or share code.
	ErrListNotFound = errors.New("list not found")
	// ErrNameRequired is returned when the list name is empty after trimming.
	ErrNameRequired = errors.New("list name required")
	// ErrAlreadyMember is returned when a user joins a list they belong to.
	ErrAlreadyMember = errors.New("already a member of this list")
	// ErrNotMember indicates the actor does not belong to the list.
	ErrNotMember = errors.New("not a member of this list")
	// ErrShareCodeExhausted signals the code generator ran out of attempts.
	ErrShareCodeExhausted = errors.New("share code generation exhausted")
)
