package item

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/samvitchoudhary/bucketlist/internal/list"
)

// itemStore abstracts item persistence.
type itemStore interface {
	Create(ctx context.Context, it Item) (Item, error)
	Get(ctx context.Context, itemID uuid.UUID) (Item, error)
	ListForList(ctx context.Context, listID uuid.UUID) ([]Item, error)
	ToggleCheckbox(ctx context.Context, itemID, actorID uuid.UUID) (Item, error)
	ApplyCounterDelta(ctx context.Context, itemID uuid.UUID, delta int64) (Item, error)
}

// listDirectory exposes the list lookups and the membership predicate that
// gate every item operation.
type listDirectory interface {
	FindByID(ctx context.Context, listID uuid.UUID) (list.BucketList, error)
	IsMember(ctx context.Context, listID, userID uuid.UUID) (bool, error)
}

// Service orchestrates item operations.
type Service struct {
	repo  itemStore
	lists listDirectory
}

// NewService constructs an item service.
func NewService(repo itemStore, lists listDirectory) *Service {
	return &Service{repo: repo, lists: lists}
}

// AddItemInput carries data for item creation.
type AddItemInput struct {
	ListID        uuid.UUID
	Text          string
	Type          Type
	Description   *string
	ParentItemID  *uuid.UUID
	CounterTarget *int64
}

// AddItem creates a new item in the list. Counter items start at value zero.
func (s *Service) AddItem(ctx context.Context, actorID uuid.UUID, input AddItemInput) (Item, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return Item{}, ErrTextRequired
	}
	if !input.Type.Valid() {
		return Item{}, ErrInvalidType
	}
	if input.CounterTarget != nil && *input.CounterTarget < 1 {
		return Item{}, ErrInvalidCounterTarget
	}

	if _, err := s.lists.FindByID(ctx, input.ListID); err != nil {
		return Item{}, err
	}

	if err := s.requireMembership(ctx, input.ListID, actorID); err != nil {
		return Item{}, err
	}

	if input.ParentItemID != nil {
		parent, err := s.repo.Get(ctx, *input.ParentItemID)
		if err != nil {
			if errors.Is(err, ErrItemNotFound) {
				return Item{}, ErrParentNotFound
			}
			return Item{}, err
		}
		if parent.ListID != input.ListID {
			return Item{}, ErrParentListMismatch
		}
	}

	it := Item{
		ListID:       input.ListID,
		Text:         text,
		Type:         input.Type,
		Description:  input.Description,
		ParentItemID: input.ParentItemID,
	}
	switch input.Type {
	case TypeCheckbox:
		it.Checkbox = &CheckboxState{}
	case TypeCounter:
		it.Counter = &CounterState{Value: 0, Target: input.CounterTarget}
	}

	return s.repo.Create(ctx, it)
}

// ToggleCheckbox flips the item's checked state based on its stored value.
func (s *Service) ToggleCheckbox(ctx context.Context, actorID, itemID uuid.UUID) (Item, error) {
	it, err := s.repo.Get(ctx, itemID)
	if err != nil {
		return Item{}, err
	}
	if it.Type != TypeCheckbox {
		return Item{}, ErrNotCheckbox
	}

	if err := s.requireMembership(ctx, it.ListID, actorID); err != nil {
		return Item{}, err
	}

	return s.repo.ToggleCheckbox(ctx, itemID, actorID)
}

// UpdateCounter applies a signed delta to the counter value. Results clamp
// to the [0, target] range rather than erroring.
func (s *Service) UpdateCounter(ctx context.Context, actorID, itemID uuid.UUID, delta int64) (Item, error) {
	it, err := s.repo.Get(ctx, itemID)
	if err != nil {
		return Item{}, err
	}
	if it.Type != TypeCounter {
		return Item{}, ErrNotCounter
	}

	if err := s.requireMembership(ctx, it.ListID, actorID); err != nil {
		return Item{}, err
	}

	return s.repo.ApplyCounterDelta(ctx, itemID, delta)
}

// ItemsFor returns the list's items as a flat parent-annotated sequence:
// roots first, then children grouped by parent, oldest first within groups.
func (s *Service) ItemsFor(ctx context.Context, actorID, listID uuid.UUID) ([]Item, error) {
	if _, err := s.lists.FindByID(ctx, listID); err != nil {
		return nil, err
	}

	if err := s.requireMembership(ctx, listID, actorID); err != nil {
		return nil, err
	}

	return s.repo.ListForList(ctx, listID)
}

func (s *Service) requireMembership(ctx context.Context, listID, actorID uuid.UUID) error {
	isMember, err := s.lists.IsMember(ctx, listID, actorID)
	if err != nil {
		return err
	}
	if !isMember {
		return list.ErrNotMember
	}
	return nil
}
