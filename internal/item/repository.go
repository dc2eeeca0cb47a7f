package item

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repoTimeout = 5 * time.Second

const itemColumns = `
i.id, i.list_id, i.item_text, i.item_type, i.description, i.parent_item_id,
i.is_checked, i.checked_by, u.username, i.checked_at,
i.counter_value, i.counter_target, i.created_at`

// Repository provides access to item persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new item repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new item.
func (r *Repository) Create(ctx context.Context, it Item) (Item, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	var counterValue int64
	var counterTarget *int64
	if it.Counter != nil {
		counterValue = it.Counter.Value
		counterTarget = it.Counter.Target
	}

	query := `
WITH inserted AS (
    INSERT INTO items (list_id, item_text, item_type, description, parent_item_id, counter_value, counter_target)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id, list_id, item_text, item_type, description, parent_item_id,
              is_checked, checked_by, checked_at, counter_value, counter_target, created_at
)
SELECT` + itemColumns + `
FROM inserted i
LEFT JOIN users u ON u.id = i.checked_by;`

	row := r.pool.QueryRow(ctx, query,
		it.ListID, it.Text, string(it.Type), it.Description, it.ParentItemID, counterValue, counterTarget)

	stored, err := scanItem(row)
	if err != nil {
		return Item{}, fmt.Errorf("create item: %w", err)
	}
	return stored, nil
}

// Get fetches a single item.
func (r *Repository) Get(ctx context.Context, itemID uuid.UUID) (Item, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT` + itemColumns + `
FROM items i
LEFT JOIN users u ON u.id = i.checked_by
WHERE i.id = $1;`

	it, err := scanItem(r.pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrItemNotFound
		}
		return Item{}, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// ListForList returns the list's items: roots first, then grouped by parent,
// creation time ascending within each group.
func (r *Repository) ListForList(ctx context.Context, listID uuid.UUID) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT` + itemColumns + `
FROM items i
LEFT JOIN users u ON u.id = i.checked_by
WHERE i.list_id = $1
ORDER BY (i.parent_item_id IS NOT NULL), i.parent_item_id, i.created_at;`

	rows, err := r.pool.Query(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// ToggleCheckbox flips is_checked based on the stored value in a single
// statement, so concurrent toggles interleave instead of racing to a
// client-supplied target. Checking records the actor and timestamp;
// unchecking clears both.
func (r *Repository) ToggleCheckbox(ctx context.Context, itemID, actorID uuid.UUID) (Item, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
WITH updated AS (
    UPDATE items
    SET is_checked = NOT is_checked,
        checked_by = CASE WHEN is_checked THEN NULL ELSE $2 END,
        checked_at = CASE WHEN is_checked THEN NULL ELSE NOW() END
    WHERE id = $1
    RETURNING id, list_id, item_text, item_type, description, parent_item_id,
              is_checked, checked_by, checked_at, counter_value, counter_target, created_at
)
SELECT` + itemColumns + `
FROM updated i
LEFT JOIN users u ON u.id = i.checked_by;`

	it, err := scanItem(r.pool.QueryRow(ctx, query, itemID, actorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrItemNotFound
		}
		return Item{}, fmt.Errorf("toggle checkbox: %w", err)
	}
	return it, nil
}

// ApplyCounterDelta adds delta to the counter value, clamping to
// [0, counter_target] (or [0, ∞) without a target) inside one statement.
// Out-of-range results saturate silently.
func (r *Repository) ApplyCounterDelta(ctx context.Context, itemID uuid.UUID, delta int64) (Item, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
WITH updated AS (
    UPDATE items
    SET counter_value = GREATEST(0, LEAST(COALESCE(counter_target, 9223372036854775807), counter_value + $2))
    WHERE id = $1
    RETURNING id, list_id, item_text, item_type, description, parent_item_id,
              is_checked, checked_by, checked_at, counter_value, counter_target, created_at
)
SELECT` + itemColumns + `
FROM updated i
LEFT JOIN users u ON u.id = i.checked_by;`

	it, err := scanItem(r.pool.QueryRow(ctx, query, itemID, delta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrItemNotFound
		}
		return Item{}, fmt.Errorf("apply counter delta: %w", err)
	}
	return it, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem maps a flat row into the tagged variant model.
func scanItem(row rowScanner) (Item, error) {
	var (
		it                Item
		itemType          string
		isChecked         bool
		checkedBy         *uuid.UUID
		checkedByUsername *string
		checkedAt         *time.Time
		counterValue      int64
		counterTarget     *int64
	)

	if err := row.Scan(
		&it.ID, &it.ListID, &it.Text, &itemType, &it.Description, &it.ParentItemID,
		&isChecked, &checkedBy, &checkedByUsername, &checkedAt,
		&counterValue, &counterTarget, &it.CreatedAt,
	); err != nil {
		return Item{}, err
	}

	it.Type = Type(itemType)
	switch it.Type {
	case TypeCheckbox:
		it.Checkbox = &CheckboxState{
			IsChecked:         isChecked,
			CheckedBy:         checkedBy,
			CheckedByUsername: checkedByUsername,
			CheckedAt:         checkedAt,
		}
	case TypeCounter:
		it.Counter = &CounterState{
			Value:  counterValue,
			Target: counterTarget,
		}
	}

	return it, nil
}
