package list

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repositoryTimeout = 5 * time.Second

// Repository allows access to list and membership persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a list repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateListWithCreator inserts a list and its creator membership in one
// transaction. No list may exist without its creator as a member.
func (r *Repository) CreateListWithCreator(ctx context.Context, name, code string, creatorID uuid.UUID) (BucketList, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return BucketList{}, fmt.Errorf("begin create list: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
INSERT INTO bucket_lists (name, share_code, created_by)
VALUES ($1, $2, $3)
RETURNING id, name, share_code, created_by, created_at;`

	var created BucketList
	row := tx.QueryRow(ctx, query, name, code, creatorID)
	if err := row.Scan(&created.ID, &created.Name, &created.ShareCode, &created.CreatedBy, &created.CreatedAt); err != nil {
		return BucketList{}, fmt.Errorf("insert list: %w", err)
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO list_members (list_id, user_id)
VALUES ($1, $2);`, created.ID, creatorID); err != nil {
		return BucketList{}, fmt.Errorf("insert creator membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return BucketList{}, fmt.Errorf("commit create list: %w", err)
	}

	return created, nil
}

// FindByID fetches a single list.
func (r *Repository) FindByID(ctx context.Context, listID uuid.UUID) (BucketList, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT id, name, share_code, created_by, created_at
FROM bucket_lists
WHERE id = $1;`

	var l BucketList
	err := r.pool.QueryRow(ctx, query, listID).Scan(&l.ID, &l.Name, &l.ShareCode, &l.CreatedBy, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BucketList{}, ErrListNotFound
		}
		return BucketList{}, fmt.Errorf("find list: %w", err)
	}
	return l, nil
}

// FindByCode fetches a list by its share code. The code must already be
// normalized to uppercase.
func (r *Repository) FindByCode(ctx context.Context, code string) (BucketList, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT id, name, share_code, created_by, created_at
FROM bucket_lists
WHERE share_code = $1;`

	var l BucketList
	err := r.pool.QueryRow(ctx, query, code).Scan(&l.ID, &l.Name, &l.ShareCode, &l.CreatedBy, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BucketList{}, ErrListNotFound
		}
		return BucketList{}, fmt.Errorf("find list by code: %w", err)
	}
	return l, nil
}

// CodeExists reports whether a share code is taken.
func (r *Repository) CodeExists(ctx context.Context, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	var exists bool
	err := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM bucket_lists WHERE share_code = $1);`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check share code: %w", err)
	}
	return exists, nil
}

// ListsForUser returns the lists the user belongs to, newest-created first.
func (r *Repository) ListsForUser(ctx context.Context, userID uuid.UUID) ([]BucketList, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT l.id, l.name, l.share_code, l.created_by, l.created_at
FROM bucket_lists l
JOIN list_members m ON m.list_id = l.id
WHERE m.user_id = $1
ORDER BY l.created_at DESC;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	var lists []BucketList
	for rows.Next() {
		var l BucketList
		if err := rows.Scan(&l.ID, &l.Name, &l.ShareCode, &l.CreatedBy, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lists: %w", err)
	}
	return lists, nil
}

// IsMember reports whether the user belongs to the list.
func (r *Repository) IsMember(ctx context.Context, listID, userID uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	var isMember bool
	err := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM list_members WHERE list_id = $1 AND user_id = $2);`, listID, userID).Scan(&isMember)
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return isMember, nil
}

// AddMember inserts a membership. Insertion is idempotent at this layer;
// duplicate joins are rejected as a user-facing error by the service.
func (r *Repository) AddMember(ctx context.Context, listID, userID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	if _, err := r.pool.Exec(ctx, `
INSERT INTO list_members (list_id, user_id)
VALUES ($1, $2)
ON CONFLICT (list_id, user_id) DO NOTHING;`, listID, userID); err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

// MembersOf returns the list's members ordered by join time ascending.
func (r *Repository) MembersOf(ctx context.Context, listID uuid.UUID) ([]Member, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT u.id, u.username, m.joined_at
FROM list_members m
JOIN users u ON u.id = m.user_id
WHERE m.list_id = $1
ORDER BY m.joined_at ASC;`

	rows, err := r.pool.Query(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Username, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}
