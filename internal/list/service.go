package list

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type repository interface {
	CreateListWithCreator(ctx context.Context, name, code string, creatorID uuid.UUID) (BucketList, error)
	FindByID(ctx context.Context, listID uuid.UUID) (BucketList, error)
	FindByCode(ctx context.Context, code string) (BucketList, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	ListsForUser(ctx context.Context, userID uuid.UUID) ([]BucketList, error)
	IsMember(ctx context.Context, listID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, listID, userID uuid.UUID) error
	MembersOf(ctx context.Context, listID uuid.UUID) ([]Member, error)
}

// Service orchestrates list lifecycle and membership operations.
type Service struct {
	repo repository
}

// NewService constructs a list service.
func NewService(repo repository) *Service {
	return &Service{repo: repo}
}

// CreateList creates a list with a fresh share code and the creator as the
// first member.
func (s *Service) CreateList(ctx context.Context, creatorID uuid.UUID, name string) (BucketList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return BucketList{}, ErrNameRequired
	}

	code, err := generateShareCode(ctx, s.repo)
	if err != nil {
		return BucketList{}, err
	}

	return s.repo.CreateListWithCreator(ctx, name, code, creatorID)
}

// JoinList adds the user to the list identified by the share code.
func (s *Service) JoinList(ctx context.Context, userID uuid.UUID, code string) (BucketList, error) {
	normalized := normalizeShareCode(code)
	if normalized == "" {
		return BucketList{}, ErrListNotFound
	}

	l, err := s.repo.FindByCode(ctx, normalized)
	if err != nil {
		return BucketList{}, err
	}

	isMember, err := s.repo.IsMember(ctx, l.ID, userID)
	if err != nil {
		return BucketList{}, err
	}
	if isMember {
		return BucketList{}, ErrAlreadyMember
	}

	if err := s.repo.AddMember(ctx, l.ID, userID); err != nil {
		return BucketList{}, err
	}

	return l, nil
}

// ListsForUser returns the user's lists, newest-created first.
func (s *Service) ListsForUser(ctx context.Context, userID uuid.UUID) ([]BucketList, error) {
	return s.repo.ListsForUser(ctx, userID)
}

// GetList returns a single list, requiring the actor to be a member.
func (s *Service) GetList(ctx context.Context, actorID, listID uuid.UUID) (BucketList, error) {
	l, err := s.repo.FindByID(ctx, listID)
	if err != nil {
		return BucketList{}, err
	}

	if err := s.requireMembership(ctx, listID, actorID); err != nil {
		return BucketList{}, err
	}
	return l, nil
}

// MembersOf returns the list's members ordered by join time, requiring the
// actor to be a member.
func (s *Service) MembersOf(ctx context.Context, actorID, listID uuid.UUID) ([]Member, error) {
	if _, err := s.repo.FindByID(ctx, listID); err != nil {
		return nil, err
	}

	if err := s.requireMembership(ctx, listID, actorID); err != nil {
		return nil, err
	}
	return s.repo.MembersOf(ctx, listID)
}

// IsMember exposes the membership predicate used to gate item operations.
func (s *Service) IsMember(ctx context.Context, listID, userID uuid.UUID) (bool, error) {
	return s.repo.IsMember(ctx, listID, userID)
}

func (s *Service) requireMembership(ctx context.Context, listID, actorID uuid.UUID) error {
	isMember, err := s.repo.IsMember(ctx, listID, actorID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrNotMember
	}
	return nil
}
