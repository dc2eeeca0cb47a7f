package list

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func TestCreateListCreatorIsMember(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	creatorID := uuid.New()
	created, err := service.CreateList(context.Background(), creatorID, "  Trip  ")
	if err != nil {
		t.Fatalf("CreateList returned error: %v", err)
	}

	if created.Name != "Trip" {
		t.Fatalf("expected trimmed name Trip, got %q", created.Name)
	}
	if !codePattern.MatchString(created.ShareCode) {
		t.Fatalf("expected 6 uppercase alphanumeric share code, got %q", created.ShareCode)
	}

	isMember, err := service.IsMember(context.Background(), created.ID, creatorID)
	if err != nil {
		t.Fatalf("IsMember returned error: %v", err)
	}
	if !isMember {
		t.Fatalf("expected creator to be a member immediately after creation")
	}
}

func TestCreateListEmptyName(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	if _, err := service.CreateList(context.Background(), uuid.New(), "   "); err != ErrNameRequired {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestCreateListCodesAreUnique(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		created, err := service.CreateList(context.Background(), uuid.New(), "list")
		if err != nil {
			t.Fatalf("CreateList returned error: %v", err)
		}
		if seen[created.ShareCode] {
			t.Fatalf("duplicate share code issued: %s", created.ShareCode)
		}
		seen[created.ShareCode] = true
	}
}

func TestCreateListExhaustsCodeBudget(t *testing.T) {
	repo := newFakeRepo()
	repo.allCodesTaken = true
	service := NewService(repo)

	if _, err := service.CreateList(context.Background(), uuid.New(), "list"); err != ErrShareCodeExhausted {
		t.Fatalf("expected ErrShareCodeExhausted, got %v", err)
	}
}

func TestJoinListNormalizesCode(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	creatorID := uuid.New()
	created, err := service.CreateList(context.Background(), creatorID, "Trip")
	if err != nil {
		t.Fatalf("CreateList returned error: %v", err)
	}

	joinerID := uuid.New()
	lowered := "  " + strings.ToLower(created.ShareCode) + " "
	joined, err := service.JoinList(context.Background(), joinerID, lowered)
	if err != nil {
		t.Fatalf("JoinList returned error: %v", err)
	}
	if joined.ID != created.ID {
		t.Fatalf("joined wrong list: %s vs %s", joined.ID, created.ID)
	}

	isMember, err := service.IsMember(context.Background(), created.ID, joinerID)
	if err != nil {
		t.Fatalf("IsMember returned error: %v", err)
	}
	if !isMember {
		t.Fatalf("expected joiner to be a member")
	}
}

func TestJoinListTwice(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	created, err := service.CreateList(context.Background(), uuid.New(), "Trip")
	if err != nil {
		t.Fatalf("CreateList returned error: %v", err)
	}

	joinerID := uuid.New()
	if _, err := service.JoinList(context.Background(), joinerID, created.ShareCode); err != nil {
		t.Fatalf("first join returned error: %v", err)
	}
	if _, err := service.JoinList(context.Background(), joinerID, created.ShareCode); err != ErrAlreadyMember {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestJoinListUnknownCode(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	if _, err := service.JoinList(context.Background(), uuid.New(), "ZZZZZZ"); err != ErrListNotFound {
		t.Fatalf("expected ErrListNotFound, got %v", err)
	}
}

func TestListsForUserNewestFirst(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	userID := uuid.New()
	first, err := service.CreateList(context.Background(), userID, "first")
	if err != nil {
		t.Fatalf("CreateList returned error: %v", err)
	}
	second, err := service.CreateList(context.Background(), userID, "second")
	if err != nil {
		t.Fatalf("CreateList returned error: %v", err)
	}

	lists, err := service.ListsForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListsForUser returned error: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(lists))
	}
	if lists[0].ID != second.ID || lists[1].ID != first.ID {
		t.Fatalf("expected newest-created list first")
	}
}

func TestGetListRequiresMembership(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	created, err := service.CreateList(context.Background(), uuid.New(), "Trip")
	if err != nil {
		t.Fatalf("CreateList returned error: %v", err)
	}

	if _, err := service.GetList(context.Background(), uuid.New(), created.ID); err != ErrNotMember {
		t.Fatalf("expected ErrNotMember for outsider, got %v", err)
	}
	if _, err := service.MembersOf(context.Background(), uuid.New(), created.ID); err != ErrNotMember {
		t.Fatalf("expected ErrNotMember for outsider, got %v", err)
	}
}

func TestMembersOfOrderedByJoinTime(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	creatorID := uuid.New()
	created, err := service.CreateList(context.Background(), creatorID, "Trip")
	if err != nil {
		t.Fatalf("CreateList returned error: %v", err)
	}

	joinerID := uuid.New()
	if _, err := service.JoinList(context.Background(), joinerID, created.ShareCode); err != nil {
		t.Fatalf("JoinList returned error: %v", err)
	}

	members, err := service.MembersOf(context.Background(), creatorID, created.ID)
	if err != nil {
		t.Fatalf("MembersOf returned error: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	if members[0].ID != creatorID || members[1].ID != joinerID {
		t.Fatalf("expected members ordered by join time, creator first")
	}
}

// --- fakes ----

type membership struct {
	userID   uuid.UUID
	joinedAt time.Time
}

type fakeRepo struct {
	lists         []BucketList
	byCode        map[string]uuid.UUID
	members       map[uuid.UUID][]membership
	allCodesTaken bool
	clock         time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byCode:  make(map[string]uuid.UUID),
		members: make(map[uuid.UUID][]membership),
		clock:   time.Unix(1700000000, 0),
	}
}

func (f *fakeRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeRepo) CreateListWithCreator(ctx context.Context, name, code string, creatorID uuid.UUID) (BucketList, error) {
	l := BucketList{
		ID:        uuid.New(),
		Name:      name,
		ShareCode: code,
		CreatedBy: creatorID,
		CreatedAt: f.tick(),
	}
	f.lists = append(f.lists, l)
	f.byCode[code] = l.ID
	f.members[l.ID] = append(f.members[l.ID], membership{userID: creatorID, joinedAt: l.CreatedAt})
	return l, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, listID uuid.UUID) (BucketList, error) {
	for _, l := range f.lists {
		if l.ID == listID {
			return l, nil
		}
	}
	return BucketList{}, ErrListNotFound
}

func (f *fakeRepo) FindByCode(ctx context.Context, code string) (BucketList, error) {
	id, ok := f.byCode[code]
	if !ok {
		return BucketList{}, ErrListNotFound
	}
	return f.FindByID(ctx, id)
}

func (f *fakeRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	if f.allCodesTaken {
		return true, nil
	}
	_, ok := f.byCode[code]
	return ok, nil
}

func (f *fakeRepo) ListsForUser(ctx context.Context, userID uuid.UUID) ([]BucketList, error) {
	var lists []BucketList
	for i := len(f.lists) - 1; i >= 0; i-- {
		l := f.lists[i]
		for _, m := range f.members[l.ID] {
			if m.userID == userID {
				lists = append(lists, l)
				break
			}
		}
	}
	return lists, nil
}

func (f *fakeRepo) IsMember(ctx context.Context, listID, userID uuid.UUID) (bool, error) {
	for _, m := range f.members[listID] {
		if m.userID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) AddMember(ctx context.Context, listID, userID uuid.UUID) error {
	for _, m := range f.members[listID] {
		if m.userID == userID {
			return nil
		}
	}
	f.members[listID] = append(f.members[listID], membership{userID: userID, joinedAt: f.tick()})
	return nil
}

func (f *fakeRepo) MembersOf(ctx context.Context, listID uuid.UUID) ([]Member, error) {
	var members []Member
	for _, m := range f.members[listID] {
		members = append(members, Member{ID: m.userID, JoinedAt: m.joinedAt})
	}
	return members, nil
}
