package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samvitchoudhary/bucketlist/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
		BcryptCost:         4,
	}
}

func TestRegisterSuccess(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, testAuthConfig())

	result, err := service.Register(context.Background(), RegisterInput{
		Username: "nomad",
		Password: "hunter2!",
	})

	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if result.User.PasswordHash != "" {
		t.Fatalf("expected password hash to be stripped from response")
	}

	if result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Fatalf("expected tokens to be issued")
	}

	if len(store.users) != 1 {
		t.Fatalf("expected user stored; got %d", len(store.users))
	}
}

func TestRegisterValidation(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, testAuthConfig())

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "ab",
		Password: "hunter2!",
	})
	if err != ErrUsernameTooShort {
		t.Fatalf("expected ErrUsernameTooShort, got %v", err)
	}

	_, err = service.Register(context.Background(), RegisterInput{
		Username: "nomad",
		Password: "short",
	})
	if err != ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}

	if len(store.users) != 0 {
		t.Fatalf("expected no users stored, got %d", len(store.users))
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, testAuthConfig())

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "nomad",
		Password: "hunter2!",
	})
	if err != nil {
		t.Fatalf("initial registration returned error: %v", err)
	}

	_, err = service.Register(context.Background(), RegisterInput{
		Username: "nomad",
		Password: "another-pass",
	})

	if err == nil || err != ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterThenLoginSameUserID(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, testAuthConfig())

	registered, err := service.Register(context.Background(), RegisterInput{
		Username: "nomad",
		Password: "hunter2!",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	loggedIn, err := service.Login(context.Background(), LoginInput{
		Username: "nomad",
		Password: "hunter2!",
	})
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}

	if registered.User.ID != loggedIn.User.ID {
		t.Fatalf("expected consistent user id across register and login: %s vs %s",
			registered.User.ID, loggedIn.User.ID)
	}
	if loggedIn.Tokens.AccessToken == "" {
		t.Fatalf("expected access token")
	}
}

func TestLoginInvalidPassword(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, testAuthConfig())

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "nomad",
		Password: "hunter2!",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	_, err = service.Login(context.Background(), LoginInput{
		Username: "nomad",
		Password: "wrong-pass",
	})

	if err == nil || err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, testAuthConfig())

	_, err := service.Login(context.Background(), LoginInput{
		Username: "ghost",
		Password: "whatever1",
	})

	if err == nil || err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateAccessTokenRoundTrip(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, testAuthConfig())

	result, err := service.Register(context.Background(), RegisterInput{
		Username: "nomad",
		Password: "hunter2!",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	claims, err := service.ValidateAccessToken(result.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("validate token returned error: %v", err)
	}
	if claims.UserID != result.User.ID {
		t.Fatalf("expected claims for user %s, got %s", result.User.ID, claims.UserID)
	}
	if claims.Username != "nomad" {
		t.Fatalf("expected username claim nomad, got %q", claims.Username)
	}
}

// memoryStore implements userStore for tests.
type memoryStore struct {
	users         map[string]User
	refreshTokens map[string]time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:         make(map[string]User),
		refreshTokens: make(map[string]time.Time),
	}
}

func (m *memoryStore) CreateUser(ctx context.Context, username, passwordHash string) (User, error) {
	if _, ok := m.users[username]; ok {
		return User{}, ErrUsernameTaken
	}
	user := User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.users[username] = user
	return user, nil
}

func (m *memoryStore) FindUserByUsername(ctx context.Context, username string) (User, error) {
	user, ok := m.users[username]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (m *memoryStore) FindUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (m *memoryStore) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	m.refreshTokens[tokenHash] = expiresAt
	return nil
}

func (m *memoryStore) RevokeToken(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	delete(m.refreshTokens, tokenHash)
	return nil
}
