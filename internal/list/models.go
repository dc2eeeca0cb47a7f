package list

import (
	"time"

	"github.com/google/uuid"
)

// BucketList represents a shared list discoverable by its share code.
type BucketList struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShareCode string    `json:"share_code"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Member is a user with join-access to a list's items.
type Member struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}
