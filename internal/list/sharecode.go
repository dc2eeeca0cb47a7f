package list

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/samvitchoudhary/bucketlist/internal/metrics"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
	maxCodeTries = 10
)

// codeIndex reports whether a share code is already assigned to a list.
type codeIndex interface {
	CodeExists(ctx context.Context, code string) (bool, error)
}

// generateShareCode samples uppercase alphanumeric codes until one is free,
// giving up after maxCodeTries to bound request latency.
func generateShareCode(ctx context.Context, idx codeIndex) (string, error) {
	for i := 0; i < maxCodeTries; i++ {
		code, err := randomCode()
		if err != nil {
			return "", fmt.Errorf("sample share code: %w", err)
		}

		exists, err := idx.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check share code: %w", err)
		}
		if !exists {
			return code, nil
		}
		metrics.ShareCodeRetries.Inc()
	}
	return "", ErrShareCodeExhausted
}

func randomCode() (string, error) {
	var sb strings.Builder
	sb.Grow(codeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// normalizeShareCode trims and uppercases user-supplied codes.
// Codes are case-insensitive on input, always stored uppercase.
func normalizeShareCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
