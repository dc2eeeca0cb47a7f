package list

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticIndex struct {
	taken map[string]bool
	all   bool
	calls int
}

func (s *staticIndex) CodeExists(ctx context.Context, code string) (bool, error) {
	s.calls++
	if s.all {
		return true, nil
	}
	return s.taken[code], nil
}

func TestRandomCodeFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := randomCode()
		require.NoError(t, err)
		assert.Len(t, code, codeLength)
		assert.Regexp(t, `^[A-Z0-9]+$`, code)
	}
}

func TestGenerateShareCodeReturnsFreeCode(t *testing.T) {
	idx := &staticIndex{}
	code, err := generateShareCode(context.Background(), idx)
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Z0-9]{6}$`, code)
	assert.Equal(t, 1, idx.calls)
}

func TestGenerateShareCodeGivesUpAfterBudget(t *testing.T) {
	idx := &staticIndex{all: true}
	_, err := generateShareCode(context.Background(), idx)
	require.ErrorIs(t, err, ErrShareCodeExhausted)
	assert.Equal(t, maxCodeTries, idx.calls)
}

func TestNormalizeShareCode(t *testing.T) {
	assert.Equal(t, "7K2PXQ", normalizeShareCode(" 7k2pxq "))
	assert.Equal(t, "ABC123", normalizeShareCode("abc123"))
	assert.Equal(t, "", normalizeShareCode("   "))
}
