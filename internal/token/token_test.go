package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/clock"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestManager_IssueVerify(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	current := now
	mgr, err := NewManager(secret, 24*time.Hour, clock.Func(func() time.Time { return current }))
	require.NoError(t, err)

	end := time.Date(2024, 6, 3, 18, 0, 0, 0, time.UTC)
	raw, err := mgr.Issue("R-20240601-AAAA0001", "user-1", end)
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		claims, err := mgr.Verify(raw, "R-20240601-AAAA0001")
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
	})

	t.Run("other reservation", func(t *testing.T) {
		_, err := mgr.Verify(raw, "R-20240601-BBBB0002")
		assert.ErrorIs(t, err, ErrWrongSubject)
	})

	t.Run("tampered", func(t *testing.T) {
		_, err := mgr.Verify(raw+"x", "R-20240601-AAAA0001")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("signed with another secret", func(t *testing.T) {
		other, err := NewManager("ffffffffffffffffffffffffffffffff", time.Hour, clock.Func(func() time.Time { return now }))
		require.NoError(t, err)
		_, err = other.Verify(raw, "R-20240601-AAAA0001")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		current = end.Add(25 * time.Hour)
		defer func() { current = now }()
		_, err := mgr.Verify(raw, "R-20240601-AAAA0001")
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestNewManager_ShortSecret(t *testing.T) {
	_, err := NewManager("short", time.Hour, clock.Real{})
	assert.Error(t, err)
}
