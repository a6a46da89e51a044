package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSuspend(t *testing.T) {
	u := &User{ID: "user_1", Role: RoleMember}

	until := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	u.Suspend(until, "repeated spam")

	assert.True(t, u.Suspended)
	require.NotNil(t, u.SuspendReason)
	assert.Equal(t, "repeated spam", *u.SuspendReason)
	require.NotNil(t, u.SuspendDate)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), *u.SuspendDate)
}

func TestUserUnsuspend(t *testing.T) {
	reason := "spam"
	date := time.Now().UTC()
	u := &User{
		ID:            "user_1",
		Suspended:     true,
		SuspendReason: &reason,
		SuspendDate:   &date,
	}

	u.Unsuspend()

	assert.False(t, u.Suspended)
	assert.Nil(t, u.SuspendReason)
	assert.Nil(t, u.SuspendDate)
}

func TestMidnightUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	in := time.Date(2026, 6, 1, 3, 30, 0, 0, loc) // 2026-05-31T18:30Z

	got := MidnightUTC(in)

	assert.Equal(t, time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC), got)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleMember}).IsAdmin())
}
