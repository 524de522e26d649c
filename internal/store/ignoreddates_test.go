package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgnoredDateRanges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.AddIgnoredDate(ctx, "2026-12-24", "2026-12-26", "admin-1")
	require.NoError(t, err)
	require.NotZero(t, added.ID)

	for date, want := range map[string]bool{
		"2026-12-23": false,
		"2026-12-24": true,
		"2026-12-25": true,
		"2026-12-26": true,
		"2026-12-27": false,
	} {
		ignored, err := s.ShouldIgnoreDate(ctx, date)
		require.NoError(t, err)
		assert.Equal(t, want, ignored, date)
	}

	list, err := s.ListIgnoredDates(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "admin-1", list[0].CreatedBy)

	require.NoError(t, s.RemoveIgnoredDate(ctx, added.ID))
	assert.ErrorIs(t, s.RemoveIgnoredDate(ctx, added.ID), ErrNotFound)

	ignored, err := s.ShouldIgnoreDate(ctx, "2026-12-25")
	require.NoError(t, err)
	assert.False(t, ignored)
}

func TestClearIgnoredDates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddIgnoredDate(ctx, "2026-01-01", "2026-01-01", "admin-1")
	require.NoError(t, err)
	_, err = s.AddIgnoredDate(ctx, "2026-02-16", "2026-02-17", "admin-1")
	require.NoError(t, err)

	require.NoError(t, s.ClearIgnoredDates(ctx))

	list, err := s.ListIgnoredDates(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
