package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAnnouncementClaimsOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RecordAnnouncement(ctx, "0.0.4", []byte(`{"fixed":["a bug"]}`)))

	// A second claim for the same version loses.
	err := s.RecordAnnouncement(ctx, "0.0.4", []byte(`{}`))
	assert.ErrorIs(t, err, ErrVersionAnnounced)

	// Other versions are unaffected.
	require.NoError(t, s.RecordAnnouncement(ctx, "0.0.5", []byte(`{}`)))

	versions, err := s.AnnouncedVersions(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"0.0.4", "0.0.5"}, versions)
}
