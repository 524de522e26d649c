package changelog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teampulse/pulsebot/internal/models"
	"github.com/teampulse/pulsebot/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeNotifier struct {
	posts    []string
	failNext bool
}

func (f *fakeNotifier) SendDirect(_ context.Context, _, _, _ string) error {
	return nil
}

func (f *fakeNotifier) PostChannel(_ context.Context, _, title, _ string) error {
	if f.failNext {
		f.failNext = false
		return errors.New("gateway unreachable")
	}
	f.posts = append(f.posts, title)
	return nil
}

func newTestAnnouncer(t *testing.T, dir, channelID string, notifier *fakeNotifier) (*Announcer, *store.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ReleaseAnnouncement{}))
	s := store.New(db)

	return NewAnnouncer(s, notifier, dir, channelID, slog.New(slog.NewTextHandler(io.Discard, nil))), s
}

func definitionYAML(version, title string) string {
	return "version: \"" + version + "\"\n" +
		"release_date: \"2026-08-20\"\n" +
		"title: \"" + title + "\"\n" +
		"changes:\n  fixed:\n    - \"a bug\"\n"
}

func TestAnnounceLatestAnnouncesNewestOnly(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "0.0.3.yaml", definitionYAML("0.0.3", "older"))
	writeDefinition(t, dir, "0.0.4.yaml", definitionYAML("0.0.4", "newer"))

	notifier := &fakeNotifier{}
	a, s := newTestAnnouncer(t, dir, "chan-rel", notifier)
	ctx := context.Background()

	require.NoError(t, a.AnnounceLatest(ctx))
	require.Len(t, notifier.posts, 1)
	assert.Contains(t, notifier.posts[0], "0.0.4")

	versions, err := s.AnnouncedVersions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0.0.4"}, versions)

	// A restart with the same definitions announces nothing.
	require.NoError(t, a.AnnounceLatest(ctx))
	assert.Len(t, notifier.posts, 1)
}

func TestAnnounceLatestSkipsOlderThanAnnounced(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "0.0.3.yaml", definitionYAML("0.0.3", "older"))

	notifier := &fakeNotifier{}
	a, s := newTestAnnouncer(t, dir, "chan-rel", notifier)
	ctx := context.Background()

	require.NoError(t, s.RecordAnnouncement(ctx, "0.0.4", []byte(`{}`)))

	require.NoError(t, a.AnnounceLatest(ctx))
	assert.Empty(t, notifier.posts)
}

func TestAnnounceLatestFailedSendStillMarks(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "0.0.4.yaml", definitionYAML("0.0.4", "newer"))

	notifier := &fakeNotifier{failNext: true}
	a, s := newTestAnnouncer(t, dir, "chan-rel", notifier)
	ctx := context.Background()

	require.NoError(t, a.AnnounceLatest(ctx))
	assert.Empty(t, notifier.posts)

	// The claim sticks, so a retry never double-announces.
	versions, err := s.AnnouncedVersions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0.0.4"}, versions)

	require.NoError(t, a.AnnounceLatest(ctx))
	assert.Empty(t, notifier.posts)
}

func TestAnnounceLatestWithoutChannelDoesNothing(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "0.0.4.yaml", definitionYAML("0.0.4", "newer"))

	notifier := &fakeNotifier{}
	a, s := newTestAnnouncer(t, dir, "", notifier)
	ctx := context.Background()

	require.NoError(t, a.AnnounceLatest(ctx))
	assert.Empty(t, notifier.posts)

	// Nothing is marked either; configuring a channel later announces it.
	versions, err := s.AnnouncedVersions(ctx)
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestAnnounceLatestEmptyDir(t *testing.T) {
	notifier := &fakeNotifier{}
	a, _ := newTestAnnouncer(t, t.TempDir(), "chan-rel", notifier)

	require.NoError(t, a.AnnounceLatest(context.Background()))
	assert.Empty(t, notifier.posts)
}
