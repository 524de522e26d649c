package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teampulse/pulsebot/internal/models"
)

func TestUpsertUserCreatesThenUpdates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.UpsertUser(ctx, "u-1", "Alice", models.RoleMember, "admin-1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.UpsertUser(ctx, "u-1", "Alice B", models.RoleProductOwner, "admin-2")
	require.NoError(t, err)
	assert.False(t, created)

	user, err := s.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", user.Name)
	assert.Equal(t, models.RoleProductOwner, user.Role)
	assert.Equal(t, "admin-2", user.RegisteredBy)

	users, err := s.ListUsers(ctx, RoleAll)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUpsertUserRejectsUnknownRole(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpsertUser(context.Background(), "u-1", "Alice", "superuser", "admin-1")
	assert.Error(t, err)
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRemoveUserSoftDeletes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	registerUser(t, s, "u-1", models.RoleMember)

	require.NoError(t, s.RemoveUser(ctx, "u-1"))

	_, err := s.GetUser(ctx, "u-1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	// Removing twice reports not found.
	assert.ErrorIs(t, s.RemoveUser(ctx, "u-1"), ErrUserNotFound)

	// The external id can be registered again after removal.
	created, err := s.UpsertUser(ctx, "u-1", "Alice again", models.RoleMember, "admin-1")
	require.NoError(t, err)
	assert.True(t, created)
}

func TestListUsersRoleFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	registerUser(t, s, "u-1", models.RoleMember)
	registerUser(t, s, "u-2", models.RoleProductOwner)
	registerUser(t, s, "u-3", models.RoleAdmin)

	members, err := s.ListUsers(ctx, models.RoleMember)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "u-1", members[0].ExternalID)

	all, err := s.ListUsers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = s.ListUsers(ctx, "villain")
	assert.Error(t, err)
}

func TestActiveReportableUsersExcludesAdminsAndRemoved(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	registerUser(t, s, "u-1", models.RoleMember)
	registerUser(t, s, "u-2", models.RoleProductOwner)
	registerUser(t, s, "u-3", models.RoleAdmin)
	registerUser(t, s, "u-4", models.RoleMember)
	require.NoError(t, s.RemoveUser(ctx, "u-4"))

	ids, err := s.ActiveReportableUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u-1", "u-2"}, ids)
}

func TestPersistenceErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := persistErr("test op", inner)

	var pe *PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "test op", pe.Op)
	assert.ErrorIs(t, err, inner)
}
