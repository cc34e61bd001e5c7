package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/periodpain/pain-helper/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var identityPattern = regexp.MustCompile(`^user_[a-z0-9]{9}$`)

func TestGetOrCreateIdentityIsStable(t *testing.T) {
	dir := t.TempDir()
	db, err := database.NewSQLiteDB(dir)
	require.NoError(t, err)

	svc := NewIdentityService(db)
	ctx := context.Background()

	first, err := svc.GetOrCreateIdentity(ctx, 12345)
	require.NoError(t, err)
	assert.Regexp(t, identityPattern, first)

	second, err := svc.GetOrCreateIdentity(ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A fresh service over the same database sees the same identity:
	// continuity survives restarts.
	db2, err := database.NewSQLiteDB(dir)
	require.NoError(t, err)
	third, err := NewIdentityService(db2).GetOrCreateIdentity(ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestIdentitiesDifferPerInstallation(t *testing.T) {
	db, err := database.NewSQLiteDB(t.TempDir())
	require.NoError(t, err)

	svc := NewIdentityService(db)
	ctx := context.Background()

	a, err := svc.GetOrCreateIdentity(ctx, 1)
	require.NoError(t, err)
	b, err := svc.GetOrCreateIdentity(ctx, 2)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestIdentityFallbackWithoutDatabase(t *testing.T) {
	svc := NewIdentityService(nil)
	ctx := context.Background()

	first, err := svc.GetOrCreateIdentity(ctx, 777)
	require.NoError(t, err)
	assert.Regexp(t, identityPattern, first)

	// Stable within the process even without persistence.
	second, err := svc.GetOrCreateIdentity(ctx, 777)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
