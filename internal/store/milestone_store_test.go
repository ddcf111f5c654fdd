package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"releasetrain/internal/domain"
	"releasetrain/internal/domain/types"
	"releasetrain/internal/store"
)

var repo = domain.RepositoryRef{Owner: "acme", Name: "widgets"}

func TestMilestoneFileStore_CreateList(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")
	var tracker domain.MilestoneTracker = store.NewMilestoneFileStore(dir)

	empty, err := tracker.ListMilestones(ctx, repo)
	require.NoError(t, err)
	assert.Empty(t, empty)

	m1, err := tracker.CreateMilestone(ctx, repo, types.NewMilestone("1.0.0-M1", types.NewDate(2020, time.January, 14)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), m1.Number)

	ga, err := tracker.CreateMilestone(ctx, repo, types.NewMilestone("1.0.0", types.NewDate(2020, time.May, 12)))
	require.NoError(t, err)
	assert.Equal(t, int64(2), ga.Number)

	// a fresh store reads what the first one wrote
	got, err := store.NewMilestoneFileStore(dir).ListMilestones(ctx, repo)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1.0.0-M1", got[0].Title)
	assert.Equal(t, types.NewDate(2020, time.January, 14), got[0].DueDate())
	assert.Equal(t, 12, got[0].DueOn.Hour())

	other, err := tracker.ListMilestones(ctx, domain.RepositoryRef{Owner: "acme", Name: "gadgets"})
	require.NoError(t, err)
	assert.Empty(t, other)

	info, err := os.Stat(filepath.Join(dir, "milestones.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestMilestoneFileStore_Duplicate(t *testing.T) {
	ctx := context.Background()
	s := store.NewMilestoneFileStore(t.TempDir())

	_, err := s.CreateMilestone(ctx, repo, types.NewMilestone("1.0.0", types.NewDate(2020, time.May, 12)))
	require.NoError(t, err)
	_, err = s.CreateMilestone(ctx, repo, types.NewMilestone("1.0.0", types.NewDate(2020, time.May, 12)))
	assert.ErrorIs(t, err, store.ErrDuplicateMilestone)
}

func TestMilestoneFileStore_SkipsClosed(t *testing.T) {
	ctx := context.Background()
	s := store.NewMilestoneFileStore(t.TempDir())

	closed := types.NewMilestone("0.9.0", types.NewDate(2019, time.November, 12))
	closed.State = types.MilestoneClosed
	_, err := s.CreateMilestone(ctx, repo, closed)
	require.NoError(t, err)

	got, err := s.ListMilestones(ctx, repo)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMilestoneFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "milestones.json"), []byte("{"), 0o600))

	_, err := store.NewMilestoneFileStore(dir).ListMilestones(context.Background(), repo)
	assert.Error(t, err)
}

func TestMilestoneFileStore_NullFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "milestones.json"), []byte("null\n"), 0o600))
	s := store.NewMilestoneFileStore(dir)

	got, err := s.ListMilestones(ctx, repo)
	require.NoError(t, err)
	assert.Empty(t, got)

	m, err := s.CreateMilestone(ctx, repo, types.NewMilestone("1.0.0", types.NewDate(2020, time.May, 12)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.Number)

	got, err = s.ListMilestones(ctx, repo)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1.0.0", got[0].Title)
}
