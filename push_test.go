package fabsync

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
	"github.com/Ty9112/FabricationSample-sub002/pkg/journal"
)

func TestPushCopiesCategories(t *testing.T) {
	root := testRoot(t)
	siteData := filepath.Join(root, "profiles", "Site-A", "data")

	c, err := New(WithRoot(root))
	require.NoError(t, err)

	result, err := c.Push(context.Background(), []string{"Site-A"}, PushOptions{
		Categories: []fabdb.CategoryID{fabdb.Services, fabdb.Materials, fabdb.Connectors},
	})
	require.NoError(t, err)
	require.Len(t, result.Targets, 1)

	target := result.Targets[0]
	require.NoError(t, target.Err)
	assert.Equal(t, []fabdb.CategoryID{fabdb.Services, fabdb.Materials}, target.Copied)
	assert.Equal(t, []fabdb.CategoryID{fabdb.Connectors}, target.Missing)
	assert.False(t, target.JournalSaved)
	assert.Equal(t, 0, result.Failed())

	// The target's services file now matches the source's.
	db, err := fabdb.Open(siteData, fabdb.WithProfileName("Site-A"))
	require.NoError(t, err)
	tbl, _ := db.Table(fabdb.Services)
	_, found := tbl.FindByName("Supply Air")
	assert.True(t, found)

	// The overwritten services file was backed up first.
	backups, err := os.ReadDir(filepath.Join(root, "backups"))
	require.NoError(t, err)
	assert.NotEmpty(t, backups)
}

func TestPushJournalsDeselectedEntries(t *testing.T) {
	root := testRoot(t)
	siteData := filepath.Join(root, "profiles", "Site-A", "data")

	c, err := New(WithRoot(root))
	require.NoError(t, err)

	result, err := c.Push(context.Background(), []string{"Site-A"}, PushOptions{
		Categories: []fabdb.CategoryID{fabdb.Services},
		Deselected: map[fabdb.CategoryID][]string{
			fabdb.Services: {"Extract Air"},
		},
	})
	require.NoError(t, err)
	require.NoError(t, result.Targets[0].Err)
	assert.True(t, result.Targets[0].JournalSaved)
	require.True(t, journal.HasPending(siteData))

	pending, err := journal.Load(siteData)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, "Site-A", pending.ProfileName)
	assert.Equal(t, []string{"Extract Air"}, pending.ItemsToDelete[fabdb.Services])

	// Loading the target later consumes the journal and drops the entry.
	db, err := fabdb.Open(siteData, fabdb.WithProfileName("Site-A"))
	require.NoError(t, err)
	summary, err := journal.Execute(context.Background(), db, siteData)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 1, summary.Deleted())
}

func TestPushTargetsAreIndependent(t *testing.T) {
	root := testRoot(t)

	c, err := New(WithRoot(root))
	require.NoError(t, err)

	result, err := c.Push(context.Background(), []string{"Nowhere", "Site-A"}, PushOptions{
		Categories: []fabdb.CategoryID{fabdb.Services},
	})
	require.NoError(t, err)
	require.Len(t, result.Targets, 2)

	assert.Error(t, result.Targets[0].Err)
	assert.NoError(t, result.Targets[1].Err)
	assert.Equal(t, 1, result.Failed())
}

func TestPushRejectsSelfTarget(t *testing.T) {
	c, err := New(WithRoot(testRoot(t)))
	require.NoError(t, err)

	result, err := c.Push(context.Background(), []string{"Global"}, PushOptions{})
	require.NoError(t, err)
	require.Len(t, result.Targets, 1)
	assert.Error(t, result.Targets[0].Err)
}

func TestPushCanceled(t *testing.T) {
	c, err := New(WithRoot(testRoot(t)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := c.Push(ctx, []string{"Site-A"}, PushOptions{})
	require.NoError(t, err)
	require.Len(t, result.Targets, 1)
	assert.ErrorIs(t, result.Targets[0].Err, errors.ErrCanceled)
}
