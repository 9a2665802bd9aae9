package bookmark_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bookmarkkit/internal/testutil"
	"github.com/joshuapare/bookmarkkit/pkg/bookmark"
	"github.com/joshuapare/bookmarkkit/pkg/types"
)

// TestSafariDownloads decodes a bookmark taken from Safari's Downloads.plist.
func TestSafariDownloads(t *testing.T) {
	blob := testutil.LoadFixture(t, testutil.SafariDownloads)

	bm, err := bookmark.Parse(blob)
	require.NoError(t, err)
	require.False(t, bm.Diagnostics().HasAnyIssues())

	info := bm.Info()
	assert.Equal(t, uint32(716), info.Size)
	assert.Equal(t, uint32(48), info.DataOffset)
	assert.Equal(t, 1, info.TOCBlocks)
	assert.Equal(t, 16, info.TOCEntries)
	assert.Equal(t, 16, info.Entries)
	assert.Equal(t, 16, bm.Len())

	parts, ok := bm.PathComponents()
	require.True(t, ok)
	assert.Equal(t, []string{"Users", "puffycid", "Downloads", "powershell-7.2.4-osx-x64.pkg"}, parts)

	cnids, ok := bm.CNIDPath()
	require.True(t, ok)
	assert.Equal(t, []uint64{21327, 360459, 360510, 37602008}, cnids)

	flags, ok := bm.TargetResourceFlags()
	require.True(t, ok)
	assert.Equal(t, []uint64{1, 15, 0}, flags.Words())
	assert.True(t, flags.Has(bookmark.ResourceIsRegularFile))
	assert.False(t, flags.Has(bookmark.ResourceIsDirectory))
	first, _ := bm.TargetFlags()
	assert.Equal(t, uint64(1), first)

	created, ok := bm.CreationDate()
	require.True(t, ok)
	want, _ := types.MacTime(677388100.0747445)
	assert.True(t, want.Equal(created), "creation date %v", created)
	raw, _ := bm.Get(bookmark.KeyTargetCreationDate)
	secs, _ := raw.AsDate()
	assert.Equal(t, 677388100.0747445, secs)

	volPath, _ := bm.VolumePath()
	assert.Equal(t, "/", volPath)
	volURL, _ := bm.VolumeURL()
	assert.Equal(t, "file:///", volURL)
	volName, _ := bm.VolumeName()
	assert.Equal(t, "Macintosh HD", volName)

	id, ok := bm.VolumeUUID()
	require.True(t, ok)
	assert.Equal(t, uuid.MustParse("96FB41C0-6CE9-4DA2-8435-35BC19C735A3"), id)

	size, _ := bm.VolumeSize()
	assert.Equal(t, int64(2000662327296), size)

	volCreated, ok := bm.VolumeCreationDate()
	require.True(t, ok)
	wantVol, _ := types.MacTime(667551907.0)
	assert.True(t, wantVol.Equal(volCreated))

	volFlags, ok := bm.VolumeFlags()
	require.True(t, ok)
	assert.Equal(t, []uint64{4294967425, 4294972399, 0}, volFlags.Words())
	assert.True(t, volFlags.Has(bookmark.VolumeIsLocal))
	assert.True(t, volFlags.Has(bookmark.VolumeIsInternal))

	root, ok := bm.VolumeIsRoot()
	require.True(t, ok)
	assert.True(t, root)

	idx, _ := bm.ContainingFolderIndex()
	assert.Equal(t, int64(2), idx)
	user, _ := bm.Username()
	assert.Equal(t, "puffycid", user)
	uid, _ := bm.UID()
	assert.Equal(t, int64(501), uid)
	opts, _ := bm.CreationOptions()
	assert.Equal(t, int64(671094784), opts)

	path, ok := bm.Path()
	require.True(t, ok)
	assert.Contains(t, path, "powershell-7.2.4-osx-x64.pkg")

	_, ok = bm.LocalizedName()
	assert.False(t, ok)
	_, ok = bm.FileName()
	assert.False(t, ok)
	_, ok = bm.SecurityExtensionRW()
	assert.False(t, ok)
}

func TestSafariDownloadsKeyOrder(t *testing.T) {
	blob := testutil.LoadFixture(t, testutil.SafariDownloads)
	bm, err := bookmark.Parse(blob)
	require.NoError(t, err)

	keys := bm.Keys()
	require.Len(t, keys, 16)
	assert.Contains(t, keys, bookmark.KeyCreationOptions)
	assert.Contains(t, keys, bookmark.KeyVolumeUUID)

	v, ok := bm.Get(bookmark.KeyCreationOptions)
	require.True(t, ok)
	assert.Equal(t, uint32(4), v.Offset())
	assert.Equal(t, uint32(0x0303), v.Tag())

	for _, e := range bm.Entries() {
		assert.Equal(t, e.Key.String(), e.Name)
		assert.True(t, e.Value.IsValid())
	}
}

func TestDiagnosticsReturnsCopy(t *testing.T) {
	blob := testutil.LoadFixture(t, testutil.SafariDownloads)
	bm, err := bookmark.Parse(blob)
	require.NoError(t, err)

	report := bm.Diagnostics()
	report.Add(types.Diagnostic{Severity: types.SevError, Issue: "added by caller"})
	report.Finalize()
	require.True(t, report.HasErrors())

	again := bm.Diagnostics()
	assert.False(t, again.HasErrors())
	assert.False(t, again.HasAnyIssues())
}
