package dedupe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreferKeepNumberedCopyRanksLower(t *testing.T) {
	opts := Options{}
	require.True(t, preferKeep("photo.jpg", "photo (1).jpg", opts))
	require.False(t, preferKeep("photo (1).jpg", "photo.jpg", opts))
}

func TestPreferKeepHeicRanksHigher(t *testing.T) {
	opts := Options{}
	require.True(t, preferKeep("a.heic", "a.jpg", opts))
}

func TestPreferKeepFewerSpaces(t *testing.T) {
	opts := Options{}
	require.True(t, preferKeep("photo.jpg", "my photo.jpg", opts))
}

func TestPreferKeepShallowerDepth(t *testing.T) {
	opts := Options{}
	require.True(t, preferKeep("a.jpg", "sub/a.jpg", opts))
}

func TestPreferKeepPreferRemovalSubstr(t *testing.T) {
	opts := Options{PreferRemovalSubstr: "trash"}
	require.True(t, preferKeep("keep.jpg", "trash/keep.jpg", opts))
}

func TestRankGroupSurvivorIsUnique(t *testing.T) {
	paths := []string{"photo (2).jpg", "photo.jpg", "photo (1).jpg"}
	g := rankGroup(paths, Options{})
	require.Equal(t, "photo.jpg", g.Survivor)
	require.ElementsMatch(t, []string{"photo (1).jpg", "photo (2).jpg"}, g.Removed)
}

func TestRankGroupRemovalFilter(t *testing.T) {
	paths := []string{"/a/photo.jpg", "/b/photo (1).jpg"}
	g := rankGroup(paths, Options{RemovalFilter: "/c"})
	require.Equal(t, "/a/photo.jpg", g.Survivor)
	require.Empty(t, g.Removed, "removal filter prefix does not match, so nothing is scheduled for deletion")
}

func TestNumberedCopySuffix(t *testing.T) {
	n, ok := numberedCopySuffix("photo (3).jpeg")
	require.True(t, ok)
	require.Equal(t, 3, n)

	_, ok = numberedCopySuffix("photo.jpg")
	require.False(t, ok)
}
