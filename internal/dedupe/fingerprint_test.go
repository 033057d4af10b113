package dedupe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprintIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "a.jpg", []byte("some file content"))

	fp1, err := FullFingerprint(path)
	require.NoError(t, err)
	fp2, err := FullFingerprint(path)
	require.NoError(t, err)
	require.Equal(t, fp1, fp2)
}

func TestPartialFingerprintOfShortFileHashesWhatExists(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "short.jpg", []byte("tiny"))

	partial, err := PartialFingerprint(path, 5*1024)
	require.NoError(t, err)
	full, err := FullFingerprint(path)
	require.NoError(t, err)
	require.Equal(t, full, partial, "a file shorter than K hashes identically under both fingerprints")
}

func TestDifferentContentDifferentFingerprint(t *testing.T) {
	dir := t.TempDir()
	p1 := writeTemp(t, dir, "a.jpg", []byte("content A"))
	p2 := writeTemp(t, dir, "b.jpg", []byte("content B"))

	fp1, err := FullFingerprint(p1)
	require.NoError(t, err)
	fp2, err := FullFingerprint(p2)
	require.NoError(t, err)
	require.NotEqual(t, fp1, fp2)
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, ".photodedup-cache")

	c, err := LoadCache(cachePath)
	require.NoError(t, err)
	c.Store("/a/photo.jpg", 1234, 0xdeadbeef)
	require.NoError(t, c.Save())

	loaded, err := LoadCache(cachePath)
	require.NoError(t, err)
	fp, ok := loaded.Lookup("/a/photo.jpg", 1234)
	require.True(t, ok)
	require.EqualValues(t, 0xdeadbeef, fp)

	_, ok = loaded.Lookup("/a/photo.jpg", 9999) // size mismatch -> stale
	require.False(t, ok)
}

func TestLoadCacheMissingFileIsEmpty(t *testing.T) {
	c, err := LoadCache(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	_, ok := c.Lookup("x", 0)
	require.False(t, ok)
}

var _ = os.TempDir
