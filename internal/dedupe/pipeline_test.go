package dedupe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestRunFileNameFindsDuplicateBasenames(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	p1 := writeTemp(t, dir, "photo.jpg", []byte("a"))
	p2 := writeTemp(t, sub, "photo.jpg", []byte("b"))

	headers := []*FileHeader{{Path: p1}, {Path: p2}}
	plan := RunFileName(headers, Options{})
	require.Len(t, plan.Groups, 1)
	require.Equal(t, p1, plan.Groups[0].Survivor) // shallower depth wins
	require.Equal(t, []string{p2}, plan.Groups[0].Removed)
}

func TestRunFileContentSplitsOnTailMismatch(t *testing.T) {
	dir := t.TempDir()
	prefix := make([]byte, 16)
	for i := range prefix {
		prefix[i] = byte(i)
	}
	content1 := append(append([]byte(nil), prefix...), []byte("tail-one")...)
	content2 := append(append([]byte(nil), prefix...), []byte("tail-two")...)

	p1 := writeTemp(t, dir, "a.jpg", content1)
	p2 := writeTemp(t, dir, "b.jpg", content2)

	headers := Collect([]string{p1, p2}, func(string) {})
	opts := Options{PartialHashBytes: 16}
	plan := RunFileContent(headers, opts, nil)

	require.Empty(t, plan.Groups, "distinct tails must not be reported as a duplicate group")
	require.NotEmpty(t, plan.Warnings)
}

func TestRunFileContentFindsTrueDuplicates(t *testing.T) {
	dir := t.TempDir()
	content := []byte("identical content shared by both files")

	p1 := writeTemp(t, dir, "photo.jpg", content)
	p2 := writeTemp(t, dir, "photo (1).jpg", content)
	p3 := writeTemp(t, dir, "photo (2).jpg", content)

	headers := Collect([]string{p1, p2, p3}, func(string) {})
	plan := RunFileContent(headers, Options{}, nil)

	require.Len(t, plan.Groups, 1)
	require.Equal(t, p1, plan.Groups[0].Survivor)
	require.ElementsMatch(t, []string{p2, p3}, plan.Groups[0].Removed)
}

// minimalJPEG builds a 1x1 baseline JPEG byte-identical in structure
// across calls, suitable for exercising the image-content pipeline
// without needing a real photo fixture.
func minimalJPEG() []byte {
	var b []byte
	app := func(bs ...byte) { b = append(b, bs...) }

	app(0xFF, 0xD8) // SOI
	app(0xFF, 0xDB, 0x00, 0x43, 0x00)
	for i := 0; i < 64; i++ {
		app(0x01)
	}
	app(0xFF, 0xC0, 0x00, 0x0B, 0x08, 0x00, 0x01, 0x00, 0x01, 0x01, 0x01, 0x11, 0x00)
	app(0xFF, 0xC4, 0x00, 0x14, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00)
	app(0xFF, 0xC4, 0x00, 0x14, 0x10,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00)
	app(0xFF, 0xDA, 0x00, 0x08, 0x01, 0x01, 0x00, 0x00, 0x3F, 0x00)
	app(0x3F)
	app(0xFF, 0xD9) // EOI
	return b
}

func TestRunImageContentFindsAndVerifiesDuplicates(t *testing.T) {
	dir := t.TempDir()
	img := minimalJPEG()

	p1 := writeTemp(t, dir, "a.jpg", img)
	p2 := writeTemp(t, dir, "b.jpg", img)

	headers := Collect([]string{p1, p2}, func(string) {})
	plan := RunImageContent(headers, Options{}, nil)

	require.Len(t, plan.Groups, 1)
	require.ElementsMatch(t, []string{p1, p2}, append([]string{plan.Groups[0].Survivor}, plan.Groups[0].Removed...))
	require.Empty(t, plan.Warnings)
}

func TestRunImageContentSkipsUndecodableFiles(t *testing.T) {
	dir := t.TempDir()
	p1 := writeTemp(t, dir, "not-a-jpeg.jpg", []byte("definitely not a jpeg"))

	headers := Collect([]string{p1}, func(string) {})
	plan := RunImageContent(headers, Options{}, nil)

	require.Empty(t, plan.Groups)
	require.NotEmpty(t, plan.Warnings)
}

func TestCollectSkipsMissingFiles(t *testing.T) {
	var warnings []string
	headers := Collect([]string{"/does/not/exist"}, func(msg string) {
		warnings = append(warnings, msg)
	})
	require.Empty(t, headers)
	require.NotEmpty(t, warnings)
}

func TestPlanFormatAndToUnlink(t *testing.T) {
	plan := &Plan{
		Kind: "file-content",
		Groups: []Group{
			{Survivor: "a.jpg", Removed: []string{"b.jpg", "c.jpg"}},
		},
	}
	require.Equal(t, []string{"b.jpg", "c.jpg"}, plan.ToUnlink())
	require.Contains(t, plan.Format(), "file-content-deduplication")
}
