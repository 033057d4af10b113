package strbuilder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineIndentation(t *testing.T) {
	b := New()
	b.Line(0, "SOI")
	b.Line(1, "Ci=%d Hi=%d", 1, 2)
	b.Line(2, "leaf")
	require.Equal(t, "SOI\n  Ci=1 Hi=2\n    leaf\n", b.Finalize())
}

func TestBlankLine(t *testing.T) {
	b := New()
	b.Line(0, "a")
	b.Blank()
	b.Line(0, "b")
	require.Equal(t, "a\n\nb\n", b.Finalize())
}

func TestLenCountsSegments(t *testing.T) {
	b := New()
	require.Equal(t, 0, b.Len())
	b.Line(0, "x")
	b.Blank()
	require.Equal(t, 2, b.Len())
}

func TestEmptyBuilderFinalizesEmpty(t *testing.T) {
	b := New()
	require.Equal(t, "", b.Finalize())
}

func TestLineChaining(t *testing.T) {
	b := New().Line(0, "one").Line(0, "two")
	require.Equal(t, "one\ntwo\n", b.Finalize())
}
