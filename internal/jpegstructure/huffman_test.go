package jpegstructure

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// A small, legal bits/huffval vector: 2 codes of length 2, 2 codes of
// length 3 (sums to Annex C's standard DC luminance-table shape, just
// truncated for test legibility).
func sampleTable() *HuffTable {
	ht := &HuffTable{Class: 0, Th: 0}
	ht.Bits[1] = 2 // two codes of length 2
	ht.Bits[2] = 2 // two codes of length 3
	ht.HuffVal = []byte{0, 1, 2, 3}
	return ht
}

func TestBuildHuffmanTablePrefixFreeAndBounds(t *testing.T) {
	ht := sampleTable()
	require.NoError(t, buildHuffmanTable(ht))

	// length-2 codes: 00, 01 -> mincode=0, maxcode=1
	require.EqualValues(t, 0, ht.MinCode[1])
	require.EqualValues(t, 1, ht.MaxCode[1])
	require.Equal(t, 0, ht.ValPtr[1])

	// length-3 codes continue from (maxcode[1]+1)<<1 = 4
	require.EqualValues(t, 4, ht.MinCode[2])
	require.EqualValues(t, 5, ht.MaxCode[2])
	require.Equal(t, 2, ht.ValPtr[2])

	require.EqualValues(t, -1, ht.MaxCode[0])
}

func TestBuildHuffmanTableRejectsMismatchedHuffval(t *testing.T) {
	ht := &HuffTable{}
	ht.Bits[0] = 2
	ht.HuffVal = []byte{1} // should be length 2
	require.Error(t, buildHuffmanTable(ht))
}

func TestReceiveExtendBijection(t *testing.T) {
	for s := 0; s <= 8; s++ {
		seen := map[int32]bool{}
		max := 1 << uint(s)
		half := max / 2
		for v := 0; v < max; v++ {
			got := ReceiveExtend(s, v)
			require.False(t, seen[got], "duplicate output for s=%d v=%d -> %d", s, v, got)
			seen[got] = true

			switch {
			case s == 0:
				require.EqualValues(t, 0, got)
			case v < half:
				require.True(t, got < 0, "s=%d v=%d got=%d should be negative", s, v, got)
				require.GreaterOrEqual(t, got, int32(-(max - 1)))
			default:
				require.GreaterOrEqual(t, got, int32(half))
				require.LessOrEqual(t, got, int32(max-1))
			}
		}
		require.Len(t, seen, max)
	}
}
