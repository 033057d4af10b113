package reader

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryReaderReadAdvancesOffset(t *testing.T) {
	r := NewMemoryReader([]byte{1, 2, 3, 4})
	got := r.Read(2)
	require.NoError(t, r.Err())
	require.Equal(t, []byte{1, 2}, got)
	require.EqualValues(t, 2, r.Offset())
}

func TestMemoryReaderReadPastEofIsSticky(t *testing.T) {
	r := NewMemoryReader([]byte{1, 2})
	got := r.Read(10)
	require.Nil(t, got)
	require.Error(t, r.Err())
	require.True(t, IsKind(r.Err(), KindReadPastEof))

	// Further operations are no-ops once the error flag is set.
	got = r.Read(1)
	require.Nil(t, got)
	r.Skip(1)
	require.EqualValues(t, 0, r.Offset())
}

func TestMemoryReaderEndianness(t *testing.T) {
	r := NewMemoryReader([]byte{0x00, 0x01})
	r.SetOrder(binary.BigEndian)
	require.EqualValues(t, 1, r.ReadUint(2))

	r2 := NewMemoryReader([]byte{0x00, 0x01})
	r2.SetOrder(binary.LittleEndian)
	require.EqualValues(t, 0x0100, r2.ReadUint(2))
}

func TestMemoryReaderSeekAndSkip(t *testing.T) {
	r := NewMemoryReader([]byte{1, 2, 3, 4, 5})
	r.Skip(2)
	require.EqualValues(t, 2, r.Offset())
	r.Seek(4)
	require.EqualValues(t, 4, r.Offset())
	require.Equal(t, []byte{5}, r.Read(1))
}

func TestMemoryReaderMarkerAlwaysBigEndian(t *testing.T) {
	r := NewMemoryReader([]byte{0xFF, 0xD8})
	r.SetOrder(binary.LittleEndian)
	b0, b1 := r.ReadMarker()
	require.Equal(t, byte(0xFF), b0)
	require.Equal(t, byte(0xD8), b1)
}

func TestWarningsDoNotSetError(t *testing.T) {
	r := NewMemoryReader([]byte{1})
	r.Warnf("unknown tag %d", 7)
	require.NoError(t, r.Err())
	require.Len(t, r.Warnings(), 1)
}
