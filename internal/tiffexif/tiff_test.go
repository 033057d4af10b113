package tiffexif

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/photodedup/photodedup/internal/reader"
)

// buildMinimalTIFF assembles a little-endian TIFF blob with one IFD0
// entry: tag 0x0100 (ImageWidth), type Short, inline value 100.
func buildMinimalTIFF() []byte {
	buf := make([]byte, 8+2+12+4)
	copy(buf[0:2], "II")
	binary.LittleEndian.PutUint16(buf[2:4], 42)
	binary.LittleEndian.PutUint32(buf[4:8], 8) // first IFD at offset 8

	binary.LittleEndian.PutUint16(buf[8:10], 1) // 1 entry
	entry := buf[10:22]
	binary.LittleEndian.PutUint16(entry[0:2], 0x0100)
	binary.LittleEndian.PutUint16(entry[2:4], 3) // Short
	binary.LittleEndian.PutUint32(entry[4:8], 1) // count
	binary.LittleEndian.PutUint16(entry[8:10], 100)

	binary.LittleEndian.PutUint32(buf[22:26], 0) // next IFD = 0
	return buf
}

func TestParseMinimalTIFFLittleEndian(t *testing.T) {
	data := buildMinimalTIFF()
	r := reader.NewMemoryReader(data)
	desc, err := Parse(r)
	require.NoError(t, err)
	require.Equal(t, binary.LittleEndian, desc.ByteOrder)
	require.Len(t, desc.Primary, 1)
	require.Len(t, desc.Primary[0].Entries, 1)

	e := desc.Primary[0].Entries[0]
	require.EqualValues(t, 0x0100, e.Tag)
	require.True(t, e.InOffset)
	sv, ok := e.Value.(ShortValue)
	require.True(t, ok)
	require.Equal(t, []uint16{100}, []uint16(sv))
}

func TestParseBigEndianHeader(t *testing.T) {
	data := buildMinimalTIFF()
	// Flip to big-endian: "MM", sentinel, and every multi-byte field.
	data[0], data[1] = 'M', 'M'
	be := make([]byte, len(data))
	copy(be, data)
	binary.BigEndian.PutUint16(be[2:4], 42)
	binary.BigEndian.PutUint32(be[4:8], 8)
	binary.BigEndian.PutUint16(be[8:10], 1)
	entry := be[10:22]
	binary.BigEndian.PutUint16(entry[0:2], 0x0100)
	binary.BigEndian.PutUint16(entry[2:4], 3)
	binary.BigEndian.PutUint32(entry[4:8], 1)
	binary.BigEndian.PutUint16(entry[8:10], 100)
	binary.BigEndian.PutUint32(be[22:26], 0)

	r := reader.NewMemoryReader(be)
	desc, err := Parse(r)
	require.NoError(t, err)
	require.Equal(t, binary.BigEndian, desc.ByteOrder)
	sv := desc.Primary[0].Entries[0].Value.(ShortValue)
	require.Equal(t, []uint16{100}, []uint16(sv))
}

func TestParseRejectsBadSignature(t *testing.T) {
	data := buildMinimalTIFF()
	data[0], data[1] = 'X', 'X'
	r := reader.NewMemoryReader(data)
	_, err := Parse(r)
	require.Error(t, err)
}

func TestParseRejectsBadSentinel(t *testing.T) {
	data := buildMinimalTIFF()
	binary.LittleEndian.PutUint16(data[2:4], 43)
	r := reader.NewMemoryReader(data)
	_, err := Parse(r)
	require.Error(t, err)
}

func TestGetEndiannessShortHeader(t *testing.T) {
	_, err := getEndianness([]byte{'I'})
	require.Error(t, err)
}
