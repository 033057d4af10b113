package jpegstructure

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/photodedup/photodedup/internal/reader"
)

// minimalBaselineJPEG builds a 1x1, single-component baseline JPEG: one
// quantization table (all 1s), one frame, one DC/AC Huffman table pair
// each with a single 1-bit code, one scan whose entropy data decodes to
// a DC diff of 0 and an immediate end-of-block, then EOI.
func minimalBaselineJPEG() []byte {
	var b []byte
	app := func(bs ...byte) { b = append(b, bs...) }

	app(0xFF, 0xD8) // SOI

	// DQT: length 0x0043, Pq/Tq=0, 64 values of 1.
	app(0xFF, 0xDB, 0x00, 0x43, 0x00)
	for i := 0; i < 64; i++ {
		app(0x01)
	}

	// SOF0: length 0x000B, P=8, Y=1, X=1, Nf=1, component (Ci=1,H=1,V=1,Tq=0).
	app(0xFF, 0xC0, 0x00, 0x0B, 0x08, 0x00, 0x01, 0x00, 0x01, 0x01, 0x01, 0x11, 0x00)

	// DHT DC: length 0x0014, Tc/Th=0x00, bits[0]=1 rest 0, huffval={0x00}.
	app(0xFF, 0xC4, 0x00, 0x14, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00)

	// DHT AC: length 0x0014, Tc/Th=0x10, bits[0]=1 rest 0, huffval={0x00}.
	app(0xFF, 0xC4, 0x00, 0x14, 0x10,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00)

	// SOS: length 0x0008, Ns=1, Csj=1/Td=0/Ta=0, Ss=0, Se=63, AhAl=0.
	app(0xFF, 0xDA, 0x00, 0x08, 0x01, 0x01, 0x00, 0x00, 0x3F, 0x00)

	// Entropy data: one byte whose top two bits (DC=0, AC EOB=0) decode
	// the lone data unit; the rest is stuffing padding.
	app(0x3F)

	app(0xFF, 0xD9) // EOI
	return b
}

func TestParseMinimalBaselineJPEG(t *testing.T) {
	data := minimalBaselineJPEG()
	r := reader.NewMemoryReader(data)
	desc, err := Parse(r, Control{Markers: true, Tables: true, Mcu: true})
	require.NoError(t, err)

	require.NotNil(t, desc.Frame)
	require.Equal(t, 1, desc.Frame.X)
	require.Equal(t, 1, desc.Frame.Y)
	require.Len(t, desc.Frame.Components, 1)

	require.Len(t, desc.Scans, 1)
	scan := desc.Scans[0]
	require.Len(t, scan.MCUs, 1)
	require.Len(t, scan.MCUs[0].Units, 1)
	require.EqualValues(t, 0, scan.MCUs[0].Units[0].DCDiff)

	require.Contains(t, desc.QuantTabs, 0)
	require.Contains(t, desc.HuffTabs, huffKey{0, 0})
	require.Contains(t, desc.HuffTabs, huffKey{1, 0})
}

func TestParseRejectsMissingSOI(t *testing.T) {
	data := []byte{0xFF, 0x11, 0xFF, 0xD9}
	r := reader.NewMemoryReader(data)
	_, err := Parse(r, Control{})
	require.Error(t, err)
}

func TestParseRejectsInvalidSecondMarker(t *testing.T) {
	data := []byte{0xFF, 0xD8, 0xFF, 0x11}
	r := reader.NewMemoryReader(data)
	_, err := Parse(r, Control{})
	require.Error(t, err)
}

func TestParseRejectsProgressiveSOF(t *testing.T) {
	data := minimalBaselineJPEG()
	// Flip SOF0 (0xC0) to SOF2 (0xC2, progressive) in place.
	for i := range data {
		if data[i] == 0xFF && i+1 < len(data) && data[i+1] == 0xC0 {
			data[i+1] = 0xC2
			break
		}
	}
	r := reader.NewMemoryReader(data)
	_, err := Parse(r, Control{})
	require.Error(t, err)
}

func TestFormatIncludesStructuralMarkers(t *testing.T) {
	data := minimalBaselineJPEG()
	r := reader.NewMemoryReader(data)
	desc, err := Parse(r, Control{})
	require.NoError(t, err)
	out := desc.Format(Control{Tables: true, Mcu: true})
	require.Contains(t, out, "SOI")
	require.Contains(t, out, "EOI")
	require.Contains(t, out, "SOF0")
}
