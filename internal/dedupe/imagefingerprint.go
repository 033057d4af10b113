package dedupe

import (
	"encoding/binary"
	"os"

	"github.com/pkg/errors"

	"github.com/photodedup/photodedup/internal/jpegstructure"
	"github.com/photodedup/photodedup/internal/reader"
)

// ImageFingerprint hashes the dequantized DC coefficient stream, in
// scan order, per component, as little-endian int16 values — not the
// full 8x8 AC grid, not reconstructed samples, not the coding tables
// themselves. This is the definition most likely to catch "same photo,
// re-saved" duplicates (DC drift across re-encodes is small) without
// conflating genuinely different photos.
func ImageFingerprint(path string) (uint64, error) {
	buf, err := ImageDataStream(path)
	if err != nil {
		return 0, err
	}
	return hashBytes(buf), nil
}

// ImageDataStream decodes path and returns the same byte stream
// ImageFingerprint hashes, for use by verification passes that need to
// compare the actual coefficient stream rather than trust a 64-bit hash.
func ImageDataStream(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return imageDataStreamBytes(data)
}

func imageDataStreamBytes(data []byte) ([]byte, error) {
	r := reader.NewMemoryReader(data)
	desc, err := jpegstructure.Parse(r, jpegstructure.Control{})
	if err != nil {
		return nil, errors.Wrap(err, "decoding image payload")
	}

	buf := make([]byte, 0, 4096)
	var tmp [2]byte
	for _, scan := range desc.Scans {
		for _, mcu := range scan.MCUs {
			for _, du := range mcu.Units {
				binary.LittleEndian.PutUint16(tmp[:], uint16(int16(du.Coeffs[0])))
				buf = append(buf, tmp[:]...)
			}
		}
	}
	return buf, nil
}
