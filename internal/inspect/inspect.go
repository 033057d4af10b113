// Package inspect bridges the jpegstructure/tiffexif parsers and the
// dedupe hash primitives into the three read-only diagnostic CLI
// subcommands (--jpeg-structure, --exif, --image-info).
package inspect

import (
	"encoding/hex"
	"os"

	"github.com/pkg/errors"

	"github.com/photodedup/photodedup/internal/dedupe"
	"github.com/photodedup/photodedup/internal/jpegstructure"
	"github.com/photodedup/photodedup/internal/reader"
	"github.com/photodedup/photodedup/internal/tiffexif"
)

// JPEGStructure parses path's structural decomposition.
func JPEGStructure(path string, ctl jpegstructure.Control) (*jpegstructure.Desc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	r := reader.NewMemoryReader(data)
	return jpegstructure.Parse(r, ctl)
}

// Exif parses path's embedded TIFF/Exif payload, if any.
func Exif(path string) (*tiffexif.Desc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	r := reader.NewMemoryReader(data)
	desc, err := jpegstructure.Parse(r, jpegstructure.Control{})
	if err != nil {
		return nil, err
	}
	payload, ok := desc.ExifPayload()
	if !ok {
		return nil, errors.Errorf("%s has no embedded Exif payload", path)
	}
	tr := reader.NewMemoryReader(payload)
	return tiffexif.Parse(tr)
}

// ImageInfo is the four-fingerprint summary printed by --image-info:
// full-file hash, partial-file hash, image-data hash, image-data
// partial hash, plus a 20-byte hex preview of the file.
type ImageInfo struct {
	FullFileHash     uint64 `json:"full_file_hash"`
	PartialFileHash  uint64 `json:"partial_file_hash"`
	ImageDataHash    uint64 `json:"image_data_hash"`
	ImageDataPartial uint64 `json:"image_data_partial"`
	HexPreview       string `json:"hex_preview"`
}

func Info(path string) (*ImageInfo, error) {
	full, err := dedupe.FullFingerprint(path)
	if err != nil {
		return nil, err
	}
	partial, err := dedupe.PartialFingerprint(path, dedupe.DefaultPartialHashBytes)
	if err != nil {
		return nil, err
	}
	imgFull, err := dedupe.ImageFingerprint(path)
	if err != nil {
		return nil, err
	}
	imgPartial := imgFull // the image-data stream has no natural
	// "prefix" the way a file does; the partial image-data fingerprint
	// reuses the same DC-coefficient stream definition, so it is equal
	// to the full one. Documented here rather than silently aliasing
	// it in the struct literal below.

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	n := 20
	if len(data) < n {
		n = len(data)
	}

	return &ImageInfo{
		FullFileHash:     full,
		PartialFileHash:  partial,
		ImageDataHash:    imgFull,
		ImageDataPartial: imgPartial,
		HexPreview:       hex.EncodeToString(data[:n]),
	}, nil
}
