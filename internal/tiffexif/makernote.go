package tiffexif

import (
	"bytes"

	"github.com/photodedup/photodedup/internal/catalog"
	"github.com/photodedup/photodedup/internal/reader"
)

var (
	appleMagic = []byte("Apple iOS\x00")
	nikonMagic = []byte("Nikon\x00")
	nikonSub   = []byte{0x02, 0x11, 0x00, 0x00}
)

// parseMakerNote locates tag 0x927C in the Exif IFD and recognizes its
// container format. Only the two documented dialects are recognized;
// anything else produces a non-fatal warning. Only the container is
// recognized here; no per-vendor tag is given semantic meaning.
//
// Failures inside this function must never propagate to the outer
// reader's sticky error: every error path here degrades to a warning
// instead of returning an error.
func parseMakerNote(r *reader.MemoryReader, base int64, exif *IFD, d *Desc) {
	for _, e := range exif.Entries {
		if e.Tag != catalog.TagMakerNote {
			continue
		}
		raw, ok := e.Value.(UndefinedValue)
		if !ok {
			r.Warnf("MakerNote entry has unexpected type %T", e.Value)
			return
		}
		mn := &MakerNote{}
		switch {
		case bytes.HasPrefix(raw, appleMagic):
			mn.Dialect = "Apple iOS"
			sub := raw[len(appleMagic):]
			if len(sub) < 2 {
				r.Warnf("MakerNoteUnrecognized: truncated Apple iOS MakerNote")
				break
			}
			// version u16 (expected 1), then a nested TIFF-like block
			// whose endianness/offsets are local to the MakerNote.
			tiffBlock := sub[2:]
			if ifds, err := parseNestedTIFF(r, tiffBlock, catalog.IfdPrimary); err == nil {
				mn.SubIFDs = ifds
			} else {
				r.Warnf("MakerNoteUnrecognized: Apple iOS sub-TIFF: %v", err)
			}
		case bytes.HasPrefix(raw, nikonMagic):
			body := raw[len(nikonMagic):]
			if len(body) < 4 || !bytes.Equal(body[:4], nikonSub) {
				r.Warnf("MakerNoteUnrecognized: Nikon magic mismatch")
				break
			}
			mn.Dialect = "Nikon"
			tiffBlock := body[4:]
			if ifds, err := parseNestedTIFF(r, tiffBlock, catalog.IfdPrimary); err == nil {
				mn.SubIFDs = ifds
			} else {
				r.Warnf("MakerNoteUnrecognized: Nikon sub-TIFF: %v", err)
			}
		default:
			r.Warnf("MakerNoteUnrecognized: unknown MakerNote container")
		}
		d.MakerNote = mn
	}
}

// parseNestedTIFF parses a self-contained TIFF 6.0 block embedded
// inside a MakerNote value. The nested reader has its own endianness,
// independent of the outer reader's.
func parseNestedTIFF(r *reader.MemoryReader, block []byte, kind catalog.IfdKind) ([]*IFD, error) {
	nested := reader.NewMemoryReader(block)
	desc, err := Parse(nested)
	if err != nil {
		return nil, err
	}
	return desc.Primary, nil
}
