// Package tiffexif implements the TIFF 6.0 header and IFD-chain reader,
// typed value materialization, and the Exif/GPS/Interoperability
// sub-IFD traversal plus Apple/Nikon MakerNote container recognition,
// narrowed to container recognition only for MakerNotes — no semantic
// tag interpretation of vendor-specific fields.
package tiffexif

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/photodedup/photodedup/internal/catalog"
	"github.com/photodedup/photodedup/internal/reader"
)

// Entry is one materialized TIFF IFD entry.
type Entry struct {
	Tag         uint16
	Type        catalog.TiffType
	Count       uint32
	Value       TypedValue
	ValueOffset uint32
	InOffset    bool // value was stored inline in the 4-byte field
}

// IFD is an ordered sequence of entries plus the offset of the next IFD
// in the chain (0 terminates it).
type IFD struct {
	Kind    catalog.IfdKind
	Entries []Entry
	Next    uint32
}

// Desc is everything recovered from one embedded TIFF/Exif blob.
type Desc struct {
	ByteOrder  binary.ByteOrder
	Primary    []*IFD // the primary + thumbnail chain, in link order
	Exif       *IFD
	GPS        *IFD
	Interop    *IFD
	MakerNote  *MakerNote
	Warnings   []string
}

// MakerNote records which dialect (if any) was recognized, and its raw
// sub-TIFF if one was parsed. Container recognition only — vendor tag
// semantics are not decoded.
type MakerNote struct {
	Dialect string // "Apple iOS", "Nikon", or "" if unrecognized
	SubIFDs []*IFD
}

// getEndianness reads the 2-byte "II"/"MM" signature at the current
// reader position.
func getEndianness(data []byte) (binary.ByteOrder, error) {
	if len(data) < 2 {
		return nil, errors.New("short TIFF header")
	}
	switch string(data[:2]) {
	case "II":
		return binary.LittleEndian, nil
	case "MM":
		return binary.BigEndian, nil
	default:
		return nil, errors.Errorf("bad TIFF header signature %q", data[:2])
	}
}

// Parse reads a TIFF 6.0 blob starting at the reader's current offset.
// base is the reader offset corresponding to TIFF-data-relative offset
// 0 (IFD/value offsets inside the blob are relative to this point).
func Parse(r *reader.MemoryReader) (*Desc, error) {
	base := r.Offset()
	header := r.Read(4)
	if r.Err() != nil {
		return nil, r.Err()
	}
	order, err := getEndianness(header)
	if err != nil {
		return nil, err
	}
	prevOrder := r.SetOrder(order)
	defer r.SetOrder(prevOrder)

	magic := order.Uint16(header[2:4])
	if magic != 42 {
		return nil, errors.Errorf("bad TIFF header sentinel %d", magic)
	}

	firstIFD := r.ReadUint(4)
	if r.Err() != nil {
		return nil, r.Err()
	}

	d := &Desc{ByteOrder: order}
	offset := uint32(firstIFD)
	for offset != 0 {
		ifd, next, err := readIFD(r, base, offset, catalog.IfdPrimary, d)
		if err != nil {
			return nil, err
		}
		d.Primary = append(d.Primary, ifd)
		offset = next
	}

	for _, ifd := range d.Primary {
		for _, e := range ifd.Entries {
			switch e.Tag {
			case catalog.TagExifIFD:
				sub, _, err := readIFD(r, base, firstU32(e.Value), catalog.IfdExif, d)
				if err != nil {
					r.Warnf("failed to read Exif IFD: %v", err)
					continue
				}
				d.Exif = sub
				parseSubIFDLinks(r, base, sub, d)
				parseMakerNote(r, base, sub, d)
			case catalog.TagGPSIFD:
				sub, _, err := readIFD(r, base, firstU32(e.Value), catalog.IfdGPS, d)
				if err != nil {
					r.Warnf("failed to read GPS IFD: %v", err)
					continue
				}
				d.GPS = sub
			}
		}
	}

	d.Warnings = append(d.Warnings, r.Warnings()...)
	return d, nil
}

func parseSubIFDLinks(r *reader.MemoryReader, base int64, exif *IFD, d *Desc) {
	for _, e := range exif.Entries {
		if e.Tag == catalog.TagInteroperability {
			sub, _, err := readIFD(r, base, firstU32(e.Value), catalog.IfdInteroperability, d)
			if err != nil {
				r.Warnf("failed to read Interoperability IFD: %v", err)
				continue
			}
			d.Interop = sub
		}
	}
}

func firstU32(v TypedValue) uint32 {
	if longs, ok := v.(LongValue); ok && len(longs) > 0 {
		return longs[0]
	}
	return 0
}

// readIFD reads one IFD at a TIFF-data-relative offset, saving and
// restoring the reader position around the jump.
func readIFD(r *reader.MemoryReader, base int64, offset uint32, kind catalog.IfdKind, d *Desc) (*IFD, uint32, error) {
	saved := r.Offset()
	r.Seek(base + int64(offset))
	if r.Err() != nil {
		return nil, 0, r.Err()
	}

	count := r.ReadUint(2)
	if r.Err() != nil {
		return nil, 0, r.Err()
	}
	ifd := &IFD{Kind: kind}
	for i := uint64(0); i < count; i++ {
		e, err := readEntry(r, base, kind)
		if err != nil {
			return nil, 0, err
		}
		ifd.Entries = append(ifd.Entries, *e)
	}
	next := r.ReadUint(4)
	if r.Err() != nil {
		return nil, 0, r.Err()
	}
	ifd.Next = uint32(next)

	r.Seek(saved)
	return ifd, ifd.Next, nil
}

func readEntry(r *reader.MemoryReader, base int64, kind catalog.IfdKind) (*Entry, error) {
	tag := r.ReadUint(2)
	typ := r.ReadUint(2)
	count := r.ReadUint(4)
	rawOffset := r.Offset()
	raw := r.Read(4)
	if r.Err() != nil {
		return nil, r.Err()
	}

	t := catalog.TiffType(typ)
	if !catalog.KnownType(t) {
		r.Warnf("unknown TIFF type %d for tag %#04x", typ, tag)
	}
	if _, ok := catalog.TagName(kind, uint16(tag)); !ok {
		r.Warnf("unknown TIFF tag %#04x in %s", tag, kind)
	}

	e := &Entry{Tag: uint16(tag), Type: t, Count: uint32(count), ValueOffset: uint32(rawOffset - base)}

	size := catalog.TypeSize(t) * int(count)
	if size <= 4 && size > 0 {
		e.InOffset = true
		e.Value = materialize(r.Order(), t, raw[:size])
		return e, nil
	}

	// Value lives at an offset relative to TIFF data start; seek there
	// temporarily and restore position afterward.
	valOffset := r.Order().Uint32(raw)
	saved := r.Offset()
	r.Seek(base + int64(valOffset))
	data := r.Read(size)
	r.Seek(saved)
	if r.Err() != nil {
		return nil, r.Err()
	}
	e.Value = materialize(r.Order(), t, data)
	return e, nil
}
