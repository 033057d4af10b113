// Package jpegstructure implements the JPEG marker walker, entropy-coded
// segment scanner, Huffman table construction/decoding, and baseline
// MCU decode, narrowed to baseline sequential DCT at precision 8
// (progressive/lossless/hierarchical and any other precision are
// reported as an unsupported-feature error).
package jpegstructure

import (
	"github.com/pkg/errors"

	"github.com/photodedup/photodedup/internal/catalog"
	"github.com/photodedup/photodedup/internal/reader"
)

// Control selects which parts of the structural dump are produced.
type Control struct {
	Warn    bool // include accumulated warnings in the printed output
	Markers bool // not consulted: Format always prints the marker sequence
	Tables  bool // print DQT/DHT contents (standard + natural-order form)
	Mcu     bool // print per-MCU DC-diff + 8x8 coefficient grids
}

// QuantTable holds 64 coefficients in natural (block) order.
type QuantTable struct {
	Tq        int
	Precision int // 0 = 8-bit, 1 = 16-bit
	Coeffs    [64]int32
}

// HuffTable is the Annex C table: the raw bits/huffval input plus the
// derived decode arrays.
type HuffTable struct {
	Class    int // 0 = DC, 1 = AC
	Th       int
	Bits     [16]int
	HuffVal  []byte
	huffSize []int
	huffCode []int
	MinCode  [16]int32
	MaxCode  [16]int32
	ValPtr   [16]int
}

// FrameComponent is one SOF component descriptor (Ci, Hi, Vi, Tqi).
type FrameComponent struct {
	Ci  int
	Hi  int
	Vi  int
	Tqi int
}

// Frame is the SOFn payload.
type Frame struct {
	Marker     catalog.Marker
	Precision  int
	Y, X       int
	Components []FrameComponent
}

// ScanComponent is one SOS component descriptor (Csj, Tdj, Taj).
type ScanComponent struct {
	Csj int
	Tdj int
	Taj int
}

// Scan is one SOS payload plus the MCUs decoded from its ECS.
type Scan struct {
	Components []ScanComponent
	Ss, Se     int
	Ah, Al     int
	MCUs       []MCU
	RSTErrors  int
}

// DataUnit is one decoded 8x8 block: the DC diff relative to the
// running per-component predictor, and the 64 coefficients in natural
// (not zig-zag) order after dequantization.
type DataUnit struct {
	Component int
	DCDiff    int32
	Coeffs    [64]int32
}

// MCU is one minimum coded unit: one DataUnit per (component, v, h)
// sub-block, Σ Hi·Vi of them.
type MCU struct {
	Units []DataUnit
}

// AppSegment is the raw payload of one APPn marker, captured so the
// caller can look for a JFIF or "Exif\0\0" signature without the
// structural walker itself depending on tiffexif: APPn is treated as
// an opaque tables/misc segment here, and the Exif/JFIF dispatch lives
// one layer up in app.go's APP0/APP1 discriminators.
type AppSegment struct {
	Marker int // 0-15, APPn's n
	Data   []byte
	Start  int64 // offset of the segment's leading 0xFF marker byte
	End    int64 // offset one past the segment's last payload byte
}

// Desc is the parsed structural decomposition of one JPEG file.
type Desc struct {
	Frame           *Frame
	Scans           []*Scan
	QuantTabs       map[int]*QuantTable
	HuffTabs        map[huffKey]*HuffTable
	RestartInterval int
	Comments        []string
	AppSegments     []AppSegment
	Warnings        []string
}

type huffKey struct {
	class int
	th    int
}

// Parse walks the marker stream of r and returns its structural
// decomposition. r must be positioned at the start of the file (before
// SOI) and use a MemoryReader so the ECS scanner can use direct slice
// access.
func Parse(r *reader.MemoryReader, ctl Control) (*Desc, error) {
	d := &Desc{
		QuantTabs: make(map[int]*QuantTable),
		HuffTabs:  make(map[huffKey]*HuffTable),
	}

	b0, b1 := r.ReadMarker()
	if r.Err() != nil {
		return nil, r.Err()
	}
	if b0 != 0xFF || catalog.Marker(b1) != catalog.MarkerSOI {
		return nil, errors.Errorf("Tried to read invalid marker '%02X %02X'", b0, b1)
	}

	state := stateFrameTablesMisc
	for state != stateDone {
		b0, b1 := r.ReadMarker()
		if r.Err() != nil {
			return nil, r.Err()
		}
		if b0 != 0xFF {
			return nil, errors.Errorf("Tried to read invalid marker '%02X %02X'", b0, b1)
		}
		if !catalog.IsLegalSuffix(b1) {
			return nil, errors.Errorf("Tried to read invalid marker '%02X %02X'", b0, b1)
		}
		m := catalog.Marker(b1)

		switch {
		case m == catalog.MarkerEOI:
			state = stateDone

		case catalog.IsTablesMisc(m):
			if err := parseTablesMisc(r, d, m); err != nil {
				return nil, err
			}

		case catalog.IsSOF(m):
			if state != stateFrameTablesMisc && state != stateScanTablesMisc {
				return nil, errors.Errorf("unexpected SOF marker %s", catalog.MarkerName(m))
			}
			frame, err := parseSOF(r, m)
			if err != nil {
				return nil, err
			}
			d.Frame = frame
			state = stateScanTablesMisc

		case m == catalog.MarkerSOS:
			if d.Frame == nil {
				return nil, errors.New("SOS before SOF")
			}
			scan, err := parseSOS(r, d)
			if err != nil {
				return nil, err
			}
			d.Scans = append(d.Scans, scan)
			state = stateScanTablesMisc

		default:
			return nil, errors.Errorf("unsupported or unexpected marker %s", catalog.MarkerName(m))
		}
	}

	d.Warnings = append(d.Warnings, r.Warnings()...)
	return d, nil
}

type walkState int

const (
	stateFrameTablesMisc walkState = iota
	stateScanTablesMisc
	stateDone
)

func parseTablesMisc(r *reader.MemoryReader, d *Desc, m catalog.Marker) error {
	length := r.ReadUint(2)
	if r.Err() != nil {
		return r.Err()
	}
	segEnd := r.Offset() + int64(length) - 2

	var err error
	switch m {
	case catalog.MarkerDQT:
		err = parseDQT(r, d, segEnd)
	case catalog.MarkerDHT:
		err = parseDHT(r, d, segEnd)
	case catalog.MarkerDRI:
		ri := r.ReadUint(2)
		d.RestartInterval = int(ri)
	case catalog.MarkerCOM:
		body := r.Read(int(segEnd - r.Offset()))
		if body != nil {
			d.Comments = append(d.Comments, string(body))
		}
	default:
		if catalog.IsAPPn(m) {
			segStart := r.Offset() - 4 // marker(2) + length(2) already consumed
			body := r.Read(int(segEnd - r.Offset()))
			if body != nil {
				d.AppSegments = append(d.AppSegments, AppSegment{
					Marker: int(m - catalog.MarkerAPP0),
					Data:   append([]byte(nil), body...),
					Start:  segStart,
					End:    segEnd,
				})
			}
		}
	}
	if err != nil {
		return err
	}

	if r.Offset() < segEnd {
		r.Warnf("padded segment %s: %d trailing bytes skipped", catalog.MarkerName(m), segEnd-r.Offset())
	}
	r.Seek(segEnd)
	return r.Err()
}
