package jpegstructure

import (
	"github.com/pkg/errors"

	"github.com/photodedup/photodedup/internal/catalog"
	"github.com/photodedup/photodedup/internal/reader"
)

func parseSOF(r *reader.MemoryReader, m catalog.Marker) (*Frame, error) {
	if m != catalog.MarkerSOF0 {
		// Progressive (SOF2), lossless (SOF3), hierarchical (SOF5-7,
		// SOF9-11, SOF13-15), and arithmetic-coded variants are not
		// decoded; only baseline DCT sequential (SOF0) is supported.
		return nil, errors.Errorf("unsupported encoding %s: UnsupportedFeature", catalog.MarkerName(m))
	}
	_ = r.ReadUint(2) // segment length; component count below is authoritative
	p := r.ReadUint(1)
	y := r.ReadUint(2)
	x := r.ReadUint(2)
	nf := r.ReadUint(1)
	if r.Err() != nil {
		return nil, r.Err()
	}
	if p != 8 {
		return nil, errors.Errorf("unsupported sample precision %d", p)
	}
	f := &Frame{Marker: m, Precision: int(p), Y: int(y), X: int(x)}
	for i := uint64(0); i < nf; i++ {
		ci := r.ReadUint(1)
		hv := r.ReadUint(1)
		tqi := r.ReadUint(1)
		if r.Err() != nil {
			return nil, r.Err()
		}
		f.Components = append(f.Components, FrameComponent{
			Ci:  int(ci),
			Hi:  int(hv >> 4),
			Vi:  int(hv & 0x0F),
			Tqi: int(tqi),
		})
	}
	return f, nil
}

func parseSOS(r *reader.MemoryReader, d *Desc) (*Scan, error) {
	length := r.ReadUint(2)
	segStart := r.Offset()
	ns := r.ReadUint(1)
	if r.Err() != nil {
		return nil, r.Err()
	}
	s := &Scan{}
	for i := uint64(0); i < ns; i++ {
		csj := r.ReadUint(1)
		tdta := r.ReadUint(1)
		if r.Err() != nil {
			return nil, r.Err()
		}
		s.Components = append(s.Components, ScanComponent{
			Csj: int(csj),
			Tdj: int(tdta >> 4),
			Taj: int(tdta & 0x0F),
		})
	}
	ss := r.ReadUint(1)
	se := r.ReadUint(1)
	ahal := r.ReadUint(1)
	if r.Err() != nil {
		return nil, r.Err()
	}
	s.Ss, s.Se = int(ss), int(se)
	s.Ah, s.Al = int(ahal>>4), int(ahal&0x0F)

	segEnd := segStart + int64(length) - 2
	if r.Offset() < segEnd {
		r.Skip(int(segEnd - r.Offset()))
	}

	if err := decodeScan(r, d, s); err != nil {
		return nil, err
	}
	return s, nil
}
