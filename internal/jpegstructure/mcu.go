package jpegstructure

import (
	"github.com/pkg/errors"

	"github.com/photodedup/photodedup/internal/reader"
)

// decodeScan scans the ECS following an SOS, decoding MCUs and
// tracking RST sequencing.
func decodeScan(r *reader.MemoryReader, d *Desc, s *Scan) error {
	f := d.Frame
	if f == nil {
		return errors.New("scan without frame")
	}

	hMax, vMax := 1, 1
	for _, c := range f.Components {
		if c.Hi > hMax {
			hMax = c.Hi
		}
		if c.Vi > vMax {
			vMax = c.Vi
		}
	}
	mcusWide := (f.X + 8*hMax - 1) / (8 * hMax)
	mcusHigh := (f.Y + 8*vMax - 1) / (8 * vMax)
	totalMCUs := mcusWide * mcusHigh

	dcPred := make(map[int]int32, len(s.Components))

	br := newBitReader(r.Bytes())
	expectedRST := 0
	ri := d.RestartInterval
	sinceRST := 0

	for m := 0; m < totalMCUs; m++ {
		if br.hitMarker {
			if br.marker == 0xD9 { // EOI
				break
			}
			if br.marker == 0xDC { // DNL: terminates the scan read loop
				break
			}
			if br.marker >= 0xD0 && br.marker <= 0xD7 { // RSTn
				got := int(br.marker - 0xD0)
				if got != expectedRST {
					s.RSTErrors++
				}
				expectedRST = (got + 1) % 8
				br.hitMarker = false
				br.marker = 0
				sinceRST = 0
				continue
			}
			break
		}

		mcu := MCU{}
		for _, sc := range s.Components {
			fc := frameComponentFor(f, sc.Csj)
			if fc == nil {
				return errors.Errorf("scan references unknown component %d", sc.Csj)
			}
			for v := 0; v < fc.Vi; v++ {
				for h := 0; h < fc.Hi; h++ {
					du, err := decodeDataUnit(br, d, sc, fc, dcPred)
					if err != nil {
						return err
					}
					mcu.Units = append(mcu.Units, *du)
				}
			}
		}
		s.MCUs = append(s.MCUs, mcu)

		sinceRST++
		if ri > 0 && sinceRST == ri && m != totalMCUs-1 {
			// A restart marker is expected next; the bit reader will
			// surface it as hitMarker on the following fill().
		}
	}

	advance := br.pos
	if advance > len(br.data) {
		advance = len(br.data)
	}
	r.Skip(advance)
	return nil
}

func frameComponentFor(f *Frame, ci int) *FrameComponent {
	for i := range f.Components {
		if f.Components[i].Ci == ci {
			return &f.Components[i]
		}
	}
	return nil
}

func decodeDataUnit(br *bitReader, d *Desc, sc ScanComponent, fc *FrameComponent, dcPred map[int]int32) (*DataUnit, error) {
	dcTab := d.HuffTabs[huffKey{0, sc.Tdj}]
	acTab := d.HuffTabs[huffKey{1, sc.Taj}]
	if dcTab == nil || acTab == nil {
		return nil, errors.Errorf("missing Huffman table for component %d", sc.Csj)
	}

	var zz [64]int32

	t, err := br.decodeSymbol(dcTab)
	if err != nil {
		return nil, err
	}
	diff := br.receiveExtend(int(t))
	dcPred[sc.Csj] += diff
	zz[0] = dcPred[sc.Csj]

	k := 1
	for k < 64 {
		rs, err := br.decodeSymbol(acTab)
		if err != nil {
			return nil, err
		}
		run := int(rs >> 4)
		size := int(rs & 0x0F)
		if rs == 0x00 {
			break
		}
		if rs == 0xF0 {
			k += 16
			continue
		}
		k += run
		if k >= 64 {
			break
		}
		zz[k] = br.receiveExtend(size)
		k++
	}

	du := &DataUnit{Component: sc.Csj, DCDiff: diff}
	qt := d.QuantTabs[fc.Tqi]
	for i := 0; i < 64; i++ {
		natural := zigZag[i]
		coeff := zz[i]
		if qt != nil {
			coeff *= qt.Coeffs[natural]
		}
		du.Coeffs[natural] = coeff
	}
	return du, nil
}
