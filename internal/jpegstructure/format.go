package jpegstructure

import (
	"fmt"

	"github.com/photodedup/photodedup/internal/strbuilder"
)

// Format renders the structural decomposition in marker-walk order:
// SOI, frame tables/misc, SOFn, per-scan tables/misc + SOS
// (+ optional MCU grids), EOI.
func (d *Desc) Format(ctl Control) string {
	b := strbuilder.New()
	b.Line(0, "SOI")
	b.Line(0, "Frame tables/misc.")
	formatAppSegments(b, d)
	if ctl.Tables {
		formatTables(b, d)
	}
	if d.Frame != nil {
		formatFrame(b, d.Frame)
	}
	for i, s := range d.Scans {
		b.Line(0, "Scan tables/misc.")
		formatScan(b, i, s, ctl)
	}
	b.Line(0, "EOI")
	if ctl.Warn {
		for _, w := range d.Warnings {
			b.Line(0, "warning: %s", w)
		}
	}
	return b.Finalize()
}

func formatAppSegments(b *strbuilder.Builder, d *Desc) {
	if v, ok := d.JFIFVersion(); ok {
		b.Line(1, "APP0 JFIF version=%d.%02d", v[0], v[1])
		if w, h, _, ok := d.JFIFThumbnail(); ok {
			b.Line(2, "thumbnail %dx%d RGB", w, h)
		}
	}
	if _, ok := d.ExifPayload(); ok {
		b.Line(1, "APP1 Exif present")
	}
}

func formatTables(b *strbuilder.Builder, d *Desc) {
	for tq, qt := range d.QuantTabs {
		b.Line(1, "DQT Tq=%d Pq=%d", tq, qt.Precision)
		b.Line(2, "Standard (zig-zag order):")
		formatCoeffGrid(b, 3, standardOrder(qt.Coeffs))
		b.Line(2, "Extra (natural/block order):")
		formatCoeffGrid(b, 3, qt.Coeffs)
	}
	for k, ht := range d.HuffTabs {
		cls := "DC"
		if k.class == 1 {
			cls = "AC"
		}
		b.Line(1, "DHT Tc=%s Th=%d bits=%v", cls, k.th, ht.Bits)
	}
}

// standardOrder re-sequences a natural-(block-)order coefficient array
// into the zig-zag order JPEG's own bitstream and Annex tables use.
func standardOrder(natural [64]int32) [64]int32 {
	var zz [64]int32
	for k, nat := range zigZag {
		zz[k] = natural[nat]
	}
	return zz
}

func formatCoeffGrid(b *strbuilder.Builder, indent int, coeffs [64]int32) {
	for row := 0; row < 8; row++ {
		vals := make([]interface{}, 8)
		for col := 0; col < 8; col++ {
			vals[col] = coeffs[row*8+col]
		}
		b.Line(indent, fmt.Sprintf("%v", vals))
	}
}

func formatFrame(b *strbuilder.Builder, f *Frame) {
	b.Line(0, "SOF0 P=%d X=%d Y=%d Nf=%d", f.Precision, f.X, f.Y, len(f.Components))
	for _, c := range f.Components {
		b.Line(1, "Ci=%d Hi=%d Vi=%d Tqi=%d", c.Ci, c.Hi, c.Vi, c.Tqi)
	}
}

func formatScan(b *strbuilder.Builder, idx int, s *Scan, ctl Control) {
	b.Line(0, "SOS Ns=%d Ss=%d Se=%d Ah=%d Al=%d", len(s.Components), s.Ss, s.Se, s.Ah, s.Al)
	for _, c := range s.Components {
		b.Line(1, "Csj=%d Tdj=%d Taj=%d", c.Csj, c.Tdj, c.Taj)
	}
	b.Line(1, "RST errors: %d", s.RSTErrors)
	if ctl.Mcu {
		for mi, mcu := range s.MCUs {
			b.Line(1, "MCU %d", mi)
			for _, du := range mcu.Units {
				b.Line(2, "component %d DC-diff=%d", du.Component, du.DCDiff)
				for row := 0; row < 8; row++ {
					vals := make([]interface{}, 8)
					for col := 0; col < 8; col++ {
						vals[col] = du.Coeffs[row*8+col]
					}
					b.Line(3, fmt.Sprintf("%v", vals))
				}
			}
		}
	}
}
