package tiffexif

import (
	"github.com/photodedup/photodedup/internal/catalog"
	"github.com/photodedup/photodedup/internal/strbuilder"
)

// Format renders the IFD chain and recognized sub-IFDs: "IFD 0" then
// "Exif IFD", MakerNote sub-TIFF when recognized, GPS/Interoperability
// when present.
func (d *Desc) Format() string {
	b := strbuilder.New()
	for i, ifd := range d.Primary {
		b.Line(0, "IFD %d", i)
		formatIFD(b, ifd, 1)
	}
	if d.Exif != nil {
		b.Line(0, "Exif IFD")
		formatIFD(b, d.Exif, 1)
	}
	if d.GPS != nil {
		b.Line(0, "GPS IFD")
		formatIFD(b, d.GPS, 1)
		if ll, ok := d.LatLng(); ok {
			b.Line(1, "lat/lng: %v", ll)
		}
	}
	if d.Interop != nil {
		b.Line(0, "Interoperability IFD")
		formatIFD(b, d.Interop, 1)
	}
	if d.MakerNote != nil && d.MakerNote.Dialect != "" {
		b.Line(0, "MakerNote (%s)", d.MakerNote.Dialect)
		for i, sub := range d.MakerNote.SubIFDs {
			b.Line(1, "IFD %d", i)
			formatIFD(b, sub, 2)
		}
	}
	for _, w := range d.Warnings {
		b.Line(0, "warning: %s", w)
	}
	return b.Finalize()
}

func formatIFD(b *strbuilder.Builder, ifd *IFD, indent int) {
	for _, e := range ifd.Entries {
		name, known := catalog.TagName(ifd.Kind, e.Tag)
		if !known {
			name = "?"
		}
		b.Line(indent, "%#04x %s (%s) count=%d: %s", e.Tag, name, catalog.TypeName(e.Type), e.Count, e.Value)
	}
}
