package jpegstructure

import "bytes"

var exifSignature = []byte("Exif\x00\x00")
var jfifSignature = []byte("JFIF\x00")

// ExifPayload returns the TIFF bytes embedded in the first APP1 segment
// carrying an "Exif\x00\x00" signature. ok is false if no such segment
// exists.
func (d *Desc) ExifPayload() ([]byte, bool) {
	for _, app := range d.AppSegments {
		if app.Marker != 1 {
			continue
		}
		if bytes.HasPrefix(app.Data, exifSignature) {
			return app.Data[len(exifSignature):], true
		}
	}
	return nil, false
}

// JFIFVersion returns the JFIF version bytes from the first APP0
// segment, if present.
func (d *Desc) JFIFVersion() ([2]byte, bool) {
	for _, app := range d.AppSegments {
		if app.Marker != 0 {
			continue
		}
		if bytes.HasPrefix(app.Data, jfifSignature) && len(app.Data) >= len(jfifSignature)+2 {
			var v [2]byte
			copy(v[:], app.Data[len(jfifSignature):len(jfifSignature)+2])
			return v, true
		}
	}
	return [2]byte{}, false
}

// jfifHeaderLen is the fixed JFIF APP0 payload prefix: "JFIF\0"(5) +
// version(2) + units(1) + Xdensity(2) + Ydensity(2) + Xthumbnail(1) +
// Ythumbnail(1).
const jfifHeaderLen = 14

// JFIFThumbnail returns the uncompressed RGB thumbnail bitmap embedded
// in the JFIF APP0 segment, if one is present and non-empty.
func (d *Desc) JFIFThumbnail() (width, height int, rgb []byte, ok bool) {
	for _, app := range d.AppSegments {
		if app.Marker != 0 || !bytes.HasPrefix(app.Data, jfifSignature) {
			continue
		}
		if len(app.Data) < jfifHeaderLen {
			return 0, 0, nil, false
		}
		w := int(app.Data[12])
		h := int(app.Data[13])
		need := w * h * 3
		if w == 0 || h == 0 || len(app.Data) < jfifHeaderLen+need {
			return 0, 0, nil, false
		}
		return w, h, append([]byte(nil), app.Data[jfifHeaderLen:jfifHeaderLen+need]...), true
	}
	return 0, 0, nil, false
}

// RemoveAppSegments returns a copy of the original file bytes with
// every APPn segment matching marker (0-15) excised. data must be the
// exact bytes the Desc was parsed from, since segment offsets are
// recorded relative to it.
func (d *Desc) RemoveAppSegments(data []byte, marker int) []byte {
	out := append([]byte(nil), data...)
	for i := len(d.AppSegments) - 1; i >= 0; i-- {
		app := d.AppSegments[i]
		if app.Marker != marker {
			continue
		}
		out = append(out[:app.Start], out[app.End:]...)
	}
	return out
}
