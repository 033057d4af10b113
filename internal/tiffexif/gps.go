package tiffexif

import "github.com/golang/geo/s2"

// LatLng materializes the GPS IFD's latitude/longitude entries (tags
// 0x01-0x04) into an s2.LatLng, instead of leaving callers to interpret
// a bare degrees/minutes/seconds rational triple themselves. Returns
// ok=false if the GPS IFD is absent or incomplete.
func (d *Desc) LatLng() (s2.LatLng, bool) {
	if d.GPS == nil {
		return s2.LatLng{}, false
	}
	lat, latRef, latOK := dmsEntry(d.GPS, 0x02, 0x01)
	lon, lonRef, lonOK := dmsEntry(d.GPS, 0x04, 0x03)
	if !latOK || !lonOK {
		return s2.LatLng{}, false
	}
	if latRef == "S" {
		lat = -lat
	}
	if lonRef == "W" {
		lon = -lon
	}
	return s2.LatLngFromDegrees(lat, lon), true
}

func dmsEntry(ifd *IFD, valueTag, refTag uint16) (degrees float64, ref string, ok bool) {
	var rv RationalValue
	for _, e := range ifd.Entries {
		if e.Tag == valueTag {
			if r, isR := e.Value.(RationalValue); isR && len(r) == 3 {
				rv = r
			}
		}
		if e.Tag == refTag {
			if a, isA := e.Value.(AsciiValue); isA {
				ref = string(a)
			}
		}
	}
	if rv == nil {
		return 0, ref, false
	}
	degrees = rv[0].Float() + rv[1].Float()/60 + rv[2].Float()/3600
	return degrees, ref, true
}
