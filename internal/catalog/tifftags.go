package catalog

import "sync"

// IfdKind distinguishes which tag namespace an IFD belongs to, since the
// same numeric tag value can mean different things in the primary chain
// versus the Exif/GPS/Interoperability sub-IFDs.
type IfdKind int

const (
	IfdPrimary IfdKind = iota
	IfdExif
	IfdGPS
	IfdInteroperability
)

func (k IfdKind) String() string {
	switch k {
	case IfdExif:
		return "Exif IFD"
	case IfdGPS:
		return "GPS IFD"
	case IfdInteroperability:
		return "Interoperability IFD"
	default:
		return "IFD"
	}
}

// Sub-IFD pointer tags and the MakerNote tag. The parser follows the
// Exif and GPS pointers from any IFD of the primary chain, and reads the
// Interoperability pointer and the MakerNote from the Exif IFD only.
const (
	TagExifIFD          = 0x8769
	TagGPSIFD           = 0x8825
	TagInteroperability = 0xA005
	TagMakerNote        = 0x927C
)

type tagRow struct {
	kind IfdKind
	tag  uint16
	name string
}

var tagTable = []tagRow{
	// Primary/thumbnail chain.
	{IfdPrimary, 0x100, "ImageWidth"},
	{IfdPrimary, 0x101, "ImageLength"},
	{IfdPrimary, 0x102, "BitsPerSample"},
	{IfdPrimary, 0x103, "Compression"},
	{IfdPrimary, 0x106, "PhotometricInterpretation"},
	{IfdPrimary, 0x10E, "ImageDescription"},
	{IfdPrimary, 0x10F, "Make"},
	{IfdPrimary, 0x110, "Model"},
	{IfdPrimary, 0x111, "StripOffsets"},
	{IfdPrimary, 0x112, "Orientation"},
	{IfdPrimary, 0x115, "SamplesPerPixel"},
	{IfdPrimary, 0x117, "StripByteCounts"},
	{IfdPrimary, 0x11A, "XResolution"},
	{IfdPrimary, 0x11B, "YResolution"},
	{IfdPrimary, 0x128, "ResolutionUnit"},
	{IfdPrimary, 0x131, "Software"},
	{IfdPrimary, 0x132, "DateTime"},
	{IfdPrimary, 0x13B, "Artist"},
	{IfdPrimary, 0x213, "YCbCrPositioning"},
	{IfdPrimary, 0x8298, "Copyright"},
	{IfdPrimary, TagExifIFD, "ExifIFD"},
	{IfdPrimary, TagGPSIFD, "GPSIFD"},
	{IfdPrimary, 0x201, "JPEGInterchangeFormat"},
	{IfdPrimary, 0x202, "JPEGInterchangeFormatLength"},
	{IfdPrimary, 0xEA1C, "Padding"},

	// Exif IFD.
	{IfdExif, 0x829A, "ExposureTime"},
	{IfdExif, 0x829D, "FNumber"},
	{IfdExif, 0x8822, "ExposureProgram"},
	{IfdExif, 0x8827, "ISOSpeedRatings"},
	{IfdExif, 0x9000, "ExifVersion"},
	{IfdExif, 0x9003, "DateTimeOriginal"},
	{IfdExif, 0x9004, "DateTimeDigitized"},
	{IfdExif, 0x9101, "ComponentsConfiguration"},
	{IfdExif, 0x9201, "ShutterSpeedValue"},
	{IfdExif, 0x9202, "ApertureValue"},
	{IfdExif, 0x9204, "ExposureBiasValue"},
	{IfdExif, 0x9205, "MaxApertureValue"},
	{IfdExif, 0x9206, "SubjectDistance"},
	{IfdExif, 0x9207, "MeteringMode"},
	{IfdExif, 0x9208, "LightSource"},
	{IfdExif, 0x9209, "Flash"},
	{IfdExif, 0x920A, "FocalLength"},
	{IfdExif, 0x9214, "SubjectArea"},
	{IfdExif, TagMakerNote, "MakerNote"},
	{IfdExif, 0x9286, "UserComment"},
	{IfdExif, 0xA000, "FlashpixVersion"},
	{IfdExif, 0xA001, "ColorSpace"},
	{IfdExif, 0xA002, "PixelXDimension"},
	{IfdExif, 0xA003, "PixelYDimension"},
	{IfdExif, 0xA005, "InteroperabilityIFD"},
	{IfdExif, 0xA20E, "FocalPlaneXResolution"},
	{IfdExif, 0xA20F, "FocalPlaneYResolution"},
	{IfdExif, 0xA217, "SensingMethod"},
	{IfdExif, 0xA300, "FileSource"},
	{IfdExif, 0xA301, "SceneType"},
	{IfdExif, 0xA302, "CFAPattern"},
	{IfdExif, 0xA401, "CustomRendered"},
	{IfdExif, 0xA402, "ExposureMode"},
	{IfdExif, 0xA403, "WhiteBalance"},
	{IfdExif, 0xA404, "DigitalZoomRatio"},
	{IfdExif, 0xA405, "FocalLengthIn35mmFilm"},
	{IfdExif, 0xA406, "SceneCaptureType"},
	{IfdExif, 0xA407, "GainControl"},
	{IfdExif, 0xA408, "Contrast"},
	{IfdExif, 0xA409, "Saturation"},
	{IfdExif, 0xA40A, "Sharpness"},
	{IfdExif, 0xA40C, "SubjectDistanceRange"},
	{IfdExif, 0xA432, "LensSpecification"},
	{IfdExif, 0xA433, "LensMake"},
	{IfdExif, 0xA434, "LensModel"},

	// GPS IFD.
	{IfdGPS, 0x00, "GPSVersionID"},
	{IfdGPS, 0x01, "GPSLatitudeRef"},
	{IfdGPS, 0x02, "GPSLatitude"},
	{IfdGPS, 0x03, "GPSLongitudeRef"},
	{IfdGPS, 0x04, "GPSLongitude"},
	{IfdGPS, 0x05, "GPSAltitudeRef"},
	{IfdGPS, 0x06, "GPSAltitude"},
	{IfdGPS, 0x07, "GPSTimeStamp"},
	{IfdGPS, 0x1D, "GPSDateStamp"},

	// Interoperability IFD.
	{IfdInteroperability, 0x01, "InteroperabilityIndex"},
	{IfdInteroperability, 0x02, "InteroperabilityVersion"},
}

var (
	tagNameOnce sync.Once
	tagNameMap  map[tagKey]string
)

type tagKey struct {
	kind IfdKind
	tag  uint16
}

func tagNames() map[tagKey]string {
	tagNameOnce.Do(func() {
		tagNameMap = make(map[tagKey]string, len(tagTable))
		for _, row := range tagTable {
			tagNameMap[tagKey{row.kind, row.tag}] = row.name
		}
	})
	return tagNameMap
}

// TagName returns the mnemonic name for tag within the given IFD
// namespace, or ok=false if the tag is not in the catalog — the caller
// then emits a non-fatal unknown-tag warning instead of failing.
func TagName(kind IfdKind, tag uint16) (string, bool) {
	name, ok := tagNames()[tagKey{kind, tag}]
	return name, ok
}
