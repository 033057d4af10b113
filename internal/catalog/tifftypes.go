package catalog

// TiffType is one of the TIFF 6.0 field types.
type TiffType uint16

const (
	TypeByte      TiffType = 1
	TypeAscii     TiffType = 2
	TypeShort     TiffType = 3
	TypeLong      TiffType = 4
	TypeRational  TiffType = 5
	TypeSByte     TiffType = 6
	TypeUndefined TiffType = 7
	TypeSShort    TiffType = 8
	TypeSLong     TiffType = 9
	TypeSRational TiffType = 10
	TypeFloat     TiffType = 11
	TypeDouble    TiffType = 12
)

type typeRow struct {
	t    TiffType
	name string
	size int
}

var typeTable = []typeRow{
	{TypeByte, "BYTE", 1},
	{TypeAscii, "ASCII", 1},
	{TypeShort, "SHORT", 2},
	{TypeLong, "LONG", 4},
	{TypeRational, "RATIONAL", 8},
	{TypeSByte, "SBYTE", 1},
	{TypeUndefined, "UNDEFINED", 1},
	{TypeSShort, "SSHORT", 2},
	{TypeSLong, "SLONG", 4},
	{TypeSRational, "SRATIONAL", 8},
	{TypeFloat, "FLOAT", 4},
	{TypeDouble, "DOUBLE", 8},
}

// TypeSize returns the byte size of one value of t, or 0 if unknown.
func TypeSize(t TiffType) int {
	for _, row := range typeTable {
		if row.t == t {
			return row.size
		}
	}
	return 0
}

// TypeName returns the mnemonic name of t, or "" if unknown.
func TypeName(t TiffType) string {
	for _, row := range typeTable {
		if row.t == t {
			return row.name
		}
	}
	return ""
}

// KnownType reports whether t is a recognized TIFF 6.0 type.
func KnownType(t TiffType) bool { return TypeSize(t) != 0 }
