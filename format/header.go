package format

import (
	"github.com/geozone/zdgeo/fixedpoint"
	"github.com/geozone/zdgeo/strtab"
	"github.com/geozone/zdgeo/varint"
	"github.com/geozone/zdgeo/zderrs"
)

// Magic identifies a PLB database file.
const Magic = "PLB"

// Version is the only database version this package reads and writes.
// §9's open question about a version-1 Morton-code format is out of scope.
const Version = 0

// TableType distinguishes a timezone ('T') database from a country ('C')
// one; it determines which metadata field schema applies.
type TableType byte

const (
	TableTypeTimezone TableType = 'T'
	TableTypeCountry  TableType = 'C'
)

func (t TableType) String() string {
	switch t {
	case TableTypeTimezone:
		return "Timezone"
	case TableTypeCountry:
		return "Country"
	default:
		return "Unknown"
	}
}

// Header is the parsed fixed-and-variable-length preamble of a PLB file,
// plus the absolute section offsets derived from it.
type Header struct {
	TableType  TableType
	Precision  fixedpoint.Precision
	FieldNames []string
	Notice     string

	BBoxSize int
	MetaSize int
	DataSize int

	// Absolute byte offsets, computed after the declared sizes are known.
	BBoxOffset     int
	MetadataOffset int
	DataOffset     int
}

// ParseHeader reads a Header from the start of data. The number of bytes
// the header occupies (the start of the bbox index) is recorded as
// Header.BBoxOffset.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < 7 {
		return nil, zderrs.ErrShortFile
	}
	if string(data[0:3]) != Magic {
		return nil, zderrs.ErrBadMagic
	}

	h := &Header{
		TableType: TableType(data[3]),
		Precision: fixedpoint.Precision(data[5]),
	}

	version := data[4]
	if version != Version {
		return nil, zderrs.ErrUnsupportedVer
	}

	numFields := int(data[6])
	offset := 7

	h.FieldNames = make([]string, numFields)
	for i := 0; i < numFields; i++ {
		name, err := strtab.ReadString(data, &offset, 0)
		if err != nil {
			return nil, err
		}
		h.FieldNames[i] = name
	}

	notice, err := strtab.ReadString(data, &offset, 0)
	if err != nil {
		return nil, err
	}
	h.Notice = notice

	bboxSize, err := varint.DecodeUnsigned(data, &offset)
	if err != nil {
		return nil, err
	}
	metaSize, err := varint.DecodeUnsigned(data, &offset)
	if err != nil {
		return nil, err
	}
	dataSize, err := varint.DecodeUnsigned(data, &offset)
	if err != nil {
		return nil, err
	}

	h.BBoxSize = int(bboxSize)
	h.MetaSize = int(metaSize)
	h.DataSize = int(dataSize)

	h.BBoxOffset = offset
	h.MetadataOffset = h.BBoxOffset + h.BBoxSize
	h.DataOffset = h.MetadataOffset + h.MetaSize

	if h.DataOffset+h.DataSize != len(data) {
		return nil, zderrs.ErrSectionMismatch
	}

	return h, nil
}

// EncodeHeader serializes a header. bboxSize, metaSize and dataSize are the
// caller's already-built section byte lengths; EncodeHeader does not
// compute them.
func EncodeHeader(tableType TableType, precision fixedpoint.Precision, fieldNames []string, notice string, bboxSize, metaSize, dataSize int) ([]byte, error) {
	if tableType != TableTypeTimezone && tableType != TableTypeCountry {
		return nil, zderrs.ErrUnknownTableType
	}
	if len(fieldNames) > 255 {
		return nil, zderrs.ErrFieldCountMismatch
	}

	out := make([]byte, 0, 64)
	out = append(out, Magic...)
	out = append(out, byte(tableType), Version, byte(precision), byte(len(fieldNames)))

	var err error
	for _, name := range fieldNames {
		out, err = strtab.EncodeInline(out, name)
		if err != nil {
			return nil, err
		}
	}

	out, err = strtab.EncodeInline(out, notice)
	if err != nil {
		return nil, err
	}

	out = varint.PutRaw(out, uint64(bboxSize))
	out = varint.PutRaw(out, uint64(metaSize))
	out = varint.PutRaw(out, uint64(dataSize))

	return out, nil
}
