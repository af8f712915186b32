package format

import (
	"github.com/geozone/zdgeo/varint"
)

// BBoxRecord is one polygon's bounding box and the absolute byte offsets of
// its metadata string and its vertex stream, both relative to the start of
// their respective sections.
type BBoxRecord struct {
	MinLatFP int64
	MinLonFP int64
	MaxLatFP int64
	MaxLonFP int64

	MetadataOffset int
	PolygonOffset  int
}

// BBoxWriter serializes bbox index records in the order they are given.
// Records must be supplied sorted ascending by MinLatFP; the writer does
// not sort or validate that ordering itself since the lookup engine's
// early-termination scan depends on the caller having done so.
//
// MetadataOffset is delta-encoded signed (repeated metadata values can
// point backward to an earlier string), PolygonOffset is delta-encoded
// unsigned (polygon data is appended in the same order as the index).
type BBoxWriter struct {
	prevMetadataOffset int
	prevPolygonOffset  int
}

// NewBBoxWriter returns a BBoxWriter ready to encode the first record of a
// bbox index.
func NewBBoxWriter() *BBoxWriter {
	return &BBoxWriter{}
}

// WriteRecord appends the encoding of rec to dst.
func (w *BBoxWriter) WriteRecord(dst []byte, rec BBoxRecord) []byte {
	dst = varint.PutSigned(dst, rec.MinLatFP)
	dst = varint.PutSigned(dst, rec.MinLonFP)
	dst = varint.PutSigned(dst, rec.MaxLatFP)
	dst = varint.PutSigned(dst, rec.MaxLonFP)

	dst = varint.PutSigned(dst, int64(rec.MetadataOffset-w.prevMetadataOffset))
	dst = varint.PutUnsigned(dst, uint64(rec.PolygonOffset-w.prevPolygonOffset))

	w.prevMetadataOffset = rec.MetadataOffset
	w.prevPolygonOffset = rec.PolygonOffset

	return dst
}

// BBoxReader streams bbox index records out of an encoded section without
// materializing the whole index, resolving the running metadata/polygon
// offset accumulators as it goes.
type BBoxReader struct {
	data   []byte
	offset int
	end    int

	prevMetadataOffset int
	prevPolygonOffset  int
}

// NewBBoxReader returns a reader over the bbox section data[0:size].
func NewBBoxReader(data []byte, size int) *BBoxReader {
	return &BBoxReader{data: data, end: size}
}

// Next decodes the next record, reporting false once the section is
// exhausted.
func (r *BBoxReader) Next() (BBoxRecord, bool, error) {
	if r.offset >= r.end {
		return BBoxRecord{}, false, nil
	}

	var rec BBoxRecord
	var err error

	if rec.MinLatFP, err = varint.DecodeSigned(r.data, &r.offset); err != nil {
		return BBoxRecord{}, false, err
	}
	if rec.MinLonFP, err = varint.DecodeSigned(r.data, &r.offset); err != nil {
		return BBoxRecord{}, false, err
	}
	if rec.MaxLatFP, err = varint.DecodeSigned(r.data, &r.offset); err != nil {
		return BBoxRecord{}, false, err
	}
	if rec.MaxLonFP, err = varint.DecodeSigned(r.data, &r.offset); err != nil {
		return BBoxRecord{}, false, err
	}

	deltaMeta, err := varint.DecodeSigned(r.data, &r.offset)
	if err != nil {
		return BBoxRecord{}, false, err
	}
	deltaPoly, err := varint.DecodeUnsigned(r.data, &r.offset)
	if err != nil {
		return BBoxRecord{}, false, err
	}

	rec.MetadataOffset = r.prevMetadataOffset + int(deltaMeta)
	rec.PolygonOffset = r.prevPolygonOffset + int(deltaPoly)
	r.prevMetadataOffset = rec.MetadataOffset
	r.prevPolygonOffset = rec.PolygonOffset

	return rec, true, nil
}
