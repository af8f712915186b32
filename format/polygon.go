package format

import (
	"github.com/geozone/zdgeo/varint"
	"github.com/geozone/zdgeo/zderrs"
)

// Point is a fixed-point vertex coordinate pair.
type Point struct {
	LatFP int64
	LonFP int64
}

// EncodePolygon writes an already-reduced vertex list (the builder has
// already coalesced runs of equal consecutive deltas into single points)
// as varint(numVertices) followed by the first vertex in absolute form and
// every later vertex as a signed delta from its predecessor.
//
// It does not perform coalescing itself; that trajectory reduction is the
// builder's job, since format only owns the wire encoding of a finished
// point list.
func EncodePolygon(dst []byte, points []Point) ([]byte, error) {
	if len(points) > zderrs.MaxPolygonVertices {
		return nil, zderrs.ErrTooManyVertices
	}

	dst = varint.PutRaw(dst, uint64(len(points)))
	if len(points) == 0 {
		return dst, nil
	}

	dst = varint.PutSigned(dst, points[0].LatFP)
	dst = varint.PutSigned(dst, points[0].LonFP)

	prevLat, prevLon := points[0].LatFP, points[0].LonFP
	for _, p := range points[1:] {
		dst = varint.PutSigned(dst, p.LatFP-prevLat)
		dst = varint.PutSigned(dst, p.LonFP-prevLon)
		prevLat, prevLon = p.LatFP, p.LonFP
	}

	return dst, nil
}

// PolygonReader streams a single polygon's vertices out of the data
// section without materializing the whole point list, resolving each
// point's running delta accumulator as it goes. The winding-number test
// and the safezone scan both consume a polygon through this iterator
// rather than through a decoded slice.
type PolygonReader struct {
	data   []byte
	offset int

	total     int
	remaining int
	started   bool

	prevLat int64
	prevLon int64
}

// NewPolygonReader starts reading the polygon whose encoding begins at
// data[start:]. Once the reader has drained, Offset reports the absolute
// offset immediately past this polygon (start of the next polygon, if
// any).
func NewPolygonReader(data []byte, start int) (*PolygonReader, error) {
	offset := start
	n, err := varint.DecodeUnsigned(data, &offset)
	if err != nil {
		return nil, err
	}
	if n > zderrs.MaxPolygonVertices {
		return nil, zderrs.ErrTooManyVertices
	}

	return &PolygonReader{data: data, offset: offset, total: int(n), remaining: int(n)}, nil
}

// NumVertices reports the polygon's total vertex count.
func (r *PolygonReader) NumVertices() int { return r.total }

// Next decodes the next vertex, reporting false once the polygon is
// exhausted.
func (r *PolygonReader) Next() (Point, bool, error) {
	if r.remaining == 0 {
		return Point{}, false, nil
	}

	if !r.started {
		lat, err := varint.DecodeSigned(r.data, &r.offset)
		if err != nil {
			return Point{}, false, err
		}
		lon, err := varint.DecodeSigned(r.data, &r.offset)
		if err != nil {
			return Point{}, false, err
		}
		r.prevLat, r.prevLon = lat, lon
		r.started = true
	} else {
		dLat, err := varint.DecodeSigned(r.data, &r.offset)
		if err != nil {
			return Point{}, false, err
		}
		dLon, err := varint.DecodeSigned(r.data, &r.offset)
		if err != nil {
			return Point{}, false, err
		}
		r.prevLat += dLat
		r.prevLon += dLon
	}

	r.remaining--

	return Point{LatFP: r.prevLat, LonFP: r.prevLon}, true, nil
}

// Offset reports the absolute byte position immediately past this
// polygon's encoding, valid once the reader has fully drained (or before
// any Next call, in which case it returns the position just past the
// numVertices varint).
func (r *PolygonReader) Offset() int { return r.offset }
