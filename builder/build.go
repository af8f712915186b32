package builder

import (
	"sort"

	"github.com/geozone/zdgeo/fixedpoint"
	"github.com/geozone/zdgeo/format"
	"github.com/geozone/zdgeo/internal/pool"
	"github.com/geozone/zdgeo/strtab"
)

// Polygon is one ring ready for emission: already fixed-point quantized,
// in original vertex order, referencing its owning metadata record by
// index into the Records slice passed to Build. A multi-part shape
// contributes one Polygon per ring, all sharing the same MetaIndex.
type Polygon struct {
	Points    []format.Point
	MetaIndex int
}

// Options configures one Build call.
type Options struct {
	TableType format.TableType
	Precision fixedpoint.Precision
	Notice    string
}

// Build assembles a complete PLB file. Polygons are sorted by ascending
// minimum latitude before emission — the lookup engine's coarse scan
// depends on that order for its early-termination invariant. Given the
// same records, polygons, and options, Build produces byte-identical
// output every time: record and polygon iteration order is preserved
// from the input slices, and the only sort is a stable one on a
// deterministic key.
func Build(opts Options, records [][]string, polygons []Polygon) ([]byte, error) {
	fieldNames := FieldNames(opts.TableType)

	type boxedPolygon struct {
		polygon                        Polygon
		minLat, minLon, maxLat, maxLon int64
	}

	boxed := make([]boxedPolygon, len(polygons))
	for i, p := range polygons {
		minLat, minLon, maxLat, maxLon := boundingBox(p.Points)
		boxed[i] = boxedPolygon{polygon: p, minLat: minLat, minLon: minLon, maxLat: maxLat, maxLon: maxLon}
	}

	sort.SliceStable(boxed, func(i, j int) bool { return boxed[i].minLat < boxed[j].minLat })

	metaBuf := pool.Get()
	defer pool.Put(metaBuf)
	dataBuf := pool.Get()
	defer pool.Put(dataBuf)
	bboxBuf := pool.Get()
	defer pool.Put(bboxBuf)

	metaOffsets := make([]int, len(records))
	writer := strtab.NewWriter()
	for i, fields := range records {
		metaOffsets[i] = metaBuf.Len()
		for _, f := range fields {
			var err error
			metaBuf.B, err = writer.WriteString(metaBuf.B, f)
			if err != nil {
				return nil, err
			}
		}
	}

	bboxWriter := format.NewBBoxWriter()
	for _, b := range boxed {
		polyOffset := dataBuf.Len()

		reduced := coalesce(b.polygon.Points)
		var err error
		dataBuf.B, err = format.EncodePolygon(dataBuf.B, reduced)
		if err != nil {
			return nil, err
		}

		bboxBuf.B = bboxWriter.WriteRecord(bboxBuf.B, format.BBoxRecord{
			MinLatFP:       b.minLat,
			MinLonFP:       b.minLon,
			MaxLatFP:       b.maxLat,
			MaxLonFP:       b.maxLon,
			MetadataOffset: metaOffsets[b.polygon.MetaIndex],
			PolygonOffset:  polyOffset,
		})
	}

	header, err := format.EncodeHeader(opts.TableType, opts.Precision, fieldNames, opts.Notice, bboxBuf.Len(), metaBuf.Len(), dataBuf.Len())
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(header)+bboxBuf.Len()+metaBuf.Len()+dataBuf.Len())
	out = append(out, header...)
	out = append(out, bboxBuf.Bytes()...)
	out = append(out, metaBuf.Bytes()...)
	out = append(out, dataBuf.Bytes()...)

	return out, nil
}

func boundingBox(points []format.Point) (minLat, minLon, maxLat, maxLon int64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}

	minLat, minLon = points[0].LatFP, points[0].LonFP
	maxLat, maxLon = points[0].LatFP, points[0].LonFP

	for _, p := range points[1:] {
		if p.LatFP < minLat {
			minLat = p.LatFP
		}
		if p.LatFP > maxLat {
			maxLat = p.LatFP
		}
		if p.LonFP < minLon {
			minLon = p.LonFP
		}
		if p.LonFP > maxLon {
			maxLon = p.LonFP
		}
	}

	return minLat, minLon, maxLat, maxLon
}
