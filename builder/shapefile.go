package builder

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-shapefile"

	"github.com/geozone/zdgeo/fixedpoint"
	"github.com/geozone/zdgeo/format"
	"github.com/geozone/zdgeo/zderrs"
)

// ringPoint is a ring vertex in plain degree space, before quantization.
type ringPoint struct {
	Lat, Lon float64
}

// Ingest walks every record in sf, producing one metadata record per DBF
// row (schema depends on opts.TableType) and one Polygon per ring,
// splitting multi-part geometries into independent rings that all share
// the same metadata index — aggregation at lookup time is what re-merges
// them into one zone result.
//
// Shapes outside the 2D/3D polygon and polyline family are skipped with a
// warning rather than aborting the whole ingest; an attribute record this
// package can't map to the declared schema (no string tzid for a timezone
// table, no string ISO_A2 for a country table) aborts the run, since that
// reflects a genuinely malformed input rather than an expected gap.
func Ingest(sf *shapefile.Shapefile, opts Options, countries map[string]CountryInfo) ([][]string, []Polygon, error) {
	if len(sf.SHP.Records) == 0 {
		return nil, nil, zderrs.ErrNoShapefileRecords
	}

	var records [][]string
	var polygons []Polygon

	for i, shpRecord := range sf.SHP.Records {
		if !supportedShapeType(shpRecord.ShapeType) {
			logrus.WithFields(logrus.Fields{
				"record":    i,
				"shapeType": shpRecord.ShapeType,
			}).Warn("skipping unsupported shape type")

			continue
		}

		attrs, g := sf.Record(i)

		fields, err := buildFields(opts.TableType, attrs, countries)
		if err != nil {
			return nil, nil, err
		}

		metaIndex := len(records)
		records = append(records, fields)

		for _, ring := range splitRings(g) {
			points := make([]format.Point, len(ring))
			for j, c := range ring {
				points[j] = format.Point{
					LatFP: fixedpoint.EncodeLat(c.Lat, opts.Precision),
					LonFP: fixedpoint.EncodeLon(c.Lon, opts.Precision),
				}
			}
			polygons = append(polygons, Polygon{Points: points, MetaIndex: metaIndex})
		}
	}

	return records, polygons, nil
}

func supportedShapeType(t shapefile.ShapeType) bool {
	switch t {
	case shapefile.ShapeTypePolygon, shapefile.ShapeTypePolygonZ,
		shapefile.ShapeTypePolyLine, shapefile.ShapeTypePolyLineZ:
		return true
	default:
		return false
	}
}

// buildFields maps one DBF attribute row to the declared metadata schema.
// Field names follow the conventions of the public datasets this builder
// targets: Natural Earth-style ISO_A2/ISO_A3/NAME for country tables, and
// a tzid + cc (ISO alpha-2) pair for timezone tables — the country-code
// cross-reference itself is out of scope per the format spec and is
// supplied by the caller as countries.
func buildFields(tableType format.TableType, attrs map[string]any, countries map[string]CountryInfo) ([]string, error) {
	switch tableType {
	case format.TableTypeTimezone:
		tzid, ok := attrs["tzid"].(string)
		if !ok {
			return nil, fmt.Errorf("attribute record has no string %q field", "tzid")
		}
		prefix, id := SplitTimezoneID(tzid)

		alpha2, _ := attrs["cc"].(string)
		name := CountryName(alpha2, countries)

		return []string{prefix, id, alpha2, name}, nil

	case format.TableTypeCountry:
		alpha2, ok := attrs["ISO_A2"].(string)
		if !ok {
			return nil, fmt.Errorf("attribute record has no string %q field", "ISO_A2")
		}
		alpha3, _ := attrs["ISO_A3"].(string)
		name, _ := attrs["NAME"].(string)

		if info, ok := countries[alpha2]; ok {
			if alpha3 == "" {
				alpha3 = info.Alpha3
			}
			if name == "" {
				name = info.Name
			}
		}
		if name == "" {
			name = countryNameOverrides[alpha2]
		}

		return []string{alpha2, alpha3, name}, nil

	default:
		return nil, zderrs.ErrUnknownTableType
	}
}

// splitRings flattens any of the shapefile geometry kinds this builder
// accepts into independent coordinate rings, ignoring the exterior/hole
// distinction: the winding-number test and its aggregation already
// recover that distinction from each ring's own winding direction, so a
// hole needs no special marking here.
func splitRings(g geom.T) [][]ringPoint {
	switch t := g.(type) {
	case *geom.Polygon:
		return ringsFromEnds(t.FlatCoords(), t.Stride(), t.Ends())
	case *geom.MultiPolygon:
		var out [][]ringPoint
		flat := t.FlatCoords()
		stride := t.Stride()
		start := 0
		for _, ringEnds := range t.Endss() {
			for _, end := range ringEnds {
				out = append(out, coordsFromFlat(flat, stride, start, end))
				start = end
			}
		}
		return out
	case *geom.LineString:
		flat := t.FlatCoords()
		return [][]ringPoint{coordsFromFlat(flat, t.Stride(), 0, len(flat))}
	case *geom.MultiLineString:
		var out [][]ringPoint
		flat := t.FlatCoords()
		stride := t.Stride()
		start := 0
		for _, end := range t.Ends() {
			out = append(out, coordsFromFlat(flat, stride, start, end))
			start = end
		}
		return out
	default:
		return nil
	}
}

func ringsFromEnds(flat []float64, stride int, ends []int) [][]ringPoint {
	out := make([][]ringPoint, 0, len(ends))
	start := 0
	for _, end := range ends {
		out = append(out, coordsFromFlat(flat, stride, start, end))
		start = end
	}
	return out
}

func coordsFromFlat(flat []float64, stride, start, end int) []ringPoint {
	n := (end - start) / stride
	pts := make([]ringPoint, n)
	for i := 0; i < n; i++ {
		off := start + i*stride
		pts[i] = ringPoint{Lon: flat[off], Lat: flat[off+1]}
	}
	return pts
}
