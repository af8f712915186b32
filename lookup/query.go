package lookup

import (
	"math"

	"github.com/geozone/zdgeo/fixedpoint"
	"github.com/geozone/zdgeo/format"
	"github.com/geozone/zdgeo/strtab"
)

type rawHit struct {
	metaID int
	result Result
}

// Lookup answers a point-in-polygon query against db. When wantSafezone is
// true, safezoneDegrees reports the planar distance in degrees from
// (lat,lon) to the nearest scanned zone boundary; otherwise it is 0.
//
// A non-finite or out-of-range coordinate, or a Database that has been
// closed, yields an empty result immediately, with no mapped-memory reads
// at all. A corrupt bbox or
// polygon stream aborts the scan and discards whatever was collected so
// far, returning an empty result rather than a partial one — the library
// never returns a half-built answer.
//
// The returned slice always ends with a ResultEnd sentinel entry, mirroring
// the array-with-terminator contract of the library this was ported from.
func (db *Database) Lookup(lat, lon float64, wantSafezone bool) (results []ZoneResult, safezoneDegrees float64) {
	if db.closed || !fixedpoint.InRange(lat, lon) {
		return []ZoneResult{{Result: ResultEnd}}, 0
	}

	precision := db.header.Precision
	queryLatFP := fixedpoint.EncodeLat(lat, precision)
	queryLonFP := fixedpoint.EncodeLon(lon, precision)
	nudgedLonFP := queryLonFP - borderNudge

	bboxSection := db.data[db.header.BBoxOffset:db.header.MetadataOffset]
	metaSection := db.data[db.header.MetadataOffset:db.header.DataOffset]
	dataSection := db.data[db.header.DataOffset : db.header.DataOffset+db.header.DataSize]

	safezoneSqrMin := uint64(math.MaxUint64)

	var hits []rawHit

	reader := format.NewBBoxReader(bboxSection, len(bboxSection))
	for {
		rec, ok, err := reader.Next()
		if err != nil {
			return []ZoneResult{{Result: ResultEnd}}, 0
		}
		if !ok {
			break
		}

		if queryLatFP < rec.MinLatFP {
			break
		}
		if queryLatFP > rec.MaxLatFP || queryLonFP < rec.MinLonFP || queryLonFP > rec.MaxLonFP {
			continue
		}
		if rec.MetadataOffset < 0 || rec.MetadataOffset >= len(metaSection) {
			continue
		}
		if rec.PolygonOffset < 0 || rec.PolygonOffset >= len(dataSection) {
			continue
		}

		pr, err := format.NewPolygonReader(dataSection, rec.PolygonOffset)
		if err != nil {
			return []ZoneResult{{Result: ResultEnd}}, 0
		}

		result, err := evaluatePolygon(pr, queryLatFP, nudgedLonFP, wantSafezone, &safezoneSqrMin)
		if err != nil || result == ResultParseError {
			return []ZoneResult{{Result: ResultEnd}}, 0
		}
		if result == ResultNotInZone {
			continue
		}

		hits = append(hits, rawHit{metaID: rec.MetadataOffset, result: result})
	}

	grouped := aggregate(hits)
	results = make([]ZoneResult, 0, len(grouped)+1)
	for _, g := range grouped {
		fields, err := readFields(metaSection, g.MetaID, db.header.FieldNames)
		if err != nil {
			return []ZoneResult{{Result: ResultEnd}}, 0
		}
		g.Fields = fields
		results = append(results, g)
	}
	results = append(results, ZoneResult{Result: ResultEnd})

	if wantSafezone {
		safezoneDegrees = fixedpoint.DistanceDegrees(safezoneSqrMin, precision)
	}

	return results, safezoneDegrees
}

// aggregate folds raw per-polygon hits into one result per distinct
// metadata offset: IN_ZONE/IN_EXCLUDED_ZONE members sum ±1 and survive
// only on a non-zero sum, while any border classification among a group's
// members overrides the whole group.
func aggregate(hits []rawHit) []ZoneResult {
	order := make([]int, 0, len(hits))
	seen := make(map[int]bool, len(hits))
	insideSum := make(map[int]int, len(hits))
	override := make(map[int]Result, len(hits))

	for _, h := range hits {
		if !seen[h.metaID] {
			seen[h.metaID] = true
			order = append(order, h.metaID)
		}

		switch h.result {
		case ResultInZone:
			insideSum[h.metaID]++
		case ResultInExcludedZone:
			insideSum[h.metaID]--
		default:
			override[h.metaID] = h.result
		}
	}

	results := make([]ZoneResult, 0, len(order))
	for _, metaID := range order {
		if r, ok := override[metaID]; ok {
			results = append(results, ZoneResult{Result: r, MetaID: metaID})
			continue
		}
		if insideSum[metaID] != 0 {
			results = append(results, ZoneResult{Result: ResultInZone, MetaID: metaID})
		}
	}

	return results
}

func readFields(metaSection []byte, metaID int, fieldNames []string) ([]string, error) {
	offset := metaID
	fields := make([]string, len(fieldNames))
	for i := range fieldNames {
		s, err := strtab.ReadString(metaSection, &offset, 0)
		if err != nil {
			return nil, err
		}
		fields[i] = s
	}

	return fields, nil
}
