package lookup

import (
	"github.com/geozone/zdgeo/fixedpoint"
	"github.com/geozone/zdgeo/format"
	"github.com/geozone/zdgeo/zderrs"
)

// borderNudge is subtracted from the query longitude before every
// quadrant and border comparison. Undocumented in the source this was
// ported from; kept exactly since implementations must reproduce it for
// bit-identical classification.
const borderNudge = 3

// evaluatePolygon streams pr's vertices and runs the quadrant-walk winding
// test against (queryLatFP, queryLonFP), which must already have the
// border nudge applied. When trackSafezone is true, *safezoneSqrMin is
// lowered to the smallest squared distance seen to any edge of this
// polygon; the caller is responsible for seeding it (e.g. to the running
// minimum across all scanned polygons) before the call.
func evaluatePolygon(pr *format.PolygonReader, queryLatFP, queryLonFP int64, trackSafezone bool, safezoneSqrMin *uint64) (Result, error) {
	n := pr.NumVertices()

	var firstLat, firstLon int64
	var prevLat, prevLon int64
	var prevQuadrant int
	var winding int

	for i := 0; i <= n; i++ {
		var pointLat, pointLon int64

		if i < n {
			p, ok, err := pr.Next()
			if err != nil {
				return ResultParseError, err
			}
			if !ok {
				return ResultParseError, zderrs.ErrParse
			}
			pointLat, pointLon = p.LatFP, p.LonFP
			if i == 0 {
				firstLat, firstLon = pointLat, pointLon
			}
		} else {
			// Polygons are expected closed already; replay the first vertex
			// as the synthetic last one in case the source ring wasn't.
			pointLat, pointLon = firstLat, firstLon
		}

		if pointLat == queryLatFP && pointLon == queryLonFP {
			if trackSafezone {
				*safezoneSqrMin = 0
			}
			return ResultOnBorderVertex, nil
		}

		quadrant := quadrantOf(pointLat, pointLon, queryLatFP, queryLonFP)

		if i > 0 {
			needCompare := false
			straight := pointLon == prevLon || pointLat == prevLat

			switch {
			case quadrant == prevQuadrant:
			case quadrant == (prevQuadrant+1)%4:
				winding++
			case (quadrant+1)%4 == prevQuadrant:
				winding--
			default:
				needCompare = true
			}

			var a, b float64
			haveLine := !straight && (trackSafezone || needCompare)
			if haveLine {
				a = (float64(pointLat) - float64(prevLat)) / (float64(pointLon) - float64(prevLon))
				b = float64(pointLat) - a*float64(pointLon)
			}

			if needCompare {
				if straight {
					if trackSafezone {
						*safezoneSqrMin = 0
					}
					return ResultOnBorderSegment, nil
				}

				intersectLon := int64((float64(queryLatFP) - b) / a)
				if intersectLon == queryLonFP {
					if trackSafezone {
						*safezoneSqrMin = 0
					}
					return ResultOnBorderSegment, nil
				}

				sign := -2
				if intersectLon < queryLonFP {
					sign = 2
				}
				if quadrant == 2 || quadrant == 3 {
					winding += sign
				} else {
					winding -= sign
				}
			}

			if trackSafezone {
				trackEdgeDistance(safezoneSqrMin, pointLat, pointLon, prevLat, prevLon, queryLatFP, queryLonFP, haveLine, a, b)
			}
		}

		prevQuadrant = quadrant
		prevLat, prevLon = pointLat, pointLon
	}

	switch winding {
	case -4:
		return ResultInZone, nil
	case 4:
		return ResultInExcludedZone, nil
	case 0:
		return ResultNotInZone, nil
	default:
		return ResultOnBorderSegment, nil
	}
}

func quadrantOf(pointLat, pointLon, queryLat, queryLon int64) int {
	if pointLat >= queryLat {
		if pointLon >= queryLon {
			return 0
		}
		return 1
	}
	if pointLon >= queryLon {
		return 3
	}
	return 2
}

// trackEdgeDistance lowers *sqrMin to the squared distance from the query
// point to the edge (prevLat,prevLon)-(pointLat,pointLon), weighting the
// longitude term ×4 to correct the fixed-point scale asymmetry. When the
// edge isn't a straight (horizontal/vertical) degenerate case, the
// closest point is the foot of the perpendicular from the query point
// onto the line y=a·x+b (x=lon, y=lat) if that foot falls within the
// edge's bounding box, otherwise the edge's current endpoint
// (pointLat,pointLon); over a closed ring every vertex is some edge's
// current endpoint, so both endpoints of every edge get measured.
func trackEdgeDistance(sqrMin *uint64, pointLat, pointLon, prevLat, prevLon, queryLat, queryLon int64, haveLine bool, a, b float64) {
	var closestLat, closestLon float64

	if haveLine {
		closestLon = (float64(queryLon) + a*float64(queryLat) - a*b) / (a*a + 1)
		closestLat = (a*(float64(queryLon)+a*float64(queryLat)) + b) / (a*a + 1)
	} else if pointLon == prevLon {
		closestLon = float64(pointLon)
		closestLat = float64(queryLat)
	} else {
		closestLon = float64(queryLon)
		closestLat = float64(pointLat)
	}

	var diffLat, diffLon float64
	if pointInBox(pointLon, prevLon, closestLon, pointLat, prevLat, closestLat) {
		diffLat = closestLat - float64(queryLat)
		diffLon = closestLon - float64(queryLon)
	} else {
		diffLat = float64(pointLat) - float64(queryLat)
		diffLon = float64(pointLon) - float64(queryLon)
	}

	sqr := uint64(diffLat*diffLat + fixedpoint.WeightedLonDeltaSqr(diffLon))
	if sqr < *sqrMin {
		*sqrMin = sqr
	}
}

func pointInBox(xl, xr int64, x float64, yl, yr int64, y float64) bool {
	inX := (float64(xl) <= x && x <= float64(xr)) || (float64(xr) <= x && x <= float64(xl))
	inY := (float64(yl) <= y && y <= float64(yr)) || (float64(yr) <= y && y <= float64(yl))

	return inX && inY
}
