package builder

import "github.com/geozone/zdgeo/format"

// coalesce reduces a raw, already-quantized vertex ring into the point set
// format.EncodePolygon expects. It buffers a running (Δlat,Δlon)
// accumulator and flushes it as one point whenever the incoming raw
// per-vertex delta differs from the previous raw delta; a vertex with zero
// displacement from its predecessor is dropped entirely. The first point
// is always kept absolute.
//
// The decoder is agnostic to how many deltas got folded into each emitted
// point — it just sums whatever it streams — so this is the only place
// that needs to know about run-length coalescing.
func coalesce(points []format.Point) []format.Point {
	if len(points) == 0 {
		return nil
	}

	out := make([]format.Point, 0, len(points))
	out = append(out, points[0])
	lastEmitted := points[0]

	var haveRun bool
	var runDLat, runDLon int64
	var lastRawDLat, lastRawDLon int64
	rawPrev := points[0]

	flush := func() {
		if !haveRun {
			return
		}
		lastEmitted = format.Point{LatFP: lastEmitted.LatFP + runDLat, LonFP: lastEmitted.LonFP + runDLon}
		out = append(out, lastEmitted)
		haveRun = false
		runDLat, runDLon = 0, 0
	}

	for _, p := range points[1:] {
		dLat := p.LatFP - rawPrev.LatFP
		dLon := p.LonFP - rawPrev.LonFP
		rawPrev = p

		if dLat == 0 && dLon == 0 {
			continue
		}

		if haveRun && dLat == lastRawDLat && dLon == lastRawDLon {
			runDLat += dLat
			runDLon += dLon
			continue
		}

		flush()
		haveRun = true
		runDLat, runDLon = dLat, dLon
		lastRawDLat, lastRawDLon = dLat, dLon
	}
	flush()

	return out
}
