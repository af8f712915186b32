package lookup_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geozone/zdgeo/builder"
	"github.com/geozone/zdgeo/fixedpoint"
	"github.com/geozone/zdgeo/format"
	"github.com/geozone/zdgeo/lookup"
)

const testPrecision = fixedpoint.Precision(21)

// clockwiseSquare returns a rectangle ring wound clockwise in standard
// map orientation (lon increasing east, lat increasing north) — the
// winding-number test classifies clockwise rings as IN_ZONE, matching the
// source dataset's convention.
func clockwiseSquare(minLat, minLon, maxLat, maxLon float64, metaIndex int) builder.Polygon {
	corner := func(lat, lon float64) format.Point {
		return format.Point{LatFP: fixedpoint.EncodeLat(lat, testPrecision), LonFP: fixedpoint.EncodeLon(lon, testPrecision)}
	}

	return builder.Polygon{
		MetaIndex: metaIndex,
		Points: []format.Point{
			corner(maxLat, minLon), // NW
			corner(maxLat, maxLon), // NE
			corner(minLat, maxLon), // SE
			corner(minLat, minLon), // SW
		},
	}
}

func buildTestDatabase(t *testing.T) string {
	t.Helper()

	opts := builder.Options{TableType: format.TableTypeTimezone, Precision: testPrecision, Notice: "test fixture"}
	records := [][]string{
		{"Europe/", "Brussels", "BE", "Belgium"},
		{"America/", "New_York", "US", "United States"},
	}
	polygons := []builder.Polygon{
		clockwiseSquare(49.5, 2.5, 51.5, 6.5, 0),
		clockwiseSquare(40.0, -75.0, 41.5, -73.0, 1),
	}

	data, err := builder.Build(opts, records, polygons)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "test.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

func TestLookupBrussels(t *testing.T) {
	db, err := lookup.Open(buildTestDatabase(t))
	require.NoError(t, err)
	defer db.Close()

	results, safezone := db.Lookup(50.8503, 4.3517, true)
	require.Len(t, results, 2)
	assert.Equal(t, lookup.ResultInZone, results[0].Result)
	assert.Equal(t, []string{"Europe/", "Brussels", "BE", "Belgium"}, results[0].Fields)
	assert.Equal(t, lookup.ResultEnd, results[1].Result)
	assert.Greater(t, safezone, 0.0)
}

func TestLookupOpenOceanIsEmpty(t *testing.T) {
	db, err := lookup.Open(buildTestDatabase(t))
	require.NoError(t, err)
	defer db.Close()

	results, _ := db.Lookup(0.0, 0.0, false)
	require.Len(t, results, 1)
	assert.Equal(t, lookup.ResultEnd, results[0].Result)
}

func TestLookupNewYork(t *testing.T) {
	db, err := lookup.Open(buildTestDatabase(t))
	require.NoError(t, err)
	defer db.Close()

	results, _ := db.Lookup(40.7128, -74.0060, false)
	require.Len(t, results, 2)
	assert.Equal(t, lookup.ResultInZone, results[0].Result)
	assert.Equal(t, []string{"America/", "New_York", "US", "United States"}, results[0].Fields)
}

func TestLookupNorthPoleDoesNotCrash(t *testing.T) {
	db, err := lookup.Open(buildTestDatabase(t))
	require.NoError(t, err)
	defer db.Close()

	results, _ := db.Lookup(90.0, 0.0, false)
	require.NotEmpty(t, results)
	assert.Equal(t, lookup.ResultEnd, results[len(results)-1].Result)
	for _, r := range results {
		assert.NotEqual(t, lookup.ResultParseError, r.Result)
	}
}

func TestLookupNaNYieldsEmptyResult(t *testing.T) {
	db, err := lookup.Open(buildTestDatabase(t))
	require.NoError(t, err)
	defer db.Close()

	results, safezone := db.Lookup(math.NaN(), 4.35, true)
	require.Len(t, results, 1)
	assert.Equal(t, lookup.ResultEnd, results[0].Result)
	assert.Equal(t, 0.0, safezone)
}

func TestOpenTruncatedFileFails(t *testing.T) {
	data, err := builder.Build(
		builder.Options{TableType: format.TableTypeCountry, Precision: testPrecision, Notice: "n"},
		[][]string{{"BE", "BEL", "Belgium"}},
		[]builder.Polygon{clockwiseSquare(0, 0, 10, 10, 0)},
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "truncated.bin")
	require.NoError(t, os.WriteFile(path, data[:len(data)-5], 0o644))

	_, err = lookup.Open(path)
	require.Error(t, err)
}

func TestOpenMissingFileFails(t *testing.T) {
	_, err := lookup.Open(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	require.Error(t, err)
}

func TestLookupResultToString(t *testing.T) {
	assert.Equal(t, "IN_ZONE", lookup.LookupResultToString(lookup.ResultInZone))
	assert.Equal(t, "END", lookup.LookupResultToString(lookup.ResultEnd))
}

func TestDatabaseNoticeAndTableType(t *testing.T) {
	db, err := lookup.Open(buildTestDatabase(t))
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, "test fixture", db.Notice())
	assert.Equal(t, format.TableTypeTimezone, db.TableType())
}
