package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geozone/zdgeo/fixedpoint"
	"github.com/geozone/zdgeo/format"
)

func square(minLat, minLon, maxLat, maxLon int64, metaIndex int) Polygon {
	return Polygon{
		MetaIndex: metaIndex,
		Points: []format.Point{
			{LatFP: minLat, LonFP: minLon},
			{LatFP: minLat, LonFP: maxLon},
			{LatFP: maxLat, LonFP: maxLon},
			{LatFP: maxLat, LonFP: minLon},
		},
	}
}

func TestBuildProducesParsableHeaderAndOrdering(t *testing.T) {
	opts := Options{TableType: format.TableTypeTimezone, Precision: fixedpoint.Precision(21), Notice: "test build"}
	records := [][]string{
		{"Europe/", "Brussels", "BE", "Belgium"},
		{"America/", "New_York", "US", "United States"},
	}
	polygons := []Polygon{
		square(100, 100, 200, 200, 0),
		square(-50, -50, 50, 50, 1),
	}

	out, err := Build(opts, records, polygons)
	require.NoError(t, err)

	hdr, err := format.ParseHeader(out)
	require.NoError(t, err)
	assert.Equal(t, format.TableTypeTimezone, hdr.TableType)
	assert.Equal(t, "test build", hdr.Notice)
	assert.Equal(t, FieldNames(format.TableTypeTimezone), hdr.FieldNames)

	bboxSection := out[hdr.BBoxOffset:hdr.MetadataOffset]
	reader := format.NewBBoxReader(bboxSection, len(bboxSection))

	first, ok, err := reader.Next()
	require.NoError(t, err)
	require.True(t, ok)
	// The -50..50 square sorts before the 100..200 one by minLat.
	assert.Equal(t, int64(-50), first.MinLatFP)

	second, ok, err := reader.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(100), second.MinLatFP)

	_, ok, err = reader.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuildIsDeterministic(t *testing.T) {
	opts := Options{TableType: format.TableTypeCountry, Precision: fixedpoint.Precision(20), Notice: "n"}
	records := [][]string{{"BE", "BEL", "Belgium"}, {"US", "USA", "United States"}}
	polygons := []Polygon{square(0, 0, 10, 10, 0), square(20, 20, 30, 30, 1)}

	first, err := Build(opts, records, polygons)
	require.NoError(t, err)
	second, err := Build(opts, records, polygons)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildDedupesRepeatedMetadataStrings(t *testing.T) {
	opts := Options{TableType: format.TableTypeCountry, Precision: fixedpoint.Precision(20), Notice: ""}
	records := [][]string{{"BE", "BEL", "Belgium"}, {"BE", "BEL", "Belgium"}}
	polygons := []Polygon{square(0, 0, 10, 10, 0), square(0, 0, 10, 10, 1)}

	out, err := Build(opts, records, polygons)
	require.NoError(t, err)

	hdr, err := format.ParseHeader(out)
	require.NoError(t, err)
	// Two identical 3-field records: the second's metadata should be far
	// smaller than the first since every field is a back-reference.
	assert.Less(t, hdr.MetaSize, len("BE")+len("BEL")+len("Belgium")+6+6)
}
