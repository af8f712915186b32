package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBBoxWriterReaderRoundTrip(t *testing.T) {
	records := []BBoxRecord{
		{MinLatFP: 100, MinLonFP: 200, MaxLatFP: 300, MaxLonFP: 400, MetadataOffset: 0, PolygonOffset: 0},
		{MinLatFP: -50, MinLonFP: -60, MaxLatFP: 70, MaxLonFP: 80, MetadataOffset: 12, PolygonOffset: 35},
		{MinLatFP: -50, MinLonFP: -60, MaxLatFP: 70, MaxLonFP: 80, MetadataOffset: 3, PolygonOffset: 99},
	}

	w := NewBBoxWriter()
	var buf []byte
	for _, rec := range records {
		buf = w.WriteRecord(buf, rec)
	}

	r := NewBBoxReader(buf, len(buf))
	for _, want := range records {
		got, ok, err := r.Next()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok, err := r.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBBoxReaderEmptySection(t *testing.T) {
	r := NewBBoxReader(nil, 0)
	_, ok, err := r.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBBoxReaderStopsAtDeclaredSize(t *testing.T) {
	w := NewBBoxWriter()
	var buf []byte
	buf = w.WriteRecord(buf, BBoxRecord{MinLatFP: 1, MinLonFP: 2, MaxLatFP: 3, MaxLonFP: 4})
	firstRecordLen := len(buf)
	buf = w.WriteRecord(buf, BBoxRecord{MinLatFP: 5, MinLonFP: 6, MaxLatFP: 7, MaxLonFP: 8})

	r := NewBBoxReader(buf, firstRecordLen)
	_, ok, err := r.Next()
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = r.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}
