package intern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupMiss(t *testing.T) {
	tr := New()
	_, ok := tr.Lookup("Europe/Brussels")
	assert.False(t, ok)
}

func TestRecordThenLookup(t *testing.T) {
	tr := New()
	tr.Record("Europe/Brussels", 42)

	offset, ok := tr.Lookup("Europe/Brussels")
	assert.True(t, ok)
	assert.Equal(t, 42, offset)
}

func TestDistinctStringsDoNotCollide(t *testing.T) {
	tr := New()
	tr.Record("BE", 10)
	tr.Record("US", 20)

	offset, ok := tr.Lookup("BE")
	assert.True(t, ok)
	assert.Equal(t, 10, offset)

	offset, ok = tr.Lookup("US")
	assert.True(t, ok)
	assert.Equal(t, 20, offset)
}

func TestReset(t *testing.T) {
	tr := New()
	tr.Record("Europe/Brussels", 42)
	tr.Reset()

	_, ok := tr.Lookup("Europe/Brussels")
	assert.False(t, ok)
}
