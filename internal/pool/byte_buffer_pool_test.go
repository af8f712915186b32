package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, cap(bb.B))
}

func TestByteBufferWriteAndReset(t *testing.T) {
	bb := NewByteBuffer(defaultBufferSize)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), bb.Bytes())

	originalCap := cap(bb.B)
	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, cap(bb.B))
}

func TestByteBufferPoolGetPut(t *testing.T) {
	p := NewByteBufferPool(defaultBufferSize, maxPooledSize)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.B = append(bb.B, []byte("scratch")...)
	p.Put(bb)

	reused := p.Get()
	require.NotNil(t, reused)
	assert.Equal(t, 0, reused.Len(), "buffer returned to the pool should be reset before reuse")
}

func TestByteBufferPoolDropsOversizedBuffers(t *testing.T) {
	p := NewByteBufferPool(16, 32)

	bb := p.Get()
	bb.B = append(bb.B, make([]byte, 64)...)
	p.Put(bb)

	reused := p.Get()
	assert.LessOrEqual(t, cap(reused.B), 32, "oversized buffer should have been discarded rather than pooled")
}

func TestPackageLevelPool(t *testing.T) {
	bb := Get()
	bb.B = append(bb.B, []byte("section data")...)
	Put(bb)
}
