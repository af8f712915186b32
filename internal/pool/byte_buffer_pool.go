// Package pool provides a pooled byte buffer for the builder's section
// assembly: each PLB section (bbox index, metadata, polygon data) is
// built up by repeated appends before being written to disk, and a
// process that builds many databases back to back (a test suite, for
// instance) benefits from reusing that scratch memory across builds
// instead of letting the garbage collector churn through it.
package pool

import "sync"

const (
	defaultBufferSize = 1024 * 16  // 16KiB
	maxPooledSize     = 1024 * 128 // 128KiB
)

// ByteBuffer is a growable byte slice wrapper, reset and returned to a
// pool rather than reallocated.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given starting capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Reset empties the buffer while retaining its allocated memory.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Write appends data to the buffer, growing it as needed, satisfying
// io.Writer so section encoders can write directly into a pooled buffer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ByteBufferPool is a sync.Pool-backed source of ByteBuffers with an
// upper size threshold past which a buffer is discarded instead of
// retained, so one unusually large database build doesn't permanently
// inflate the pool's steady-state memory.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers starting at defaultSize,
// discarding any buffer whose capacity exceeds maxThreshold on Put.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a reset ByteBuffer from the pool.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool for reuse, discarding it if it grew past the
// pool's size threshold.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}
	bb.Reset()
	p.pool.Put(bb)
}

var defaultPool = NewByteBufferPool(defaultBufferSize, maxPooledSize)

// Get retrieves a ByteBuffer from the package-level default pool.
func Get() *ByteBuffer { return defaultPool.Get() }

// Put returns bb to the package-level default pool.
func Put(bb *ByteBuffer) { defaultPool.Put(bb) }
