package pool

import (
	"strings"
	"sync"
)

// MaxPooledBytes caps the size of buffers returned to a pool. Larger buffers
// are dropped so one huge alignment does not pin its matrix in memory.
const MaxPooledBytes = 16 * 1024 * 1024

// BufferPool implements a pool of byte slices for efficient memory reuse
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with buffers of the specified size
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get returns a buffer of length n. Contents are not zeroed.
func (bp *BufferPool) Get(n int) *[]byte {
	buffer := bp.pool.Get().(*[]byte)
	if cap(*buffer) < n {
		*buffer = make([]byte, n)
	}
	*buffer = (*buffer)[:n]
	return buffer
}

// Put returns a buffer to the pool for reuse
func (bp *BufferPool) Put(buffer *[]byte) {
	if cap(*buffer) > MaxPooledBytes {
		return
	}
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}

// IntBufferPool pools int slices used as dynamic-programming rows.
type IntBufferPool struct {
	pool sync.Pool
}

// NewIntBufferPool creates a pool whose fresh slices have the given capacity.
func NewIntBufferPool(size int) *IntBufferPool {
	return &IntBufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]int, 0, size)
				return &buffer
			},
		},
	}
}

// Get returns a slice of length n. Contents are not zeroed.
func (ip *IntBufferPool) Get(n int) *[]int {
	buffer := ip.pool.Get().(*[]int)
	if cap(*buffer) < n {
		*buffer = make([]int, n)
	}
	*buffer = (*buffer)[:n]
	return buffer
}

// Put returns a slice to the pool.
func (ip *IntBufferPool) Put(buffer *[]int) {
	if cap(*buffer)*8 > MaxPooledBytes {
		return
	}
	*buffer = (*buffer)[:0]
	ip.pool.Put(buffer)
}

// StringBuilderPool implements a pool of strings.Builder for efficient string building
type StringBuilderPool struct {
	pool sync.Pool
}

// NewStringBuilderPool creates a new strings.Builder pool
func NewStringBuilderPool() *StringBuilderPool {
	return &StringBuilderPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new(strings.Builder)
			},
		},
	}
}

// Get retrieves a builder from the pool.
func (sbp *StringBuilderPool) Get() *strings.Builder {
	return sbp.pool.Get().(*strings.Builder)
}

// Put resets the builder and returns it to the pool.
func (sbp *StringBuilderPool) Put(sb *strings.Builder) {
	sb.Reset()
	sbp.pool.Put(sb)
}
