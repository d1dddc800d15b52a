package pool

import (
	"io"
	"sync"
)

// Default sizes of the pooled buffers.
//
// Code buffers hold a single encoded polyomino, which rarely exceeds a few hundred bytes.
// Set buffers hold a whole shape set container.
const (
	CodeBufferDefaultSize    = 256
	CodeBufferMaxThreshold   = 1024 * 64 // 64KiB
	SetBufferDefaultSize     = 1024 * 64 // 64KiB
	SetBufferMaxThreshold    = 1024 * 1024 * 8
	largeBufferGrowthDivisor = 4
)

// ByteBuffer is an append-only byte slice wrapper designed for pooling.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Reset empties the buffer and keeps its capacity.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int { return cap(bb.B) }

// MustWrite appends data to the buffer.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Write appends data to the buffer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// Slice returns bb.B[start:end]. Panics if the indices are outside the capacity.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > cap(bb.B) {
		panic("Slice: invalid indices")
	}

	return bb.B[start:end]
}

// ExtendOrGrow extends the length by n bytes, growing the capacity when needed.
// The new bytes are not zeroed.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Grow ensures that n more bytes fit without reallocating.
//
// Small buffers grow by their own default chunk, larger ones by a quarter of their capacity.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := max(cap(bb.B)/largeBufferGrowthDivisor, CodeBufferDefaultSize, n)
	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool is a sync.Pool of ByteBuffers.
//
// Buffers whose capacity grew beyond maxThreshold are dropped on Put instead of being
// retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool handing out buffers of defaultSize capacity.
// A maxThreshold of 0 disables the size check.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put resets bb and returns it to the pool.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	codeDefaultPool = NewByteBufferPool(CodeBufferDefaultSize, CodeBufferMaxThreshold)
	setDefaultPool  = NewByteBufferPool(SetBufferDefaultSize, SetBufferMaxThreshold)
)

// GetCodeBuffer retrieves a buffer sized for one encoded polyomino.
func GetCodeBuffer() *ByteBuffer { return codeDefaultPool.Get() }

// PutCodeBuffer returns a buffer obtained from GetCodeBuffer.
func PutCodeBuffer(bb *ByteBuffer) { codeDefaultPool.Put(bb) }

// GetSetBuffer retrieves a buffer sized for a shape set container.
func GetSetBuffer() *ByteBuffer { return setDefaultPool.Get() }

// PutSetBuffer returns a buffer obtained from GetSetBuffer.
func PutSetBuffer(bb *ByteBuffer) { setDefaultPool.Put(bb) }
