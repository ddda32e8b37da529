package pool

import (
	"io"
	"sync"
)

// Default buffer sizes for the two pools used while decoding a file:
// one page's worth of raw bytes, and one decompressed row's worth.
const (
	PageBufferDefaultSize  = 1024 * 64  // 64KiB, a generous default page_length.
	PageBufferMaxThreshold = 1024 * 512 // 512KiB
	RowBufferDefaultSize   = 1024 * 4   // 4KiB, comfortably larger than most row_length values.
	RowBufferMaxThreshold  = 1024 * 64  // 64KiB
)

// ByteBuffer is a growable byte buffer meant to be reused across page/row
// decodes via a ByteBufferPool instead of being garbage collected each time.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// SetLength sets the length of the buffer to n.
// Panics if n is negative or greater than the capacity.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating, growing geometrically if necessary.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := PageBufferDefaultSize
	if cap(bb.B) > 4*PageBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// MustWrite appends data to the buffer. It never returns an error; it exists
// as a convenience alongside Write for call sites that discard the error.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Slice returns the sub-slice [start:end) of the buffer's contents.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	return bb.B[start:end]
}

// Extend grows the buffer's length by n zero bytes if there is enough spare
// capacity, returning false (and leaving the buffer unchanged) otherwise.
func (bb *ByteBuffer) Extend(n int) bool {
	if cap(bb.B)-len(bb.B) < n {
		return false
	}

	bb.B = bb.B[:len(bb.B)+n]
	return true
}

// ExtendOrGrow extends the buffer by n zero bytes, reallocating if the
// current capacity is insufficient.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	if !bb.Extend(n) {
		bb.Grow(n)
		bb.B = bb.B[:len(bb.B)+n]
	}
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations during
// sequential page/row decoding.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
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
	pageDefaultPool = NewByteBufferPool(PageBufferDefaultSize, PageBufferMaxThreshold)
	rowDefaultPool  = NewByteBufferPool(RowBufferDefaultSize, RowBufferMaxThreshold)
)

// GetPageBuffer retrieves a ByteBuffer from the default page pool.
func GetPageBuffer() *ByteBuffer {
	return pageDefaultPool.Get()
}

// PutPageBuffer returns a ByteBuffer to the default page pool.
func PutPageBuffer(bb *ByteBuffer) {
	pageDefaultPool.Put(bb)
}

// GetRowBuffer retrieves a ByteBuffer from the default decompressed-row pool.
func GetRowBuffer() *ByteBuffer {
	return rowDefaultPool.Get()
}

// PutRowBuffer returns a ByteBuffer to the default decompressed-row pool.
func PutRowBuffer(bb *ByteBuffer) {
	rowDefaultPool.Put(bb)
}
