package source

import (
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// mmapSource memory-maps an entire file read-only, avoiding a read() syscall
// per page during sequential decoding at the cost of holding the mapping
// open for the Source's lifetime.
type mmapSource struct {
	f   *os.File
	mm  mmap.MMap
}

var _ Source = (*mmapSource)(nil)

// OpenMmap memory-maps path read-only and wraps it as a Source.
func OpenMmap(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &mmapSource{f: f, mm: mm}, nil
}

func (m *mmapSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(m.mm)) {
		return 0, io.EOF
	}

	n := copy(p, m.mm[off:])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

func (m *mmapSource) Len() int64 {
	return int64(len(m.mm))
}

func (m *mmapSource) Close() error {
	if err := m.mm.Unmap(); err != nil {
		m.f.Close()
		return err
	}

	return m.f.Close()
}
