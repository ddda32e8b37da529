package source

import "os"

// fileSource reads directly from an *os.File via pread-style ReadAt calls,
// with no buffering beyond what the OS page cache provides.
type fileSource struct {
	f    *os.File
	size int64
}

var _ Source = (*fileSource)(nil)

// OpenFile opens path for reading and wraps it as a Source.
func OpenFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	return &fileSource{f: f, size: info.Size()}, nil
}

func (fs *fileSource) ReadAt(p []byte, off int64) (int, error) {
	return fs.f.ReadAt(p, off)
}

func (fs *fileSource) Len() int64 {
	return fs.size
}

func (fs *fileSource) Close() error {
	return fs.f.Close()
}
