package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemorySource(t *testing.T) {
	data := []byte("hello sas7bdat")
	s := NewMemory(data)
	defer s.Close()

	require.Equal(t, int64(len(data)), s.Len())

	buf := make([]byte, 5)
	n, err := s.ReadAt(buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "sas7b", string(buf))
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.bin")
	data := []byte("file backed source contents")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	s, err := OpenFile(path)
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, int64(len(data)), s.Len())

	buf := make([]byte, 4)
	n, err := s.ReadAt(buf, 0)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, "file", string(buf))
}

func TestMmapSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.bin")
	data := []byte("mmap backed source contents")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	s, err := OpenMmap(path)
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, int64(len(data)), s.Len())

	buf := make([]byte, 4)
	n, err := s.ReadAt(buf, 5)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, "back", string(buf))
}
