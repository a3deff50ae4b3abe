// Package mapfile exposes a file's contents as a read-only byte slice,
// memory mapped where the platform allows it.
package mapfile

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotRegular is returned for directories and other non-regular files.
var ErrNotRegular = errors.New("mapfile: not a regular file")

// File is a read-only view of a file's bytes.
type File struct {
	data   []byte
	f      *os.File
	unmap  func([]byte) error
	mapped bool
}

// Open maps the file at path. Empty files yield an empty view.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}

	size := fi.Size()
	if size == 0 {
		return &File{f: f}, nil
	}
	if int64(int(size)) != size {
		f.Close()
		return nil, fmt.Errorf("mapfile: %s is too large to map (%d bytes)", path, size)
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to map %s: %w", path, err)
	}
	return &File{data: data, f: f, unmap: unmap, mapped: unmap != nil}, nil
}

// Bytes returns the file contents. The slice is invalid after Close.
func (m *File) Bytes() []byte {
	return m.data
}

// Len returns the file size.
func (m *File) Len() int {
	return len(m.data)
}

// Mapped reports whether the view is backed by a memory mapping.
func (m *File) Mapped() bool {
	return m.mapped
}

// Close releases the mapping and the file.
func (m *File) Close() error {
	if m == nil {
		return nil
	}
	var err error
	if m.data != nil && m.unmap != nil {
		err = m.unmap(m.data)
	}
	m.data = nil
	m.unmap = nil
	if m.f != nil {
		if closeErr := m.f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		m.f = nil
	}
	return err
}
