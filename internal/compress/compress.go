// Package compress wraps readers and writers in zstd or lz4 frames based on
// a file name's extension.
package compress

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Kind identifies a compression container.
type Kind uint8

const (
	None Kind = iota
	Zstd
	LZ4
)

func (k Kind) String() string {
	switch k {
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	}
	return "none"
}

// Ext returns the file extension used for k, including the dot.
func (k Kind) Ext() string {
	switch k {
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	}
	return ""
}

// KindOf picks the container from the file name's extension.
func KindOf(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	}
	return None
}

// TrimExt removes a compression extension from name, if any.
func TrimExt(name string) string {
	if KindOf(name) == None {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// NewReader returns a reader decompressing r according to k.
// Closing it does not close r.
func NewReader(r io.Reader, k Kind) (io.ReadCloser, error) {
	switch k {
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdReadCloser{dec}, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	}
	return io.NopCloser(r), nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewWriter returns a writer compressing into w according to k.
// Close flushes the frame but does not close w.
func NewWriter(w io.Writer, k Kind) (io.WriteCloser, error) {
	switch k {
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	case LZ4:
		zw := lz4.NewWriter(w)
		if err := zw.Apply(lz4.CompressionLevelOption(lz4.Level5)); err != nil {
			return nil, err
		}
		return zw, nil
	}
	return nopWriteCloser{w}, nil
}
