package modelfile

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/bastiangx/lstrings/internal/compress"
	"github.com/bastiangx/lstrings/pkg/bigram"
	"github.com/charmbracelet/log"
)

// FileFormat is the container a model file is stored in.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatRaw                // flat counters + magnitude
	FormatZstd               // raw blob inside a zstd frame
	FormatLZ4                // raw blob inside an lz4 frame
)

// ErrUnknownFormat is returned when a file's container cannot be determined.
var ErrUnknownFormat = errors.New("modelfile: unknown model file format")

// FormatInfo contains metadata about a model file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	Compression compress.Kind
	MinSize     int64 // smallest plausible file size in bytes
	MaxSize     int64 // 0 when not bounded
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatRaw: {
		Format:      FormatRaw,
		Description: "Raw Bigram Model",
		Extensions:  []string{".bin", ""},
		Compression: compress.None,
		MinSize:     bigram.EncodedSize,
		MaxSize:     bigram.EncodedSize,
	},
	FormatZstd: {
		Format:      FormatZstd,
		Description: "Zstd Compressed Bigram Model",
		Extensions:  []string{".zst", ".zstd"},
		Compression: compress.Zstd,
		MinSize:     4, // frame magic
	},
	FormatLZ4: {
		Format:      FormatLZ4,
		Description: "LZ4 Compressed Bigram Model",
		Extensions:  []string{".lz4"},
		Compression: compress.LZ4,
		MinSize:     4,
	},
}

// DetectFileFormat picks the format from the file name.
func DetectFileFormat(filename string) FileFormat {
	switch compress.KindOf(filename) {
	case compress.Zstd:
		return FormatZstd
	case compress.LZ4:
		return FormatLZ4
	}
	return FormatRaw
}

// ValidateFileFormat checks the file size against what the format allows.
// A raw model must be exactly bigram.EncodedSize bytes.
func ValidateFileFormat(filename string, format FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[format]
	if !exists {
		return fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}

	size := fileInfo.Size()
	if size < formatInfo.MinSize || (formatInfo.MaxSize > 0 && size > formatInfo.MaxSize) {
		if format == FormatRaw {
			return fmt.Errorf("%w: %s is %d bytes, want %d", bigram.ErrInvalidLength, filename, size, bigram.EncodedSize)
		}
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, size, formatInfo.Description, formatInfo.MinSize)
	}

	log.Debugf("Model file %s validated as %s (%d bytes)", filename, formatInfo.Description, size)
	return nil
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}

// ListSupportedFormats returns all supported formats, ordered by format id.
func ListSupportedFormats() []FormatInfo {
	formats := make([]FormatInfo, 0, len(supportedFormats))
	for _, info := range supportedFormats {
		formats = append(formats, info)
	}
	sort.Slice(formats, func(i, j int) bool {
		return formats[i].Format < formats[j].Format
	})
	return formats
}
