/*
Package modelfile reads and writes reference bigram models on disk.

A model file holds the flat encoding from the bigram package, either as is or
inside a zstd (.zst) or lz4 (.lz4) frame. The container is chosen by the file
extension:

	ref, err := modelfile.Load("english-bigram-map.bin.zst")
	err = modelfile.Save(model, "english-bigram-map.bin")

A model that fails to decode is an error, never an empty model.
*/
package modelfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/lstrings/internal/compress"
	"github.com/bastiangx/lstrings/pkg/bigram"
	"github.com/charmbracelet/log"
)

// DefaultName is the model file looked up when none is configured.
const DefaultName = "english-bigram-map.bin"

// Load reads the model stored at path.
func Load(path string) (*bigram.Model, error) {
	format := DetectFileFormat(path)
	if err := ValidateFileFormat(path, format); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file %s: %w", path, err)
	}
	defer file.Close()

	start := time.Now()
	info, _ := GetFormatInfo(format)
	m, err := Read(bufio.NewReader(file), info.Compression)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", path, err)
	}

	log.Debugf("Loaded model %s in %v (magnitude %.2f)", path, time.Since(start), m.Magnitude())
	return m, nil
}

// Read decodes one model from r, decompressing according to kind.
func Read(r io.Reader, kind compress.Kind) (*bigram.Model, error) {
	rc, err := compress.NewReader(r, kind)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return bigram.Decode(rc)
}

// Write encodes m into w, compressing according to kind.
func Write(w io.Writer, m *bigram.Model, kind compress.Kind) error {
	wc, err := compress.NewWriter(w, kind)
	if err != nil {
		return err
	}
	if _, err := m.WriteTo(wc); err != nil {
		wc.Close()
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return wc.Close()
}

// Save writes m to path, compressed when the extension asks for it.
func Save(m *bigram.Model, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create model file %s: %w", path, err)
	}

	bw := bufio.NewWriter(file)
	if err := Write(bw, m, compress.KindOf(path)); err != nil {
		file.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
