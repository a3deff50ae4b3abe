package modelfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/lstrings/internal/compress"
	"github.com/bastiangx/lstrings/pkg/bigram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleModel() *bigram.Model {
	m := bigram.New()
	for _, line := range []string{"alpha", "beta", "gamma delta", "epsilon"} {
		m.Add(line)
	}
	return m
}

func TestSaveLoadContainers(t *testing.T) {
	want := sampleModel()
	dir := t.TempDir()

	for _, name := range []string{"model.bin", "model.bin.zst", "model.bin.lz4", "model"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(want, path))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want.Counts(), got.Counts())
			assert.Equal(t, want.Magnitude(), got.Magnitude())
		})
	}
}

func TestCompressedFilesAreSmaller(t *testing.T) {
	dir := t.TempDir()
	m := sampleModel()

	raw := filepath.Join(dir, "m.bin")
	zst := filepath.Join(dir, "m.bin.zst")
	require.NoError(t, Save(m, raw))
	require.NoError(t, Save(m, zst))

	rawInfo, err := os.Stat(raw)
	require.NoError(t, err)
	zstInfo, err := os.Stat(zst)
	require.NoError(t, err)

	assert.Equal(t, int64(bigram.EncodedSize), rawInfo.Size())
	assert.Less(t, zstInfo.Size(), rawInfo.Size())
}

func TestLoadRejectsTruncatedRaw(t *testing.T) {
	data, err := sampleModel().MarshalBinary()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(path, data[:1000], 0644))

	_, err = Load(path)
	assert.ErrorIs(t, err, bigram.ErrInvalidLength)
}

func TestLoadRejectsTruncatedPayloadInFrame(t *testing.T) {
	data, err := sampleModel().MarshalBinary()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "short.bin.lz4")
	f, err := os.Create(path)
	require.NoError(t, err)
	// a well formed frame around a short payload
	w, err := compress.NewWriter(f, compress.LZ4)
	require.NoError(t, err)
	_, err = w.Write(data[:len(data)-8])
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	_, err = Load(path)
	assert.ErrorIs(t, err, bigram.ErrInvalidLength)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.bin"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDetectFileFormat(t *testing.T) {
	assert.Equal(t, FormatRaw, DetectFileFormat("english-bigram-map.bin"))
	assert.Equal(t, FormatZstd, DetectFileFormat("english.bin.zst"))
	assert.Equal(t, FormatLZ4, DetectFileFormat("english.bin.lz4"))

	info, ok := GetFormatInfo(FormatRaw)
	require.True(t, ok)
	assert.Equal(t, int64(bigram.EncodedSize), info.MinSize)

	formats := ListSupportedFormats()
	require.Len(t, formats, 3)
	assert.Equal(t, FormatRaw, formats[0].Format)
}

func TestValidateUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.bin")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.ErrorIs(t, ValidateFileFormat(path, FormatUnknown), ErrUnknownFormat)
}
