package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, Zstd, KindOf("model.bin.zst"))
	assert.Equal(t, Zstd, KindOf("MODEL.ZSTD"))
	assert.Equal(t, LZ4, KindOf("words.txt.lz4"))
	assert.Equal(t, None, KindOf("model.bin"))
	assert.Equal(t, None, KindOf("noext"))

	assert.Equal(t, "model.bin", TrimExt("model.bin.zst"))
	assert.Equal(t, "model.bin", TrimExt("model.bin"))
	assert.Equal(t, ".lz4", LZ4.Ext())
	assert.Equal(t, "zstd", Zstd.String())
}

func TestRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("the quick brown fox\n"), 500)

	for _, k := range []Kind{None, Zstd, LZ4} {
		t.Run(k.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, k)
			require.NoError(t, err)
			_, err = w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			if k != None {
				assert.Less(t, buf.Len(), len(payload))
			}

			r, err := NewReader(&buf, k)
			require.NoError(t, err)
			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestZstdReaderRejectsGarbage(t *testing.T) {
	r, err := NewReader(bytes.NewReader([]byte("not a zstd frame")), Zstd)
	require.NoError(t, err)
	defer r.Close()

	_, err = io.ReadAll(r)
	assert.Error(t, err)
}
