package scanner

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPrintable(t *testing.T) {
	for b := 0; b < 256; b++ {
		want := b >= 0x20 && b <= 0x7E
		assert.Equal(t, want, IsPrintable(byte(b)), "byte 0x%02x", b)
	}
}

func TestScan(t *testing.T) {
	testCases := []struct {
		name   string
		buf    []byte
		minLen int
		want   []FoundString
	}{
		{
			name:   "two strings between nulls",
			buf:    []byte("\x00ABCD\x00EFGH\x00"),
			minLen: 3,
			want:   []FoundString{{1, 5}, {6, 10}},
		},
		{
			name:   "run at end of buffer",
			buf:    []byte("\x00\x01hello"),
			minLen: 4,
			want:   []FoundString{{2, 7}},
		},
		{
			name:   "whole buffer printable",
			buf:    []byte("printable"),
			minLen: 4,
			want:   []FoundString{{0, 9}},
		},
		{
			name:   "too short",
			buf:    []byte("ab\x00cd\x00"),
			minLen: 3,
			want:   nil,
		},
		{
			name:   "exactly min length",
			buf:    []byte("\x7fabc\x7f"),
			minLen: 3,
			want:   []FoundString{{1, 4}},
		},
		{
			name:   "control characters split runs",
			buf:    []byte("line one\nline two\ttab"),
			minLen: 3,
			want:   []FoundString{{0, 8}, {9, 17}, {18, 21}},
		},
		{
			name:   "high bytes are not printable",
			buf:    []byte("caf\xc3\xa9 time"),
			minLen: 3,
			want:   []FoundString{{0, 3}, {5, 10}},
		},
		{
			name:   "empty buffer",
			buf:    nil,
			minLen: 1,
			want:   nil,
		},
		{
			name:   "zero min length acts as one",
			buf:    []byte("a\x00b"),
			minLen: 0,
			want:   []FoundString{{0, 1}, {2, 3}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Scan(tc.buf, tc.minLen))
		})
	}
}

func TestFoundStringAccessors(t *testing.T) {
	buf := []byte("\x00ABCD\x00")
	f := FoundString{Start: 1, End: 5}
	assert.Equal(t, 4, f.Len())
	assert.Equal(t, []byte("ABCD"), f.Bytes(buf))
	assert.Equal(t, "ABCD", f.Text(buf))
}

func TestEachStopsEarly(t *testing.T) {
	buf := []byte("one\x00two\x00three")
	var seen []string
	Each(buf, 1, func(f FoundString) bool {
		seen = append(seen, f.Text(buf))
		return len(seen) < 2
	})
	assert.Equal(t, []string{"one", "two"}, seen)
}

func TestScanProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		buf := make([]byte, rng.Intn(512))
		for i := range buf {
			// bias towards printable bytes so runs are common
			if rng.Intn(4) == 0 {
				buf[i] = byte(rng.Intn(256))
			} else {
				buf[i] = byte(0x20 + rng.Intn(0x5F))
			}
		}
		minLen := 1 + rng.Intn(8)

		spans := Scan(buf, minLen)
		checkSpans(t, buf, minLen, spans)
		assert.Equal(t, spans, Scan(buf, minLen), "scan must be idempotent")
	}
}

func checkSpans(t *testing.T, buf []byte, minLen int, spans []FoundString) {
	t.Helper()
	prevEnd := -1
	for _, s := range spans {
		require.True(t, s.Start >= 0 && s.Start < s.End && s.End <= len(buf), "bad span %+v", s)
		require.GreaterOrEqual(t, s.Len(), minLen)
		require.Greater(t, s.Start, prevEnd, "spans must be ordered and disjoint")
		for _, b := range s.Bytes(buf) {
			require.True(t, IsPrintable(b))
		}
		if s.Start > 0 {
			require.False(t, IsPrintable(buf[s.Start-1]))
		}
		if s.End < len(buf) {
			require.False(t, IsPrintable(buf[s.End]))
		}
		prevEnd = s.End
	}
}

func FuzzScan(f *testing.F) {
	f.Add([]byte("\x00ABCD\x00EFGH\x00"), 3)
	f.Add([]byte("trailing run"), 4)
	f.Add([]byte{}, 1)
	f.Add(bytes.Repeat([]byte{0x7F, 'a'}, 16), 1)

	f.Fuzz(func(t *testing.T, buf []byte, minLen int) {
		if minLen < 0 || minLen > 64 {
			return
		}
		checkSpans(t, buf, minLen, Scan(buf, minLen))
	})
}

func BenchmarkScan(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	buf := make([]byte, 1<<20)
	rng.Read(buf)
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Scan(buf, 4)
	}
}
