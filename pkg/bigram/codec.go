package bigram

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// EncodedSize is the exact length of an encoded model:
// TableSize little-endian uint32 counters followed by the float64 magnitude.
const EncodedSize = TableSize*4 + 8

// ErrInvalidLength is returned when an encoded model is not EncodedSize bytes.
var ErrInvalidLength = errors.New("bigram: invalid encoded model length")

// MarshalBinary encodes the model into its flat persisted form.
func (m *Model) MarshalBinary() ([]byte, error) {
	buf := make([]byte, EncodedSize)
	for i, c := range m.counts {
		binary.LittleEndian.PutUint32(buf[i*4:], c)
	}
	binary.LittleEndian.PutUint64(buf[TableSize*4:], math.Float64bits(m.magnitude))
	return buf, nil
}

// UnmarshalBinary replaces the model with the decoded contents of data.
// The stored magnitude is kept as-is.
func (m *Model) UnmarshalBinary(data []byte) error {
	if len(data) != EncodedSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(data), EncodedSize)
	}
	if m.counts == nil {
		m.counts = make([]uint32, TableSize)
	}
	for i := range m.counts {
		m.counts[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	m.magnitude = math.Float64frombits(binary.LittleEndian.Uint64(data[TableSize*4:]))
	return nil
}

// WriteTo writes the encoded model to w.
func (m *Model) WriteTo(w io.Writer) (int64, error) {
	buf, err := m.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// Decode reads exactly one encoded model from r. Short input and trailing
// bytes are both reported as ErrInvalidLength.
func Decode(r io.Reader) (*Model, error) {
	// one extra byte to notice trailing data
	data, err := io.ReadAll(io.LimitReader(r, EncodedSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read encoded model: %w", err)
	}
	m := New()
	if err := m.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return m, nil
}
