/*
Package bigram implements a byte-pair frequency model used to judge how much a
string looks like English text.

A Model counts every ordered pair of consecutive bytes in the text folded into
it. Counts live in a dense table of 65536 counters indexed by the two bytes of
the pair, so lookups never hash and iteration order is fixed. Two models are
compared with cosine similarity:

	ref, err := modelfile.Load("english-bigram-map.bin")
	candidate := bigram.FromString("Hello, world")
	score := candidate.Similarity(ref)

Spaces are dropped before pairs are counted. The first byte of the remaining
sequence is additionally paired with a leading space, and the last byte (for
sequences longer than one byte) with a trailing space, which keeps word
boundary statistics without letting the very frequent space dominate.
*/
package bigram

import "math"

// TableSize is the number of possible ordered byte pairs.
const TableSize = 1 << 16

const space = ' '

// Model is a bigram frequency table plus its cached L2 norm.
// The zero value is not usable, use New.
type Model struct {
	counts    []uint32
	magnitude float64
}

// New returns an empty model.
func New() *Model {
	return &Model{
		counts: make([]uint32, TableSize),
	}
}

// FromString returns a new model holding the bigrams of s.
func FromString(s string) *Model {
	m := New()
	m.Add(s)
	return m
}

// index maps an ordered byte pair to its slot in the table.
func index(a, b byte) int {
	return int(a)<<8 | int(b)
}

// Add folds the bigrams of text into the model and refreshes the magnitude.
func (m *Model) Add(text string) {
	if len(text) == 0 {
		return
	}
	filtered := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if text[i] != space {
			filtered = append(filtered, text[i])
		}
	}
	m.addFiltered(filtered)
}

// AddBytes is Add for a byte slice. b is not retained.
func (m *Model) AddBytes(b []byte) {
	if len(b) == 0 {
		return
	}
	filtered := make([]byte, 0, len(b))
	for _, c := range b {
		if c != space {
			filtered = append(filtered, c)
		}
	}
	m.addFiltered(filtered)
}

func (m *Model) addFiltered(b []byte) {
	// all spaces: there is no first byte to pad
	if len(b) == 0 {
		return
	}
	for i := 0; i+1 < len(b); i++ {
		m.counts[index(b[i], b[i+1])]++
	}

	m.counts[index(space, b[0])]++
	// a single byte is only counted as a word start
	if len(b) > 1 {
		m.counts[index(b[len(b)-1], space)]++
	}

	m.measure()
}

// measure recomputes the magnitude from every counter.
func (m *Model) measure() {
	var total float64
	for _, c := range m.counts {
		v := float64(c)
		total += v * v
	}
	m.magnitude = math.Sqrt(total)
}

// Similarity returns the cosine similarity between m and other, in [0, 1]
// for models holding data. If either model is empty the result is NaN;
// callers decide how to rank that.
func (m *Model) Similarity(other *Model) float64 {
	var dot float64
	for i, c := range m.counts {
		if c == 0 {
			continue
		}
		dot += float64(uint64(c) * uint64(other.counts[i]))
	}
	return dot / (m.magnitude * other.magnitude)
}

// Magnitude returns the Euclidean norm of the counters.
func (m *Model) Magnitude() float64 {
	return m.magnitude
}

// Count returns the counter for the pair (a, b).
func (m *Model) Count(a, b byte) uint32 {
	return m.counts[index(a, b)]
}

// Counts returns a copy of the counter table.
func (m *Model) Counts() []uint32 {
	out := make([]uint32, TableSize)
	copy(out, m.counts)
	return out
}

// Total returns the sum of all counters.
func (m *Model) Total() uint64 {
	var total uint64
	for _, c := range m.counts {
		total += uint64(c)
	}
	return total
}

// Empty reports whether no bigram was ever counted.
func (m *Model) Empty() bool {
	return m.magnitude == 0
}
