/*
Package rank orders found strings by address, length or likeness to English.

Address and length orders are stable key sorts, so equal keys keep their scan
(address) order. The English order builds a throwaway bigram model for every
span and compares it with a reference model:

	ranked, err := rank.Sort(buf, spans, rank.English, rank.Descending, ref)

A span whose model is empty (a run made only of spaces) has no defined
similarity. Such spans are always ranked below every scored span: first in
ascending order, last in descending order, and their reported score is 0.
*/
package rank

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/bastiangx/lstrings/pkg/bigram"
	"github.com/bastiangx/lstrings/pkg/scanner"
)

// Mode selects the sort key.
type Mode int

const (
	// Address sorts by start offset.
	Address Mode = iota
	// Length sorts by span length.
	Length
	// English sorts by bigram similarity to a reference model.
	English
)

// Direction selects ascending or descending order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

var (
	// ErrUnknownMode is returned by ParseMode for unsupported names.
	ErrUnknownMode = errors.New("rank: unknown sort mode")
	// ErrNoReference is returned when English sorting has no reference model.
	ErrNoReference = errors.New("rank: english sort needs a reference model")
)

var modeNames = map[string]Mode{
	"address": Address,
	"length":  Length,
	"english": English,
}

// ParseMode converts a sort mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	if m, ok := modeNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return Address, fmt.Errorf("%w: %q (want address, length or english)", ErrUnknownMode, s)
}

func (m Mode) String() string {
	switch m {
	case Address:
		return "address"
	case Length:
		return "length"
	case English:
		return "english"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// DirectionOf returns Descending when reverse is set.
func DirectionOf(reverse bool) Direction {
	if reverse {
		return Descending
	}
	return Ascending
}

// Ranked is a found string with its optional similarity score.
type Ranked struct {
	scanner.FoundString
	Score  float64
	Scored bool
}

// Score returns the similarity of text to ref. ok is false when the
// similarity is undefined, in which case the score is 0.
func Score(text []byte, ref *bigram.Model) (score float64, ok bool) {
	m := bigram.New()
	m.AddBytes(text)
	sim := m.Similarity(ref)
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0, false
	}
	return sim, true
}

// Sort returns spans ordered by mode and dir. spans is not modified.
// ref is only used, and required, for English.
func Sort(buf []byte, spans []scanner.FoundString, mode Mode, dir Direction, ref *bigram.Model) ([]Ranked, error) {
	out := make([]Ranked, len(spans))
	for i, s := range spans {
		out[i].FoundString = s
	}

	var less func(a, b *Ranked) bool
	switch mode {
	case Address:
		less = func(a, b *Ranked) bool { return a.Start < b.Start }
	case Length:
		less = func(a, b *Ranked) bool { return a.Len() < b.Len() }
	case English:
		if ref == nil {
			return nil, ErrNoReference
		}
		for i := range out {
			out[i].Score, out[i].Scored = Score(out[i].Bytes(buf), ref)
		}
		less = lessScore
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}

	if dir == Descending {
		sort.SliceStable(out, func(i, j int) bool { return less(&out[j], &out[i]) })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	}
	return out, nil
}

// lessScore orders unscored entries below every scored one.
func lessScore(a, b *Ranked) bool {
	if a.Scored != b.Scored {
		return !a.Scored
	}
	return a.Score < b.Score
}
