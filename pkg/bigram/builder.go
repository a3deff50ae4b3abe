package bigram

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DefaultProgressEvery is how many lines pass between progress callbacks.
const DefaultProgressEvery = 1000

const maxLineSize = 1 << 20

// BuildStats describes a finished build.
type BuildStats struct {
	Lines   int
	Bigrams uint64
}

// Builder folds a line-oriented corpus into a Model, one Add per line.
type Builder struct {
	model *Model
	lines int

	// Every is the progress interval in lines. Zero means DefaultProgressEvery.
	Every int
	// Progress, if set, is called with the line number every Every lines.
	Progress func(line int)
}

// NewBuilder returns a builder around an empty model.
func NewBuilder() *Builder {
	return &Builder{model: New()}
}

// AddLine folds one line into the model.
func (b *Builder) AddLine(line string) {
	every := b.Every
	if every <= 0 {
		every = DefaultProgressEvery
	}
	if b.Progress != nil && b.lines%every == 0 {
		b.Progress(b.lines)
	}
	b.model.Add(strings.TrimSuffix(line, "\r"))
	b.lines++
}

// Consume folds every line of r into the model, in order.
func (b *Builder) Consume(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for sc.Scan() {
		b.AddLine(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read corpus at line %d: %w", b.lines+1, err)
	}
	return nil
}

// Model returns the model built so far.
func (b *Builder) Model() *Model {
	return b.model
}

// Stats returns line and bigram totals for the build so far.
func (b *Builder) Stats() BuildStats {
	return BuildStats{
		Lines:   b.lines,
		Bigrams: b.model.Total(),
	}
}

// Build reads a whole corpus from r and returns the resulting model.
func Build(r io.Reader) (*Model, BuildStats, error) {
	b := NewBuilder()
	if err := b.Consume(r); err != nil {
		return nil, b.Stats(), err
	}
	return b.Model(), b.Stats(), nil
}
