package report

import (
	"bufio"
	"io"

	"github.com/bastiangx/lstrings/pkg/rank"
	"github.com/vmihailenco/msgpack/v5"
)

// Options configures a Writer.
type Options struct {
	Encoding Encoding
	Offset   OffsetFormat
	// ShowFile prefixes each text line with the file name.
	ShowFile bool
	// Scores adds the similarity score to msgpack records.
	Scores bool
}

// Writer renders ranked strings of one or more files.
type Writer interface {
	// Write renders one string found in buf, which came from file.
	Write(file string, buf []byte, r rank.Ranked) error
	// Fail reports a file that could not be searched.
	Fail(file string, err error) error
	// Flush writes out anything buffered.
	Flush() error
}

// NewWriter returns a Writer for opts.Encoding writing to w.
func NewWriter(w io.Writer, opts Options) Writer {
	bw := bufio.NewWriterSize(w, 64*1024)
	if opts.Encoding == Msgpack {
		return &msgpackWriter{w: bw, enc: msgpack.NewEncoder(bw), scores: opts.Scores}
	}
	return &textWriter{w: bw, opts: opts}
}

type textWriter struct {
	w    *bufio.Writer
	opts Options
	line []byte
}

func (t *textWriter) Write(file string, buf []byte, r rank.Ranked) error {
	line := t.line[:0]
	if t.opts.ShowFile {
		line = append(line, file...)
		line = append(line, ':', ' ')
	}
	line = t.opts.Offset.AppendPrefix(line, r.Start)
	line = append(line, r.Bytes(buf)...)
	line = append(line, '\n')
	t.line = line

	_, err := t.w.Write(line)
	return err
}

// Fail is a no-op for text output; errors go to the log.
func (t *textWriter) Fail(string, error) error {
	return nil
}

func (t *textWriter) Flush() error {
	return t.w.Flush()
}

type msgpackWriter struct {
	w      *bufio.Writer
	enc    *msgpack.Encoder
	scores bool
}

func (m *msgpackWriter) Write(file string, buf []byte, r rank.Ranked) error {
	rec := Record{
		File:   file,
		Offset: r.Start,
		Length: r.Len(),
		Text:   r.Text(buf),
	}
	if m.scores {
		score := r.Score
		rec.Score = &score
	}
	return m.enc.Encode(&rec)
}

func (m *msgpackWriter) Fail(file string, err error) error {
	return m.enc.Encode(&FileError{File: file, Error: err.Error()})
}

func (m *msgpackWriter) Flush() error {
	return m.w.Flush()
}
