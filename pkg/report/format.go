package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// OffsetFormat controls how a string's start offset is printed.
type OffsetFormat int

const (
	NoOffset OffsetFormat = iota
	Decimal
	Octal
	Hexadecimal
)

// Encoding selects the output representation.
type Encoding int

const (
	Text Encoding = iota
	Msgpack
)

var (
	// ErrUnknownFormat is returned by ParseOffsetFormat.
	ErrUnknownFormat = errors.New("report: unknown offset format")
	// ErrUnknownEncoding is returned by ParseEncoding.
	ErrUnknownEncoding = errors.New("report: unknown output encoding")
)

// ParseOffsetFormat accepts n, d, o or x.
func ParseOffsetFormat(s string) (OffsetFormat, error) {
	switch strings.TrimSpace(s) {
	case "n", "":
		return NoOffset, nil
	case "d":
		return Decimal, nil
	case "o":
		return Octal, nil
	case "x":
		return Hexadecimal, nil
	}
	return NoOffset, fmt.Errorf("%w: %q (want n, d, o or x)", ErrUnknownFormat, s)
}

func (f OffsetFormat) String() string {
	switch f {
	case Decimal:
		return "d"
	case Octal:
		return "o"
	case Hexadecimal:
		return "x"
	}
	return "n"
}

// AppendPrefix appends the rendered offset and a trailing space to dst.
// NoOffset appends nothing.
func (f OffsetFormat) AppendPrefix(dst []byte, offset int) []byte {
	base := 0
	switch f {
	case Decimal:
		base = 10
	case Octal:
		base = 8
	case Hexadecimal:
		base = 16
	default:
		return dst
	}
	dst = strconv.AppendInt(dst, int64(offset), base)
	return append(dst, ' ')
}

// Prefix returns the rendered offset prefix.
func (f OffsetFormat) Prefix(offset int) string {
	return string(f.AppendPrefix(nil, offset))
}

// ParseEncoding accepts text or msgpack.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return Text, nil
	case "msgpack", "mp":
		return Msgpack, nil
	}
	return Text, fmt.Errorf("%w: %q (want text or msgpack)", ErrUnknownEncoding, s)
}

func (e Encoding) String() string {
	if e == Msgpack {
		return "msgpack"
	}
	return "text"
}
