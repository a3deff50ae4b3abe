/*
Package report renders found strings, either as text lines or as a msgpack
record stream.

Text output prints one line per string: an optional file name, an optional
offset prefix, then the string itself.

	ABCD
	10 ABCD         (-t d)
	12 ABCD         (-t o)
	a ABCD          (-t x)
	a.out: ABCD     (-f)

The msgpack stream carries one map per string, written back to back with no
framing, so a decoder simply reads values until EOF:

	{"f": "a.out", "o": 1, "l": 4, "t": "ABCD", "s": 0.42}

The score key is only present when strings were ranked by likeness to English;
strings without a defined score then carry 0.
Records are written in the same order as the text lines would be.
*/
package report

// Record is one found string on the msgpack stream.
type Record struct {
	File   string   `msgpack:"f,omitempty"`
	Offset int      `msgpack:"o"`
	Length int      `msgpack:"l"`
	Text   string   `msgpack:"t"`
	Score  *float64 `msgpack:"s,omitempty"`
}

// FileError is emitted on the msgpack stream for a file that could not be
// searched, so stream readers see per-file failures in order.
type FileError struct {
	File  string `msgpack:"f"`
	Error string `msgpack:"e"`
}
