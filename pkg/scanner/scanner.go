// Package scanner finds runs of printable ASCII bytes in a buffer.
package scanner

// FoundString is a half-open span [Start, End) of printable bytes in a buffer.
type FoundString struct {
	Start int
	End   int
}

// Len returns the span length in bytes.
func (f FoundString) Len() int {
	return f.End - f.Start
}

// Bytes returns the span's bytes within buf. The slice aliases buf.
func (f FoundString) Bytes(buf []byte) []byte {
	return buf[f.Start:f.End]
}

// Text returns the span's bytes within buf as a string.
func (f FoundString) Text(buf []byte) string {
	return string(buf[f.Start:f.End])
}

// IsPrintable reports whether b is printable ASCII: above the control
// characters and below DEL.
func IsPrintable(b byte) bool {
	return b > 0x1F && b < 0x7F
}

// Each calls fn for every maximal printable run in buf of at least minLen
// bytes, in address order. A run touching the end of buf is reported once.
// Returning false from fn stops the walk.
func Each(buf []byte, minLen int, fn func(FoundString) bool) {
	start := -1
	for i, b := range buf {
		if IsPrintable(b) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start >= minLen {
			if !fn(FoundString{Start: start, End: i}) {
				return
			}
		}
		start = -1
	}

	// behave as if a non-printable byte followed the buffer
	if start >= 0 && len(buf)-start >= minLen {
		fn(FoundString{Start: start, End: len(buf)})
	}
}

// Scan returns every printable run in buf of at least minLen bytes,
// in ascending address order.
func Scan(buf []byte, minLen int) []FoundString {
	var results []FoundString
	Each(buf, minLen, func(f FoundString) bool {
		results = append(results, f)
		return true
	})
	return results
}
