// Package tlv decodes EMV-style tag-length-value strings as used by VietQR.
//
// Each field is a 2-character tag, a 2-digit decimal length and that many
// characters of value. Decoding is a single forward scan that stops at the
// first malformed field and keeps everything decoded before it.
package tlv

// Fields maps a 2-character tag to its value.
type Fields map[string]string

// Get returns the value for tag and whether it was present.
func (f Fields) Get(tag string) (string, bool) {
	v, ok := f[tag]
	return v, ok
}

// Decode parses s into tag/value pairs.
//
// The scan stops when fewer than 4 characters remain, when a length field is
// not two decimal digits, or when a value would run past the end. A later
// duplicate tag overwrites an earlier one. Decode never fails: malformed
// input yields the fields decoded so far, possibly none.
func Decode(s string) Fields {
	fields := make(Fields)
	runes := []rune(s)

	i := 0
	for len(runes)-i >= 4 {
		tag := string(runes[i : i+2])
		n, ok := parseLength(runes[i+2], runes[i+3])
		if !ok {
			break
		}
		start := i + 4
		end := start + n
		if end > len(runes) {
			break
		}
		fields[tag] = string(runes[start:end])
		i = end
	}

	return fields
}

func parseLength(hi, lo rune) (int, bool) {
	if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
		return 0, false
	}
	return int(hi-'0')*10 + int(lo-'0'), true
}
