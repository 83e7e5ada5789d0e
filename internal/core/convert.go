package core

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode/utf8"
)

// CleanCell removes common spreadsheet-export artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NewCleanReader wraps r so that a leading UTF-8 BOM is skipped and invalid
// UTF-8 sequences are replaced with '?'.
func NewCleanReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return &utf8Sanitizer{r: br}
}

// utf8Sanitizer rewrites invalid UTF-8 in place. Incomplete sequences at the
// end of a read are carried over to the next one.
type utf8Sanitizer struct {
	r       io.Reader
	pending []byte
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	offset := copy(p, s.pending)
	s.pending = s.pending[:0]

	n, err := s.r.Read(p[offset:])
	n += offset
	if n == 0 {
		return 0, err
	}

	data := p[:n]
	write := 0
	for read := 0; read < len(data); {
		r, size := utf8.DecodeRune(data[read:])
		if r == utf8.RuneError && size == 1 {
			if err == nil && !utf8.FullRune(data[read:]) {
				s.pending = append(s.pending, data[read:]...)
				break
			}
			data[write] = '?'
			write++
			read++
			continue
		}
		copy(data[write:], data[read:read+size])
		write += size
		read += size
	}

	if write == 0 && err == nil {
		// Entire read was a partial rune; ask again rather than return 0, nil.
		return s.Read(p)
	}
	return write, err
}
