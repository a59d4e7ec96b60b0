package metro

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// LineCode identifies one of the six metro lines.
type LineCode string

const (
	Red    LineCode = "RD"
	Green  LineCode = "GR"
	Yellow LineCode = "YL"
	Blue   LineCode = "BL"
	Silver LineCode = "SV"
	Orange LineCode = "OR"
)

// AllLines lists every line in canonical order. Whenever several lines
// qualify equally, the one listed first here wins.
var AllLines = []LineCode{Red, Green, Yellow, Blue, Silver, Orange}

// ParseLineCode validates a two-letter line code.
func ParseLineCode(s string) (LineCode, error) {
	code := LineCode(strings.ToUpper(strings.TrimSpace(s)))
	if code.index() < 0 {
		return "", errors.Errorf("unknown line code %q", s)
	}
	return code, nil
}

func (c LineCode) index() int {
	for i, l := range AllLines {
		if l == c {
			return i
		}
	}
	return -1
}

// LineSet is an immutable set of line codes.
type LineSet uint8

// NewLineSet builds a set from codes. Unknown codes are ignored.
func NewLineSet(codes ...LineCode) LineSet {
	var s LineSet
	for _, c := range codes {
		s = s.Add(c)
	}
	return s
}

// Add returns a copy of s containing c.
func (s LineSet) Add(c LineCode) LineSet {
	i := c.index()
	if i < 0 {
		return s
	}
	return s | 1<<i
}

// Has reports whether c is a member of s.
func (s LineSet) Has(c LineCode) bool {
	i := c.index()
	return i >= 0 && s&(1<<i) != 0
}

func (s LineSet) Union(o LineSet) LineSet     { return s | o }
func (s LineSet) Intersect(o LineSet) LineSet { return s & o }
func (s LineSet) IsEmpty() bool               { return s == 0 }

// Len returns the number of lines in s.
func (s LineSet) Len() int {
	n := 0
	for v := s; v != 0; v &= v - 1 {
		n++
	}
	return n
}

// Codes returns the members of s in canonical order.
func (s LineSet) Codes() []LineCode {
	codes := make([]LineCode, 0, s.Len())
	for _, c := range AllLines {
		if s.Has(c) {
			codes = append(codes, c)
		}
	}
	return codes
}

func (s LineSet) String() string {
	parts := make([]string, 0, s.Len())
	for _, c := range s.Codes() {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, "/")
}

func (s LineSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Codes())
}
