package homograph

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"
)

// Label is an immutable sequence of Unicode code points naming a domain, such as "google.com".
type Label string

// CodePoints returns the code points of the label.
func (l Label) CodePoints() []rune {
	return []rune(string(l))
}

// Len returns the number of code points in the label.
func (l Label) Len() int {
	return utf8.RuneCountInString(string(l))
}

// Equal reports whether both labels hold the same code point sequence.
// No normalization or case folding is applied.
func (l Label) Equal(other Label) bool {
	return l == other
}

func (l Label) String() string {
	return string(l)
}

// Substitution describes one code point that differs between two labels.
type Substitution struct {
	// Position is the code point index, not the byte offset.
	Position    int
	Original    rune
	Replacement rune
}

func (s Substitution) String() string {
	return fmt.Sprintf("position %d: %s -> %s", s.Position, describeRune(s.Original), describeRune(s.Replacement))
}

// Substitute returns base with the code point at index pos replaced by r.
func Substitute(base Label, pos int, r rune) (Label, error) {
	runes := base.CodePoints()
	if len(runes) == 0 {
		return "", ErrEmptyLabel
	}
	if pos < 0 || pos >= len(runes) {
		return "", NewPositionOutOfRangeError(pos, len(runes))
	}
	if runes[pos] == r {
		return "", ErrNoSubstitution
	}

	runes[pos] = r
	return Label(runes), nil
}

// Diff lists the code points that differ between a and b, in order.
// Both labels must have the same number of code points.
func Diff(a, b Label) ([]Substitution, error) {
	ra, rb := a.CodePoints(), b.CodePoints()
	if len(ra) != len(rb) {
		return nil, NewLengthMismatchError(a, b)
	}

	var subs []Substitution
	for i := range ra {
		if ra[i] != rb[i] {
			subs = append(subs, Substitution{
				Position:    i,
				Original:    ra[i],
				Replacement: rb[i],
			})
		}
	}
	return subs, nil
}

// describeRune formats r as "U+043E CYRILLIC SMALL LETTER O".
func describeRune(r rune) string {
	name := runenames.Name(r)
	if name == "" {
		return fmt.Sprintf("%U", r)
	}
	return fmt.Sprintf("%U %s", r, name)
}
