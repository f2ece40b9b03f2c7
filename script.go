package homograph

import (
	"slices"
	"unicode"
)

// Scripts returns the sorted names of the Unicode scripts used by the label's code points.
// Code points shared between scripts (the Common and Inherited scripts, which include
// digits, '.' and '-') are not counted.
func Scripts(l Label) []string {
	seen := make(map[string]struct{})
	for _, r := range string(l) {
		if name, ok := scriptOf(r); ok {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsMixedScript reports whether the label draws its letters from more than one script,
// which is what browsers look for before refusing to display a label in Unicode.
func IsMixedScript(l Label) bool {
	return len(Scripts(l)) > 1
}

func scriptOf(r rune) (string, bool) {
	if unicode.Is(unicode.Common, r) || unicode.Is(unicode.Inherited, r) {
		return "", false
	}
	// Latin and Cyrillic cover almost every label seen here, try them first.
	switch {
	case unicode.Is(unicode.Latin, r):
		return "Latin", true
	case unicode.Is(unicode.Cyrillic, r):
		return "Cyrillic", true
	case unicode.Is(unicode.Greek, r):
		return "Greek", true
	}
	for name, table := range unicode.Scripts {
		if unicode.Is(table, r) {
			return name, true
		}
	}
	return "", false
}
