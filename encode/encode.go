package encode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// ACEPrefix is the marker carried by every ASCII-compatible encoded label.
const ACEPrefix = "xn--"

// ErrEmptyInput is returned when there is nothing left to encode after trimming.
var ErrEmptyInput = errors.New("empty input")

// ErrEmptyLabel is returned when the input contains an empty label, as in "a..b" or ".a".
var ErrEmptyLabel = errors.New("input contains empty label")

// ErrInvalidUTF8 is returned when the input is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// ErrControlCharacter is returned when the input contains an ASCII control character.
var ErrControlCharacter = errors.New("input contains a control character")

// ErrDecode is returned when an encoded label cannot be converted back to Unicode.
var ErrDecode = errors.New("cannot decode label")

// Options are options for creating a LabelEncoder instance.
type Options struct {
	// By default, LabelEncoder uses slog.Default.
	// If Logger is specified, it will use it instead.
	Logger *slog.Logger
}

// LabelEncoder converts labels to and from their ASCII-compatible encoded (Punycode) form.
// Note that it rejects labels with empty segments and anything a UTS #46 registration profile disallows.
// See LabelEncoder.Encode for details.
//
// Create an instance with NewLabelEncoder.
// It is safe to use a single instance of LabelEncoder across multiple goroutines.
type LabelEncoder struct {
	profile     *idna.Profile
	dotReplacer *strings.Replacer
	logger      *slog.Logger

	// Encoded results keyed by raw input.
	cache *xsync.Map[string, string]
}

// NewLabelEncoder constructs an encoder with a configured UTS #46 profile.
// The profile performs Map+Validate for lookup and registration with modern rules.
func NewLabelEncoder(options Options) *LabelEncoder {
	p := idna.New(
		idna.ValidateForRegistration(),
		idna.MapForLookup(),
		idna.BidiRule(),
		idna.Transitional(false),
		// STD3 rules reject underscores and other disallowed runes in ASCII.
		idna.StrictDomainName(true),
	)

	dots := strings.NewReplacer(
		"。", ".",
		"．", ".",
		"｡", ".",
	)

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &LabelEncoder{
		profile:     p,
		dotReplacer: dots,
		logger:      logger,
		cache:       xsync.NewMap[string, string](),
	}
}

// Encode converts a label to its ASCII-compatible form:
//   - Trims surrounding whitespace
//   - Rejects invalid UTF-8 and ASCII control characters
//   - Maps Unicode dot-like chars to '.'
//   - Strips zero-width and bidi control chars
//   - Removes a trailing dot and rejects empty labels
//   - Applies UTS #46 mapping and Punycode conversion
//   - Lowercases output (ASCII)
//   - Validates total (<=253) and label (1..63) lengths
//
// Labels that are already ASCII come back lowercased and never gain the ACEPrefix.
// Every failure is reported as an *EncodingError.
func (e *LabelEncoder) Encode(input string) (string, error) {
	if cached, ok := e.cache.Load(input); ok {
		return cached, nil
	}

	ascii, err := e.encode(input)
	if err != nil {
		e.logger.Log(context.Background(), slog.LevelDebug, "failed to encode label",
			"service", "encode.LabelEncoder",
			"input", input,
			"error", err,
		)
		return "", err
	}

	e.cache.Store(input, ascii)

	e.logger.Log(context.Background(), slog.LevelDebug, "encoded label",
		"service", "encode.LabelEncoder",
		"input", input,
		"output", ascii,
	)

	return ascii, nil
}

func (e *LabelEncoder) encode(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", NewEncodingError(input, 0, ErrEmptyInput)
	}

	if !utf8.ValidString(s) {
		return "", NewEncodingError(input, utf8.RuneError, ErrInvalidUTF8)
	}

	s = e.dotReplacer.Replace(s)

	if r, ok := findControlChar(s); ok {
		return "", NewEncodingError(input, r, ErrControlCharacter)
	}

	s = stripInvisibleChars(s)

	// Remove a single trailing dot if present (FQDN marker)
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return "", NewEncodingError(input, 0, ErrEmptyInput)
	}
	for _, lbl := range strings.Split(s, ".") {
		if lbl == "" {
			return "", NewEncodingError(input, 0, ErrEmptyLabel)
		}
	}

	ascii, err := e.profile.ToASCII(s)
	if err != nil {
		return "", NewEncodingError(input, e.offendingRune(s), fmt.Errorf("idna toASCII: %w", err))
	}
	ascii = strings.ToLower(ascii)

	labels := strings.Split(ascii, ".")
	for _, lbl := range labels {
		if l := len(lbl); l == 0 || l > 63 {
			return "", NewEncodingError(input, 0, fmt.Errorf("label %q length %d out of range 1..63", lbl, len(lbl)))
		}
		if !isLDHOrPunycode(lbl) {
			return "", NewEncodingError(input, 0, fmt.Errorf("label %q contains invalid ASCII characters", lbl))
		}
	}
	if len(ascii) > 253 {
		return "", NewEncodingError(input, 0, fmt.Errorf("length %d exceeds 253 characters", len(ascii)))
	}

	return ascii, nil
}

// offendingRune finds the first code point that the profile rejects on its own.
// Returns 0 if the failure only shows up at the label level.
func (e *LabelEncoder) offendingRune(s string) rune {
	for _, r := range s {
		if r == '.' || r == '-' {
			continue
		}
		if _, err := e.profile.ToASCII(string(r)); err != nil {
			return r
		}
	}
	return 0
}

// Decode converts an ASCII-compatible encoded label back to Unicode in NFC form.
// It is the inverse of Encode for any label Encode accepts.
func (e *LabelEncoder) Decode(input string) (string, error) {
	s := strings.TrimSuffix(strings.TrimSpace(input), ".")
	if s == "" {
		return "", fmt.Errorf("%w: %w", ErrDecode, ErrEmptyInput)
	}

	u, err := e.profile.ToUnicode(s)
	if err != nil {
		return "", fmt.Errorf(`%w "%s": %w`, ErrDecode, input, err)
	}

	return norm.NFC.String(u), nil
}

// HasACEPrefix reports whether any dot-separated label of s starts with ACEPrefix.
func HasACEPrefix(s string) bool {
	for _, lbl := range strings.Split(s, ".") {
		if len(lbl) >= len(ACEPrefix) && strings.EqualFold(lbl[:len(ACEPrefix)], ACEPrefix) {
			return true
		}
	}
	return false
}

// findControlChar returns the first ASCII control character or DEL in s.
func findControlChar(s string) (rune, bool) {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x20 || c == 0x7F {
			return rune(c), true
		}
	}
	return 0, false
}

// stripInvisibleChars removes zero-width and bidi control characters
// that can hide inside a label without changing how it renders.
func stripInvisibleChars(s string) string {
	if !strings.ContainsFunc(s, isInvisible) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isInvisible(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isInvisible(r rune) bool {
	switch r {
	// Zero-width and joiners
	case '\u200B', '\u200C', '\u200D', '\u2060', '\uFEFF':
		return true
	// Basic bidi controls
	case '\u202A', '\u202B', '\u202C', '\u202D', '\u202E':
		return true
	}
	return false
}

// isLDHOrPunycode checks if an ASCII label uses allowed characters per STD3.
// Allows "xn--" punycode prefix; label must start/end alnum; interior may have hyphens.
func isLDHOrPunycode(lbl string) bool {
	l := len(lbl)
	if l == 0 {
		return false
	}
	if !isAlnum(lbl[l-1]) {
		return false
	}
	if !isAlnum(lbl[0]) && !strings.HasPrefix(lbl, ACEPrefix) {
		return false
	}
	for i := 0; i < l; i++ {
		c := lbl[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' {
			continue
		}
		return false
	}
	return true
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}
