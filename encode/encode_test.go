package encode

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func newE() *LabelEncoder {
	return NewLabelEncoder(Options{})
}

func TestEncode_BasicASCII(t *testing.T) {
	e := newE()

	got, err := e.Encode("Google.COM")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if want := "google.com"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncode_ASCIINeverGainsPrefix(t *testing.T) {
	e := newE()

	in := "google.com"
	got, err := e.Encode(in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != in {
		t.Fatalf("got %q, want %q unchanged", got, in)
	}
	if HasACEPrefix(got) {
		t.Fatalf("%q: ASCII input must not carry %q", got, ACEPrefix)
	}
}

func TestEncode_CyrillicHomograph(t *testing.T) {
	e := newE()

	// Latin 'o' at index 2 replaced by U+043E CYRILLIC SMALL LETTER O.
	in := "go\u043egle.com"
	got, err := e.Encode(in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if want := "xn--gogle-kye.com"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if !strings.HasPrefix(got, ACEPrefix) {
		t.Fatalf("%q does not start with %q", got, ACEPrefix)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	e := newE()

	inputs := []string{
		"go\u043egle.com",
		"bücher.de",
		"\u0440\u0430ypal.com", // Cyrillic er and a
		"google.com",
	}
	for _, in := range inputs {
		encoded, err := e.Encode(in)
		if err != nil {
			t.Fatalf("%q: unexpected encode err: %v", in, err)
		}
		decoded, err := e.Decode(encoded)
		if err != nil {
			t.Fatalf("%q: unexpected decode err: %v", encoded, err)
		}
		if decoded != in {
			t.Fatalf("round trip of %q: got %q via %q", in, decoded, encoded)
		}
	}
}

func TestEncode_IDNToASCII(t *testing.T) {
	e := newE()

	got, err := e.Encode("bücher.de")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if want := "xn--bcher-kva.de"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncode_MixedCaseIDN(t *testing.T) {
	e := newE()

	got, err := e.Encode("BÜCHER.DE")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if want := "xn--bcher-kva.de"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncode_TrailingDotRemoved(t *testing.T) {
	e := newE()

	got, err := e.Encode("google.com.")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if want := "google.com"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncode_UnicodeDots(t *testing.T) {
	e := newE()

	cases := []string{
		"google。com",
		"google．com",
		"google｡com",
	}
	for _, in := range cases {
		got, err := e.Encode(in)
		if err != nil {
			t.Fatalf("%q: unexpected err: %v", in, err)
		}
		if want := "google.com"; got != want {
			t.Fatalf("%q: got %q, want %q", in, got, want)
		}
	}
}

func TestEncode_ZeroWidthStripped(t *testing.T) {
	e := newE()

	got, err := e.Encode("goo\u200bgle\u2060.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if want := "google.com"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncode_InvalidUTF8(t *testing.T) {
	e := newE()

	_, err := e.Encode("go\xffgle.com")
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected *EncodingError, got %v", err)
	}
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestEncode_ControlCharacter(t *testing.T) {
	e := newE()

	_, err := e.Encode("goo\x00gle.com")
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected *EncodingError, got %v", err)
	}
	if encErr.Rune != 0x00 || !errors.Is(err, ErrControlCharacter) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEncode_STD3_UnderscoreRejected(t *testing.T) {
	e := newE()

	_, err := e.Encode("goo_gle.com")
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("underscore should be rejected under STD3 rules, got %v", err)
	}
	if encErr.Rune != '_' {
		t.Fatalf("got offending rune %U, want %U", encErr.Rune, '_')
	}
	if encErr.Input != "goo_gle.com" {
		t.Fatalf("got input %q, want %q", encErr.Input, "goo_gle.com")
	}
}

func TestEncode_EmptyInput(t *testing.T) {
	e := newE()

	for _, in := range []string{"", " \t ", "."} {
		if _, err := e.Encode(in); !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("%q: expected ErrEmptyInput, got %v", in, err)
		}
	}
}

func TestEncode_EmptyLabels(t *testing.T) {
	e := newE()

	invalids := []string{
		"..",
		".google.com",
		"google.com..",
		"google..com",
	}
	for _, in := range invalids {
		if _, err := e.Encode(in); !errors.Is(err, ErrEmptyLabel) {
			t.Fatalf("%q: expected ErrEmptyLabel, got %v", in, err)
		}
	}
}

func TestEncode_LabelLengthAndTotalLength(t *testing.T) {
	e := newE()

	lbl63 := strings.Repeat("a", 63)
	if _, err := e.Encode(lbl63 + ".com"); err != nil {
		t.Fatalf("63-char label should be valid, got err: %v", err)
	}

	lbl64 := strings.Repeat("a", 64)
	if _, err := e.Encode(lbl64 + ".com"); err == nil {
		t.Fatal("64-char label should be invalid, got nil error")
	}

	long := lbl63 + "." + lbl63 + "." + lbl63 + "." + lbl63
	if _, err := e.Encode(long); err == nil {
		t.Fatal("input exceeding 253 chars should be invalid, got nil error")
	}
}

func TestEncode_HyphenEdges(t *testing.T) {
	e := newE()

	if _, err := e.Encode("goo-gle.com"); err != nil {
		t.Fatalf("unexpected err for interior hyphen: %v", err)
	}
	if _, err := e.Encode("-google.com"); err == nil {
		t.Fatal("leading hyphen label should be invalid")
	}
	if _, err := e.Encode("google-.com"); err == nil {
		t.Fatal("trailing hyphen label should be invalid")
	}
}

func TestEncode_CachedResultIsStable(t *testing.T) {
	e := newE()

	in := "go\u043egle.com"
	first, err := e.Encode(in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := e.cache.Load(in); !ok {
		t.Fatalf("expected %q to be cached", in)
	}
	second, err := e.Encode(in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first != second {
		t.Fatalf("got %q then %q", first, second)
	}
}

func TestEncode_FailuresAreNotCached(t *testing.T) {
	e := newE()

	if _, err := e.Encode("goo_gle.com"); err == nil {
		t.Fatal("expected error")
	}
	if _, ok := e.cache.Load("goo_gle.com"); ok {
		t.Fatal("failed input must not be cached")
	}
}

func TestEncode_ConcurrentUse(t *testing.T) {
	e := newE()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.Encode("go\u043egle.com")
			if err != nil {
				errs <- err
				return
			}
			if got != "xn--gogle-kye.com" {
				errs <- errors.New("unexpected output " + got)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestDecode_Invalid(t *testing.T) {
	e := newE()

	for _, in := range []string{"", "xn--gogle-k#e.com"} {
		if _, err := e.Decode(in); !errors.Is(err, ErrDecode) {
			t.Fatalf("%q: expected ErrDecode, got %v", in, err)
		}
	}
}

func TestHasACEPrefix(t *testing.T) {
	cases := map[string]bool{
		"xn--gogle-kye.com": true,
		"www.xn--p1ai":      true,
		"XN--P1AI":          true,
		"google.com":        false,
		"xn-.com":           false,
	}
	for in, want := range cases {
		if got := HasACEPrefix(in); got != want {
			t.Fatalf("%q: got %t, want %t", in, got, want)
		}
	}
}

func TestEncodingError_Message(t *testing.T) {
	err := NewEncodingError("goo_gle.com", '_', errors.New("idna: disallowed rune U+005F"))

	msg := err.Error()
	if !strings.Contains(msg, "U+005F") || !strings.Contains(msg, "LOW LINE") {
		t.Fatalf("message %q should name the offending code point", msg)
	}
}

func BenchmarkEncode(b *testing.B) {
	e := newE()
	inputs := []string{
		"google.com",
		"go\u043egle.com",
		"bücher.de",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Encode(inputs[i%len(inputs)]); err != nil {
			b.Fatalf("Encode error: %v", err)
		}
	}
}
