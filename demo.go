package homograph

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/termermc/go-homograph/encode"
)

// LegitimateDomain is the domain the demonstration impersonates.
const LegitimateDomain Label = "google.com"

// ConfusablePosition is the code point index of the letter that gets swapped.
const ConfusablePosition = 2

// ConfusableRune is U+043E CYRILLIC SMALL LETTER O.
// It renders the same as U+006F LATIN SMALL LETTER O in nearly every font.
const ConfusableRune = '\u043e'

const separator = "--------------------------------------"

// Report holds everything one demonstration run computed.
type Report struct {
	Legitimate Label
	Confusable Label

	// Identical is true if both labels hold the same code point sequence.
	// Never true for the built-in labels.
	Identical bool

	// Substitutions lists the code points that differ between the labels.
	Substitutions []Substitution

	// Encoded is the ASCII-compatible form of Confusable.
	Encoded string

	// AddressBarURL is the URL a browser would display for Confusable.
	AddressBarURL string
}

// Options are options for creating a Demonstrator instance.
type Options struct {
	// Where the demonstration text is written.
	// Required.
	Writer io.Writer

	// By default, Demonstrator uses slog.Default.
	// If Logger is specified, it will use it instead.
	// Log records never go to Writer unless the logger itself writes there.
	Logger *slog.Logger

	// Overrides the default encoder if not nil.
	// If nil, uses an encode.LabelEncoder sharing Logger.
	Encoder Encoder
}

// Demonstrator walks through a homograph attack on LegitimateDomain:
// it builds a look-alike label, shows that both render the same,
// proves they differ, and shows the encoded form an attacker would register.
//
// Create an instance with NewDemonstrator.
type Demonstrator struct {
	out     io.Writer
	logger  *slog.Logger
	encoder Encoder
}

// NewDemonstrator creates a new Demonstrator instance.
// If error is nil, the returned Demonstrator instance will never be nil.
func NewDemonstrator(options Options) (*Demonstrator, error) {
	if options.Writer == nil {
		return nil, ErrNilWriter
	}

	var logger *slog.Logger
	if options.Logger == nil {
		logger = slog.Default()
	} else {
		logger = options.Logger
	}

	var encoder Encoder
	if options.Encoder == nil {
		encoder = encode.NewLabelEncoder(encode.Options{
			Logger: logger,
		})
	} else {
		encoder = options.Encoder
	}

	return &Demonstrator{
		out:     options.Writer,
		logger:  logger,
		encoder: encoder,
	}, nil
}

// BuildLabels returns LegitimateDomain and its look-alike,
// with ConfusableRune in place of the code point at ConfusablePosition.
func BuildLabels() (legitimate Label, confusable Label, err error) {
	confusable, err = Substitute(LegitimateDomain, ConfusablePosition, ConfusableRune)
	if err != nil {
		return "", "", fmt.Errorf("failed to build confusable label: %w", err)
	}
	return LegitimateDomain, confusable, nil
}

// Run writes the demonstration to the configured writer.
// See Demonstrate.
func (d *Demonstrator) Run(ctx context.Context) error {
	_, err := d.Demonstrate(ctx)
	return err
}

// Demonstrate writes the demonstration to the configured writer and returns what it computed.
// Output written before a failure is still flushed to the writer.
// Fails with *EncodingError if the look-alike label cannot be encoded.
func (d *Demonstrator) Demonstrate(ctx context.Context) (report *Report, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.logger.Log(ctx, slog.LevelInfo, "starting homograph demonstration",
		"service", "homograph.Demonstrator",
	)

	bw := bufio.NewWriter(d.out)
	defer func() {
		if flushErr := bw.Flush(); flushErr != nil && err == nil {
			report = nil
			err = fmt.Errorf("failed to write demonstration output: %w", flushErr)
		}
	}()

	legitimate, confusable, err := BuildLabels()
	if err != nil {
		return nil, err
	}
	report = &Report{
		Legitimate: legitimate,
		Confusable: confusable,
	}

	// Display.
	fmt.Fprintln(bw, "--- Homograph Attack Demonstration ---")
	fmt.Fprintf(bw, "Legitimate Domain:  %s\n", legitimate)
	fmt.Fprintf(bw, "Malicious Domain:   %s\n", confusable)
	fmt.Fprintln(bw, separator)

	// Compare.
	report.Identical = legitimate.Equal(confusable)
	fmt.Fprintln(bw, "\nVerifying if the domains are the same...")
	if report.Identical {
		fmt.Fprintln(bw, "Result: The domains are identical.")
	} else {
		fmt.Fprintln(bw, "Result: The domains are DIFFERENT.")
		fmt.Fprintln(bw, "This is because they use characters from different Unicode blocks.")
	}
	fmt.Fprintln(bw, separator)

	report.Substitutions, err = Diff(legitimate, confusable)
	if err != nil {
		return nil, err
	}
	for _, sub := range report.Substitutions {
		d.logger.Log(ctx, slog.LevelDebug, "code point substituted",
			"service", "homograph.Demonstrator",
			"substitution", sub.String(),
			"scripts", Scripts(confusable),
		)
	}

	// Encode.
	fmt.Fprintln(bw, "\nConverting the malicious domain to Punycode...")
	report.Encoded, err = d.encoder.Encode(confusable.String())
	if err != nil {
		d.logger.Log(ctx, slog.LevelError, "failed to encode malicious domain",
			"service", "homograph.Demonstrator",
			"label", confusable.String(),
			"error", err,
		)
		return nil, fmt.Errorf(`failed to encode malicious domain "%s": %w`, confusable, err)
	}
	fmt.Fprintf(bw, "The Punycode version of '%s' is: %s\n", confusable, report.Encoded)
	fmt.Fprintf(bw, "An attacker would register this '%s' domain.\n", encode.ACEPrefix)
	fmt.Fprintln(bw, separator)

	// Explain mitigation.
	report.AddressBarURL, err = AddressBarURL(d.encoder, confusable)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(bw, "\nHow modern browsers mitigate this attack:")
	fmt.Fprintln(bw, "If a domain contains mixed-scripts (e.g., Latin and Cyrillic),")
	fmt.Fprintln(bw, "the browser will display the Punycode version to warn the user.")
	fmt.Fprintf(bw, "\nYour browser's address bar would show: %s\n", report.AddressBarURL)

	d.logger.Log(ctx, slog.LevelInfo, "finished homograph demonstration",
		"service", "homograph.Demonstrator",
		"encoded", report.Encoded,
	)

	return report, nil
}
