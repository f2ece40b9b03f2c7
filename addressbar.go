package homograph

import (
	"fmt"
)

// Encoder converts a label to its ASCII-compatible encoded form.
// *encode.LabelEncoder implements it.
type Encoder interface {
	Encode(label string) (string, error)
}

// AddressBarHost returns the host a browser would display for the label.
// Mixed-script labels are shown in their encoded form so the substitution is visible.
// Single-script labels are shown as they are.
func AddressBarHost(enc Encoder, l Label) (string, error) {
	if !IsMixedScript(l) {
		return l.String(), nil
	}

	encoded, err := enc.Encode(l.String())
	if err != nil {
		return "", fmt.Errorf(`failed to encode mixed-script label "%s" for display: %w`, l, err)
	}
	return encoded, nil
}

// AddressBarURL returns the https URL a browser would display for the label.
func AddressBarURL(enc Encoder, l Label) (string, error) {
	host, err := AddressBarHost(enc, l)
	if err != nil {
		return "", err
	}
	return "https://" + host, nil
}
