package homograph

import (
	"github.com/termermc/go-homograph/encode"
)

// EncodeLabel converts the label to its ASCII-compatible form using a new encode.LabelEncoder.
// Callers encoding many labels should keep a single encode.LabelEncoder instead, since it caches results.
func EncodeLabel(l Label) (string, error) {
	e := encode.NewLabelEncoder(encode.Options{})
	return e.Encode(l.String())
}

// DecodeLabel converts an ASCII-compatible encoded label back to a Label.
func DecodeLabel(encoded string) (Label, error) {
	e := encode.NewLabelEncoder(encode.Options{})
	u, err := e.Decode(encoded)
	if err != nil {
		return "", err
	}
	return Label(u), nil
}
