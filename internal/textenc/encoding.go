// Package textenc resolves the configured text encoding for every file the
// server writes. Names are IANA charset names ("UTF-8", "ISO-8859-1",
// "windows-1252", ...).
package textenc

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/dmitrijs2005/nbbackup/internal/common"
)

// probe must round-trip byte for byte; ledger scanning relies on space and
// newline being single ASCII bytes.
const probe = "A0 z\n"

// Codec converts between Go strings and the configured on-disk encoding.
type Codec struct {
	name string
	enc  encoding.Encoding
}

// UTF8 is the default codec.
var UTF8 = &Codec{name: "UTF-8", enc: encoding.Nop}

// Lookup resolves name via the IANA index. Encodings that are not ASCII
// compatible (UTF-16, UTF-32, EBCDIC) are rejected.
func Lookup(name string) (*Codec, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding %q: %v", common.ErrInvalidFormat, name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: encoding %q is not supported", common.ErrInvalidFormat, name)
	}

	c := &Codec{name: name, enc: enc}
	got, err := c.Encode(probe)
	if err != nil || !bytes.Equal(got, []byte(probe)) {
		return nil, fmt.Errorf("%w: encoding %q is not ASCII compatible", common.ErrInvalidFormat, name)
	}
	return c, nil
}

func (c *Codec) Name() string { return c.name }

// Encode converts s to the target encoding. Characters the encoding cannot
// represent are an error.
func (c *Codec) Encode(s string) ([]byte, error) {
	b, err := c.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: encode as %s: %v", common.ErrInvalidFormat, c.name, err)
	}
	return b, nil
}

// Decode converts b from the target encoding to a Go string.
func (c *Codec) Decode(b []byte) (string, error) {
	out, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: decode from %s: %v", common.ErrInvalidFormat, c.name, err)
	}
	return string(out), nil
}
