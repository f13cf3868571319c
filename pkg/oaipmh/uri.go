package oaipmh

import (
	"net/url"
)

// AnyURI is a string conforming to the XML Schema anyURI lexical space.
// Both absolute and relative references are accepted; non-ASCII characters
// are allowed as in an IRI. The zero value is the empty URI, which is a
// valid relative reference.
type AnyURI struct {
	value string
}

// characters RFC 2396 excludes from URIs unless percent-escaped
const uriExcluded = `<>"{}|\^` + "`"

// NewAnyURI validates s against the anyURI lexical rules: no whitespace or
// control characters, well-formed percent escapes, none of the excluded
// ASCII characters, and a structure net/url can parse. The accepted value
// is stored verbatim.
func NewAnyURI(s string) (AnyURI, error) {
	if err := checkAnyURI(s); err != nil {
		return AnyURI{}, err
	}
	return AnyURI{value: s}, nil
}

// MustAnyURI is like NewAnyURI but panics on invalid input. Use only for
// compile-time constants.
func MustAnyURI(s string) AnyURI {
	u, err := NewAnyURI(s)
	if err != nil {
		panic(err)
	}
	return u
}

func checkAnyURI(s string) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c <= 0x20 || c == 0x7f:
			return newFormatError("anyURI", s, "contains whitespace or a control character")
		case c == '%':
			if i+2 >= len(s) {
				return newFormatError("anyURI", s, "truncated percent escape")
			}
			if !isHexDigit(s[i+1]) || !isHexDigit(s[i+2]) {
				return newFormatError("anyURI", s, "malformed percent escape")
			}
			i += 2
		default:
			for j := 0; j < len(uriExcluded); j++ {
				if c == uriExcluded[j] {
					return newFormatError("anyURI", s, "contains a character excluded from URIs")
				}
			}
		}
	}
	if _, err := url.Parse(s); err != nil {
		return newFormatError("anyURI", s, "not parseable as a URI reference")
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// String returns the URI exactly as it was accepted.
func (u AnyURI) String() string {
	return u.value
}

// IsEmpty reports whether the URI is the empty reference.
func (u AnyURI) IsEmpty() bool {
	return u.value == ""
}

// Equal reports value equality.
func (u AnyURI) Equal(other AnyURI) bool {
	return u.value == other.value
}
