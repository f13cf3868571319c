package oaipmh

import (
	"net/url"
	"strings"
)

// Pair is one raw key=value token of a query string, after decoding and
// trimming.
type Pair struct {
	Key   string
	Value string
}

// Query holds the tokenized form of a raw query string. Every occurrence
// of every key is kept, in request order, so validation can detect
// repeated arguments instead of silently collapsing them.
type Query struct {
	pairs  []Pair
	values map[string][]string
	keys   []string
}

// ParseQuery tokenizes a raw query string such as
// "verb=GetRecord&identifier=oai%3Aexample%3A1".
//
// Rules, applied per '&'-separated token:
//   - empty tokens (from "&&" or stray separators) are skipped
//   - the first '=' splits key from value; a token without '=' becomes a
//     key with an empty value
//   - percent-encoding is decoded per component; a component that fails
//     to decode is kept verbatim
//   - keys and values are trimmed of surrounding whitespace
//
// ParseQuery never judges content: unknown keys, repeated keys and empty
// keys all survive tokenization and are judged by Validate. The only
// rejection is a raw string longer than MaxQueryLength bytes, which
// returns a one-entry badArgument *Report as the error.
func ParseQuery(raw string) (*Query, error) {
	if len(raw) > MaxQueryLength {
		report := NewReport()
		report.Add(CodeBadArgument, "request too long: %d bytes exceed the %d byte limit", len(raw), MaxQueryLength)
		return nil, report
	}

	q := &Query{values: make(map[string][]string)}
	for _, token := range strings.Split(raw, "&") {
		if token == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(token, "=")
		key := strings.TrimSpace(decodeComponent(rawKey))
		value := strings.TrimSpace(decodeComponent(rawValue))
		q.pairs = append(q.pairs, Pair{Key: key, Value: value})
		if _, seen := q.values[key]; !seen {
			q.keys = append(q.keys, key)
		}
		q.values[key] = append(q.values[key], value)
	}
	return q, nil
}

// decodeComponent undoes percent-encoding and '+' space encoding. Input
// that does not decode is returned verbatim so validation can report the
// offending text instead of a mangled version of it.
func decodeComponent(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// Get returns the first value recorded for key, or "" when the key is
// absent.
func (q *Query) Get(key string) string {
	vals := q.values[key]
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// Values returns every value recorded for key, in request order.
func (q *Query) Values(key string) []string {
	vals := q.values[key]
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// Count returns how many times key occurred.
func (q *Query) Count(key string) int {
	return len(q.values[key])
}

// Has reports whether key occurred at least once.
func (q *Query) Has(key string) bool {
	return len(q.values[key]) > 0
}

// Keys returns the distinct keys in first-seen order.
func (q *Query) Keys() []string {
	out := make([]string, len(q.keys))
	copy(out, q.keys)
	return out
}

// Pairs returns every key=value token in request order.
func (q *Query) Pairs() []Pair {
	out := make([]Pair, len(q.pairs))
	copy(out, q.pairs)
	return out
}

// Len returns the number of tokens.
func (q *Query) Len() int {
	return len(q.pairs)
}
