package oaipmh

import (
	"errors"
	"strings"
	"testing"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Pair
	}{
		{
			name: "simple request",
			raw:  "verb=GetRecord&identifier=oai:example.org:1&metadataPrefix=oai_dc",
			want: []Pair{
				{"verb", "GetRecord"},
				{"identifier", "oai:example.org:1"},
				{"metadataPrefix", "oai_dc"},
			},
		},
		{
			name: "empty string",
			raw:  "",
			want: nil,
		},
		{
			name: "repeated key keeps both",
			raw:  "a=1&a=2",
			want: []Pair{{"a", "1"}, {"a", "2"}},
		},
		{
			name: "empty value",
			raw:  "verb=&x=1",
			want: []Pair{{"verb", ""}, {"x", "1"}},
		},
		{
			name: "token without equals becomes empty value",
			raw:  "flag&verb=Identify",
			want: []Pair{{"flag", ""}, {"verb", "Identify"}},
		},
		{
			name: "empty key is preserved",
			raw:  "=orphan",
			want: []Pair{{"", "orphan"}},
		},
		{
			name: "double ampersand skipped",
			raw:  "a=1&&b=2",
			want: []Pair{{"a", "1"}, {"b", "2"}},
		},
		{
			name: "leading and trailing ampersands",
			raw:  "&a=1&",
			want: []Pair{{"a", "1"}},
		},
		{
			name: "percent decoding",
			raw:  "identifier=oai%3Aexample.org%3A1&set=a%20b",
			want: []Pair{{"identifier", "oai:example.org:1"}, {"set", "a b"}},
		},
		{
			name: "plus decodes to space",
			raw:  "set=a+b",
			want: []Pair{{"set", "a b"}},
		},
		{
			name: "undecodable component kept verbatim",
			raw:  "set=a%zzb",
			want: []Pair{{"set", "a%zzb"}},
		},
		{
			name: "whitespace trimmed",
			raw:  "verb=%20Identify%20",
			want: []Pair{{"verb", "Identify"}},
		},
		{
			name: "value containing equals splits on first",
			raw:  "token=a=b=c",
			want: []Pair{{"token", "a=b=c"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseQuery(tt.raw)
			if err != nil {
				t.Fatalf("ParseQuery(%q) error = %v", tt.raw, err)
			}
			got := q.Pairs()
			if len(got) != len(tt.want) {
				t.Fatalf("Pairs() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("pair %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
			if q.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", q.Len(), len(tt.want))
			}
		})
	}
}

func TestParseQueryLengthGuard(t *testing.T) {
	exact := "verb=" + strings.Repeat("x", MaxQueryLength-len("verb="))
	if _, err := ParseQuery(exact); err != nil {
		t.Errorf("query of exactly %d bytes should parse, got %v", MaxQueryLength, err)
	}

	over := exact + "x"
	_, err := ParseQuery(over)
	if err == nil {
		t.Fatalf("query of %d bytes should be rejected", len(over))
	}
	var report *Report
	if !errors.As(err, &report) {
		t.Fatalf("error should be a *Report, got %T", err)
	}
	if codes := report.Codes(); len(codes) != 1 || codes[0] != CodeBadArgument {
		t.Errorf("Codes() = %v, want exactly [badArgument]", codes)
	}
	msgs := report.Messages(CodeBadArgument)
	if len(msgs) != 1 || !strings.Contains(msgs[0], "too long") {
		t.Errorf("Messages() = %v, want a single too-long message", msgs)
	}
}

func TestQueryAccessors(t *testing.T) {
	q, err := ParseQuery("a=1&b=2&a=3")
	if err != nil {
		t.Fatal(err)
	}

	if got := q.Get("a"); got != "1" {
		t.Errorf("Get(a) = %q, want the first occurrence", got)
	}
	if got := q.Get("missing"); got != "" {
		t.Errorf("Get(missing) = %q, want empty", got)
	}
	if got := q.Values("a"); len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Errorf("Values(a) = %v, want [1 3]", got)
	}
	if q.Count("a") != 2 || q.Count("b") != 1 || q.Count("missing") != 0 {
		t.Errorf("Count() wrong: a=%d b=%d missing=%d", q.Count("a"), q.Count("b"), q.Count("missing"))
	}
	if !q.Has("b") || q.Has("missing") {
		t.Error("Has() wrong")
	}
	if keys := q.Keys(); len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys() = %v, want [a b] in first-seen order", keys)
	}
}
