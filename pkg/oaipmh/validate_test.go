package oaipmh

import (
	"errors"
	"strings"
	"testing"
)

func parseAndValidate(t *testing.T, raw string) (*Request, *Report) {
	t.Helper()
	q, err := ParseQuery(raw)
	if err != nil {
		t.Fatalf("ParseQuery(%q) error = %v", raw, err)
	}
	req, err := Validate(q)
	if err == nil {
		return req, nil
	}
	var report *Report
	if !errors.As(err, &report) {
		t.Fatalf("Validate error should be a *Report, got %T: %v", err, err)
	}
	return nil, report
}

func TestValidateAcceptsWellFormedRequests(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		verb Verb
	}{
		{"identify", "verb=Identify", VerbIdentify},
		{"get record", "verb=GetRecord&identifier=oai:example.org:1&metadataPrefix=oai_dc", VerbGetRecord},
		{"list records", "verb=ListRecords&metadataPrefix=oai_dc&from=2024-01-01&until=2024-12-31", VerbListRecords},
		{"list sets", "verb=ListSets", VerbListSets},
		{"resumption token", "verb=ListIdentifiers&resumptionToken=abc", VerbListIdentifiers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, report := parseAndValidate(t, tt.raw)
			if report != nil {
				t.Fatalf("Validate(%q) report = %v, want success", tt.raw, report)
			}
			if req.Verb() != tt.verb {
				t.Errorf("Verb() = %q, want %q", req.Verb(), tt.verb)
			}
		})
	}
}

func TestValidateMissingVerb(t *testing.T) {
	_, report := parseAndValidate(t, "")
	if report == nil {
		t.Fatal("empty request should fail validation")
	}
	if !report.Has(CodeBadVerb) {
		t.Fatalf("Codes() = %v, want badVerb", report.Codes())
	}
	msgs := report.Messages(CodeBadVerb)
	if len(msgs) != 1 || !strings.Contains(msgs[0], "missing") {
		t.Errorf("Messages(badVerb) = %v, want one missing-verb message", msgs)
	}
}

func TestValidateRepeatedVerb(t *testing.T) {
	_, report := parseAndValidate(t, "verb=Identify&verb=ListSets")
	if report == nil {
		t.Fatal("repeated verb should fail validation")
	}
	msgs := report.Messages(CodeBadVerb)
	if len(msgs) != 1 || !strings.Contains(msgs[0], "repeated") {
		t.Errorf("Messages(badVerb) = %v, want one repeated-verb message", msgs)
	}
}

func TestValidateUnsupportedVerb(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown verb", "verb=Harvest"},
		{"wrong case", "verb=identify"},
		{"empty verb value", "verb="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, report := parseAndValidate(t, tt.raw)
			if report == nil {
				t.Fatal("unsupported verb should fail validation")
			}
			if !report.Has(CodeBadVerb) {
				t.Errorf("Codes() = %v, want badVerb", report.Codes())
			}
		})
	}
}

func TestValidateIllegalArgument(t *testing.T) {
	_, report := parseAndValidate(t, "verb=Identify&pageSize=10")
	if report == nil {
		t.Fatal("illegal argument should fail validation")
	}
	if report.Has(CodeBadVerb) {
		t.Errorf("verb is fine, Codes() = %v should not include badVerb", report.Codes())
	}
	msgs := report.Messages(CodeBadArgument)
	if len(msgs) != 1 || !strings.Contains(msgs[0], "pageSize") {
		t.Errorf("Messages(badArgument) = %v, want one message naming pageSize", msgs)
	}
}

func TestValidateRepeatedArgument(t *testing.T) {
	_, report := parseAndValidate(t, "verb=ListRecords&set=a&set=b&metadataPrefix=oai_dc")
	if report == nil {
		t.Fatal("repeated argument should fail validation")
	}
	msgs := report.Messages(CodeBadArgument)
	if len(msgs) != 1 || !strings.Contains(msgs[0], "set") || !strings.Contains(msgs[0], "repeated") {
		t.Errorf("Messages(badArgument) = %v, want one repeated-set message", msgs)
	}
}

func TestValidateAccumulatesEveryViolation(t *testing.T) {
	// Wrong four ways at once: unsupported verb, repeated verb, an
	// illegal argument, and a repeated legal argument.
	_, report := parseAndValidate(t, "verb=Bogus&verb=Identify&speed=fast&set=a&set=b")
	if report == nil {
		t.Fatal("request should fail validation")
	}

	badVerb := report.Messages(CodeBadVerb)
	if len(badVerb) != 2 {
		t.Errorf("Messages(badVerb) = %v, want repeated + unsupported", badVerb)
	}
	badArg := report.Messages(CodeBadArgument)
	if len(badArg) != 2 {
		t.Errorf("Messages(badArgument) = %v, want illegal speed + repeated set", badArg)
	}
	if report.Len() != 4 {
		t.Errorf("Len() = %d, want all 4 violations reported together", report.Len())
	}

	codes := report.Codes()
	if len(codes) != 2 || codes[0] != CodeBadVerb || codes[1] != CodeBadArgument {
		t.Errorf("Codes() = %v, want [badVerb badArgument] in check order", codes)
	}
}

func TestValidateIllegalArgumentNotAlsoRepeated(t *testing.T) {
	// Repetition applies to legal arguments only; an illegal name that
	// repeats is reported once per distinct violation class, not per
	// occurrence.
	_, report := parseAndValidate(t, "verb=Identify&bogus=1&bogus=2")
	if report == nil {
		t.Fatal("request should fail validation")
	}
	msgs := report.Messages(CodeBadArgument)
	if len(msgs) != 1 {
		t.Errorf("Messages(badArgument) = %v, want a single illegal-argument message", msgs)
	}
}

func TestValidateEmptyKeyIsIllegal(t *testing.T) {
	_, report := parseAndValidate(t, "verb=Identify&=orphan")
	if report == nil {
		t.Fatal("empty argument name should fail validation")
	}
	if !report.Has(CodeBadArgument) {
		t.Errorf("Codes() = %v, want badArgument", report.Codes())
	}
}

func TestValidateReportIsTheError(t *testing.T) {
	q, err := ParseQuery("verb=Nope")
	if err != nil {
		t.Fatal(err)
	}
	req, err := Validate(q)
	if req != nil {
		t.Error("failed validation must not return a request")
	}
	if err == nil {
		t.Fatal("failed validation must return an error")
	}
	if !strings.Contains(err.Error(), "badVerb") {
		t.Errorf("Error() = %q, should mention the code", err.Error())
	}
}

func TestValidateRequestCarriesArguments(t *testing.T) {
	req, report := parseAndValidate(t, "verb=GetRecord&identifier=oai:example.org:1&metadataPrefix=oai_dc")
	if report != nil {
		t.Fatalf("unexpected report: %v", report)
	}
	if req.Identifier() != "oai:example.org:1" {
		t.Errorf("Identifier() = %q", req.Identifier())
	}
	if req.MetadataPrefix() != "oai_dc" {
		t.Errorf("MetadataPrefix() = %q", req.MetadataPrefix())
	}
	if req.Has(ArgSet) {
		t.Error("set was not in the request")
	}
	if v, ok := req.Argument(ArgIdentifier); !ok || v != "oai:example.org:1" {
		t.Errorf("Argument(identifier) = %q, %v", v, ok)
	}
}
