package oaipmh

import (
	"strings"
	"testing"
	"time"
)

var responseStamp = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

func marshalEnvelope(t *testing.T, env *Envelope) string {
	t.Helper()
	out, err := env.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	return string(out)
}

func TestEnvelopeSkeleton(t *testing.T) {
	env := NewEnvelope("http://repo.example.org/oai", responseStamp)
	env.Identify = &IdentifyBody{
		RepositoryName:    "Example Repository",
		BaseURL:           "http://repo.example.org/oai",
		ProtocolVersion:   ProtocolVersion,
		AdminEmails:       []string{"admin@example.org"},
		EarliestDatestamp: "2020-01-01",
		DeletedRecord:     "persistent",
		Granularity:       GranularityDay.String(),
	}
	env.SetRequest(NewRequest(VerbIdentify, nil))

	got := marshalEnvelope(t, env)
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<OAI-PMH xmlns="http://www.openarchives.org/OAI/2.0/"`,
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"`,
		`xsi:schemaLocation="http://www.openarchives.org/OAI/2.0/ http://www.openarchives.org/OAI/2.0/OAI-PMH.xsd"`,
		`<responseDate>2024-05-01T12:30:00Z</responseDate>`,
		`<request verb="Identify">http://repo.example.org/oai</request>`,
		`<repositoryName>Example Repository</repositoryName>`,
		`<protocolVersion>2.0</protocolVersion>`,
		`<adminEmail>admin@example.org</adminEmail>`,
		`<granularity>YYYY-MM-DD</granularity>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("response missing %q\n%s", want, got)
		}
	}
}

func TestEnvelopeErrorSuppressesRequestAttributes(t *testing.T) {
	env := NewEnvelope("http://repo.example.org/oai", responseStamp)
	env.SetRequest(NewRequest(VerbListRecords, map[Argument]string{ArgFrom: "invalid"}))

	report := NewReport()
	report.Add(CodeBadArgument, "the from value %q is not a valid UTC datestamp", "invalid")
	env.AddReport(report)

	got := marshalEnvelope(t, env)
	if !strings.Contains(got, `<request>http://repo.example.org/oai</request>`) {
		t.Errorf("badArgument response must carry only the base URL in <request>\n%s", got)
	}
	if strings.Contains(got, `verb=`) || strings.Contains(got, `from=`) {
		t.Errorf("request attributes must be withheld on badArgument\n%s", got)
	}
	if !strings.Contains(got, `<error code="badArgument">the from value &#34;invalid&#34; is not a valid UTC datestamp</error>`) {
		t.Errorf("error element missing or mangled\n%s", got)
	}
}

func TestEnvelopeErrorKeepsAttributesForItemErrors(t *testing.T) {
	env := NewEnvelope("http://repo.example.org/oai", responseStamp)
	env.SetRequest(NewRequest(VerbGetRecord, map[Argument]string{
		ArgIdentifier:     "oai:example.org:ghost",
		ArgMetadataPrefix: "oai_dc",
	}))
	env.AddError(CodeIDDoesNotExist, "no item has the identifier %q", "oai:example.org:ghost")

	got := marshalEnvelope(t, env)
	if !strings.Contains(got, `verb="GetRecord"`) || !strings.Contains(got, `identifier="oai:example.org:ghost"`) {
		t.Errorf("idDoesNotExist keeps the request attributes\n%s", got)
	}
	if !strings.Contains(got, `<error code="idDoesNotExist">`) {
		t.Errorf("error element missing\n%s", got)
	}
}

func TestEnvelopeErrorOrderFollowsReport(t *testing.T) {
	env := NewEnvelope("http://repo.example.org/oai", responseStamp)

	report := NewReport()
	report.Add(CodeBadVerb, "first")
	report.Add(CodeBadArgument, "second")
	report.Add(CodeBadVerb, "third")
	env.AddReport(report)

	if len(env.Errors) != 3 {
		t.Fatalf("Errors = %v, want 3 entries", env.Errors)
	}
	if env.Errors[0].Code != "badVerb" || env.Errors[1].Code != "badVerb" || env.Errors[2].Code != "badArgument" {
		t.Errorf("errors should group by first-seen code: %v", env.Errors)
	}
	if !env.HasErrors() {
		t.Error("HasErrors() = false")
	}
}

func testFormat(t *testing.T) MetadataFormat {
	t.Helper()
	dc := mustNamespace(t, "dc", "http://purl.org/dc/elements/1.1/")
	oaiDC := mustNamespace(t, "oai_dc", "http://www.openarchives.org/OAI/2.0/oai_dc/")
	ns, err := NewNamespaces(oaiDC, dc)
	if err != nil {
		t.Fatal(err)
	}
	return mustFormat(t, "oai_dc", ns, "http://www.openarchives.org/OAI/2.0/oai_dc.xsd", "oai_dc:dc")
}

func TestEnvelopeGetRecord(t *testing.T) {
	record, err := NewRecord(
		mustHeader(t, "oai:example.org:1", "2024-04-02T09:00:00Z", false, "physics:hep"),
		map[string]string{
			"dc:title":   "Proofs & <Refutations>",
			"dc:creator": "Lakatos, I.",
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	env := NewEnvelope("http://repo.example.org/oai", responseStamp)
	env.SetRequest(NewRequest(VerbGetRecord, map[Argument]string{
		ArgIdentifier:     "oai:example.org:1",
		ArgMetadataPrefix: "oai_dc",
	}))
	env.GetRecord = &GetRecordBody{Record: NewRecordElement(record, testFormat(t))}

	got := marshalEnvelope(t, env)
	for _, want := range []string{
		`<identifier>oai:example.org:1</identifier>`,
		`<datestamp>2024-04-02T09:00:00Z</datestamp>`,
		`<setSpec>physics:hep</setSpec>`,
		`xmlns:oai_dc="http://www.openarchives.org/OAI/2.0/oai_dc/"`,
		`xmlns:dc="http://purl.org/dc/elements/1.1/"`,
		`xsi:schemaLocation="http://www.openarchives.org/OAI/2.0/oai_dc/ http://www.openarchives.org/OAI/2.0/oai_dc.xsd"`,
		`<dc:title>Proofs &amp; &lt;Refutations&gt;</dc:title>`,
		`</oai_dc:dc>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("response missing %q\n%s", want, got)
		}
	}

	// Payload fields render in sorted order.
	creator := strings.Index(got, "<dc:creator>")
	title := strings.Index(got, "<dc:title>")
	if creator < 0 || title < 0 || creator > title {
		t.Errorf("payload fields should be sorted by name\n%s", got)
	}
}

func TestEnvelopeDeletedRecord(t *testing.T) {
	record, err := NewRecord(mustHeader(t, "oai:example.org:2", "2024-03-01", true, "physics"), nil)
	if err != nil {
		t.Fatal(err)
	}

	env := NewEnvelope("http://repo.example.org/oai", responseStamp)
	env.GetRecord = &GetRecordBody{Record: NewRecordElement(record, testFormat(t))}

	got := marshalEnvelope(t, env)
	if !strings.Contains(got, `<header status="deleted">`) {
		t.Errorf("deleted record needs status attribute\n%s", got)
	}
	if strings.Contains(got, "<metadata>") {
		t.Errorf("deleted record must not render a metadata element\n%s", got)
	}
}

func TestEnvelopeListSets(t *testing.T) {
	physics, _ := NewSetSpec("physics")
	hep, _ := NewSetSpec("physics:hep")

	env := NewEnvelope("http://repo.example.org/oai", responseStamp)
	env.ListSets = &ListSetsBody{Sets: []SetElement{
		NewSetElement(NewSet(physics, "Physics", "Everything physical")),
		NewSetElement(NewSet(hep, "High Energy Physics", "")),
	}}

	got := marshalEnvelope(t, env)
	for _, want := range []string{
		`<setSpec>physics</setSpec>`,
		`<setName>Physics</setName>`,
		`<dc:description>Everything physical</dc:description>`,
		`xmlns:oai_dc="http://www.openarchives.org/OAI/2.0/oai_dc/"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("response missing %q\n%s", want, got)
		}
	}
	if strings.Count(got, "<setDescription>") != 1 {
		t.Errorf("only the described set renders a <setDescription>\n%s", got)
	}
}

func TestEnvelopeListMetadataFormats(t *testing.T) {
	env := NewEnvelope("http://repo.example.org/oai", responseStamp)
	env.ListMetadataFormats = &ListMetadataFormatsBody{
		Formats: []MetadataFormatElement{NewMetadataFormatElement(testFormat(t))},
	}

	got := marshalEnvelope(t, env)
	for _, want := range []string{
		`<metadataPrefix>oai_dc</metadataPrefix>`,
		`<schema>http://www.openarchives.org/OAI/2.0/oai_dc.xsd</schema>`,
		`<metadataNamespace>http://www.openarchives.org/OAI/2.0/oai_dc/</metadataNamespace>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("response missing %q\n%s", want, got)
		}
	}
}

func TestNewHeaderElement(t *testing.T) {
	el := NewHeaderElement(mustHeader(t, "oai:example.org:9", "2024-01-15", true, "a", "b"))
	if el.Status != "deleted" {
		t.Errorf("Status = %q, want deleted", el.Status)
	}
	if el.Identifier != "oai:example.org:9" || el.Datestamp != "2024-01-15" {
		t.Errorf("element = %+v", el)
	}
	if len(el.SetSpecs) != 2 || el.SetSpecs[0] != "a" {
		t.Errorf("SetSpecs = %v", el.SetSpecs)
	}
}
