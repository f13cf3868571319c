package oaipmh

import (
	"encoding/xml"
	"fmt"
	"sort"
	"time"
)

// Dublin Core namespaces used when rendering set descriptions.
const (
	oaiDCNamespace = "http://www.openarchives.org/OAI/2.0/oai_dc/"
	dcNamespace    = "http://purl.org/dc/elements/1.1/"
)

// Envelope is the OAI-PMH response document. Exactly one of the verb
// bodies is set on success; on failure the Errors list carries one entry
// per accumulated violation.
type Envelope struct {
	XMLName        xml.Name       `xml:"OAI-PMH"`
	Xmlns          string         `xml:"xmlns,attr"`
	XmlnsXSI       string         `xml:"xmlns:xsi,attr"`
	SchemaLocation string         `xml:"xsi:schemaLocation,attr"`
	ResponseDate   string         `xml:"responseDate"`
	Request        RequestElement `xml:"request"`
	Errors         []ErrorElement `xml:"error"`

	Identify            *IdentifyBody            `xml:"Identify"`
	GetRecord           *GetRecordBody           `xml:"GetRecord"`
	ListIdentifiers     *ListIdentifiersBody     `xml:"ListIdentifiers"`
	ListMetadataFormats *ListMetadataFormatsBody `xml:"ListMetadataFormats"`
	ListRecords         *ListRecordsBody         `xml:"ListRecords"`
	ListSets            *ListSetsBody            `xml:"ListSets"`
}

// RequestElement mirrors the request back to the harvester. The element
// text is the repository base URL; the attributes echo the request
// arguments.
type RequestElement struct {
	Verb            string `xml:"verb,attr,omitempty"`
	Identifier      string `xml:"identifier,attr,omitempty"`
	MetadataPrefix  string `xml:"metadataPrefix,attr,omitempty"`
	From            string `xml:"from,attr,omitempty"`
	Until           string `xml:"until,attr,omitempty"`
	Set             string `xml:"set,attr,omitempty"`
	ResumptionToken string `xml:"resumptionToken,attr,omitempty"`
	BaseURL         string `xml:",chardata"`
}

// ErrorElement is one <error> entry.
type ErrorElement struct {
	Code    string `xml:"code,attr"`
	Message string `xml:",chardata"`
}

// NewEnvelope starts a response for the repository at baseURL, stamping
// responseDate with now at seconds granularity.
func NewEnvelope(baseURL string, now time.Time) *Envelope {
	return &Envelope{
		Xmlns:          XMLNamespace,
		XmlnsXSI:       XSINamespace,
		SchemaLocation: SchemaLocation,
		ResponseDate:   FormatUTC(now, GranularitySeconds).String(),
		Request:        RequestElement{BaseURL: baseURL},
	}
}

// SetRequest echoes the validated request's verb and arguments as request
// element attributes.
func (e *Envelope) SetRequest(req *Request) {
	if req == nil {
		return
	}
	e.Request.Verb = req.Verb().String()
	e.Request.Identifier = req.Identifier()
	e.Request.MetadataPrefix = req.MetadataPrefix()
	e.Request.From = req.From()
	e.Request.Until = req.Until()
	e.Request.Set = req.Set()
	e.Request.ResumptionToken = req.ResumptionToken()
}

// AddReport appends one <error> element per accumulated message, in
// report order. When the report carries badVerb or badArgument the
// request attributes are withheld and only the base URL remains, as
// protocol section 3.2 requires for requests whose arguments cannot be
// trusted.
func (e *Envelope) AddReport(report *Report) {
	if report == nil {
		return
	}
	for _, code := range report.Codes() {
		for _, msg := range report.Messages(code) {
			e.Errors = append(e.Errors, ErrorElement{Code: string(code), Message: msg})
		}
	}
	if report.Has(CodeBadVerb) || report.Has(CodeBadArgument) {
		e.Request = RequestElement{BaseURL: e.Request.BaseURL}
	}
}

// AddError appends a single <error> element.
func (e *Envelope) AddError(code Code, format string, args ...interface{}) {
	report := NewReport()
	report.Add(code, format, args...)
	e.AddReport(report)
}

// HasErrors reports whether any <error> element was added.
func (e *Envelope) HasErrors() bool {
	return len(e.Errors) > 0
}

// Marshal renders the document with an XML declaration and two-space
// indentation.
func (e *Envelope) Marshal() ([]byte, error) {
	out, err := xml.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render response: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// IdentifyBody answers the Identify verb.
type IdentifyBody struct {
	RepositoryName    string   `xml:"repositoryName"`
	BaseURL           string   `xml:"baseURL"`
	ProtocolVersion   string   `xml:"protocolVersion"`
	AdminEmails       []string `xml:"adminEmail"`
	EarliestDatestamp string   `xml:"earliestDatestamp"`
	DeletedRecord     string   `xml:"deletedRecord"`
	Granularity       string   `xml:"granularity"`
}

// GetRecordBody answers the GetRecord verb.
type GetRecordBody struct {
	Record RecordElement `xml:"record"`
}

// ListRecordsBody answers the ListRecords verb.
type ListRecordsBody struct {
	Records []RecordElement `xml:"record"`
}

// ListIdentifiersBody answers the ListIdentifiers verb.
type ListIdentifiersBody struct {
	Headers []HeaderElement `xml:"header"`
}

// ListMetadataFormatsBody answers the ListMetadataFormats verb.
type ListMetadataFormatsBody struct {
	Formats []MetadataFormatElement `xml:"metadataFormat"`
}

// ListSetsBody answers the ListSets verb.
type ListSetsBody struct {
	Sets []SetElement `xml:"set"`
}

// HeaderElement is one <header>, with status="deleted" when the item is
// gone.
type HeaderElement struct {
	Status     string   `xml:"status,attr,omitempty"`
	Identifier string   `xml:"identifier"`
	Datestamp  string   `xml:"datestamp"`
	SetSpecs   []string `xml:"setSpec"`
}

// NewHeaderElement renders a header entity.
func NewHeaderElement(h Header) HeaderElement {
	el := HeaderElement{
		Identifier: h.Identifier().String(),
		Datestamp:  h.Datestamp().String(),
	}
	if h.IsDeleted() {
		el.Status = "deleted"
	}
	for _, s := range h.Sets() {
		el.SetSpecs = append(el.SetSpecs, s.String())
	}
	return el
}

// RecordElement is one <record>: header plus the metadata payload when
// the record carries one.
type RecordElement struct {
	Header   HeaderElement    `xml:"header"`
	Metadata *MetadataPayload `xml:"metadata"`
}

// NewRecordElement renders a record in the given format. Deleted records
// render as a bare header.
func NewRecordElement(r Record, format MetadataFormat) RecordElement {
	el := RecordElement{Header: NewHeaderElement(r.Header())}
	if r.HasMetadata() {
		el.Metadata = NewMetadataPayload(r.Metadata(), format)
	}
	return el
}

// MetadataPayload renders a field map under the format's root tag with
// the format's namespace declarations. Field keys are emitted verbatim as
// element names, sorted for stable output.
type MetadataPayload struct {
	root   string
	attrs  []xml.Attr
	fields []payloadField
}

type payloadField struct {
	name  string
	value string
}

// NewMetadataPayload prepares a payload for rendering.
func NewMetadataPayload(fields map[string]string, format MetadataFormat) *MetadataPayload {
	p := &MetadataPayload{root: format.RootTag().String()}
	for _, ns := range format.Namespaces().All() {
		p.attrs = append(p.attrs, xml.Attr{
			Name:  xml.Name{Local: "xmlns:" + ns.Prefix().String()},
			Value: ns.URI().String(),
		})
	}
	p.attrs = append(p.attrs,
		xml.Attr{Name: xml.Name{Local: "xmlns:xsi"}, Value: XSINamespace},
		xml.Attr{Name: xml.Name{Local: "xsi:schemaLocation"}, Value: primaryNamespace(format) + " " + format.Schema().String()},
	)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p.fields = append(p.fields, payloadField{name: name, value: fields[name]})
	}
	return p
}

// MarshalXML writes the wrapping element, the payload root with its
// namespace attributes, and one element per field.
func (p *MetadataPayload) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	root := xml.StartElement{Name: xml.Name{Local: p.root}, Attr: p.attrs}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	for _, f := range p.fields {
		el := xml.StartElement{Name: xml.Name{Local: f.name}}
		if err := enc.EncodeElement(f.value, el); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

// primaryNamespace picks the namespace URI paired with the schema in
// xsi:schemaLocation: the one bound to the root tag's prefix when it has
// one, otherwise the first declared namespace.
func primaryNamespace(format MetadataFormat) string {
	if prefix := format.RootTag().Prefix(); prefix != "" {
		if p, err := NewNamespacePrefix(prefix); err == nil {
			if ns, ok := format.Namespaces().ByPrefix(p); ok {
				return ns.URI().String()
			}
		}
	}
	if entries := format.Namespaces().All(); len(entries) > 0 {
		return entries[0].URI().String()
	}
	return ""
}

// MetadataFormatElement is one <metadataFormat> entry.
type MetadataFormatElement struct {
	Prefix    string `xml:"metadataPrefix"`
	Schema    string `xml:"schema"`
	Namespace string `xml:"metadataNamespace"`
}

// NewMetadataFormatElement renders a format description. The advertised
// namespace is the format's primary one.
func NewMetadataFormatElement(f MetadataFormat) MetadataFormatElement {
	return MetadataFormatElement{
		Prefix:    f.Prefix().String(),
		Schema:    f.Schema().String(),
		Namespace: primaryNamespace(f),
	}
}

// SetElement is one <set> entry. The description, when present, is
// wrapped in an oai_dc container as the protocol suggests.
type SetElement struct {
	Spec        string                 `xml:"setSpec"`
	Name        string                 `xml:"setName"`
	Description *SetDescriptionElement `xml:"setDescription"`
}

// SetDescriptionElement carries a Dublin Core description of a set.
type SetDescriptionElement struct {
	Container DCContainer `xml:"oai_dc:dc"`
}

// DCContainer is the oai_dc wrapper used inside set descriptions.
type DCContainer struct {
	XmlnsOAIDC  string `xml:"xmlns:oai_dc,attr"`
	XmlnsDC     string `xml:"xmlns:dc,attr"`
	Description string `xml:"dc:description"`
}

// NewSetElement renders a set entity. Sets without a description render
// without a <setDescription> element.
func NewSetElement(s Set) SetElement {
	el := SetElement{
		Spec: s.Spec().String(),
		Name: s.Name(),
	}
	if desc, ok := s.Description(); ok {
		el.Description = &SetDescriptionElement{
			Container: DCContainer{
				XmlnsOAIDC:  oaiDCNamespace,
				XmlnsDC:     dcNamespace,
				Description: desc,
			},
		}
	}
	return el
}
