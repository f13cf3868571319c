// Package oaipmh implements the domain core of an OAI-PMH 2.0 provider:
// strictly validated protocol value objects, the record/header/set entities
// they qualify, and a request-validation pipeline that turns a raw query
// string into a verified request or a complete multi-error report.
//
// # Value Objects
//
// Every protocol scalar is a small immutable type whose constructor either
// returns a fully valid value or a *ValidationError:
//
//   - AnyURI: XML Schema anyURI conformance
//   - NamespacePrefix: XML-name-like prefix
//   - MetadataPrefix: metadata format short name (e.g. "oai_dc")
//   - RootTag: optional prefix:local qualified name
//   - Identifier: unique item identifier (URI form)
//   - SetSpec: colon-separated hierarchical set path
//   - UTCDatetime: day- or second-granularity UTC timestamp
//
// No normalization is performed; validation is case-sensitive and exact,
// and the stored value always equals the accepted input.
//
// # Request Pipeline
//
// ParseQuery tokenizes a raw query string (bounded at MaxQueryLength) and
// Validate runs the protocol's verb/argument checks. Every violation is
// collected before reporting, matching the OAI-PMH requirement that error
// responses list all problems at once:
//
//	q, err := oaipmh.ParseQuery("verb=ListRecords&metadataPrefix=oai_dc")
//	if err != nil { ... } // over-long request, already a *Report
//	req, err := oaipmh.Validate(q)
//	var report *oaipmh.Report
//	if errors.As(err, &report) {
//	    for _, code := range report.Codes() { ... }
//	}
//
// ValidateArguments applies the per-verb argument rules of protocol
// section 4 to a validated request, with the same aggregation semantics.
//
// # Responses
//
// Envelope renders the OAI-PMH XML envelope: responseDate, the request
// element, one <error> element per accumulated message, and the verb
// response bodies.
//
// All types in this package are immutable after construction and safe for
// concurrent use without locking.
package oaipmh
