package oaipmh

// Exit codes returned by the oaipmh CLI.
const (
	// ExitSuccess indicates successful completion.
	ExitSuccess = 0

	// ExitGeneralError indicates an unclassified failure.
	ExitGeneralError = 1

	// ExitUsageError indicates invalid CLI usage or a missing terminal.
	ExitUsageError = 2

	// ExitPanic indicates an internal panic was recovered at top level.
	ExitPanic = 3

	// ExitConfigError indicates the repository configuration is missing
	// or invalid.
	ExitConfigError = 10

	// ExitProtocolError indicates the request failed protocol validation
	// and a protocol error response was produced.
	ExitProtocolError = 12

	// ExitResponseError indicates the response could not be rendered.
	ExitResponseError = 13
)

// Protocol constants (OAI-PMH 2.0).
const (
	// ProtocolVersion is the protocol version implemented by this module.
	ProtocolVersion = "2.0"

	// MaxQueryLength bounds the accepted raw query string, in bytes.
	// Longer requests are rejected wholesale with a badArgument report.
	MaxQueryLength = 1000

	// XMLNamespace is the OAI-PMH response namespace.
	XMLNamespace = "http://www.openarchives.org/OAI/2.0/"

	// XSINamespace is the XML Schema instance namespace used on the
	// response root element.
	XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"

	// SchemaLocation pairs the response namespace with its XSD location.
	SchemaLocation = "http://www.openarchives.org/OAI/2.0/ http://www.openarchives.org/OAI/2.0/OAI-PMH.xsd"
)
