package oaipmh

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for failure classification. Wrap these with fmt.Errorf
// and %w so callers can test with errors.Is.
var (
	// ErrInvalidFormat indicates a scalar value that does not satisfy its
	// protocol grammar.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrEmptyCollection indicates a namespace collection constructed
	// without any entries.
	ErrEmptyCollection = errors.New("empty namespace collection")

	// ErrDuplicateValue indicates a duplicate prefix, URI, identifier or
	// set spec where uniqueness is required.
	ErrDuplicateValue = errors.New("duplicate value")

	// ErrDeletedWithMetadata indicates an attempt to attach a metadata
	// payload to a deleted record.
	ErrDeletedWithMetadata = errors.New("deleted record cannot carry metadata")

	// ErrConfigInvalid indicates a repository configuration that loaded
	// but failed semantic validation.
	ErrConfigInvalid = errors.New("invalid repository configuration")

	// ErrNotInteractive indicates an interactive feature was requested
	// without a usable terminal.
	ErrNotInteractive = errors.New("interactive terminal required")

	// ErrResponseBuild indicates a response document could not be
	// rendered.
	ErrResponseBuild = errors.New("response rendering failed")
)

// Code identifies one of the eight OAI-PMH 2.0 protocol error conditions.
type Code string

// Protocol error codes (OAI-PMH 2.0, section 3.6).
const (
	CodeBadArgument             Code = "badArgument"
	CodeBadResumptionToken      Code = "badResumptionToken"
	CodeBadVerb                 Code = "badVerb"
	CodeCannotDisseminateFormat Code = "cannotDisseminateFormat"
	CodeIDDoesNotExist          Code = "idDoesNotExist"
	CodeNoRecordsMatch          Code = "noRecordsMatch"
	CodeNoMetadataFormats       Code = "noMetadataFormats"
	CodeNoSetHierarchy          Code = "noSetHierarchy"
)

// Codes lists every protocol error code, in the order the protocol
// defines them.
var Codes = []Code{
	CodeBadArgument,
	CodeBadResumptionToken,
	CodeBadVerb,
	CodeCannotDisseminateFormat,
	CodeIDDoesNotExist,
	CodeNoRecordsMatch,
	CodeNoMetadataFormats,
	CodeNoSetHierarchy,
}

// IsValid reports whether c is one of the defined protocol error codes.
func (c Code) IsValid() bool {
	for _, known := range Codes {
		if c == known {
			return true
		}
	}
	return false
}

// ValidationError describes a single value that failed its grammar. It
// wraps a sentinel (usually ErrInvalidFormat or ErrDuplicateValue) so the
// failure class stays testable with errors.Is.
type ValidationError struct {
	Field  string // construct that rejected the value, e.g. "metadataPrefix"
	Value  string // offending input, verbatim
	Reason string // short diagnosis
	err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

func newFormatError(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason, err: ErrInvalidFormat}
}

func newDuplicateError(field, value string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: "already present", err: ErrDuplicateValue}
}

// ExitCodeForError maps an error to a process exit code. Unknown errors
// map to ExitGeneralError; nil maps to ExitSuccess.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var report *Report
	switch {
	case errors.As(err, &report):
		return ExitProtocolError
	case errors.Is(err, ErrConfigInvalid):
		return ExitConfigError
	case errors.Is(err, ErrNotInteractive):
		return ExitUsageError
	case errors.Is(err, ErrResponseBuild):
		return ExitResponseError
	case errors.Is(err, ErrInvalidFormat), errors.Is(err, ErrDuplicateValue),
		errors.Is(err, ErrEmptyCollection), errors.Is(err, ErrDeletedWithMetadata):
		return ExitConfigError
	}

	// Cobra reports usage problems as plain errors; classify them by
	// message shape so the process still exits with a usage code.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "unknown flag"),
		strings.Contains(msg, "unknown shorthand flag"),
		strings.Contains(msg, "unknown command"),
		strings.Contains(msg, "invalid argument"),
		strings.Contains(msg, "required flag"),
		strings.Contains(msg, "missing required argument"),
		strings.Contains(msg, "arg(s), received"):
		return ExitUsageError
	}

	return ExitGeneralError
}
