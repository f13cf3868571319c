package oaipmh

// Logger receives diagnostic output from repository operations. The
// domain types themselves never log; loaders, stores and the CLI accept a
// Logger so callers decide where diagnostics go.
type Logger interface {
	// Verbose logs detail that is only interesting when tracing a run.
	Verbose(format string, args ...interface{})

	// Info logs normal progress.
	Info(format string, args ...interface{})

	// Error logs a failure the caller will usually also see as an error
	// return.
	Error(format string, args ...interface{})
}
