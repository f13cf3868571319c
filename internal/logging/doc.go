// Package logging provides concrete implementations of the oaipmh.Logger
// interface.
//
// Available implementations:
//   - ConsoleLogger: writes tagged lines to an injected writer, stderr by
//     default
//   - NullLogger: discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple
// goroutines.
package logging
