package oaipmh

import (
	"fmt"
	"strings"
)

// Report accumulates protocol violations grouped by error code. Codes keep
// the order in which they were first added, and messages keep insertion
// order within each code, so a response renders violations in the order
// the checks found them.
//
// Report implements error; retrieve it from a returned error with
// errors.As to inspect individual codes and messages.
type Report struct {
	order    []Code
	messages map[Code][]string
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{messages: make(map[Code][]string)}
}

// Add records one violation under code. The message is built with
// fmt.Sprintf when args are given.
func (r *Report) Add(code Code, format string, args ...interface{}) {
	if _, seen := r.messages[code]; !seen {
		r.order = append(r.order, code)
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	r.messages[code] = append(r.messages[code], msg)
}

// Merge appends every entry of other into r, preserving both orders.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	for _, code := range other.order {
		for _, msg := range other.messages[code] {
			r.Add(code, "%s", msg)
		}
	}
}

// HasErrors reports whether at least one violation was recorded.
func (r *Report) HasErrors() bool {
	return len(r.order) > 0
}

// Len returns the total number of recorded messages across all codes.
func (r *Report) Len() int {
	n := 0
	for _, msgs := range r.messages {
		n += len(msgs)
	}
	return n
}

// Codes returns the recorded codes in first-seen order.
func (r *Report) Codes() []Code {
	out := make([]Code, len(r.order))
	copy(out, r.order)
	return out
}

// Messages returns the messages recorded under code, in insertion order.
func (r *Report) Messages(code Code) []string {
	msgs := r.messages[code]
	out := make([]string, len(msgs))
	copy(out, msgs)
	return out
}

// Has reports whether any violation was recorded under code.
func (r *Report) Has(code Code) bool {
	return len(r.messages[code]) > 0
}

// Error renders every violation as "code: message" pairs joined with
// semicolons, in report order.
func (r *Report) Error() string {
	if !r.HasErrors() {
		return "no protocol violations"
	}
	var b strings.Builder
	for _, code := range r.order {
		for _, msg := range r.messages[code] {
			if b.Len() > 0 {
				b.WriteString("; ")
			}
			b.WriteString(string(code))
			b.WriteString(": ")
			b.WriteString(msg)
		}
	}
	return b.String()
}
