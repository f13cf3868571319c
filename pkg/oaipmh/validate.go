package oaipmh

// Validate runs the protocol's request-level checks against a tokenized
// query and returns the validated request, or a *Report carrying every
// violation found. The checks run in a fixed order and none of them
// short-circuits, so a request that is wrong in four ways yields a report
// with four messages.
//
// The checks:
//
//  1. the verb argument must be present (badVerb)
//  2. the verb argument must not repeat (badVerb)
//  3. the verb's value must be a legal verb (badVerb)
//  4. every argument name must be legal (badArgument, one per offender)
//  5. no legal argument other than verb may repeat (badArgument)
//
// Per-verb argument applicability is a second stage; see
// ValidateArguments.
func Validate(q *Query) (*Request, error) {
	report := NewReport()

	verbKey := string(ArgVerb)
	switch n := q.Count(verbKey); {
	case n == 0:
		report.Add(CodeBadVerb, "the request is missing the verb argument")
	case n > 1:
		report.Add(CodeBadVerb, "the verb argument is repeated %d times", n)
	}
	if q.Has(verbKey) {
		if v := q.Get(verbKey); !Verb(v).IsValid() {
			report.Add(CodeBadVerb, "%q is not a legal OAI-PMH verb", v)
		}
	}

	for _, key := range q.Keys() {
		if !Argument(key).IsValid() {
			report.Add(CodeBadArgument, "%q is not a legal request argument", key)
		}
	}

	for _, key := range q.Keys() {
		if key == verbKey || !Argument(key).IsValid() {
			continue
		}
		if n := q.Count(key); n > 1 {
			report.Add(CodeBadArgument, "the %s argument is repeated %d times", key, n)
		}
	}

	if report.HasErrors() {
		return nil, report
	}
	return newRequest(q), nil
}
