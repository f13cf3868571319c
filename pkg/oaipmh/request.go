package oaipmh

// Request is a protocol request that passed Validate: a legal verb plus
// the legal arguments that were present. Values are carried as received;
// per-verb applicability and value grammar are judged by
// ValidateArguments.
type Request struct {
	verb      Verb
	arguments map[Argument]string
}

func newRequest(q *Query) *Request {
	args := make(map[Argument]string)
	for _, a := range ArgumentOrder {
		if q.Has(string(a)) {
			args[a] = q.Get(string(a))
		}
	}
	return &Request{verb: Verb(q.Get(string(ArgVerb))), arguments: args}
}

// NewRequest builds a request directly from a verb and argument map,
// bypassing query parsing. Intended for tests and programmatic callers;
// values are still subject to ValidateArguments.
func NewRequest(verb Verb, arguments map[Argument]string) *Request {
	args := make(map[Argument]string, len(arguments))
	for a, v := range arguments {
		if a != ArgVerb && a.IsValid() {
			args[a] = v
		}
	}
	return &Request{verb: verb, arguments: args}
}

// Verb returns the request verb.
func (r *Request) Verb() Verb {
	return r.verb
}

// Has reports whether the argument was present in the request, even with
// an empty value.
func (r *Request) Has(arg Argument) bool {
	_, ok := r.arguments[arg]
	return ok
}

// Argument returns the value of arg and whether it was present.
func (r *Request) Argument(arg Argument) (string, bool) {
	v, ok := r.arguments[arg]
	return v, ok
}

// Arguments returns a copy of the present non-verb arguments.
func (r *Request) Arguments() map[Argument]string {
	out := make(map[Argument]string, len(r.arguments))
	for a, v := range r.arguments {
		out[a] = v
	}
	return out
}

// Identifier returns the identifier argument, or "" when absent.
func (r *Request) Identifier() string {
	return r.arguments[ArgIdentifier]
}

// MetadataPrefix returns the metadataPrefix argument, or "" when absent.
func (r *Request) MetadataPrefix() string {
	return r.arguments[ArgMetadataPrefix]
}

// From returns the from argument, or "" when absent.
func (r *Request) From() string {
	return r.arguments[ArgFrom]
}

// Until returns the until argument, or "" when absent.
func (r *Request) Until() string {
	return r.arguments[ArgUntil]
}

// Set returns the set argument, or "" when absent.
func (r *Request) Set() string {
	return r.arguments[ArgSet]
}

// ResumptionToken returns the resumptionToken argument, or "" when
// absent.
func (r *Request) ResumptionToken() string {
	return r.arguments[ArgResumptionToken]
}
