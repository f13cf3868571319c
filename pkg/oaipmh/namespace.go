package oaipmh

// Namespace binds an XML prefix to a namespace URI.
type Namespace struct {
	prefix NamespacePrefix
	uri    AnyURI
}

// NewNamespace pairs a validated prefix with a validated URI. Both halves
// carry their own grammar, so construction cannot fail.
func NewNamespace(prefix NamespacePrefix, uri AnyURI) Namespace {
	return Namespace{prefix: prefix, uri: uri}
}

// Prefix returns the bound XML prefix.
func (n Namespace) Prefix() NamespacePrefix {
	return n.prefix
}

// URI returns the namespace URI.
func (n Namespace) URI() AnyURI {
	return n.uri
}

// Equal reports whether both prefix and URI match.
func (n Namespace) Equal(other Namespace) bool {
	return n.prefix.Equal(other.prefix) && n.uri.Equal(other.uri)
}

// Namespaces is a non-empty collection of namespace bindings with unique
// prefixes and unique URIs. Iteration order is insertion order; equality
// ignores order.
type Namespaces struct {
	entries []Namespace
}

// NewNamespaces builds a collection from one or more bindings. It fails
// with ErrEmptyCollection when no entries are given and ErrDuplicateValue
// when a prefix or URI repeats.
func NewNamespaces(entries ...Namespace) (Namespaces, error) {
	if len(entries) == 0 {
		return Namespaces{}, ErrEmptyCollection
	}
	prefixes := make(map[string]bool, len(entries))
	uris := make(map[string]bool, len(entries))
	kept := make([]Namespace, 0, len(entries))
	for _, entry := range entries {
		p := entry.Prefix().String()
		u := entry.URI().String()
		if prefixes[p] {
			return Namespaces{}, newDuplicateError("namespace prefix", p)
		}
		if uris[u] {
			return Namespaces{}, newDuplicateError("namespace URI", u)
		}
		prefixes[p] = true
		uris[u] = true
		kept = append(kept, entry)
	}
	return Namespaces{entries: kept}, nil
}

// All returns the bindings in insertion order.
func (ns Namespaces) All() []Namespace {
	out := make([]Namespace, len(ns.entries))
	copy(out, ns.entries)
	return out
}

// Len returns the number of bindings.
func (ns Namespaces) Len() int {
	return len(ns.entries)
}

// ByPrefix returns the binding for prefix and whether one exists.
func (ns Namespaces) ByPrefix(prefix NamespacePrefix) (Namespace, bool) {
	for _, entry := range ns.entries {
		if entry.Prefix().Equal(prefix) {
			return entry, true
		}
	}
	return Namespace{}, false
}

// Equal reports whether both collections hold the same bindings,
// regardless of insertion order.
func (ns Namespaces) Equal(other Namespaces) bool {
	if len(ns.entries) != len(other.entries) {
		return false
	}
	for _, entry := range ns.entries {
		found, ok := other.ByPrefix(entry.Prefix())
		if !ok || !found.Equal(entry) {
			return false
		}
	}
	return true
}
