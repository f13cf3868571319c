package oaipmh

// Set is one node of the repository's set hierarchy: a machine-readable
// spec, a human-readable name and an optional description.
type Set struct {
	spec        SetSpec
	name        string
	description string
}

// NewSet assembles a set. An empty description means the set has none;
// it is never rendered as an empty element.
func NewSet(spec SetSpec, name, description string) Set {
	return Set{spec: spec, name: name, description: description}
}

// Spec returns the set's position in the hierarchy.
func (s Set) Spec() SetSpec {
	return s.spec
}

// Name returns the human-readable set name.
func (s Set) Name() string {
	return s.name
}

// Description returns the description and whether the set has one.
func (s Set) Description() (string, bool) {
	if s.description == "" {
		return "", false
	}
	return s.description, true
}

// Equal reports set identity: two sets are the same set exactly when
// their specs match. Name and description do not participate.
func (s Set) Equal(other Set) bool {
	return s.spec.Equal(other.spec)
}
