package oaipmh

import (
	"regexp"
	"strings"
)

var (
	// XML prefix: a letter or underscore followed by name characters.
	namespacePrefixPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

	// metadataPrefix and setSpec segments share the URI-unreserved
	// character class from the protocol schema.
	metadataPrefixPattern = regexp.MustCompile(`^[A-Za-z0-9\-_.!~*'()]+$`)
)

// NamespacePrefix is the short XML prefix bound to a metadata namespace,
// such as "dc" or "oai_dc".
type NamespacePrefix struct {
	value string
}

// NewNamespacePrefix validates s as an XML namespace prefix.
func NewNamespacePrefix(s string) (NamespacePrefix, error) {
	if !namespacePrefixPattern.MatchString(s) {
		return NamespacePrefix{}, newFormatError("namespacePrefix", s, "must start with a letter or underscore followed by letters, digits, '_', '.' or '-'")
	}
	return NamespacePrefix{value: s}, nil
}

func (p NamespacePrefix) String() string {
	return p.value
}

// Equal reports value equality.
func (p NamespacePrefix) Equal(other NamespacePrefix) bool {
	return p.value == other.value
}

// MetadataPrefix is the short name a harvester uses to request a metadata
// format, such as "oai_dc" or "marc21".
type MetadataPrefix struct {
	value string
}

// NewMetadataPrefix validates s against the protocol's metadataPrefix
// grammar: one or more URI-unreserved characters.
func NewMetadataPrefix(s string) (MetadataPrefix, error) {
	if !metadataPrefixPattern.MatchString(s) {
		return MetadataPrefix{}, newFormatError("metadataPrefix", s, "must be one or more letters, digits or URI mark characters")
	}
	return MetadataPrefix{value: s}, nil
}

func (p MetadataPrefix) String() string {
	return p.value
}

// Equal reports value equality.
func (p MetadataPrefix) Equal(other MetadataPrefix) bool {
	return p.value == other.value
}

// RootTag names the root element a metadata payload is serialized under,
// either unqualified ("dc") or prefixed ("oai_dc:dc").
type RootTag struct {
	value string
}

// NewRootTag validates s as an XML element name with at most one prefix
// separator. Both halves of a prefixed name must be valid name tokens.
func NewRootTag(s string) (RootTag, error) {
	prefix, local, qualified := strings.Cut(s, ":")
	if qualified {
		if strings.Contains(local, ":") {
			return RootTag{}, newFormatError("rootTag", s, "at most one ':' separator is allowed")
		}
		if !namespacePrefixPattern.MatchString(prefix) || !namespacePrefixPattern.MatchString(local) {
			return RootTag{}, newFormatError("rootTag", s, "prefix and local name must each be valid XML name tokens")
		}
		return RootTag{value: s}, nil
	}
	if !namespacePrefixPattern.MatchString(s) {
		return RootTag{}, newFormatError("rootTag", s, "must be a valid XML name token")
	}
	return RootTag{value: s}, nil
}

func (t RootTag) String() string {
	return t.value
}

// Prefix returns the namespace prefix half of a qualified tag, or "" for
// an unqualified tag.
func (t RootTag) Prefix() string {
	prefix, _, qualified := strings.Cut(t.value, ":")
	if !qualified {
		return ""
	}
	return prefix
}

// Local returns the local element name.
func (t RootTag) Local() string {
	prefix, local, qualified := strings.Cut(t.value, ":")
	if !qualified {
		return prefix
	}
	return local
}

// Equal reports value equality.
func (t RootTag) Equal(other RootTag) bool {
	return t.value == other.value
}

// Identifier is the unique identifier of an item, in URI form as protocol
// section 2.4 requires. Identifiers are opaque: no scheme-specific
// normalization is applied and comparison is exact.
type Identifier struct {
	value string
}

// NewIdentifier validates s as a non-empty anyURI.
func NewIdentifier(s string) (Identifier, error) {
	if s == "" {
		return Identifier{}, newFormatError("identifier", s, "must not be empty")
	}
	if err := checkAnyURI(s); err != nil {
		return Identifier{}, newFormatError("identifier", s, "must be a valid URI")
	}
	return Identifier{value: s}, nil
}

func (id Identifier) String() string {
	return id.value
}

// IsZero reports whether the identifier is the unconstructed zero value.
func (id Identifier) IsZero() bool {
	return id.value == ""
}

// Equal reports value equality.
func (id Identifier) Equal(other Identifier) bool {
	return id.value == other.value
}

// SetSpec is a colon-separated path naming a node in the repository's set
// hierarchy, such as "physics" or "physics:hep".
type SetSpec struct {
	value string
}

// NewSetSpec validates s as one or more non-empty segments separated by
// single colons, each segment drawn from the URI-unreserved class.
func NewSetSpec(s string) (SetSpec, error) {
	if s == "" {
		return SetSpec{}, newFormatError("setSpec", s, "must not be empty")
	}
	for _, segment := range strings.Split(s, ":") {
		if !metadataPrefixPattern.MatchString(segment) {
			return SetSpec{}, newFormatError("setSpec", s, "each colon-separated segment must be one or more letters, digits or URI mark characters")
		}
	}
	return SetSpec{value: s}, nil
}

func (s SetSpec) String() string {
	return s.value
}

// Segments returns the path segments from root to leaf.
func (s SetSpec) Segments() []string {
	if s.value == "" {
		return nil
	}
	return strings.Split(s.value, ":")
}

// Depth returns the number of segments.
func (s SetSpec) Depth() int {
	return len(s.Segments())
}

// Parent returns the setSpec one level up and true, or the zero value
// and false for a top-level setSpec.
func (s SetSpec) Parent() (SetSpec, bool) {
	idx := strings.LastIndex(s.value, ":")
	if idx < 0 {
		return SetSpec{}, false
	}
	return SetSpec{value: s.value[:idx]}, true
}

// Within reports whether s equals ancestor or lies beneath it in the
// hierarchy. Harvesting a set selects every record in its subtree.
func (s SetSpec) Within(ancestor SetSpec) bool {
	return s.value == ancestor.value || strings.HasPrefix(s.value, ancestor.value+":")
}

// Equal reports value equality.
func (s SetSpec) Equal(other SetSpec) bool {
	return s.value == other.value
}
