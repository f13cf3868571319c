package oaipmh

// MetadataFormat describes one format a repository can disseminate: the
// prefix harvesters request it by, the namespaces its payloads use, the
// XSD that validates them, and the root element they are serialized under.
type MetadataFormat struct {
	prefix     MetadataPrefix
	namespaces Namespaces
	schema     AnyURI
	rootTag    RootTag
}

// NewMetadataFormat assembles a format description from already validated
// parts.
func NewMetadataFormat(prefix MetadataPrefix, namespaces Namespaces, schema AnyURI, rootTag RootTag) MetadataFormat {
	return MetadataFormat{prefix: prefix, namespaces: namespaces, schema: schema, rootTag: rootTag}
}

// Prefix returns the metadataPrefix harvesters use to request the format.
func (f MetadataFormat) Prefix() MetadataPrefix {
	return f.prefix
}

// Namespaces returns the namespace bindings of the format's payloads.
func (f MetadataFormat) Namespaces() Namespaces {
	return f.namespaces
}

// Schema returns the location of the XSD validating the payloads.
func (f MetadataFormat) Schema() AnyURI {
	return f.schema
}

// RootTag returns the element payloads are serialized under.
func (f MetadataFormat) RootTag() RootTag {
	return f.rootTag
}

// Equal reports whether every component matches. Namespace comparison
// ignores order.
func (f MetadataFormat) Equal(other MetadataFormat) bool {
	return f.prefix.Equal(other.prefix) &&
		f.schema.Equal(other.schema) &&
		f.rootTag.Equal(other.rootTag) &&
		f.namespaces.Equal(other.namespaces)
}
