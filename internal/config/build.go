package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pslits/oai-pmh-sub003/internal/archive"
	"github.com/pslits/oai-pmh-sub003/internal/logging"
	"github.com/pslits/oai-pmh-sub003/pkg/oaipmh"
)

// Build validates every section of the file and seeds an archive store
// from it. Validation does not stop at the first problem: all invalid
// sections are reported together in one joined error, each entry wrapping
// oaipmh.ErrConfigInvalid.
func (f *File) Build(logger oaipmh.Logger) (*archive.Store, error) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	var errs []error
	invalid := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), oaipmh.ErrConfigInvalid))
	}

	identity := buildIdentity(f.Repository, invalid)

	formats := make([]oaipmh.MetadataFormat, 0, len(f.Formats))
	for i, section := range f.Formats {
		if format, ok := buildFormat(i, section, invalid); ok {
			formats = append(formats, format)
		}
	}

	sets := make([]oaipmh.Set, 0, len(f.Sets))
	for i, section := range f.Sets {
		if set, ok := buildSet(i, section, invalid); ok {
			sets = append(sets, set)
		}
	}

	items := make([]archive.Item, 0, len(f.Records))
	for i, section := range f.Records {
		if item, ok := buildItem(i, section, identity, invalid); ok {
			items = append(items, item)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	store, err := archive.NewStore(identity, formats, sets)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, oaipmh.ErrConfigInvalid)
	}
	for i, item := range items {
		if err := store.Add(item); err != nil {
			invalid("records[%d]: %v", i, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	logger.Verbose("repository %q: %d formats, %d sets, %d records",
		identity.Name, len(formats), len(sets), store.Len())
	return store, nil
}

func buildIdentity(section RepositorySection, invalid func(string, ...interface{})) archive.Identity {
	identity := archive.Identity{
		Name:        section.Name,
		NamespaceID: section.NamespaceID,
	}

	if strings.TrimSpace(section.Name) == "" {
		invalid("repository: name is required")
	}

	base, err := oaipmh.NewAnyURI(section.BaseURL)
	switch {
	case section.BaseURL == "":
		invalid("repository: base_url is required")
	case err != nil:
		invalid("repository: base_url: %v", err)
	default:
		identity.BaseURL = base
	}

	if len(section.AdminEmails) == 0 {
		invalid("repository: at least one admin email is required")
	}
	for i, email := range section.AdminEmails {
		if !strings.Contains(email, "@") {
			invalid("repository: admin_emails[%d] %q is not an email address", i, email)
			continue
		}
		identity.AdminEmails = append(identity.AdminEmails, email)
	}

	if err := archive.ValidateNamespaceID(section.NamespaceID); err != nil {
		invalid("repository: namespace_identifier: %v", err)
	}

	switch section.Granularity {
	case "":
		identity.Granularity = oaipmh.GranularityDay
	default:
		g, err := oaipmh.ParseGranularity(section.Granularity)
		if err != nil {
			invalid("repository: granularity: %v", err)
		} else {
			identity.Granularity = g
		}
	}

	earliest, err := oaipmh.NewUTCDatetime(section.EarliestDatestamp)
	switch {
	case err != nil:
		invalid("repository: earliest_datestamp: %v", err)
	case earliest.Granularity() != identity.Granularity:
		invalid("repository: earliest_datestamp %q does not use the repository granularity %s",
			section.EarliestDatestamp, identity.Granularity)
	default:
		identity.Earliest = earliest
	}

	switch section.DeletedRecord {
	case "":
		identity.DeletedRecord = archive.DeletedRecordNo
	case archive.DeletedRecordNo, archive.DeletedRecordTransient, archive.DeletedRecordPersistent:
		identity.DeletedRecord = section.DeletedRecord
	default:
		invalid("repository: deleted_record %q must be no, transient or persistent", section.DeletedRecord)
	}

	return identity
}

func buildFormat(i int, section FormatSection, invalid func(string, ...interface{})) (oaipmh.MetadataFormat, bool) {
	at := fmt.Sprintf("formats[%d]", i)
	if section.Prefix != "" {
		at = fmt.Sprintf("formats[%d] (%s)", i, section.Prefix)
	}
	ok := true

	prefix, err := oaipmh.NewMetadataPrefix(section.Prefix)
	if err != nil {
		invalid("%s: prefix: %v", at, err)
		ok = false
	}
	schema, err := oaipmh.NewAnyURI(section.Schema)
	switch {
	case section.Schema == "":
		invalid("%s: schema is required", at)
		ok = false
	case err != nil:
		invalid("%s: schema: %v", at, err)
		ok = false
	}
	rootTag, err := oaipmh.NewRootTag(section.RootTag)
	if err != nil {
		invalid("%s: root_tag: %v", at, err)
		ok = false
	}

	entries := make([]oaipmh.Namespace, 0, len(section.Namespaces))
	for j, ns := range section.Namespaces {
		nsPrefix, err := oaipmh.NewNamespacePrefix(ns.Prefix)
		if err != nil {
			invalid("%s: namespaces[%d]: prefix: %v", at, j, err)
			ok = false
			continue
		}
		nsURI, err := oaipmh.NewAnyURI(ns.URI)
		if err != nil || ns.URI == "" {
			invalid("%s: namespaces[%d]: uri %q is not a valid URI", at, j, ns.URI)
			ok = false
			continue
		}
		entries = append(entries, oaipmh.NewNamespace(nsPrefix, nsURI))
	}
	namespaces, err := oaipmh.NewNamespaces(entries...)
	if err != nil {
		invalid("%s: namespaces: %v", at, err)
		ok = false
	}

	if !ok {
		return oaipmh.MetadataFormat{}, false
	}
	return oaipmh.NewMetadataFormat(prefix, namespaces, schema, rootTag), true
}

func buildSet(i int, section SetSection, invalid func(string, ...interface{})) (oaipmh.Set, bool) {
	at := fmt.Sprintf("sets[%d]", i)
	if section.Spec != "" {
		at = fmt.Sprintf("sets[%d] (%s)", i, section.Spec)
	}
	ok := true

	spec, err := oaipmh.NewSetSpec(section.Spec)
	if err != nil {
		invalid("%s: spec: %v", at, err)
		ok = false
	}
	if strings.TrimSpace(section.Name) == "" {
		invalid("%s: name is required", at)
		ok = false
	}

	if !ok {
		return oaipmh.Set{}, false
	}
	return oaipmh.NewSet(spec, section.Name, section.Description), true
}

func buildItem(i int, section RecordSection, identity archive.Identity, invalid func(string, ...interface{})) (archive.Item, bool) {
	at := fmt.Sprintf("records[%d]", i)
	if section.Identifier != "" {
		at = fmt.Sprintf("records[%d] (%s)", i, section.Identifier)
	}
	ok := true

	var identifier oaipmh.Identifier
	var err error
	switch {
	case section.Identifier != "":
		identifier, err = oaipmh.NewIdentifier(section.Identifier)
		if err != nil {
			invalid("%s: identifier: %v", at, err)
			ok = false
		}
	case section.SourceKey != "":
		identifier, err = archive.MintIdentifier(identity.NamespaceID, section.SourceKey)
		if err != nil {
			invalid("%s: source_key: %v", at, err)
			ok = false
		}
	default:
		invalid("%s: either identifier or source_key is required", at)
		ok = false
	}

	datestamp, err := oaipmh.NewUTCDatetime(section.Datestamp)
	if err != nil {
		invalid("%s: datestamp: %v", at, err)
		ok = false
	}

	var specs []oaipmh.SetSpec
	for j, raw := range section.Sets {
		spec, err := oaipmh.NewSetSpec(raw)
		if err != nil {
			invalid("%s: sets[%d]: %v", at, j, err)
			ok = false
			continue
		}
		specs = append(specs, spec)
	}

	var format oaipmh.MetadataPrefix
	switch {
	case section.Format != "":
		format, err = oaipmh.NewMetadataPrefix(section.Format)
		if err != nil {
			invalid("%s: format: %v", at, err)
			ok = false
		}
	case len(section.Fields) > 0:
		invalid("%s: format is required when fields are given", at)
		ok = false
	}

	if !ok {
		return archive.Item{}, false
	}

	header := oaipmh.NewHeader(identifier, datestamp, section.Deleted, specs)
	var payload map[string]string
	if len(section.Fields) > 0 {
		payload = section.Fields
	}
	record, err := oaipmh.NewRecord(header, payload)
	if err != nil {
		invalid("%s: %v", at, err)
		return archive.Item{}, false
	}
	return archive.Item{Record: record, Format: format}, true
}
