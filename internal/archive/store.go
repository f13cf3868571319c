// Package archive holds the in-memory collection a repository serves:
// the repository's self-description, its metadata formats and set
// hierarchy, and the items with their records.
package archive

import (
	"fmt"

	"github.com/pslits/oai-pmh-sub003/pkg/oaipmh"
)

// Deleted-record policies a repository can advertise in Identify
// (protocol section 2.5.1).
const (
	DeletedRecordNo         = "no"
	DeletedRecordTransient  = "transient"
	DeletedRecordPersistent = "persistent"
)

// Identity is the repository's self-description, answered verbatim by the
// Identify verb. NamespaceID is the domain-name part of minted
// oai-identifiers.
type Identity struct {
	Name          string
	BaseURL       oaipmh.AnyURI
	AdminEmails   []string
	NamespaceID   string
	Earliest      oaipmh.UTCDatetime
	DeletedRecord string
	Granularity   oaipmh.Granularity
}

// Item pairs a record with the metadata format its payload is stored in.
// A zero Format marks an item without a disseminable payload.
type Item struct {
	Record oaipmh.Record
	Format oaipmh.MetadataPrefix
}

// Store is the immutable-after-seeding collection behind a repository.
// Formats and sets are registered at construction, items via Add; after
// seeding, reads are safe for concurrent use.
type Store struct {
	identity Identity
	formats  []oaipmh.MetadataFormat
	byPrefix map[string]oaipmh.MetadataFormat
	sets     []oaipmh.Set
	bySpec   map[string]oaipmh.Set
	items    []Item
	byID     map[string]int
}

// NewStore registers the repository's formats and sets. Duplicate format
// prefixes and duplicate set specs are rejected.
func NewStore(identity Identity, formats []oaipmh.MetadataFormat, sets []oaipmh.Set) (*Store, error) {
	s := &Store{
		identity: identity,
		byPrefix: make(map[string]oaipmh.MetadataFormat, len(formats)),
		bySpec:   make(map[string]oaipmh.Set, len(sets)),
		byID:     make(map[string]int),
	}
	for _, f := range formats {
		key := f.Prefix().String()
		if _, dup := s.byPrefix[key]; dup {
			return nil, fmt.Errorf("metadata format %q: %w", key, oaipmh.ErrDuplicateValue)
		}
		s.byPrefix[key] = f
		s.formats = append(s.formats, f)
	}
	for _, set := range sets {
		key := set.Spec().String()
		if _, dup := s.bySpec[key]; dup {
			return nil, fmt.Errorf("set %q: %w", key, oaipmh.ErrDuplicateValue)
		}
		s.bySpec[key] = set
		s.sets = append(s.sets, set)
	}
	return s, nil
}

// Add registers an item. The identifier must be new, the item's format
// and set memberships must be declared, and the record's datestamp must
// use the repository's granularity.
func (s *Store) Add(item Item) error {
	header := item.Record.Header()
	id := header.Identifier().String()
	if _, dup := s.byID[id]; dup {
		return fmt.Errorf("item %q: %w", id, oaipmh.ErrDuplicateValue)
	}
	if prefix := item.Format.String(); prefix != "" {
		if _, ok := s.byPrefix[prefix]; !ok {
			return fmt.Errorf("item %q uses undeclared format %q", id, prefix)
		}
	}
	for _, spec := range header.Sets() {
		if _, ok := s.bySpec[spec.String()]; !ok {
			return fmt.Errorf("item %q belongs to undeclared set %q", id, spec)
		}
	}
	if g := header.Datestamp().Granularity(); g != s.identity.Granularity {
		return fmt.Errorf("item %q datestamp %q does not use the repository granularity %s",
			id, header.Datestamp(), s.identity.Granularity)
	}
	s.byID[id] = len(s.items)
	s.items = append(s.items, item)
	return nil
}

// Identity returns the repository's self-description.
func (s *Store) Identity() Identity {
	out := s.identity
	out.AdminEmails = append([]string(nil), s.identity.AdminEmails...)
	return out
}

// Formats returns every registered format in registration order.
func (s *Store) Formats() []oaipmh.MetadataFormat {
	out := make([]oaipmh.MetadataFormat, len(s.formats))
	copy(out, s.formats)
	return out
}

// Format returns the format registered under prefix.
func (s *Store) Format(prefix string) (oaipmh.MetadataFormat, bool) {
	f, ok := s.byPrefix[prefix]
	return f, ok
}

// FormatsFor returns the formats the identified item can be disseminated
// in. The second result reports whether the item exists at all.
func (s *Store) FormatsFor(id oaipmh.Identifier) ([]oaipmh.MetadataFormat, bool) {
	idx, ok := s.byID[id.String()]
	if !ok {
		return nil, false
	}
	item := s.items[idx]
	if prefix := item.Format.String(); prefix != "" {
		if f, found := s.byPrefix[prefix]; found {
			return []oaipmh.MetadataFormat{f}, true
		}
	}
	return nil, true
}

// Get returns the item with the given identifier.
func (s *Store) Get(id oaipmh.Identifier) (Item, bool) {
	idx, ok := s.byID[id.String()]
	if !ok {
		return Item{}, false
	}
	return s.items[idx], true
}

// Items returns every item in insertion order.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// Sets returns the set hierarchy in registration order.
func (s *Store) Sets() []oaipmh.Set {
	out := make([]oaipmh.Set, len(s.sets))
	copy(out, s.sets)
	return out
}

// HasSets reports whether the repository declares any sets.
func (s *Store) HasSets() bool {
	return len(s.sets) > 0
}

// List returns the items the selection admits, in insertion order.
// Deleted items are included; their headers carry the deleted status.
func (s *Store) List(sel Selection) []Item {
	var out []Item
	for _, item := range s.items {
		if sel.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}
