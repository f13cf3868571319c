package oaipmh

import "fmt"

// Header is the harvesting header of an item: identifier, datestamp of
// last change, deletion status and set memberships.
type Header struct {
	identifier Identifier
	datestamp  UTCDatetime
	deleted    bool
	sets       []SetSpec
}

// NewHeader assembles a header from validated parts. The sets slice is
// copied, so later changes to the argument do not leak in.
func NewHeader(identifier Identifier, datestamp UTCDatetime, deleted bool, sets []SetSpec) Header {
	var kept []SetSpec
	if len(sets) > 0 {
		kept = make([]SetSpec, len(sets))
		copy(kept, sets)
	}
	return Header{identifier: identifier, datestamp: datestamp, deleted: deleted, sets: kept}
}

// Identifier returns the item identifier.
func (h Header) Identifier() Identifier {
	return h.identifier
}

// Datestamp returns the datestamp of the item's last change.
func (h Header) Datestamp() UTCDatetime {
	return h.datestamp
}

// IsDeleted reports whether the item is marked deleted.
func (h Header) IsDeleted() bool {
	return h.deleted
}

// Sets returns the set memberships in declaration order.
func (h Header) Sets() []SetSpec {
	out := make([]SetSpec, len(h.sets))
	copy(out, h.sets)
	return out
}

// BelongsTo reports whether spec is among the header's memberships. The
// comparison is exact; use SetSpec.Within for hierarchical selection.
func (h Header) BelongsTo(spec SetSpec) bool {
	for _, s := range h.sets {
		if s.Equal(spec) {
			return true
		}
	}
	return false
}

// Equal reports whether every header component matches, set order
// included.
func (h Header) Equal(other Header) bool {
	if !h.identifier.Equal(other.identifier) ||
		!h.datestamp.Equal(other.datestamp) ||
		h.deleted != other.deleted ||
		len(h.sets) != len(other.sets) {
		return false
	}
	for i, s := range h.sets {
		if !s.Equal(other.sets[i]) {
			return false
		}
	}
	return true
}

// Record pairs a header with an optional metadata payload. The payload is
// a flat field map whose keys are the serialized element names; a nil map
// means no payload.
//
// A deleted record never carries a payload (protocol section 2.5.1).
type Record struct {
	header   Header
	metadata map[string]string
}

// NewRecord builds a record. A non-nil metadata map on a deleted header
// fails with ErrDeletedWithMetadata, even when the map is empty.
func NewRecord(header Header, metadata map[string]string) (Record, error) {
	if header.IsDeleted() && metadata != nil {
		return Record{}, fmt.Errorf("record %s: %w", header.Identifier(), ErrDeletedWithMetadata)
	}
	var kept map[string]string
	if metadata != nil {
		kept = make(map[string]string, len(metadata))
		for k, v := range metadata {
			kept[k] = v
		}
	}
	return Record{header: header, metadata: kept}, nil
}

// Header returns the record's harvesting header.
func (r Record) Header() Header {
	return r.header
}

// HasMetadata reports whether the record carries a payload.
func (r Record) HasMetadata() bool {
	return r.metadata != nil
}

// Metadata returns a copy of the payload fields, or nil when the record
// has no payload.
func (r Record) Metadata() map[string]string {
	if r.metadata == nil {
		return nil
	}
	out := make(map[string]string, len(r.metadata))
	for k, v := range r.metadata {
		out[k] = v
	}
	return out
}

// Field returns the payload value for name and whether it is present.
func (r Record) Field(name string) (string, bool) {
	v, ok := r.metadata[name]
	return v, ok
}

// Equal reports record identity: two records are the same record exactly
// when their identifiers match. Datestamp, status and payload do not
// participate.
func (r Record) Equal(other Record) bool {
	return r.header.Identifier().Equal(other.header.Identifier())
}
