package archive

import "github.com/pslits/oai-pmh-sub003/pkg/oaipmh"

// Selection narrows a harvest to one format and optionally a datestamp
// window and a set subtree. Nil bounds mean unbounded.
type Selection struct {
	Format string
	From   *oaipmh.UTCDatetime
	Until  *oaipmh.UTCDatetime
	Set    *oaipmh.SetSpec
}

// Matches reports whether the item falls inside the selection. The
// datestamp window is inclusive on both ends; a day-granularity until
// bound covers the whole day. Set selection is hierarchical: membership
// anywhere in the selected subtree matches.
func (sel Selection) Matches(item Item) bool {
	if item.Format.String() != sel.Format {
		return false
	}
	at := item.Record.Header().Datestamp().Time()
	if sel.From != nil && at.Before(sel.From.Time()) {
		return false
	}
	if sel.Until != nil && at.After(sel.Until.RangeEnd()) {
		return false
	}
	if sel.Set != nil {
		within := false
		for _, spec := range item.Record.Header().Sets() {
			if spec.Within(*sel.Set) {
				within = true
				break
			}
		}
		if !within {
			return false
		}
	}
	return true
}
