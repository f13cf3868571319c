// Package handler answers protocol requests from an archive store. It
// owns the third validation stage, the one that needs the repository:
// format and item lookups, set hierarchy presence, and the repository's
// datestamp granularity.
package handler

import (
	"errors"
	"time"

	"github.com/pslits/oai-pmh-sub003/internal/archive"
	"github.com/pslits/oai-pmh-sub003/internal/logging"
	"github.com/pslits/oai-pmh-sub003/pkg/oaipmh"
)

// Handler dispatches validated requests against one repository.
type Handler struct {
	store  *archive.Store
	logger oaipmh.Logger
}

// New creates a handler for the given store. A nil logger disables
// logging.
func New(store *archive.Store, logger oaipmh.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Handler{store: store, logger: logger}
}

// Respond runs the whole pipeline for a raw query string: tokenize,
// validate, dispatch. It always returns a renderable envelope; protocol
// violations become <error> elements, never a Go error.
func (h *Handler) Respond(raw string, now time.Time) *oaipmh.Envelope {
	q, err := oaipmh.ParseQuery(raw)
	if err != nil {
		return h.rejected(err, now)
	}
	req, err := oaipmh.Validate(q)
	if err != nil {
		return h.rejected(err, now)
	}
	return h.Dispatch(req, now)
}

// rejected renders a request that failed before a verb was established.
func (h *Handler) rejected(err error, now time.Time) *oaipmh.Envelope {
	env := h.newEnvelope(now)
	report := reportFromError(err)
	env.AddReport(report)
	h.logger.Verbose("request rejected: %v", report)
	return env
}

// Dispatch answers a request that passed request-level validation. The
// per-verb argument rules and the repository-level checks still run here
// and accumulate into a single error response when violated.
func (h *Handler) Dispatch(req *oaipmh.Request, now time.Time) *oaipmh.Envelope {
	env := h.newEnvelope(now)
	env.SetRequest(req)

	report := oaipmh.NewReport()
	if err := oaipmh.ValidateArguments(req); err != nil {
		report.Merge(reportFromError(err))
	}
	h.checkGranularity(req, report)
	if report.HasErrors() {
		env.AddReport(report)
		h.logger.Verbose("%s rejected: %v", req.Verb(), report)
		return env
	}

	h.logger.Verbose("answering %s", req.Verb())
	switch req.Verb() {
	case oaipmh.VerbIdentify:
		h.identify(env)
	case oaipmh.VerbGetRecord:
		h.getRecord(env, req)
	case oaipmh.VerbListIdentifiers:
		h.listIdentifiers(env, req)
	case oaipmh.VerbListMetadataFormats:
		h.listMetadataFormats(env, req)
	case oaipmh.VerbListRecords:
		h.listRecords(env, req)
	case oaipmh.VerbListSets:
		h.listSets(env, req)
	}
	return env
}

func (h *Handler) newEnvelope(now time.Time) *oaipmh.Envelope {
	return oaipmh.NewEnvelope(h.store.Identity().BaseURL.String(), now)
}

// checkGranularity rejects selective-harvest bounds finer than the
// repository supports (protocol section 3.3). Malformed bounds are left
// to the argument rules.
func (h *Handler) checkGranularity(req *oaipmh.Request, report *oaipmh.Report) {
	if h.store.Identity().Granularity == oaipmh.GranularitySeconds {
		return
	}
	rules := oaipmh.VerbRules[req.Verb()]
	if rules.Exclusive != "" && req.Has(rules.Exclusive) {
		return
	}
	for _, arg := range []oaipmh.Argument{oaipmh.ArgFrom, oaipmh.ArgUntil} {
		if !rules.Allows(arg) {
			continue
		}
		v, ok := req.Argument(arg)
		if !ok {
			continue
		}
		d, err := oaipmh.NewUTCDatetime(v)
		if err != nil {
			continue
		}
		if d.Granularity() == oaipmh.GranularitySeconds {
			report.Add(oaipmh.CodeBadArgument,
				"the %s value %q uses seconds granularity but the repository only supports %s", arg, v, oaipmh.GranularityDay)
		}
	}
}

func (h *Handler) identify(env *oaipmh.Envelope) {
	identity := h.store.Identity()
	env.Identify = &oaipmh.IdentifyBody{
		RepositoryName:    identity.Name,
		BaseURL:           identity.BaseURL.String(),
		ProtocolVersion:   oaipmh.ProtocolVersion,
		AdminEmails:       identity.AdminEmails,
		EarliestDatestamp: identity.Earliest.String(),
		DeletedRecord:     identity.DeletedRecord,
		Granularity:       identity.Granularity.String(),
	}
}

func (h *Handler) getRecord(env *oaipmh.Envelope, req *oaipmh.Request) {
	report := oaipmh.NewReport()

	id, err := oaipmh.NewIdentifier(req.Identifier())
	if err != nil {
		report.Add(oaipmh.CodeBadArgument, "the identifier %q is not a valid item identifier", req.Identifier())
	}

	prefix := req.MetadataPrefix()
	format, formatKnown := oaipmh.MetadataFormat{}, false
	if _, err := oaipmh.NewMetadataPrefix(prefix); err != nil {
		report.Add(oaipmh.CodeBadArgument, "the metadataPrefix %q is not a valid format name", prefix)
	} else if format, formatKnown = h.store.Format(prefix); !formatKnown {
		report.Add(oaipmh.CodeCannotDisseminateFormat, "the repository does not support the %q format", prefix)
	}

	if report.HasErrors() {
		env.AddReport(report)
		return
	}

	item, ok := h.store.Get(id)
	if !ok {
		env.AddError(oaipmh.CodeIDDoesNotExist, "no item has the identifier %q", id)
		return
	}
	if item.Format.String() != prefix {
		env.AddError(oaipmh.CodeCannotDisseminateFormat, "item %q cannot be disseminated as %q", id, prefix)
		return
	}
	env.GetRecord = &oaipmh.GetRecordBody{Record: oaipmh.NewRecordElement(item.Record, format)}
}

// buildSelection turns a list request into an archive selection,
// accumulating every repository-level violation.
func (h *Handler) buildSelection(req *oaipmh.Request) (archive.Selection, *oaipmh.Report) {
	report := oaipmh.NewReport()

	if req.Has(oaipmh.ArgResumptionToken) {
		report.Add(oaipmh.CodeBadResumptionToken,
			"the resumption token %q is not valid: this repository answers every request completely and never issues tokens",
			req.ResumptionToken())
		return archive.Selection{}, report
	}

	prefix := req.MetadataPrefix()
	if _, err := oaipmh.NewMetadataPrefix(prefix); err != nil {
		report.Add(oaipmh.CodeBadArgument, "the metadataPrefix %q is not a valid format name", prefix)
	} else if _, ok := h.store.Format(prefix); !ok {
		report.Add(oaipmh.CodeCannotDisseminateFormat, "the repository does not support the %q format", prefix)
	}

	sel := archive.Selection{Format: prefix}
	if v, ok := req.Argument(oaipmh.ArgFrom); ok {
		if d, err := oaipmh.NewUTCDatetime(v); err == nil {
			sel.From = &d
		}
	}
	if v, ok := req.Argument(oaipmh.ArgUntil); ok {
		if d, err := oaipmh.NewUTCDatetime(v); err == nil {
			sel.Until = &d
		}
	}
	if v, ok := req.Argument(oaipmh.ArgSet); ok {
		switch {
		case !h.store.HasSets():
			report.Add(oaipmh.CodeNoSetHierarchy, "the repository does not maintain a set hierarchy")
		default:
			spec, err := oaipmh.NewSetSpec(v)
			if err != nil {
				report.Add(oaipmh.CodeBadArgument, "the set value %q is not a valid setSpec", v)
			} else {
				sel.Set = &spec
			}
		}
	}
	return sel, report
}

func (h *Handler) listRecords(env *oaipmh.Envelope, req *oaipmh.Request) {
	sel, report := h.buildSelection(req)
	if report.HasErrors() {
		env.AddReport(report)
		return
	}
	items := h.store.List(sel)
	if len(items) == 0 {
		env.AddError(oaipmh.CodeNoRecordsMatch, "no records match the given criteria")
		return
	}
	format, _ := h.store.Format(sel.Format)
	body := &oaipmh.ListRecordsBody{}
	for _, item := range items {
		body.Records = append(body.Records, oaipmh.NewRecordElement(item.Record, format))
	}
	env.ListRecords = body
}

func (h *Handler) listIdentifiers(env *oaipmh.Envelope, req *oaipmh.Request) {
	sel, report := h.buildSelection(req)
	if report.HasErrors() {
		env.AddReport(report)
		return
	}
	items := h.store.List(sel)
	if len(items) == 0 {
		env.AddError(oaipmh.CodeNoRecordsMatch, "no records match the given criteria")
		return
	}
	body := &oaipmh.ListIdentifiersBody{}
	for _, item := range items {
		body.Headers = append(body.Headers, oaipmh.NewHeaderElement(item.Record.Header()))
	}
	env.ListIdentifiers = body
}

func (h *Handler) listMetadataFormats(env *oaipmh.Envelope, req *oaipmh.Request) {
	var formats []oaipmh.MetadataFormat
	if req.Has(oaipmh.ArgIdentifier) {
		id, err := oaipmh.NewIdentifier(req.Identifier())
		if err != nil {
			env.AddError(oaipmh.CodeBadArgument, "the identifier %q is not a valid item identifier", req.Identifier())
			return
		}
		itemFormats, exists := h.store.FormatsFor(id)
		if !exists {
			env.AddError(oaipmh.CodeIDDoesNotExist, "no item has the identifier %q", id)
			return
		}
		if len(itemFormats) == 0 {
			env.AddError(oaipmh.CodeNoMetadataFormats, "no metadata formats are available for item %q", id)
			return
		}
		formats = itemFormats
	} else {
		formats = h.store.Formats()
		if len(formats) == 0 {
			env.AddError(oaipmh.CodeNoMetadataFormats, "the repository declares no metadata formats")
			return
		}
	}
	body := &oaipmh.ListMetadataFormatsBody{}
	for _, f := range formats {
		body.Formats = append(body.Formats, oaipmh.NewMetadataFormatElement(f))
	}
	env.ListMetadataFormats = body
}

func (h *Handler) listSets(env *oaipmh.Envelope, req *oaipmh.Request) {
	if req.Has(oaipmh.ArgResumptionToken) {
		env.AddError(oaipmh.CodeBadResumptionToken,
			"the resumption token %q is not valid: this repository answers every request completely and never issues tokens",
			req.ResumptionToken())
		return
	}
	sets := h.store.Sets()
	if len(sets) == 0 {
		env.AddError(oaipmh.CodeNoSetHierarchy, "the repository does not maintain a set hierarchy")
		return
	}
	body := &oaipmh.ListSetsBody{}
	for _, s := range sets {
		body.Sets = append(body.Sets, oaipmh.NewSetElement(s))
	}
	env.ListSets = body
}

// reportFromError recovers the report carried by a pipeline error.
func reportFromError(err error) *oaipmh.Report {
	var report *oaipmh.Report
	if errors.As(err, &report) {
		return report
	}
	report = oaipmh.NewReport()
	report.Add(oaipmh.CodeBadArgument, "%v", err)
	return report
}
