package oaipmh

// ArgumentRules describes which arguments a verb accepts. An argument
// absent from all three fields is illegal for the verb.
type ArgumentRules struct {
	// Required arguments must be present.
	Required []Argument

	// Optional arguments may be present.
	Optional []Argument

	// Exclusive names an argument that, when present, must be the only
	// one besides verb. Zero value means the verb has none.
	Exclusive Argument
}

// VerbRules holds the argument table of protocol section 4, one entry per
// verb.
var VerbRules = map[Verb]ArgumentRules{
	VerbIdentify: {},
	VerbGetRecord: {
		Required: []Argument{ArgIdentifier, ArgMetadataPrefix},
	},
	VerbListIdentifiers: {
		Required:  []Argument{ArgMetadataPrefix},
		Optional:  []Argument{ArgFrom, ArgUntil, ArgSet},
		Exclusive: ArgResumptionToken,
	},
	VerbListMetadataFormats: {
		Optional: []Argument{ArgIdentifier},
	},
	VerbListRecords: {
		Required:  []Argument{ArgMetadataPrefix},
		Optional:  []Argument{ArgFrom, ArgUntil, ArgSet},
		Exclusive: ArgResumptionToken,
	},
	VerbListSets: {
		Exclusive: ArgResumptionToken,
	},
}

// Allows reports whether the rules admit arg in a non-exclusive request.
func (r ArgumentRules) Allows(arg Argument) bool {
	for _, a := range r.Required {
		if a == arg {
			return true
		}
	}
	for _, a := range r.Optional {
		if a == arg {
			return true
		}
	}
	return false
}

// ValidateArguments applies the per-verb argument rules to a request that
// already passed Validate. Like Validate it accumulates every violation
// and returns them as a single *Report, or nil when the request is clean.
//
// When the verb's exclusive argument is present, every other argument is
// a violation and the required-argument checks do not apply. Otherwise
// missing required arguments, arguments the verb does not admit, and
// malformed or inconsistent from/until values are reported, all as
// badArgument.
func ValidateArguments(req *Request) error {
	report := NewReport()
	rules, known := VerbRules[req.Verb()]
	if !known {
		report.Add(CodeBadVerb, "%q is not a legal OAI-PMH verb", req.Verb())
		return report
	}

	exclusive := rules.Exclusive != "" && req.Has(rules.Exclusive)
	if exclusive {
		for _, arg := range ArgumentOrder {
			if arg == rules.Exclusive || !req.Has(arg) {
				continue
			}
			report.Add(CodeBadArgument, "the %s argument cannot be combined with %s", arg, rules.Exclusive)
		}
	} else {
		for _, arg := range rules.Required {
			if !req.Has(arg) {
				report.Add(CodeBadArgument, "the %s argument is required for verb %s", arg, req.Verb())
			}
		}
		for _, arg := range ArgumentOrder {
			if !req.Has(arg) || rules.Allows(arg) {
				continue
			}
			if arg == rules.Exclusive {
				continue
			}
			report.Add(CodeBadArgument, "the %s argument is not allowed for verb %s", arg, req.Verb())
		}
		checkDatestampArguments(req, rules, report)
	}

	if report.HasErrors() {
		return report
	}
	return nil
}

// checkDatestampArguments validates the from/until values of a selective
// request: each must parse as a UTCdatetime, both must share one
// granularity, and from must not follow until.
func checkDatestampArguments(req *Request, rules ArgumentRules, report *Report) {
	var from, until UTCDatetime
	var haveFrom, haveUntil bool

	if v, ok := req.Argument(ArgFrom); ok && rules.Allows(ArgFrom) {
		parsed, err := NewUTCDatetime(v)
		if err != nil {
			report.Add(CodeBadArgument, "the from value %q is not a valid UTC datestamp", v)
		} else {
			from, haveFrom = parsed, true
		}
	}
	if v, ok := req.Argument(ArgUntil); ok && rules.Allows(ArgUntil) {
		parsed, err := NewUTCDatetime(v)
		if err != nil {
			report.Add(CodeBadArgument, "the until value %q is not a valid UTC datestamp", v)
		} else {
			until, haveUntil = parsed, true
		}
	}
	if haveFrom && haveUntil {
		switch {
		case from.Granularity() != until.Granularity():
			report.Add(CodeBadArgument, "the from and until values use different granularities")
		case from.After(until):
			report.Add(CodeBadArgument, "the from value %s is later than the until value %s", from, until)
		}
	}
}
