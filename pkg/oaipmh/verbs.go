package oaipmh

// Verb is one of the six OAI-PMH request types.
type Verb string

// Protocol verbs (OAI-PMH 2.0, section 4).
const (
	VerbIdentify            Verb = "Identify"
	VerbGetRecord           Verb = "GetRecord"
	VerbListIdentifiers     Verb = "ListIdentifiers"
	VerbListMetadataFormats Verb = "ListMetadataFormats"
	VerbListRecords         Verb = "ListRecords"
	VerbListSets            Verb = "ListSets"
)

// Verbs maps every legal verb to true. Lookup is case-sensitive; the
// protocol does not fold case.
var Verbs = map[Verb]bool{
	VerbIdentify:            true,
	VerbGetRecord:           true,
	VerbListIdentifiers:     true,
	VerbListMetadataFormats: true,
	VerbListRecords:         true,
	VerbListSets:            true,
}

// VerbOrder lists the verbs in their customary documentation order.
var VerbOrder = []Verb{
	VerbIdentify,
	VerbGetRecord,
	VerbListIdentifiers,
	VerbListMetadataFormats,
	VerbListRecords,
	VerbListSets,
}

// IsValid reports whether v is a legal protocol verb.
func (v Verb) IsValid() bool {
	return Verbs[v]
}

func (v Verb) String() string {
	return string(v)
}

// ParseVerb returns the typed verb for s and whether s is legal.
func ParseVerb(s string) (Verb, bool) {
	v := Verb(s)
	return v, v.IsValid()
}

// Argument is one of the seven legal request argument names.
type Argument string

// Request arguments (OAI-PMH 2.0, section 3.1.1).
const (
	ArgVerb            Argument = "verb"
	ArgIdentifier      Argument = "identifier"
	ArgMetadataPrefix  Argument = "metadataPrefix"
	ArgFrom            Argument = "from"
	ArgUntil           Argument = "until"
	ArgSet             Argument = "set"
	ArgResumptionToken Argument = "resumptionToken"
)

// Arguments maps every legal argument name to true, verb included.
var Arguments = map[Argument]bool{
	ArgVerb:            true,
	ArgIdentifier:      true,
	ArgMetadataPrefix:  true,
	ArgFrom:            true,
	ArgUntil:           true,
	ArgSet:             true,
	ArgResumptionToken: true,
}

// ArgumentOrder lists the non-verb arguments in the order the request
// element renders its attributes.
var ArgumentOrder = []Argument{
	ArgIdentifier,
	ArgMetadataPrefix,
	ArgFrom,
	ArgUntil,
	ArgSet,
	ArgResumptionToken,
}

// IsValid reports whether a is a legal argument name.
func (a Argument) IsValid() bool {
	return Arguments[a]
}

func (a Argument) String() string {
	return string(a)
}
