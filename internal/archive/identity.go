package archive

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/pslits/oai-pmh-sub003/pkg/oaipmh"
)

// namespaceIDPattern is the domain-name grammar of the oai-identifier
// scheme: dot-separated labels, each starting with a letter.
var namespaceIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*(\.[A-Za-z][A-Za-z0-9-]*)+$`)

// NamespaceRecordIdentity is the fixed UUID namespace for deterministic
// record identities, derived from "oai-pmh-sub003/record-identity/v1"
// using UUID v5 with the URL namespace. The same source key always mints
// the same identifier, across runs and across hosts.
var NamespaceRecordIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("oai-pmh-sub003/record-identity/v1"))

// ValidateNamespaceID checks the repository's namespace identifier, the
// domain-name part of minted oai-identifiers.
func ValidateNamespaceID(s string) error {
	if !namespaceIDPattern.MatchString(s) {
		return fmt.Errorf("namespace identifier %q is not a domain name: %w", s, oaipmh.ErrInvalidFormat)
	}
	return nil
}

// MintIdentifier derives the oai-identifier for a source key, for items
// whose source system has no identifier of its own. The key is lowercased
// and trimmed before hashing so cosmetic differences do not split
// identities.
func MintIdentifier(namespaceID, sourceKey string) (oaipmh.Identifier, error) {
	if err := ValidateNamespaceID(namespaceID); err != nil {
		return oaipmh.Identifier{}, err
	}
	normalized := strings.ToLower(strings.TrimSpace(sourceKey))
	if normalized == "" {
		return oaipmh.Identifier{}, fmt.Errorf("source key is empty: %w", oaipmh.ErrInvalidFormat)
	}
	id := uuid.NewSHA1(NamespaceRecordIdentity, []byte(normalized))
	return oaipmh.NewIdentifier(fmt.Sprintf("oai:%s:%s", namespaceID, id))
}
