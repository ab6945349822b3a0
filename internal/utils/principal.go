package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/iliyamo/ticket-registry/internal/model"
)

// principalPrefix tags derived addresses so they are recognizable in
// journal rows and API responses.
const principalPrefix = "PR"

// DerivePrincipal maps a normalized account email to its ledger principal:
// PR followed by the first 40 hex chars of sha256(email).  The mapping is
// deterministic, which lets the registry owner be named in configuration
// by email before any account exists.
func DerivePrincipal(email string) model.Principal {
	email = strings.ToLower(strings.TrimSpace(email))
	sum := sha256.Sum256([]byte(email))
	return model.Principal(principalPrefix + hex.EncodeToString(sum[:])[:40])
}
