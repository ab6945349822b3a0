package registry

import "github.com/iliyamo/ticket-registry/internal/model"

// AuthorizeOrganizer marks a principal as allowed to create events.  Only
// the registry owner may grant authorization.  Granting twice is a no-op;
// grants are never revoked in the current contract.
func (r *Registry) AuthorizeOrganizer(call Call, p model.Principal) error {
	if call.Caller != r.owner {
		return ErrUnauthorized
	}
	r.organizers[p] = true
	return nil
}

// IsAuthorizedOrganizer reports whether a principal may create events.
func (r *Registry) IsAuthorizedOrganizer(p model.Principal) bool {
	return r.organizers[p]
}
