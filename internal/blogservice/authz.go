package blogservice

import "strings"

// CanMutate reports whether the requester owns the blog and may therefore
// destroy it. Identifiers are normalized to their canonical string form
// before comparison, since the same id can reach us in different casings.
func CanMutate(requesterID, ownerID string) bool {
	requester := canonicalID(requesterID)
	owner := canonicalID(ownerID)

	return requester != "" && requester == owner
}

func canonicalID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
