package domain

// Scope is the identity context every storage access is keyed by. All
// documents are exclusively owned by one (owner, business) pair; there are
// no cross-business references.
type Scope struct {
	OwnerID    string
	BusinessID string
}

// Valid reports whether both identifiers are present.
func (s Scope) Valid() bool {
	return s.OwnerID != "" && s.BusinessID != ""
}
