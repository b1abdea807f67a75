package domain

// UserRef is a reference to a User that may be carried either as a bare
// identifier or as a resolved record. Comparisons must always go through
// ID() so equality is computed on the identifier regardless of shape.
type UserRef struct {
	id   string
	user *User
}

// RefTo builds a raw reference from an identifier.
func RefTo(id string) UserRef {
	return UserRef{id: id}
}

// ResolvedRef builds a reference carrying the full record.
func ResolvedRef(user *User) UserRef {
	if user == nil {
		return UserRef{}
	}
	return UserRef{id: user.ID, user: user}
}

// ID returns the underlying identifier for either shape.
func (r UserRef) ID() string {
	if r.user != nil {
		return r.user.ID
	}
	return r.id
}

// User returns the resolved record when present.
func (r UserRef) User() (*User, bool) {
	return r.user, r.user != nil
}

// IsZero reports whether the reference points at nothing.
func (r UserRef) IsZero() bool {
	return r.id == "" && r.user == nil
}
