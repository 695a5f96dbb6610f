package model

import "strconv"

// UserRef is a lazy reference to an account owned by the external user store.
// Only the identifier is guaranteed to be populated.
type UserRef struct {
	ID    int64  `json:"id"`
	Login string `json:"login,omitempty"`
}

// UserExtra holds the per-user image references.
// A nil ID marks an unsaved draft; the remote store assigns the identifier on create.
type UserExtra struct {
	ID         *int64   `json:"id"`
	FrontImage *string  `json:"frontImage"`
	BackImage  *string  `json:"backImage"`
	User       *UserRef `json:"user"`
}

// IDString returns the identifier in its path form, or "" for drafts.
func (u UserExtra) IDString() string {
	if u.ID == nil {
		return ""
	}
	return strconv.FormatInt(*u.ID, 10)
}

// UserIDString returns the referenced user's identifier, or "" when absent.
func (u UserExtra) UserIDString() string {
	if u.User == nil {
		return ""
	}
	return strconv.FormatInt(u.User.ID, 10)
}

// Int64 returns a pointer to v. Handy for building records in callers and tests.
func Int64(v int64) *int64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
