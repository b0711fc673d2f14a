package entity

import "time"

// List is a shared container of items. Members is the full authorization
// boundary: every member has equal read/update/delete/share rights, the
// creator included. CreatedBy is recorded for display only.
type List struct {
	ID        int64
	Title     string
	Members   []User
	Items     []Item
	CreatedBy *User
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasMember reports whether the user id is in the membership set.
func (l *List) HasMember(userID int64) bool {
	for _, m := range l.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
