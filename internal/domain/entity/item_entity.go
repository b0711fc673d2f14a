package entity

import "time"

// ItemStatus is the lifecycle state of a to-do item.
type ItemStatus string

const (
	StatusActive    ItemStatus = "active"
	StatusCompleted ItemStatus = "completed"
	StatusCancelled ItemStatus = "cancelled"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Item belongs to exactly one list for its entire life. Access is inherited
// from the parent list's membership, never from CreatedBy; CreatedByID is
// nil once the creating user is gone.
type Item struct {
	ID          int64
	Title       string
	Description string
	Deadline    time.Time
	Status      ItemStatus
	ListID      int64
	List        *List
	CreatedByID *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
