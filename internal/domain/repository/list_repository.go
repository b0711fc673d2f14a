package repository

import (
	"context"

	"github.com/sharelist/sharelist-api/internal/domain/entity"
)

// ListRelations selects which related rows a list query loads. Relation
// loading is explicit so the fetch cost of each call site stays visible.
type ListRelations struct {
	Members   bool
	Items     bool
	CreatedBy bool
}

// ListRepository defines list persistence including the membership relation.
type ListRepository interface {
	// Create persists the list and the creator's membership row in one
	// transaction.
	Create(ctx context.Context, l *entity.List, creatorID int64) error
	GetByID(ctx context.Context, id int64, rel ListRelations) (*entity.List, error)
	GetAll(ctx context.Context, rel ListRelations) ([]entity.List, error)
	UpdateTitle(ctx context.Context, id int64, title string) error
	// Delete removes the list; contained items go with it via the storage
	// cascade.
	Delete(ctx context.Context, id int64) error
	// AddMember inserts a membership row. A duplicate pair is a conflict,
	// enforced by the composite primary key rather than a read-then-write.
	AddMember(ctx context.Context, listID, userID int64) error
}
