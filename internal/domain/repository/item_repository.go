package repository

import (
	"context"

	"github.com/sharelist/sharelist-api/internal/domain/entity"
)

// ItemRelations selects which related rows an item query loads.
type ItemRelations struct {
	List        bool
	ListMembers bool
}

// ItemRepository defines item persistence. Update saves the full row; the
// service applies partial changes to a loaded entity first.
type ItemRepository interface {
	Create(ctx context.Context, it *entity.Item) error
	GetByID(ctx context.Context, id int64, rel ItemRelations) (*entity.Item, error)
	GetAll(ctx context.Context, rel ItemRelations) ([]entity.Item, error)
	Update(ctx context.Context, it *entity.Item) error
	Delete(ctx context.Context, id int64) error
}
