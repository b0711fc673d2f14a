package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sharelist/sharelist-api/internal/domain/entity"
	"github.com/sharelist/sharelist-api/internal/domain/repository"
	"github.com/sharelist/sharelist-api/pkg/apperr"
)

type ItemRepository struct {
	pool  *pgxpool.Pool
	lists *ListRepository
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool, lists: NewListRepository(pool)}
}

func (r *ItemRepository) Create(ctx context.Context, it *entity.Item) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO items (title, description, deadline, status, list_id, created_by)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, it.Title, it.Description, it.Deadline, it.Status, it.ListID, it.CreatedByID)

	if err := row.Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return apperr.NotFound("list not found")
		}
		return apperr.Internal(err)
	}
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64, rel repository.ItemRelations) (*entity.Item, error) {
	it := &entity.Item{}
	var desc *string

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, deadline, status, list_id, created_by, created_at, updated_at
		FROM items
		WHERE id = $1
	`, id)
	if err := row.Scan(&it.ID, &it.Title, &desc, &it.Deadline, &it.Status, &it.ListID, &it.CreatedByID, &it.CreatedAt, &it.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("item not found")
		}
		return nil, apperr.Internal(err)
	}
	if desc != nil {
		it.Description = *desc
	}

	if err := r.loadList(ctx, it, rel); err != nil {
		return nil, err
	}
	return it, nil
}

func (r *ItemRepository) GetAll(ctx context.Context, rel repository.ItemRelations) ([]entity.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, deadline, status, list_id, created_by, created_at, updated_at
		FROM items
		ORDER BY id
	`)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	items := make([]entity.Item, 0)
	for rows.Next() {
		var it entity.Item
		var desc *string
		if err := rows.Scan(&it.ID, &it.Title, &desc, &it.Deadline, &it.Status, &it.ListID, &it.CreatedByID, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, apperr.Internal(err)
		}
		if desc != nil {
			it.Description = *desc
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err)
	}

	for i := range items {
		if err := r.loadList(ctx, &items[i], rel); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *ItemRepository) loadList(ctx context.Context, it *entity.Item, rel repository.ItemRelations) error {
	if !rel.List && !rel.ListMembers {
		return nil
	}
	l, err := r.lists.GetByID(ctx, it.ListID, repository.ListRelations{Members: rel.ListMembers})
	if err != nil {
		return err
	}
	it.List = l
	return nil
}

func (r *ItemRepository) Update(ctx context.Context, it *entity.Item) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE items
		SET title = $1, description = NULLIF($2, ''), deadline = $3, status = $4, updated_at = now()
		WHERE id = $5
	`, it.Title, it.Description, it.Deadline, it.Status, it.ID)
	if err != nil {
		return apperr.Internal(err)
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("item not found")
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("item not found")
	}
	return nil
}

var _ repository.ItemRepository = (*ItemRepository)(nil)
