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

type ListRepository struct {
	pool *pgxpool.Pool
}

func NewListRepository(pool *pgxpool.Pool) *ListRepository {
	return &ListRepository{pool: pool}
}

// Create inserts the list row and the creator's membership row in a single
// transaction so a list can never exist without its initial member.
func (r *ListRepository) Create(ctx context.Context, l *entity.List, creatorID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperr.Internal(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO lists (title, created_by)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, l.Title, creatorID)
	if err := row.Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return apperr.Internal(err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO list_members (list_id, user_id)
		VALUES ($1, $2)
	`, l.ID, creatorID); err != nil {
		return apperr.Internal(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (r *ListRepository) GetByID(ctx context.Context, id int64, rel repository.ListRelations) (*entity.List, error) {
	l := &entity.List{}
	var createdBy *int64

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, created_by, created_at, updated_at
		FROM lists
		WHERE id = $1
	`, id)
	if err := row.Scan(&l.ID, &l.Title, &createdBy, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("list not found")
		}
		return nil, apperr.Internal(err)
	}

	if err := r.loadRelations(ctx, l, createdBy, rel); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *ListRepository) GetAll(ctx context.Context, rel repository.ListRelations) ([]entity.List, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, created_by, created_at, updated_at
		FROM lists
		ORDER BY id
	`)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	lists := make([]entity.List, 0)
	creators := make([]*int64, 0)
	for rows.Next() {
		var l entity.List
		var createdBy *int64
		if err := rows.Scan(&l.ID, &l.Title, &createdBy, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, apperr.Internal(err)
		}
		lists = append(lists, l)
		creators = append(creators, createdBy)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err)
	}

	for i := range lists {
		if err := r.loadRelations(ctx, &lists[i], creators[i], rel); err != nil {
			return nil, err
		}
	}
	return lists, nil
}

func (r *ListRepository) loadRelations(ctx context.Context, l *entity.List, createdBy *int64, rel repository.ListRelations) error {
	if rel.Members {
		members, err := r.members(ctx, l.ID)
		if err != nil {
			return err
		}
		l.Members = members
	}
	if rel.Items {
		items, err := r.items(ctx, l.ID)
		if err != nil {
			return err
		}
		l.Items = items
	}
	if rel.CreatedBy && createdBy != nil {
		u := &entity.User{}
		row := r.pool.QueryRow(ctx, `
			SELECT id, email, created_at, updated_at
			FROM users
			WHERE id = $1
		`, *createdBy)
		if err := row.Scan(&u.ID, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return apperr.Internal(err)
			}
		} else {
			l.CreatedBy = u
		}
	}
	return nil
}

func (r *ListRepository) members(ctx context.Context, listID int64) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.email, u.created_at, u.updated_at
		FROM users u
		JOIN list_members m ON m.user_id = u.id
		WHERE m.list_id = $1
		ORDER BY u.id
	`, listID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	members := make([]entity.User, 0)
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, apperr.Internal(err)
		}
		members = append(members, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err)
	}
	return members, nil
}

func (r *ListRepository) items(ctx context.Context, listID int64) ([]entity.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, deadline, status, list_id, created_by, created_at, updated_at
		FROM items
		WHERE list_id = $1
		ORDER BY id
	`, listID)
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
	return items, nil
}

func (r *ListRepository) UpdateTitle(ctx context.Context, id int64, title string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE lists
		SET title = $1, updated_at = now()
		WHERE id = $2
	`, title, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("list not found")
	}
	return nil
}

func (r *ListRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("list not found")
	}
	return nil
}

// AddMember relies on the composite primary key of list_members: two
// concurrent shares of the same user can both pass the service's membership
// check, but only one insert wins.
func (r *ListRepository) AddMember(ctx context.Context, listID, userID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO list_members (list_id, user_id)
		VALUES ($1, $2)
	`, listID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("user is already in the list")
		}
		if isForeignKeyViolation(err) {
			return apperr.NotFound("list or user not found")
		}
		return apperr.Internal(err)
	}
	return nil
}

var _ repository.ListRepository = (*ListRepository)(nil)
