package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sharelist/sharelist-api/internal/domain/entity"
	repo "github.com/sharelist/sharelist-api/internal/domain/repository"
	"github.com/sharelist/sharelist-api/pkg/apperr"
)

// ItemService owns items. An item's authorization boundary is its parent
// list's membership set, never the item's creator.
type ItemService struct {
	Items  repo.ItemRepository
	Lists  repo.ListRepository
	Logger *logrus.Logger
}

func NewItemService(items repo.ItemRepository, lists repo.ListRepository, logger *logrus.Logger) *ItemService {
	return &ItemService{Items: items, Lists: lists, Logger: logger}
}

type CreateItemInput struct {
	Title       string
	Description string
	Deadline    time.Time
	Status      entity.ItemStatus
	ListID      int64
}

// Create binds a new item to the target list after verifying the
// requesting user's membership there.
func (s *ItemService) Create(ctx context.Context, in CreateItemInput, userID int64) (*entity.Item, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("title must not be empty")
	}
	if in.ListID <= 0 {
		return nil, apperr.Validation("listId must be a positive id")
	}
	if in.Status == "" {
		in.Status = entity.StatusActive
	}
	if !in.Status.Valid() {
		return nil, apperr.Validation("status must be one of: active, completed, cancelled")
	}

	l, err := s.Lists.GetByID(ctx, in.ListID, repo.ListRelations{Members: true})
	if err != nil {
		return nil, err
	}
	if !l.HasMember(userID) {
		return nil, apperr.Forbidden("you do not have access to this list")
	}

	uid := userID
	it := &entity.Item{
		Title:       in.Title,
		Description: in.Description,
		Deadline:    in.Deadline,
		Status:      in.Status,
		ListID:      l.ID,
		CreatedByID: &uid,
	}
	if err := s.Items.Create(ctx, it); err != nil {
		return nil, err
	}
	it.List = l
	return it, nil
}

// FindAll returns every item in the system with its parent list populated.
// No caller identity is consulted; the listing is global and public.
func (s *ItemService) FindAll(ctx context.Context) ([]entity.Item, error) {
	return s.Items.GetAll(ctx, repo.ItemRelations{List: true})
}

// FindOne loads an item with its list and the list's members so callers
// can make follow-up authorization decisions.
func (s *ItemService) FindOne(ctx context.Context, id int64) (*entity.Item, error) {
	return s.Items.GetByID(ctx, id, repo.ItemRelations{List: true, ListMembers: true})
}

type UpdateItemInput struct {
	Title       *string
	Description *string
	Deadline    *time.Time
	Status      *entity.ItemStatus
}

// Update applies the supplied fields over the stored item, leaving the rest
// untouched. Only members of the parent list may update, regardless of who
// created the item.
func (s *ItemService) Update(ctx context.Context, id int64, in UpdateItemInput, userID int64) (*entity.Item, error) {
	it, err := s.Items.GetByID(ctx, id, repo.ItemRelations{List: true, ListMembers: true})
	if err != nil {
		return nil, err
	}
	if it.List == nil || !it.List.HasMember(userID) {
		return nil, apperr.Forbidden("you do not have permission to update this item")
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperr.Validation("title must not be empty")
		}
		it.Title = *in.Title
	}
	if in.Description != nil {
		it.Description = *in.Description
	}
	if in.Deadline != nil {
		it.Deadline = *in.Deadline
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperr.Validation("status must be one of: active, completed, cancelled")
		}
		it.Status = *in.Status
	}

	if err := s.Items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Remove deletes the item after the same membership check as Update.
func (s *ItemService) Remove(ctx context.Context, id int64, userID int64) error {
	it, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if it.List == nil || it.List.Members == nil {
		return apperr.Forbidden("the list or its members could not be resolved")
	}
	if !it.List.HasMember(userID) {
		return apperr.Forbidden("you do not have permission to delete this item")
	}
	return s.Items.Delete(ctx, id)
}
