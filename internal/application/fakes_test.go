package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sharelist/sharelist-api/internal/domain/entity"
	repo "github.com/sharelist/sharelist-api/internal/domain/repository"
	"github.com/sharelist/sharelist-api/pkg/apperr"
)

// memStore is an in-memory stand-in for the postgres layer, mirroring its
// observable behavior: conflicts from unique keys, cascade on list delete,
// relation loading driven by the explicit flags.
type memStore struct {
	mu sync.Mutex

	userSeq, listSeq, itemSeq int64

	users   map[int64]entity.User
	lists   map[int64]listRow
	members map[int64]map[int64]bool // listID -> userID set
	items   map[int64]entity.Item
}

type listRow struct {
	id        int64
	title     string
	createdBy *int64
	createdAt time.Time
	updatedAt time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[int64]entity.User),
		lists:   make(map[int64]listRow),
		members: make(map[int64]map[int64]bool),
		items:   make(map[int64]entity.Item),
	}
}

func (s *memStore) userRepo() *memUserRepo { return &memUserRepo{s} }
func (s *memStore) listRepo() *memListRepo { return &memListRepo{s} }
func (s *memStore) itemRepo() *memItemRepo { return &memItemRepo{s} }

func (s *memStore) memberIDs(listID int64) []int64 {
	ids := make([]int64, 0, len(s.members[listID]))
	for id := range s.members[listID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *memStore) buildList(row listRow, rel repo.ListRelations) *entity.List {
	l := &entity.List{ID: row.id, Title: row.title, CreatedAt: row.createdAt, UpdatedAt: row.updatedAt}
	if rel.Members {
		l.Members = make([]entity.User, 0)
		for _, uid := range s.memberIDs(row.id) {
			if u, ok := s.users[uid]; ok {
				l.Members = append(l.Members, u)
			}
		}
	}
	if rel.Items {
		l.Items = make([]entity.Item, 0)
		ids := make([]int64, 0)
		for id, it := range s.items {
			if it.ListID == row.id {
				ids = append(ids, id)
			}
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			l.Items = append(l.Items, s.items[id])
		}
	}
	if rel.CreatedBy && row.createdBy != nil {
		if u, ok := s.users[*row.createdBy]; ok {
			l.CreatedBy = &u
		}
	}
	return l
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return apperr.Conflict("user with this email already exists")
		}
	}
	r.s.userSeq++
	u.ID = r.s.userSeq
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, apperr.NotFound("user not found")
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

type memListRepo struct{ s *memStore }

func (r *memListRepo) Create(_ context.Context, l *entity.List, creatorID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[creatorID]; !ok {
		return apperr.NotFound("user not found")
	}
	r.s.listSeq++
	now := time.Now()
	l.ID = r.s.listSeq
	l.CreatedAt = now
	l.UpdatedAt = now
	cid := creatorID
	r.s.lists[l.ID] = listRow{id: l.ID, title: l.Title, createdBy: &cid, createdAt: now, updatedAt: now}
	r.s.members[l.ID] = map[int64]bool{creatorID: true}
	return nil
}

func (r *memListRepo) GetByID(_ context.Context, id int64, rel repo.ListRelations) (*entity.List, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.lists[id]
	if !ok {
		return nil, apperr.NotFound("list not found")
	}
	return r.s.buildList(row, rel), nil
}

func (r *memListRepo) GetAll(_ context.Context, rel repo.ListRelations) ([]entity.List, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]int64, 0, len(r.s.lists))
	for id := range r.s.lists {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]entity.List, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.s.buildList(r.s.lists[id], rel))
	}
	return out, nil
}

func (r *memListRepo) UpdateTitle(_ context.Context, id int64, title string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.lists[id]
	if !ok {
		return apperr.NotFound("list not found")
	}
	row.title = title
	row.updatedAt = time.Now()
	r.s.lists[id] = row
	return nil
}

func (r *memListRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.lists[id]; !ok {
		return apperr.NotFound("list not found")
	}
	delete(r.s.lists, id)
	delete(r.s.members, id)
	for itemID, it := range r.s.items {
		if it.ListID == id {
			delete(r.s.items, itemID)
		}
	}
	return nil
}

func (r *memListRepo) AddMember(_ context.Context, listID, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	set, ok := r.s.members[listID]
	if !ok {
		return apperr.NotFound("list or user not found")
	}
	if _, ok := r.s.users[userID]; !ok {
		return apperr.NotFound("list or user not found")
	}
	if set[userID] {
		return apperr.Conflict("user is already in the list")
	}
	set[userID] = true
	return nil
}

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(_ context.Context, it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.lists[it.ListID]; !ok {
		return apperr.NotFound("list not found")
	}
	r.s.itemSeq++
	it.ID = r.s.itemSeq
	it.CreatedAt = time.Now()
	it.UpdatedAt = it.CreatedAt
	stored := *it
	stored.List = nil
	r.s.items[it.ID] = stored
	return nil
}

func (r *memItemRepo) GetByID(_ context.Context, id int64, rel repo.ItemRelations) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, apperr.NotFound("item not found")
	}
	if rel.List || rel.ListMembers {
		if row, ok := r.s.lists[it.ListID]; ok {
			it.List = r.s.buildList(row, repo.ListRelations{Members: rel.ListMembers})
		}
	}
	return &it, nil
}

func (r *memItemRepo) GetAll(_ context.Context, rel repo.ItemRelations) ([]entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]int64, 0, len(r.s.items))
	for id := range r.s.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]entity.Item, 0, len(ids))
	for _, id := range ids {
		it := r.s.items[id]
		if rel.List || rel.ListMembers {
			if row, ok := r.s.lists[it.ListID]; ok {
				it.List = r.s.buildList(row, repo.ListRelations{Members: rel.ListMembers})
			}
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *memItemRepo) Update(_ context.Context, it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[it.ID]; !ok {
		return apperr.NotFound("item not found")
	}
	stored := *it
	stored.List = nil
	stored.UpdatedAt = time.Now()
	r.s.items[it.ID] = stored
	return nil
}

func (r *memItemRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return apperr.NotFound("item not found")
	}
	delete(r.s.items, id)
	return nil
}

// capturePublisher records published share-notification jobs.
type capturePublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}

var (
	_ repo.UserRepository = (*memUserRepo)(nil)
	_ repo.ListRepository = (*memListRepo)(nil)
	_ repo.ItemRepository = (*memItemRepo)(nil)
)
