package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharelist/sharelist-api/internal/domain/entity"
	"github.com/sharelist/sharelist-api/pkg/apperr"
	"github.com/sharelist/sharelist-api/pkg/mailer"
)

type listFixture struct {
	store *memStore
	lists *ListService
	items *ItemService
	pub   *capturePublisher

	alice, bob, carol *entity.User
}

func newListFixture(t *testing.T) *listFixture {
	t.Helper()
	store := newMemStore()
	pub := &capturePublisher{}
	f := &listFixture{
		store: store,
		pub:   pub,
		lists: NewListService(store.listRepo(), store.userRepo(), pub, nil),
		items: NewItemService(store.itemRepo(), store.listRepo(), nil),
	}
	f.alice = f.addUser(t, "a@x.com")
	f.bob = f.addUser(t, "b@x.com")
	f.carol = f.addUser(t, "c@x.com")
	return f
}

func (f *listFixture) addUser(t *testing.T, email string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "hash"}
	require.NoError(t, f.store.userRepo().Create(context.Background(), u))
	return u
}

func TestListService_Create(t *testing.T) {
	ctx := context.Background()
	f := newListFixture(t)

	l, err := f.lists.Create(ctx, "Groceries", f.alice.ID)
	require.NoError(t, err)
	assert.NotZero(t, l.ID)
	assert.Equal(t, "Groceries", l.Title)
	require.Len(t, l.Members, 1)
	assert.Equal(t, f.alice.ID, l.Members[0].ID)
	require.NotNil(t, l.CreatedBy)
	assert.Equal(t, f.alice.ID, l.CreatedBy.ID)

	t.Run("empty title", func(t *testing.T) {
		_, err := f.lists.Create(ctx, "   ", f.alice.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("unknown creator", func(t *testing.T) {
		_, err := f.lists.Create(ctx, "Groceries", 9999)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestListService_FindOne_MembershipGate(t *testing.T) {
	ctx := context.Background()
	f := newListFixture(t)

	l, err := f.lists.Create(ctx, "Groceries", f.alice.ID)
	require.NoError(t, err)

	got, err := f.lists.FindOne(ctx, l.ID, &f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, l.ID, got.ID)

	_, err = f.lists.FindOne(ctx, l.ID, &f.bob.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	// Anonymous reads skip the membership gate entirely.
	got, err = f.lists.FindOne(ctx, l.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)

	_, err = f.lists.FindOne(ctx, 9999, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListService_Update(t *testing.T) {
	ctx := context.Background()
	f := newListFixture(t)

	l, err := f.lists.Create(ctx, "Groceries", f.alice.ID)
	require.NoError(t, err)

	updated, err := f.lists.Update(ctx, l.ID, "Weekend Groceries", f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Weekend Groceries", updated.Title)

	got, err := f.lists.FindOne(ctx, l.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Weekend Groceries", got.Title)

	t.Run("non-member", func(t *testing.T) {
		_, err := f.lists.Update(ctx, l.ID, "Hijacked", f.bob.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := f.lists.Update(ctx, l.ID, "", f.alice.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})
}

func TestListService_Share(t *testing.T) {
	ctx := context.Background()
	f := newListFixture(t)

	l, err := f.lists.Create(ctx, "Groceries", f.alice.ID)
	require.NoError(t, err)

	shared, err := f.lists.Share(ctx, l.ID, "b@x.com", f.alice.ID)
	require.NoError(t, err)
	require.Len(t, shared.Members, 2)

	// Bob now has full access; any member may share onward.
	_, err = f.lists.FindOne(ctx, l.ID, &f.bob.ID)
	require.NoError(t, err)
	_, err = f.lists.Share(ctx, l.ID, "c@x.com", f.bob.ID)
	require.NoError(t, err)

	job, ok := f.pub.jobs[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "b@x.com", job.To)
	assert.Equal(t, "list_shared", job.Template)
	assert.Equal(t, "Groceries", job.Data["ListTitle"])
	assert.Equal(t, "a@x.com", job.Data["SharedBy"])
}

func TestListService_Share_Errors(t *testing.T) {
	ctx := context.Background()
	f := newListFixture(t)

	l, err := f.lists.Create(ctx, "Groceries", f.alice.ID)
	require.NoError(t, err)

	t.Run("unknown list", func(t *testing.T) {
		_, err := f.lists.Share(ctx, 9999, "b@x.com", f.alice.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("requester not a member", func(t *testing.T) {
		_, err := f.lists.Share(ctx, l.ID, "c@x.com", f.bob.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("unknown target email", func(t *testing.T) {
		_, err := f.lists.Share(ctx, l.ID, "nobody@x.com", f.alice.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("re-share is a conflict and changes nothing", func(t *testing.T) {
		_, err := f.lists.Share(ctx, l.ID, "b@x.com", f.alice.ID)
		require.NoError(t, err)

		_, err = f.lists.Share(ctx, l.ID, "b@x.com", f.alice.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))

		got, err := f.lists.FindOne(ctx, l.ID, nil)
		require.NoError(t, err)
		assert.Len(t, got.Members, 2)
	})
}

func TestListService_Share_RaceLosesAtStorage(t *testing.T) {
	// Two concurrent shares of the same user can both pass the in-memory
	// member check; the storage unique key decides the loser.
	ctx := context.Background()
	f := newListFixture(t)

	l, err := f.lists.Create(ctx, "Groceries", f.alice.ID)
	require.NoError(t, err)

	// Simulate the loser: membership was added between the service's check
	// and its AddMember call.
	require.NoError(t, f.store.listRepo().AddMember(ctx, l.ID, f.bob.ID))
	err = f.store.listRepo().AddMember(ctx, l.ID, f.bob.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestListService_Share_PublisherFailureDoesNotFailShare(t *testing.T) {
	ctx := context.Background()
	f := newListFixture(t)
	f.pub.err = errors.New("broker down")

	l, err := f.lists.Create(ctx, "Groceries", f.alice.ID)
	require.NoError(t, err)

	shared, err := f.lists.Share(ctx, l.ID, "b@x.com", f.alice.ID)
	require.NoError(t, err)
	assert.Len(t, shared.Members, 2)
}

func TestListService_Remove_CascadesItems(t *testing.T) {
	ctx := context.Background()
	f := newListFixture(t)

	l, err := f.lists.Create(ctx, "Groceries", f.alice.ID)
	require.NoError(t, err)

	for _, title := range []string{"Milk", "Eggs", "Bread"} {
		_, err := f.items.Create(ctx, CreateItemInput{
			Title:    title,
			Deadline: time.Now().Add(24 * time.Hour),
			ListID:   l.ID,
		}, f.alice.ID)
		require.NoError(t, err)
	}
	all, err := f.items.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	t.Run("non-member cannot delete", func(t *testing.T) {
		err := f.lists.Remove(ctx, l.ID, f.bob.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	require.NoError(t, f.lists.Remove(ctx, l.ID, f.alice.ID))

	_, err = f.lists.FindOne(ctx, l.ID, nil)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	all, err = f.items.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "items must die with their list")
}

func TestListService_FindAll_IsPublic(t *testing.T) {
	ctx := context.Background()
	f := newListFixture(t)

	_, err := f.lists.Create(ctx, "Groceries", f.alice.ID)
	require.NoError(t, err)
	_, err = f.lists.Create(ctx, "Chores", f.bob.ID)
	require.NoError(t, err)

	all, err := f.lists.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Len(t, all[0].Members, 1)
}
