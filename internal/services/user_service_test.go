package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/identity"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	mu      sync.Mutex
	byID    map[int64]identity.User
	alias   map[int64]int64
	err     error
	idCalls map[int64]int
	names   int
}

func newFakeDirectory(users ...identity.User) *fakeDirectory {
	d := &fakeDirectory{
		byID:    make(map[int64]identity.User),
		alias:   make(map[int64]int64),
		idCalls: make(map[int64]int),
	}
	for _, u := range users {
		d.byID[u.ID] = u
	}
	return d
}

func (d *fakeDirectory) GetUserByID(_ context.Context, id int64) (*identity.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.idCalls[id]++
	if d.err != nil {
		return nil, d.err
	}
	if target, ok := d.alias[id]; ok {
		id = target
	}
	u, ok := d.byID[id]
	if !ok {
		return nil, identity.ErrUserNotFound
	}
	return &u, nil
}

func (d *fakeDirectory) GetUserByName(_ context.Context, name string) (*identity.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names++
	if d.err != nil {
		return nil, d.err
	}
	for _, u := range d.byID {
		if u.Login == name {
			return &u, nil
		}
	}
	return nil, identity.ErrUserNotFound
}

func (d *fakeDirectory) callsFor(id int64) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.idCalls[id]
}

// memStore is a UserStore with a unique index on ExternalUserID. When gate is
// set, FindByExternalID waits until gate callers have all missed, which
// forces concurrent callers into the insert race.
type memStore struct {
	mu      sync.Mutex
	rows    map[int64]models.User
	inserts int
	gate    *sync.WaitGroup
	loseRow bool
	findErr error
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[int64]models.User)}
}

func (s *memStore) FindByExternalID(_ context.Context, externalID int64) (*models.User, error) {
	s.mu.Lock()
	if s.findErr != nil {
		s.mu.Unlock()
		return nil, s.findErr
	}
	u, ok := s.rows[externalID]
	gate := s.gate
	s.mu.Unlock()

	if !ok && gate != nil {
		gate.Done()
		gate.Wait()
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *memStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate = nil
	if _, ok := s.rows[user.ExternalUserID]; ok {
		if s.loseRow {
			delete(s.rows, user.ExternalUserID)
		}
		return ErrConflict
	}
	user.ID = uuid.New()
	s.rows[user.ExternalUserID] = *user
	s.inserts++
	return nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func TestFindOrCreateByIDCreatesOnce(t *testing.T) {
	dir := newFakeDirectory(identity.User{ID: 42, Login: "alice"})
	store := newMemStore()
	svc := NewUserService(dir, store)
	ctx := context.Background()

	first, err := svc.FindOrCreateByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), first.ExternalUserID)
	assert.NotEqual(t, uuid.Nil, first.ID)

	for i := 0; i < 5; i++ {
		again, err := svc.FindOrCreateByID(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	}

	assert.Equal(t, 1, store.count())
	assert.Equal(t, 1, store.inserts)
	assert.Equal(t, 1, dir.callsFor(42), "existing rows must not hit the provider")
}

func TestFindOrCreateByIDNotFound(t *testing.T) {
	dir := newFakeDirectory()
	store := newMemStore()
	svc := NewUserService(dir, store)

	_, err := svc.FindOrCreateByID(context.Background(), 7)
	require.ErrorIs(t, err, ErrUserNotFound)
	require.ErrorIs(t, err, identity.ErrUserNotFound)
	assert.Equal(t, 0, store.count())
}

func TestFindOrCreateByIDProviderFailure(t *testing.T) {
	outage := errors.New("connection refused")
	dir := newFakeDirectory()
	dir.err = outage
	store := newMemStore()
	svc := NewUserService(dir, store)

	_, err := svc.FindOrCreateByID(context.Background(), 7)
	require.ErrorIs(t, err, outage)
	require.ErrorIs(t, err, ErrProviderUnavailable)
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, 0, store.count())
}

func TestFindOrCreateByIDStoreFailure(t *testing.T) {
	broken := errors.New("db down")
	dir := newFakeDirectory(identity.User{ID: 1, Login: "x"})
	store := newMemStore()
	store.findErr = broken
	svc := NewUserService(dir, store)

	_, err := svc.FindOrCreateByID(context.Background(), 1)
	require.ErrorIs(t, err, broken)
	assert.Equal(t, 0, dir.callsFor(1))
}

func TestFindOrCreateByIDTrustsProviderID(t *testing.T) {
	dir := newFakeDirectory(identity.User{ID: 100, Login: "merged"})
	dir.alias[5] = 100
	store := newMemStore()
	svc := NewUserService(dir, store)

	user, err := svc.FindOrCreateByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(100), user.ExternalUserID)

	again, err := svc.FindOrCreateByID(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, 0, dir.callsFor(100))
}

func TestFindOrCreateByIDConcurrentRace(t *testing.T) {
	dir := newFakeDirectory(identity.User{ID: 9, Login: "race"})
	store := newMemStore()
	store.gate = &sync.WaitGroup{}
	store.gate.Add(2)
	svc := NewUserService(dir, store)

	var wg sync.WaitGroup
	results := make([]*models.User, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.FindOrCreateByID(context.Background(), 9)
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int64(9), results[0].ExternalUserID)
	assert.Equal(t, int64(9), results[1].ExternalUserID)
	assert.Equal(t, results[0].ID, results[1].ID)
	assert.Equal(t, 1, store.count())
	assert.Equal(t, 1, store.inserts)
	assert.Equal(t, 2, dir.callsFor(9), "both callers missed locally")
}

func TestFindOrCreateByIDInconsistentStore(t *testing.T) {
	dir := newFakeDirectory(identity.User{ID: 3, Login: "ghost"})
	store := newMemStore()
	store.rows[3] = models.User{ID: uuid.New(), ExternalUserID: 3}
	store.loseRow = true
	svc := NewUserService(dir, &racyStore{memStore: store})

	_, err := svc.FindOrCreateByID(context.Background(), 3)
	require.ErrorIs(t, err, ErrInconsistentStore)
}

// racyStore misses on the first lookup regardless of contents.
type racyStore struct {
	*memStore
	looked bool
}

func (s *racyStore) FindByExternalID(ctx context.Context, externalID int64) (*models.User, error) {
	if !s.looked {
		s.looked = true
		return nil, ErrNotFound
	}
	return s.memStore.FindByExternalID(ctx, externalID)
}

func TestFindOrCreateByName(t *testing.T) {
	dir := newFakeDirectory(identity.User{ID: 42, Login: "alice"})
	store := newMemStore()
	svc := NewUserService(dir, store)
	ctx := context.Background()

	byName, err := svc.FindOrCreateByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(42), byName.ExternalUserID)
	assert.Equal(t, 1, store.count())
	assert.Equal(t, 1, dir.callsFor(42))

	byID, err := svc.FindOrCreateByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, byName.ID, byID.ID)
	assert.Equal(t, 1, dir.callsFor(42), "second call must skip the provider")

	again, err := svc.FindOrCreateByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, byName.ID, again.ID)
	assert.Equal(t, 2, dir.names, "names always round-trip to the provider")
	assert.Equal(t, 1, store.count())
}

func TestFindOrCreateByNameErrors(t *testing.T) {
	dir := newFakeDirectory()
	store := newMemStore()
	svc := NewUserService(dir, store)

	_, err := svc.FindOrCreateByName(context.Background(), "  ")
	require.ErrorIs(t, err, ErrInvalidUserName)
	assert.Equal(t, 0, dir.names)

	_, err = svc.FindOrCreateByName(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, 0, store.count())
}

func TestFindOrCreateRejectsReplyWithoutID(t *testing.T) {
	dir := newFakeDirectory(identity.User{ID: 0, Login: "ghost"})
	dir.alias[5] = 0
	db := dbtest.New(t)
	svc := NewUserService(dir, NewGormUserStore(db))

	_, err := svc.FindOrCreateByID(context.Background(), 5)
	require.ErrorIs(t, err, ErrProviderUnavailable)

	_, err = svc.FindOrCreateByName(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrProviderUnavailable)
	assert.NotErrorIs(t, err, ErrUserNotFound)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGormUserStore(t *testing.T) {
	db := dbtest.New(t)
	store := NewGormUserStore(db)
	ctx := context.Background()

	_, err := store.FindByExternalID(ctx, 42)
	require.ErrorIs(t, err, ErrNotFound)

	user := &models.User{ExternalUserID: 42}
	require.NoError(t, store.Insert(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)

	found, err := store.FindByExternalID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	err = store.Insert(ctx, &models.User{ExternalUserID: 42})
	require.ErrorIs(t, err, ErrConflict)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// The test database is pinned to one connection, so these callers are
// serialized at the store; TestFindOrCreateByIDConcurrentRace covers the race.
func TestUserServiceAgainstDatabaseManyCallers(t *testing.T) {
	db := dbtest.New(t)
	dir := newFakeDirectory(identity.User{ID: 77, Login: "bulk"})
	svc := NewUserService(dir, NewGormUserStore(db))

	const callers = 8
	var wg sync.WaitGroup
	ids := make([]int64, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := svc.FindOrCreateByID(context.Background(), 77)
			errs[i] = err
			if err == nil {
				ids[i] = u.ExternalUserID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, int64(77), ids[i])
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("external_user_id = ?", 77).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
