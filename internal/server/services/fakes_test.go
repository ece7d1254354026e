package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/advboard/internal/common"
	"github.com/dmitrijs2005/advboard/internal/dbx"
	"github.com/dmitrijs2005/advboard/internal/server/models"
	"github.com/dmitrijs2005/advboard/internal/server/repositories/adverts"
	"github.com/dmitrijs2005/advboard/internal/server/repositories/users"
)

// memStore is an in-memory stand-in for the database that enforces the same
// email uniqueness and owner reference constraints as the real schema.
type memStore struct {
	mu       sync.Mutex
	users    map[int64]*models.User
	adverts  map[int64]*models.Advertisement
	nextUser int64
	nextAdv  int64
	writes   int
	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[int64]*models.User{},
		adverts: map[int64]*models.Advertisement{},
	}
}

type memUsers struct{ st *memStore }

func (r memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.writes++
	if r.st.failWith != nil {
		return nil, r.st.failWith
	}
	for _, existing := range r.st.users {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	r.st.nextUser++
	cp := *u
	cp.ID = r.st.nextUser
	cp.CreatedAt = time.Now()
	r.st.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	u, ok := r.st.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.failWith != nil {
		return nil, r.st.failWith
	}
	for _, u := range r.st.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memAdverts struct{ st *memStore }

func (r memAdverts) Create(ctx context.Context, a *models.Advertisement) (*models.Advertisement, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.writes++
	if _, ok := r.st.users[a.CreatorID]; !ok {
		return nil, common.ErrorInvalidOwner
	}
	r.st.nextAdv++
	cp := *a
	cp.ID = r.st.nextAdv
	cp.CreatedAt = time.Now()
	r.st.adverts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memAdverts) List(ctx context.Context) ([]*models.Advertisement, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	out := make([]*models.Advertisement, 0, len(r.st.adverts))
	for _, a := range r.st.adverts {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memAdverts) GetByID(ctx context.Context, id int64) (*models.Advertisement, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	a, ok := r.st.adverts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (r memAdverts) GetOwned(ctx context.Context, id, ownerID int64) (*models.Advertisement, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil || a.CreatorID != ownerID {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

func (r memAdverts) Update(ctx context.Context, adv *models.Advertisement) (*models.Advertisement, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.writes++
	if r.st.failWith != nil {
		return nil, r.st.failWith
	}
	a, ok := r.st.adverts[adv.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	a.Title, a.Description = adv.Title, adv.Description
	cp := *a
	return &cp, nil
}

func (r memAdverts) Delete(ctx context.Context, id int64) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.writes++
	if _, ok := r.st.adverts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.st.adverts, id)
	return nil
}

type memManager struct{ st *memStore }

func (m memManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m memManager) Users(dbx.DBTX) users.Repository              { return memUsers{m.st} }
func (m memManager) Adverts(dbx.DBTX) adverts.Repository          { return memAdverts{m.st} }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}
