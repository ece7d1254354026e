package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/advboard/internal/common"
	"github.com/dmitrijs2005/advboard/internal/server/models"
	"github.com/dmitrijs2005/advboard/internal/server/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newAdvertService(t *testing.T, st *memStore) (*AdvertService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	return NewAdvertService(db, memManager{st}, validation.New()), mock
}

func seedUsers(st *memStore, ids ...int64) {
	for _, id := range ids {
		st.users[id] = &models.User{ID: id, Email: fmt.Sprintf("u%d@example.com", id)}
	}
}

func TestCreateAndList(t *testing.T) {
	st := newMemStore()
	seedUsers(st, 1)
	s, _ := newAdvertService(t, st)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		_, err := s.Create(ctx, 1, models.AdvertisementInput{Title: title, Description: "desc " + title})
		require.NoError(t, err)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, title := range []string{"A", "B", "C"} {
		v := list[i].View()
		assert.Equal(t, title, v.Title)
		assert.Equal(t, int64(1), v.Creator)
		_, err := time.Parse(time.RFC3339Nano, v.Date)
		assert.NoError(t, err)
	}
}

func TestCreate_Validation(t *testing.T) {
	st := newMemStore()
	seedUsers(st, 1)
	s, _ := newAdvertService(t, st)

	_, err := s.Create(context.Background(), 1, models.AdvertisementInput{Title: strings.Repeat("x", 25), Description: "d"})
	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "title", ve.Field)
	assert.Zero(t, st.writes)
}

func TestCreate_UnknownOwner(t *testing.T) {
	s, _ := newAdvertService(t, newMemStore())

	_, err := s.Create(context.Background(), 42, models.AdvertisementInput{Title: "t", Description: "d"})
	require.ErrorIs(t, err, common.ErrorInvalidOwner)
}

func TestGet_NotFound(t *testing.T) {
	s, _ := newAdvertService(t, newMemStore())

	_, err := s.Get(context.Background(), 1)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_PartialKeepsOtherField(t *testing.T) {
	st := newMemStore()
	seedUsers(st, 1)
	s, mock := newAdvertService(t, st)
	ctx := context.Background()

	adv, err := s.Create(ctx, 1, models.AdvertisementInput{Title: "old", Description: "keep me"})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()

	got, err := s.Update(ctx, 1, adv.ID, models.AdvertisementPatch{Title: strPtr("new")})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "keep me", got.Description)
	assert.True(t, got.CreatedAt.Equal(adv.CreatedAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_EmptyPatchIsNoop(t *testing.T) {
	st := newMemStore()
	seedUsers(st, 1)
	s, mock := newAdvertService(t, st)
	ctx := context.Background()

	adv, err := s.Create(ctx, 1, models.AdvertisementInput{Title: "t", Description: "d"})
	require.NoError(t, err)
	writes := st.writes

	mock.ExpectBegin()
	mock.ExpectCommit()

	got, err := s.Update(ctx, 1, adv.ID, models.AdvertisementPatch{})
	require.NoError(t, err)
	assert.Equal(t, adv.View(), got.View())
	assert.Equal(t, writes, st.writes)
}

func TestUpdateDelete_ForeignOwnerLooksMissing(t *testing.T) {
	st := newMemStore()
	seedUsers(st, 1, 2)
	s, mock := newAdvertService(t, st)
	ctx := context.Background()

	adv, err := s.Create(ctx, 1, models.AdvertisementInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, errForeign := s.Update(ctx, 2, adv.ID, models.AdvertisementPatch{Title: strPtr("x")})
	_, errMissing := s.Update(ctx, 2, 999, models.AdvertisementPatch{Title: strPtr("x")})
	errDelete := s.Delete(ctx, 2, adv.ID)

	require.ErrorIs(t, errForeign, common.ErrorNotFound)
	require.ErrorIs(t, errMissing, common.ErrorNotFound)
	require.ErrorIs(t, errDelete, common.ErrorNotFound)
	assert.Equal(t, errMissing.Error(), errForeign.Error())

	still, err := s.Get(ctx, adv.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", still.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_LookupBeforeValidation(t *testing.T) {
	st := newMemStore()
	seedUsers(st, 1, 2)
	s, mock := newAdvertService(t, st)
	ctx := context.Background()

	adv, err := s.Create(ctx, 1, models.AdvertisementInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectRollback()

	tooLong := models.AdvertisementPatch{Title: strPtr(strings.Repeat("x", 25))}

	_, err = s.Update(ctx, 2, adv.ID, tooLong)
	require.ErrorIs(t, err, common.ErrorNotFound, "foreign row must not reveal validation details")

	_, err = s.Update(ctx, 1, adv.ID, tooLong)
	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve))
}

func TestUpdate_Conflict(t *testing.T) {
	st := newMemStore()
	seedUsers(st, 1)
	s, mock := newAdvertService(t, st)
	ctx := context.Background()

	adv, err := s.Create(ctx, 1, models.AdvertisementInput{Title: "t", Description: "d"})
	require.NoError(t, err)
	st.failWith = common.ErrorAlreadyExists

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = s.Update(ctx, 1, adv.ID, models.AdvertisementPatch{Title: strPtr("x")})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestDelete_Owner(t *testing.T) {
	st := newMemStore()
	seedUsers(st, 1)
	s, mock := newAdvertService(t, st)
	ctx := context.Background()

	adv, err := s.Create(ctx, 1, models.AdvertisementInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()

	require.NoError(t, s.Delete(ctx, 1, adv.ID))
	_, err = s.Get(ctx, adv.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_BeginFails(t *testing.T) {
	st := newMemStore()
	seedUsers(st, 1)
	s, mock := newAdvertService(t, st)

	mock.ExpectBegin().WillReturnError(errors.New("no conn"))

	_, err := s.Update(context.Background(), 1, 1, models.AdvertisementPatch{})
	require.ErrorContains(t, err, "no conn")
}
