package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/advboard/internal/dbx"
	"github.com/dmitrijs2005/advboard/internal/server/models"
	"github.com/dmitrijs2005/advboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/advboard/internal/server/validation"
)

// AdvertService implements the advertisement operations. Mutations look the
// row up filtered by both id and owner, so a foreign advertisement is
// indistinguishable from a missing one.
type AdvertService struct {
	db          dbx.Session
	repomanager repomanager.RepositoryManager
	validator   *validation.Validator
}

func NewAdvertService(db dbx.Session, m repomanager.RepositoryManager, v *validation.Validator) *AdvertService {
	return &AdvertService{db: db, repomanager: m, validator: v}
}

func (s *AdvertService) List(ctx context.Context) ([]*models.Advertisement, error) {
	return s.repomanager.Adverts(dbx.SessionFromContext(ctx, s.db)).List(ctx)
}

func (s *AdvertService) Get(ctx context.Context, id int64) (*models.Advertisement, error) {
	return s.repomanager.Adverts(dbx.SessionFromContext(ctx, s.db)).GetByID(ctx, id)
}

// Create stores a new advertisement owned by ownerID.
func (s *AdvertService) Create(ctx context.Context, ownerID int64, in models.AdvertisementInput) (*models.Advertisement, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	repo := s.repomanager.Adverts(dbx.SessionFromContext(ctx, s.db))
	adv, err := repo.Create(ctx, &models.Advertisement{
		Title:       in.Title,
		Description: in.Description,
		CreatorID:   ownerID,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating advertisement: %w", err)
	}
	return adv, nil
}

// Update applies patch to the advertisement id owned by ownerID. The owned
// lookup happens before validation; an empty patch returns the row unchanged.
// The patch is merged onto the locked row, so absent fields keep their
// stored values.
func (s *AdvertService) Update(ctx context.Context, ownerID, id int64, patch models.AdvertisementPatch) (*models.Advertisement, error) {
	var result *models.Advertisement

	err := dbx.WithTx(ctx, dbx.SessionFromContext(ctx, s.db), nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Adverts(tx)

		adv, err := repo.GetOwned(ctx, id, ownerID)
		if err != nil {
			return err
		}

		if err := s.validator.Struct(patch); err != nil {
			return err
		}

		if patch.IsEmpty() {
			result = adv
			return nil
		}

		patch.Apply(adv)
		result, err = repo.Update(ctx, adv)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the advertisement id owned by ownerID.
func (s *AdvertService) Delete(ctx context.Context, ownerID, id int64) error {
	return dbx.WithTx(ctx, dbx.SessionFromContext(ctx, s.db), nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Adverts(tx)

		if _, err := repo.GetOwned(ctx, id, ownerID); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}
