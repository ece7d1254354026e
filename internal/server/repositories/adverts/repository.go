package adverts

import (
	"context"

	"github.com/dmitrijs2005/advboard/internal/server/models"
)

// Repository is the advertisement store.
type Repository interface {
	// Create persists adv and fills in ID and CreatedAt. An unknown creator
	// fails with common.ErrorInvalidOwner.
	Create(ctx context.Context, adv *models.Advertisement) (*models.Advertisement, error)
	// List returns every advertisement ordered by id.
	List(ctx context.Context) ([]*models.Advertisement, error)
	GetByID(ctx context.Context, id int64) (*models.Advertisement, error)
	// GetOwned returns the advertisement only when it belongs to ownerID and
	// locks the row for the rest of the transaction. A foreign or missing
	// row both yield common.ErrorNotFound.
	GetOwned(ctx context.Context, id, ownerID int64) (*models.Advertisement, error)
	// Update writes the title and description of adv to the row adv.ID.
	Update(ctx context.Context, adv *models.Advertisement) (*models.Advertisement, error)
	Delete(ctx context.Context, id int64) error
}
