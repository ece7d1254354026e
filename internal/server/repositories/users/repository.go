package users

import (
	"context"

	"github.com/dmitrijs2005/advboard/internal/server/models"
)

// Repository is the credential store.
type Repository interface {
	// Create persists user and fills in ID and CreatedAt. A duplicate email
	// fails with common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
