// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and issuing/verifying JWTs.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/advboard/internal/common"
	"github.com/dmitrijs2005/advboard/internal/dbx"
	"github.com/dmitrijs2005/advboard/internal/server/auth"
	"github.com/dmitrijs2005/advboard/internal/server/config"
	"github.com/dmitrijs2005/advboard/internal/server/models"
	"github.com/dmitrijs2005/advboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/advboard/internal/server/validation"
)

// UserService provides authentication-related operations:
// - Register: validate, create the user, mint a token
// - Login: verify credentials and mint a token
// - VerifyToken: recover the caller id from a presented token
type UserService struct {
	db                          dbx.Session
	repomanager                 repomanager.RepositoryManager
	hasher                      auth.PasswordHasher
	validator                   *validation.Validator
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService. db is used only when a request
// carries no session of its own.
func NewUserService(db dbx.Session, m repomanager.RepositoryManager, h auth.PasswordHasher, v *validation.Validator, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		hasher:                      h,
		validator:                   v,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register validates in, stores the user with a hashed password and returns
// an access token bound to the new id. A taken email yields
// common.ErrorAlreadyExists and no row is written.
func (s *UserService) Register(ctx context.Context, in models.RegisterInput) (string, error) {
	if err := s.validator.Struct(in); err != nil {
		return "", err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Users(dbx.SessionFromContext(ctx, s.db))
	user, err := repo.Create(ctx, &models.User{Name: in.Name, Email: in.Email, PasswordHash: hash})
	if err != nil {
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return s.IssueToken(user.ID)
}

// Login checks the password of the user registered under in.Email.
// An unknown email yields common.ErrorNotFound, a wrong password
// common.ErrorAuthentication.
func (s *UserService) Login(ctx context.Context, in models.LoginInput) (string, error) {
	if err := s.validator.Struct(in); err != nil {
		return "", err
	}

	repo := s.repomanager.Users(dbx.SessionFromContext(ctx, s.db))
	user, err := repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", fmt.Errorf("user: %w", common.ErrorNotFound)
		}
		return "", fmt.Errorf("error searching user: %w", err)
	}

	ok, err := s.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return "", common.ErrorAuthentication
	}

	return s.IssueToken(user.ID)
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	repo := s.repomanager.Users(dbx.SessionFromContext(ctx, s.db))
	return repo.GetByID(ctx, id)
}

// IssueToken mints an access token for userID valid for the configured duration.
func (s *UserService) IssueToken(userID int64) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return token, nil
}

// VerifyToken returns the user id a valid token was issued to.
func (s *UserService) VerifyToken(token string) (int64, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}
