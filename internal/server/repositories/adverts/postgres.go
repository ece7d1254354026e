// Package adverts provides the PostgreSQL-backed advertisement store.
package adverts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/advboard/internal/common"
	"github.com/dmitrijs2005/advboard/internal/dbx"
	"github.com/dmitrijs2005/advboard/internal/server/models"
	"github.com/dmitrijs2005/advboard/internal/server/repositories/pgerr"
)

// PostgresRepository implements Repository over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAdvert(s scanner) (*models.Advertisement, error) {
	var a models.Advertisement
	if err := s.Scan(&a.ID, &a.Title, &a.Description, &a.CreatorID, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, adv *models.Advertisement) (*models.Advertisement, error) {
	query := `
		INSERT INTO advertisements (title, description, creator)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, adv.Title, adv.Description, adv.CreatorID).
		Scan(&adv.ID, &adv.CreatedAt)
	if err != nil {
		return nil, pgerr.Classify(err)
	}
	return adv, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Advertisement, error) {
	query := `
		SELECT id, title, description, creator, created_at
		FROM advertisements
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select advertisements: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Advertisement, 0)
	for rows.Next() {
		a, err := scanAdvert(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Advertisement, error) {
	query := `
		SELECT id, title, description, creator, created_at
		FROM advertisements
		WHERE id = $1
	`
	return r.getOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetOwned(ctx context.Context, id, ownerID int64) (*models.Advertisement, error) {
	query := `
		SELECT id, title, description, creator, created_at
		FROM advertisements
		WHERE id = $1 AND creator = $2
		FOR UPDATE
	`
	return r.getOne(r.db.QueryRowContext(ctx, query, id, ownerID))
}

func (r *PostgresRepository) Update(ctx context.Context, adv *models.Advertisement) (*models.Advertisement, error) {
	query := `
		UPDATE advertisements
		SET title = $2,
			description = $3
		WHERE id = $1
		RETURNING id, title, description, creator, created_at
	`
	a, err := scanAdvert(r.db.QueryRowContext(ctx, query, adv.ID, adv.Title, adv.Description))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, pgerr.Classify(err)
	}
	return a, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM advertisements WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) getOne(row *sql.Row) (*models.Advertisement, error) {
	a, err := scanAdvert(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}
