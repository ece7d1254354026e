// Package repomanager vends repository implementations bound to a store
// handle and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/advboard/internal/dbx"
	"github.com/dmitrijs2005/advboard/internal/server/repositories/adverts"
	"github.com/dmitrijs2005/advboard/internal/server/repositories/users"
)

// RepositoryManager builds repositories over any DBTX, so the same code runs
// on the pool, on a per-request connection or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Adverts(db dbx.DBTX) adverts.Repository
}
