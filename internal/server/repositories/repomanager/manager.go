package repomanager

import (
	"context"
	"database/sql"

	"github.com/bumbitzu/cheatsheet/internal/dbx"
	"github.com/bumbitzu/cheatsheet/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
