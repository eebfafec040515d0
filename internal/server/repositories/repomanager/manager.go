package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/beautystore/internal/dbx"
	"github.com/dmitrijs2005/beautystore/internal/server/repositories/favorites"
	"github.com/dmitrijs2005/beautystore/internal/server/repositories/products"
	"github.com/dmitrijs2005/beautystore/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Products(db dbx.DBTX) products.Repository
	Favorites(db dbx.DBTX) favorites.Repository
}
