package favorites

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/beautystore/internal/dbx"
	"github.com/dmitrijs2005/beautystore/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert returns the driver error unchanged so callers can detect a unique
// violation with dbx.IsUniqueViolation.
func (r *PostgresRepository) Insert(ctx context.Context, userID, productID string) error {
	query :=
		`INSERT INTO favorites (user_id, product_id)
		 VALUES ($1, $2)
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, productID string) (int64, error) {
	query :=
		`DELETE FROM favorites
		 WHERE user_id = $1 AND product_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Favorite, error) {
	query :=
		`SELECT f.user_id, f.product_id,
		        p.id, p.name, p.price_cents, p.category, p.description, p.image_path
		 FROM favorites f
		 LEFT JOIN products p ON p.id = f.product_id
		 WHERE f.user_id = $1
		 ORDER BY f.created_at, f.product_id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Favorite
	for rows.Next() {
		var (
			f                               models.Favorite
			id, name, category, descr, path sql.NullString
			price                           sql.NullInt64
		)
		if err := rows.Scan(&f.UserID, &f.ProductID, &id, &name, &price, &category, &descr, &path); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if id.Valid {
			f.Product = &models.Product{
				ID:          id.String,
				Name:        name.String,
				PriceCents:  price.Int64,
				Category:    category.String,
				Description: descr.String,
				ImagePath:   path.String,
			}
		}
		result = append(result, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
