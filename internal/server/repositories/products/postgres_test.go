package products

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/beautystore/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var productColumns = []string{"id", "name", "price_cents", "category", "description", "image_path"}

const (
	listQ = `(?s)^SELECT\s+id,\s*name,\s*price_cents,\s*category,\s*description,\s*image_path\s+FROM\s+products\s+WHERE\s+\(\$1\s*=\s*''\s+OR\s+category\s*=\s*\$1\)\s+ORDER\s+BY\s+name,\s*id\s*$`
	byIDQ = `(?s)^SELECT\s+id,\s*name,\s*price_cents,\s*category,\s*description,\s*image_path\s+FROM\s+products\s+WHERE\s+id\s*=\s*\$1\s*$`
)

func TestList_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(productColumns).
		AddRow("p1", "Lipstick", int64(2490), "makeup", "matte", "products/l.jpg").
		AddRow("p2", "Mascara", int64(2990), "makeup", "", "")
	mock.ExpectQuery(listQ).WithArgs("makeup").WillReturnRows(rows)

	got, err := repo.List(context.Background(), "makeup")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "p1" || got[0].PriceCents != 2490 || got[1].ImagePath != "" {
		t.Fatalf("unexpected products: %+v", got)
	}
}

func TestList_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WithArgs("").WillReturnRows(sqlmock.NewRows(productColumns))

	got, err := repo.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no products, got %d", len(got))
	}
}

func TestList_ScanError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(productColumns).
		AddRow("p1", "Lipstick", "not-a-number", "makeup", "", "")
	mock.ExpectQuery(listQ).WithArgs("").WillReturnRows(rows)

	_, err := repo.List(context.Background(), "")
	if err == nil || !regexp.MustCompile(`^db error: `).MatchString(err.Error()) {
		t.Fatalf("expected wrapped scan error, got %v", err)
	}
}

func TestList_RowError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(productColumns).
		AddRow("p1", "Lipstick", int64(1), "makeup", "", "").
		RowError(0, errors.New("row broke"))
	mock.ExpectQuery(listQ).WithArgs("").WillReturnRows(rows)

	_, err := repo.List(context.Background(), "")
	if err == nil || !regexp.MustCompile(`db error: .*row broke`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped row error, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		rows := sqlmock.NewRows(productColumns).
			AddRow("p1", "Serum", int64(5490), "skincare", "30 ml", "products/s.jpg")
		mock.ExpectQuery(byIDQ).WithArgs("p1").WillReturnRows(rows)

		got, err := repo.GetByID(context.Background(), "p1")
		if err != nil {
			t.Fatalf("GetByID error: %v", err)
		}
		if got.Name != "Serum" || got.Category != "skincare" {
			t.Fatalf("unexpected product: %+v", got)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(byIDQ).WithArgs("nope").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), "nope")
		if !errors.Is(err, common.ErrorNotFound) {
			t.Fatalf("want common.ErrorNotFound, got %v", err)
		}
	})
}
