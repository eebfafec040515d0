package items

import (
	"context"
	"database/sql"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/beautystore/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "items.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPutAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "k1", []byte{0x01, 0x02}))

	v, err := r.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, v)
}

func TestGet_Absent_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestPut_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "k", []byte("old")))
	require.NoError(t, r.Put(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestClear_RemovesEveryItem(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "b", []byte{2}))
	require.NoError(t, r.Put(ctx, "a", []byte{1}))

	require.NoError(t, r.Clear(ctx))
	for _, k := range []string{"a", "b"} {
		v, err := r.Get(ctx, k)
		require.NoError(t, err)
		assert.Nil(t, v)
	}
}

func TestDelete_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "x", []byte{1}))
	require.NoError(t, r.Delete(ctx, "x"))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestErrorsAreWrapped(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM secure_items WHERE key = ?`)).
		WithArgs("k").WillReturnError(sql.ErrConnDone)
	_, err = r.Get(ctx, "k")
	require.ErrorIs(t, err, sql.ErrConnDone)
	require.Contains(t, err.Error(), "failed to get item[k]")

	mock.ExpectExec(`INSERT INTO secure_items`).WithArgs("k", []byte("v")).WillReturnError(sql.ErrConnDone)
	require.ErrorContains(t, r.Put(ctx, "k", []byte("v")), "failed to put item[k]")

	mock.ExpectExec(`DELETE FROM secure_items WHERE key`).WithArgs("k").WillReturnError(sql.ErrConnDone)
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete item[k]")

	mock.ExpectExec(`DELETE FROM secure_items`).WillReturnError(sql.ErrConnDone)
	require.ErrorContains(t, r.Clear(ctx), "failed to clear items")

	require.NoError(t, mock.ExpectationsWereMet())
}
