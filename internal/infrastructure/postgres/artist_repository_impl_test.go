package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-music-auth/internal/domain/entity"
	"github.com/oksasatya/go-music-auth/internal/domain/repository"
)

func TestArtistRepository_GetByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArtistRepository(db)

	mock.ExpectQuery(`(?s)SELECT\s+id,\s*user_id,\s*created_at\s+FROM\s+artists\s+WHERE\s+user_id\s*=\s*\$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).AddRow(int64(42), int64(7), time.Now()))

	a, err := repo.GetByUserID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), a.ID)
	assert.Equal(t, int64(7), a.UserID)
}

func TestArtistRepository_GetByUserID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArtistRepository(db)

	mock.ExpectQuery(`FROM\s+artists`).WithArgs(int64(7)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUserID(context.Background(), 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestArtistRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArtistRepository(db)

	mock.ExpectQuery(`INSERT\s+INTO\s+artists`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), time.Now()))

	a := &entity.Artist{UserID: 7}
	require.NoError(t, repo.Create(context.Background(), a))
	assert.Equal(t, int64(3), a.ID)

	mock.ExpectQuery(`INSERT\s+INTO\s+artists`).
		WithArgs(int64(7)).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, repo.Create(context.Background(), &entity.Artist{UserID: 7}), repository.ErrConflict)
}
