package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/JakeWimberley/Weathredds/internal/domain"
)

func TestTagRepository_GetByName(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		tagName string
		mock    func(mock sqlmock.Sqlmock)
		wantTag *domain.Tag
		wantErr bool
		errIs   error
	}{
		{
			name:    "success",
			tagName: "winter",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name FROM tags WHERE name = \$1`).
					WithArgs("winter").
					WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("tag-1", "winter"))
			},
			wantTag: &domain.Tag{ID: "tag-1", Name: "winter"},
		},
		{
			name:    "not found",
			tagName: "missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name FROM tags WHERE name = \$1`).
					WithArgs("missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name:    "db error",
			tagName: "winter",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name FROM tags WHERE name = \$1`).
					WithArgs("winter").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			repo := NewTagRepository(db)
			got, err := repo.GetByName(ctx, tt.tagName)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantTag, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTagRepository_HasEvent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		exists  bool
		wantErr bool
	}{
		{name: "tagged", exists: true},
		{name: "not tagged", exists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs("tag-1", "ev-1").
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))
			repo := NewTagRepository(db)
			got, err := repo.HasEvent(ctx, "tag-1", "ev-1")
			require.NoError(t, err)
			require.Equal(t, tt.exists, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTagRepository_RemoveEvent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM event_tags WHERE event_id = \$1 AND tag_id = \$2`).
					WithArgs("ev-1", "tag-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "tag not on event returns ErrNotFound",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM event_tags WHERE event_id = \$1 AND tag_id = \$2`).
					WithArgs("ev-1", "tag-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM event_tags`).
					WithArgs("ev-1", "tag-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			repo := NewTagRepository(db)
			err = repo.RemoveEvent(ctx, "tag-1", "ev-1")
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTagRepository_ListWithEventCounts(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT t.id, t.name, COUNT\(et.event_id\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "count"}).
			AddRow("tag-1", "severe", 3).
			AddRow("tag-2", "winter", 1))

	repo := NewTagRepository(db)
	counts, err := repo.ListWithEventCounts(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	require.Equal(t, "severe", counts[0].Tag.Name)
	require.Equal(t, 3, counts[0].NumEvents)
	require.NoError(t, mock.ExpectationsWereMet())
}
