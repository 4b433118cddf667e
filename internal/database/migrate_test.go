package database

import (
	"context"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMigrations = fstest.MapFS{
	"sql/1_create_a.up.sql":   {Data: []byte("CREATE TABLE a (x NUMBER);\n")},
	"sql/1_create_a.down.sql": {Data: []byte("DROP TABLE a;\n")},
	"sql/2_index_a.up.sql":    {Data: []byte("CREATE INDEX i1 ON a (x);\nCREATE INDEX i2 ON a (y);\n")},
	"sql/2_index_a.down.sql":  {Data: []byte("DROP INDEX i2;\nDROP INDEX i1;\n")},
}

func setupMigrator(t *testing.T) (*Migrator, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	m, err := NewMigratorFS(sqlx.NewDb(mockDB, "sqlmock"), testMigrations, "sql")
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m, mock
}

func expectVersionTable(mock sqlmock.Sqlmock, exists bool, applied ...int64) {
	n := 0
	if exists {
		n = 1
	}
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM user_tables WHERE table_name = :1`)).
		WithArgs("SCHEMA_MIGRATIONS").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(n))
	if !exists {
		mock.ExpectExec(`CREATE TABLE schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	rows := sqlmock.NewRows([]string{"version"})
	for _, v := range applied {
		rows.AddRow(v)
	}
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT version FROM schema_migrations ORDER BY version`)).WillReturnRows(rows)
}

func TestMigrator_UpFromScratch(t *testing.T) {
	m, mock := setupMigrator(t)

	expectVersionTable(mock, false)
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE a (x NUMBER)`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).WithArgs(int64(1), "create_a").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE INDEX i1 ON a (x)`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE INDEX i2 ON a (y)`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).WithArgs(int64(2), "index_a").WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := m.Up(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_UpSkipsApplied(t *testing.T) {
	m, mock := setupMigrator(t)

	expectVersionTable(mock, true, 1, 2)

	n, err := m.Up(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_UpStopsOnFailure(t *testing.T) {
	m, mock := setupMigrator(t)

	expectVersionTable(mock, true, 1)
	mock.ExpectExec(regexp.QuoteMeta(`CREATE INDEX i1 ON a (x)`)).WillReturnError(assert.AnError)

	n, err := m.Up(context.Background())

	assert.ErrorContains(t, err, "2_index_a")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_Down(t *testing.T) {
	m, mock := setupMigrator(t)

	expectVersionTable(mock, true, 1, 2)
	mock.ExpectExec(regexp.QuoteMeta(`DROP INDEX i2`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DROP INDEX i1`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM schema_migrations`).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := m.Down(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_Version(t *testing.T) {
	m, mock := setupMigrator(t)

	expectVersionTable(mock, true, 1, 2)
	v, err := m.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint(2), v)

	expectVersionTable(mock, true)
	v, err = m.Version(context.Background())
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestEmbeddedMigrations(t *testing.T) {
	m, err := NewMigrator(nil)
	require.NoError(t, err)
	defer m.Close()

	first, err := m.src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := m.src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)

	r, name, err := m.src.ReadUp(first)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, "create_english_test_questions", name)
}

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"single", "DROP TABLE a;\n", []string{"DROP TABLE a"}},
		{"multi line", "CREATE TABLE a (\n  x NUMBER\n);\n\nCREATE INDEX i ON a (x);", []string{"CREATE TABLE a (\n  x NUMBER\n)", "CREATE INDEX i ON a (x)"}},
		{"no terminator", "SELECT 1 FROM dual", []string{"SELECT 1 FROM dual"}},
		{"blank", " \n ; \n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitStatements(tt.body))
		})
	}
}
