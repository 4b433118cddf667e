package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strings"

	"english-placement/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const versionTable = "schema_migrations"

// Migrator applies the embedded SQL migrations and records applied versions
// in the schema_migrations table.
type Migrator struct {
	db  *sqlx.DB
	src source.Driver
}

// NewMigrator creates a Migrator reading the migrations embedded in the binary
func NewMigrator(db *sqlx.DB) (*Migrator, error) {
	return NewMigratorFS(db, migrationsFS, "migrations")
}

// NewMigratorFS creates a Migrator reading migrations from dir of fsys
func NewMigratorFS(db *sqlx.DB, fsys fs.FS, dir string) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open migration source: %w", err)
	}
	return &Migrator{db: db, src: src}, nil
}

// Close releases the migration source
func (m *Migrator) Close() error {
	return m.src.Close()
}

// Up applies every pending migration in version order and returns how many ran
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, err
	}
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	v, err := m.src.First()
	for ; err == nil; v, err = m.src.Next(v) {
		if slices.Contains(applied, v) {
			continue
		}
		r, name, rerr := m.src.ReadUp(v)
		if rerr != nil {
			return count, fmt.Errorf("could not read migration %d: %w", v, rerr)
		}
		if err := m.exec(ctx, r); err != nil {
			return count, fmt.Errorf("could not execute migration %d_%s: %w", v, name, err)
		}
		if _, err := m.db.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES (:1, :2)`, int64(v), name); err != nil {
			return count, fmt.Errorf("could not record migration %d: %w", v, err)
		}
		logger.Get().Info("Executed migration", zap.Uint("version", v), zap.String("name", name))
		count++
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return count, fmt.Errorf("could not list migrations: %w", err)
	}

	logger.Get().Info("Migrations completed successfully", zap.Int("applied", count))
	return count, nil
}

// Down rolls back the latest steps applied migrations
func (m *Migrator) Down(ctx context.Context, steps int) (int, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, err
	}
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := len(applied) - 1; i >= 0 && count < steps; i-- {
		v := applied[i]
		r, name, err := m.src.ReadDown(v)
		if err != nil {
			return count, fmt.Errorf("could not read down migration %d: %w", v, err)
		}
		if err := m.exec(ctx, r); err != nil {
			return count, fmt.Errorf("could not revert migration %d_%s: %w", v, name, err)
		}
		if _, err := m.db.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = :1`, int64(v)); err != nil {
			return count, fmt.Errorf("could not unrecord migration %d: %w", v, err)
		}
		logger.Get().Info("Reverted migration", zap.Uint("version", v), zap.String("name", name))
		count++
	}
	return count, nil
}

// Version returns the highest applied version, 0 when nothing has run
func (m *Migrator) Version(ctx context.Context) (uint, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, err
	}
	applied, err := m.appliedVersions(ctx)
	if err != nil || len(applied) == 0 {
		return 0, err
	}
	return applied[len(applied)-1], nil
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	var n int
	if err := m.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM user_tables WHERE table_name = :1`, strings.ToUpper(versionTable)); err != nil {
		return fmt.Errorf("could not check %s table: %w", versionTable, err)
	}
	if n > 0 {
		return nil
	}
	_, err := m.db.ExecContext(ctx, `CREATE TABLE schema_migrations (
		version    NUMBER(19)    NOT NULL PRIMARY KEY,
		name       VARCHAR2(255) NOT NULL,
		applied_at TIMESTAMP     DEFAULT SYSTIMESTAMP NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("could not create %s table: %w", versionTable, err)
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) ([]uint, error) {
	var rows []int64
	if err := m.db.SelectContext(ctx, &rows, `SELECT version FROM schema_migrations ORDER BY version`); err != nil {
		return nil, fmt.Errorf("could not read applied migrations: %w", err)
	}
	out := make([]uint, 0, len(rows))
	for _, v := range rows {
		out = append(out, uint(v))
	}
	return out, nil
}

func (m *Migrator) exec(ctx context.Context, r io.ReadCloser) error {
	defer r.Close()
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	for _, stmt := range splitStatements(string(body)) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// splitStatements splits a migration file on statement-ending semicolons.
// The Oracle driver rejects a trailing semicolon, so it is dropped.
func splitStatements(body string) []string {
	var out []string
	for _, part := range strings.Split(body, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
