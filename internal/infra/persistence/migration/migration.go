// Package migration applies the embedded SQL schema with golang-migrate.
package migration

import (
	"database/sql"
	"embed"
	"log/slog"

	"storefront/internal/errors"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Runner applies schema migrations to one database.
type Runner struct {
	m      *migrate.Migrate
	logger *slog.Logger
}

// NewRunner binds the embedded migrations to an open database handle.
func NewRunner(db *sql.DB, logger *slog.Logger) (*Runner, error) {
	source, err := iofs.New(migrationFiles, "sql")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open embedded migrations")
	}

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migrator")
	}

	return &Runner{m: m, logger: logger}, nil
}

// Up applies every pending migration.
func (r *Runner) Up() error {
	return r.report("up", r.m.Up())
}

// Down rolls back the given number of migrations.
func (r *Runner) Down(steps int) error {
	if steps <= 0 {
		return errors.Errorf("steps must be positive, got %d", steps)
	}

	return r.report("down", r.m.Steps(-steps))
}

// Version returns the current schema version and whether it is dirty.
func (r *Runner) Version() (uint, bool, error) {
	version, dirty, err := r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to read schema version")
	}

	return version, dirty, nil
}

// Close releases the source and the database driver.
func (r *Runner) Close() error {
	srcErr, dbErr := r.m.Close()

	return errors.Join(srcErr, dbErr)
}

func (r *Runner) report(direction string, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		r.logger.Info("No migrations to apply", slog.String("direction", direction))

		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "migrate %s failed", direction)
	}

	version, dirty, verr := r.Version()
	if verr != nil {
		return verr
	}
	r.logger.Info("Migrations applied",
		slog.String("direction", direction),
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)

	return nil
}
