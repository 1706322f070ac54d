package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"storefront/config"
	"storefront/internal/infra/auth"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/migration"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
)

// Supported subcommands:
// - up:            apply every pending migration
// - down:          roll back N migrations
// - version:       print the current schema version
// - hash-password: read a password from stdin and print its bcrypt hash for seeding users

func main() {
	upCmd := flag.NewFlagSet("up", flag.ExitOnError)
	downCmd := flag.NewFlagSet("down", flag.ExitOnError)
	versionCmd := flag.NewFlagSet("version", flag.ExitOnError)
	hashCmd := flag.NewFlagSet("hash-password", flag.ExitOnError)

	downSteps := downCmd.Int("steps", 1, "Number of migrations to roll back")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case upCmd.Name():
		_ = upCmd.Parse(os.Args[2:])
		err = withRunner(cfg, logger, func(r *migration.Runner) error {
			return r.Up()
		})
	case downCmd.Name():
		_ = downCmd.Parse(os.Args[2:])
		err = withRunner(cfg, logger, func(r *migration.Runner) error {
			return r.Down(*downSteps)
		})
	case versionCmd.Name():
		_ = versionCmd.Parse(os.Args[2:])
		err = withRunner(cfg, logger, func(r *migration.Runner) error {
			version, dirty, err := r.Version()
			if err != nil {
				return err
			}
			fmt.Printf("version=%d dirty=%t\n", version, dirty)

			return nil
		})
	case hashCmd.Name():
		_ = hashCmd.Parse(os.Args[2:])
		err = hashPassword(cfg, os.Stdin, os.Stdout)
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func withRunner(cfg *config.Config, logger *slog.Logger, fn func(*migration.Runner) error) error {
	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return errors.Wrap(err, "failed to connect to PostgreSQL")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	runner, err := migration.NewRunner(sqlDB, logger)
	if err != nil {
		_ = sqlDB.Close()

		return err
	}
	// Closing the runner also closes sqlDB through the migrate driver
	defer func() {
		if closeErr := runner.Close(); closeErr != nil {
			logger.Warn("Failed to close migration runner", slog.Any("error", closeErr))
		}
	}()

	return fn(runner)
}

func hashPassword(cfg *config.Config, in io.Reader, out io.Writer) error {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "failed to read password")
	}

	hash, err := auth.NewBcryptHasher(cfg).Hash(strings.TrimRight(line, "\r\n"))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, hash)

	return errors.WithStack(err)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: migrate <up|down|version|hash-password> [flags]")
	fmt.Fprintln(os.Stderr, "  up                  apply every pending migration")
	fmt.Fprintln(os.Stderr, "  down -steps N       roll back N migrations (default 1)")
	fmt.Fprintln(os.Stderr, "  version             print the current schema version")
	fmt.Fprintln(os.Stderr, "  hash-password       read a password from stdin and print its bcrypt hash")
}
