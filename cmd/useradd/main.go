// Command useradd registers a user in the Postgres user store. The password
// is read from the terminal without echo, or from the first line of stdin
// when stdin is not a terminal.
//
//	useradd -d postgres://... -u alice
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bumbitzu/cheatsheet/internal/common"
	"github.com/bumbitzu/cheatsheet/internal/flagx"
	"github.com/bumbitzu/cheatsheet/internal/server/auth"
	"github.com/bumbitzu/cheatsheet/internal/server/config"
	"github.com/bumbitzu/cheatsheet/internal/server/repositories/repomanager"
	"github.com/bumbitzu/cheatsheet/internal/server/services"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatalf("useradd: %v", err)
	}
}

func run(ctx context.Context, args []string, stdin *os.File, stdout io.Writer) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
	username := fs.String("u", "", "username to create")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-u"})); err != nil {
		return err
	}
	if *username == "" {
		return errors.New("-u is required")
	}
	if cfg.DatabaseDSN == "" {
		return errors.New("a database DSN is required (-d or CHEATSHEET_DATABASE_DSN)")
	}

	password, err := readPassword(stdin, int(stdin.Fd()), stdout)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	us := services.NewUserService(db, rm, auth.NewBcryptHasher(cfg.BcryptCost))
	u, err := us.Register(ctx, *username, password)
	if errors.Is(err, common.ErrorAlreadyExists) {
		return fmt.Errorf("user %q already exists", *username)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "created user %s (%s)\n", u.UserName, u.ID)
	return nil
}
