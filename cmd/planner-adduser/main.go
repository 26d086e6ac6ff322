// Command planner-adduser creates a user account directly in the database,
// together with its default bank account.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"planner/internal/core"
	"planner/internal/services"
	"planner/internal/storage"
)

const defaultDBPath = "./data/planner.db"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("planner-adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Email address")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	firstName := fs.String("first", "", "First name")
	lastName := fs.String("last", "", "Last name")
	dbPath := fs.String("db", "", "Path to database file (default $SQLITE_DB_PATH or "+defaultDBPath+")")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		fmt.Fprintln(stdout, "Usage: planner-adduser -email <email> [-password <password>] [-db <db_path>]")
		fs.PrintDefaults()
		return errors.New("missing required flags: email")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	path := *dbPath
	if path == "" {
		path = os.Getenv("SQLITE_DB_PATH")
	}
	if path == "" {
		path = defaultDBPath
	}

	repo, err := storage.NewSQLiteRepository(path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repo.Close()

	users := services.NewUserService(repo, nil)
	u, err := users.Register(context.Background(), core.RegisterInput{
		Email:     *email,
		Password:  password,
		FirstName: *firstName,
		LastName:  *lastName,
	})
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ve):
		return fmt.Errorf("invalid user: %w", ve)
	case errors.Is(err, core.ErrConflict):
		return fmt.Errorf("user %s already exists", core.NormalizeEmail(*email))
	case err != nil:
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %s\n", u.Email, u.ID)

	total, err := repo.CountUsers(context.Background())
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	fmt.Fprintf(stdout, "Database %s now has %d user(s)\n", path, total)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Pipes and tests.
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return strings.TrimRight(scanner.Text(), "\r"), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
