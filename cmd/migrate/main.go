// Command migrate manages the database schema outside of server startup.
//
//	migrate up
//	migrate down [steps]
//	migrate version
//	migrate force <version>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/studyspot/studyspot/internal/config"
	"github.com/studyspot/studyspot/internal/repository"
)

var errUsage = errors.New("usage: migrate [-database-url URL] up | down [steps] | version | force <version>")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	databaseURL := fs.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string (defaults to the DB_* settings)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd, err := parseCommand(fs.Args())
	if err != nil {
		return err
	}

	if *databaseURL == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		*databaseURL = cfg.DatabaseURL()
	}

	mg, err := repository.NewMigrator(*databaseURL)
	if err != nil {
		return err
	}
	defer mg.Close()

	mg.SetLogger(func(format string, v ...any) {
		fmt.Fprintf(out, format, v...)
	})

	switch cmd.name {
	case "up":
		if err := mg.Up(); err != nil {
			return err
		}
	case "down":
		if err := mg.Down(cmd.n); err != nil {
			return err
		}
	case "force":
		if err := mg.Force(cmd.n); err != nil {
			return err
		}
	}

	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "version %d dirty=%t\n", version, dirty)
	return nil
}

type command struct {
	name string
	n    int
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, errUsage
	}

	cmd := command{name: args[0]}
	switch cmd.name {
	case "up", "version":
		if len(args) != 1 {
			return command{}, errUsage
		}
	case "down":
		cmd.n = 1
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return command{}, fmt.Errorf("invalid step count %q", args[1])
			}
			cmd.n = n
		} else if len(args) > 2 {
			return command{}, errUsage
		}
	case "force":
		if len(args) != 2 {
			return command{}, errUsage
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < -1 {
			return command{}, fmt.Errorf("invalid version %q", args[1])
		}
		cmd.n = n
	default:
		return command{}, errUsage
	}
	return cmd, nil
}
