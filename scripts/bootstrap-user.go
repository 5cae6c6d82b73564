package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/studyspot/studyspot/internal/auth"
	"github.com/studyspot/studyspot/internal/metrics"
	"github.com/studyspot/studyspot/internal/repository"
	"github.com/studyspot/studyspot/internal/service"
)

type output struct {
	UserID   string `json:"user_id"`
	NetID    string `json:"netid"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "", "Institutional email of the account")
		password    = flag.String("password", "", "Account password (generated when empty)")
		domain      = flag.String("domain", envOr("INSTITUTION_DOMAIN", "nyu.edu"), "Required email domain")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *email == "" {
		fmt.Fprintln(os.Stderr, "-email is required")
		os.Exit(1)
	}

	generated := *password == ""
	if generated {
		p, err := randomPassword()
		if err != nil {
			fmt.Fprintln(os.Stderr, "generate password:", err)
			os.Exit(1)
		}
		*password = p
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	accounts := service.NewAccountService(repo, auth.NewHasher(auth.DefaultParams), *domain, metrics.NewNoop())
	user, err := accounts.Signup(ctx, service.SignupInput{
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *password,
	})
	if err != nil {
		var fe *service.FieldError
		if errors.As(err, &fe) {
			fmt.Fprintf(os.Stderr, "invalid %s: %v\n", fe.Field, fe.Err)
		} else {
			fmt.Fprintln(os.Stderr, "create user:", err)
		}
		os.Exit(1)
	}

	out := output{UserID: user.ID, NetID: user.NetID, Email: user.Email}
	if generated {
		out.Password = *password
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(user.NetID)
		if generated {
			fmt.Println(*password)
		}
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}

func randomPassword() (string, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
