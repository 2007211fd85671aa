// Command admin manages user accounts and groups from the terminal.
// There is no user-facing registration endpoint; accounts are created
// and maintained by an operator with database access.
//
// Usage:
//
//	admin [flags] useradd <email> <name>
//	admin [flags] passwd <email>
//	admin [flags] activate <email>
//	admin [flags] deactivate <email>
//	admin [flags] groupadd <name>
//	admin [flags] join <email> <group>
//	admin [flags] leave <email> <group>
//	admin [flags] users
//
// Passwords are read from the terminal with echo disabled and confirmed
// before hashing. Flags are the shared config flags (-d for the DSN).
package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/antonkvl/authgate/internal/common"
	"github.com/antonkvl/authgate/internal/server/config"
	"github.com/antonkvl/authgate/internal/server/models"
	"github.com/antonkvl/authgate/internal/server/repositories/repomanager"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	args := positionalArgs(os.Args[1:])
	if len(args) == 0 {
		log.Fatal("usage: admin <useradd|passwd|activate|deactivate|groupadd|join|leave|users> [args]")
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		log.Fatalf("db migration error: %v", err)
	}

	if err := run(ctx, db, m, args); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, db *sql.DB, m repomanager.RepositoryManager, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "useradd":
		if len(rest) != 2 {
			return fmt.Errorf("usage: admin useradd <email> <name>")
		}
		return userAdd(ctx, db, m, rest[0], rest[1])
	case "passwd":
		if len(rest) != 1 {
			return fmt.Errorf("usage: admin passwd <email>")
		}
		return passwd(ctx, db, m, rest[0])
	case "activate":
		if len(rest) != 1 {
			return fmt.Errorf("usage: admin activate <email>")
		}
		return m.Users(db).SetActive(ctx, rest[0], true)
	case "deactivate":
		if len(rest) != 1 {
			return fmt.Errorf("usage: admin deactivate <email>")
		}
		return m.Users(db).SetActive(ctx, rest[0], false)
	case "groupadd":
		if len(rest) != 1 {
			return fmt.Errorf("usage: admin groupadd <name>")
		}
		g, err := m.Groups(db).Create(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Printf("group %q created with id %d\n", g.Name, g.ID)
		return nil
	case "join":
		if len(rest) != 2 {
			return fmt.Errorf("usage: admin join <email> <group>")
		}
		return membership(ctx, db, m, rest[0], rest[1], true)
	case "leave":
		if len(rest) != 2 {
			return fmt.Errorf("usage: admin leave <email> <group>")
		}
		return membership(ctx, db, m, rest[0], rest[1], false)
	case "users":
		return listUsers(ctx, db, m)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func userAdd(ctx context.Context, db *sql.DB, m repomanager.RepositoryManager, email, name string) error {
	hash, err := promptPasswordHash()
	if err != nil {
		return err
	}

	user, err := m.Users(db).Create(ctx, &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsActive:     true,
	})
	if err != nil {
		return err
	}

	fmt.Printf("user %s created with id %d\n", user.Email, user.ID)
	return nil
}

func passwd(ctx context.Context, db *sql.DB, m repomanager.RepositoryManager, email string) error {
	hash, err := promptPasswordHash()
	if err != nil {
		return err
	}
	if err := m.Users(db).UpdatePasswordHash(ctx, email, hash); err != nil {
		return err
	}
	fmt.Printf("password updated for %s\n", email)
	return nil
}

func membership(ctx context.Context, db *sql.DB, m repomanager.RepositoryManager, email, group string, join bool) error {
	user, err := m.Users(db).GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("user %s: %w", email, err)
	}
	g, err := m.Groups(db).GetByName(ctx, group)
	if err != nil {
		return fmt.Errorf("group %s: %w", group, err)
	}
	if join {
		return m.Groups(db).AddMember(ctx, user.ID, g.ID)
	}
	return m.Groups(db).RemoveMember(ctx, user.ID, g.ID)
}

func listUsers(ctx context.Context, db *sql.DB, m repomanager.RepositoryManager) error {
	users, err := m.Users(db).List(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		state := "active"
		if !u.IsActive {
			state = "inactive"
		}
		fmt.Printf("%d\t%s\t%s\t%s\n", u.ID, u.Email, u.Name, state)
	}
	return nil
}

// promptPasswordHash reads the password twice with echo disabled and
// returns its bcrypt hash. The plaintext buffers are wiped after use.
func promptPasswordHash() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(os.Stderr, "Repeat password: ")
	second, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	defer common.WipeByteArray(first)
	defer common.WipeByteArray(second)

	if len(first) == 0 {
		return "", fmt.Errorf("password must not be empty")
	}
	if !bytes.Equal(first, second) {
		return "", fmt.Errorf("passwords do not match")
	}

	hash, err := bcrypt.GenerateFromPassword(first, bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// positionalArgs strips the shared config flags (and their values),
// leaving just the subcommand and its arguments.
func positionalArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			// "-d=dsn" carries its value, "-d dsn" takes the next arg
			if !strings.Contains(arg, "=") && i+1 < len(args) {
				i++
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}
