// Command keygen generates the RSA signing key pair and session secret
// and stores them in the settings table. Re-running it rotates the key
// pair in place; tokens signed with the previous key stop verifying.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/antonkvl/authgate/internal/flagx"
	"github.com/antonkvl/authgate/internal/logging"
	"github.com/antonkvl/authgate/internal/server/config"
	"github.com/antonkvl/authgate/internal/server/repositories/repomanager"
	"github.com/antonkvl/authgate/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	// -e is owned by this command, the rest belongs to config.
	args := flagx.FilterArgs(os.Args[1:], []string{"-e"})
	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	encrypted := fs.Bool("e", false, "store the private key passphrase-encrypted")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		log.Fatalf("db migration error: %v", err)
	}

	g := services.NewKeyGenerator(db, m, logger)
	if err := g.Generate(ctx, *encrypted); err != nil {
		log.Fatalf("key generation failed: %v", err)
	}
}
