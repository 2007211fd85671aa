package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/antonkvl/authgate/internal/common"
	"github.com/antonkvl/authgate/internal/dbx"
	"github.com/antonkvl/authgate/internal/logging"
	"github.com/antonkvl/authgate/internal/server/auth"
	"github.com/antonkvl/authgate/internal/server/models"
	"github.com/antonkvl/authgate/internal/server/repositories/repomanager"
)

// sessionSecretBytes is the size of the random session secret (256 bits).
const sessionSecretBytes = 32

// KeyGenerator produces and persists the signing key material. Re-running
// it overwrites the previous key pair in place, which is how rotation works.
type KeyGenerator struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

// NewKeyGenerator constructs a KeyGenerator.
func NewKeyGenerator(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *KeyGenerator {
	return &KeyGenerator{db: db, repomanager: m, logger: l.With("module", "keygen")}
}

// Generate creates a fresh session secret and RSA key pair and upserts both
// settings records. When encrypted is true the private key PEM is produced
// in passphrase-encrypted form, with the secret as passphrase.
//
// Both upserts run in one transaction: a public key without its matching
// private key (or a key without its passphrase) is a dangerous state, so
// the store must never reflect a partial result.
func (g *KeyGenerator) Generate(ctx context.Context, encrypted bool) error {
	secret, err := common.MakeRandHexString(sessionSecretBytes)
	if err != nil {
		return fmt.Errorf("generate session secret: %w", err)
	}

	key, err := auth.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("generate key pair: %w", err)
	}

	publicPEM, err := auth.EncodePublicKey(&key.PublicKey)
	if err != nil {
		return fmt.Errorf("encode public key: %w", err)
	}

	var privatePEM string
	if encrypted {
		privatePEM, err = auth.EncryptPrivateKey(key, secret)
	} else {
		privatePEM, err = auth.EncodePrivateKey(key)
	}
	if err != nil {
		return fmt.Errorf("encode private key: %w", err)
	}

	materialJSON, err := json.Marshal(models.KeyMaterial{
		Public:    publicPEM,
		Private:   privatePEM,
		Encrypted: encrypted,
	})
	if err != nil {
		return fmt.Errorf("marshal key material: %w", err)
	}
	secretJSON, err := json.Marshal(models.SessionSecret{Value: secret})
	if err != nil {
		return fmt.Errorf("marshal session secret: %w", err)
	}

	err = dbx.WithTx(ctx, g.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := g.repomanager.Settings(tx)
		if err := repo.Upsert(ctx, common.SettingKeyMaterial, materialJSON); err != nil {
			return err
		}
		return repo.Upsert(ctx, common.SettingSessionSecret, secretJSON)
	})
	if err != nil {
		return fmt.Errorf("persist key material: %w", err)
	}

	g.logger.Info(ctx, "key material generated",
		"encrypted", encrypted,
		"secret_preview", common.TruncateSecret(secret),
	)
	return nil
}
