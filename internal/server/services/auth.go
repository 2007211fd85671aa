// Package services contains server-side business logic. This file implements
// AuthService: credential verification, group resolution, token issuance and
// token verification.
package services

import (
	"context"
	"crypto/rsa"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/antonkvl/authgate/internal/common"
	"github.com/antonkvl/authgate/internal/server/auth"
	"github.com/antonkvl/authgate/internal/server/config"
	"github.com/antonkvl/authgate/internal/server/models"
	"github.com/antonkvl/authgate/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// AuthService provides the login and verify operations. It holds no
// per-request state; key material is fetched fresh from the settings store
// on every call so key rotation takes effect without a stale-cache window.
type AuthService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	tokenValidity time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	validity := cfg.TokenValidityDuration
	if validity <= 0 {
		validity = auth.DefaultTokenValidity
	}
	return &AuthService{
		db:            db,
		repomanager:   m,
		tokenValidity: validity,
	}
}

// TokenValidity returns the configured token lifetime. The session boundary
// uses it for the cookie max-age so the two cannot drift apart.
func (s *AuthService) TokenValidity() time.Duration {
	return s.tokenValidity
}

// Login validates the email/password pair and returns a signed token with
// its claims.
//
// A missing user and a wrong password both map to ErrInvalidCredentials so
// the response cannot be used for email enumeration. An inactive account is
// reported as ErrAccountInactive, which is deliberately distinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *auth.Claims, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", nil, common.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	if !user.IsActive {
		return "", nil, common.ErrAccountInactive
	}

	// bcrypt comparison is constant-time and intentionally expensive.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, common.ErrInvalidCredentials
	}

	groupIDs, err := s.repomanager.Groups(s.db).GetUserGroupIDs(ctx, user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	key, err := s.loadSigningKey(ctx)
	if err != nil {
		return "", nil, err
	}

	claims := auth.NewClaims(user.ID, user.Email, user.Name, groupIDs, time.Now(), s.tokenValidity)
	token, err := auth.GenerateToken(claims, key)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", common.ErrSigning, err)
	}

	return token, claims, nil
}

// Verify validates a presented token against the currently stored public
// key and returns the embedded claims verbatim. No database lookup of the
// user happens here: the signature is the sole authority, so a user
// deactivated after issuance stays valid until the token expires.
func (s *AuthService) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	if token == "" {
		return nil, common.ErrNoToken
	}

	material, err := s.loadKeyMaterial(ctx)
	if err != nil {
		return nil, err
	}
	pub, err := auth.DecodePublicKey(material.Public)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrKeyMaterial, err)
	}

	return auth.ParseToken(token, pub)
}

// CheckKeyMaterial probes the stored key pair end to end: both halves must
// decode (the private one decrypting with the session secret when needed).
// Called at startup; a failure means the process must not serve traffic.
func (s *AuthService) CheckKeyMaterial(ctx context.Context) error {
	material, err := s.loadKeyMaterial(ctx)
	if err != nil {
		return err
	}
	if _, err := auth.DecodePublicKey(material.Public); err != nil {
		return fmt.Errorf("%w: %v", common.ErrKeyMaterial, err)
	}
	if _, err := s.decodePrivateKey(ctx, material); err != nil {
		return fmt.Errorf("%w: %v", common.ErrKeyMaterial, err)
	}
	return nil
}

func (s *AuthService) loadKeyMaterial(ctx context.Context) (*models.KeyMaterial, error) {
	raw, err := s.repomanager.Settings(s.db).Get(ctx, common.SettingKeyMaterial)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrKeyMaterial, err)
	}
	material := &models.KeyMaterial{}
	if err := json.Unmarshal(raw, material); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrKeyMaterial, err)
	}
	return material, nil
}

func (s *AuthService) loadSigningKey(ctx context.Context) (*rsa.PrivateKey, error) {
	material, err := s.loadKeyMaterial(ctx)
	if err != nil {
		return nil, err
	}
	key, err := s.decodePrivateKey(ctx, material)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSigning, err)
	}
	return key, nil
}

func (s *AuthService) decodePrivateKey(ctx context.Context, material *models.KeyMaterial) (*rsa.PrivateKey, error) {
	// The explicit flag is authoritative; PEM-header detection covers
	// records written before the flag existed.
	encrypted := material.Encrypted || auth.IsEncryptedPEM(material.Private)

	passphrase := ""
	if encrypted {
		raw, err := s.repomanager.Settings(s.db).Get(ctx, common.SettingSessionSecret)
		if err != nil {
			return nil, fmt.Errorf("session secret: %v", err)
		}
		secret := &models.SessionSecret{}
		if err := json.Unmarshal(raw, secret); err != nil {
			return nil, fmt.Errorf("session secret: %v", err)
		}
		passphrase = secret.Value
	}

	return auth.DecodePrivateKey(material.Private, passphrase)
}
