// Package auth implements the signing-key codecs and the JWT issue/verify
// primitives. Key material is stored as PEM: the public key as SPKI, the
// private key as PKCS#8, optionally passphrase-encrypted with AES-256-CBC.
package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"github.com/youmark/pkcs8"
)

// KeyBits is the RSA modulus size for generated key pairs.
const KeyBits = 2048

const (
	pemTypePublic           = "PUBLIC KEY"
	pemTypePrivate          = "PRIVATE KEY"
	pemTypeEncryptedPrivate = "ENCRYPTED PRIVATE KEY"
)

// GenerateKeyPair produces a new RSA private key (the public half is
// embedded in it).
func GenerateKeyPair() (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(rand.Reader, KeyBits)
}

// EncodePublicKey renders the public key as an SPKI PEM string.
func EncodePublicKey(pub *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("marshal public key: %w", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: pemTypePublic, Bytes: der})), nil
}

// EncodePrivateKey renders the private key as an unencrypted PKCS#8 PEM string.
func EncodePrivateKey(priv *rsa.PrivateKey) (string, error) {
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return "", fmt.Errorf("marshal private key: %w", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: pemTypePrivate, Bytes: der})), nil
}

// EncryptPrivateKey renders the private key as a passphrase-encrypted
// PKCS#8 PEM string (AES-256-CBC, PBKDF2). The PEM type itself marks the
// key as encrypted, so no side channel is needed to detect it.
func EncryptPrivateKey(priv *rsa.PrivateKey, passphrase string) (string, error) {
	der, err := pkcs8.MarshalPrivateKey(priv, []byte(passphrase), pkcs8.DefaultOpts)
	if err != nil {
		return "", fmt.Errorf("encrypt private key: %w", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: pemTypeEncryptedPrivate, Bytes: der})), nil
}

// DecodePublicKey parses an SPKI PEM public key.
func DecodePublicKey(pemData string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemData))
	if block == nil {
		return nil, errors.New("no PEM block in public key")
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("unexpected public key type %T", key)
	}
	return pub, nil
}

// DecodePrivateKey parses a PKCS#8 PEM private key, decrypting it with the
// passphrase when the block is encrypted. Legacy keys encrypted at the PEM
// layer (Proc-Type header) are also accepted.
func DecodePrivateKey(pemData string, passphrase string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemData))
	if block == nil {
		return nil, errors.New("no PEM block in private key")
	}

	switch {
	case block.Type == pemTypeEncryptedPrivate:
		priv, err := pkcs8.ParsePKCS8PrivateKeyRSA(block.Bytes, []byte(passphrase))
		if err != nil {
			return nil, fmt.Errorf("decrypt private key: %w", err)
		}
		return priv, nil

	case hasLegacyEncryptionHeader(block):
		// PEM-layer encryption predates the PKCS#8 format; kept for keys
		// generated before the switch.
		der, err := x509.DecryptPEMBlock(block, []byte(passphrase)) //nolint:staticcheck
		if err != nil {
			return nil, fmt.Errorf("decrypt private key: %w", err)
		}
		return parsePrivateDER(der)

	default:
		return parsePrivateDER(block.Bytes)
	}
}

// IsEncryptedPEM reports whether the private key PEM is passphrase-protected.
// Used as a fallback when the stored key material predates the explicit
// encrypted flag.
func IsEncryptedPEM(pemData string) bool {
	block, _ := pem.Decode([]byte(pemData))
	if block == nil {
		return false
	}
	return block.Type == pemTypeEncryptedPrivate || hasLegacyEncryptionHeader(block)
}

func hasLegacyEncryptionHeader(block *pem.Block) bool {
	return strings.Contains(block.Headers["Proc-Type"], "ENCRYPTED")
}

func parsePrivateDER(der []byte) (*rsa.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		// PKCS#1 fallback for keys imported from elsewhere.
		if priv, err1 := x509.ParsePKCS1PrivateKey(der); err1 == nil {
			return priv, nil
		}
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("unexpected private key type %T", key)
	}
	return priv, nil
}
