package common

// Names of the persisted settings records. The key generator writes them,
// the auth service reads them; both sides must agree on the spelling.
const (
	// SettingKeyMaterial holds the JSON-encoded RSA key pair.
	SettingKeyMaterial = "certs"

	// SettingSessionSecret holds the JSON-encoded random session secret.
	// When the private key is stored encrypted, this secret is also its
	// decryption passphrase; losing it permanently locks the key.
	SettingSessionSecret = "sessionSecret"
)
