package models

// KeyMaterial is the persisted RSA key pair, stored as the "certs"
// settings record. Exactly one active instance exists at a time; the key
// generator overwrites it in place on rotation.
//
// Encrypted records whether Private is a passphrase-encrypted PEM. Older
// records may lack the flag; consumers fall back to inspecting the PEM
// header in that case.
type KeyMaterial struct {
	Public    string `json:"public"`
	Private   string `json:"private"`
	Encrypted bool   `json:"encrypted,omitempty"`
}

// SessionSecret is the persisted 256-bit random value, hex-encoded,
// stored as the "sessionSecret" settings record. When KeyMaterial is
// encrypted this value is also the private key's passphrase.
type SessionSecret struct {
	Value string `json:"v"`
}
