package model

// Credential is the stored record for one user. Password holds a bcrypt
// hash, never the plaintext; the JSON shape matches the persisted user
// directory snapshot.
type Credential struct {
	Password string `json:"password"`
}
