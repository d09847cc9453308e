package user

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password []byte) ([]byte, error)
	// Compare returns nil when password matches hash.
	Compare(hash, password []byte) error
}
