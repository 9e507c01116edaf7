// Package service defines interfaces for infrastructure services used by the use cases.
package service

// PasswordHasher hashes user passwords before they are stored.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash.
	Check(password, hash string) bool
}
