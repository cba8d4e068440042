package service

import "golang.org/x/crypto/bcrypt"

// verifyPassword compares a plaintext password against a stored bcrypt hash.
// A mismatch is false, never an error.
func verifyPassword(storedHash string, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}

// HashPassword produces a bcrypt hash in the form the credential store holds.
// Registration lives outside this service; this exists for seeding and tests.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
