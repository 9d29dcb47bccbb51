// Package cryptox provides password hashing for the local credential
// registry. The remote identity service stores its own password hashes;
// this package only covers accounts created on-device.
package cryptox

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt hash of the given password using the
// default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
