// Package utils holds small helpers shared across the portal.
package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a signup password for storage on the account.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword reports whether a login attempt matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
