package service

import (
	"card-bank-api/logger"

	"golang.org/x/crypto/bcrypt"
)

// HashPIN hashes a card PIN for storage. Only the seeder writes PINs.
func HashPIN(pin string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash PIN")
		return "", err
	}
	return string(bytes), nil
}

// CheckPIN verifies a PIN against its stored bcrypt hash. The comparison is
// constant time; callers learn only match or mismatch.
func CheckPIN(pin, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
