package utils

import "golang.org/x/crypto/bcrypt"

// HashPasscode hashes a role passcode with bcrypt
func HashPasscode(passcode string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPasscode compares a passcode with its bcrypt hash
func CheckPasscode(passcode, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) == nil
}
