// Package password implements the credential policy for employee accounts:
// half-width alphanumeric characters only, 8 to 16 characters, stored as a
// salted bcrypt hash. Plaintext never reaches the repository layer.
package password

import (
	"regexp"

	"go-nippo/internal/shared/apperror"
	"golang.org/x/crypto/bcrypt"
)

const (
	minLength = 8
	maxLength = 16
)

var halfWidthAlnum = regexp.MustCompile(`^[A-Za-z0-9]+$`)

var (
	ErrHalfSize = apperror.New(
		apperror.CodeHalfSize,
		"Password must contain only half-width letters and digits",
		400,
	)

	ErrRangeCheck = apperror.New(
		apperror.CodeRangeCheck,
		"Password must be between 8 and 16 characters",
		400,
	)
)

// Validate checks the character-class rule before the length rule; the
// first failure wins.
func Validate(plain string) error {
	if !halfWidthAlnum.MatchString(plain) {
		return ErrHalfSize
	}
	if len(plain) < minLength || maxLength < len(plain) {
		return ErrRangeCheck
	}
	return nil
}

// Hash returns the one-way bcrypt digest of plain.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored hash.
func Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
