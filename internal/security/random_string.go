package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const (
	temporaryPasswordAlphabet  = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	minTemporaryPasswordLength = 8
	maxTemporaryPasswordTries  = 32
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

// TemporaryPassword returns an operator-issued password of at least eight
// characters with an upper-case letter, a lower-case letter and a digit.
// Look-alike characters (0/O, 1/l/I) are excluded.
func TemporaryPassword(length int) (string, error) {
	if length < minTemporaryPasswordLength {
		length = minTemporaryPasswordLength
	}

	for i := 0; i < maxTemporaryPasswordTries; i++ {
		password, err := RandomString(length, temporaryPasswordAlphabet)
		if err != nil {
			return "", err
		}
		if hasMixedClasses(password) {
			return password, nil
		}
	}
	return "", errors.New("temporary password generation exhausted retries")
}

func hasMixedClasses(value string) bool {
	return strings.ContainsAny(value, "ABCDEFGHJKLMNPQRSTUVWXYZ") &&
		strings.ContainsAny(value, "abcdefghijkmnopqrstuvwxyz") &&
		strings.ContainsAny(value, "23456789")
}
