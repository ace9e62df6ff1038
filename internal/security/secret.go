package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	DefaultSecretLength = 48
	secretAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	minSecretLength     = 32
)

var (
	errSecretTooShort = errors.New("secret must be at least 32 characters")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
	errNegativeLength = errors.New("length must be non-negative")
)

// GenerateSecret returns a random signing key drawn uniformly from an
// alphanumeric alphabet.
func GenerateSecret(length int) (string, error) {
	if length < minSecretLength {
		return "", errSecretTooShort
	}
	return RandomString(length, secretAlphabet)
}

// RandomString draws length characters uniformly from alphabet.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
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
