package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/terraincognita07/cyclecal/internal/models"
	"github.com/terraincognita07/cyclecal/internal/security"
)

const (
	temporaryPasswordLength   = 12
	temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	maxPasswordDraws          = 32
)

type PasswordResetter interface {
	ResetPassword(ctx context.Context, email string, password string) (models.User, error)
}

// RunResetPassword sets a generated temporary password for the account and
// prints it to out.
func RunResetPassword(ctx context.Context, auth PasswordResetter, out io.Writer, email string) error {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" {
		return errors.New("email is required")
	}

	temporaryPassword, err := generateTemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	user, err := auth.ResetPassword(ctx, normalizedEmail, temporaryPassword)
	if err != nil {
		return fmt.Errorf("reset password for %s: %w", normalizedEmail, err)
	}

	fmt.Fprintf(out, "Password reset for %s (user %d)\n", user.Email, user.ID)
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	return nil
}

// generateTemporaryPassword redraws until the value has an upper case
// letter, a lower case letter and a digit.
func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	for draw := 0; draw < maxPasswordDraws; draw++ {
		candidate, err := security.RandomString(length, temporaryPasswordAlphabet)
		if err != nil {
			return "", err
		}
		if hasPasswordClasses(candidate) {
			return candidate, nil
		}
	}
	return "", errors.New("could not draw a password with every character class")
}

func hasPasswordClasses(value string) bool {
	var upper, lower, digit bool
	for _, char := range value {
		switch {
		case unicode.IsUpper(char):
			upper = true
		case unicode.IsLower(char):
			lower = true
		case unicode.IsDigit(char):
			digit = true
		}
	}
	return upper && lower && digit
}
