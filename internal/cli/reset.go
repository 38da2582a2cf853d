package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fitapp/fitapp/internal/db"
	"github.com/fitapp/fitapp/internal/security"
	"github.com/fitapp/fitapp/internal/services"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

type ResetPasswordOptions struct {
	Driver       string
	Source       string
	PasswordCost int
	// Prompt reads the new password from Stdin without echo instead of
	// generating a temporary one.
	Prompt bool
	Stdin  *os.File
	Stdout io.Writer
}

func RunResetPasswordCommand(email string, options ResetPasswordOptions) error {
	if options.Stdout == nil {
		options.Stdout = os.Stdout
	}
	if options.Stdin == nil {
		options.Stdin = os.Stdin
	}

	database, err := db.Open(options.Driver, options.Source)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	password, generated, err := newPassword(options)
	if err != nil {
		return err
	}

	if err := resetPassword(database, email, password, options.PasswordCost); err != nil {
		return err
	}

	fmt.Fprintln(options.Stdout, "Password reset successful")
	if generated {
		fmt.Fprintf(options.Stdout, "Temporary password: %s\n", password)
	}
	return nil
}

func resetPassword(database *gorm.DB, email string, password string, passwordCost int) error {
	repositories := db.NewRepositories(database)
	accounts := services.NewAccountService(repositories.Users, repositories.Recommendations, passwordCost)

	if _, err := accounts.ResetPassword(email, password); err != nil {
		switch {
		case errors.Is(err, services.ErrAuthCredentialsInvalid):
			return errors.New("a valid email and a non-empty password are required")
		case errors.Is(err, services.ErrUserNotFound):
			return fmt.Errorf("user %s not found", services.NormalizeAuthEmail(email))
		default:
			return fmt.Errorf("reset password: %w", err)
		}
	}
	return nil
}

func newPassword(options ResetPasswordOptions) (string, bool, error) {
	if !options.Prompt {
		password, err := security.TemporaryPassword(temporaryPasswordLength)
		if err != nil {
			return "", false, fmt.Errorf("generate temporary password: %w", err)
		}
		return password, true, nil
	}

	fmt.Fprint(options.Stdout, "New password: ")
	password, err := readPasswordNoEcho(options.Stdin)
	fmt.Fprintln(options.Stdout)
	if err != nil {
		return "", false, fmt.Errorf("read password: %w", err)
	}
	return string(password), false, nil
}
