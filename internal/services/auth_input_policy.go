package services

import (
	"errors"
	"net/mail"
	"strings"
)

var ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return ""
	}
	return email
}

func NormalizePasswordInput(raw string) (string, error) {
	password := strings.TrimSpace(raw)
	if password == "" {
		return "", ErrAuthCredentialsInvalid
	}
	return password, nil
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password, err := NormalizePasswordInput(passwordRaw)
	if email == "" || err != nil {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}
