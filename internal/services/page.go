package services

import (
	"errors"
	"strconv"
	"strings"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

var ErrInvalidPage = errors.New("invalid paging parameters")

type Page struct {
	Offset int
	Limit  int
}

// ParsePage reads skip/limit query values. Blank values take the defaults.
func ParsePage(rawSkip string, rawLimit string) (Page, error) {
	page := Page{Offset: 0, Limit: DefaultPageLimit}

	if value := strings.TrimSpace(rawSkip); value != "" {
		skip, err := strconv.Atoi(value)
		if err != nil || skip < 0 {
			return Page{}, ErrInvalidPage
		}
		page.Offset = skip
	}

	if value := strings.TrimSpace(rawLimit); value != "" {
		limit, err := strconv.Atoi(value)
		if err != nil || limit < 1 || limit > MaxPageLimit {
			return Page{}, ErrInvalidPage
		}
		page.Limit = limit
	}

	return page, nil
}
