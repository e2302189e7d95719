package repo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyAlias is returned when the alias is empty.
	ErrEmptyAlias = errors.New("alias cannot be empty")

	// ErrAliasTooLong is returned when the alias exceeds its bound.
	ErrAliasTooLong = errors.New("alias too long")

	// ErrEmptyLink is returned when the link is empty.
	ErrEmptyLink = errors.New("link cannot be empty")

	// ErrLinkTooLong is returned when the link exceeds its bound.
	ErrLinkTooLong = errors.New("link too long")

	// ErrLineBreak is returned when a field would split a stored line.
	ErrLineBreak = errors.New("field contains a line break")
)

// ValidateAlias checks an alias against the maximum byte length.
func ValidateAlias(alias string, max int) error {
	if alias == "" {
		return ErrEmptyAlias
	}
	if max > 0 && len(alias) > max {
		return fmt.Errorf("%w: %d bytes, max %d", ErrAliasTooLong, len(alias), max)
	}
	if hasLineBreak(alias) {
		return ErrLineBreak
	}
	return nil
}

// ValidateLink checks a link against the maximum byte length.
func ValidateLink(link string, max int) error {
	if link == "" {
		return ErrEmptyLink
	}
	if max > 0 && len(link) > max {
		return fmt.Errorf("%w: %d bytes, max %d", ErrLinkTooLong, len(link), max)
	}
	if hasLineBreak(link) {
		return ErrLineBreak
	}
	return nil
}

// IsAll reports whether alias is the keyword that selects every entry.
func IsAll(alias string) bool {
	return alias == AllKeyword
}

func hasLineBreak(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}
