package repo

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchAlias checks if an alias matches a glob pattern.
// Patterns use doublestar syntax, so "org/**" matches "org/team/tool".
func MatchAlias(alias, pattern string) (bool, error) {
	if err := ValidatePattern(pattern); err != nil {
		return false, err
	}
	if alias == "" {
		return false, nil
	}
	matched, err := doublestar.Match(pattern, alias)
	if err != nil {
		return false, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	return matched, nil
}

// ValidatePattern reports an error for a malformed glob pattern.
func ValidatePattern(pattern string) error {
	if pattern == "" || !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("bad pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	return nil
}
