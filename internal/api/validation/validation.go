package validation

import (
	"fmt"
	"regexp"
	"time"
)

const (
	// ReservedUsername can never be registered, it collides with the /users/me route
	ReservedUsername = "me"

	MaxUsernameLen = 150
	MaxSlugLen     = 50

	MinScore = 1
	MaxScore = 10
)

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// Username checks the registration username rules: non-empty, length-bounded,
// restricted character class, and the reserved value "me".
func Username(v string) error {
	if v == "" {
		return fmt.Errorf("username is required")
	}
	if v == ReservedUsername {
		return fmt.Errorf("username %q is reserved", ReservedUsername)
	}
	if len(v) > MaxUsernameLen {
		return fmt.Errorf("username longer than %d characters", MaxUsernameLen)
	}
	if !usernameRe.MatchString(v) {
		return fmt.Errorf("username may only contain letters, digits and .@+-_")
	}
	return nil
}

// Year rejects release years in the future. The current calendar year is allowed.
func Year(v int) error {
	if current := time.Now().Year(); v > current {
		return fmt.Errorf("year %d is greater than the current year %d", v, current)
	}
	return nil
}

// Score checks the review score range.
func Score(v int) error {
	if v < MinScore || v > MaxScore {
		return fmt.Errorf("score must be between %d and %d", MinScore, MaxScore)
	}
	return nil
}

// Slug checks the URL-safe identifier used by categories and genres.
func Slug(v string) error {
	if v == "" {
		return fmt.Errorf("slug is required")
	}
	if len(v) > MaxSlugLen {
		return fmt.Errorf("slug longer than %d characters", MaxSlugLen)
	}
	if !slugRe.MatchString(v) {
		return fmt.Errorf("slug may only contain letters, digits, hyphens and underscores")
	}
	return nil
}
