package errors

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// MaxDimension bounds item and container sides. Areas of two such sides
// still fit comfortably in an int64.
const MaxDimension = 1 << 20

// itemIDRegex matches ids usable in SVG element ids and URLs.
var itemIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateItemID validates an item identifier.
//
// Empty ids are allowed (the scene assigns positional ids). Non-empty ids
// must be at most 128 characters, contain no control characters and
// match [A-Za-z0-9][A-Za-z0-9._:-]*.
func ValidateItemID(id string) error {
	if id == "" {
		return nil
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidItem, "item id too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidItem, "item id contains invalid control characters")
		}
	}
	if !itemIDRegex.MatchString(id) {
		return New(ErrCodeInvalidItem, "invalid item id: %q", id)
	}
	return nil
}

// ValidateDimensions checks that width and height lie in [0, MaxDimension].
// what names the object in the message, e.g. "item a" or "container".
func ValidateDimensions(code Code, what string, width, height int) error {
	if width < 0 || height < 0 {
		return New(code, "%s has negative size %dx%d", what, width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(code, "%s is too large (max %d per side)", what, MaxDimension)
	}
	return nil
}

// ValidateEnum checks that value (compared case-insensitively) is one of
// allowed. An empty value is accepted so callers can keep their default.
func ValidateEnum(field, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	if slices.Contains(allowed, strings.ToLower(value)) {
		return nil
	}
	return New(ErrCodeInvalidOption, "invalid %s %q (want one of %s)", field, value, strings.Join(allowed, ", "))
}
