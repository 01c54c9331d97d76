package utils

import (
	"regexp"
	"strings"
)

var (
	// Characters rejected by at least one common filesystem, plus ASCII
	// control characters.
	unsafeNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

	whitespaceRuns = regexp.MustCompile(`\s+`)

	unsafeIDRuns = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

const (
	maxNameLength = 120
	maxIDLength   = 80

	// FallbackName is used when a workflow has no usable name.
	FallbackName = "workflow"
)

// SafeName converts a workflow name into a filename that is valid on
// common filesystems: illegal characters become underscores, whitespace
// runs collapse to a single space, and the result is trimmed and capped
// at 120 characters. An empty input, or one that sanitizes to empty,
// yields FallbackName.
func SafeName(name string) string {
	if name == "" {
		name = FallbackName
	}
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.TrimSpace(whitespaceRuns.ReplaceAllString(name, " "))
	if runes := []rune(name); len(runes) > maxNameLength {
		name = string(runes[:maxNameLength])
	}
	if name == "" {
		return FallbackName
	}
	return name
}

// SafeID normalizes a workflow id for use in a URL path: runs of
// characters outside [A-Za-z0-9._-] become a single underscore, capped
// at 80 characters.
func SafeID(id string) string {
	id = unsafeIDRuns.ReplaceAllString(id, "_")
	if len(id) > maxIDLength {
		id = id[:maxIDLength]
	}
	return id
}
