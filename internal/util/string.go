package util

import (
	"net/url"
	"regexp"
	"strings"
)

// TruncateString truncates a string to maxRunes characters (rune-based, not byte-based)
// If truncated, appends "..." to the result
func TruncateString(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

// Normalize performs basic string normalization (lowercase + trim)
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Contains checks if a string slice contains a specific item
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// FormatNotation rewrites common combo separators into a uniform " > " chain
// for display.
func FormatNotation(notation string) string {
	if notation == "" {
		return "Unknown Notation"
	}
	formatted := strings.ReplaceAll(notation, "->", " > ")
	formatted = strings.ReplaceAll(formatted, ",", " > ")
	formatted = strings.ReplaceAll(formatted, "→", " > ")
	return strings.TrimSpace(formatted)
}

// ValidateURL reports whether s is a syntactically valid absolute HTTP(S) URL.
func ValidateURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

var colorHexPattern = regexp.MustCompile(`^[0-9A-F]{6}$`)

// NormalizeColorHex validates a 24-bit hex color and returns it in "0xRRGGBB"
// form, or "" if the input does not parse.
func NormalizeColorHex(colorHex string) string {
	colorHex = strings.ToUpper(strings.TrimSpace(colorHex))
	colorHex = strings.TrimPrefix(colorHex, "#")
	colorHex = strings.TrimPrefix(colorHex, "0X")
	if !colorHexPattern.MatchString(colorHex) {
		return ""
	}
	return "0x" + colorHex
}
