package util

import (
	"strings"
	"unicode"
)

// ToSnakeCase converts a PascalCase member name to snake_case.
// An underscore goes before every ASCII uppercase letter that is not the
// first character, then the whole string is lowercased. Acronyms are not
// grouped: "VpcID" becomes "vpc_i_d".
func ToSnakeCase(s string) string {
	var result strings.Builder
	result.Grow(len(s) + 4)

	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}

	return strings.ToLower(result.String())
}

// ToAnchor converts a heading into a markdown anchor ("Tag List" -> "tag-list")
func ToAnchor(s string) string {
	var result strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			result.WriteRune(r)
		case r == ' ':
			result.WriteRune('-')
		}
	}
	return result.String()
}
