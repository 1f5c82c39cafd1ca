package schema

import (
	"fmt"
	"strings"
	"unicode"
)

// RenamePolicy derives a serialized key from a declared field name.
type RenamePolicy string

const (
	RenameNone               RenamePolicy = ""
	RenameLowercase          RenamePolicy = "lowercase"
	RenameUppercase          RenamePolicy = "UPPERCASE"
	RenameCamelCase          RenamePolicy = "camelCase"
	RenamePascalCase         RenamePolicy = "PascalCase"
	RenameSnakeCase          RenamePolicy = "snake_case"
	RenameScreamingSnakeCase RenamePolicy = "SCREAMING_SNAKE_CASE"
	RenameKebabCase          RenamePolicy = "kebab-case"
	RenameScreamingKebabCase RenamePolicy = "SCREAMING-KEBAB-CASE"
)

var renamePolicies = []RenamePolicy{
	RenameNone,
	RenameLowercase,
	RenameUppercase,
	RenameCamelCase,
	RenamePascalCase,
	RenameSnakeCase,
	RenameScreamingSnakeCase,
	RenameKebabCase,
	RenameScreamingKebabCase,
}

// ParseRenamePolicy validates a policy name. Matching is exact because the
// names encode their own casing.
func ParseRenamePolicy(raw string) (RenamePolicy, error) {
	trimmed := strings.TrimSpace(raw)
	for _, policy := range renamePolicies {
		if string(policy) == trimmed {
			return policy, nil
		}
	}
	return RenameNone, fmt.Errorf("schema: unknown rename policy %q", raw)
}

// Apply converts name according to the policy. Words are split on
// underscores, dashes, spaces and camelCase boundaries, so both Go style
// ("ListenAddr") and snake style ("listen_addr") inputs are accepted.
func (p RenamePolicy) Apply(name string) string {
	if p == RenameNone {
		return name
	}
	words := SplitWords(name)
	if len(words) == 0 {
		return name
	}

	switch p {
	case RenameLowercase:
		return strings.ToLower(strings.Join(words, ""))
	case RenameUppercase:
		return strings.ToUpper(strings.Join(words, ""))
	case RenameCamelCase:
		out := strings.ToLower(words[0])
		for _, word := range words[1:] {
			out += capitalize(word)
		}
		return out
	case RenamePascalCase:
		var out strings.Builder
		for _, word := range words {
			out.WriteString(capitalize(word))
		}
		return out.String()
	case RenameSnakeCase:
		return strings.ToLower(strings.Join(words, "_"))
	case RenameScreamingSnakeCase:
		return strings.ToUpper(strings.Join(words, "_"))
	case RenameKebabCase:
		return strings.ToLower(strings.Join(words, "-"))
	case RenameScreamingKebabCase:
		return strings.ToUpper(strings.Join(words, "-"))
	default:
		return name
	}
}

// SplitWords breaks an identifier into words. Acronyms stay together:
// "HTTPServerPort" yields HTTP, Server, Port.
func SplitWords(name string) []string {
	var words []string
	for _, chunk := range strings.FieldsFunc(name, isSeparator) {
		words = append(words, splitCamel(chunk)...)
	}
	return words
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}

func splitCamel(chunk string) []string {
	runes := []rune(chunk)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := (unicode.IsLower(prev) || unicode.IsDigit(prev)) && unicode.IsUpper(cur)
		if !boundary && unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			boundary = true
		}
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}

func capitalize(word string) string {
	if word == "" {
		return ""
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
