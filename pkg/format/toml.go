package format

import (
	"fmt"
	"regexp"
	"strings"
)

var bareKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var tomlPlaceholders = map[ValueKind]string{
	KindString:   `""`,
	KindInteger:  "0",
	KindFloat:    "0.0",
	KindBool:     "false",
	KindDuration: `"0s"`,
	KindDatetime: "1970-01-01T00:00:00Z",
	KindArray:    "[]",
	KindTable:    "{}",
}

// TOML renders examples as TOML tables. Nested records use dotted table
// headers such as [server.tls].
type TOML struct{}

var _ Strategy = TOML{}

func (TOML) Name() string      { return "toml" }
func (TOML) Extension() string { return "toml" }

func (TOML) CommentLine(text string) string {
	if text == "" {
		return "#"
	}
	return "# " + text
}

func (TOML) TableHeader(path []string) string {
	if len(path) == 0 {
		return ""
	}
	keys := make([]string, len(path))
	for i, segment := range path {
		keys[i] = tomlKey(segment)
	}
	return "[" + strings.Join(keys, ".") + "]"
}

func (TOML) KeyValue(key, value string) string {
	return tomlKey(key) + " = " + value
}

func (t TOML) ValueRepr(typeSummary, defaultRepr string) (string, error) {
	if defaultRepr != "" {
		return defaultRepr, nil
	}
	if placeholder, ok := tomlPlaceholders[Classify(typeSummary)]; ok {
		return placeholder, nil
	}
	return "", noPlaceholder(t.Name(), typeSummary)
}

func tomlKey(key string) string {
	if bareKeyPattern.MatchString(key) {
		return key
	}
	return QuoteString(key)
}

// QuoteString renders s as a TOML basic (double quoted) string.
func QuoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
