package format

import "strings"

var iniPlaceholders = map[ValueKind]string{
	KindString:   `""`,
	KindInteger:  "0",
	KindFloat:    "0.0",
	KindBool:     "false",
	KindDuration: "0s",
	KindDatetime: `""`,
}

// INI renders examples as INI sections. INI has no list or map syntax, so
// array and table typed fields need an explicit default.
type INI struct{}

var _ Strategy = INI{}

func (INI) Name() string      { return "ini" }
func (INI) Extension() string { return "ini" }

func (INI) CommentLine(text string) string {
	if text == "" {
		return ";"
	}
	return "; " + text
}

func (INI) TableHeader(path []string) string {
	if len(path) == 0 {
		return ""
	}
	return "[" + strings.Join(path, ".") + "]"
}

func (INI) KeyValue(key, value string) string {
	return key + " = " + value
}

func (i INI) ValueRepr(typeSummary, defaultRepr string) (string, error) {
	if defaultRepr != "" {
		return defaultRepr, nil
	}
	if placeholder, ok := iniPlaceholders[Classify(typeSummary)]; ok {
		return placeholder, nil
	}
	return "", noPlaceholder(i.Name(), typeSummary)
}
