package format

import (
	"fmt"
	"strings"
)

// ValueKind is the coarse category a type label maps onto. Strategies pick
// placeholders per kind instead of per label.
type ValueKind int

const (
	KindUnknown ValueKind = iota
	KindString
	KindInteger
	KindFloat
	KindBool
	KindDuration
	KindDatetime
	KindArray
	KindTable
)

var kindNames = map[ValueKind]string{
	KindUnknown:  "unknown",
	KindString:   "string",
	KindInteger:  "integer",
	KindFloat:    "float",
	KindBool:     "bool",
	KindDuration: "duration",
	KindDatetime: "datetime",
	KindArray:    "array",
	KindTable:    "table",
}

func (k ValueKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

var scalarKinds = map[string]ValueKind{
	"string": KindString, "str": KindString, "&str": KindString, "char": KindString,
	"rune": KindString, "text": KindString,

	"int": KindInteger, "int8": KindInteger, "int16": KindInteger, "int32": KindInteger,
	"int64": KindInteger, "uint": KindInteger, "uint8": KindInteger, "uint16": KindInteger,
	"uint32": KindInteger, "uint64": KindInteger, "uintptr": KindInteger, "byte": KindInteger,
	"i8": KindInteger, "i16": KindInteger, "i32": KindInteger, "i64": KindInteger,
	"i128": KindInteger, "isize": KindInteger, "u8": KindInteger, "u16": KindInteger,
	"u32": KindInteger, "u64": KindInteger, "u128": KindInteger, "usize": KindInteger,
	"integer": KindInteger,

	"float32": KindFloat, "float64": KindFloat, "f32": KindFloat, "f64": KindFloat,
	"float": KindFloat, "double": KindFloat, "number": KindFloat,

	"bool": KindBool, "boolean": KindBool,

	"duration": KindDuration, "time.duration": KindDuration,

	"time.time": KindDatetime, "datetime": KindDatetime, "timestamp": KindDatetime,
}

// Classify maps a type label onto a ValueKind. Optional wrappers (`*T`,
// `Option<T>`) are unwrapped; slices, vectors and maps are recognised by
// their Go or Rust spelling.
func Classify(typeSummary string) ValueKind {
	label := strings.ToLower(strings.TrimSpace(typeSummary))
	for {
		switch {
		case strings.HasPrefix(label, "*"):
			label = strings.TrimSpace(label[1:])
			continue
		case strings.HasPrefix(label, "option<") && strings.HasSuffix(label, ">"):
			label = strings.TrimSpace(label[len("option<") : len(label)-1])
			continue
		}
		break
	}

	if kind, ok := scalarKinds[label]; ok {
		return kind
	}
	switch {
	case strings.HasPrefix(label, "[]"), strings.HasPrefix(label, "vec<"),
		strings.HasSuffix(label, "[]"), label == "array", label == "list":
		return KindArray
	case strings.HasPrefix(label, "map["), strings.HasPrefix(label, "hashmap<"),
		strings.HasPrefix(label, "btreemap<"), label == "map", label == "table", label == "object":
		return KindTable
	}
	return KindUnknown
}

func noPlaceholder(strategy, typeSummary string) error {
	return fmt.Errorf("%w %q in %s", ErrNoPlaceholder, typeSummary, strategy)
}
