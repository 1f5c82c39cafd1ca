package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-confdocs/pkg/format"
)

// EnvFormat names the environment variable selecting the output format.
const EnvFormat = "CONFIG_DOCS_FORMAT"

// FormatFromEnv resolves the format named by CONFIG_DOCS_FORMAT in reg. An
// unset or blank variable selects format.DefaultName. A nil reg uses the
// built-in formats.
func FormatFromEnv(reg *format.Registry) (format.Strategy, error) {
	if reg == nil {
		reg = format.NewDefaultRegistry()
	}
	name := strings.TrimSpace(os.Getenv(EnvFormat))
	strategy, err := reg.Get(name)
	if err != nil {
		return nil, fmt.Errorf("export: %s=%q: %w", EnvFormat, name, err)
	}
	return strategy, nil
}

// LoadDotEnv loads the given .env files (".env" when none are given) into the
// process environment. Variables already set win, and missing files are
// ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("export: load %s: %w", path, err)
		}
	}
	return nil
}
