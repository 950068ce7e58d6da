// Package env supplies credentials from the process environment, optionally
// seeded from a dotenv file.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

// Ensure Environment implements the interface.
var _ driven.SecretSource = (*Environment)(nil)

// DefaultDotenvFile is read from the working directory at startup.
const DefaultDotenvFile = ".env"

// Environment reads secrets with os.LookupEnv.
type Environment struct {
	lookup func(string) (string, bool)
}

// New returns a SecretSource over the real process environment.
func New() *Environment {
	return &Environment{lookup: os.LookupEnv}
}

// NewFromMap returns a SecretSource over fixed values.
func NewFromMap(values map[string]string) *Environment {
	return &Environment{lookup: func(name string) (string, bool) {
		v, ok := values[name]
		return v, ok
	}}
}

// Lookup returns the trimmed value of name. Blank values count as unset.
func (e *Environment) Lookup(name string) (string, bool) {
	v, ok := e.lookup(name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// LoadDotenv loads variables from the given files into the process
// environment without overriding variables that are already set. Files that
// do not exist are skipped. With no arguments DefaultDotenvFile is read.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{DefaultDotenvFile}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}
