package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// ParseError is returned when a schema document cannot be decoded into
// a sequence of namespace records. It is fatal: no output is written
// when any input document fails to parse.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(`failed to parse schema file "%s": %v`, e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse decodes one schema document. The top-level value must be a JSON
// array of namespace records; anything else is a `*ParseError`.
func Parse(data []byte, file string) ([]*Namespace, error) {
	data = StripComments(data)

	var nss []*Namespace
	if err := json.Unmarshal(data, &nss); err != nil {
		return nil, &ParseError{File: file, Err: err}
	}

	return nss, nil
}

// ParseFile reads and decodes one schema file.
func ParseFile(path string) ([]*Namespace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(`failed to read schema file "%s": %w`, path, err)
	}

	return Parse(data, path)
}

// ReadDir parses every `.json` file (case-insensitive) in a schema
// directory, in file name order. A missing directory contributes zero
// documents and logs a warning; the two schema roots are optional
// relative to each other.
func ReadDir(dir string, logger zerolog.Logger) ([]*Namespace, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("dir", dir).Msg("schema directory does not exist, skipping")
			return nil, nil
		}
		return nil, fmt.Errorf(`failed to read schema directory "%s": %w`, dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	var nss []*Namespace
	for _, f := range files {
		fileNss, err := ParseFile(filepath.Join(dir, f))
		if err != nil {
			return nil, err
		}
		nss = append(nss, fileNss...)
	}

	return nss, nil
}
