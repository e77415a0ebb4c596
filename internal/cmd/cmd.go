package cmd

import (
	"fmt"

	"github.com/declgen/declgen/internal/gen"
	"github.com/declgen/declgen/internal/schema"
	"github.com/rs/zerolog"
)

// DefaultGlobalName is the global namespace symbol the compiled schema
// surface is declared under when none is configured.
const DefaultGlobalName = "messenger"

// Settings is the fully resolved run configuration, threaded explicitly
// through the pipeline.
type Settings struct {
	SchemasDir        string
	BrowserSchemasDir string
	OutDir            string
	IgnoredNamespaces []string
	GlobalName        string
	Logger            zerolog.Logger
}

// Run executes the whole pipeline: read both schema roots, merge the
// namespace records, drop ignored namespaces, generate the declaration
// text and write it out. Fatal errors abort before anything is written;
// recoverable conditions are logged and degrade only the declaration
// they affect.
func Run(s Settings) error {
	parts, err := readSchemas(s)
	if err != nil {
		return err
	}

	if len(parts) == 0 {
		s.Logger.Warn().Msg("no schema documents found in either schema root")
	}

	table := schema.MergeAll(parts)

	for _, name := range s.IgnoredNamespaces {
		table.Remove(name)
	}

	globalName := s.GlobalName
	if globalName == "" {
		globalName = DefaultGlobalName
	}

	content := gen.Generate(table, globalName, s.Logger)

	if err := gen.WriteFile(s.OutDir, content); err != nil {
		return err
	}

	s.Logger.Info().
		Int("namespaces", table.Len()).
		Str("out", s.OutDir).
		Msg("declaration file generated")

	return nil
}

// readSchemas reads the primary schema root followed by the browser
// schema root. Reading order matters: the merge gives the first
// occurrence of a namespace the role of the base record.
func readSchemas(s Settings) ([]*schema.Namespace, error) {
	var parts []*schema.Namespace

	for _, dir := range []string{s.SchemasDir, s.BrowserSchemasDir} {
		if dir == "" {
			continue
		}

		dirParts, err := schema.ReadDir(dir, s.Logger)
		if err != nil {
			return nil, fmt.Errorf(`failed to read schemas from "%s": %w`, dir, err)
		}

		parts = append(parts, dirParts...)
	}

	return parts, nil
}
