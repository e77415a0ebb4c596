package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// DeclarationFile is the name of the generated output file.
const DeclarationFile = "index.d.ts"

// WriteFile writes the assembled declaration text into the output
// directory, overwriting any previous file. The text is assembled fully
// in memory before this call, so a failed write never leaves partial
// output from a successful run behind it.
func WriteFile(outDir string, content string) error {
	path := filepath.Join(outDir, DeclarationFile)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf(`failed to write declaration file "%s": %w`, path, err)
	}

	return nil
}
