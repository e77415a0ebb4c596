package test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/declgen/declgen/internal/cmd"
	"github.com/declgen/declgen/internal/gen"
	"github.com/rs/zerolog"
	assert "github.com/stretchr/testify/require"
)

func TestDeclgen(t *testing.T) {
	outDir := t.TempDir()

	err := cmd.Run(cmd.Settings{
		SchemasDir:        getWd(t, "tests/00001_mail/schemas"),
		BrowserSchemasDir: getWd(t, "tests/00001_mail/browser"),
		OutDir:            outDir,
		IgnoredNamespaces: []string{"ignored"},
		GlobalName:        cmd.DefaultGlobalName,
		Logger:            zerolog.Nop(),
	})
	assert.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, gen.DeclarationFile))
	assert.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "declare namespace messenger {")
	assert.Contains(t, out, "interface WebExtEvent<TListener")

	// The mail namespace keeps the first declaration of Foo.
	assert.Contains(t, out, "interface Foo {")
	assert.Contains(t, out, "a: string;")
	assert.NotContains(t, out, "b: number;")

	// Async callback convention becomes a promise return.
	assert.Contains(t, out, "function send(a: string): Promise<any>;")

	// Functions named delete never survive the merge.
	assert.NotContains(t, out, "delete")

	// Ignored namespaces are removed entirely.
	assert.NotContains(t, out, "namespace ignored")
	assert.NotContains(t, out, "hidden")

	assert.Contains(t, out, "type AccountType = \"imap\" | \"pop3\";")
	assert.Contains(t, out, "const version: string;")
	assert.Contains(t, out, "const onSent: WebExtEvent<(id: number) => void>;")

	// Cross-namespace references resolve to qualified names.
	assert.Contains(t, out, "namespace compose {")
	assert.Contains(t, out, "attachments?: mail.Foo[];")
	assert.Contains(t, out, "function beginNew(details: ComposeDetails): Promise<number>;")
	assert.NotContains(t, out, "function beginNew():")
	assert.Contains(t, out, "const onComposeStateChanged: WebExtEvent<(details: ComposeDetails) => void>;")
}

func TestDeclgenDeterministic(t *testing.T) {
	generate := func() string {
		outDir := t.TempDir()

		err := cmd.Run(cmd.Settings{
			SchemasDir:        getWd(t, "tests/00001_mail/schemas"),
			BrowserSchemasDir: getWd(t, "tests/00001_mail/browser"),
			OutDir:            outDir,
			GlobalName:        cmd.DefaultGlobalName,
			Logger:            zerolog.Nop(),
		})
		assert.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(outDir, gen.DeclarationFile))
		assert.NoError(t, err)
		return string(data)
	}

	first := generate()
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, generate())
	}
}

func TestDeclgenMissingOutputDir(t *testing.T) {
	err := cmd.Run(cmd.Settings{
		SchemasDir: getWd(t, "tests/00001_mail/schemas"),
		OutDir:     filepath.Join(t.TempDir(), "does", "not", "exist"),
		GlobalName: cmd.DefaultGlobalName,
		Logger:     zerolog.Nop(),
	})
	assert.Error(t, err)
}
