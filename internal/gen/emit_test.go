package gen

import (
	"strings"
	"testing"

	"github.com/declgen/declgen/internal/schema"
	"github.com/rs/zerolog"
	assert "github.com/stretchr/testify/require"
)

func generateFor(parts ...*schema.Namespace) string {
	return Generate(schema.MergeAll(parts), "messenger", zerolog.Nop())
}

func TestGenerateEventInterfaceEmittedOnce(t *testing.T) {
	out := generateFor(
		&schema.Namespace{Namespace: "mail", Events: []*schema.Function{{Name: "onSent"}}},
		&schema.Namespace{Namespace: "compose", Events: []*schema.Function{{Name: "onOpened"}}},
	)

	assert.Equal(t, 1, strings.Count(out, "interface WebExtEvent<"))
}

func TestGenerateGlobalNamespace(t *testing.T) {
	out := generateFor(&schema.Namespace{Namespace: "mail"})

	assert.Contains(t, out, "declare namespace messenger {")
	assert.Contains(t, out, "namespace mail {")
}

func TestGenerateNamespaceOrderIsDeclarationOrder(t *testing.T) {
	out := generateFor(
		&schema.Namespace{Namespace: "zeta"},
		&schema.Namespace{Namespace: "alpha"},
	)

	assert.Less(t, strings.Index(out, "namespace zeta {"), strings.Index(out, "namespace alpha {"))
}

func TestGenerateObjectTypeBecomesInterface(t *testing.T) {
	out := generateFor(&schema.Namespace{
		Namespace: "mail",
		Types: []*schema.Type{{
			Id:          "Folder",
			Type:        "object",
			Description: "A mail folder.",
			Properties: map[string]*schema.Type{
				"path":     {Type: "string", Description: "Slash separated path."},
				"readOnly": {Type: "boolean", Optional: true},
			},
		}},
	})

	assert.Contains(t, out, "/** A mail folder. */")
	assert.Contains(t, out, "interface Folder {")
	assert.Contains(t, out, "/** Slash separated path. */")
	assert.Contains(t, out, "path: string;")
	assert.Contains(t, out, "readOnly?: boolean;")
}

func TestGenerateEnumTypeBecomesAlias(t *testing.T) {
	out := generateFor(&schema.Namespace{
		Namespace: "mail",
		Types: []*schema.Type{{
			Id:   "AccountType",
			Type: "string",
			Enum: []schema.EnumValue{{Name: "imap"}, {Name: "pop3"}},
		}},
	})

	assert.Contains(t, out, `type AccountType = "imap" | "pop3";`)
}

func TestGenerateInterfaceWithMethodsAndEvents(t *testing.T) {
	out := generateFor(&schema.Namespace{
		Namespace: "runtime",
		Types: []*schema.Type{{
			Id:   "Port",
			Type: "object",
			Properties: map[string]*schema.Type{
				"name": {Type: "string"},
			},
			Functions: []*schema.Function{
				{Name: "disconnect", Type: "function"},
			},
			Events: []*schema.Function{
				{Name: "onDisconnect", Type: "function"},
			},
		}},
	})

	assert.Contains(t, out, "interface Port {")
	assert.Contains(t, out, "disconnect(): void;")
	assert.Contains(t, out, "onDisconnect: WebExtEvent<() => void>;")
}

func TestGenerateAnonymousTypesAreNotDeclared(t *testing.T) {
	out := generateFor(&schema.Namespace{
		Namespace: "mail",
		Types:     []*schema.Type{{Type: "object", Properties: map[string]*schema.Type{"a": {Type: "string"}}}},
	})

	assert.NotContains(t, out, "interface  {")
	assert.NotContains(t, out, "type  =")
}

func TestGenerateEventDeclaration(t *testing.T) {
	out := generateFor(&schema.Namespace{
		Namespace: "mail",
		Events: []*schema.Function{{
			Name:        "onSent",
			Type:        "function",
			Description: "Fired when a message was sent.",
			Parameters:  []*schema.Type{{Name: "id", Type: "integer"}},
		}},
	})

	assert.Contains(t, out, "/** Fired when a message was sent. */")
	assert.Contains(t, out, "const onSent: WebExtEvent<(id: number) => void>;")
}

func TestGenerateProperties(t *testing.T) {
	out := generateFor(&schema.Namespace{
		Namespace: "mail",
		Properties: map[string]*schema.Type{
			"version": {Type: "string", Description: "Application version."},
			"folder":  {Ref: "Folder"},
		},
		Types: []*schema.Type{{Id: "Folder", Type: "object", Properties: map[string]*schema.Type{"path": {Type: "string"}}}},
	})

	assert.Contains(t, out, "/** Application version. */")
	assert.Contains(t, out, "const version: string;")
	assert.Contains(t, out, "const folder: Folder;")
}

func TestGenerateNamespaceDescriptionComment(t *testing.T) {
	out := generateFor(&schema.Namespace{
		Namespace:   "mail",
		Description: "Mail handling.",
	})

	assert.Contains(t, out, "/** Mail handling. */\n    namespace mail {")
}

func TestGenerateFixedDeclarationOrder(t *testing.T) {
	out := generateFor(&schema.Namespace{
		Namespace:  "mail",
		Types:      []*schema.Type{{Id: "Folder", Type: "object", Properties: map[string]*schema.Type{"path": {Type: "string"}}}},
		Functions:  []*schema.Function{{Name: "list", Type: "function"}},
		Events:     []*schema.Function{{Name: "onListed", Type: "function"}},
		Properties: map[string]*schema.Type{"version": {Type: "string"}},
	})

	typePos := strings.Index(out, "interface Folder")
	funcPos := strings.Index(out, "function list")
	eventPos := strings.Index(out, "const onListed")
	propPos := strings.Index(out, "const version")

	assert.Less(t, typePos, funcPos)
	assert.Less(t, funcPos, eventPos)
	assert.Less(t, eventPos, propPos)
}

func TestGenerateIsDeterministic(t *testing.T) {
	parts := func() []*schema.Namespace {
		return []*schema.Namespace{{
			Namespace: "mail",
			Properties: map[string]*schema.Type{
				"c": {Type: "string"},
				"a": {Type: "string"},
				"b": {Type: "string"},
			},
		}}
	}

	first := Generate(schema.MergeAll(parts()), "messenger", zerolog.Nop())
	second := Generate(schema.MergeAll(parts()), "messenger", zerolog.Nop())
	assert.Equal(t, first, second)
}
