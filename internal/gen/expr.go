package gen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/declgen/declgen/internal/maps"
	"github.com/declgen/declgen/internal/schema"
	"github.com/rs/zerolog"
)

// compiler turns schema type nodes into TypeScript type expressions.
// It is created once per run with the complete merged namespace table
// and carries the namespace currently being emitted so that references
// into it stay unqualified.
type compiler struct {
	table  *schema.Table
	ns     string
	logger zerolog.Logger
}

// TypeExpr compiles one schema type node into a TypeScript type
// expression. Compilation never fails: nodes that cannot be classified
// degrade to `unknown` with a logged diagnostic so that one malformed
// node does not forfeit the rest of the generated file.
func (c *compiler) TypeExpr(t *schema.Type) string {
	switch t.Kind() {
	case schema.KindRef:
		return c.refExpr(t.Ref)
	case schema.KindNumber:
		return "number"
	case schema.KindString:
		if len(t.Enum) > 0 {
			return enumUnion(t.Enum)
		}
		return "string"
	case schema.KindArray:
		return c.arrayExpr(t)
	case schema.KindBool:
		return "boolean"
	case schema.KindChoices:
		return c.choicesExpr(t.Choices)
	case schema.KindFunction:
		return c.arrowType(t.AsFunction())
	case schema.KindAny:
		return "any"
	case schema.KindObject:
		if len(t.Properties) > 0 {
			return c.inlineObject(t.Properties)
		}
		return "object"
	default:
		c.logger.Warn().
			Str("namespace", c.ns).
			Str("type", t.Type).
			Msg("undeterminable schema type")
		return "unknown"
	}
}

// refExpr compiles a `$ref`. References already carrying a namespace
// qualifier are emitted as-is. Unqualified references are resolved
// against the full table: a type declared in the current namespace
// stays bare, a type declared elsewhere is qualified with its
// namespace, and an unresolved identifier is emitted bare with a
// warning.
func (c *compiler) refExpr(ref string) string {
	if strings.Contains(ref, ".") {
		return ref
	}

	ns, ok := resolveNamespace(c.table, ref)
	if !ok {
		c.logger.Warn().
			Str("namespace", c.ns).
			Str("ref", ref).
			Msg("unresolved type reference")
		return ref
	}

	if ns == c.ns {
		return ref
	}

	return ns + "." + ref
}

// arrayExpr compiles an array node. An array without an `items`
// descriptor has no synthesizable element type; it degrades to
// `unknown[]` with a diagnostic instead of aborting the run.
func (c *compiler) arrayExpr(t *schema.Type) string {
	if t.Items == nil {
		c.logger.Warn().
			Str("namespace", c.ns).
			Msg("array type without items descriptor")
		return "unknown[]"
	}

	if t.Items.Ref != "" {
		return c.refExpr(t.Items.Ref) + "[]"
	}

	elem := c.TypeExpr(t.Items)
	if strings.Contains(elem, " | ") || strings.Contains(elem, " => ") {
		return "(" + elem + ")[]"
	}

	return elem + "[]"
}

func (c *compiler) choicesExpr(choices []*schema.Type) string {
	parts := make([]string, len(choices))

	for i, choice := range choices {
		parts[i] = c.TypeExpr(choice)
	}

	return strings.Join(parts, " | ")
}

// inlineObject compiles an object node's properties into an inline
// structural type. Properties are emitted in name order so that the
// output is stable across runs.
func (c *compiler) inlineObject(props map[string]*schema.Type) string {
	names := maps.Keys(props)
	sort.Strings(names)

	members := make([]string, 0, len(names))
	for _, name := range names {
		p := props[name]

		optional := ""
		if p.Optional {
			optional = "?"
		}

		members = append(members, fmt.Sprintf("%s%s: %s", propertyKey(name), optional, c.TypeExpr(p)))
	}

	return "{ " + strings.Join(members, "; ") + " }"
}

func enumUnion(values []schema.EnumValue) string {
	parts := make([]string, len(values))

	for i, v := range values {
		parts[i] = fmt.Sprintf("%q", v.Name)
	}

	return strings.Join(parts, " | ")
}

// propertyKey quotes a property name when it is not a valid TypeScript
// identifier.
func propertyKey(name string) string {
	if name == "" {
		return `""`
	}

	for i, r := range name {
		letter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$'
		digit := r >= '0' && r <= '9'

		if i == 0 && !letter {
			return `"` + name + `"`
		}
		if i > 0 && !letter && !digit {
			return `"` + name + `"`
		}
	}

	return name
}
