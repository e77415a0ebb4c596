package gen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/declgen/declgen/internal/maps"
	"github.com/declgen/declgen/internal/schema"
	"github.com/rs/zerolog"
)

// eventInterface is emitted once at the top of the declaration file and
// shared by every event declaration.
const eventInterface = `interface WebExtEvent<TListener extends (...args: any[]) => any> {
    addListener(listener: TListener): void;
    removeListener(listener: TListener): void;
    hasListener(listener: TListener): boolean;
}`

// Generate walks the merged namespace table and produces the complete
// declaration file text. Namespaces are emitted in table order; within
// each namespace the order is fixed: types, functions, events,
// properties.
func Generate(table *schema.Table, globalName string, logger zerolog.Logger) string {
	b := &stringBuilder{}

	b.WriteLine("// Generated type declarations. Do not edit by hand.")
	b.WriteNewLine()
	b.WriteLines(eventInterface)
	b.WriteNewLine()

	b.WriteLine(fmt.Sprintf("declare namespace %s {", globalName))
	b.Indent()

	for i, ns := range table.Namespaces() {
		if i > 0 {
			b.WriteNewLine()
		}
		emitNamespace(b, table, ns, logger)
	}

	b.DeIndent()
	b.WriteLine("}")

	return b.String()
}

func emitNamespace(b *stringBuilder, table *schema.Table, ns *schema.Namespace, logger zerolog.Logger) {
	c := &compiler{table: table, ns: ns.Namespace, logger: logger}

	if ns.Description != "" {
		writeLines(b, jsdocLines(ns.Description))
	}

	b.WriteLine(fmt.Sprintf("namespace %s {", ns.Namespace))
	b.Indent()

	for _, t := range ns.Types {
		c.emitType(b, t)
	}

	for _, f := range ns.Functions {
		writeLines(b, c.functionLines(f))
	}

	for _, ev := range ns.Events {
		c.emitEvent(b, ev)
	}

	c.emitProperties(b, ns.Properties)

	b.DeIndent()
	b.WriteLine("}")
}

// emitType declares one named type. Object types become interfaces so
// that nested functions and events can be declared as members; anything
// else becomes a type alias over the compiled type expression.
// Anonymous types have nothing to declare: they are inlined wherever
// they are referenced.
func (c *compiler) emitType(b *stringBuilder, t *schema.Type) {
	if t.Id == "" {
		return
	}

	if t.Description != "" {
		writeLines(b, jsdocLines(t.Description))
	}

	if t.Kind() == schema.KindObject && (len(t.Properties) > 0 || len(t.Functions) > 0 || len(t.Events) > 0) {
		c.emitInterface(b, t)
		return
	}

	b.WriteLine(fmt.Sprintf("type %s = %s;", t.Id, c.TypeExpr(t)))
}

func (c *compiler) emitInterface(b *stringBuilder, t *schema.Type) {
	b.WriteLine(fmt.Sprintf("interface %s {", t.Id))
	b.Indent()

	names := maps.Keys(t.Properties)
	sort.Strings(names)

	for _, name := range names {
		p := t.Properties[name]

		if p.Description != "" {
			writeLines(b, jsdocLines(p.Description))
		}

		optional := ""
		if p.Optional {
			optional = "?"
		}

		b.WriteLine(fmt.Sprintf("%s%s: %s;", propertyKey(name), optional, c.TypeExpr(p)))
	}

	for _, f := range t.Functions {
		writeLines(b, c.methodLines(f))
	}

	for _, ev := range t.Events {
		if ev.Description != "" {
			writeLines(b, jsdocLines(ev.Description))
		}
		b.WriteLine(fmt.Sprintf("%s: WebExtEvent<%s>;", ev.Name, c.arrowType(ev)))
	}

	b.DeIndent()
	b.WriteLine("}")
}

// emitEvent declares one namespace-level event as a typed event-handler
// object. The handler is parameterized by the union of the event's
// possible listener signatures.
func (c *compiler) emitEvent(b *stringBuilder, ev *schema.Function) {
	if ev.Description != "" {
		writeLines(b, jsdocLines(ev.Description))
	}

	b.WriteLine(fmt.Sprintf("const %s: WebExtEvent<%s>;", ev.Name, c.arrowType(ev)))
}

// emitProperties declares the namespace's constant and reference-valued
// properties, in name order.
func (c *compiler) emitProperties(b *stringBuilder, props map[string]*schema.Type) {
	names := maps.Keys(props)
	sort.Strings(names)

	for _, name := range names {
		p := props[name]

		if p.Description != "" {
			writeLines(b, jsdocLines(p.Description))
		}

		b.WriteLine(fmt.Sprintf("const %s: %s;", name, c.TypeExpr(p)))
	}
}

func writeLines(b *stringBuilder, lines []string) {
	for _, line := range lines {
		b.WriteLine(line)
	}
}

// jsdocLines formats a description as a JSDoc comment block.
func jsdocLines(description string) []string {
	lines := strings.Split(strings.TrimSpace(description), "\n")

	if len(lines) == 1 {
		return []string{"/** " + lines[0] + " */"}
	}

	out := []string{"/**"}
	for _, line := range lines {
		if line == "" {
			out = append(out, " *")
		} else {
			out = append(out, " * "+line)
		}
	}

	return append(out, " */")
}
