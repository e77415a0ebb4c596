package gen

import (
	"fmt"
	"strings"

	"github.com/declgen/declgen/internal/schema"
)

// sigParam is one rendered parameter of a synthesized signature.
type sigParam struct {
	name     string
	expr     string
	optional bool
}

// reservedWords are TypeScript identifiers a declared function cannot
// be named. Colliding functions are emitted under a prefixed symbol
// plus an alias re-export back to the schema-declared name.
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "enum": true,
	"export": true, "extends": true, "false": true, "finally": true,
	"for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true,
	"throw": true, "true": true, "try": true, "typeof": true,
	"var": true, "void": true, "while": true, "with": true,
}

func isCallbackName(name string) bool {
	return name == "callback" || name == "responseCallback"
}

// functionLines synthesizes the declaration lines for one function: a
// JSDoc comment when a description exists, one `function` statement per
// overload, and an alias re-export when the name collides with a
// reserved word.
func (c *compiler) functionLines(f *schema.Function) []string {
	sets, ret := c.synthesize(f)

	name := f.Name
	alias := ""
	if reservedWords[name] {
		alias = name
		name = "_" + name
	}

	var lines []string
	if f.Description != "" {
		lines = append(lines, jsdocLines(f.Description)...)
	}

	for _, set := range sets {
		lines = append(lines, fmt.Sprintf("function %s(%s): %s;", name, renderParams(set), ret))
	}

	if alias != "" {
		lines = append(lines, fmt.Sprintf("export {%s as %s};", name, alias))
	}

	return lines
}

// methodLines synthesizes interface-member signatures for a function
// nested inside an object type. Members carry no `function` keyword and
// need no reserved-word aliasing.
func (c *compiler) methodLines(f *schema.Function) []string {
	sets, ret := c.synthesize(f)

	var lines []string
	if f.Description != "" {
		lines = append(lines, jsdocLines(f.Description)...)
	}

	for _, set := range sets {
		lines = append(lines, fmt.Sprintf("%s(%s): %s;", f.Name, renderParams(set), ret))
	}

	return lines
}

// arrowType synthesizes an inline anonymous callable type expression.
// When optional parameters force an overload set, the result is the
// union of every overload's arrow type.
func (c *compiler) arrowType(f *schema.Function) string {
	sets, ret := c.synthesize(f)

	if len(sets) == 1 {
		return fmt.Sprintf("(%s) => %s", renderParams(sets[0]), ret)
	}

	parts := make([]string, len(sets))
	for i, set := range sets {
		parts[i] = fmt.Sprintf("((%s) => %s)", renderParams(set), ret)
	}

	return strings.Join(parts, " | ")
}

// synthesize normalizes the function's asynchronous convention and
// produces the overload parameter sets together with the return type
// expression.
//
// The three asynchronous conventions collapse into one shape: a bare
// `async: true` resolves to `Promise<any>`; an `async` naming one of
// the function's own parameters treats that parameter as the result
// callback, lifts its first nested parameter's type into the promise
// and removes the callback from the visible parameter list; anything
// else the schema declares as a string is an unrecognized convention
// and degrades to an untyped promise with no visible parameters.
func (c *compiler) synthesize(f *schema.Function) ([][]sigParam, string) {
	visible := f.Parameters
	var ret string

	switch {
	case f.Async.Callback != "":
		cb := findParam(f.Parameters, f.Async.Callback)
		if cb == nil {
			c.logger.Warn().
				Str("namespace", c.ns).
				Str("function", f.Name).
				Str("async", f.Async.Callback).
				Msg("unknown async convention")
			return [][]sigParam{{}}, "Promise<any>"
		}

		resolved := "any"
		if len(cb.Parameters) > 0 {
			resolved = c.TypeExpr(cb.Parameters[0])
		}
		if cb.Optional {
			resolved += " | void"
		}

		ret = "Promise<" + resolved + ">"
		visible = withoutParam(f.Parameters, cb)
	case f.Async.Flag:
		ret = "Promise<any>"
	default:
		ret = c.returnExpr(f.Returns)
	}

	return c.overloadSets(visible), ret
}

func (c *compiler) returnExpr(returns *schema.Type) string {
	if returns == nil {
		return "void"
	}
	if returns.Type == "array" {
		return "any[]"
	}
	return c.TypeExpr(returns)
}

// overloadSets expands a parameter list into the signatures needed to
// cover every legal call arity.
//
// When every parameter from the first optional one onward is optional,
// one signature suffices: a trailing callback-named parameter keeps its
// own optionality, every other optional parameter is forced required.
// When an optional parameter precedes a later required one, positional
// defaulting cannot express the legal arities, so a cascade is emitted:
// one all-required signature per prefix ending at the last required
// parameter, extended by one trailing optional parameter at a time.
func (c *compiler) overloadSets(params []*schema.Type) [][]sigParam {
	firstOpt := -1
	for i, p := range params {
		if p.Optional {
			firstOpt = i
			break
		}
	}

	if firstOpt == -1 {
		return [][]sigParam{c.renderSet(params, nil)}
	}

	tailOptional := true
	for _, p := range params[firstOpt:] {
		if !p.Optional {
			tailOptional = false
			break
		}
	}

	if tailOptional {
		keepOptional := func(p *schema.Type) bool {
			return p.Optional && isCallbackName(p.Name)
		}
		return [][]sigParam{c.renderSet(params, keepOptional)}
	}

	lastReq := -1
	for i, p := range params {
		if !p.Optional {
			lastReq = i
		}
	}

	var sets [][]sigParam
	for end := lastReq + 1; end <= len(params); end++ {
		sets = append(sets, c.renderSet(params[:end], nil))
	}

	return sets
}

// renderSet compiles one overload's parameters. `keepOptional` decides
// which parameters retain their `?` marker; nil forces all required.
func (c *compiler) renderSet(params []*schema.Type, keepOptional func(*schema.Type) bool) []sigParam {
	set := make([]sigParam, len(params))

	for i, p := range params {
		optional := false
		if keepOptional != nil {
			optional = keepOptional(p)
		}

		set[i] = sigParam{name: p.Name, expr: c.TypeExpr(p), optional: optional}
	}

	return set
}

func renderParams(params []sigParam) string {
	parts := make([]string, len(params))

	for i, p := range params {
		optional := ""
		if p.optional {
			optional = "?"
		}
		parts[i] = fmt.Sprintf("%s%s: %s", p.name, optional, p.expr)
	}

	return strings.Join(parts, ", ")
}

func findParam(params []*schema.Type, name string) *schema.Type {
	for _, p := range params {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func withoutParam(params []*schema.Type, drop *schema.Type) []*schema.Type {
	kept := make([]*schema.Type, 0, len(params))

	for _, p := range params {
		if p != drop {
			kept = append(kept, p)
		}
	}

	return kept
}
