package schema

import (
	"fmt"
	"strings"
)

// MergeAll folds the ordered sequence of namespace records read from
// all input documents into a table with exactly one record per
// namespace name. After merging, functions named `delete` are removed
// from every namespace: the identifier is reserved in the generated
// output and such functions cannot be declared.
func MergeAll(parts []*Namespace) *Table {
	t := NewTable()

	for _, p := range parts {
		mergeInto(t, p)
	}

	for _, ns := range t.Namespaces() {
		ns.Functions = removeDeleteFunctions(ns.Functions)
	}

	return t
}

func mergeInto(t *Table, incoming *Namespace) {
	existing, ok := t.Get(incoming.Namespace)
	if !ok {
		if incoming.Functions == nil {
			incoming.Functions = []*Function{}
		}
		if incoming.Types == nil {
			incoming.Types = []*Type{}
		}
		if incoming.Events == nil {
			incoming.Events = []*Function{}
		}
		t.add(incoming)
		return
	}

	if incoming.Description != "" && existing.Description == "" {
		existing.Description = incoming.Description
	}

	existing.Functions = mergeFunctions(incoming.Functions, existing.Functions)
	existing.Types = mergeTypes(incoming.Types, existing.Types)
	existing.Events = mergeEvents(incoming.Events, existing.Events)
	existing.Properties = mergeProperties(incoming.Properties, existing.Properties)
}

// mergeFunctions concatenates the newer file's functions before the
// existing ones and removes duplicates by structural identity: two
// entries are the same function when their name, async convention and
// parameter signature all match. The newer entry survives.
func mergeFunctions(incoming, existing []*Function) []*Function {
	merged := make([]*Function, 0, len(incoming)+len(existing))
	seen := make(map[string]bool)

	for _, f := range append(append([]*Function{}, incoming...), existing...) {
		key := functionKey(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, f)
	}

	return merged
}

// functionKey is the structural identity of a function: its name, its
// async convention and the signature of its parameter list.
func functionKey(f *Function) string {
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = paramToken(p)
	}

	return fmt.Sprintf("%s/%s(%s)", f.Name, f.Async.key(), strings.Join(params, ","))
}

func paramToken(p *Type) string {
	token := p.Type
	if p.Ref != "" {
		token = p.Ref
	}
	if p.Optional {
		token += "?"
	}
	return p.Name + ":" + token
}

// mergeTypes concatenates the newer file's types after the existing
// ones. Anonymous types (no id) are always retained: they are inlined
// structurally and have no identity to merge on. Types carrying an id
// deduplicate by the first occurrence of that id, so the file loaded
// first keeps its definition.
func mergeTypes(incoming, existing []*Type) []*Type {
	merged := make([]*Type, 0, len(incoming)+len(existing))
	seen := make(map[string]bool)

	for _, tp := range append(append([]*Type{}, existing...), incoming...) {
		if tp.Id != "" {
			if seen[tp.Id] {
				continue
			}
			seen[tp.Id] = true
		}
		merged = append(merged, tp)
	}

	return merged
}

// mergeEvents keeps all of the newer file's events and appends only
// those existing events whose (async, name) pair does not already
// appear among the new ones. New-file events win ties.
func mergeEvents(incoming, existing []*Function) []*Function {
	merged := append([]*Function{}, incoming...)

	inNew := make(map[string]bool)
	for _, ev := range incoming {
		inNew[eventKey(ev)] = true
	}

	for _, ev := range existing {
		if !inNew[eventKey(ev)] {
			merged = append(merged, ev)
		}
	}

	return merged
}

func eventKey(ev *Function) string {
	return ev.Async.key() + "/" + ev.Name
}

// mergeProperties unions the two property maps by key. The newer file
// wins on conflicting keys.
func mergeProperties(incoming, existing map[string]*Type) map[string]*Type {
	if len(incoming) == 0 {
		return existing
	}
	if existing == nil {
		existing = make(map[string]*Type, len(incoming))
	}

	for name, p := range incoming {
		existing[name] = p
	}

	return existing
}

func removeDeleteFunctions(fns []*Function) []*Function {
	kept := make([]*Function, 0, len(fns))

	for _, f := range fns {
		if f.Name == "delete" {
			continue
		}
		kept = append(kept, f)
	}

	return kept
}
