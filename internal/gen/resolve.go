package gen

import "github.com/declgen/declgen/internal/schema"

// resolveNamespace finds the namespace declaring a type with the given
// unqualified identifier. The table is scanned in first-declaration
// order and the first declaring namespace wins, so resolution is
// deterministic for any combination of input files. The table is small;
// a linear scan per lookup is fine.
func resolveNamespace(t *schema.Table, id string) (string, bool) {
	for _, name := range t.Names() {
		ns, _ := t.Get(name)

		for _, tp := range ns.Types {
			if tp.Id == id {
				return name, true
			}
		}
	}

	return "", false
}
