package schema

// Table maps namespace names to their merged records. It preserves
// first-declaration order so that emission and reference resolution are
// deterministic regardless of how the input files were combined. The
// table is built once by the merge phase and read-only afterwards.
type Table struct {
	names  []string
	byName map[string]*Namespace
}

func NewTable() *Table {
	return &Table{
		byName: make(map[string]*Namespace),
	}
}

func (t *Table) Get(name string) (*Namespace, bool) {
	ns, ok := t.byName[name]
	return ns, ok
}

// Names returns the namespace names in first-declaration order.
func (t *Table) Names() []string {
	return t.names
}

// Namespaces returns all records in first-declaration order.
func (t *Table) Namespaces() []*Namespace {
	nss := make([]*Namespace, 0, len(t.names))

	for _, name := range t.names {
		nss = append(nss, t.byName[name])
	}

	return nss
}

func (t *Table) Len() int {
	return len(t.names)
}

func (t *Table) add(ns *Namespace) {
	if _, ok := t.byName[ns.Namespace]; !ok {
		t.names = append(t.names, ns.Namespace)
	}

	t.byName[ns.Namespace] = ns
}

// Remove drops a namespace from the table. Removing a namespace that
// others reference leaves those references unqualified; the caller has
// accepted that risk by ignoring the namespace.
func (t *Table) Remove(name string) {
	if _, ok := t.byName[name]; !ok {
		return
	}

	delete(t.byName, name)

	for i, n := range t.names {
		if n == name {
			t.names = append(t.names[:i], t.names[i+1:]...)
			break
		}
	}
}
