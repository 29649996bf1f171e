package common

// Attr is an attribute captured on an opaque extension fragment.
type Attr struct {
	Name  string
	Value string
}

// Fragment is a piece of markup preserved without interpretation: extension
// content the schema does not describe, kept intact so downstream tools can
// still inspect or round-trip it.
type Fragment struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Fragment
}

// Attr returns the value of the named attribute and whether it is present.
func (f *Fragment) Attr(name string) (string, bool) {
	for _, a := range f.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Find returns the first direct child fragment with the given name, or nil.
func (f *Fragment) Find(name string) *Fragment {
	for _, c := range f.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}
