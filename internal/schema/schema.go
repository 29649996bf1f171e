// Package schema describes the structural rules for every element kind of a
// COLLADA schema version: permitted attributes, ordered child slots with
// cardinality, text content kind, and extension points. The tables built
// from these types are consulted by the element parser and never mutated.
package schema

// Occurs constrains how many times a child slot may appear.
type Occurs uint8

const (
	// Required means exactly one occurrence.
	Required Occurs = iota
	// Optional means zero or one occurrence.
	Optional
	// OptionalDefault means zero or one occurrence, with a schema-supplied
	// default value when absent.
	OptionalDefault
	// ZeroOrMore means any number of occurrences.
	ZeroOrMore
	// OneOrMore means at least one occurrence.
	OneOrMore
)

// Repeats reports whether the slot may match more than once.
func (o Occurs) Repeats() bool {
	return o == ZeroOrMore || o == OneOrMore
}

// Requires reports whether at least one occurrence must appear.
func (o Occurs) Requires() bool {
	return o == Required || o == OneOrMore
}

// Attr describes one permitted attribute of an element kind.
type Attr struct {
	Name     string
	Required bool
	Default  string
}

// Child is one slot in an element's ordered content model. A slot with
// multiple names is a choice: any of the named kinds fills the slot.
type Child struct {
	Names  []string
	Occurs Occurs
}

// Matches reports whether an element of the given name can fill the slot.
func (c *Child) Matches(name string) bool {
	for _, n := range c.Names {
		if n == name {
			return true
		}
	}
	return false
}

// Text identifies the decoded type of an element's character content.
type Text uint8

const (
	// TextNone means the element holds child elements only.
	TextNone Text = iota
	// TextString is free-form text.
	TextString
	// TextAnyURI is a URI value.
	TextAnyURI
	// TextDateTime is an ISO 8601 timestamp.
	TextDateTime
	// TextFloat is a single floating-point value.
	TextFloat
	// TextEnum is one token from a closed set.
	TextEnum
	// TextFloatList is whitespace-delimited floating-point values.
	TextFloatList
	// TextIntList is whitespace-delimited integers.
	TextIntList
	// TextUintList is whitespace-delimited non-negative integers.
	TextUintList
	// TextBoolList is whitespace-delimited booleans.
	TextBoolList
	// TextNameList is whitespace-delimited name tokens.
	TextNameList
	// TextRaw preserves the content as opaque markup.
	TextRaw
)

// Element is the registry entry for one element kind.
type Element struct {
	// Name is the element tag. Key distinguishes kinds that reuse a tag in
	// different contexts; it defaults to Name when empty.
	Name string
	Key  string

	Attrs    []Attr
	Children []Child
	Text     Text

	// Extensible routes unrecognized children into opaque extension
	// fragments instead of failing.
	Extensible bool

	// ID and SID name the attributes that declare a document-global or
	// scope-local identifier, when the kind has one.
	ID  string
	SID string

	// Scoped marks kinds that open a new scope for local identifiers
	// declared by their descendants.
	Scoped bool
}

// RegistryKey returns the key the element is registered under.
func (e *Element) RegistryKey() string {
	if e.Key != "" {
		return e.Key
	}
	return e.Name
}

// Attr returns the declared attribute with the given name, or nil.
func (e *Element) Attr(name string) *Attr {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			return &e.Attrs[i]
		}
	}
	return nil
}

// AttrNames returns the names of all declared attributes.
func (e *Element) AttrNames() []string {
	names := make([]string, len(e.Attrs))
	for i := range e.Attrs {
		names[i] = e.Attrs[i].Name
	}
	return names
}

// ChildNames returns the names of all declared child kinds in slot order.
func (e *Element) ChildNames() []string {
	var names []string
	for i := range e.Children {
		names = append(names, e.Children[i].Names...)
	}
	return names
}

// AllowsChild reports whether any slot accepts the named child.
func (e *Element) AllowsChild(name string) bool {
	for i := range e.Children {
		if e.Children[i].Matches(name) {
			return true
		}
	}
	return false
}

// TextLeaf builds a definition for an attribute-free element holding only
// text content.
func TextLeaf(name string, text Text) *Element {
	return &Element{Name: name, Text: text}
}
