package common

import "strings"

// Ref is a textual reference to an identified element elsewhere in the
// document. The URI is recorded during parsing; Target and Kind are filled
// in by the resolution pass and are read-only afterwards.
//
// A reference of the form "#id" addresses a document-global identifier. A
// path such as "anchor/sid" or "#anchor/sid" addresses a scoped identifier
// reachable from the anchor. References into other documents
// ("other.dae#id") are left unresolved without error.
type Ref struct {
	// URI is the reference text exactly as written in the document.
	URI string

	// Accessor is the trailing member or array accessor split off a scoped
	// identifier path, such as "X" in "trans.X" or "(3)" in "values(3)".
	Accessor string

	// Target is the resolved node, or nil if the reference is external,
	// unresolved, or resolution has not run.
	Target any

	// Kind is the element kind of Target, such as "geometry".
	Kind string
}

// NewRef builds an unresolved reference from its document text.
func NewRef(uri string) Ref {
	return Ref{URI: uri}
}

// Resolved reports whether the reference points at a node in the document.
func (r *Ref) Resolved() bool {
	return r.Target != nil
}

// External reports whether the reference addresses another document.
func (r *Ref) External() bool {
	i := strings.Index(r.URI, "#")
	return i > 0
}

// Fragment returns the reference text without a leading "#".
func (r *Ref) Fragment() string {
	return strings.TrimPrefix(r.URI, "#")
}
