package parser

import "fmt"

// ScopeID names one identifier scope minted during the parse. Scope 0 is
// the document scope; NoScope marks elements that do not open a scope.
type ScopeID int

// NoScope is the scope id of elements that are not scope-forming.
const NoScope ScopeID = -1

// Entry records one addressable element: what kind of element declared the
// identifier, the parsed node itself, and the scope the element opened (or
// NoScope), which is where a path steps next when the identifier is an
// intermediate segment.
type Entry struct {
	Kind   string
	Node   any
	Opened ScopeID
}

type localKey struct {
	scope ScopeID
	sid   string
}

// Index holds the document's identifier tables: one global namespace of
// ids and one table of scope-local sids keyed by enclosing scope.
type Index struct {
	global map[string]Entry
	local  map[localKey]Entry
}

// NewIndex returns an empty identifier index.
func NewIndex() *Index {
	return &Index{
		global: make(map[string]Entry),
		local:  make(map[localKey]Entry),
	}
}

// RegisterGlobal records a global identifier. Ids share a single document
// wide namespace regardless of element kind, so a second declaration of
// the same id fails.
func (x *Index) RegisterGlobal(id, kind string, node any, opened ScopeID) error {
	if prev, ok := x.global[id]; ok {
		return fmt.Errorf("duplicate id %q: already declared by <%s>", id, prev.Kind)
	}
	x.global[id] = Entry{Kind: kind, Node: node, Opened: opened}
	return nil
}

// RegisterLocal records a scope-local identifier in the given enclosing
// scope. The same sid may recur in other scopes; a second declaration in
// the same scope fails.
func (x *Index) RegisterLocal(scope ScopeID, sid, kind string, node any, opened ScopeID) error {
	key := localKey{scope: scope, sid: sid}
	if prev, ok := x.local[key]; ok {
		return fmt.Errorf("duplicate sid %q in scope: already declared by <%s>", sid, prev.Kind)
	}
	x.local[key] = Entry{Kind: kind, Node: node, Opened: opened}
	return nil
}

// LookupGlobal finds a global identifier.
func (x *Index) LookupGlobal(id string) (Entry, bool) {
	entry, ok := x.global[id]
	return entry, ok
}

// LookupLocal finds a scope-local identifier visible from the given scope
// path, checking the innermost scope first.
func (x *Index) LookupLocal(path []ScopeID, sid string) (Entry, bool) {
	for i := len(path) - 1; i >= 0; i-- {
		if entry, ok := x.local[localKey{scope: path[i], sid: sid}]; ok {
			return entry, true
		}
	}
	return Entry{}, false
}

// LookupIn finds a scope-local identifier declared directly in one scope,
// without walking outward.
func (x *Index) LookupIn(scope ScopeID, sid string) (Entry, bool) {
	entry, ok := x.local[localKey{scope: scope, sid: sid}]
	return entry, ok
}
