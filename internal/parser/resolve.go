package parser

import (
	"strings"

	"github.com/jacoelho/collada/errors"
)

// Resolve runs the reference resolution pass: every recorded reference is
// attempted exactly once against the identifier index, failures are
// collected rather than aborting, and references into other documents are
// left unresolved without error. Resolving an already-resolved list again
// yields identical results.
func (p *Parser) Resolve() errors.List {
	var errs errors.List
	for _, pr := range p.refs {
		if err := p.resolveRef(pr); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (p *Parser) resolveRef(pr *pendingRef) *errors.Error {
	if pr.ref.External() {
		return nil
	}

	uri := pr.ref.URI
	global := strings.HasPrefix(uri, "#")
	segments := strings.Split(strings.TrimPrefix(uri, "#"), "/")

	// A plain "#id" is a global identifier lookup; ids may legally contain
	// dots, so accessor splitting applies only to scoped identifier paths.
	if global && len(segments) == 1 {
		entry, ok := p.idx.LookupGlobal(segments[0])
		if !ok {
			return pr.unresolved(`no element with id "` + segments[0] + `"`)
		}
		return pr.bind(entry, "")
	}

	last := len(segments) - 1
	var accessor string
	if i := strings.IndexAny(segments[last], ".("); i >= 0 {
		accessor = strings.TrimPrefix(segments[last][i:], ".")
		segments[last] = segments[last][:i]
	}

	entry, ok := p.anchor(global, segments[0], pr.path)
	if !ok {
		return pr.unresolved(`no element addressable as "` + segments[0] + `"`)
	}

	for _, sid := range segments[1:] {
		if entry.Opened == NoScope {
			return pr.unresolved(`element <` + entry.Kind + `> does not form an identifier scope`)
		}
		entry, ok = p.idx.LookupIn(entry.Opened, sid)
		if !ok {
			return pr.unresolved(`no element with sid "` + sid + `" in scope`)
		}
	}

	return pr.bind(entry, accessor)
}

// anchor resolves the first segment of a scoped identifier path: globally
// when the path was written with a leading "#", otherwise by walking the
// originating scope path outward and falling back to a global identifier.
func (p *Parser) anchor(global bool, name string, path []ScopeID) (Entry, bool) {
	if global {
		return p.idx.LookupGlobal(name)
	}
	if entry, ok := p.idx.LookupLocal(path, name); ok {
		return entry, true
	}
	return p.idx.LookupGlobal(name)
}

func (pr *pendingRef) bind(entry Entry, accessor string) *errors.Error {
	if len(pr.expected) > 0 && !containsKind(pr.expected, entry.Kind) {
		return &errors.Error{
			Code:     errors.ErrReferenceKindMismatch,
			Message:  `reference "` + pr.ref.URI + `" resolved to the wrong element kind`,
			Element:  pr.element,
			Expected: pr.expected,
			Actual:   entry.Kind,
			Line:     pr.line,
			Column:   pr.column,
		}
	}
	pr.ref.Target = entry.Node
	pr.ref.Kind = entry.Kind
	pr.ref.Accessor = accessor
	return nil
}

func (pr *pendingRef) unresolved(msg string) *errors.Error {
	return &errors.Error{
		Code:    errors.ErrUnresolvedReference,
		Message: `cannot resolve reference "` + pr.ref.URI + `": ` + msg,
		Element: pr.element,
		Line:    pr.line,
		Column:  pr.column,
	}
}

func containsKind(kinds []string, kind string) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
