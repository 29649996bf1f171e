package parser

import "github.com/jacoelho/collada/common"

// pendingRef is a reference recorded during parsing, kept as plain data
// until the resolution pass: the target text lives in the Ref itself, the
// expected kinds and originating scope path here.
type pendingRef struct {
	ref      *common.Ref
	expected []string
	path     []ScopeID
	element  string
	line     int
	column   int
}

// RecordRef queues a reference for the post-parse resolution pass. The
// originating element's scope path is captured now so scoped lookups later
// see the scopes that were open at the reference site. Empty references are
// not recorded.
func (s *State) RecordRef(ref *common.Ref, expected ...string) {
	if ref.URI == "" {
		return
	}
	s.p.refs = append(s.p.refs, &pendingRef{
		ref:      ref,
		expected: expected,
		path:     s.p.scopePath(),
		element:  s.def.Name,
		line:     s.start.Line,
		column:   s.start.Column,
	})
}
