package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/errors"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

// The engine tests use a small synthetic vocabulary: a doc holding one
// required meta, then items, groups, and links in order. Groups open
// identifier scopes and nest; links reference items.
var testRegistry = schema.NewRegistry("test",
	&schema.Element{
		Name: "doc",
		Children: []schema.Child{
			{Names: []string{"meta"}, Occurs: schema.Required},
			{Names: []string{"item"}, Occurs: schema.ZeroOrMore},
			{Names: []string{"group"}, Occurs: schema.ZeroOrMore},
			{Names: []string{"link"}, Occurs: schema.ZeroOrMore},
		},
	},
	schema.TextLeaf("meta", schema.TextString),
	&schema.Element{
		Name:  "item",
		Attrs: []schema.Attr{{Name: "id"}, {Name: "sid"}, {Name: "count"}},
		Text:  schema.TextFloatList,
		ID:    "id",
		SID:   "sid",
	},
	&schema.Element{
		Name:   "group",
		Attrs:  []schema.Attr{{Name: "id"}, {Name: "sid"}},
		ID:     "id",
		SID:    "sid",
		Scoped: true,
		Children: []schema.Child{
			{Names: []string{"item"}, Occurs: schema.ZeroOrMore},
			{Names: []string{"group"}, Occurs: schema.ZeroOrMore},
			{Names: []string{"link"}, Occurs: schema.ZeroOrMore},
		},
	},
	&schema.Element{
		Name:  "link",
		Attrs: []schema.Attr{{Name: "target", Required: true}},
	},
	&schema.Element{
		Name:       "ext",
		Extensible: true,
		Children: []schema.Child{
			{Names: []string{"meta"}, Occurs: schema.Optional},
		},
	},
	&schema.Element{
		Name:  "technique",
		Attrs: []schema.Attr{{Name: "profile", Required: true}, {Name: "xmlns"}},
		Text:  schema.TextRaw,
	},
)

type tdoc struct {
	meta   string
	items  []*titem
	groups []*tgroup
	links  []*tlink
}

type titem struct {
	id   string
	sid  string
	data []float64
}

type tgroup struct {
	id     string
	sid    string
	items  []*titem
	groups []*tgroup
	links  []*tlink
}

type tlink struct {
	target common.Ref
}

func parseTItem(p *Parser, start colladaxml.Event) (*titem, error) {
	s, err := p.Open("item", start)
	if err != nil {
		return nil, err
	}
	it := &titem{id: s.Attrs().String("id"), sid: s.Attrs().String("sid")}
	if _, err := s.Attrs().Uint("count"); err != nil {
		return nil, err
	}
	if it.data, err = s.FloatList(); err != nil {
		return nil, err
	}
	if err := s.Close(it); err != nil {
		return nil, err
	}
	return it, nil
}

func parseTLink(p *Parser, start colladaxml.Event) (*tlink, error) {
	s, err := p.Open("link", start)
	if err != nil {
		return nil, err
	}
	l := &tlink{target: common.NewRef(s.Attrs().String("target"))}
	s.RecordRef(&l.target, "item")
	if err := s.Empty(); err != nil {
		return nil, err
	}
	if err := s.Close(l); err != nil {
		return nil, err
	}
	return l, nil
}

func parseTGroup(p *Parser, start colladaxml.Event) (*tgroup, error) {
	s, err := p.Open("group", start)
	if err != nil {
		return nil, err
	}
	g := &tgroup{id: s.Attrs().String("id"), sid: s.Attrs().String("sid")}
	err = s.Children(
		func(st colladaxml.Event) error {
			it, err := parseTItem(p, st)
			g.items = append(g.items, it)
			return err
		},
		func(st colladaxml.Event) error {
			sub, err := parseTGroup(p, st)
			g.groups = append(g.groups, sub)
			return err
		},
		func(st colladaxml.Event) error {
			l, err := parseTLink(p, st)
			g.links = append(g.links, l)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(g); err != nil {
		return nil, err
	}
	return g, nil
}

func parseTDoc(p *Parser, start colladaxml.Event) (*tdoc, error) {
	s, err := p.Open("doc", start)
	if err != nil {
		return nil, err
	}
	d := &tdoc{}
	err = s.Children(
		func(st colladaxml.Event) error {
			ms, err := p.Open("meta", st)
			if err != nil {
				return err
			}
			if d.meta, err = ms.Text(); err != nil {
				return err
			}
			return ms.Close(nil)
		},
		func(st colladaxml.Event) error {
			it, err := parseTItem(p, st)
			d.items = append(d.items, it)
			return err
		},
		func(st colladaxml.Event) error {
			g, err := parseTGroup(p, st)
			d.groups = append(d.groups, g)
			return err
		},
		func(st colladaxml.Event) error {
			l, err := parseTLink(p, st)
			d.links = append(d.links, l)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(d); err != nil {
		return nil, err
	}
	return d, nil
}

func parseTest(t *testing.T, doc string) (*tdoc, *Parser, error) {
	t.Helper()

	r := colladaxml.NewReader(strings.NewReader(doc))
	start, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, colladaxml.StartElement, start.Kind)

	p := New(r, testRegistry)
	d, err := parseTDoc(p, start)
	return d, p, err
}

func requireCode(t *testing.T, err error, code errors.ErrorCode) *errors.Error {
	t.Helper()

	perr, ok := errors.AsError(err)
	require.True(t, ok, "expected a coded error, got %v", err)
	require.Equal(t, code, perr.Code)
	return perr
}

func TestParseMinimalDoc(t *testing.T) {
	d, _, err := parseTest(t, `<doc><meta>hello</meta></doc>`)
	require.NoError(t, err)
	assert.Equal(t, "hello", d.meta)
}

func TestRequiredChildMissing(t *testing.T) {
	_, _, err := parseTest(t, `<doc></doc>`)
	perr := requireCode(t, err, errors.ErrMissingChild)
	assert.Equal(t, "doc", perr.Element)
	assert.Equal(t, []string{"meta"}, perr.Expected)
}

func TestAtMostOnceChildRepeated(t *testing.T) {
	_, _, err := parseTest(t, `<doc><meta>a</meta><meta>b</meta></doc>`)
	perr := requireCode(t, err, errors.ErrUnexpectedChild)
	assert.Equal(t, "meta", perr.Actual)
}

func TestChildOutOfOrder(t *testing.T) {
	_, _, err := parseTest(t, `<doc><item/><meta>late</meta></doc>`)
	requireCode(t, err, errors.ErrUnexpectedChild)
}

func TestUnknownChild(t *testing.T) {
	_, _, err := parseTest(t, `<doc><meta>a</meta><bogus/></doc>`)
	perr := requireCode(t, err, errors.ErrUnexpectedChild)
	assert.Equal(t, "bogus", perr.Actual)
	assert.Equal(t, []string{"meta", "item", "group", "link"}, perr.Expected)
}

func TestUnexpectedText(t *testing.T) {
	_, _, err := parseTest(t, `<doc>stray</doc>`)
	requireCode(t, err, errors.ErrUnexpectedText)
}

func TestUnexpectedAttribute(t *testing.T) {
	_, _, err := parseTest(t, `<doc bogus="1"><meta>a</meta></doc>`)
	perr := requireCode(t, err, errors.ErrUnexpectedAttribute)
	assert.Equal(t, "bogus", perr.Actual)
}

func TestMissingRequiredAttribute(t *testing.T) {
	_, _, err := parseTest(t, `<doc><meta>a</meta><link/></doc>`)
	requireCode(t, err, errors.ErrMissingAttribute)
}

func TestInvalidAttributeValue(t *testing.T) {
	_, _, err := parseTest(t, `<doc><meta>a</meta><item count="many"/></doc>`)
	perr := requireCode(t, err, errors.ErrInvalidAttribute)
	assert.Equal(t, "many", perr.Actual)
}

func TestInvalidArrayToken(t *testing.T) {
	doc := "<doc><meta>a</meta>\n<item>1.0 2.0 oops</item></doc>"
	_, _, err := parseTest(t, doc)
	perr := requireCode(t, err, errors.ErrInvalidValue)
	assert.Equal(t, "oops", perr.Actual)
	assert.Contains(t, perr.Message, "token 2")
	assert.Equal(t, 2, perr.Line)
}

func TestGlobalIDRegistration(t *testing.T) {
	d, p, err := parseTest(t, `<doc><meta>a</meta><item id="one">1 2 3</item></doc>`)
	require.NoError(t, err)

	entry, ok := p.Index().LookupGlobal("one")
	require.True(t, ok)
	assert.Equal(t, "item", entry.Kind)
	assert.Same(t, d.items[0], entry.Node)
}

func TestDuplicateGlobalID(t *testing.T) {
	_, _, err := parseTest(t, `<doc><meta>a</meta><item id="dup"/><item id="dup"/></doc>`)
	perr := requireCode(t, err, errors.ErrDuplicateID)
	assert.Contains(t, perr.Message, `"dup"`)
}

func TestDuplicateSIDInSameScope(t *testing.T) {
	doc := `<doc><meta>a</meta><group id="g"><item sid="s"/><item sid="s"/></group></doc>`
	_, _, err := parseTest(t, doc)
	requireCode(t, err, errors.ErrDuplicateSID)
}

func TestSameSIDInSiblingScopes(t *testing.T) {
	doc := `<doc><meta>a</meta><group id="g1"><item sid="s"/></group><group id="g2"><item sid="s"/></group></doc>`
	_, _, err := parseTest(t, doc)
	require.NoError(t, err)
}

func TestResolveGlobal(t *testing.T) {
	doc := `<doc><meta>a</meta><item id="box-mesh"/><link target="#box-mesh"/></doc>`
	d, p, err := parseTest(t, doc)
	require.NoError(t, err)

	errs := p.Resolve()
	assert.Empty(t, errs)
	require.True(t, d.links[0].target.Resolved())
	assert.Same(t, d.items[0], d.links[0].target.Target)
	assert.Equal(t, "item", d.links[0].target.Kind)
}

func TestResolveMissing(t *testing.T) {
	doc := `<doc><meta>a</meta><link target="#missing"/></doc>`
	d, p, err := parseTest(t, doc)
	require.NoError(t, err)

	errs := p.Resolve()
	require.Len(t, errs, 1)
	assert.Equal(t, errors.ErrUnresolvedReference, errs[0].Code)
	assert.Contains(t, errs[0].Message, `"missing"`)
	assert.False(t, d.links[0].target.Resolved())
}

func TestResolveKindMismatch(t *testing.T) {
	doc := `<doc><meta>a</meta><group id="g"/><link target="#g"/></doc>`
	_, p, err := parseTest(t, doc)
	require.NoError(t, err)

	errs := p.Resolve()
	require.Len(t, errs, 1)
	assert.Equal(t, errors.ErrReferenceKindMismatch, errs[0].Code)
	assert.Equal(t, []string{"item"}, errs[0].Expected)
	assert.Equal(t, "group", errs[0].Actual)
}

func TestResolveExternalSkipped(t *testing.T) {
	doc := `<doc><meta>a</meta><link target="other.dae#box"/></doc>`
	d, p, err := parseTest(t, doc)
	require.NoError(t, err)

	errs := p.Resolve()
	assert.Empty(t, errs)
	assert.False(t, d.links[0].target.Resolved())
}

func TestResolveScopedPath(t *testing.T) {
	doc := `<doc><meta>a</meta><group id="g"><item sid="s">5</item></group><link target="#g/s"/></doc>`
	d, p, err := parseTest(t, doc)
	require.NoError(t, err)

	errs := p.Resolve()
	assert.Empty(t, errs)
	require.True(t, d.links[0].target.Resolved())
	assert.Same(t, d.groups[0].items[0], d.links[0].target.Target)
}

func TestResolveScopedPathAccessor(t *testing.T) {
	doc := `<doc><meta>a</meta><group id="g"><item sid="s"/></group><link target="#g/s.X"/></doc>`
	d, p, err := parseTest(t, doc)
	require.NoError(t, err)

	require.Empty(t, p.Resolve())
	assert.Equal(t, "X", d.links[0].target.Accessor)
}

func TestResolveRelativeSIDWalksOutward(t *testing.T) {
	doc := `<doc><meta>a</meta><group id="g"><item sid="s"/><group id="inner"><link target="s"/></group></group></doc>`
	d, p, err := parseTest(t, doc)
	require.NoError(t, err)

	require.Empty(t, p.Resolve())
	inner := d.groups[0].groups[0]
	require.True(t, inner.links[0].target.Resolved())
	assert.Same(t, d.groups[0].items[0], inner.links[0].target.Target)
}

func TestResolveSIDNotVisibleOutsideScope(t *testing.T) {
	doc := `<doc><meta>a</meta><group id="g"><item sid="s"/></group><link target="s"/></doc>`
	_, p, err := parseTest(t, doc)
	require.NoError(t, err)

	errs := p.Resolve()
	require.Len(t, errs, 1)
	assert.Equal(t, errors.ErrUnresolvedReference, errs[0].Code)
}

func TestResolveIdempotent(t *testing.T) {
	doc := `<doc><meta>a</meta><item id="hit"/><link target="#hit"/><link target="#miss"/></doc>`
	d, p, err := parseTest(t, doc)
	require.NoError(t, err)

	first := p.Resolve()
	target := d.links[0].target.Target
	second := p.Resolve()

	assert.Equal(t, first, second)
	assert.Same(t, target, d.links[0].target.Target)
}

func TestExtensionRouting(t *testing.T) {
	doc := `<ext><meta>a</meta><vendor tool="x"><nested>data</nested></vendor></ext>`
	r := colladaxml.NewReader(strings.NewReader(doc))
	start, err := r.Next()
	require.NoError(t, err)

	p := New(r, testRegistry)
	s, err := p.Open("ext", start)
	require.NoError(t, err)
	require.NoError(t, s.Children(func(st colladaxml.Event) error {
		ms, err := p.Open("meta", st)
		if err != nil {
			return err
		}
		if _, err := ms.Text(); err != nil {
			return err
		}
		return ms.Close(nil)
	}))

	ext := s.Extensions()
	require.Len(t, ext, 1)
	assert.Equal(t, "vendor", ext[0].Name)
	v, ok := ext[0].Attr("tool")
	require.True(t, ok)
	assert.Equal(t, "x", v)
	require.NotNil(t, ext[0].Find("nested"))
	assert.Equal(t, "data", ext[0].Find("nested").Text)
}

func TestTechnique(t *testing.T) {
	doc := `<technique profile="VENDOR"><param>1</param></technique>`
	r := colladaxml.NewReader(strings.NewReader(doc))
	start, err := r.Next()
	require.NoError(t, err)

	p := New(r, testRegistry)
	tech, err := p.Technique(start)
	require.NoError(t, err)
	assert.Equal(t, "VENDOR", tech.Profile)
	require.Len(t, tech.Data, 1)
	assert.Equal(t, "param", tech.Data[0].Name)
}

func TestTechniqueMissingProfile(t *testing.T) {
	r := colladaxml.NewReader(strings.NewReader(`<technique/>`))
	start, err := r.Next()
	require.NoError(t, err)

	p := New(r, testRegistry)
	_, err = p.Technique(start)
	requireCode(t, err, errors.ErrMissingAttribute)
}
