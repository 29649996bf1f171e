package v15

import (
	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func geometryDefs() []*schema.Element {
	return []*schema.Element{
		{
			Name:  "geometry",
			Attrs: []schema.Attr{{Name: "id"}, {Name: "name"}},
			ID:    "id",
			Children: []schema.Child{
				{Names: []string{"asset"}, Occurs: schema.Optional},
				{Names: []string{"brep", "mesh", "spline"}, Occurs: schema.Required},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name: "mesh",
			Children: []schema.Child{
				{Names: []string{"source"}, Occurs: schema.OneOrMore},
				{Names: []string{"vertices"}, Occurs: schema.Required},
				{Names: []string{
					"lines", "linestrips", "polygons", "polylist",
					"triangles", "trifans", "tristrips",
				}, Occurs: schema.ZeroOrMore},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name:       "brep",
			Extensible: true,
		},
		{
			Name:       "spline",
			Attrs:      []schema.Attr{{Name: "closed", Default: "false"}},
			Extensible: true,
		},
		{
			Name:  "vertices",
			Attrs: []schema.Attr{{Name: "id", Required: true}, {Name: "name"}},
			ID:    "id",
			Children: []schema.Child{
				{Names: []string{"input"}, Occurs: schema.OneOrMore},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name:  "input",
			Attrs: []schema.Attr{{Name: "semantic", Required: true}, {Name: "source", Required: true}},
		},
		{
			Name: "input",
			Key:  "input_shared",
			Attrs: []schema.Attr{
				{Name: "offset", Required: true},
				{Name: "semantic", Required: true},
				{Name: "source", Required: true},
				{Name: "set"},
			},
		},
	}
}

// Geometry describes the shape of one object. Exactly one of Brep, Mesh, or
// Spline is set.
type Geometry struct {
	ID   string
	Name string

	Asset  *Asset
	Brep   *Brep
	Mesh   *Mesh
	Spline *Spline
	Extras []*Extra
}

// Mesh holds vertex data in sources and the primitives that assemble the
// vertices into shapes.
type Mesh struct {
	Sources    []*Source
	Vertices   *Vertices
	Primitives []Primitive
	Extras     []*Extra
}

// Polylists returns the mesh primitives that are polylists, in order.
func (m *Mesh) Polylists() []*Polylist {
	var out []*Polylist
	for _, prim := range m.Primitives {
		if pl, ok := prim.(*Polylist); ok {
			out = append(out, pl)
		}
	}
	return out
}

// Brep is a boundary-representation solid, kept opaque.
type Brep struct {
	Content []*common.Fragment
}

// Spline is a curve description, kept opaque.
type Spline struct {
	Closed  bool
	Content []*common.Fragment
}

// Vertices binds mesh vertex attributes to their per-vertex sources. The
// POSITION semantic is always among the inputs.
type Vertices struct {
	ID   string
	Name string

	Inputs []*Input
	Extras []*Extra
}

// Input is an unshared input: a semantic bound to a source.
type Input struct {
	Semantic string
	Source   common.Ref
}

// SharedInput is an input carrying an index offset, used by primitives
// where several inputs may share one index stream.
type SharedInput struct {
	Offset   int
	Semantic string
	Source   common.Ref
	// Set distinguishes multiple inputs with the same semantic. Nil when
	// the attribute is absent, which differs from an explicit zero.
	Set *int
}

func parseGeometry(p *parser.Parser, start colladaxml.Event) (*Geometry, error) {
	s, err := p.Open("geometry", start)
	if err != nil {
		return nil, err
	}

	g := &Geometry{ID: s.Attrs().String("id"), Name: s.Attrs().String("name")}
	err = s.Children(
		assetSlot(p, &g.Asset),
		func(st colladaxml.Event) error {
			switch st.Name {
			case "brep":
				b, err := parseBrep(p, st)
				g.Brep = b
				return err
			case "mesh":
				m, err := parseMesh(p, st)
				g.Mesh = m
				return err
			default:
				sp, err := parseSpline(p, st)
				g.Spline = sp
				return err
			}
		},
		extraSlot(p, &g.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(g); err != nil {
		return nil, err
	}
	return g, nil
}

func parseMesh(p *parser.Parser, start colladaxml.Event) (*Mesh, error) {
	s, err := p.Open("mesh", start)
	if err != nil {
		return nil, err
	}

	m := &Mesh{}
	err = s.Children(
		func(st colladaxml.Event) error {
			src, err := parseSource(p, st)
			if err != nil {
				return err
			}
			m.Sources = append(m.Sources, src)
			return nil
		},
		func(st colladaxml.Event) error {
			v, err := parseVertices(p, st)
			m.Vertices = v
			return err
		},
		func(st colladaxml.Event) error {
			prim, err := parsePrimitive(p, st)
			if err != nil {
				return err
			}
			m.Primitives = append(m.Primitives, prim)
			return nil
		},
		extraSlot(p, &m.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(m); err != nil {
		return nil, err
	}
	return m, nil
}

func parseBrep(p *parser.Parser, start colladaxml.Event) (*Brep, error) {
	s, err := p.Open("brep", start)
	if err != nil {
		return nil, err
	}
	b := &Brep{}
	if err := s.Children(); err != nil {
		return nil, err
	}
	b.Content = s.Extensions()
	if err := s.Close(b); err != nil {
		return nil, err
	}
	return b, nil
}

func parseSpline(p *parser.Parser, start colladaxml.Event) (*Spline, error) {
	s, err := p.Open("spline", start)
	if err != nil {
		return nil, err
	}
	sp := &Spline{Closed: s.Attrs().String("closed") == "true"}
	if err := s.Children(); err != nil {
		return nil, err
	}
	sp.Content = s.Extensions()
	if err := s.Close(sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func parseVertices(p *parser.Parser, start colladaxml.Event) (*Vertices, error) {
	s, err := p.Open("vertices", start)
	if err != nil {
		return nil, err
	}

	v := &Vertices{ID: s.Attrs().String("id"), Name: s.Attrs().String("name")}
	err = s.Children(
		inputSlot(p, &v.Inputs),
		extraSlot(p, &v.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(v); err != nil {
		return nil, err
	}
	return v, nil
}

func parseInput(p *parser.Parser, start colladaxml.Event) (*Input, error) {
	s, err := p.Open("input", start)
	if err != nil {
		return nil, err
	}
	in := &Input{
		Semantic: s.Attrs().String("semantic"),
		Source:   common.NewRef(s.Attrs().String("source")),
	}
	s.RecordRef(&in.Source, "source", "vertices", "sampler", "node")
	if err := s.Empty(); err != nil {
		return nil, err
	}
	if err := s.Close(in); err != nil {
		return nil, err
	}
	return in, nil
}

func parseSharedInput(p *parser.Parser, start colladaxml.Event) (*SharedInput, error) {
	s, err := p.Open("input_shared", start)
	if err != nil {
		return nil, err
	}
	in := &SharedInput{
		Semantic: s.Attrs().String("semantic"),
		Source:   common.NewRef(s.Attrs().String("source")),
	}
	if in.Offset, err = s.Attrs().Uint("offset"); err != nil {
		return nil, err
	}
	if in.Set, err = s.Attrs().UintPtr("set"); err != nil {
		return nil, err
	}
	s.RecordRef(&in.Source, "source", "vertices")
	if err := s.Empty(); err != nil {
		return nil, err
	}
	if err := s.Close(in); err != nil {
		return nil, err
	}
	return in, nil
}
