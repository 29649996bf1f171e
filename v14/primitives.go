package v14

import (
	"iter"

	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func primitiveDefs() []*schema.Element {
	prim := func(name string, indexLists schema.Occurs) *schema.Element {
		return &schema.Element{
			Name: name,
			Attrs: []schema.Attr{
				{Name: "name"},
				{Name: "count", Required: true},
				{Name: "material"},
			},
			Children: []schema.Child{
				{Names: []string{"input"}, Occurs: schema.ZeroOrMore},
				{Names: []string{"p"}, Occurs: indexLists},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		}
	}

	polylist := prim("polylist", schema.Optional)
	polylist.Children = []schema.Child{
		{Names: []string{"input"}, Occurs: schema.ZeroOrMore},
		{Names: []string{"vcount"}, Occurs: schema.Optional},
		{Names: []string{"p"}, Occurs: schema.Optional},
		{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
	}

	// <polygons> may also hold <ph> children for polygons with holes; those
	// are preserved opaquely.
	polygons := prim("polygons", schema.ZeroOrMore)
	polygons.Extensible = true

	return []*schema.Element{
		polylist,
		prim("triangles", schema.Optional),
		prim("lines", schema.Optional),
		prim("linestrips", schema.ZeroOrMore),
		polygons,
		prim("trifans", schema.ZeroOrMore),
		prim("tristrips", schema.ZeroOrMore),
		schema.TextLeaf("vcount", schema.TextUintList),
		schema.TextLeaf("p", schema.TextUintList),
	}
}

// Primitive is one primitive block of a mesh: a polylist, triangle list,
// line list, or one of the strip and fan forms.
type Primitive interface {
	primitive()
}

func (*Polylist) primitive()   {}
func (*Triangles) primitive()  {}
func (*Lines) primitive()      {}
func (*Linestrips) primitive() {}
func (*Polygons) primitive()   {}
func (*Trifans) primitive()    {}
func (*Tristrips) primitive()  {}

// primitiveCommon is the identity, material binding, and inputs shared by
// every primitive kind.
type primitiveCommon struct {
	Name string
	// Count is the declared number of primitives.
	Count int
	// Material names a material bound at instantiation time through
	// BindMaterial. Empty means shading is application-defined.
	Material string

	Inputs []*SharedInput
	Extras []*Extra
}

// indexStride is the number of indices per vertex: inputs may share an
// offset, so it is one more than the largest offset, not the input count.
func (pc *primitiveCommon) indexStride() int {
	stride := 0
	for _, in := range pc.Inputs {
		if in.Offset+1 > stride {
			stride = in.Offset + 1
		}
	}
	return stride
}

// Polylist is a list of polygons of varying vertex counts.
type Polylist struct {
	primitiveCommon
	// VCount holds the number of vertices of each polygon.
	VCount []int
	// P holds the vertex indices of all polygons, interleaved per input
	// offset.
	P []int
}

// Polygon is one polygon's worth of indices from a polylist.
type Polygon struct {
	indices []int
	stride  int
}

// Len returns the number of vertices in the polygon.
func (pg Polygon) Len() int {
	if pg.stride == 0 {
		return 0
	}
	return len(pg.indices) / pg.stride
}

// Vertices iterates over the polygon's vertices. Each vertex is a slice of
// indices, one per input offset.
func (pg Polygon) Vertices() iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		for i := 0; i+pg.stride <= len(pg.indices); i += pg.stride {
			if !yield(pg.indices[i : i+pg.stride]) {
				return
			}
		}
	}
}

// Polygons iterates over the polygons of the polylist, slicing the shared
// index list by the per-polygon vertex counts.
func (pl *Polylist) Polygons() iter.Seq[Polygon] {
	return func(yield func(Polygon) bool) {
		stride := pl.indexStride()
		if stride == 0 || pl.P == nil {
			return
		}
		at := 0
		for _, verts := range pl.VCount {
			end := at + verts*stride
			if end > len(pl.P) {
				return
			}
			if !yield(Polygon{indices: pl.P[at:end], stride: stride}) {
				return
			}
			at = end
		}
	}
}

// Triangles is a list of triangles sharing one index list.
type Triangles struct {
	primitiveCommon
	P []int
}

// Lines is a list of line segments sharing one index list.
type Lines struct {
	primitiveCommon
	P []int
}

// Linestrips is a set of connected line strips, one index list per strip.
type Linestrips struct {
	primitiveCommon
	P [][]int
}

// Polygons is the older polygon form with one index list per polygon.
// Polygons with holes arrive as opaque <ph> content.
type Polygons struct {
	primitiveCommon
	P     [][]int
	Holes []*common.Fragment
}

// Trifans is a set of triangle fans, one index list per fan.
type Trifans struct {
	primitiveCommon
	P [][]int
}

// Tristrips is a set of triangle strips, one index list per strip.
type Tristrips struct {
	primitiveCommon
	P [][]int
}

func parsePrimitive(p *parser.Parser, start colladaxml.Event) (Primitive, error) {
	switch start.Name {
	case "polylist":
		return parsePolylist(p, start)
	case "triangles":
		t := &Triangles{}
		return t, parseSingleIndexPrimitive(p, start, &t.primitiveCommon, &t.P, t)
	case "lines":
		l := &Lines{}
		return l, parseSingleIndexPrimitive(p, start, &l.primitiveCommon, &l.P, l)
	case "linestrips":
		l := &Linestrips{}
		return l, parseMultiIndexPrimitive(p, start, &l.primitiveCommon, &l.P, l)
	case "polygons":
		return parsePolygons(p, start)
	case "trifans":
		t := &Trifans{}
		return t, parseMultiIndexPrimitive(p, start, &t.primitiveCommon, &t.P, t)
	default:
		t := &Tristrips{}
		return t, parseMultiIndexPrimitive(p, start, &t.primitiveCommon, &t.P, t)
	}
}

func openPrimitive(p *parser.Parser, start colladaxml.Event, pc *primitiveCommon) (*parser.State, error) {
	s, err := p.Open(start.Name, start)
	if err != nil {
		return nil, err
	}
	pc.Name = s.Attrs().String("name")
	pc.Material = s.Attrs().String("material")
	if pc.Count, err = s.Attrs().Uint("count"); err != nil {
		return nil, err
	}
	return s, nil
}

func parseSingleIndexPrimitive(p *parser.Parser, start colladaxml.Event, pc *primitiveCommon, indices *[]int, node any) error {
	s, err := openPrimitive(p, start, pc)
	if err != nil {
		return err
	}
	err = s.Children(
		sharedInputSlot(p, &pc.Inputs),
		indexListSlot(p, indices),
		extraSlot(p, &pc.Extras),
	)
	if err != nil {
		return err
	}
	return s.Close(node)
}

func parseMultiIndexPrimitive(p *parser.Parser, start colladaxml.Event, pc *primitiveCommon, lists *[][]int, node any) error {
	s, err := openPrimitive(p, start, pc)
	if err != nil {
		return err
	}
	err = s.Children(
		sharedInputSlot(p, &pc.Inputs),
		func(st colladaxml.Event) error {
			var indices []int
			if err := indexListSlot(p, &indices)(st); err != nil {
				return err
			}
			*lists = append(*lists, indices)
			return nil
		},
		extraSlot(p, &pc.Extras),
	)
	if err != nil {
		return err
	}
	return s.Close(node)
}

func parsePolylist(p *parser.Parser, start colladaxml.Event) (*Polylist, error) {
	pl := &Polylist{}
	s, err := openPrimitive(p, start, &pl.primitiveCommon)
	if err != nil {
		return nil, err
	}
	err = s.Children(
		sharedInputSlot(p, &pl.Inputs),
		func(st colladaxml.Event) error {
			vs, err := p.Open("vcount", st)
			if err != nil {
				return err
			}
			if pl.VCount, err = vs.UintList(); err != nil {
				return err
			}
			return vs.Close(nil)
		},
		indexListSlot(p, &pl.P),
		extraSlot(p, &pl.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(pl); err != nil {
		return nil, err
	}
	return pl, nil
}

func parsePolygons(p *parser.Parser, start colladaxml.Event) (*Polygons, error) {
	pg := &Polygons{}
	s, err := openPrimitive(p, start, &pg.primitiveCommon)
	if err != nil {
		return nil, err
	}
	err = s.Children(
		sharedInputSlot(p, &pg.Inputs),
		func(st colladaxml.Event) error {
			var indices []int
			if err := indexListSlot(p, &indices)(st); err != nil {
				return err
			}
			pg.P = append(pg.P, indices)
			return nil
		},
		extraSlot(p, &pg.Extras),
	)
	if err != nil {
		return nil, err
	}
	pg.Holes = s.Extensions()
	if err := s.Close(pg); err != nil {
		return nil, err
	}
	return pg, nil
}

func indexListSlot(p *parser.Parser, out *[]int) parser.ChildFunc {
	return func(st colladaxml.Event) error {
		s, err := p.Open("p", st)
		if err != nil {
			return err
		}
		if *out, err = s.UintList(); err != nil {
			return err
		}
		return s.Close(nil)
	}
}
