package v14

import (
	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func controllerDefs() []*schema.Element {
	return []*schema.Element{
		{
			Name:   "controller",
			Attrs:  []schema.Attr{{Name: "id"}, {Name: "name"}},
			ID:     "id",
			Scoped: true,
			Children: []schema.Child{
				{Names: []string{"asset"}, Occurs: schema.Optional},
				{Names: []string{"skin", "morph"}, Occurs: schema.Required},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			// Not scope-forming: joint sids declared under the skin live in
			// the controller's scope, so "controller-id/joint" paths reach
			// them.
			Name:  "skin",
			Attrs: []schema.Attr{{Name: "source", Required: true}},
			Children: []schema.Child{
				{Names: []string{"bind_shape_matrix"}, Occurs: schema.Optional},
				{Names: []string{"source"}, Occurs: schema.OneOrMore},
				{Names: []string{"joints"}, Occurs: schema.Required},
				{Names: []string{"vertex_weights"}, Occurs: schema.Required},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		schema.TextLeaf("bind_shape_matrix", schema.TextFloatList),
		{
			Name: "joints",
			Children: []schema.Child{
				{Names: []string{"input"}, Occurs: schema.OneOrMore},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name:  "vertex_weights",
			Attrs: []schema.Attr{{Name: "count", Required: true}},
			Children: []schema.Child{
				{Names: []string{"input"}, Occurs: schema.OneOrMore},
				{Names: []string{"vcount"}, Occurs: schema.Optional},
				{Names: []string{"v"}, Occurs: schema.Optional},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		schema.TextLeaf("v", schema.TextIntList),
		{
			Name:  "morph",
			Attrs: []schema.Attr{{Name: "source", Required: true}, {Name: "method", Default: "NORMALIZED"}},
			Children: []schema.Child{
				{Names: []string{"source"}, Occurs: schema.OneOrMore},
				{Names: []string{"targets"}, Occurs: schema.Required},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name: "targets",
			Children: []schema.Child{
				{Names: []string{"input"}, Occurs: schema.OneOrMore},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
	}
}

// Controller deforms a geometry. Exactly one of Skin or Morph is set.
type Controller struct {
	ID   string
	Name string

	Asset  *Asset
	Skin   *Skin
	Morph  *Morph
	Extras []*Extra
}

// Skin binds a geometry to a skeleton through per-vertex joint weights.
type Skin struct {
	// Source references the geometry being skinned.
	Source common.Ref

	// BindShapeMatrix positions the geometry in the skeleton's space;
	// sixteen values, identity when absent.
	BindShapeMatrix []float64
	Sources         []*Source
	Joints          *Joints
	VertexWeights   *VertexWeights
	Extras          []*Extra
}

// Joints associates the skeleton joints with their inverse bind matrices.
type Joints struct {
	Inputs []*Input
	Extras []*Extra
}

// VertexWeights assigns joints and weights to each geometry vertex. V holds
// index pairs into the inputs; an index of -1 addresses the bind shape.
type VertexWeights struct {
	Count int

	Inputs []*SharedInput
	VCount []int
	V      []int
	Extras []*Extra
}

// Morph blends a base geometry toward target shapes.
type Morph struct {
	Source common.Ref
	// Method is "NORMALIZED" or "RELATIVE".
	Method string

	Sources []*Source
	Targets *Targets
	Extras  []*Extra
}

// Targets names the morph target and weight sources.
type Targets struct {
	Inputs []*Input
	Extras []*Extra
}

func parseController(p *parser.Parser, start colladaxml.Event) (*Controller, error) {
	s, err := p.Open("controller", start)
	if err != nil {
		return nil, err
	}

	c := &Controller{ID: s.Attrs().String("id"), Name: s.Attrs().String("name")}
	err = s.Children(
		assetSlot(p, &c.Asset),
		func(st colladaxml.Event) error {
			if st.Name == "skin" {
				sk, err := parseSkin(p, st)
				c.Skin = sk
				return err
			}
			m, err := parseMorph(p, st)
			c.Morph = m
			return err
		},
		extraSlot(p, &c.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(c); err != nil {
		return nil, err
	}
	return c, nil
}

func parseSkin(p *parser.Parser, start colladaxml.Event) (*Skin, error) {
	s, err := p.Open("skin", start)
	if err != nil {
		return nil, err
	}

	sk := &Skin{Source: common.NewRef(s.Attrs().String("source"))}
	s.RecordRef(&sk.Source, "geometry")

	err = s.Children(
		func(st colladaxml.Event) error {
			bs, err := p.Open("bind_shape_matrix", st)
			if err != nil {
				return err
			}
			if sk.BindShapeMatrix, err = bs.FloatList(); err != nil {
				return err
			}
			return bs.Close(nil)
		},
		func(st colladaxml.Event) error {
			src, err := parseSource(p, st)
			if err != nil {
				return err
			}
			sk.Sources = append(sk.Sources, src)
			return nil
		},
		func(st colladaxml.Event) error {
			j, err := parseJoints(p, st)
			sk.Joints = j
			return err
		},
		func(st colladaxml.Event) error {
			vw, err := parseVertexWeights(p, st)
			sk.VertexWeights = vw
			return err
		},
		extraSlot(p, &sk.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(sk); err != nil {
		return nil, err
	}
	return sk, nil
}

func parseJoints(p *parser.Parser, start colladaxml.Event) (*Joints, error) {
	s, err := p.Open("joints", start)
	if err != nil {
		return nil, err
	}

	j := &Joints{}
	err = s.Children(
		inputSlot(p, &j.Inputs),
		extraSlot(p, &j.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(j); err != nil {
		return nil, err
	}
	return j, nil
}

func parseVertexWeights(p *parser.Parser, start colladaxml.Event) (*VertexWeights, error) {
	s, err := p.Open("vertex_weights", start)
	if err != nil {
		return nil, err
	}

	vw := &VertexWeights{}
	if vw.Count, err = s.Attrs().Uint("count"); err != nil {
		return nil, err
	}

	err = s.Children(
		sharedInputSlot(p, &vw.Inputs),
		func(st colladaxml.Event) error {
			vs, err := p.Open("vcount", st)
			if err != nil {
				return err
			}
			if vw.VCount, err = vs.UintList(); err != nil {
				return err
			}
			return vs.Close(nil)
		},
		func(st colladaxml.Event) error {
			vs, err := p.Open("v", st)
			if err != nil {
				return err
			}
			if vw.V, err = vs.IntList(); err != nil {
				return err
			}
			return vs.Close(nil)
		},
		extraSlot(p, &vw.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(vw); err != nil {
		return nil, err
	}
	return vw, nil
}

func parseMorph(p *parser.Parser, start colladaxml.Event) (*Morph, error) {
	s, err := p.Open("morph", start)
	if err != nil {
		return nil, err
	}

	m := &Morph{
		Source: common.NewRef(s.Attrs().String("source")),
		Method: s.Attrs().String("method"),
	}
	s.RecordRef(&m.Source, "geometry")

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
			t, err := parseTargets(p, st)
			m.Targets = t
			return err
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

func parseTargets(p *parser.Parser, start colladaxml.Event) (*Targets, error) {
	s, err := p.Open("targets", start)
	if err != nil {
		return nil, err
	}

	t := &Targets{}
	err = s.Children(
		inputSlot(p, &t.Inputs),
		extraSlot(p, &t.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(t); err != nil {
		return nil, err
	}
	return t, nil
}
