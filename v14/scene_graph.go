package v14

import (
	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func sceneGraphDefs() []*schema.Element {
	transform := func(name string) *schema.Element {
		return &schema.Element{
			Name:  name,
			Attrs: []schema.Attr{{Name: "sid"}},
			Text:  schema.TextFloatList,
			SID:   "sid",
		}
	}
	instance := func(name string, children ...schema.Child) *schema.Element {
		return &schema.Element{
			Name:     name,
			Attrs:    []schema.Attr{{Name: "url", Required: true}, {Name: "sid"}, {Name: "name"}},
			SID:      "sid",
			Children: append(children, schema.Child{Names: []string{"extra"}, Occurs: schema.ZeroOrMore}),
		}
	}

	return []*schema.Element{
		{
			Name:   "visual_scene",
			Attrs:  []schema.Attr{{Name: "id"}, {Name: "name"}},
			ID:     "id",
			Scoped: true,
			Children: []schema.Child{
				{Names: []string{"asset"}, Occurs: schema.Optional},
				{Names: []string{"node"}, Occurs: schema.OneOrMore},
				{Names: []string{"evaluate_scene"}, Occurs: schema.ZeroOrMore},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name:       "evaluate_scene",
			Attrs:      []schema.Attr{{Name: "name"}},
			Extensible: true,
		},
		{
			Name: "node",
			Attrs: []schema.Attr{
				{Name: "id"}, {Name: "name"}, {Name: "sid"},
				{Name: "type", Default: "NODE"}, {Name: "layer"},
			},
			ID:     "id",
			SID:    "sid",
			Scoped: true,
			Children: []schema.Child{
				{Names: []string{"asset"}, Occurs: schema.Optional},
				{Names: []string{
					"lookat", "matrix", "rotate", "scale", "skew", "translate",
				}, Occurs: schema.ZeroOrMore},
				{Names: []string{
					"instance_camera", "instance_controller", "instance_geometry",
					"instance_light", "instance_node",
				}, Occurs: schema.ZeroOrMore},
				{Names: []string{"node"}, Occurs: schema.ZeroOrMore},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		transform("lookat"),
		transform("matrix"),
		transform("rotate"),
		transform("scale"),
		transform("skew"),
		transform("translate"),
		instance("instance_geometry",
			schema.Child{Names: []string{"bind_material"}, Occurs: schema.Optional}),
		instance("instance_controller",
			schema.Child{Names: []string{"skeleton"}, Occurs: schema.ZeroOrMore},
			schema.Child{Names: []string{"bind_material"}, Occurs: schema.Optional}),
		instance("instance_camera"),
		instance("instance_light"),
		instance("instance_node"),
		schema.TextLeaf("skeleton", schema.TextAnyURI),
		{
			Name: "bind_material",
			Children: []schema.Child{
				{Names: []string{"param"}, Occurs: schema.ZeroOrMore},
				{Names: []string{"technique_common"}, Occurs: schema.Required},
				{Names: []string{"technique"}, Occurs: schema.ZeroOrMore},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name: "technique_common",
			Key:  "bind_material_technique_common",
			Children: []schema.Child{
				{Names: []string{"instance_material"}, Occurs: schema.OneOrMore},
			},
		},
		{
			Name: "instance_material",
			Attrs: []schema.Attr{
				{Name: "symbol", Required: true},
				{Name: "target", Required: true},
				{Name: "sid"}, {Name: "name"},
			},
			SID: "sid",
			Children: []schema.Child{
				{Names: []string{"bind"}, Occurs: schema.ZeroOrMore},
				{Names: []string{"bind_vertex_input"}, Occurs: schema.ZeroOrMore},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name:  "bind",
			Attrs: []schema.Attr{{Name: "semantic"}, {Name: "target", Required: true}},
		},
		{
			Name: "bind_vertex_input",
			Attrs: []schema.Attr{
				{Name: "semantic", Required: true},
				{Name: "input_semantic", Required: true},
				{Name: "input_set"},
			},
		},
	}
}

// VisualScene is the root of one scene hierarchy.
type VisualScene struct {
	ID   string
	Name string

	Asset *Asset
	Nodes []*Node
	// EvaluateScenes describe render passes; kept opaque.
	EvaluateScenes []*common.Fragment
	Extras         []*Extra
}

// Node is one point in the scene hierarchy: an ordered transform stack,
// instantiated resources, and child nodes.
type Node struct {
	ID   string
	Name string
	SID  string
	// Type is "NODE" or "JOINT".
	Type  string
	Layer string

	Asset *Asset
	// Transforms compose in document order.
	Transforms []Transform

	InstanceCameras     []*InstanceCamera
	InstanceControllers []*InstanceController
	InstanceGeometries  []*InstanceGeometry
	InstanceLights      []*InstanceLight
	InstanceNodes       []*InstanceNode

	Nodes  []*Node
	Extras []*Extra
}

// Transform is one element of a node's transform stack.
type Transform interface {
	transform()
	// TransformSID returns the transform's scoped identifier, the target of
	// animation channels.
	TransformSID() string
}

// transformBase carries the scoped identifier and raw values shared by all
// transform kinds.
type transformBase struct {
	SID    string
	Values []float64
}

func (t *transformBase) transform()           {}
func (t *transformBase) TransformSID() string { return t.SID }

// Lookat positions an eye point toward an interest point; nine values.
type Lookat struct{ transformBase }

// Matrix is a column-major 4x4 transform; sixteen values.
type Matrix struct{ transformBase }

// Rotate is an axis-angle rotation; four values.
type Rotate struct{ transformBase }

// Scale is a per-axis scale; three values.
type Scale struct{ transformBase }

// Skew is a shear about an axis; seven values.
type Skew struct{ transformBase }

// Translate is a per-axis translation; three values.
type Translate struct{ transformBase }

// InstanceGeometry instantiates a geometry in the scene, optionally binding
// its material symbols.
type InstanceGeometry struct {
	URL  common.Ref
	SID  string
	Name string

	BindMaterial *BindMaterial
	Extras       []*Extra
}

// InstanceController instantiates a controller, naming the skeleton roots
// its joints resolve against.
type InstanceController struct {
	URL  common.Ref
	SID  string
	Name string

	Skeletons    []*common.Ref
	BindMaterial *BindMaterial
	Extras       []*Extra
}

// InstanceCamera instantiates a camera.
type InstanceCamera struct {
	URL  common.Ref
	SID  string
	Name string

	Extras []*Extra
}

// InstanceLight instantiates a light.
type InstanceLight struct {
	URL  common.Ref
	SID  string
	Name string

	Extras []*Extra
}

// InstanceNode instantiates another node's subtree.
type InstanceNode struct {
	URL  common.Ref
	SID  string
	Name string

	Extras []*Extra
}

// BindMaterial binds the material symbols of an instantiated geometry to
// concrete materials.
type BindMaterial struct {
	Params     []*Param
	Materials  []*InstanceMaterial
	Techniques []*common.Technique
	Extras     []*Extra
}

// InstanceMaterial binds one material symbol to a material.
type InstanceMaterial struct {
	// Symbol is the name the geometry's primitives use.
	Symbol string
	Target common.Ref
	SID    string
	Name   string

	Binds            []*Bind
	BindVertexInputs []*BindVertexInput
	Extras           []*Extra
}

// Bind connects an effect parameter to a scene value by sid path.
type Bind struct {
	Semantic string
	Target   common.Ref
}

// BindVertexInput maps a texture coordinate semantic of the effect onto a
// vertex input of the geometry.
type BindVertexInput struct {
	Semantic      string
	InputSemantic string
	InputSet      *int
}

func parseVisualScene(p *parser.Parser, start colladaxml.Event) (*VisualScene, error) {
	s, err := p.Open("visual_scene", start)
	if err != nil {
		return nil, err
	}

	vs := &VisualScene{ID: s.Attrs().String("id"), Name: s.Attrs().String("name")}
	err = s.Children(
		assetSlot(p, &vs.Asset),
		func(st colladaxml.Event) error {
			n, err := parseNode(p, st)
			if err != nil {
				return err
			}
			vs.Nodes = append(vs.Nodes, n)
			return nil
		},
		func(st colladaxml.Event) error {
			es, err := p.Open("evaluate_scene", st)
			if err != nil {
				return err
			}
			if err := es.Children(); err != nil {
				return err
			}
			vs.EvaluateScenes = append(vs.EvaluateScenes, es.Extensions()...)
			return es.Close(nil)
		},
		extraSlot(p, &vs.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(vs); err != nil {
		return nil, err
	}
	return vs, nil
}

func parseNode(p *parser.Parser, start colladaxml.Event) (*Node, error) {
	s, err := p.Open("node", start)
	if err != nil {
		return nil, err
	}

	n := &Node{
		ID:    s.Attrs().String("id"),
		Name:  s.Attrs().String("name"),
		SID:   s.Attrs().String("sid"),
		Type:  s.Attrs().String("type"),
		Layer: s.Attrs().String("layer"),
	}
	err = s.Children(
		assetSlot(p, &n.Asset),
		func(st colladaxml.Event) error {
			t, err := parseTransform(p, st)
			if err != nil {
				return err
			}
			n.Transforms = append(n.Transforms, t)
			return nil
		},
		func(st colladaxml.Event) error {
			return parseNodeInstance(p, st, n)
		},
		func(st colladaxml.Event) error {
			child, err := parseNode(p, st)
			if err != nil {
				return err
			}
			n.Nodes = append(n.Nodes, child)
			return nil
		},
		extraSlot(p, &n.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(n); err != nil {
		return nil, err
	}
	return n, nil
}

func parseTransform(p *parser.Parser, start colladaxml.Event) (Transform, error) {
	s, err := p.Open(start.Name, start)
	if err != nil {
		return nil, err
	}

	var base transformBase
	base.SID = s.Attrs().String("sid")
	if base.Values, err = s.FloatList(); err != nil {
		return nil, err
	}

	var t Transform
	switch start.Name {
	case "lookat":
		t = &Lookat{base}
	case "matrix":
		t = &Matrix{base}
	case "rotate":
		t = &Rotate{base}
	case "scale":
		t = &Scale{base}
	case "skew":
		t = &Skew{base}
	default:
		t = &Translate{base}
	}
	if err := s.Close(t); err != nil {
		return nil, err
	}
	return t, nil
}

func parseNodeInstance(p *parser.Parser, start colladaxml.Event, n *Node) error {
	switch start.Name {
	case "instance_camera":
		inst := &InstanceCamera{}
		s, err := openInstance(p, start, &inst.URL, &inst.SID, &inst.Name, "camera")
		if err != nil {
			return err
		}
		if err := s.Children(extraSlot(p, &inst.Extras)); err != nil {
			return err
		}
		n.InstanceCameras = append(n.InstanceCameras, inst)
		return s.Close(inst)

	case "instance_controller":
		inst := &InstanceController{}
		s, err := openInstance(p, start, &inst.URL, &inst.SID, &inst.Name, "controller")
		if err != nil {
			return err
		}
		err = s.Children(
			func(st colladaxml.Event) error {
				sk, err := parseSkeleton(p, st)
				if err != nil {
					return err
				}
				s.RecordRef(sk, "node")
				inst.Skeletons = append(inst.Skeletons, sk)
				return nil
			},
			func(st colladaxml.Event) error {
				bm, err := parseBindMaterial(p, st)
				inst.BindMaterial = bm
				return err
			},
			extraSlot(p, &inst.Extras),
		)
		if err != nil {
			return err
		}
		n.InstanceControllers = append(n.InstanceControllers, inst)
		return s.Close(inst)

	case "instance_geometry":
		inst := &InstanceGeometry{}
		s, err := openInstance(p, start, &inst.URL, &inst.SID, &inst.Name, "geometry")
		if err != nil {
			return err
		}
		err = s.Children(
			func(st colladaxml.Event) error {
				bm, err := parseBindMaterial(p, st)
				inst.BindMaterial = bm
				return err
			},
			extraSlot(p, &inst.Extras),
		)
		if err != nil {
			return err
		}
		n.InstanceGeometries = append(n.InstanceGeometries, inst)
		return s.Close(inst)

	case "instance_light":
		inst := &InstanceLight{}
		s, err := openInstance(p, start, &inst.URL, &inst.SID, &inst.Name, "light")
		if err != nil {
			return err
		}
		if err := s.Children(extraSlot(p, &inst.Extras)); err != nil {
			return err
		}
		n.InstanceLights = append(n.InstanceLights, inst)
		return s.Close(inst)

	default: // instance_node
		inst := &InstanceNode{}
		s, err := openInstance(p, start, &inst.URL, &inst.SID, &inst.Name, "node")
		if err != nil {
			return err
		}
		if err := s.Children(extraSlot(p, &inst.Extras)); err != nil {
			return err
		}
		n.InstanceNodes = append(n.InstanceNodes, inst)
		return s.Close(inst)
	}
}

func openInstance(p *parser.Parser, start colladaxml.Event, url *common.Ref, sid, name *string, kind string) (*parser.State, error) {
	s, err := p.Open(start.Name, start)
	if err != nil {
		return nil, err
	}
	*url = common.NewRef(s.Attrs().String("url"))
	*sid = s.Attrs().String("sid")
	*name = s.Attrs().String("name")
	s.RecordRef(url, kind)
	return s, nil
}

func parseSkeleton(p *parser.Parser, start colladaxml.Event) (*common.Ref, error) {
	s, err := p.Open("skeleton", start)
	if err != nil {
		return nil, err
	}
	text, err := s.RequiredText()
	if err != nil {
		return nil, err
	}
	if err := s.Close(nil); err != nil {
		return nil, err
	}
	ref := common.NewRef(text)
	return &ref, nil
}

func parseBindMaterial(p *parser.Parser, start colladaxml.Event) (*BindMaterial, error) {
	s, err := p.Open("bind_material", start)
	if err != nil {
		return nil, err
	}

	bm := &BindMaterial{}
	err = s.Children(
		func(st colladaxml.Event) error {
			param, err := parseParam(p, st)
			if err != nil {
				return err
			}
			bm.Params = append(bm.Params, param)
			return nil
		},
		func(st colladaxml.Event) error {
			ts, err := p.Open("bind_material_technique_common", st)
			if err != nil {
				return err
			}
			err = ts.Children(func(st colladaxml.Event) error {
				im, err := parseInstanceMaterial(p, st)
				if err != nil {
					return err
				}
				bm.Materials = append(bm.Materials, im)
				return nil
			})
			if err != nil {
				return err
			}
			return ts.Close(nil)
		},
		techniqueSlot(p, &bm.Techniques),
		extraSlot(p, &bm.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(bm); err != nil {
		return nil, err
	}
	return bm, nil
}

func parseInstanceMaterial(p *parser.Parser, start colladaxml.Event) (*InstanceMaterial, error) {
	s, err := p.Open("instance_material", start)
	if err != nil {
		return nil, err
	}

	im := &InstanceMaterial{
		Symbol: s.Attrs().String("symbol"),
		Target: common.NewRef(s.Attrs().String("target")),
		SID:    s.Attrs().String("sid"),
		Name:   s.Attrs().String("name"),
	}
	s.RecordRef(&im.Target, "material")

	err = s.Children(
		func(st colladaxml.Event) error {
			b, err := parseBind(p, st)
			if err != nil {
				return err
			}
			im.Binds = append(im.Binds, b)
			return nil
		},
		func(st colladaxml.Event) error {
			bvi, err := parseBindVertexInput(p, st)
			if err != nil {
				return err
			}
			im.BindVertexInputs = append(im.BindVertexInputs, bvi)
			return nil
		},
		extraSlot(p, &im.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(im); err != nil {
		return nil, err
	}
	return im, nil
}

func parseBind(p *parser.Parser, start colladaxml.Event) (*Bind, error) {
	s, err := p.Open("bind", start)
	if err != nil {
		return nil, err
	}
	b := &Bind{
		Semantic: s.Attrs().String("semantic"),
		Target:   common.NewRef(s.Attrs().String("target")),
	}
	s.RecordRef(&b.Target)
	if err := s.Empty(); err != nil {
		return nil, err
	}
	if err := s.Close(b); err != nil {
		return nil, err
	}
	return b, nil
}

func parseBindVertexInput(p *parser.Parser, start colladaxml.Event) (*BindVertexInput, error) {
	s, err := p.Open("bind_vertex_input", start)
	if err != nil {
		return nil, err
	}
	bvi := &BindVertexInput{
		Semantic:      s.Attrs().String("semantic"),
		InputSemantic: s.Attrs().String("input_semantic"),
	}
	if bvi.InputSet, err = s.Attrs().UintPtr("input_set"); err != nil {
		return nil, err
	}
	if err := s.Empty(); err != nil {
		return nil, err
	}
	if err := s.Close(bvi); err != nil {
		return nil, err
	}
	return bvi, nil
}
