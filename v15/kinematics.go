package v15

import (
	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func kinematicsDefs() []*schema.Element {
	shallow := func(name string, scoped bool) *schema.Element {
		return &schema.Element{
			Name:       name,
			Attrs:      []schema.Attr{{Name: "id"}, {Name: "name"}},
			ID:         "id",
			Scoped:     scoped,
			Extensible: true,
			Children: []schema.Child{
				{Names: []string{"asset"}, Occurs: schema.Optional},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		}
	}

	return []*schema.Element{
		shallow("articulated_system", true),
		shallow("formula", false),
		shallow("joint", true),
		shallow("kinematics_model", true),
		shallow("kinematics_scene", true),
	}
}

// kinematicsEntry is the shared shape of the kinematics elements: identity,
// metadata, and opaque kinematics content.
type kinematicsEntry struct {
	ID     string
	Name   string
	Asset  *Asset
	Atoms  []*common.Fragment
	Extras []*Extra
}

// ArticulatedSystem models a kinematics system with motion or articulation
// constraints, kept opaque.
type ArticulatedSystem struct{ kinematicsEntry }

// Formula expresses a relation between kinematics parameters, kept opaque.
type Formula struct{ kinematicsEntry }

// Joint connects two links with one or more degrees of freedom, kept opaque.
type Joint struct{ kinematicsEntry }

// KinematicsModel describes a chain of links and joints, kept opaque.
type KinematicsModel struct{ kinematicsEntry }

// KinematicsScene instantiates kinematics models and articulated systems,
// kept opaque.
type KinematicsScene struct{ kinematicsEntry }

func parseKinematicsEntry(p *parser.Parser, key string, start colladaxml.Event, node any, e *kinematicsEntry) error {
	s, err := p.Open(key, start)
	if err != nil {
		return err
	}
	e.ID = s.Attrs().String("id")
	e.Name = s.Attrs().String("name")
	err = s.Children(
		assetSlot(p, &e.Asset),
		extraSlot(p, &e.Extras),
	)
	if err != nil {
		return err
	}
	e.Atoms = s.Extensions()
	return s.Close(node)
}

func parseArticulatedSystem(p *parser.Parser, start colladaxml.Event) (*ArticulatedSystem, error) {
	a := &ArticulatedSystem{}
	if err := parseKinematicsEntry(p, "articulated_system", start, a, &a.kinematicsEntry); err != nil {
		return nil, err
	}
	return a, nil
}

func parseFormula(p *parser.Parser, start colladaxml.Event) (*Formula, error) {
	f := &Formula{}
	if err := parseKinematicsEntry(p, "formula", start, f, &f.kinematicsEntry); err != nil {
		return nil, err
	}
	return f, nil
}

func parseJoint(p *parser.Parser, start colladaxml.Event) (*Joint, error) {
	j := &Joint{}
	if err := parseKinematicsEntry(p, "joint", start, j, &j.kinematicsEntry); err != nil {
		return nil, err
	}
	return j, nil
}

func parseKinematicsModel(p *parser.Parser, start colladaxml.Event) (*KinematicsModel, error) {
	m := &KinematicsModel{}
	if err := parseKinematicsEntry(p, "kinematics_model", start, m, &m.kinematicsEntry); err != nil {
		return nil, err
	}
	return m, nil
}

func parseKinematicsScene(p *parser.Parser, start colladaxml.Event) (*KinematicsScene, error) {
	sc := &KinematicsScene{}
	if err := parseKinematicsEntry(p, "kinematics_scene", start, sc, &sc.kinematicsEntry); err != nil {
		return nil, err
	}
	return sc, nil
}
