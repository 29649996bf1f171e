package v15

import (
	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func physicsDefs() []*schema.Element {
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
		shallow("force_field", true),
		shallow("physics_material", false),
		shallow("physics_model", true),
		shallow("physics_scene", true),
	}
}

// physicsEntry is the shared shape of the physics elements: identity,
// metadata, and opaque simulation content.
type physicsEntry struct {
	ID     string
	Name   string
	Asset  *Asset
	Atoms  []*common.Fragment
	Extras []*Extra
}

// ForceField affects physics scenes with field forces such as gravity or
// wind. The field techniques are kept opaque.
type ForceField struct{ physicsEntry }

// PhysicsMaterial describes surface response: friction and restitution,
// kept opaque.
type PhysicsMaterial struct{ physicsEntry }

// PhysicsModel groups rigid bodies and constraints, kept opaque.
type PhysicsModel struct{ physicsEntry }

// PhysicsScene instantiates physics models and force fields for
// simulation, kept opaque.
type PhysicsScene struct{ physicsEntry }

func parsePhysicsEntry(p *parser.Parser, key string, start colladaxml.Event, node any, e *physicsEntry) error {
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

func parseForceField(p *parser.Parser, start colladaxml.Event) (*ForceField, error) {
	f := &ForceField{}
	if err := parsePhysicsEntry(p, "force_field", start, f, &f.physicsEntry); err != nil {
		return nil, err
	}
	return f, nil
}

func parsePhysicsMaterial(p *parser.Parser, start colladaxml.Event) (*PhysicsMaterial, error) {
	m := &PhysicsMaterial{}
	if err := parsePhysicsEntry(p, "physics_material", start, m, &m.physicsEntry); err != nil {
		return nil, err
	}
	return m, nil
}

func parsePhysicsModel(p *parser.Parser, start colladaxml.Event) (*PhysicsModel, error) {
	m := &PhysicsModel{}
	if err := parsePhysicsEntry(p, "physics_model", start, m, &m.physicsEntry); err != nil {
		return nil, err
	}
	return m, nil
}

func parsePhysicsScene(p *parser.Parser, start colladaxml.Event) (*PhysicsScene, error) {
	sc := &PhysicsScene{}
	if err := parsePhysicsEntry(p, "physics_scene", start, sc, &sc.physicsEntry); err != nil {
		return nil, err
	}
	return sc, nil
}
