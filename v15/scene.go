package v15

import (
	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func sceneDefs() []*schema.Element {
	return []*schema.Element{
		{
			Name: "scene",
			Children: []schema.Child{
				{Names: []string{"instance_physics_scene"}, Occurs: schema.ZeroOrMore},
				{Names: []string{"instance_visual_scene"}, Occurs: schema.Optional},
				{Names: []string{"instance_kinematics_scene"}, Occurs: schema.Optional},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name:  "instance_visual_scene",
			Attrs: []schema.Attr{{Name: "url", Required: true}, {Name: "sid"}, {Name: "name"}},
			SID:   "sid",
			Children: []schema.Child{
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name:  "instance_kinematics_scene",
			Attrs: []schema.Attr{{Name: "url", Required: true}, {Name: "sid"}, {Name: "name"}},
			SID:   "sid",
			Children: []schema.Child{
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name:  "instance_physics_scene",
			Attrs: []schema.Attr{{Name: "url", Required: true}, {Name: "sid"}, {Name: "name"}},
			SID:   "sid",
			Children: []schema.Child{
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
	}
}

// Scene names the hierarchies the document presents: at most one visual
// scene, at most one kinematics scene, and any number of physics scenes.
type Scene struct {
	InstancePhysicsScenes   []*InstanceScene
	InstanceVisualScene     *InstanceScene
	InstanceKinematicsScene *InstanceScene
	Extras                  []*Extra
}

// InstanceScene instantiates a visual, physics, or kinematics scene by
// reference.
type InstanceScene struct {
	URL  common.Ref
	SID  string
	Name string

	Extras []*Extra
}

func parseScene(p *parser.Parser, start colladaxml.Event) (*Scene, error) {
	s, err := p.Open("scene", start)
	if err != nil {
		return nil, err
	}

	sc := &Scene{}
	err = s.Children(
		func(st colladaxml.Event) error {
			inst, err := parseInstanceScene(p, "instance_physics_scene", st, "physics_scene")
			if err != nil {
				return err
			}
			sc.InstancePhysicsScenes = append(sc.InstancePhysicsScenes, inst)
			return nil
		},
		func(st colladaxml.Event) error {
			inst, err := parseInstanceScene(p, "instance_visual_scene", st, "visual_scene")
			sc.InstanceVisualScene = inst
			return err
		},
		func(st colladaxml.Event) error {
			inst, err := parseInstanceScene(p, "instance_kinematics_scene", st, "kinematics_scene")
			sc.InstanceKinematicsScene = inst
			return err
		},
		extraSlot(p, &sc.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func parseInstanceScene(p *parser.Parser, key string, start colladaxml.Event, kind string) (*InstanceScene, error) {
	s, err := p.Open(key, start)
	if err != nil {
		return nil, err
	}

	inst := &InstanceScene{
		URL:  common.NewRef(s.Attrs().String("url")),
		SID:  s.Attrs().String("sid"),
		Name: s.Attrs().String("name"),
	}
	s.RecordRef(&inst.URL, kind)

	err = s.Children(extraSlot(p, &inst.Extras))
	if err != nil {
		return nil, err
	}
	if err := s.Close(inst); err != nil {
		return nil, err
	}
	return inst, nil
}
