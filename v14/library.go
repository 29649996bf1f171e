package v14

import (
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func libraryDefs() []*schema.Element {
	return []*schema.Element{
		libraryDef("library_animations", "animation"),
		libraryDef("library_animation_clips", "animation_clip"),
		libraryDef("library_cameras", "camera"),
		libraryDef("library_controllers", "controller"),
		libraryDef("library_effects", "effect"),
		libraryDef("library_force_fields", "force_field"),
		libraryDef("library_geometries", "geometry"),
		libraryDef("library_images", "image"),
		libraryDef("library_lights", "light"),
		libraryDef("library_materials", "material"),
		libraryDef("library_nodes", "node"),
		libraryDef("library_physics_materials", "physics_material"),
		libraryDef("library_physics_models", "physics_model"),
		libraryDef("library_physics_scenes", "physics_scene"),
		libraryDef("library_visual_scenes", "visual_scene"),
	}
}

// libraryDef builds the shared shape of a library container: optional
// metadata, one or more entries, trailing extras.
func libraryDef(name, entry string) *schema.Element {
	return &schema.Element{
		Name:  name,
		Attrs: []schema.Attr{{Name: "id"}, {Name: "name"}},
		ID:    "id",
		Children: []schema.Child{
			{Names: []string{"asset"}, Occurs: schema.Optional},
			{Names: []string{entry}, Occurs: schema.OneOrMore},
			{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
		},
	}
}

// library is the embedded identity and metadata shared by every library
// container kind.
type library struct {
	ID     string
	Name   string
	Asset  *Asset
	Extras []*Extra
}

type LibraryAnimations struct {
	library
	Animations []*Animation
}

type LibraryAnimationClips struct {
	library
	AnimationClips []*AnimationClip
}

type LibraryCameras struct {
	library
	Cameras []*Camera
}

type LibraryControllers struct {
	library
	Controllers []*Controller
}

type LibraryEffects struct {
	library
	Effects []*Effect
}

type LibraryForceFields struct {
	library
	ForceFields []*ForceField
}

type LibraryGeometries struct {
	library
	Geometries []*Geometry
}

type LibraryImages struct {
	library
	Images []*Image
}

type LibraryLights struct {
	library
	Lights []*Light
}

type LibraryMaterials struct {
	library
	Materials []*Material
}

type LibraryNodes struct {
	library
	Nodes []*Node
}

type LibraryPhysicsMaterials struct {
	library
	PhysicsMaterials []*PhysicsMaterial
}

type LibraryPhysicsModels struct {
	library
	PhysicsModels []*PhysicsModel
}

type LibraryPhysicsScenes struct {
	library
	PhysicsScenes []*PhysicsScene
}

type LibraryVisualScenes struct {
	library
	VisualScenes []*VisualScene
}

// parseLibrary dispatches one library element to its container parser and
// appends the result to the document.
func parseLibrary(p *parser.Parser, start colladaxml.Event, c *Collada) error {
	switch start.Name {
	case "library_animations":
		lib := &LibraryAnimations{}
		c.LibraryAnimations = append(c.LibraryAnimations, lib)
		return parseLibraryInto(p, start, lib, &lib.library, func(st colladaxml.Event) error {
			a, err := parseAnimation(p, st)
			if err != nil {
				return err
			}
			lib.Animations = append(lib.Animations, a)
			return nil
		})
	case "library_animation_clips":
		lib := &LibraryAnimationClips{}
		c.LibraryAnimationClips = append(c.LibraryAnimationClips, lib)
		return parseLibraryInto(p, start, lib, &lib.library, func(st colladaxml.Event) error {
			clip, err := parseAnimationClip(p, st)
			if err != nil {
				return err
			}
			lib.AnimationClips = append(lib.AnimationClips, clip)
			return nil
		})
	case "library_cameras":
		lib := &LibraryCameras{}
		c.LibraryCameras = append(c.LibraryCameras, lib)
		return parseLibraryInto(p, start, lib, &lib.library, func(st colladaxml.Event) error {
			cam, err := parseCamera(p, st)
			if err != nil {
				return err
			}
			lib.Cameras = append(lib.Cameras, cam)
			return nil
		})
	case "library_controllers":
		lib := &LibraryControllers{}
		c.LibraryControllers = append(c.LibraryControllers, lib)
		return parseLibraryInto(p, start, lib, &lib.library, func(st colladaxml.Event) error {
			ctrl, err := parseController(p, st)
			if err != nil {
				return err
			}
			lib.Controllers = append(lib.Controllers, ctrl)
			return nil
		})
	case "library_effects":
		lib := &LibraryEffects{}
		c.LibraryEffects = append(c.LibraryEffects, lib)
		return parseLibraryInto(p, start, lib, &lib.library, func(st colladaxml.Event) error {
			e, err := parseEffect(p, st)
			if err != nil {
				return err
			}
			lib.Effects = append(lib.Effects, e)
			return nil
		})
	case "library_force_fields":
		lib := &LibraryForceFields{}
		c.LibraryForceFields = append(c.LibraryForceFields, lib)
		return parseLibraryInto(p, start, lib, &lib.library, func(st colladaxml.Event) error {
			f, err := parseForceField(p, st)
			if err != nil {
				return err
			}
			lib.ForceFields = append(lib.ForceFields, f)
			return nil
		})
	case "library_geometries":
		lib := &LibraryGeometries{}
		c.LibraryGeometries = append(c.LibraryGeometries, lib)
		return parseLibraryInto(p, start, lib, &lib.library, func(st colladaxml.Event) error {
			g, err := parseGeometry(p, st)
			if err != nil {
				return err
			}
			lib.Geometries = append(lib.Geometries, g)
			return nil
		})
	case "library_images":
		lib := &LibraryImages{}
		c.LibraryImages = append(c.LibraryImages, lib)
		return parseLibraryInto(p, start, lib, &lib.library, func(st colladaxml.Event) error {
			img, err := parseImage(p, st)
			if err != nil {
				return err
			}
			lib.Images = append(lib.Images, img)
			return nil
		})
	case "library_lights":
		lib := &LibraryLights{}
		c.LibraryLights = append(c.LibraryLights, lib)
		return parseLibraryInto(p, start, lib, &lib.library, func(st colladaxml.Event) error {
			l, err := parseLight(p, st)
			if err != nil {
				return err
			}
			lib.Lights = append(lib.Lights, l)
			return nil
		})
	case "library_materials":
		lib := &LibraryMaterials{}
		c.LibraryMaterials = append(c.LibraryMaterials, lib)
		return parseLibraryInto(p, start, lib, &lib.library, func(st colladaxml.Event) error {
			m, err := parseMaterial(p, st)
			if err != nil {
				return err
			}
			lib.Materials = append(lib.Materials, m)
			return nil
		})
	case "library_nodes":
		lib := &LibraryNodes{}
		c.LibraryNodes = append(c.LibraryNodes, lib)
		return parseLibraryInto(p, start, lib, &lib.library, func(st colladaxml.Event) error {
			n, err := parseNode(p, st)
			if err != nil {
				return err
			}
			lib.Nodes = append(lib.Nodes, n)
			return nil
		})
	case "library_physics_materials":
		lib := &LibraryPhysicsMaterials{}
		c.LibraryPhysicsMaterials = append(c.LibraryPhysicsMaterials, lib)
		return parseLibraryInto(p, start, lib, &lib.library, func(st colladaxml.Event) error {
			m, err := parsePhysicsMaterial(p, st)
			if err != nil {
				return err
			}
			lib.PhysicsMaterials = append(lib.PhysicsMaterials, m)
			return nil
		})
	case "library_physics_models":
		lib := &LibraryPhysicsModels{}
		c.LibraryPhysicsModels = append(c.LibraryPhysicsModels, lib)
		return parseLibraryInto(p, start, lib, &lib.library, func(st colladaxml.Event) error {
			m, err := parsePhysicsModel(p, st)
			if err != nil {
				return err
			}
			lib.PhysicsModels = append(lib.PhysicsModels, m)
			return nil
		})
	case "library_physics_scenes":
		lib := &LibraryPhysicsScenes{}
		c.LibraryPhysicsScenes = append(c.LibraryPhysicsScenes, lib)
		return parseLibraryInto(p, start, lib, &lib.library, func(st colladaxml.Event) error {
			sc, err := parsePhysicsScene(p, st)
			if err != nil {
				return err
			}
			lib.PhysicsScenes = append(lib.PhysicsScenes, sc)
			return nil
		})
	case "library_visual_scenes":
		lib := &LibraryVisualScenes{}
		c.LibraryVisualScenes = append(c.LibraryVisualScenes, lib)
		return parseLibraryInto(p, start, lib, &lib.library, func(st colladaxml.Event) error {
			vs, err := parseVisualScene(p, st)
			if err != nil {
				return err
			}
			lib.VisualScenes = append(lib.VisualScenes, vs)
			return nil
		})
	}
	panic("v14: unknown library element <" + start.Name + ">")
}

func parseLibraryInto(p *parser.Parser, start colladaxml.Event, node any, lib *library, entry parser.ChildFunc) error {
	s, err := p.Open(start.Name, start)
	if err != nil {
		return err
	}
	lib.ID = s.Attrs().String("id")
	lib.Name = s.Attrs().String("name")
	err = s.Children(
		assetSlot(p, &lib.Asset),
		entry,
		extraSlot(p, &lib.Extras),
	)
	if err != nil {
		return err
	}
	return s.Close(node)
}
