// Package v14 parses COLLADA 1.4.0 and 1.4.1 documents into typed trees.
// The 1.4.0 schema is subsumed by 1.4.1, so both versions share one set of
// types and one schema table.
package v14

import (
	"io"
	"iter"
	"strings"

	"github.com/jacoelho/collada/errors"
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

var registry = schema.NewRegistry("1.4.1", defs()...)

func defs() []*schema.Element {
	var all []*schema.Element
	all = append(all, documentDefs()...)
	all = append(all, assetDefs()...)
	all = append(all, extraDefs()...)
	all = append(all, libraryDefs()...)
	all = append(all, geometryDefs()...)
	all = append(all, sourceDefs()...)
	all = append(all, primitiveDefs()...)
	all = append(all, sceneGraphDefs()...)
	all = append(all, materialDefs()...)
	all = append(all, effectDefs()...)
	all = append(all, cameraDefs()...)
	all = append(all, lightDefs()...)
	all = append(all, imageDefs()...)
	all = append(all, animationDefs()...)
	all = append(all, controllerDefs()...)
	all = append(all, physicsDefs()...)
	all = append(all, sceneDefs()...)
	return all
}

func documentDefs() []*schema.Element {
	return []*schema.Element{
		{
			Name:  "COLLADA",
			Attrs: []schema.Attr{{Name: "version", Required: true}, {Name: "xmlns"}, {Name: "base"}},
			Children: []schema.Child{
				{Names: []string{"asset"}, Occurs: schema.Required},
				{Names: []string{
					"library_animations", "library_animation_clips", "library_cameras",
					"library_controllers", "library_effects", "library_force_fields",
					"library_geometries", "library_images", "library_lights",
					"library_materials", "library_nodes", "library_physics_materials",
					"library_physics_models", "library_physics_scenes", "library_visual_scenes",
				}, Occurs: schema.ZeroOrMore},
				{Names: []string{"scene"}, Occurs: schema.Optional},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
	}
}

// Collada is a complete 1.4 document. Libraries keep their own identity and
// metadata; a document may hold any number of libraries of each kind, and
// the per-kind iterators below flatten them.
type Collada struct {
	// Version is "1.4.0" or "1.4.1".
	Version string
	XMLNS   string
	// Base is the base URI for relative URIs in the document.
	Base string

	Asset *Asset

	LibraryAnimations       []*LibraryAnimations
	LibraryAnimationClips   []*LibraryAnimationClips
	LibraryCameras          []*LibraryCameras
	LibraryControllers      []*LibraryControllers
	LibraryEffects          []*LibraryEffects
	LibraryForceFields      []*LibraryForceFields
	LibraryGeometries       []*LibraryGeometries
	LibraryImages           []*LibraryImages
	LibraryLights           []*LibraryLights
	LibraryMaterials        []*LibraryMaterials
	LibraryNodes            []*LibraryNodes
	LibraryPhysicsMaterials []*LibraryPhysicsMaterials
	LibraryPhysicsModels    []*LibraryPhysicsModels
	LibraryPhysicsScenes    []*LibraryPhysicsScenes
	LibraryVisualScenes     []*LibraryVisualScenes

	Scene  *Scene
	Extras []*Extra
}

// Geometries iterates over every geometry in every geometry library.
func (c *Collada) Geometries() iter.Seq[*Geometry] {
	return func(yield func(*Geometry) bool) {
		for _, lib := range c.LibraryGeometries {
			for _, g := range lib.Geometries {
				if !yield(g) {
					return
				}
			}
		}
	}
}

// VisualScenes iterates over every visual scene in every scene library.
func (c *Collada) VisualScenes() iter.Seq[*VisualScene] {
	return func(yield func(*VisualScene) bool) {
		for _, lib := range c.LibraryVisualScenes {
			for _, vs := range lib.VisualScenes {
				if !yield(vs) {
					return
				}
			}
		}
	}
}

// Materials iterates over every material in every material library.
func (c *Collada) Materials() iter.Seq[*Material] {
	return func(yield func(*Material) bool) {
		for _, lib := range c.LibraryMaterials {
			for _, m := range lib.Materials {
				if !yield(m) {
					return
				}
			}
		}
	}
}

// Parse reads a complete 1.4 document. Structural and syntax problems stop
// the parse and are returned as the error; reference resolution problems do
// not and are returned as the list alongside the document.
func Parse(r io.Reader) (*Collada, errors.List, error) {
	xr := colladaxml.NewReader(r)
	start, err := parser.DocumentStart(xr)
	if err != nil {
		return nil, nil, err
	}
	return ParseRoot(xr, start)
}

// ParseString reads a complete 1.4 document from a string.
func ParseString(s string) (*Collada, errors.List, error) {
	return Parse(strings.NewReader(s))
}

// ParseRoot parses a document whose root start event has already been read,
// then resolves all recorded references.
func ParseRoot(r *colladaxml.Reader, start colladaxml.Event) (*Collada, errors.List, error) {
	p := parser.New(r, registry)
	doc, err := parseCollada(p, start)
	if err != nil {
		return nil, nil, err
	}
	return doc, p.Resolve(), nil
}

func parseCollada(p *parser.Parser, start colladaxml.Event) (*Collada, error) {
	s, err := p.Open("COLLADA", start)
	if err != nil {
		return nil, err
	}

	c := &Collada{
		Version: s.Attrs().String("version"),
		XMLNS:   s.Attrs().String("xmlns"),
		Base:    s.Attrs().String("base"),
	}
	if c.Version != "1.4.0" && c.Version != "1.4.1" {
		return nil, &errors.Error{
			Code:    errors.ErrUnsupportedVersion,
			Message: "version is not a supported COLLADA 1.4 release",
			Element: "COLLADA",
			Actual:  c.Version,
			Line:    start.Line,
			Column:  start.Column,
		}
	}

	err = s.Children(
		func(st colladaxml.Event) error {
			a, err := parseAsset(p, st)
			c.Asset = a
			return err
		},
		func(st colladaxml.Event) error {
			return parseLibrary(p, st, c)
		},
		func(st colladaxml.Event) error {
			sc, err := parseScene(p, st)
			c.Scene = sc
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
