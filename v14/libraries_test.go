package v14

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/collada/errors"
)

// assetHeader keeps the library tests focused on the library under test.
const assetHeader = `<asset><created>2017-02-01T09:29:54</created><modified>2017-02-01T09:29:54</modified></asset>`

func TestParseMaterialAndEffect(t *testing.T) {
	doc := `<COLLADA version="1.4.1">` + assetHeader + `
	<library_effects>
		<effect id="Material-effect">
			<profile_COMMON>
				<technique sid="common">
					<lambert>
						<diffuse><color sid="diffuse">0.64 0.64 0.64 1</color></diffuse>
					</lambert>
				</technique>
			</profile_COMMON>
		</effect>
	</library_effects>
	<library_materials>
		<material id="Material" name="Material">
			<instance_effect url="#Material-effect">
				<technique_hint platform="PC" ref="common"/>
			</instance_effect>
		</material>
	</library_materials>
</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)

	require.Len(t, c.LibraryEffects, 1)
	effect := c.LibraryEffects[0].Effects[0]
	assert.Equal(t, "Material-effect", effect.ID)

	// profile content is preserved, not interpreted
	require.Len(t, effect.Content, 1)
	profile := effect.Content[0]
	assert.Equal(t, "profile_COMMON", profile.Name)
	tech := profile.Find("technique")
	require.NotNil(t, tech)
	sid, ok := tech.Attr("sid")
	require.True(t, ok)
	assert.Equal(t, "common", sid)

	var materials []*Material
	for m := range c.Materials() {
		materials = append(materials, m)
	}
	require.Len(t, materials, 1)

	ie := materials[0].InstanceEffect
	require.NotNil(t, ie)
	require.True(t, ie.URL.Resolved())
	assert.Same(t, effect, ie.URL.Target)
	require.Len(t, ie.TechniqueHints, 1)
	assert.Equal(t, "PC", ie.TechniqueHints[0].Platform)
}

func TestParseCameraPerspective(t *testing.T) {
	doc := `<COLLADA version="1.4.1">` + assetHeader + `
	<library_cameras>
		<camera id="Camera" name="Camera">
			<optics>
				<technique_common>
					<perspective>
						<xfov sid="xfov">49.13434</xfov>
						<aspect_ratio>1.777778</aspect_ratio>
						<znear sid="znear">0.1</znear>
						<zfar sid="zfar">100</zfar>
					</perspective>
				</technique_common>
			</optics>
		</camera>
	</library_cameras>
</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)

	cam := c.LibraryCameras[0].Cameras[0]
	require.NotNil(t, cam.Optics)
	require.NotNil(t, cam.Optics.Perspective)
	assert.Nil(t, cam.Optics.Orthographic)

	persp := cam.Optics.Perspective
	require.NotNil(t, persp.XFov)
	assert.Equal(t, "xfov", persp.XFov.SID)
	assert.InDelta(t, 49.13434, persp.XFov.Value, 1e-9)
	assert.Nil(t, persp.YFov)
	require.NotNil(t, persp.AspectRatio)
	assert.Empty(t, persp.AspectRatio.SID)
	require.NotNil(t, persp.ZNear)
	assert.InDelta(t, 0.1, persp.ZNear.Value, 1e-9)
}

func TestCameraMissingZNear(t *testing.T) {
	doc := `<COLLADA version="1.4.1">` + assetHeader + `
	<library_cameras>
		<camera id="Camera">
			<optics>
				<technique_common>
					<perspective>
						<xfov>49.13434</xfov>
						<zfar>100</zfar>
					</perspective>
				</technique_common>
			</optics>
		</camera>
	</library_cameras>
</COLLADA>`

	_, _, err := ParseString(doc)
	e := requireCode(t, err, errors.ErrUnexpectedChild)
	assert.Equal(t, "perspective", e.Element)
	assert.Contains(t, e.Expected, "znear")
}

func TestParseLights(t *testing.T) {
	doc := `<COLLADA version="1.4.1">` + assetHeader + `
	<library_lights>
		<light id="Sun">
			<technique_common>
				<directional>
					<color sid="color">1 1 1</color>
				</directional>
			</technique_common>
		</light>
		<light id="Lamp">
			<technique_common>
				<point>
					<color sid="color">1 0.9 0.8</color>
					<quadratic_attenuation sid="quad">0.00111109</quadratic_attenuation>
				</point>
			</technique_common>
		</light>
		<light id="Spot">
			<technique_common>
				<spot>
					<color>1 1 1</color>
					<falloff_angle sid="angle">45</falloff_angle>
				</spot>
			</technique_common>
		</light>
	</library_lights>
</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)

	lights := c.LibraryLights[0].Lights
	require.Len(t, lights, 3)

	sun := lights[0]
	require.NotNil(t, sun.Directional)
	assert.Equal(t, []float64{1, 1, 1}, sun.Directional.Color.RGB)

	lamp := lights[1]
	require.NotNil(t, lamp.Point)
	// absent attenuation children keep their defaults
	assert.InDelta(t, 1.0, lamp.Point.ConstantAttenuation.Value, 1e-9)
	assert.InDelta(t, 0.0, lamp.Point.LinearAttenuation.Value, 1e-9)
	assert.InDelta(t, 0.00111109, lamp.Point.QuadraticAttenuation.Value, 1e-9)

	spot := lights[2]
	require.NotNil(t, spot.Spot)
	assert.InDelta(t, 45.0, spot.Spot.FalloffAngle.Value, 1e-9)
	assert.Equal(t, "angle", spot.Spot.FalloffAngle.SID)
}

func TestSpotLightDefaults(t *testing.T) {
	doc := `<COLLADA version="1.4.1">` + assetHeader + `
	<library_lights>
		<light id="Spot">
			<technique_common>
				<spot><color>1 1 1</color></spot>
			</technique_common>
		</light>
	</library_lights>
</COLLADA>`

	c, _ := parseDoc(t, doc)

	spot := c.LibraryLights[0].Lights[0].Spot
	require.NotNil(t, spot)
	assert.InDelta(t, 180.0, spot.FalloffAngle.Value, 1e-9)
	assert.InDelta(t, 0.0, spot.FalloffExponent.Value, 1e-9)
	assert.InDelta(t, 1.0, spot.ConstantAttenuation.Value, 1e-9)
}

func TestParseSkinController(t *testing.T) {
	doc := `<COLLADA version="1.4.1">` + assetHeader + `
	<library_geometries>
		<geometry id="Body-mesh"><mesh>
			<source id="Body-positions"><float_array id="Body-positions-array" count="6">0 0 0 0 0 1</float_array></source>
			<vertices id="Body-vertices"><input semantic="POSITION" source="#Body-positions"/></vertices>
		</mesh></geometry>
	</library_geometries>
	<library_controllers>
		<controller id="Body-skin">
			<skin source="#Body-mesh">
				<bind_shape_matrix>1 0 0 0 0 1 0 0 0 0 1 0 0 0 0 1</bind_shape_matrix>
				<source id="Body-skin-joints">
					<Name_array id="Body-skin-joints-array" count="2">Root Arm</Name_array>
				</source>
				<source id="Body-skin-weights">
					<float_array id="Body-skin-weights-array" count="2">1 0.5</float_array>
				</source>
				<joints>
					<input semantic="JOINT" source="#Body-skin-joints"/>
				</joints>
				<vertex_weights count="2">
					<input semantic="JOINT" source="#Body-skin-joints" offset="0"/>
					<input semantic="WEIGHT" source="#Body-skin-weights" offset="1"/>
					<vcount>1 1</vcount>
					<v>0 0 1 1</v>
				</vertex_weights>
			</skin>
		</controller>
	</library_controllers>
</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)

	ctrl := c.LibraryControllers[0].Controllers[0]
	require.NotNil(t, ctrl.Skin)
	assert.Nil(t, ctrl.Morph)

	skin := ctrl.Skin
	require.True(t, skin.Source.Resolved())
	assert.Equal(t, "geometry", skin.Source.Kind)
	assert.Len(t, skin.BindShapeMatrix, 16)

	require.Len(t, skin.Sources, 2)
	require.NotNil(t, skin.Sources[0].NameArray)
	assert.Equal(t, []string{"Root", "Arm"}, skin.Sources[0].NameArray.Data)

	require.NotNil(t, skin.VertexWeights)
	assert.Equal(t, 2, skin.VertexWeights.Count)
	assert.Equal(t, []int{1, 1}, skin.VertexWeights.VCount)
	assert.Equal(t, []int{0, 0, 1, 1}, skin.VertexWeights.V)
	require.Len(t, skin.VertexWeights.Inputs, 2)
	assert.Equal(t, 1, skin.VertexWeights.Inputs[1].Offset)
}

func TestParseMorphController(t *testing.T) {
	doc := `<COLLADA version="1.4.1">` + assetHeader + `
	<library_geometries>
		<geometry id="Base-mesh"><mesh>
			<source id="Base-positions"><float_array id="Base-positions-array" count="3">0 0 0</float_array></source>
			<vertices id="Base-vertices"><input semantic="POSITION" source="#Base-positions"/></vertices>
		</mesh></geometry>
	</library_geometries>
	<library_controllers>
		<controller id="Base-morph">
			<morph source="#Base-mesh" method="RELATIVE">
				<source id="Base-morph-targets">
					<IDREF_array id="Base-morph-targets-array" count="1">Base-mesh</IDREF_array>
				</source>
				<source id="Base-morph-weights">
					<float_array id="Base-morph-weights-array" count="1">0</float_array>
				</source>
				<targets>
					<input semantic="MORPH_TARGET" source="#Base-morph-targets"/>
					<input semantic="MORPH_WEIGHT" source="#Base-morph-weights"/>
				</targets>
			</morph>
		</controller>
	</library_controllers>
</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)

	ctrl := c.LibraryControllers[0].Controllers[0]
	require.NotNil(t, ctrl.Morph)
	assert.Equal(t, "RELATIVE", ctrl.Morph.Method)
	require.True(t, ctrl.Morph.Source.Resolved())
	require.NotNil(t, ctrl.Morph.Targets)
	assert.Len(t, ctrl.Morph.Targets.Inputs, 2)
}

func TestMorphMethodDefault(t *testing.T) {
	doc := `<COLLADA version="1.4.1">` + assetHeader + `
	<library_controllers>
		<controller id="Base-morph">
			<morph source="other.dae#Base-mesh">
				<source id="Base-morph-targets">
					<IDREF_array id="Base-morph-targets-array" count="1">Base-mesh</IDREF_array>
				</source>
				<targets>
					<input semantic="MORPH_TARGET" source="#Base-morph-targets"/>
				</targets>
			</morph>
		</controller>
	</library_controllers>
</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)

	morph := c.LibraryControllers[0].Controllers[0].Morph
	assert.Equal(t, "NORMALIZED", morph.Method)
	assert.True(t, morph.Source.External())
}

func TestParseImages(t *testing.T) {
	doc := `<COLLADA version="1.4.1">` + assetHeader + `
	<library_images>
		<image id="diffuse-tex" name="diffuse" width="1024" height="1024">
			<init_from>textures/diffuse.png</init_from>
		</image>
		<image id="inline-tex" format="R8G8B8">
			<data>8BADF00D</data>
		</image>
	</library_images>
</COLLADA>`

	c, _ := parseDoc(t, doc)

	images := c.LibraryImages[0].Images
	require.Len(t, images, 2)

	assert.Equal(t, "textures/diffuse.png", images[0].InitFrom)
	assert.Equal(t, 1024, images[0].Width)
	assert.Equal(t, 1, images[0].Depth)

	assert.Equal(t, "8BADF00D", images[1].Data)
	assert.Equal(t, "R8G8B8", images[1].Format)
}

func TestNodeSIDsScopeToVisualScene(t *testing.T) {
	// The same sid may appear under sibling nodes; each node opens its own
	// scope.
	doc := `<COLLADA version="1.4.1">` + assetHeader + `
	<library_visual_scenes>
		<visual_scene id="Scene">
			<node id="A"><translate sid="pos">0 0 0</translate></node>
			<node id="B"><translate sid="pos">1 1 1</translate></node>
		</visual_scene>
	</library_visual_scenes>
</COLLADA>`

	_, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)
}

func TestDuplicateSIDInNode(t *testing.T) {
	doc := `<COLLADA version="1.4.1">` + assetHeader + `
	<library_visual_scenes>
		<visual_scene id="Scene">
			<node id="A">
				<translate sid="pos">0 0 0</translate>
				<translate sid="pos">1 1 1</translate>
			</node>
		</visual_scene>
	</library_visual_scenes>
</COLLADA>`

	_, _, err := ParseString(doc)
	e := requireCode(t, err, errors.ErrDuplicateSID)
	assert.Contains(t, e.Message, `"pos"`)
}

func TestInstanceControllerSkeleton(t *testing.T) {
	doc := `<COLLADA version="1.4.1">` + assetHeader + `
	<library_visual_scenes>
		<visual_scene id="Scene">
			<node id="Armature">
				<node id="Root" sid="Root" type="JOINT"/>
			</node>
			<node id="Body">
				<instance_controller url="other.dae#Body-skin">
					<skeleton>#Root</skeleton>
				</instance_controller>
			</node>
		</visual_scene>
	</library_visual_scenes>
</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)

	body := c.LibraryVisualScenes[0].VisualScenes[0].Nodes[1]
	require.Len(t, body.InstanceControllers, 1)
	ic := body.InstanceControllers[0]
	require.Len(t, ic.Skeletons, 1)
	require.True(t, ic.Skeletons[0].Resolved())

	root := c.LibraryVisualScenes[0].VisualScenes[0].Nodes[0].Nodes[0]
	assert.Same(t, root, ic.Skeletons[0].Target)
	assert.Equal(t, "JOINT", root.Type)
}

func TestBindMaterial(t *testing.T) {
	doc := `<COLLADA version="1.4.1">` + assetHeader + `
	<library_materials>
		<material id="Material">
			<instance_effect url="other.dae#Material-effect"/>
		</material>
	</library_materials>
	<library_geometries>
		<geometry id="Cube-mesh"><mesh>
			<source id="Cube-positions"><float_array id="Cube-positions-array" count="3">0 0 0</float_array></source>
			<vertices id="Cube-vertices"><input semantic="POSITION" source="#Cube-positions"/></vertices>
		</mesh></geometry>
	</library_geometries>
	<library_visual_scenes>
		<visual_scene id="Scene">
			<node id="Cube">
				<instance_geometry url="#Cube-mesh">
					<bind_material>
						<technique_common>
							<instance_material symbol="Material-symbol" target="#Material"/>
						</technique_common>
					</bind_material>
				</instance_geometry>
			</node>
		</visual_scene>
	</library_visual_scenes>
</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)

	ig := c.LibraryVisualScenes[0].VisualScenes[0].Nodes[0].InstanceGeometries[0]
	require.NotNil(t, ig.BindMaterial)
	require.Len(t, ig.BindMaterial.Materials, 1)

	im := ig.BindMaterial.Materials[0]
	assert.Equal(t, "Material-symbol", im.Symbol)
	require.True(t, im.Target.Resolved())

	var material *Material
	for m := range c.Materials() {
		material = m
	}
	assert.Same(t, material, im.Target.Target)
}

func TestPhysicsLibrariesKeptOpaque(t *testing.T) {
	doc := `<COLLADA version="1.4.1">` + assetHeader + `
	<library_physics_scenes>
		<physics_scene id="PhysicsScene">
			<technique_common>
				<gravity>0 0 -9.81</gravity>
			</technique_common>
		</physics_scene>
	</library_physics_scenes>
</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)

	sc := c.LibraryPhysicsScenes[0].PhysicsScenes[0]
	assert.Equal(t, "PhysicsScene", sc.ID)
	require.Len(t, sc.Atoms, 1)
	assert.Equal(t, "technique_common", sc.Atoms[0].Name)
	gravity := sc.Atoms[0].Find("gravity")
	require.NotNil(t, gravity)
	assert.Equal(t, "0 0 -9.81", gravity.Text)
}
