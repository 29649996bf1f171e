package v14

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/errors"
)

func parseDoc(t *testing.T, doc string) (*Collada, errors.List) {
	t.Helper()
	c, unresolved, err := ParseString(doc)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c, unresolved
}

func requireCode(t *testing.T, err error, code errors.ErrorCode) *errors.Error {
	t.Helper()
	require.Error(t, err)
	e, ok := errors.AsError(err)
	require.True(t, ok, "error %v is not a collada error", err)
	require.Equal(t, code, e.Code)
	return e
}

func mustDateTime(t *testing.T, s string) common.DateTime {
	t.Helper()
	dt, err := common.ParseDateTime(s)
	require.NoError(t, err)
	return dt
}

func TestParseMinimalDocument(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
	<COLLADA xmlns="http://www.collada.org/2005/11/COLLADASchema" version="1.4.1">
		<asset>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
	</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)

	assert.Equal(t, "1.4.1", c.Version)
	assert.Equal(t, "http://www.collada.org/2005/11/COLLADASchema", c.XMLNS)
	assert.Empty(t, c.Base)

	require.NotNil(t, c.Asset)
	assert.True(t, c.Asset.Created.Equal(mustDateTime(t, "2017-02-07T20:44:30Z")))
	assert.Equal(t, common.DefaultUnit(), c.Asset.Unit)
	assert.Equal(t, common.UpY, c.Asset.UpAxis)

	assert.Empty(t, c.LibraryGeometries)
	assert.Nil(t, c.Scene)
}

func TestParseAssetFull(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
	<COLLADA version="1.4.1">
		<asset>
			<contributor />
			<contributor />
			<contributor />
			<created>2017-02-07T20:44:30Z</created>
			<keywords>foo bar baz</keywords>
			<modified>2017-02-07T20:44:30Z</modified>
			<revision>7</revision>
			<subject>A thing</subject>
			<title>Model of a thing</title>
			<unit meter="7" name="septimeter" />
			<up_axis>Z_UP</up_axis>
		</asset>
	</COLLADA>`

	c, _ := parseDoc(t, doc)

	want := &Asset{
		Contributors: []*Contributor{{}, {}, {}},
		Created:      mustDateTime(t, "2017-02-07T20:44:30Z"),
		Keywords:     "foo bar baz",
		Modified:     mustDateTime(t, "2017-02-07T20:44:30Z"),
		Revision:     "7",
		Subject:      "A thing",
		Title:        "Model of a thing",
		Unit:         common.Unit{Meter: 7.0, Name: "septimeter"},
		UpAxis:       common.UpZ,
	}
	if diff := cmp.Diff(want, c.Asset); diff != "" {
		t.Errorf("asset mismatch (-want +got):\n%s", diff)
	}
}

func TestParseContributor(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
	<COLLADA version="1.4.1">
		<asset>
			<contributor>
				<author>David LeGare</author>
				<authoring_tool>Atom</authoring_tool>
				<comments>This is a sample document.</comments>
				<copyright>David LeGare, free for public use</copyright>
				<source_data>C:/models/tank.s3d</source_data>
			</contributor>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
	</COLLADA>`

	c, _ := parseDoc(t, doc)

	want := []*Contributor{{
		Author:        "David LeGare",
		AuthoringTool: "Atom",
		Comments:      "This is a sample document.",
		Copyright:     "David LeGare, free for public use",
		SourceData:    "C:/models/tank.s3d",
	}}
	if diff := cmp.Diff(want, c.Asset.Contributors); diff != "" {
		t.Errorf("contributors mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNaiveTimestamp(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
	<COLLADA version="1.4.1">
		<asset>
			<created>2017-02-01T09:29:54</created>
			<modified>2017-02-01T09:29:54</modified>
			<unit name="meter" meter="1"/>
			<up_axis>Z_UP</up_axis>
		</asset>
	</COLLADA>`

	c, _ := parseDoc(t, doc)
	assert.True(t, c.Asset.Created.Naive)
	assert.Equal(t, "2017-02-01T09:29:54", c.Asset.Created.String())
	assert.Equal(t, common.UpZ, c.Asset.UpAxis)
}

func TestMissingAsset(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
	<COLLADA version="1.4.1">
	</COLLADA>`

	_, _, err := ParseString(doc)
	e := requireCode(t, err, errors.ErrMissingChild)
	assert.Equal(t, "COLLADA", e.Element)
	assert.Contains(t, e.Expected, "asset")
}

func TestAssetRejectsCoverage(t *testing.T) {
	// coverage is a 1.5 element; the 1.4 vocabulary does not allow it.
	doc := `<?xml version="1.0" encoding="utf-8"?>
	<COLLADA version="1.4.1">
		<asset>
			<coverage>
				<geographic_location>
					<longitude>-105.2830</longitude>
					<latitude>40.0170</latitude>
					<altitude mode="relativeToGround">0</altitude>
				</geographic_location>
			</coverage>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
	</COLLADA>`

	_, _, err := ParseString(doc)
	e := requireCode(t, err, errors.ErrUnexpectedChild)
	assert.Equal(t, "asset", e.Element)
	assert.Equal(t, "coverage", e.Actual)
}

func TestContributorRejectsAuthorEmail(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
	<COLLADA version="1.4.1">
		<asset>
			<contributor>
				<author>David LeGare</author>
				<author_email>dl@email.com</author_email>
			</contributor>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
	</COLLADA>`

	_, _, err := ParseString(doc)
	e := requireCode(t, err, errors.ErrUnexpectedChild)
	assert.Equal(t, "contributor", e.Element)
	assert.Equal(t, "author_email", e.Actual)
}

func TestContributorOutOfOrder(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
	<COLLADA version="1.4.1">
		<asset>
			<contributor>
				<author>David LeGare</author>
				<comments>This is a sample document.</comments>
				<authoring_tool>Atom</authoring_tool>
			</contributor>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
	</COLLADA>`

	_, _, err := ParseString(doc)
	e := requireCode(t, err, errors.ErrUnexpectedChild)
	assert.Equal(t, "contributor", e.Element)
	assert.Equal(t, "authoring_tool", e.Actual)
}

func TestContributorUnknownAttribute(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
	<COLLADA version="1.4.1">
		<asset>
			<contributor foo="bar" />
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
	</COLLADA>`

	_, _, err := ParseString(doc)
	e := requireCode(t, err, errors.ErrUnexpectedAttribute)
	assert.Equal(t, "contributor", e.Element)
	assert.Equal(t, "foo", e.Actual)
}

func TestUnsupportedVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{name: "1.5 document", version: "1.5.0"},
		{name: "unknown version", version: "9.9.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<COLLADA version="` + tt.version + `"><asset>
				<created>2017-02-07T20:44:30Z</created>
				<modified>2017-02-07T20:44:30Z</modified>
			</asset></COLLADA>`

			_, _, err := ParseString(doc)
			e := requireCode(t, err, errors.ErrUnsupportedVersion)
			assert.Equal(t, tt.version, e.Actual)
		})
	}
}

func TestDoctypeAndWhitespace(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
	<!DOCTYPE note SYSTEM "Note.dtd">

	<COLLADA version="1.4.1">

		<asset        >
			<created>    2017-02-07T20:44:30Z        </created       >
			<modified    > 2017-02-07T20:44:30Z             </modified      >
		</asset>

	</COLLADA      >
	`

	c, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)
	assert.True(t, c.Asset.Created.Equal(mustDateTime(t, "2017-02-07T20:44:30Z")))
}

// cubeDocument is a small but complete mesh document: one geometry holding a
// quad pair, instantiated by one scene node.
const cubeDocument = `<?xml version="1.0" encoding="utf-8"?>
<COLLADA xmlns="http://www.collada.org/2005/11/COLLADASchema" version="1.4.1">
	<asset>
		<created>2017-02-01T09:29:54</created>
		<modified>2017-02-01T09:29:54</modified>
		<up_axis>Z_UP</up_axis>
	</asset>
	<library_geometries>
		<geometry id="Cube-mesh" name="Cube">
			<mesh>
				<source id="Cube-mesh-positions">
					<float_array id="Cube-mesh-positions-array" count="12">
						1 1 -1 1 -1 -1 -1 -1 -1 -1 1 -1
					</float_array>
					<technique_common>
						<accessor source="#Cube-mesh-positions-array" count="4" stride="3">
							<param name="X" type="float"/>
							<param name="Y" type="float"/>
							<param name="Z" type="float"/>
						</accessor>
					</technique_common>
				</source>
				<vertices id="Cube-mesh-vertices">
					<input semantic="POSITION" source="#Cube-mesh-positions"/>
				</vertices>
				<polylist material="Material-symbol" count="2">
					<input semantic="VERTEX" source="#Cube-mesh-vertices" offset="0"/>
					<vcount>3 3</vcount>
					<p>0 1 2 0 2 3</p>
				</polylist>
			</mesh>
		</geometry>
	</library_geometries>
	<library_visual_scenes>
		<visual_scene id="Scene" name="Scene">
			<node id="Cube" name="Cube" type="NODE">
				<matrix sid="transform">1 0 0 0 0 1 0 0 0 0 1 0 0 0 0 1</matrix>
				<instance_geometry url="#Cube-mesh"/>
			</node>
		</visual_scene>
	</library_visual_scenes>
	<scene>
		<instance_visual_scene url="#Scene"/>
	</scene>
</COLLADA>`

func TestParseCubeDocument(t *testing.T) {
	c, unresolved := parseDoc(t, cubeDocument)
	assert.Empty(t, unresolved)

	require.Len(t, c.LibraryGeometries, 1)
	lib := c.LibraryGeometries[0]
	require.Len(t, lib.Geometries, 1)

	g := lib.Geometries[0]
	assert.Equal(t, "Cube-mesh", g.ID)
	assert.Equal(t, "Cube", g.Name)
	require.NotNil(t, g.Mesh)
	assert.Nil(t, g.ConvexMesh)
	assert.Nil(t, g.Spline)

	require.Len(t, g.Mesh.Sources, 1)
	src := g.Mesh.Sources[0]
	require.NotNil(t, src.FloatArray)
	assert.Equal(t, 12, src.FloatArray.Count)
	assert.Len(t, src.FloatArray.Data, 12)
	assert.Equal(t, []float64{1, 1, -1}, src.FloatArray.Data[:3])

	require.NotNil(t, g.Mesh.Vertices)
	assert.Equal(t, "Cube-mesh-vertices", g.Mesh.Vertices.ID)
	require.Len(t, g.Mesh.Vertices.Inputs, 1)
	assert.Equal(t, "POSITION", g.Mesh.Vertices.Inputs[0].Semantic)

	require.Len(t, c.LibraryVisualScenes, 1)
	require.Len(t, c.LibraryVisualScenes[0].VisualScenes, 1)
	scene := c.LibraryVisualScenes[0].VisualScenes[0]
	require.Len(t, scene.Nodes, 1)

	node := scene.Nodes[0]
	assert.Equal(t, "Cube", node.ID)
	assert.Equal(t, "NODE", node.Type)
	require.Len(t, node.Transforms, 1)
	m, ok := node.Transforms[0].(*Matrix)
	require.True(t, ok)
	assert.Equal(t, "transform", m.TransformSID())

	require.NotNil(t, c.Scene)
	require.NotNil(t, c.Scene.InstanceVisualScene)
}

func TestArrayDefaults(t *testing.T) {
	// The document writes neither digits nor magnitude on the float_array
	// and no offset on the accessor; the schema defaults apply.
	c, _ := parseDoc(t, cubeDocument)

	src := c.LibraryGeometries[0].Geometries[0].Mesh.Sources[0]
	assert.Equal(t, 6, src.FloatArray.Digits)
	assert.Equal(t, 38, src.FloatArray.Magnitude)

	require.NotNil(t, src.Accessor)
	assert.Equal(t, 0, src.Accessor.Offset)
	assert.Equal(t, 3, src.Accessor.Stride)
	assert.Equal(t, 4, src.Accessor.Count)
	require.Len(t, src.Accessor.Params, 3)
	assert.Equal(t, "X", src.Accessor.Params[0].Name)
}

func TestCubeReferencesResolved(t *testing.T) {
	c, unresolved := parseDoc(t, cubeDocument)
	require.Empty(t, unresolved)

	g := c.LibraryGeometries[0].Geometries[0]
	src := g.Mesh.Sources[0]

	// accessor -> float_array
	require.True(t, src.Accessor.Source.Resolved())
	assert.Same(t, src.FloatArray, src.Accessor.Source.Target)
	assert.Equal(t, "float_array", src.Accessor.Source.Kind)

	// vertices input -> source
	input := g.Mesh.Vertices.Inputs[0]
	require.True(t, input.Source.Resolved())
	assert.Same(t, src, input.Source.Target)

	// polylist input -> vertices
	polylists := g.Mesh.Polylists()
	require.Len(t, polylists, 1)
	vin := polylists[0].Inputs[0]
	require.True(t, vin.Source.Resolved())
	assert.Same(t, g.Mesh.Vertices, vin.Source.Target)

	// node instance -> geometry
	node := c.LibraryVisualScenes[0].VisualScenes[0].Nodes[0]
	require.Len(t, node.InstanceGeometries, 1)
	ig := node.InstanceGeometries[0]
	require.True(t, ig.URL.Resolved())
	assert.Same(t, g, ig.URL.Target)
	assert.Equal(t, "geometry", ig.URL.Kind)

	// scene -> visual scene
	ivs := c.Scene.InstanceVisualScene
	require.True(t, ivs.URL.Resolved())
	assert.Same(t, c.LibraryVisualScenes[0].VisualScenes[0], ivs.URL.Target)
}

func TestPolylistIteration(t *testing.T) {
	c, _ := parseDoc(t, cubeDocument)

	pl := c.LibraryGeometries[0].Geometries[0].Mesh.Polylists()[0]
	assert.Equal(t, 2, pl.Count)
	assert.Equal(t, "Material-symbol", pl.Material)

	var polygons [][]int
	for polygon := range pl.Polygons() {
		assert.Equal(t, 3, polygon.Len())
		var verts []int
		for v := range polygon.Vertices() {
			require.Len(t, v, 1)
			verts = append(verts, v[0])
		}
		polygons = append(polygons, verts)
	}
	want := [][]int{{0, 1, 2}, {0, 2, 3}}
	if diff := cmp.Diff(want, polygons); diff != "" {
		t.Errorf("polygon indices mismatch (-want +got):\n%s", diff)
	}
}

func TestPolylistSharedOffsets(t *testing.T) {
	doc := `<COLLADA version="1.4.1">
	<asset><created>2017-02-01T09:29:54</created><modified>2017-02-01T09:29:54</modified></asset>
	<library_geometries>
		<geometry id="quad">
			<mesh>
				<source id="quad-positions">
					<float_array id="quad-positions-array" count="12">0 0 0 1 0 0 1 1 0 0 1 0</float_array>
				</source>
				<source id="quad-normals">
					<float_array id="quad-normals-array" count="3">0 0 1</float_array>
				</source>
				<vertices id="quad-vertices">
					<input semantic="POSITION" source="#quad-positions"/>
				</vertices>
				<polylist count="1">
					<input semantic="VERTEX" source="#quad-vertices" offset="0"/>
					<input semantic="NORMAL" source="#quad-normals" offset="1"/>
					<vcount>4</vcount>
					<p>0 0 1 0 2 0 3 0</p>
				</polylist>
			</mesh>
		</geometry>
	</library_geometries>
</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)

	pl := c.LibraryGeometries[0].Geometries[0].Mesh.Polylists()[0]
	require.Len(t, pl.Inputs, 2)
	assert.Equal(t, 0, pl.Inputs[0].Offset)
	assert.Equal(t, 1, pl.Inputs[1].Offset)

	for polygon := range pl.Polygons() {
		assert.Equal(t, 4, polygon.Len())
		for v := range polygon.Vertices() {
			// one index per input offset
			require.Len(t, v, 2)
			assert.Equal(t, 0, v[1])
		}
	}
}

func TestUnresolvedReference(t *testing.T) {
	doc := `<COLLADA version="1.4.1">
	<asset><created>2017-02-01T09:29:54</created><modified>2017-02-01T09:29:54</modified></asset>
	<library_visual_scenes>
		<visual_scene id="Scene">
			<node id="Cube">
				<instance_geometry url="#missing-mesh"/>
			</node>
		</visual_scene>
	</library_visual_scenes>
</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	require.Len(t, unresolved, 1)
	assert.Equal(t, errors.ErrUnresolvedReference, unresolved[0].Code)
	assert.Contains(t, unresolved[0].Message, "#missing-mesh")

	node := c.LibraryVisualScenes[0].VisualScenes[0].Nodes[0]
	ig := node.InstanceGeometries[0]
	assert.False(t, ig.URL.Resolved())
	assert.Equal(t, "#missing-mesh", ig.URL.URI)
}

func TestExternalReferenceSkipped(t *testing.T) {
	doc := `<COLLADA version="1.4.1">
	<asset><created>2017-02-01T09:29:54</created><modified>2017-02-01T09:29:54</modified></asset>
	<library_visual_scenes>
		<visual_scene id="Scene">
			<node id="Cube">
				<instance_geometry url="shared.dae#some-mesh"/>
			</node>
		</visual_scene>
	</library_visual_scenes>
</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)

	ig := c.LibraryVisualScenes[0].VisualScenes[0].Nodes[0].InstanceGeometries[0]
	assert.True(t, ig.URL.External())
	assert.False(t, ig.URL.Resolved())
}

func TestDuplicateGlobalID(t *testing.T) {
	doc := `<COLLADA version="1.4.1">
	<asset><created>2017-02-01T09:29:54</created><modified>2017-02-01T09:29:54</modified></asset>
	<library_images>
		<image id="tex"><init_from>one.png</init_from></image>
		<image id="tex"><init_from>two.png</init_from></image>
	</library_images>
</COLLADA>`

	_, _, err := ParseString(doc)
	e := requireCode(t, err, errors.ErrDuplicateID)
	assert.Contains(t, e.Message, `"tex"`)
}

func TestReferenceKindMismatch(t *testing.T) {
	doc := `<COLLADA version="1.4.1">
	<asset><created>2017-02-01T09:29:54</created><modified>2017-02-01T09:29:54</modified></asset>
	<library_images>
		<image id="tex"><init_from>one.png</init_from></image>
	</library_images>
	<library_visual_scenes>
		<visual_scene id="Scene">
			<node id="Cube">
				<instance_geometry url="#tex"/>
			</node>
		</visual_scene>
	</library_visual_scenes>
</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	require.Len(t, unresolved, 1)
	assert.Equal(t, errors.ErrReferenceKindMismatch, unresolved[0].Code)

	ig := c.LibraryVisualScenes[0].VisualScenes[0].Nodes[0].InstanceGeometries[0]
	assert.False(t, ig.URL.Resolved())
}

func TestAnimationChannelTargetsTransform(t *testing.T) {
	doc := `<COLLADA version="1.4.1">
	<asset><created>2017-02-01T09:29:54</created><modified>2017-02-01T09:29:54</modified></asset>
	<library_animations>
		<animation id="Cube-anim">
			<source id="Cube-anim-input">
				<float_array id="Cube-anim-input-array" count="2">0 1</float_array>
			</source>
			<sampler id="Cube-anim-sampler">
				<input semantic="INPUT" source="#Cube-anim-input"/>
			</sampler>
			<channel source="#Cube-anim-sampler" target="Cube/transform"/>
		</animation>
	</library_animations>
	<library_visual_scenes>
		<visual_scene id="Scene">
			<node id="Cube">
				<matrix sid="transform">1 0 0 0 0 1 0 0 0 0 1 0 0 0 0 1</matrix>
			</node>
		</visual_scene>
	</library_visual_scenes>
</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	require.Empty(t, unresolved)

	require.Len(t, c.LibraryAnimations, 1)
	anim := c.LibraryAnimations[0].Animations[0]
	require.Len(t, anim.Channels, 1)

	ch := anim.Channels[0]
	require.True(t, ch.Source.Resolved())
	assert.Same(t, anim.Samplers[0], ch.Source.Target)

	// target is a sid path anchored at the node's global id
	require.True(t, ch.Target.Resolved())
	node := c.LibraryVisualScenes[0].VisualScenes[0].Nodes[0]
	assert.Same(t, node.Transforms[0], ch.Target.Target)
}

func TestExtraTechniques(t *testing.T) {
	doc := `<COLLADA version="1.4.1">
	<asset><created>2017-02-01T09:29:54</created><modified>2017-02-01T09:29:54</modified></asset>
	<extra id="blender-extra" type="export-settings">
		<technique profile="blender">
			<apply_modifiers>1</apply_modifiers>
		</technique>
	</extra>
</COLLADA>`

	c, _ := parseDoc(t, doc)
	require.Len(t, c.Extras, 1)

	ex := c.Extras[0]
	assert.Equal(t, "blender-extra", ex.ID)
	assert.Equal(t, "export-settings", ex.Type)
	require.Len(t, ex.Techniques, 1)

	tech := ex.Techniques[0]
	assert.Equal(t, "blender", tech.Profile)
	require.Len(t, tech.Data, 1)
	assert.Equal(t, "apply_modifiers", tech.Data[0].Name)
	assert.Equal(t, "1", tech.Data[0].Text)
}

func TestGeometriesIterator(t *testing.T) {
	doc := `<COLLADA version="1.4.1">
	<asset><created>2017-02-01T09:29:54</created><modified>2017-02-01T09:29:54</modified></asset>
	<library_geometries>
		<geometry id="a"><mesh>
			<source id="a-p"><float_array id="a-pa" count="3">0 0 0</float_array></source>
			<vertices id="a-v"><input semantic="POSITION" source="#a-p"/></vertices>
		</mesh></geometry>
	</library_geometries>
	<library_geometries>
		<geometry id="b"><mesh>
			<source id="b-p"><float_array id="b-pa" count="3">0 0 0</float_array></source>
			<vertices id="b-v"><input semantic="POSITION" source="#b-p"/></vertices>
		</mesh></geometry>
	</library_geometries>
</COLLADA>`

	c, _ := parseDoc(t, doc)

	var ids []string
	for g := range c.Geometries() {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []string{"a", "b"}, ids)
}
