package v15

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

func TestParseMinimalDocument(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
	<COLLADA xmlns="http://www.collada.org/2008/03/COLLADASchema" version="1.5.0">
		<asset>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
	</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)

	assert.Equal(t, "1.5.0", c.Version)
	require.NotNil(t, c.Asset)
	assert.Equal(t, common.DefaultUnit(), c.Asset.Unit)
	assert.Equal(t, common.UpY, c.Asset.UpAxis)
	assert.Nil(t, c.Asset.Coverage)
}

func TestRejects14Document(t *testing.T) {
	doc := `<COLLADA version="1.4.1">
		<asset>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
	</COLLADA>`

	_, _, err := ParseString(doc)
	e := requireCode(t, err, errors.ErrUnsupportedVersion)
	assert.Equal(t, "1.4.1", e.Actual)
}

func TestParseAssetCoverage(t *testing.T) {
	doc := `<COLLADA version="1.5.0">
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

	c, _ := parseDoc(t, doc)

	require.NotNil(t, c.Asset.Coverage)
	want := &GeographicLocation{
		Longitude: -105.2830,
		Latitude:  40.0170,
		Altitude:  Altitude{Mode: RelativeToGround, Value: 0},
	}
	if diff := cmp.Diff(want, c.Asset.Coverage.GeographicLocation); diff != "" {
		t.Errorf("geographic location mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAltitudeAbsolute(t *testing.T) {
	doc := `<COLLADA version="1.5.0">
		<asset>
			<coverage>
				<geographic_location>
					<longitude>13.4</longitude>
					<latitude>52.5</latitude>
					<altitude mode="absolute">34.5</altitude>
				</geographic_location>
			</coverage>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
	</COLLADA>`

	c, _ := parseDoc(t, doc)

	alt := c.Asset.Coverage.GeographicLocation.Altitude
	assert.Equal(t, Absolute, alt.Mode)
	assert.InDelta(t, 34.5, alt.Value, 1e-9)
}

func TestAltitudeInvalidMode(t *testing.T) {
	doc := `<COLLADA version="1.5.0">
		<asset>
			<coverage>
				<geographic_location>
					<longitude>13.4</longitude>
					<latitude>52.5</latitude>
					<altitude mode="floating">34.5</altitude>
				</geographic_location>
			</coverage>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
	</COLLADA>`

	_, _, err := ParseString(doc)
	e := requireCode(t, err, errors.ErrInvalidAttribute)
	assert.Equal(t, "altitude", e.Element)
	assert.Equal(t, "floating", e.Actual)
}

func TestAltitudeModeRequired(t *testing.T) {
	doc := `<COLLADA version="1.5.0">
		<asset>
			<coverage>
				<geographic_location>
					<longitude>13.4</longitude>
					<latitude>52.5</latitude>
					<altitude>34.5</altitude>
				</geographic_location>
			</coverage>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
	</COLLADA>`

	_, _, err := ParseString(doc)
	e := requireCode(t, err, errors.ErrMissingAttribute)
	assert.Equal(t, "altitude", e.Element)
}

func TestParseContributorContact(t *testing.T) {
	doc := `<COLLADA version="1.5.0">
		<asset>
			<contributor>
				<author>David LeGare</author>
				<author_email>dl@email.com</author_email>
				<author_website>https://example.com/dl</author_website>
				<authoring_tool>Atom</authoring_tool>
			</contributor>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
	</COLLADA>`

	c, _ := parseDoc(t, doc)

	want := []*Contributor{{
		Author:        "David LeGare",
		AuthorEmail:   "dl@email.com",
		AuthorWebsite: "https://example.com/dl",
		AuthoringTool: "Atom",
	}}
	if diff := cmp.Diff(want, c.Asset.Contributors); diff != "" {
		t.Errorf("contributors mismatch (-want +got):\n%s", diff)
	}
}

func TestAssetExtras(t *testing.T) {
	doc := `<COLLADA version="1.5.0">
		<asset>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
			<extra type="export-settings">
				<technique profile="blender">
					<apply_modifiers>1</apply_modifiers>
				</technique>
			</extra>
		</asset>
	</COLLADA>`

	c, _ := parseDoc(t, doc)

	require.Len(t, c.Asset.Extras, 1)
	assert.Equal(t, "export-settings", c.Asset.Extras[0].Type)
}

func TestParseKinematics(t *testing.T) {
	doc := `<COLLADA version="1.5.0">
		<asset>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
		<library_joints>
			<joint id="elbow" name="Elbow">
				<revolute sid="axis0">
					<axis>0 0 1</axis>
					<limits><min>-90</min><max>90</max></limits>
				</revolute>
			</joint>
		</library_joints>
		<library_kinematics_models>
			<kinematics_model id="arm">
				<technique_common>
					<instance_joint url="#elbow"/>
				</technique_common>
			</kinematics_model>
		</library_kinematics_models>
		<library_kinematics_scenes>
			<kinematics_scene id="kscene">
				<instance_kinematics_model url="#arm"/>
			</kinematics_scene>
		</library_kinematics_scenes>
		<scene>
			<instance_kinematics_scene url="#kscene"/>
		</scene>
	</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)

	require.Len(t, c.LibraryJoints, 1)
	joint := c.LibraryJoints[0].Joints[0]
	assert.Equal(t, "elbow", joint.ID)
	// joint axes are preserved, not interpreted
	require.Len(t, joint.Atoms, 1)
	assert.Equal(t, "revolute", joint.Atoms[0].Name)

	require.Len(t, c.LibraryKinematicsScenes, 1)
	kscene := c.LibraryKinematicsScenes[0].KinematicsScenes[0]

	require.NotNil(t, c.Scene)
	iks := c.Scene.InstanceKinematicsScene
	require.NotNil(t, iks)
	require.True(t, iks.URL.Resolved())
	assert.Same(t, kscene, iks.URL.Target)
	assert.Equal(t, "kinematics_scene", iks.URL.Kind)
}

func TestParseImageInitFrom(t *testing.T) {
	doc := `<COLLADA version="1.5.0">
		<asset>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
		<library_images>
			<image id="diffuse-tex" sid="diffuse">
				<init_from mips_generate="false">
					<ref>textures/diffuse.png</ref>
				</init_from>
			</image>
			<image id="inline-tex">
				<init_from>
					<hex format="R8G8B8">8BADF00D</hex>
				</init_from>
			</image>
			<image id="render-target">
				<renderable share="true"/>
				<init_from>
					<ref>targets/shadow.png</ref>
				</init_from>
			</image>
		</library_images>
	</COLLADA>`

	c, _ := parseDoc(t, doc)

	images := c.LibraryImages[0].Images
	require.Len(t, images, 3)

	require.NotNil(t, images[0].InitFrom)
	assert.Equal(t, "textures/diffuse.png", images[0].InitFrom.Ref)
	assert.False(t, images[0].InitFrom.MipsGenerate)
	assert.Equal(t, "diffuse", images[0].SID)
	assert.False(t, images[0].Renderable)

	require.NotNil(t, images[1].InitFrom)
	assert.True(t, images[1].InitFrom.MipsGenerate)
	assert.Equal(t, "R8G8B8", images[1].InitFrom.HexFormat)
	assert.Equal(t, "8BADF00D", images[1].InitFrom.Hex)

	assert.True(t, images[2].Renderable)
	assert.True(t, images[2].Shareable)
}

func TestImageRejects14Form(t *testing.T) {
	// the 1.4 shape of <image> carries the URI as text content
	doc := `<COLLADA version="1.5.0">
		<asset>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
		<library_images>
			<image id="diffuse-tex">
				<init_from>textures/diffuse.png</init_from>
			</image>
		</library_images>
	</COLLADA>`

	_, _, err := ParseString(doc)
	e := requireCode(t, err, errors.ErrUnexpectedText)
	assert.Equal(t, "init_from", e.Element)
}

func TestParseBrepGeometry(t *testing.T) {
	doc := `<COLLADA version="1.5.0">
		<asset>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
		<library_geometries>
			<geometry id="solid">
				<brep>
					<curves/>
					<vertices id="solid-vertices"/>
				</brep>
			</geometry>
		</library_geometries>
	</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)

	g := c.LibraryGeometries[0].Geometries[0]
	require.NotNil(t, g.Brep)
	assert.Nil(t, g.Mesh)
	require.Len(t, g.Brep.Content, 2)
	assert.Equal(t, "curves", g.Brep.Content[0].Name)
}

func TestParseMeshDocument(t *testing.T) {
	doc := `<COLLADA version="1.5.0">
		<asset>
			<created>2017-02-01T09:29:54</created>
			<modified>2017-02-01T09:29:54</modified>
		</asset>
		<library_geometries>
			<geometry id="Cube-mesh">
				<mesh>
					<source id="Cube-positions">
						<float_array id="Cube-positions-array" count="12">1 1 -1 1 -1 -1 -1 -1 -1 -1 1 -1</float_array>
						<technique_common>
							<accessor source="#Cube-positions-array" count="4" stride="3">
								<param name="X" type="float"/>
								<param name="Y" type="float"/>
								<param name="Z" type="float"/>
							</accessor>
						</technique_common>
					</source>
					<vertices id="Cube-vertices">
						<input semantic="POSITION" source="#Cube-positions"/>
					</vertices>
					<polylist count="1">
						<input semantic="VERTEX" source="#Cube-vertices" offset="0"/>
						<vcount>4</vcount>
						<p>0 1 2 3</p>
					</polylist>
				</mesh>
			</geometry>
		</library_geometries>
		<library_visual_scenes>
			<visual_scene id="Scene">
				<node id="Cube">
					<instance_geometry url="#Cube-mesh"/>
				</node>
			</visual_scene>
		</library_visual_scenes>
		<scene>
			<instance_visual_scene url="#Scene"/>
		</scene>
	</COLLADA>`

	c, unresolved := parseDoc(t, doc)
	assert.Empty(t, unresolved)

	g := c.LibraryGeometries[0].Geometries[0]
	require.NotNil(t, g.Mesh)
	assert.Len(t, g.Mesh.Sources[0].FloatArray.Data, 12)

	ig := c.LibraryVisualScenes[0].VisualScenes[0].Nodes[0].InstanceGeometries[0]
	require.True(t, ig.URL.Resolved())
	assert.Same(t, g, ig.URL.Target)
}
