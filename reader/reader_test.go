// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reader

import (
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usdfbx/usdfbx/fbx"
	"github.com/usdfbx/usdfbx/gf"
	"github.com/usdfbx/usdfbx/logx"
	"github.com/usdfbx/usdfbx/sdf"
)

func convert(t *testing.T, scene *fbx.Scene) (*sdf.Store, *logx.Recorder) {
	t.Helper()
	rec := logx.NewRecorder(nil)
	s := Convert(scene, rec.Logger())
	require.NoError(t, s.Validate())
	return s, rec
}

func prim(t *testing.T, s *sdf.Store, path string) *sdf.Prim {
	t.Helper()
	p, ok := s.Prim(sdf.Path(path))
	require.True(t, ok, "prim %s", path)
	return p
}

func prop(t *testing.T, s *sdf.Store, path string) *sdf.Property {
	t.Helper()
	p, ok := s.Property(sdf.Path(path))
	require.True(t, ok, "property %s", path)
	return p
}

func apiSchemas(p *sdf.Prim) []sdf.Token {
	v, _ := p.Metadata.ValueByKeyTry(sdf.KeyAPISchemas)
	schemas, _ := v.([]sdf.Token)
	return schemas
}

func connections(p *sdf.Property) []sdf.Path {
	v, _ := p.Metadata.ValueByKeyTry(sdf.FieldConnectionPaths)
	paths, _ := v.([]sdf.Path)
	return paths
}

var triangles = []gf.Vec3d{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}

func TestConvertMeshWithMaterial(t *testing.T) {
	scene := fbx.NewScene()
	group := scene.AddNode(nil, "Group", fbx.AttributeNull)
	quad := scene.AddMesh(group, "Quad", triangles, []int32{0, 1, 2}, []int32{0, 2, 3})
	mat := scene.AddMaterial(quad, "Red", "Lambert")
	mat.Properties.Set("DiffuseColor", fbx.TypeDouble3, 1, 0, 0)

	s, rec := convert(t, scene)
	assert.Empty(t, rec.Warnings())

	pseudo := s.PseudoRoot()
	assert.Equal(t, []string{RootName}, pseudo.Children)
	up, _ := pseudo.Metadata.ValueByKeyTry(sdf.KeyUpAxis)
	assert.Equal(t, sdf.Token("Y"), up)
	def, _ := pseudo.Metadata.ValueByKeyTry(sdf.KeyDefaultPrim)
	assert.Equal(t, sdf.Token(RootName), def)

	root := prim(t, s, "/ROOT")
	assert.Equal(t, sdf.TypeScope, root.TypeName)
	assert.Equal(t, []string{"Group", MaterialsName}, root.Children)
	assert.Equal(t, sdf.TypeXform, prim(t, s, "/ROOT/Group").TypeName)

	mesh := prim(t, s, "/ROOT/Group/Quad")
	assert.Equal(t, sdf.TypeMesh, mesh.TypeName)
	assert.Contains(t, apiSchemas(mesh), sdf.Token("MaterialBindingAPI"))
	assert.Equal(t, []int32{3, 3}, prop(t, s, "/ROOT/Group/Quad.faceVertexCounts").Default)
	assert.Equal(t, []int32{0, 1, 2, 0, 2, 3}, prop(t, s, "/ROOT/Group/Quad.faceVertexIndices").Default)
	points := prop(t, s, "/ROOT/Group/Quad.points").Default.([]math32.Vector3)
	assert.Len(t, points, 4)
	assert.Equal(t, math32.Vec3(1, 1, 0), points[2])

	binding := prop(t, s, "/ROOT/Group/Quad.material:binding")
	assert.Equal(t, []sdf.Path{"/ROOT/MATERIALS/Red"}, binding.TargetPaths)

	assert.Equal(t, sdf.TypeMaterial, prim(t, s, "/ROOT/MATERIALS/Red").TypeName)
	surf := prim(t, s, "/ROOT/MATERIALS/Red/LambertSurface")
	assert.Equal(t, sdf.TypeShader, surf.TypeName)
	assert.Equal(t, sdf.Token(PreviewSurface), prop(t, s, "/ROOT/MATERIALS/Red/LambertSurface.info:id").Default)
	assert.Equal(t, math32.Vec3(1, 0, 0), prop(t, s, "/ROOT/MATERIALS/Red/LambertSurface.inputs:diffuseColor").Default)
	out := prop(t, s, "/ROOT/MATERIALS/Red.outputs:surface")
	assert.Equal(t, []sdf.Path{"/ROOT/MATERIALS/Red/LambertSurface.outputs:surface"}, connections(out))
}

func TestUpAxisMismatch(t *testing.T) {
	scene := fbx.NewScene()
	scene.FileName = "scene.fbx"
	scene.Settings.OriginalUpAxis = 2

	s, rec := convert(t, scene)
	assert.Equal(t, []string{"scene.fbx: This scene was exported with Y-up but originally authored in Z-up."}, rec.Warnings())
	up, _ := s.PseudoRoot().Metadata.ValueByKeyTry(sdf.KeyUpAxis)
	assert.Equal(t, sdf.Token("Y"), up)
}

func TestZUpConversion(t *testing.T) {
	scene := fbx.NewScene()
	scene.Settings.Axis = fbx.MayaZUp
	n := scene.AddNode(nil, "n", fbx.AttributeNull)
	n.Properties.Set("Lcl Translation", fbx.TypeDouble3, 0, 0, 5)

	s, _ := convert(t, scene)
	tr := prop(t, s, "/ROOT/n.xformOp:translate").Default.(gf.Vec3d)
	assert.InDeltaSlice(t, []float64{0, 5, 0}, tr[:], 1e-9)
}

func TestTransformOps(t *testing.T) {
	scene := fbx.NewScene()
	st := scene.AddAnimStack("Take", 0, 2)
	n := scene.AddNode(nil, "Mover", fbx.AttributeNull)
	scene.Animate(&n.Properties, "Lcl Translation", st.BaseLayer(), 1, []float64{0, 2}, []float64{0, 4})

	s, rec := convert(t, scene)
	assert.Empty(t, rec.Warnings())
	md := s.PseudoRoot().Metadata
	start, _ := md.ValueByKeyTry(sdf.KeyStartTimeCode)
	stop, _ := md.ValueByKeyTry(sdf.KeyEndTimeCode)
	fps, _ := md.ValueByKeyTry(sdf.KeyTimeCodesPerSecond)
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 2.0, stop)
	assert.Equal(t, 30.0, fps)

	order := prop(t, s, "/ROOT/Mover.xformOpOrder")
	assert.Equal(t, sdf.VariabilityUniform, order.Variability)
	assert.Equal(t, []sdf.Token{OpTranslate, OpTranslatePivot, "xformOp:rotateXYZ", OpScale, "!invert!xformOp:translate:pivot"}, order.Default)

	tr := prop(t, s, "/ROOT/Mover.xformOp:translate")
	assert.Equal(t, []float64{0, 1, 2}, tr.SampleTimes())
	v, ok := tr.Sample(1)
	require.True(t, ok)
	assert.InDelta(t, 2, v.(gf.Vec3d)[1], 1e-9)

	rot := prop(t, s, "/ROOT/Mover.xformOp:rotateXYZ")
	assert.Equal(t, sdf.Float3, rot.TypeName)
	assert.Empty(t, rot.TimeSamples)
	assert.Equal(t, math32.Vec3(1, 1, 1), prop(t, s, "/ROOT/Mover.xformOp:scale").Default)
}

func TestImageableAndMetadata(t *testing.T) {
	scene := fbx.NewScene()
	n := scene.AddNode(nil, "Hidden", fbx.AttributeNull)
	n.Properties.Set("Visibility", fbx.TypeDouble, 0)

	s, _ := convert(t, scene)
	vis := prop(t, s, "/ROOT/Hidden.visibility")
	assert.Equal(t, VisibilityInvisible, vis.Default)
	group, _ := vis.Metadata.ValueByKeyTry(sdf.KeyDisplayGroup)
	assert.Equal(t, GroupImageable, group)
	assert.Equal(t, sdf.Token("default"), prop(t, s, "/ROOT/Hidden.purpose").Default)
	raw := prop(t, s, "/ROOT/Hidden.generated:visibility")
	assert.True(t, raw.Custom)
	assert.Equal(t, 0.0, raw.Default)

	p := prim(t, s, "/ROOT/Hidden")
	comment, _ := p.Metadata.ValueByKeyTry(sdf.KeyComment)
	assert.Equal(t, "Converted from Null node Hidden", comment)
	active, _ := p.Metadata.ValueByKeyTry(sdf.KeyActive)
	assert.Equal(t, true, active)
}

func TestVisibilityToken(t *testing.T) {
	assert.Equal(t, VisibilityInherited, VisibilityToken(1))
	assert.Equal(t, VisibilityInherited, VisibilityToken(0.5))
	assert.Equal(t, VisibilityInvisible, VisibilityToken(0))
	assert.Equal(t, VisibilityInvisible, VisibilityToken(1e-7))
	assert.Equal(t, VisibilityInvisible, VisibilityToken(-1))
}

func TestUserProperties(t *testing.T) {
	scene := fbx.NewScene()
	n := scene.AddNode(nil, "n", fbx.AttributeNull)
	n.Properties.Set("My Prop", fbx.TypeInt, 3).Flags = "AU"
	n.Properties.SetString("Note", "hello").Flags = "U"
	n.Properties.Set("NotUser", fbx.TypeDouble, 1)

	s, _ := convert(t, scene)
	p := prop(t, s, "/ROOT/n.userProperties:My_Prop")
	assert.Equal(t, sdf.Int, p.TypeName)
	assert.Equal(t, int32(3), p.Default)
	assert.True(t, p.Custom)
	note := prop(t, s, "/ROOT/n.userProperties:Note")
	assert.Equal(t, sdf.TokenType, note.TypeName)
	assert.Equal(t, sdf.Token("hello"), note.Default)
	_, ok := s.Property("/ROOT/n.userProperties:NotUser")
	assert.False(t, ok)
}

func TestUnknownTypesAreSkipped(t *testing.T) {
	scene := fbx.NewScene()
	light := scene.AddNode(nil, "Light", fbx.AttributeLight)
	scene.AddNode(light, "Below", fbx.AttributeNull)
	scene.AddNode(nil, "Bare", fbx.AttributeUnknown)

	s, _ := convert(t, scene)
	assert.Empty(t, prim(t, s, "/ROOT").Children)
	_, ok := s.Prim("/ROOT/Light/Below")
	assert.False(t, ok)
}

func TestSiblingNames(t *testing.T) {
	scene := fbx.NewScene()
	scene.AddNode(nil, "a b", fbx.AttributeNull)
	scene.AddNode(nil, "a_b", fbx.AttributeNull)
	scene.AddNode(nil, "1st", fbx.AttributeNull)

	s, _ := convert(t, scene)
	children := prim(t, s, "/ROOT").Children
	assert.Len(t, children, 3)
	assert.Contains(t, children, "a_b")
	for _, c := range children {
		assert.NotEqual(t, "a b", c)
		assert.NotEqual(t, "1st", c)
	}
}

func TestCamera(t *testing.T) {
	scene := fbx.NewScene()
	scene.AddNode(nil, "Cam", fbx.AttributeCamera)

	s, _ := convert(t, scene)
	assert.Equal(t, sdf.TypeCamera, prim(t, s, "/ROOT/Cam").TypeName)
	assert.InDelta(t, 34.89327, prop(t, s, "/ROOT/Cam.focalLength").Default.(float32), 1e-4)
	assert.InDelta(t, 0.816*25.4, prop(t, s, "/ROOT/Cam.horizontalAperture").Default.(float32), 1e-4)
	assert.InDelta(t, 0.612*25.4, prop(t, s, "/ROOT/Cam.verticalAperture").Default.(float32), 1e-4)
	assert.Equal(t, sdf.Token("perspective"), prop(t, s, "/ROOT/Cam.projection").Default)
	assert.Equal(t, math32.Vec2(10, 4000), prop(t, s, "/ROOT/Cam.clippingRange").Default)
	_, ok := s.Property("/ROOT/Cam.fStop")
	assert.False(t, ok)
	assert.True(t, prop(t, s, "/ROOT/Cam.generated:fov").Custom)
}

func TestTenthOfSceneUnit(t *testing.T) {
	assert.InDelta(t, 35, TenthOfSceneUnit(35, fbx.Centimeter), 1e-9)
	assert.InDelta(t, 0.35, TenthOfSceneUnit(35, fbx.Meter), 1e-9)
}

func TestMaterialSubsets(t *testing.T) {
	scene := fbx.NewScene()
	n := scene.AddMesh(nil, "Quad", triangles, []int32{0, 1, 2}, []int32{0, 2, 3})
	scene.AddMaterial(n, "A", "Phong")
	scene.AddMaterial(n, "B", "Lambert")
	n.Mesh().Materials = &fbx.MaterialElement{Mapping: fbx.MappingByPolygon, Indexes: []int32{1, 0}}

	s, _ := convert(t, scene)
	assert.Equal(t, sdf.Token("partition"), prop(t, s, "/ROOT/Quad.subsetFamily:materialBind:familyType").Default)
	assert.Equal(t, []string{"SUBSET_A", "SUBSET_B"}, prim(t, s, "/ROOT/Quad").Children)

	a := prim(t, s, "/ROOT/Quad/SUBSET_A")
	assert.Equal(t, sdf.TypeGeomSubset, a.TypeName)
	assert.Contains(t, apiSchemas(a), sdf.Token("MaterialBindingAPI"))
	assert.Equal(t, []int32{1}, prop(t, s, "/ROOT/Quad/SUBSET_A.indices").Default)
	assert.Equal(t, []int32{0}, prop(t, s, "/ROOT/Quad/SUBSET_B.indices").Default)
	assert.Equal(t, sdf.Token("materialBind"), prop(t, s, "/ROOT/Quad/SUBSET_B.familyName").Default)
	assert.Equal(t, []sdf.Path{"/ROOT/MATERIALS/B"}, prop(t, s, "/ROOT/Quad/SUBSET_B.material:binding").TargetPaths)
	_, ok := s.Property("/ROOT/Quad.material:binding")
	assert.False(t, ok)

	assert.Equal(t, sdf.TypeShader, prim(t, s, "/ROOT/MATERIALS/A/PhongSurface").TypeName)
	assert.Equal(t, []string{"A", "B"}, prim(t, s, "/ROOT/MATERIALS").Children)
}

// coloredScene returns a triangle carrying the given color sets.
func coloredScene(colors ...*fbx.LayerElement) *fbx.Scene {
	scene := fbx.NewScene()
	n := scene.AddMesh(nil, "Tri", triangles[:3], []int32{0, 1, 2})
	n.Mesh().Colors = colors
	return scene
}

func vertexColors(name string, r, g, b float64) *fbx.LayerElement {
	return &fbx.LayerElement{
		Name:      name,
		Mapping:   fbx.MappingByControlPoint,
		Reference: fbx.ReferenceDirect,
		Size:      4,
		Direct:    []float64{r, g, b, 1, r, g, b, 1, r, g, b, 1},
	}
}

func TestColorSets(t *testing.T) {
	flat := &fbx.LayerElement{Name: "flat", Mapping: fbx.MappingByPolygon, Reference: fbx.ReferenceDirect, Size: 4, Direct: []float64{1, 1, 1, 1}}
	s, rec := convert(t, coloredScene(flat, vertexColors("red", 1, 0, 0)))
	assert.Empty(t, rec.Warnings())
	red := math32.Vec3(1, 0, 0)
	color := prop(t, s, "/ROOT/Tri.primvars:displayColor")
	assert.Equal(t, []math32.Vector3{red, red, red}, color.Default)
	interp, _ := color.Metadata.ValueByKeyTry(sdf.KeyInterpolation)
	assert.Equal(t, sdf.Token(InterpolationVertex), interp)
	_, ok := s.Property("/ROOT/Tri.primvars:displayColor_red")
	assert.False(t, ok)

	s, rec = convert(t, coloredScene(flat, vertexColors("red", 1, 0, 0), vertexColors("green", 0, 1, 0)))
	assert.Equal(t, []string{`"Tri" has 2 color sets, only the first one is used as the display color`}, rec.Warnings())
	green := math32.Vec3(0, 1, 0)
	assert.Equal(t, []math32.Vector3{green, green, green}, prop(t, s, "/ROOT/Tri.primvars:displayColor_green").Default)
}

func TestUnusedMaterialHasNoSubset(t *testing.T) {
	scene := fbx.NewScene()
	n := scene.AddMesh(nil, "Quad", triangles, []int32{0, 1, 2}, []int32{0, 2, 3})
	scene.AddMaterial(n, "A", "Phong")
	scene.AddMaterial(n, "B", "Lambert")
	scene.AddMaterial(n, "C", "Lambert")
	n.Mesh().Materials = &fbx.MaterialElement{Mapping: fbx.MappingByPolygon, Indexes: []int32{1, 0}}

	s, _ := convert(t, scene)
	assert.Equal(t, []string{"SUBSET_A", "SUBSET_B"}, prim(t, s, "/ROOT/Quad").Children)
	_, ok := s.Prim("/ROOT/Quad/SUBSET_C")
	assert.False(t, ok)
	assert.Equal(t, []string{"A", "B", "C"}, prim(t, s, "/ROOT/MATERIALS").Children)
}

func texturedScene(uvSet string) (*fbx.Scene, *fbx.Material) {
	scene := fbx.NewScene()
	n := scene.AddMesh(nil, "Tri", triangles, []int32{0, 1, 2})
	n.Mesh().UVs = []*fbx.LayerElement{{
		Name:      "map1",
		Mapping:   fbx.MappingByPolygonVertex,
		Reference: fbx.ReferenceDirect,
		Size:      2,
		Direct:    []float64{0, 0, 1, 0, 1, 1},
	}}
	mat := scene.AddMaterial(n, "Red", "Lambert")
	tex := mat.AddTexture("DiffuseColor", "Wood", "wood.png")
	tex.Properties.SetString("UVSet", uvSet)
	return scene, mat
}

func TestTextureNetwork(t *testing.T) {
	scene, _ := texturedScene("map1")
	s, rec := convert(t, scene)
	assert.Empty(t, rec.Warnings())

	uv := prop(t, s, "/ROOT/Tri.primvars:st_map1")
	assert.Equal(t, sdf.TexCoord2f.Array(), uv.TypeName)
	assert.Equal(t, []math32.Vector2{math32.Vec2(0, 0), math32.Vec2(1, 0), math32.Vec2(1, 1)}, uv.Default)
	interp, _ := uv.Metadata.ValueByKeyTry(sdf.KeyInterpolation)
	assert.Equal(t, sdf.Token(InterpolationFaceVarying), interp)

	const mat = "/ROOT/MATERIALS/Red"
	assert.Equal(t, []string{"LambertSurface", "primvar_st_map1", "diffuseColor_Wood_tex"}, prim(t, s, mat).Children)
	assert.Equal(t, "st_map1", prop(t, s, mat+"/primvar_st_map1.inputs:varname").Default)
	assert.Equal(t, sdf.AssetPath{Path: "wood.png"}, prop(t, s, mat+"/diffuseColor_Wood_tex.inputs:file").Default)
	assert.Equal(t, math32.Vec4(1, 0, 0, 1), prop(t, s, mat+"/diffuseColor_Wood_tex.inputs:fallback").Default)
	assert.Equal(t, []sdf.Path{mat + "/primvar_st_map1.outputs:result"}, connections(prop(t, s, mat+"/diffuseColor_Wood_tex.inputs:st")))
	diffuse := prop(t, s, mat+"/LambertSurface.inputs:diffuseColor")
	assert.Equal(t, sdf.Color3f, diffuse.TypeName)
	assert.Equal(t, []sdf.Path{mat + "/diffuseColor_Wood_tex.outputs:rgb"}, connections(diffuse))
}

func TestUnknownUVSetKeepsFreeName(t *testing.T) {
	scene, _ := texturedScene("map2")
	s, rec := convert(t, scene)

	require.Len(t, rec.Warnings(), 1)
	assert.Contains(t, rec.Warnings()[0], "uses an unknown UV Set")
	assert.Contains(t, rec.Warnings()[0], `"map1"`)
	assert.Equal(t, []string{"Red"}, prim(t, s, "/ROOT/MATERIALS").Children)
	assert.Equal(t, []sdf.Path{"/ROOT/MATERIALS/Red"}, prop(t, s, "/ROOT/Tri.material:binding").TargetPaths)
	assert.Equal(t, DefaultUVSet, prop(t, s, "/ROOT/MATERIALS/Red/primvar_st.inputs:varname").Default)
}

func TestUnknownUVSetClonesMaterial(t *testing.T) {
	scene, mat := texturedScene("map1")
	other := scene.AddMesh(nil, "Other", triangles, []int32{0, 1, 2})
	other.Mesh().UVs = []*fbx.LayerElement{{
		Name:      "uvB",
		Mapping:   fbx.MappingByPolygonVertex,
		Reference: fbx.ReferenceDirect,
		Size:      2,
		Direct:    []float64{0, 0, 1, 0, 1, 1},
	}}
	other.Materials = append(other.Materials, mat)

	s, rec := convert(t, scene)
	require.Len(t, rec.Warnings(), 1)
	assert.Contains(t, rec.Warnings()[0], `(did you mean "uvB"?)`)
	assert.Equal(t, []string{"Red", "Red__CLONE_1"}, prim(t, s, "/ROOT/MATERIALS").Children)
	assert.Equal(t, []sdf.Path{"/ROOT/MATERIALS/Red"}, prop(t, s, "/ROOT/Tri.material:binding").TargetPaths)
	assert.Equal(t, []sdf.Path{"/ROOT/MATERIALS/Red__CLONE_1"}, prop(t, s, "/ROOT/Other.material:binding").TargetPaths)
	assert.Equal(t, "st_map1", prop(t, s, "/ROOT/MATERIALS/Red/primvar_st_map1.inputs:varname").Default)
	assert.Equal(t, DefaultUVSet, prop(t, s, "/ROOT/MATERIALS/Red__CLONE_1/primvar_st.inputs:varname").Default)
}

func TestHardwareShaderSkipped(t *testing.T) {
	scene, mat := texturedScene("map1")
	mat.HardwareShader = "HLSL"
	s, rec := convert(t, scene)
	require.Len(t, rec.Warnings(), 1)
	assert.Contains(t, rec.Warnings()[0], "Runtime shader materials")
	_, ok := s.Property("/ROOT/Tri.material:binding")
	assert.False(t, ok)
}

func TestShininessToRoughness(t *testing.T) {
	assert.InDelta(t, 0.8, ShininessToRoughness(20), 1e-9)
	assert.InDelta(t, 1-200.0/256, ShininessToRoughness(200), 1e-9)
	assert.InDelta(t, 0.5, ShininessToRoughness(0.5), 1e-9)
	assert.InDelta(t, 1-1000.0/256, ShininessToRoughness(1000), 1e-9)
	assert.Less(t, ShininessToRoughness(1000), 0.0)
}

// skinnedScene returns a scene with a two joint skeleton and a
// triangle skinned to it.
func skinnedScene() (scene *fbx.Scene, hips, spine, body *fbx.Node) {
	scene = fbx.NewScene()
	hips = scene.AddNode(nil, "Hips", fbx.AttributeSkeleton)
	spine = scene.AddNode(hips, "Spine", fbx.AttributeSkeleton)
	spine.Properties.Set("Lcl Translation", fbx.TypeDouble3, 0, 10, 0)
	body = scene.AddMesh(nil, "Body", triangles[:3], []int32{0, 1, 2})
	body.Mesh().Skins = []*fbx.Skin{{Clusters: []*fbx.Cluster{
		{Link: spine, Indices: []int32{0, 1}, Weights: []float64{1, 0.25}},
		{Link: hips, Indices: []int32{1}, Weights: []float64{0.75}},
	}}}
	return
}

func TestSkinBinding(t *testing.T) {
	_, hips, spine, body := skinnedScene()
	b := NewSkinBinding(body.Mesh(), body.Mesh().Skins[0])
	assert.Equal(t, []*fbx.Node{spine, hips}, b.Joints)
	assert.Same(t, hips, b.Root)
	assert.Equal(t, 2, b.ElementSize)
	assert.Equal(t, []int32{0, 0, 1, 0, 0, 0}, b.Indices())
	assert.InDeltaSlice(t, []float32{1, 0, 0.75, 0.25, 0, 0}, b.Weights(), 1e-6)

	empty := NewSkinBinding(body.Mesh(), &fbx.Skin{})
	assert.Empty(t, empty.Joints)
	assert.Nil(t, empty.Root)
}

func TestSkinnedMesh(t *testing.T) {
	scene, _, _, _ := skinnedScene()
	s, rec := convert(t, scene)
	assert.Empty(t, rec.Warnings())

	root := prim(t, s, "/ROOT")
	assert.Equal(t, sdf.TypeSkelRoot, root.TypeName)
	assert.Contains(t, apiSchemas(root), sdf.Token("SkelBindingAPI"))
	assert.Contains(t, apiSchemas(prim(t, s, "/ROOT/Body")), sdf.Token("SkelBindingAPI"))

	assert.Equal(t, []sdf.Token{"Hips/Spine", "Hips"}, prop(t, s, "/ROOT/Body.skel:joints").Default)
	indices := prop(t, s, "/ROOT/Body.primvars:skel:jointIndices")
	size, _ := indices.Metadata.ValueByKeyTry(sdf.KeyElementSize)
	assert.Equal(t, 2, size)
	assert.Equal(t, []sdf.Path{"/ROOT/Hips"}, prop(t, s, "/ROOT/Body.skel:skeleton").TargetPaths)

	skel := prim(t, s, "/ROOT/Hips")
	assert.Equal(t, sdf.TypeSkeleton, skel.TypeName)
	assert.Empty(t, skel.Children)
	assert.Equal(t, []sdf.Token{"Hips", "Hips/Spine"}, prop(t, s, "/ROOT/Hips.joints").Default)
	rest := prop(t, s, "/ROOT/Hips.restTransforms").Default.([]gf.Matrix4d)
	require.Len(t, rest, 2)
	restTr := rest[1].Translation()
	assert.InDeltaSlice(t, []float64{0, 10, 0}, restTr[:], 1e-9)
	bind := prop(t, s, "/ROOT/Hips.bindTransforms").Default.([]gf.Matrix4d)
	bindTr := bind[1].Translation()
	assert.InDeltaSlice(t, []float64{0, 10, 0}, bindTr[:], 1e-9)
	_, ok := s.Prim("/ROOT/Hips/Spine")
	assert.False(t, ok)
}

func TestSkinWithoutJoints(t *testing.T) {
	scene, _, _, body := skinnedScene()
	body.Mesh().Skins = []*fbx.Skin{{}}
	s, rec := convert(t, scene)
	assert.Equal(t, []string{`A skin for "Body" has been defined, but no joints could be extracted!`}, rec.Warnings())
	_, ok := s.Property("/ROOT/Body.skel:joints")
	assert.False(t, ok)
}

func TestSkeletonAnimation(t *testing.T) {
	scene, _, spine, _ := skinnedScene()
	st := scene.AddAnimStack("Take", 0, 2)
	scene.Animate(&spine.Properties, "Lcl Translation", st.BaseLayer(), 0, []float64{0, 2}, []float64{0, 2})

	s, _ := convert(t, scene)
	anim := prim(t, s, "/ROOT/AnimationHips")
	assert.Equal(t, sdf.TypeSkelAnimation, anim.TypeName)
	assert.Contains(t, prim(t, s, "/ROOT").Children, "AnimationHips")
	assert.Equal(t, []sdf.Path{"/ROOT/AnimationHips"}, prop(t, s, "/ROOT/Hips.skel:animationSource").TargetPaths)

	tr := prop(t, s, "/ROOT/AnimationHips.translations")
	assert.Equal(t, []float64{0, 1, 2}, tr.SampleTimes())
	v, ok := tr.Sample(1)
	require.True(t, ok)
	assert.InDelta(t, 1, v.([]math32.Vector3)[1].X, 1e-5)
	assert.InDelta(t, 10, v.([]math32.Vector3)[1].Y, 1e-5)

	rot := prop(t, s, "/ROOT/AnimationHips.rotations")
	assert.Empty(t, rot.TimeSamples)
	assert.Len(t, rot.Default, 2)
	assert.Empty(t, prop(t, s, "/ROOT/AnimationHips.scales").TimeSamples)
}

func TestSkeletonAnimationScaleIsNeutral(t *testing.T) {
	scene, _, spine, _ := skinnedScene()
	spine.Properties.Set("Lcl Scaling", fbx.TypeDouble3, 2, 2, 2)
	st := scene.AddAnimStack("Take", 0, 2)
	scene.Animate(&spine.Properties, "Lcl Translation", st.BaseLayer(), 0, []float64{0, 2}, []float64{0, 2})
	scene.Animate(&spine.Properties, "Lcl Scaling", st.BaseLayer(), 1, []float64{0, 2}, []float64{2, 4})

	s, _ := convert(t, scene)
	one := gf.NewVec3h(1, 1, 1)
	scales := prop(t, s, "/ROOT/AnimationHips.scales")
	assert.Equal(t, sdf.Half3.Array(), scales.TypeName)
	assert.Equal(t, []gf.Vec3h{one, one}, scales.Default)
	assert.Empty(t, scales.TimeSamples)

	tr := prop(t, s, "/ROOT/AnimationHips.translations")
	assert.Equal(t, []float64{0, 1, 2}, tr.SampleTimes())
}

func TestSpanFrames(t *testing.T) {
	assert.Equal(t, []int64{0, 1, 2}, Span{Start: 0, Stop: 2, FPS: 24}.Frames())
	assert.Equal(t, []int64{5}, Span{Start: 5, Stop: 3, FPS: 24}.Frames())
}

func TestValue(t *testing.T) {
	assert.Equal(t, true, Value(sdf.Bool, []float64{1}))
	assert.Equal(t, uint8(7), Value(sdf.UChar, []float64{7}))
	assert.Equal(t, gf.Vec3d{1, 2, 0}, Value(sdf.Double3, []float64{1, 2}))
	assert.Equal(t, math32.Vec3(1, 2, 3), Value(sdf.Color3f, []float64{1, 2, 3}))
	assert.Equal(t, gf.Identity(), Value(sdf.Matrix4d, gf.Identity().Slice()))
	assert.Equal(t, sdf.Int64, UserType(fbx.TypeLongLong))
	assert.Equal(t, sdf.TokenType, UserType(fbx.TypeBlob))
}

const triangleDoc = `; FBX 7.4.0 project file
FBXHeaderExtension:  {
	FBXVersion: 7400
}
Objects:  {
	Geometry: 10, "Geometry::Tri", "Mesh" {
		Vertices: *9 {
			a: 0,0,0,1,0,0,0,1,0
		}
		PolygonVertexIndex: *3 {
			a: 0,1,-3
		}
	}
	Model: 20, "Model::Tri", "Mesh" {
		Version: 232
	}
}
Connections:  {
	C: "OO",20,0
	C: "OO",10,20
}
`

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.fbx")
	require.NoError(t, os.WriteFile(path, []byte(triangleDoc), 0o644))

	rec := logx.NewRecorder(nil)
	s, err := Open(path, Options{Manager: fbx.NewManager(), Logger: rec.Logger()})
	require.NoError(t, err)
	require.NoError(t, s.Validate())
	assert.Equal(t, sdf.TypeMesh, prim(t, s, "/ROOT/Tri").TypeName)
	assert.Equal(t, []int32{3}, prop(t, s, "/ROOT/Tri.faceVertexCounts").Default)

	_, err = Open(filepath.Join(dir, "missing.fbx"), Options{})
	assert.ErrorIs(t, err, ErrUnableToOpen)
}
