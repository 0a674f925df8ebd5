// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reader

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"cogentcore.org/core/base/fsx"
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/usdfbx/usdfbx/fbx"
	"github.com/usdfbx/usdfbx/gf"
	"github.com/usdfbx/usdfbx/ident"
	"github.com/usdfbx/usdfbx/sdf"
)

// MaterialsName is the name of the scope holding all materials.
const MaterialsName = "MATERIALS"

// Shader identifiers.
const (
	PreviewSurface = "UsdPreviewSurface"
	UVTexture      = "UsdUVTexture"
	PrimvarReader  = "UsdPrimvarReader_float2"
)

// DefaultUVSet is the primvar read by textures without a known UV set.
const DefaultUVSet = "st"

// ShaderInput is the preview surface input a texture channel maps to.
type ShaderInput struct {
	Name string
	Type sdf.ValueTypeName

	// Output is the texture output connected to the input.
	Output string
}

// ChannelInputs maps FBX material channels to preview surface inputs.
var ChannelInputs = map[string]ShaderInput{
	"DiffuseColor":      {"diffuseColor", sdf.Color3f, "rgb"},
	"EmissiveColor":     {"emissiveColor", sdf.Color3f, "rgb"},
	"NormalMap":         {"normal", sdf.Normal3f, "rgb"},
	"TransparentColor":  {"opacity", sdf.Float, "r"},
	"DisplacementColor": {"displacement", sdf.Float, "r"},
	"SpecularColor":     {"specularColor", sdf.Color3f, "rgb"},
	"ShininessExponent": {"roughness", sdf.Float, "r"},
	"ReflectionColor":   {"metallic", sdf.Float, "r"},
}

// ShininessToRoughness maps a Phong shininess exponent to a preview
// surface roughness. The result is not clamped.
func ShininessToRoughness(shininess float64) float64 {
	v := shininess
	switch {
	case v > 100:
		v /= 256
	case v > 1:
		v /= 100
	}
	return 1 - v
}

// ReadMeshMaterials converts the materials of the node and binds them
// to the mesh: directly for a single material, and through one face
// subset per material used by at least one polygon otherwise.
func (c *Context) ReadMeshMaterials(m *fbx.Mesh, uvSets map[string]string) {
	mats := c.Node.Materials
	if len(mats) == 0 {
		return
	}
	paths := make([]sdf.Path, len(mats))
	for i, mat := range mats {
		paths[i] = c.ReadMaterial(mat, uvSets)
	}
	prim := c.Prim()
	if len(mats) == 1 {
		if !paths[0].IsEmpty() {
			AddAPISchema(prim, "MaterialBindingAPI")
			c.CreateRelationship(c.Path, "material:binding", paths[0], GroupShading)
		}
		return
	}

	faces := make([][]int32, len(mats))
	for p := range m.PolygonCount() {
		if i := m.PolygonMaterial(p); i >= 0 && i < len(mats) {
			faces[i] = append(faces[i], int32(p))
		}
	}
	AddAPISchema(prim, "MaterialBindingAPI")
	c.CreateUniform("subsetFamily:materialBind:familyType", sdf.TokenType, sdf.Token("partition"), GroupShading)
	names := ident.NewSet()
	for i, path := range paths {
		if path.IsEmpty() || len(faces[i]) == 0 {
			continue
		}
		name := names.Clean("SUBSET_"+path.Name(), ident.DefaultTrim)
		sub := c.Path.AppendChild(name)
		c.Store.GetOrAddPrim(sub).TypeName = sdf.TypeGeomSubset
		prim.AddChild(name)
		AddAPISchema(c.Store.GetOrAddPrim(sub), "MaterialBindingAPI")
		c.CreateUniformAt(sub, "elementType", sdf.TokenType, sdf.Token("face"), GroupShading)
		c.CreateUniformAt(sub, "familyName", sdf.TokenType, sdf.Token("materialBind"), GroupShading)
		c.CreateAttributeAt(sub, "indices", sdf.Int.Array(), append([]int32{}, faces[i]...), GroupShading)
		c.CreateRelationship(sub, "material:binding", path, GroupShading)
	}
}

// channelTexture is a file texture connected to a material channel.
type channelTexture struct {
	channel string
	texture *fbx.Texture
}

// textures returns the file textures of the material in channel order,
// skipping layered textures.
func (c *Context) textures(mat *fbx.Material) []channelTexture {
	var out []channelTexture
	for _, ch := range fbx.TextureChannels {
		for _, t := range mat.ChannelTextures(ch) {
			if t.Layered {
				c.Warnf("Layered Textures are currently unsupported! %q of material %q is skipped", t.Name, mat.Name)
				continue
			}
			out = append(out, channelTexture{ch, t})
		}
	}
	return out
}

// closestUVSet returns the known UV set most similar to name.
func closestUVSet(name string, uvSets map[string]string) string {
	best, score := "", -1.0
	lev := metrics.NewLevenshtein()
	for _, k := range slices.Sorted(maps.Keys(uvSets)) {
		if s := strutil.Similarity(name, k, lev); s > score {
			best, score = k, s
		}
	}
	return best
}

// ReadMaterial converts a material to a material prim with a preview
// surface shader network and returns its path. Materials whose textures
// use UV sets unknown to the mesh are cloned under a new name, since
// their primvar readers differ. It returns the empty path for materials
// that cannot be converted.
func (c *Context) ReadMaterial(mat *fbx.Material, uvSets map[string]string) sdf.Path {
	if mat.HardwareShader != "" {
		c.Warnf("Runtime shader materials of type %s are currently unsupported, material %q is skipped", mat.HardwareShader, mat.Name)
		return sdf.EmptyPath
	}
	scope := c.RootPath.AppendChild(MaterialsName)
	c.Store.GetOrAddPrim(scope).TypeName = sdf.TypeScope
	c.Store.GetOrAddPrim(c.RootPath).AddChild(MaterialsName)

	texs := c.textures(mat)
	name := ident.Clean(mat.Name)
	unknown := false
	for _, ct := range texs {
		uv := ct.texture.UVSet()
		if _, ok := uvSets[uv]; uv != "" && !ok {
			msg := fmt.Sprintf("FBX Texture %q used in material %q uses an unknown UV Set! A new unique material will be created", ct.texture.Name, mat.Name)
			if hint := closestUVSet(uv, uvSets); hint != "" {
				msg += fmt.Sprintf(" (did you mean %q?)", hint)
			}
			c.Warnf("%s", msg)
			unknown = true
		}
	}
	if unknown {
		base := name
		for i := 1; c.hasPrim(scope.AppendChild(name)); i++ {
			name = fmt.Sprintf("%s__CLONE_%d", base, i)
		}
	}
	path := scope.AppendChild(name)
	if c.hasPrim(path) {
		return path
	}
	c.Store.GetOrAddPrim(path).TypeName = sdf.TypeMaterial
	c.Store.GetOrAddPrim(scope).AddChild(name)

	surfName := ident.Clean(mat.ShadingModel) + "Surface"
	surf := path.AppendChild(surfName)
	c.Store.GetOrAddPrim(surf).TypeName = sdf.TypeShader
	c.Store.GetOrAddPrim(path).AddChild(surfName)
	c.CreateUniformAt(surf, "info:id", sdf.TokenType, sdf.Token(PreviewSurface), "")
	c.Connect(surf.AppendProperty("outputs:surface"), path.AppendProperty("outputs:surface"), sdf.TokenType)

	c.readShadingModel(mat, surf)
	for _, ct := range texs {
		c.readTexture(path, surf, ct, uvSets)
	}
	return path
}

// readShadingModel sets the constant inputs of the surface shader from
// the lambert or phong properties of the material.
func (c *Context) readShadingModel(mat *fbx.Material, surf sdf.Path) {
	if mat.Class != fbx.ShadingLambert && mat.Class != fbx.ShadingPhong {
		return
	}
	ps := &mat.Properties
	color := func(name string) any { return ps.Vec3(name).Float() }

	c.CreateAttributeAt(surf, "inputs:diffuseColor", sdf.Color3f, color("DiffuseColor"), "")
	if ps.Modified("EmissiveColor") {
		c.CreateAttributeAt(surf, "inputs:emissiveColor", sdf.Color3f, color("EmissiveColor"), "")
	}
	if ps.Find("Opacity") != nil {
		c.CreateAttributeAt(surf, "inputs:opacity", sdf.Float, float32(ps.Double("Opacity")), "")
	}
	if mat.Class != fbx.ShadingPhong {
		return
	}
	if ps.Modified("SpecularColor") {
		c.CreateAttributeAt(surf, "inputs:specularColor", sdf.Color3f, color("SpecularColor"), "")
	}
	if ps.Modified("ShininessExponent") {
		c.CreateAttributeAt(surf, "inputs:roughness", sdf.Float, float32(ShininessToRoughness(ps.Double("ShininessExponent"))), "")
	}
	if ps.Modified("ReflectionFactor") {
		c.CreateAttributeAt(surf, "inputs:metallic", sdf.Float, float32(ps.Double("ReflectionFactor")), "")
	}
}

// readTexture adds a texture shader and the primvar reader feeding it,
// and connects the texture to the surface input of its channel.
func (c *Context) readTexture(mat, surf sdf.Path, ct channelTexture, uvSets map[string]string) {
	in, ok := ChannelInputs[ct.channel]
	if !ok {
		c.Warnf("Unable to find mapping from %q to USD property", ct.channel)
		return
	}
	matPrim := c.Store.GetOrAddPrim(mat)

	uv, ok := uvSets[ct.texture.UVSet()]
	if !ok {
		uv = DefaultUVSet
	}
	readerName := "primvar_" + uv
	pv := mat.AppendChild(readerName)
	c.Store.GetOrAddPrim(pv).TypeName = sdf.TypeShader
	matPrim.AddChild(readerName)
	c.CreateUniformAt(pv, "info:id", sdf.TokenType, sdf.Token(PrimvarReader), "")
	c.CreateAttributeAt(pv, "inputs:varname", sdf.String, uv, GroupShading)
	c.CreateAttributeAt(pv, "inputs:fallback", sdf.Float2, gf.Vec2f(0, 0), GroupShading)

	texName := in.Name + "_" + ident.Clean(ct.texture.Name) + "_tex"
	tex := mat.AppendChild(texName)
	c.Store.GetOrAddPrim(tex).TypeName = sdf.TypeShader
	matPrim.AddChild(texName)
	c.CreateUniformAt(tex, "info:id", sdf.TokenType, sdf.Token(UVTexture), "")
	c.CreateAttributeAt(tex, "inputs:file", sdf.Asset, sdf.AssetPath{Path: c.texturePath(ct.texture)}, GroupShading)
	c.CreateAttributeAt(tex, "inputs:fallback", sdf.Float4, gf.Vec4f(1, 0, 0, 1), GroupShading)

	c.Connect(pv.AppendProperty("outputs:result"), tex.AppendProperty("inputs:st"), sdf.Float2)
	outType := sdf.Float3
	if in.Output == "r" {
		outType = sdf.Float
	}
	c.Connect(tex.AppendProperty("outputs:"+in.Output), surf.AppendProperty("inputs:"+in.Name), outType)
	if p, ok := c.Store.Property(surf.AppendProperty("inputs:" + in.Name)); ok {
		p.TypeName = in.Type
	}
}

// texturePath returns the file of a texture: its absolute file name
// when it exists, otherwise its relative file name resolved against
// the directory of the scene file when that exists.
func (c *Context) texturePath(t *fbx.Texture) string {
	if t.FileName != "" {
		if fileExists(t.FileName) {
			return t.FileName
		}
	}
	if t.RelativeFileName != "" && c.Scene.FileName != "" {
		p := filepath.Join(filepath.Dir(c.Scene.FileName), t.RelativeFileName)
		if fileExists(p) {
			return p
		}
	}
	if t.FileName != "" {
		return t.FileName
	}
	return t.RelativeFileName
}

func fileExists(path string) bool {
	fsys, name, err := fsx.DirFS(path)
	if err != nil {
		return false
	}
	ok, _ := fsx.FileExistsFS(fsys, name)
	return ok
}

func (c *Context) hasPrim(path sdf.Path) bool {
	_, ok := c.Store.Prim(path)
	return ok
}
