// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fbx

import "strings"

// ShadingClass is the lighting model class of a material.
type ShadingClass int32

const (
	ShadingSurface ShadingClass = iota
	ShadingLambert
	ShadingPhong
)

// shadingClass returns the class for an FBX shading model name.
func shadingClass(model string) ShadingClass {
	switch strings.ToLower(model) {
	case "phong":
		return ShadingPhong
	case "lambert":
		return ShadingLambert
	}
	return ShadingSurface
}

// TextureChannels are the material properties that can hold textures,
// in the order they are visited.
var TextureChannels = []string{
	"DiffuseColor", "DiffuseFactor", "EmissiveColor", "EmissiveFactor",
	"AmbientColor", "AmbientFactor", "SpecularColor", "SpecularFactor",
	"ShininessExponent", "NormalMap", "Bump", "TransparentColor",
	"TransparencyFactor", "ReflectionColor", "ReflectionFactor",
	"DisplacementColor", "VectorDisplacementColor",
}

// HardwareShaderLanguages are the shading languages of hardware shader
// implementations.
var HardwareShaderLanguages = []string{"CGFX", "HLSL", "SFX", "OGS"}

// Material is a surface material.
type Material struct {
	Object

	ShadingModel string

	Class ShadingClass

	// HardwareShader is the shading language of a hardware shader
	// implementation, empty for regular materials.
	HardwareShader string

	// Textures are the textures connected to material properties.
	Textures []*MaterialTexture
}

// MaterialTexture is a texture connected to a material property.
type MaterialTexture struct {
	Channel string

	Texture *Texture
}

// ChannelTextures returns the textures connected to the channel.
func (m *Material) ChannelTextures(channel string) []*Texture {
	var out []*Texture
	for _, mt := range m.Textures {
		if mt.Channel == channel {
			out = append(out, mt.Texture)
		}
	}
	return out
}

// Texture is a file texture, or a layered texture combining others.
type Texture struct {
	Object

	FileName string

	RelativeFileName string

	// Layered marks layered textures, whose inputs are in Layers.
	Layered bool

	Layers []*Texture
}

// UVSet returns the UV set the texture is mapped with.
func (t *Texture) UVSet() string {
	return t.Properties.String("UVSet")
}
