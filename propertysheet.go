// Copyright 2019 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package unityassets

// TexEnv is one texture-environment entry of a PropertySheet: a texture
// reference plus its tiling (scale) and offset.
type TexEnv struct {
	Texture PPtr
	ScaleX  float32
	ScaleY  float32
	OffsetX float32
	OffsetY float32
}

func decodeTexEnv(r *Reader, info *AssetInfo) (TexEnv, error) {
	texture, err := DecodePPtr(r, info)
	if err != nil {
		return TexEnv{}, err
	}
	scaleX, err := r.ReadF32()
	if err != nil {
		return TexEnv{}, err
	}
	scaleY, err := r.ReadF32()
	if err != nil {
		return TexEnv{}, err
	}
	offsetX, err := r.ReadF32()
	if err != nil {
		return TexEnv{}, err
	}
	offsetY, err := r.ReadF32()
	if err != nil {
		return TexEnv{}, err
	}
	return TexEnv{Texture: texture, ScaleX: scaleX, ScaleY: scaleY, OffsetX: offsetX, OffsetY: offsetY}, nil
}

// ColorRGBA is a four-channel floating point color.
type ColorRGBA struct {
	R, G, B, A float32
}

func decodeColorRGBA(r *Reader, _ *AssetInfo) (ColorRGBA, error) {
	red, err := r.ReadF32()
	if err != nil {
		return ColorRGBA{}, err
	}
	green, err := r.ReadF32()
	if err != nil {
		return ColorRGBA{}, err
	}
	blue, err := r.ReadF32()
	if err != nil {
		return ColorRGBA{}, err
	}
	alpha, err := r.ReadF32()
	if err != nil {
		return ColorRGBA{}, err
	}
	return ColorRGBA{R: red, G: green, B: blue, A: alpha}, nil
}

func decodeFloat32(r *Reader, _ *AssetInfo) (float32, error) {
	return r.ReadF32()
}

// PropertySheet is a Material's saved shader properties: texture
// environments, scalar floats, and colors, each an ordered map keyed by
// property name.
type PropertySheet struct {
	TexEnvs OMap[string, TexEnv]
	Floats  OMap[string, float32]
	Colors  OMap[string, ColorRGBA]
}

func decodePropertySheet(r *Reader, info *AssetInfo) (PropertySheet, error) {
	texEnvs, err := decodeOMap(r, info, decodeCharArray, decodeTexEnv)
	if err != nil {
		return PropertySheet{}, err
	}
	floats, err := decodeOMap(r, info, decodeCharArray, decodeFloat32)
	if err != nil {
		return PropertySheet{}, err
	}
	colors, err := decodeOMap(r, info, decodeCharArray, decodeColorRGBA)
	if err != nil {
		return PropertySheet{}, err
	}
	return PropertySheet{TexEnvs: texEnvs, Floats: floats, Colors: colors}, nil
}

// TexEnvCount returns the number of texture-environment entries.
func (p PropertySheet) TexEnvCount() int { return p.TexEnvs.Len() }

// TexEnvName returns the name of the i'th texture-environment entry.
func (p PropertySheet) TexEnvName(i int) string { return p.TexEnvs.Keys[i] }

// TexEnvAt returns the i'th texture-environment entry.
func (p PropertySheet) TexEnvAt(i int) TexEnv { return p.TexEnvs.Vals[i] }

// Texture looks up a texture environment by property name, e.g. "_MainTex".
func (p PropertySheet) Texture(name string) (TexEnv, bool) { return p.TexEnvs.Get(name) }

// FloatCount returns the number of float entries.
func (p PropertySheet) FloatCount() int { return p.Floats.Len() }

// FloatName returns the name of the i'th float entry.
func (p PropertySheet) FloatName(i int) string { return p.Floats.Keys[i] }

// FloatAt returns the i'th float entry's value.
func (p PropertySheet) FloatAt(i int) float32 { return p.Floats.Vals[i] }

// Float looks up a scalar property by name, e.g. "_Glossiness".
func (p PropertySheet) Float(name string) (float32, bool) { return p.Floats.Get(name) }

// ColorCount returns the number of color entries.
func (p PropertySheet) ColorCount() int { return p.Colors.Len() }

// ColorName returns the name of the i'th color entry.
func (p PropertySheet) ColorName(i int) string { return p.Colors.Keys[i] }

// ColorAt returns the i'th color entry's value.
func (p PropertySheet) ColorAt(i int) ColorRGBA { return p.Colors.Vals[i] }

// Color looks up a color property by name, e.g. "_Color".
func (p PropertySheet) Color(name string) (ColorRGBA, bool) { return p.Colors.Get(name) }
