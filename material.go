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

// Material is a decoded Unity Material object (class id 21): a name, a
// reference to its shader, the set of enabled shader keywords, and the
// property values saved against that shader.
type Material struct {
	Name            string
	Shader          PPtr
	ShaderKeywords  string
	SavedProperties PropertySheet
}

// DecodeMaterial decodes a Material object. Several fields the format
// carries are read only to keep the cursor aligned and then discarded: they
// describe editor/build-time state (lightmap flags, instancing variants,
// double-sided GI, custom render queue, the string tag map, and the list of
// disabled shader passes) that no consumer of this package's Material type
// needs.
func DecodeMaterial(r *Reader, info *AssetInfo) (Material, error) {
	name, err := r.ReadCharArray()
	if err != nil {
		return Material{}, err
	}

	shader, err := DecodePPtr(r, info)
	if err != nil {
		return Material{}, err
	}

	keywords, err := r.ReadCharArray()
	if err != nil {
		return Material{}, err
	}

	if _, err := r.ReadU32(); err != nil { // m_LightmapFlags, discarded
		return Material{}, err
	}
	if _, err := r.ReadBool(); err != nil { // m_EnableInstancingVariants, discarded
		return Material{}, err
	}
	if _, err := r.ReadBool(); err != nil { // m_DoubleSidedGI, discarded
		return Material{}, err
	}
	if err := r.Align(); err != nil {
		return Material{}, err
	}

	if _, err := r.ReadI32(); err != nil { // m_CustomRenderQueue, discarded
		return Material{}, err
	}

	if _, err := decodeStringTagMap(r, info); err != nil { // m_StringTagMap, discarded
		return Material{}, err
	}
	if _, err := DecodeArray(r, info, decodeCharArray); err != nil { // disabledShaderPasses, discarded
		return Material{}, err
	}

	savedProperties, err := decodePropertySheet(r, info)
	if err != nil {
		return Material{}, err
	}

	return Material{
		Name:            name,
		Shader:          shader,
		ShaderKeywords:  keywords,
		SavedProperties: savedProperties,
	}, nil
}
