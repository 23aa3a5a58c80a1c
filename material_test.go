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

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeCharArray(buf *bytes.Buffer, order binary.ByteOrder, s string) {
	writeU32(buf, order, uint32(len(s)))
	buf.WriteString(s)
	padTo4(buf)
}

// buildMaterialFixture assembles a minimal Material payload: a name, a
// shader PPtr, no keywords, discard-only editor state, an empty tag map and
// disabled-pass list, and one float property.
func buildMaterialFixture() []byte {
	var buf bytes.Buffer
	be := binary.BigEndian

	writeCharArray(&buf, be, "TestMaterial")
	writeI32(&buf, be, 0)      // shader.FileID
	writeI64(&buf, be, 5555)   // shader.PathID
	writeCharArray(&buf, be, "") // keywords

	writeU32(&buf, be, 0) // lightmap flags
	buf.WriteByte(0)      // enable instancing variants
	buf.WriteByte(0)      // double sided gi
	padTo4(&buf)

	writeI32(&buf, be, -1) // custom render queue

	writeI32(&buf, be, 0) // string tag map count

	writeI32(&buf, be, 0) // disabled shader passes count

	// saved properties: tex_envs=0, floats=1 ("_Glossiness"=0.5), colors=0
	writeI32(&buf, be, 0)
	writeI32(&buf, be, 1)
	writeCharArray(&buf, be, "_Glossiness")
	var f [4]byte
	be.PutUint32(f[:], math.Float32bits(0.5))
	buf.Write(f[:])
	writeI32(&buf, be, 0)

	return buf.Bytes()
}

func TestDecodeMaterial(tt *testing.T) {
	info := &AssetInfo{Metadata: AssetMetadata{EngineVersion: EV(2019, 2, 17)}}
	r := NewReader(buildMaterialFixture())
	r.SetOrder(binary.BigEndian)

	m, err := DecodeMaterial(r, info)
	require.NoError(tt, err)
	require.Equal(tt, "TestMaterial", m.Name)
	require.Equal(tt, PPtr{FileID: 0, PathID: 5555}, m.Shader)
	require.Equal(tt, "", m.ShaderKeywords)

	v, ok := m.SavedProperties.Float("_Glossiness")
	require.True(tt, ok)
	require.InDelta(tt, 0.5, v, 0.0001)
	require.Equal(tt, 0, m.SavedProperties.TexEnvCount())
	require.Equal(tt, 0, m.SavedProperties.ColorCount())
}
