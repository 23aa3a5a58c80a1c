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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPassTypeFromInt32(tt *testing.T) {
	for v, want := range map[int32]PassType{0: PassTypeNormal, 1: PassTypeUse, 2: PassTypeGrab} {
		got, err := passTypeFromInt32(v)
		require.NoError(tt, err)
		require.Equal(tt, want, got)
	}
	_, err := passTypeFromInt32(99)
	require.Error(tt, err)
}

func TestFogModeFromInt32(tt *testing.T) {
	for v, want := range map[int32]FogMode{
		-1: FogModeUnknown, 0: FogModeDisabled, 1: FogModeLinear, 2: FogModeExp, 3: FogModeExp2,
	} {
		got, err := fogModeFromInt32(v)
		require.NoError(tt, err)
		require.Equal(tt, want, got)
	}
	_, err := fogModeFromInt32(4)
	require.Error(tt, err)
}

func TestGPUProgramTypeFromUint8(tt *testing.T) {
	got, err := gpuProgramTypeFromUint8(31)
	require.NoError(tt, err)
	require.Equal(tt, GPUProgramRayTracing, got)

	_, err = gpuProgramTypeFromUint8(32)
	require.Error(tt, err)
}

func TestTextureParameterMultiSampledGate(tt *testing.T) {
	var buf bytes.Buffer
	be := binary.BigEndian
	writeI32(&buf, be, 1)  // name index
	writeI32(&buf, be, 2)  // index
	writeI32(&buf, be, -1) // sampler index
	buf.WriteByte(1)       // multi_sampled (2017.3+)
	buf.WriteByte(2)       // dim
	padTo4(&buf)

	r := NewReader(buf.Bytes())
	r.SetOrder(be)
	info := &AssetInfo{Metadata: AssetMetadata{EngineVersion: EV(2017, 3, 0)}}
	tp, err := decodeTextureParameter(r, info)
	require.NoError(tt, err)
	require.NotNil(tt, tp.MultiSampled)
	require.True(tt, *tp.MultiSampled)

	// Below the gate, the field is absent from the wire format entirely:
	// re-decode the same bytes minus the bool, under an older version.
	var old bytes.Buffer
	writeI32(&old, be, 1)
	writeI32(&old, be, 2)
	writeI32(&old, be, -1)
	old.WriteByte(2) // dim
	padTo4(&old)

	r2 := NewReader(old.Bytes())
	r2.SetOrder(be)
	info2 := &AssetInfo{Metadata: AssetMetadata{EngineVersion: EV(2017, 2, 0)}}
	tp2, err := decodeTextureParameter(r2, info2)
	require.NoError(tt, err)
	require.Nil(tt, tp2.MultiSampled)
}

func TestHasPartialConstantBufferFlag(tt *testing.T) {
	require.True(tt, hasPartialConstantBufferFlag(EV(2021, 1, 4)))
	require.True(tt, hasPartialConstantBufferFlag(EV(2021, 2, 0)))
	require.True(tt, hasPartialConstantBufferFlag(EV(2020, 3, 2)))
	require.False(tt, hasPartialConstantBufferFlag(EV(2020, 3, 1)))
	require.False(tt, hasPartialConstantBufferFlag(EV(2021, 1, 3)))
	require.False(tt, hasPartialConstantBufferFlag(EV(2019, 4, 0)))
}

func TestDecodeShaderMinimal(tt *testing.T) {
	var buf bytes.Buffer
	be := binary.BigEndian
	writeCharArray(&buf, be, "Custom/Minimal")
	writeI32(&buf, be, 0) // zero properties
	writeI32(&buf, be, 0) // zero sub-shaders

	r := NewReader(buf.Bytes())
	r.SetOrder(be)
	info := &AssetInfo{Metadata: AssetMetadata{EngineVersion: EV(2019, 2, 17)}}
	sh, err := DecodeShader(r, info)
	require.NoError(tt, err)
	require.Equal(tt, "Custom/Minimal", sh.Name)
	require.Empty(tt, sh.Properties)
	require.Empty(tt, sh.SubShaders)
}
