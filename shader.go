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

import "fmt"

// ErrKeywordNamesUnsupported marks the one block this package cannot
// decode: the shader keyword-name table that, in every Unity build this
// package has been checked against, follows a shader's sub-shaders. Its
// layout was never finalized in any source this package was grounded
// against -- decoding it as "the next array of char-arrays" risks silently
// misaligning every byte that follows, which is worse than stopping. Shader
// decoding therefore ends after sub-shaders; this error exists so a future
// contributor who does pin down the layout has somewhere to wire it in.
var ErrKeywordNamesUnsupported = fmt.Errorf("unityassets: shader keyword-name table is not decoded")

// TextureProperty is a shader property's default texture binding.
type TextureProperty struct {
	Name      string
	Dimension uint32
}

func decodeTextureProperty(r *Reader, _ *AssetInfo) (TextureProperty, error) {
	name, err := r.ReadCharArray()
	if err != nil {
		return TextureProperty{}, err
	}
	dimension, err := r.ReadU32()
	if err != nil {
		return TextureProperty{}, err
	}
	return TextureProperty{Name: name, Dimension: dimension}, nil
}

// Property is one entry of a Shader's property block (the "Properties {}"
// ShaderLab section).
type Property struct {
	Name        string
	Description string
	Attributes  []string
	PropType    uint32
	Flags       uint32
	DefValue    [4]float32
	DefTexture  TextureProperty
}

func decodeProperty(r *Reader, info *AssetInfo) (Property, error) {
	name, err := r.ReadCharArray()
	if err != nil {
		return Property{}, err
	}
	description, err := r.ReadCharArray()
	if err != nil {
		return Property{}, err
	}
	attributes, err := DecodeArray(r, info, decodeCharArray)
	if err != nil {
		return Property{}, err
	}
	propType, err := r.ReadU32()
	if err != nil {
		return Property{}, err
	}
	flags, err := r.ReadU32()
	if err != nil {
		return Property{}, err
	}
	var defValue [4]float32
	for i := range defValue {
		v, err := r.ReadF32()
		if err != nil {
			return Property{}, err
		}
		defValue[i] = v
	}
	defTexture, err := decodeTextureProperty(r, info)
	if err != nil {
		return Property{}, err
	}
	return Property{
		Name:        name,
		Description: description,
		Attributes:  attributes,
		PropType:    propType,
		Flags:       flags,
		DefValue:    defValue,
		DefTexture:  defTexture,
	}, nil
}

// PassType distinguishes a normal pass from a fixed-function Use/Grab pass.
type PassType int32

const (
	PassTypeNormal PassType = 0
	PassTypeUse    PassType = 1
	PassTypeGrab   PassType = 2
)

func passTypeFromInt32(v int32) (PassType, error) {
	switch v {
	case 0, 1, 2:
		return PassType(v), nil
	default:
		return 0, &DeserializationError{Message: fmt.Sprintf("unrecognized pass type %d", v)}
	}
}

// FloatValue is a shader state scalar: its resolved value plus the name of
// the ShaderLab property it was bound to, if any.
type FloatValue struct {
	Val  float32
	Name string
}

func decodeFloatValue(r *Reader, _ *AssetInfo) (FloatValue, error) {
	val, err := r.ReadF32()
	if err != nil {
		return FloatValue{}, err
	}
	name, err := r.ReadCharArray()
	if err != nil {
		return FloatValue{}, err
	}
	return FloatValue{Val: val, Name: name}, nil
}

// VectorValue is a four-component shader state vector, each component
// independently bindable to a property the way FloatValue is.
type VectorValue struct {
	X, Y, Z, W FloatValue
	Name       string
}

func decodeVectorValue(r *Reader, info *AssetInfo) (VectorValue, error) {
	x, err := decodeFloatValue(r, info)
	if err != nil {
		return VectorValue{}, err
	}
	y, err := decodeFloatValue(r, info)
	if err != nil {
		return VectorValue{}, err
	}
	z, err := decodeFloatValue(r, info)
	if err != nil {
		return VectorValue{}, err
	}
	w, err := decodeFloatValue(r, info)
	if err != nil {
		return VectorValue{}, err
	}
	name, err := r.ReadCharArray()
	if err != nil {
		return VectorValue{}, err
	}
	return VectorValue{X: x, Y: y, Z: z, W: w, Name: name}, nil
}

// RTBlendState is one render target's blend configuration.
type RTBlendState struct {
	SrcBlend      FloatValue
	DestBlend     FloatValue
	SrcBlendAlpha FloatValue
	DestBlendAlpha FloatValue
	BlendOp       FloatValue
	BlendOpAlpha  FloatValue
	ColMask       FloatValue
}

func decodeRTBlendState(r *Reader, info *AssetInfo) (RTBlendState, error) {
	var s RTBlendState
	var err error
	if s.SrcBlend, err = decodeFloatValue(r, info); err != nil {
		return RTBlendState{}, err
	}
	if s.DestBlend, err = decodeFloatValue(r, info); err != nil {
		return RTBlendState{}, err
	}
	if s.SrcBlendAlpha, err = decodeFloatValue(r, info); err != nil {
		return RTBlendState{}, err
	}
	if s.DestBlendAlpha, err = decodeFloatValue(r, info); err != nil {
		return RTBlendState{}, err
	}
	if s.BlendOp, err = decodeFloatValue(r, info); err != nil {
		return RTBlendState{}, err
	}
	if s.BlendOpAlpha, err = decodeFloatValue(r, info); err != nil {
		return RTBlendState{}, err
	}
	if s.ColMask, err = decodeFloatValue(r, info); err != nil {
		return RTBlendState{}, err
	}
	return s, nil
}

// StencilOp is the stencil comparison/write configuration for one facing
// direction (or the unified setting, for state.StencilOp).
type StencilOp struct {
	Pass  FloatValue
	Fail  FloatValue
	ZFail FloatValue
	Comp  FloatValue
}

func decodeStencilOp(r *Reader, info *AssetInfo) (StencilOp, error) {
	var s StencilOp
	var err error
	if s.Pass, err = decodeFloatValue(r, info); err != nil {
		return StencilOp{}, err
	}
	if s.Fail, err = decodeFloatValue(r, info); err != nil {
		return StencilOp{}, err
	}
	if s.ZFail, err = decodeFloatValue(r, info); err != nil {
		return StencilOp{}, err
	}
	if s.Comp, err = decodeFloatValue(r, info); err != nil {
		return StencilOp{}, err
	}
	return s, nil
}

// FogMode mirrors UnityEngine.FogMode, plus the sentinel Unknown (-1) that
// appears in serialized data when fog was never configured.
type FogMode int32

const (
	FogModeUnknown  FogMode = -1
	FogModeDisabled FogMode = 0
	FogModeLinear   FogMode = 1
	FogModeExp      FogMode = 2
	FogModeExp2     FogMode = 3
)

func fogModeFromInt32(v int32) (FogMode, error) {
	switch v {
	case -1, 0, 1, 2, 3:
		return FogMode(v), nil
	default:
		return 0, &DeserializationError{Message: fmt.Sprintf("unrecognized fog mode %d", v)}
	}
}

// ShaderState is a pass's fixed-function render state: blending, depth and
// stencil tests, culling, fog, and the tag map and LOD governing variant
// selection.
type ShaderState struct {
	Name            string
	RTBlend         [8]RTBlendState
	RTSeparateBlend bool
	ZClip           *FloatValue
	ZTest           FloatValue
	ZWrite          FloatValue
	Culling         FloatValue
	Conservative    *FloatValue
	OffsetFactor    FloatValue
	OffsetUnits     FloatValue
	AlphaToMask     FloatValue
	StencilOp       StencilOp
	StencilOpFront  StencilOp
	StencilOpBack   StencilOp
	StencilReadMask  FloatValue
	StencilWriteMask FloatValue
	StencilRef       FloatValue
	FogStart   FloatValue
	FogEnd     FloatValue
	FogDensity FloatValue
	FogColor   VectorValue
	FogMode    FogMode
	GPUProgramID int32
	Tags         OMap[string, string]
	LOD          int32
	Lighting     bool
}

func decodeShaderState(r *Reader, info *AssetInfo) (ShaderState, error) {
	var s ShaderState
	var err error

	if s.Name, err = r.ReadCharArray(); err != nil {
		return ShaderState{}, err
	}
	for i := range s.RTBlend {
		if s.RTBlend[i], err = decodeRTBlendState(r, info); err != nil {
			return ShaderState{}, err
		}
	}
	if s.RTSeparateBlend, err = r.ReadBool(); err != nil {
		return ShaderState{}, err
	}
	if err = r.Align(); err != nil {
		return ShaderState{}, err
	}

	if info.Metadata.EngineVersion.AtLeast(EV(2017, 2, 0)) {
		v, err := decodeFloatValue(r, info)
		if err != nil {
			return ShaderState{}, err
		}
		s.ZClip = &v
	}

	if s.ZTest, err = decodeFloatValue(r, info); err != nil {
		return ShaderState{}, err
	}
	if s.ZWrite, err = decodeFloatValue(r, info); err != nil {
		return ShaderState{}, err
	}
	if s.Culling, err = decodeFloatValue(r, info); err != nil {
		return ShaderState{}, err
	}

	if info.Metadata.EngineVersion.AtLeast(EV(2020, 0, 0)) {
		v, err := decodeFloatValue(r, info)
		if err != nil {
			return ShaderState{}, err
		}
		s.Conservative = &v
	}

	if s.OffsetFactor, err = decodeFloatValue(r, info); err != nil {
		return ShaderState{}, err
	}
	if s.OffsetUnits, err = decodeFloatValue(r, info); err != nil {
		return ShaderState{}, err
	}
	if s.AlphaToMask, err = decodeFloatValue(r, info); err != nil {
		return ShaderState{}, err
	}
	if s.StencilOp, err = decodeStencilOp(r, info); err != nil {
		return ShaderState{}, err
	}
	if s.StencilOpFront, err = decodeStencilOp(r, info); err != nil {
		return ShaderState{}, err
	}
	if s.StencilOpBack, err = decodeStencilOp(r, info); err != nil {
		return ShaderState{}, err
	}
	if s.StencilReadMask, err = decodeFloatValue(r, info); err != nil {
		return ShaderState{}, err
	}
	if s.StencilWriteMask, err = decodeFloatValue(r, info); err != nil {
		return ShaderState{}, err
	}
	if s.StencilRef, err = decodeFloatValue(r, info); err != nil {
		return ShaderState{}, err
	}
	if s.FogStart, err = decodeFloatValue(r, info); err != nil {
		return ShaderState{}, err
	}
	if s.FogEnd, err = decodeFloatValue(r, info); err != nil {
		return ShaderState{}, err
	}
	if s.FogDensity, err = decodeFloatValue(r, info); err != nil {
		return ShaderState{}, err
	}
	if s.FogColor, err = decodeVectorValue(r, info); err != nil {
		return ShaderState{}, err
	}

	fogModeRaw, err := r.ReadI32()
	if err != nil {
		return ShaderState{}, err
	}
	if s.FogMode, err = fogModeFromInt32(fogModeRaw); err != nil {
		return ShaderState{}, err
	}

	if s.GPUProgramID, err = r.ReadI32(); err != nil {
		return ShaderState{}, err
	}
	if s.Tags, err = decodeStringTagMap(r, info); err != nil {
		return ShaderState{}, err
	}
	if s.LOD, err = r.ReadI32(); err != nil {
		return ShaderState{}, err
	}
	if s.Lighting, err = r.ReadBool(); err != nil {
		return ShaderState{}, err
	}
	if err = r.Align(); err != nil {
		return ShaderState{}, err
	}

	return s, nil
}

// BindChannel maps one vertex-data source to its shader bind target.
type BindChannel struct {
	Source uint8
	Target uint8
}

func decodeBindChannel(r *Reader, _ *AssetInfo) (BindChannel, error) {
	source, err := r.ReadU8()
	if err != nil {
		return BindChannel{}, err
	}
	target, err := r.ReadU8()
	if err != nil {
		return BindChannel{}, err
	}
	return BindChannel{Source: source, Target: target}, nil
}

// ParserBindChannels is a sub-program's full vertex-channel binding table.
type ParserBindChannels struct {
	Channels  []BindChannel
	SourceMap uint32
}

func decodeParserBindChannels(r *Reader, info *AssetInfo) (ParserBindChannels, error) {
	channels, err := DecodeArray(r, info, decodeBindChannel)
	if err != nil {
		return ParserBindChannels{}, err
	}
	sourceMap, err := r.ReadU32()
	if err != nil {
		return ParserBindChannels{}, err
	}
	return ParserBindChannels{Channels: channels, SourceMap: sourceMap}, nil
}

// GPUProgramType identifies the compiled program's target shading language
// and platform.
type GPUProgramType uint8

const (
	GPUProgramUnknown GPUProgramType = iota
	GPUProgramGLLegacy
	GPUProgramGLES31AEP
	GPUProgramGLES31
	GPUProgramGLES3
	GPUProgramGLES
	GPUProgramGLCore32
	GPUProgramGLCore41
	GPUProgramGLCore43
	GPUProgramDX9VertexSM20
	GPUProgramDX9VertexSM30
	GPUProgramDX9PixelSM20
	GPUProgramDX9PixelSM30
	GPUProgramDX10Level9Vertex
	GPUProgramDX10Level9Pixel
	GPUProgramDX11VertexSM40
	GPUProgramDX11VertexSM50
	GPUProgramDX11PixelSM40
	GPUProgramDX11PixelSM50
	GPUProgramDX11GeometrySM40
	GPUProgramDX11GeometrySM50
	GPUProgramDX11HullSM50
	GPUProgramDX11DomainSM50
	GPUProgramMetalVS
	GPUProgramMetalFS
	GPUProgramSPIRV
	GPUProgramConsoleVS
	GPUProgramConsoleFS
	GPUProgramConsoleHS
	GPUProgramConsoleDS
	GPUProgramConsoleGS
	GPUProgramRayTracing
)

func gpuProgramTypeFromUint8(v uint8) (GPUProgramType, error) {
	if v > uint8(GPUProgramRayTracing) {
		return 0, &DeserializationError{Message: fmt.Sprintf("unrecognized GPU program type %d", v)}
	}
	return GPUProgramType(v), nil
}

// VectorParameter binds a vector-typed uniform to a constant buffer slot.
type VectorParameter struct {
	NameIndex int32
	Index     int32
	ArraySize int32
	Typ       uint8
	Dim       uint8
}

func decodeVectorParameter(r *Reader, _ *AssetInfo) (VectorParameter, error) {
	nameIndex, err := r.ReadI32()
	if err != nil {
		return VectorParameter{}, err
	}
	index, err := r.ReadI32()
	if err != nil {
		return VectorParameter{}, err
	}
	arraySize, err := r.ReadI32()
	if err != nil {
		return VectorParameter{}, err
	}
	typ, err := r.ReadU8()
	if err != nil {
		return VectorParameter{}, err
	}
	dim, err := r.ReadU8()
	if err != nil {
		return VectorParameter{}, err
	}
	if err := r.Align(); err != nil {
		return VectorParameter{}, err
	}
	return VectorParameter{NameIndex: nameIndex, Index: index, ArraySize: arraySize, Typ: typ, Dim: dim}, nil
}

// MatrixParameter binds a matrix-typed uniform to a constant buffer slot.
type MatrixParameter struct {
	NameIndex int32
	Index     int32
	ArraySize int32
	Typ       uint8
	RowCount  uint8
}

func decodeMatrixParameter(r *Reader, _ *AssetInfo) (MatrixParameter, error) {
	nameIndex, err := r.ReadI32()
	if err != nil {
		return MatrixParameter{}, err
	}
	index, err := r.ReadI32()
	if err != nil {
		return MatrixParameter{}, err
	}
	arraySize, err := r.ReadI32()
	if err != nil {
		return MatrixParameter{}, err
	}
	typ, err := r.ReadU8()
	if err != nil {
		return MatrixParameter{}, err
	}
	rowCount, err := r.ReadU8()
	if err != nil {
		return MatrixParameter{}, err
	}
	if err := r.Align(); err != nil {
		return MatrixParameter{}, err
	}
	return MatrixParameter{NameIndex: nameIndex, Index: index, ArraySize: arraySize, Typ: typ, RowCount: rowCount}, nil
}

// TextureParameter binds a texture and its sampler to a program slot.
type TextureParameter struct {
	NameIndex     int32
	Index         int32
	SamplerIndex  int32
	MultiSampled  *bool
	Dim           uint8
}

func decodeTextureParameter(r *Reader, info *AssetInfo) (TextureParameter, error) {
	nameIndex, err := r.ReadI32()
	if err != nil {
		return TextureParameter{}, err
	}
	index, err := r.ReadI32()
	if err != nil {
		return TextureParameter{}, err
	}
	samplerIndex, err := r.ReadI32()
	if err != nil {
		return TextureParameter{}, err
	}
	var multiSampled *bool
	if info.Metadata.EngineVersion.AtLeast(EV(2017, 3, 0)) {
		v, err := r.ReadBool()
		if err != nil {
			return TextureParameter{}, err
		}
		multiSampled = &v
	}
	dim, err := r.ReadU8()
	if err != nil {
		return TextureParameter{}, err
	}
	if err := r.Align(); err != nil {
		return TextureParameter{}, err
	}
	return TextureParameter{
		NameIndex:    nameIndex,
		Index:        index,
		SamplerIndex: samplerIndex,
		MultiSampled: multiSampled,
		Dim:          dim,
	}, nil
}

// BufferBinding binds a structured or constant buffer to a program slot.
type BufferBinding struct {
	NameIndex int32
	Index     int32
	ArraySize *int32
}

func decodeBufferBinding(r *Reader, info *AssetInfo) (BufferBinding, error) {
	nameIndex, err := r.ReadI32()
	if err != nil {
		return BufferBinding{}, err
	}
	index, err := r.ReadI32()
	if err != nil {
		return BufferBinding{}, err
	}
	var arraySize *int32
	if info.Metadata.EngineVersion.AtLeast(EV(2020, 0, 0)) {
		v, err := r.ReadI32()
		if err != nil {
			return BufferBinding{}, err
		}
		arraySize = &v
	}
	return BufferBinding{NameIndex: nameIndex, Index: index, ArraySize: arraySize}, nil
}

// StructParameter describes one structured-buffer element layout.
type StructParameter struct {
	NameIndex    int32
	Index        int32
	ArraySize    int32
	StructSize   int32
	VectorParams []VectorParameter
	MatrixParams []MatrixParameter
}

func decodeStructParameter(r *Reader, info *AssetInfo) (StructParameter, error) {
	nameIndex, err := r.ReadI32()
	if err != nil {
		return StructParameter{}, err
	}
	index, err := r.ReadI32()
	if err != nil {
		return StructParameter{}, err
	}
	arraySize, err := r.ReadI32()
	if err != nil {
		return StructParameter{}, err
	}
	structSize, err := r.ReadI32()
	if err != nil {
		return StructParameter{}, err
	}
	vectorParams, err := DecodeArray(r, info, decodeVectorParameter)
	if err != nil {
		return StructParameter{}, err
	}
	matrixParams, err := DecodeArray(r, info, decodeMatrixParameter)
	if err != nil {
		return StructParameter{}, err
	}
	return StructParameter{
		NameIndex:    nameIndex,
		Index:        index,
		ArraySize:    arraySize,
		StructSize:   structSize,
		VectorParams: vectorParams,
		MatrixParams: matrixParams,
	}, nil
}

// hasPartialConstantBufferFlag reports the version gate shared by
// ConstantBuffer.IsPartialCB and Program.CommonParameters: 2021.1.4 or
// later, or any 2020.3.2-or-later patch of the 2020 cycle.
func hasPartialConstantBufferFlag(v EngineVersion) bool {
	if v.AtLeast(EV(2021, 1, 4)) {
		return true
	}
	return v.Major == 2020 && v.AtLeast(EV(2020, 3, 2))
}

// ConstantBuffer is one named constant buffer and its member layout.
type ConstantBuffer struct {
	NameIndex     int32
	MatrixParams  []MatrixParameter
	VectorParams  []VectorParameter
	StructParams  []StructParameter
	Size          int32
	IsPartialCB   *bool
}

func decodeConstantBuffer(r *Reader, info *AssetInfo) (ConstantBuffer, error) {
	nameIndex, err := r.ReadI32()
	if err != nil {
		return ConstantBuffer{}, err
	}
	matrixParams, err := DecodeArray(r, info, decodeMatrixParameter)
	if err != nil {
		return ConstantBuffer{}, err
	}
	vectorParams, err := DecodeArray(r, info, decodeVectorParameter)
	if err != nil {
		return ConstantBuffer{}, err
	}
	var structParams []StructParameter
	if info.Metadata.EngineVersion.AtLeast(EV(2017, 3, 0)) {
		structParams, err = DecodeArray(r, info, decodeStructParameter)
		if err != nil {
			return ConstantBuffer{}, err
		}
	}
	size, err := r.ReadI32()
	if err != nil {
		return ConstantBuffer{}, err
	}

	var isPartialCB *bool
	if hasPartialConstantBufferFlag(info.Metadata.EngineVersion) {
		v, err := r.ReadBool()
		if err != nil {
			return ConstantBuffer{}, err
		}
		if err := r.Align(); err != nil {
			return ConstantBuffer{}, err
		}
		isPartialCB = &v
	}

	return ConstantBuffer{
		NameIndex:    nameIndex,
		MatrixParams: matrixParams,
		VectorParams: vectorParams,
		StructParams: structParams,
		Size:         size,
		IsPartialCB:  isPartialCB,
	}, nil
}

// UAVParameter binds an unordered-access view to a program slot.
type UAVParameter struct {
	NameIndex     int32
	Index         int32
	OriginalIndex int32
}

func decodeUAVParameter(r *Reader, _ *AssetInfo) (UAVParameter, error) {
	nameIndex, err := r.ReadI32()
	if err != nil {
		return UAVParameter{}, err
	}
	index, err := r.ReadI32()
	if err != nil {
		return UAVParameter{}, err
	}
	originalIndex, err := r.ReadI32()
	if err != nil {
		return UAVParameter{}, err
	}
	return UAVParameter{NameIndex: nameIndex, Index: index, OriginalIndex: originalIndex}, nil
}

// SamplerParameter binds a sampler state to a program slot.
type SamplerParameter struct {
	Sampler   uint32
	BindPoint int32
}

func decodeSamplerParameter(r *Reader, _ *AssetInfo) (SamplerParameter, error) {
	sampler, err := r.ReadU32()
	if err != nil {
		return SamplerParameter{}, err
	}
	bindPoint, err := r.ReadI32()
	if err != nil {
		return SamplerParameter{}, err
	}
	return SamplerParameter{Sampler: sampler, BindPoint: bindPoint}, nil
}

// ProgramParameters is the full set of resource bindings a compiled program
// (or a pass's shared/common parameters) declares.
type ProgramParameters struct {
	VectorParams           []VectorParameter
	MatrixParams           []MatrixParameter
	TextureParams          []TextureParameter
	BufferParams           []BufferBinding
	ConstantBuffers        []ConstantBuffer
	ConstantBufferBindings []BufferBinding
	UAVParams              []UAVParameter
	Samplers               []SamplerParameter
}

func decodeProgramParameters(r *Reader, info *AssetInfo) (ProgramParameters, error) {
	vectorParams, err := DecodeArray(r, info, decodeVectorParameter)
	if err != nil {
		return ProgramParameters{}, err
	}
	matrixParams, err := DecodeArray(r, info, decodeMatrixParameter)
	if err != nil {
		return ProgramParameters{}, err
	}
	textureParams, err := DecodeArray(r, info, decodeTextureParameter)
	if err != nil {
		return ProgramParameters{}, err
	}
	bufferParams, err := DecodeArray(r, info, decodeBufferBinding)
	if err != nil {
		return ProgramParameters{}, err
	}
	constantBuffers, err := DecodeArray(r, info, decodeConstantBuffer)
	if err != nil {
		return ProgramParameters{}, err
	}
	constantBufferBindings, err := DecodeArray(r, info, decodeBufferBinding)
	if err != nil {
		return ProgramParameters{}, err
	}
	uavParams, err := DecodeArray(r, info, decodeUAVParameter)
	if err != nil {
		return ProgramParameters{}, err
	}
	var samplers []SamplerParameter
	if info.Metadata.EngineVersion.AtLeast(EV(2017, 0, 0)) {
		samplers, err = DecodeArray(r, info, decodeSamplerParameter)
		if err != nil {
			return ProgramParameters{}, err
		}
	}
	return ProgramParameters{
		VectorParams:           vectorParams,
		MatrixParams:           matrixParams,
		TextureParams:          textureParams,
		BufferParams:           bufferParams,
		ConstantBuffers:        constantBuffers,
		ConstantBufferBindings: constantBufferBindings,
		UAVParams:              uavParams,
		Samplers:               samplers,
	}, nil
}

// SubProgram is one compiled variant of a program: its vertex-channel
// binding, active keyword set, target platform, and resource layout.
type SubProgram struct {
	BlobIndex             uint32
	Channels              ParserBindChannels
	GlobalKeywordIndices  []uint16
	LocalKeywordIndices   []uint16
	KeywordIndices        []uint16
	ShaderHardwareTier    uint8
	GPUProgramType        GPUProgramType
	Parameters            ProgramParameters
	ShaderRequirements    *int64
}

func decodeSubProgram(r *Reader, info *AssetInfo) (SubProgram, error) {
	version := info.Metadata.EngineVersion

	blobIndex, err := r.ReadU32()
	if err != nil {
		return SubProgram{}, err
	}
	channels, err := decodeParserBindChannels(r, info)
	if err != nil {
		return SubProgram{}, err
	}

	var global, local, combined []uint16
	if version.AtLeast(EV(2019, 0, 0)) && version.Less(EV(2021, 2, 0)) {
		global, err = r.ReadU16Array()
		if err != nil {
			return SubProgram{}, err
		}
		if err := r.Align(); err != nil {
			return SubProgram{}, err
		}
		local, err = r.ReadU16Array()
		if err != nil {
			return SubProgram{}, err
		}
		if err := r.Align(); err != nil {
			return SubProgram{}, err
		}
	} else {
		combined, err = r.ReadU16Array()
		if err != nil {
			return SubProgram{}, err
		}
		if version.AtLeast(EV(2017, 0, 0)) {
			if err := r.Align(); err != nil {
				return SubProgram{}, err
			}
		}
	}

	shaderHardwareTier, err := r.ReadU8()
	if err != nil {
		return SubProgram{}, err
	}
	gpuProgramTypeRaw, err := r.ReadU8()
	if err != nil {
		return SubProgram{}, err
	}
	gpuProgramType, err := gpuProgramTypeFromUint8(gpuProgramTypeRaw)
	if err != nil {
		return SubProgram{}, err
	}
	if err := r.Align(); err != nil {
		return SubProgram{}, err
	}

	parameters, err := decodeProgramParameters(r, info)
	if err != nil {
		return SubProgram{}, err
	}

	var shaderRequirements *int64
	if version.AtLeast(EV(2017, 2, 0)) {
		var v int64
		if version.AtLeast(EV(2021, 0, 0)) {
			v, err = r.ReadI64()
		} else {
			var v32 int32
			v32, err = r.ReadI32()
			v = int64(v32)
		}
		if err != nil {
			return SubProgram{}, err
		}
		shaderRequirements = &v
	}

	return SubProgram{
		BlobIndex:            blobIndex,
		Channels:             channels,
		GlobalKeywordIndices: global,
		LocalKeywordIndices:  local,
		KeywordIndices:       combined,
		ShaderHardwareTier:   shaderHardwareTier,
		GPUProgramType:       gpuProgramType,
		Parameters:           parameters,
		ShaderRequirements:   shaderRequirements,
	}, nil
}

// Program is one shader stage's full set of compiled variants, plus the
// resource parameters shared across all of them on engine versions that
// serialize a common set.
type Program struct {
	SubPrograms       []SubProgram
	CommonParameters *ProgramParameters
}

func decodeProgram(r *Reader, info *AssetInfo) (Program, error) {
	subPrograms, err := DecodeArray(r, info, decodeSubProgram)
	if err != nil {
		return Program{}, err
	}
	var common *ProgramParameters
	if hasPartialConstantBufferFlag(info.Metadata.EngineVersion) {
		p, err := decodeProgramParameters(r, info)
		if err != nil {
			return Program{}, err
		}
		common = &p
	}
	return Program{SubPrograms: subPrograms, CommonParameters: common}, nil
}

func decodeHash128(r *Reader, _ *AssetInfo) ([16]byte, error) {
	return r.ReadHash128()
}

// Pass is one rendering pass of a sub-shader: its fixed-function state, its
// per-stage compiled programs, and the tags/name it is selected by.
type Pass struct {
	NameIndices                    OMap[string, int32]
	Type                           PassType
	State                          ShaderState
	ProgramMask                    uint32
	ProgVertex                     Program
	ProgFragment                   Program
	ProgGeometry                   Program
	ProgHull                       Program
	ProgDomain                     Program
	ProgRayTracing                 *Program
	HasInstancingVariant           bool
	HasProceduralInstancingVariant *bool
	UseName                        string
	Name                           string
	TextureName                   string
	Tags                           OMap[string, string]
	SerializedKeywordStateMask     []uint16
}

func decodeNameIndexEntry(r *Reader, _ *AssetInfo) (int32, error) { return r.ReadI32() }

func decodePass(r *Reader, info *AssetInfo) (Pass, error) {
	version := info.Metadata.EngineVersion

	if version.AtLeast(EV(2020, 2, 0)) {
		if _, err := DecodeArray(r, info, decodeHash128); err != nil { // editor data hash, discarded
			return Pass{}, err
		}
		if _, err := r.ReadByteArray(); err != nil { // platforms, discarded
			return Pass{}, err
		}
		if err := r.Align(); err != nil {
			return Pass{}, err
		}
		if version.Less(EV(2021, 2, 0)) {
			if _, err := r.ReadU16Array(); err != nil { // local keyword mask, discarded
				return Pass{}, err
			}
			if err := r.Align(); err != nil {
				return Pass{}, err
			}
			if _, err := r.ReadU16Array(); err != nil { // global keyword mask, discarded
				return Pass{}, err
			}
			if err := r.Align(); err != nil {
				return Pass{}, err
			}
		}
	}

	nameIndices, err := decodeOMap(r, info, decodeCharArray, decodeNameIndexEntry)
	if err != nil {
		return Pass{}, err
	}

	passTypeRaw, err := r.ReadI32()
	if err != nil {
		return Pass{}, err
	}
	passType, err := passTypeFromInt32(passTypeRaw)
	if err != nil {
		return Pass{}, err
	}

	state, err := decodeShaderState(r, info)
	if err != nil {
		return Pass{}, err
	}

	programMask, err := r.ReadU32()
	if err != nil {
		return Pass{}, err
	}

	progVertex, err := decodeProgram(r, info)
	if err != nil {
		return Pass{}, err
	}
	progFragment, err := decodeProgram(r, info)
	if err != nil {
		return Pass{}, err
	}
	progGeometry, err := decodeProgram(r, info)
	if err != nil {
		return Pass{}, err
	}
	progHull, err := decodeProgram(r, info)
	if err != nil {
		return Pass{}, err
	}
	progDomain, err := decodeProgram(r, info)
	if err != nil {
		return Pass{}, err
	}

	var progRayTracing *Program
	if version.AtLeast(EV(2019, 3, 0)) {
		p, err := decodeProgram(r, info)
		if err != nil {
			return Pass{}, err
		}
		progRayTracing = &p
	}

	hasInstancingVariant, err := r.ReadBool()
	if err != nil {
		return Pass{}, err
	}
	var hasProceduralInstancingVariant *bool
	if version.AtLeast(EV(2018, 0, 0)) {
		v, err := r.ReadBool()
		if err != nil {
			return Pass{}, err
		}
		hasProceduralInstancingVariant = &v
	}
	if err := r.Align(); err != nil {
		return Pass{}, err
	}

	useName, err := r.ReadCharArray()
	if err != nil {
		return Pass{}, err
	}
	name, err := r.ReadCharArray()
	if err != nil {
		return Pass{}, err
	}
	textureName, err := r.ReadCharArray()
	if err != nil {
		return Pass{}, err
	}
	tags, err := decodeStringTagMap(r, info)
	if err != nil {
		return Pass{}, err
	}

	var serializedKeywordStateMask []uint16
	if version.AtLeast(EV(2021, 2, 0)) {
		serializedKeywordStateMask, err = r.ReadU16Array()
		if err != nil {
			return Pass{}, err
		}
		if err := r.Align(); err != nil {
			return Pass{}, err
		}
	}

	return Pass{
		NameIndices:                    nameIndices,
		Type:                           passType,
		State:                          state,
		ProgramMask:                    programMask,
		ProgVertex:                     progVertex,
		ProgFragment:                   progFragment,
		ProgGeometry:                   progGeometry,
		ProgHull:                       progHull,
		ProgDomain:                     progDomain,
		ProgRayTracing:                 progRayTracing,
		HasInstancingVariant:           hasInstancingVariant,
		HasProceduralInstancingVariant: hasProceduralInstancingVariant,
		UseName:                        useName,
		Name:                           name,
		TextureName:                   textureName,
		Tags:                           tags,
		SerializedKeywordStateMask:     serializedKeywordStateMask,
	}, nil
}

// SubShader is one fallback tier of a Shader: its ordered passes, its tag
// map, and its LOD threshold.
type SubShader struct {
	Passes []Pass
	Tags   OMap[string, string]
	LOD    int32
}

func decodeSubShader(r *Reader, info *AssetInfo) (SubShader, error) {
	passes, err := DecodeArray(r, info, decodePass)
	if err != nil {
		return SubShader{}, err
	}
	tags, err := decodeStringTagMap(r, info)
	if err != nil {
		return SubShader{}, err
	}
	lod, err := r.ReadI32()
	if err != nil {
		return SubShader{}, err
	}
	return SubShader{Passes: passes, Tags: tags, LOD: lod}, nil
}

// Shader is a decoded Unity Shader object (class id 48): its name,
// ShaderLab properties, and ordered sub-shaders.
type Shader struct {
	Name       string
	Properties []Property
	SubShaders []SubShader
}

// DecodeShader decodes a Shader object. It stops after sub-shaders; see
// ErrKeywordNamesUnsupported for why the trailing keyword-name table is not
// read.
func DecodeShader(r *Reader, info *AssetInfo) (Shader, error) {
	name, err := r.ReadCharArray()
	if err != nil {
		return Shader{}, err
	}
	properties, err := DecodeArray(r, info, decodeProperty)
	if err != nil {
		return Shader{}, err
	}
	subShaders, err := DecodeArray(r, info, decodeSubShader)
	if err != nil {
		return Shader{}, err
	}
	return Shader{Name: name, Properties: properties, SubShaders: subShaders}, nil
}
