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

import "encoding/binary"

// Endianness is the byte order declared by a container's header.
type Endianness uint8

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) byteOrder() binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// ByteOrder returns the binary.ByteOrder e denotes, for callers that need to
// configure a Reader themselves (e.g. to re-seek into a container after
// ReadAssetInfo has already consumed it once).
func (e Endianness) ByteOrder() binary.ByteOrder { return e.byteOrder() }

// supportedFileVersions are the container versions this package can decode.
var supportedFileVersions = map[uint32]bool{
	17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
}

// AssetHeader is the fixed-layout prefix of a SerializedFile. FileSize and
// DataOffset are kept as 64-bit in memory regardless of whether the wire
// encoding was 32-bit (versions < 22) or 64-bit (versions >= 22); the wire
// width only matters when writing, which this package never does.
type AssetHeader struct {
	MetadataSize uint64
	FileSize     int64
	Version      uint32
	DataOffset   int64
	Endianness   Endianness
}

// SerializedType describes one entry in a container's metadata type table.
// Its type-tree payload, when present, is parsed only far enough to advance
// the cursor correctly (see readLegacyTypeTree/readBlobTypeTree) -- neither
// Material nor Shader decoding needs the tree's contents, only that the
// bytes after it are at the right offset.
type SerializedType struct {
	ClassID         int32
	IsStripped      bool
	ScriptTypeIndex int16
	ScriptGUID      *[16]byte
	OldTypeHash     *[16]byte
	HasTypeTree     bool
	TypeDependencies []uint32
	ClassName       string
	Namespace       string
	AssemblyName    string
}

// ObjectInfo describes one object in the container's index. ByteStart has
// already had the header's DataOffset added, so it is an absolute offset
// into the container buffer.
type ObjectInfo struct {
	PathID    int64
	ByteStart int64
	ByteSize  uint32
	TypeID    int32
	ClassID   int32
	Type      *SerializedType
}

// ExternalRef is one entry of the container's external-file reference
// table.
type ExternalRef struct {
	GUID [16]byte
	Type int32
	Path string
}

// ScriptTypeRef identifies a script type by its position in another
// container's serialization.
type ScriptTypeRef struct {
	LocalSerializedFileIndex int32
	LocalIdentifierInFile    int32
}

// AssetMetadata is the container's metadata block: engine version, target
// platform, and the ordered type table every object's TypeID indexes into.
type AssetMetadata struct {
	EngineVersion  EngineVersion
	TargetPlatform uint32
	EnableTypeTree bool
	Types          []SerializedType
}

// AssetInfo is the fully decoded container directory: header, metadata,
// object index, and the script/external/reference-type tables. It does not
// contain object payloads -- callers seek to an ObjectInfo's byte range and
// invoke a matching object decoder (DecodeMaterial, DecodeShader) to get
// those.
type AssetInfo struct {
	Header          AssetHeader
	Metadata        AssetMetadata
	Objects         []ObjectInfo
	ScriptTypes     []ScriptTypeRef
	Externals       []ExternalRef
	RefTypes        []SerializedType
	UserInformation string
}

// ReadAssetInfo parses a SerializedFile container from buf, running the
// header/metadata/objects/script-types/externals/ref-types/user-information
// stages in order. It fails on any container version outside {17..22}, on
// any object whose TypeID does not resolve, or on a short read anywhere in
// the directory.
func ReadAssetInfo(buf []byte) (*AssetInfo, error) {
	r := NewReader(buf)

	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	r.SetOrder(header.Endianness.byteOrder())

	metadata, err := readMetadata(r, header.Version)
	if err != nil {
		return nil, err
	}

	objects, err := readObjects(r, header, metadata)
	if err != nil {
		return nil, err
	}

	var scriptTypes []ScriptTypeRef
	if header.Version >= 11 {
		scriptTypes, err = readScriptTypes(r)
		if err != nil {
			return nil, err
		}
	}

	externals, err := readExternals(r)
	if err != nil {
		return nil, err
	}

	var refTypes []SerializedType
	if header.Version >= 20 {
		refTypes, err = readRefTypes(r, metadata, header.Version)
		if err != nil {
			return nil, err
		}
	}

	var userInformation string
	if header.Version >= 5 {
		userInformation, err = r.ReadNullTerminatedString()
		if err != nil {
			return nil, err
		}
	}

	return &AssetInfo{
		Header:          header,
		Metadata:        metadata,
		Objects:         objects,
		ScriptTypes:     scriptTypes,
		Externals:       externals,
		RefTypes:        refTypes,
		UserInformation: userInformation,
	}, nil
}

// SeekToObject positions r at the byte range of obj.
func SeekToObject(r *Reader, obj ObjectInfo) error {
	return r.Seek(obj.ByteStart)
}

// readHeader reads the fixed header prefix. Its multi-byte fields are read
// big-endian until the endianness byte is consumed; only after that does
// the header's own declared endianness apply to the rest of the file.
func readHeader(r *Reader) (AssetHeader, error) {
	r.SetOrder(binary.BigEndian)

	metadataSize, err := r.ReadU32()
	if err != nil {
		return AssetHeader{}, err
	}
	fileSize32, err := r.ReadU32()
	if err != nil {
		return AssetHeader{}, err
	}
	version, err := r.ReadU32()
	if err != nil {
		return AssetHeader{}, err
	}
	if !supportedFileVersions[version] {
		return AssetHeader{}, &UnsupportedFileVersionError{Version: version}
	}
	dataOffset32, err := r.ReadU32()
	if err != nil {
		return AssetHeader{}, err
	}
	endiannessByte, err := r.ReadU8()
	if err != nil {
		return AssetHeader{}, err
	}
	endianness := LittleEndian
	if endiannessByte != 0 {
		endianness = BigEndian
	}
	// Reserved bytes, present from version 9; every supported version
	// qualifies.
	if _, err := r.ReadBytes(3); err != nil {
		return AssetHeader{}, err
	}

	h := AssetHeader{
		MetadataSize: uint64(metadataSize),
		FileSize:     int64(fileSize32),
		Version:      version,
		DataOffset:   int64(dataOffset32),
		Endianness:   endianness,
	}

	if version >= 22 {
		metadataSize, err := r.ReadU32()
		if err != nil {
			return AssetHeader{}, err
		}
		fileSize, err := r.ReadI64()
		if err != nil {
			return AssetHeader{}, err
		}
		dataOffset, err := r.ReadI64()
		if err != nil {
			return AssetHeader{}, err
		}
		if _, err := r.ReadI64(); err != nil { // unknown, discarded
			return AssetHeader{}, err
		}
		h.MetadataSize = uint64(metadataSize)
		h.FileSize = fileSize
		h.DataOffset = dataOffset
	}

	return h, nil
}

func readMetadata(r *Reader, version uint32) (AssetMetadata, error) {
	versionStr, err := r.ReadNullTerminatedString()
	if err != nil {
		return AssetMetadata{}, err
	}
	engineVersion, err := ParseEngineVersion(versionStr)
	if err != nil {
		return AssetMetadata{}, err
	}

	targetPlatform, err := r.ReadU32()
	if err != nil {
		return AssetMetadata{}, err
	}

	enableTypeTree := true
	if version >= 13 {
		enableTypeTree, err = r.ReadBool()
		if err != nil {
			return AssetMetadata{}, err
		}
	}

	typeCount, err := r.ReadU32()
	if err != nil {
		return AssetMetadata{}, err
	}
	types := make([]SerializedType, typeCount)
	for i := range types {
		t, err := readSerializedType(r, false, enableTypeTree, version)
		if err != nil {
			return AssetMetadata{}, err
		}
		types[i] = t
	}

	return AssetMetadata{
		EngineVersion:  engineVersion,
		TargetPlatform: targetPlatform,
		EnableTypeTree: enableTypeTree,
		Types:          types,
	}, nil
}

func readSerializedType(r *Reader, isRefType bool, enableTypeTree bool, version uint32) (SerializedType, error) {
	classID, err := r.ReadI32()
	if err != nil {
		return SerializedType{}, err
	}

	isStripped := false
	if version >= 16 {
		isStripped, err = r.ReadBool()
		if err != nil {
			return SerializedType{}, err
		}
	}

	scriptTypeIndex := int16(-1)
	if version >= 17 {
		scriptTypeIndex, err = r.ReadI16()
		if err != nil {
			return SerializedType{}, err
		}
	}

	var scriptGUID *[16]byte
	if version >= 13 && ((isRefType && scriptTypeIndex >= 0) || classID < 0 || classID == 114) {
		h, err := r.ReadHash128()
		if err != nil {
			return SerializedType{}, err
		}
		scriptGUID = &h
	}

	var oldTypeHash *[16]byte
	if version >= 13 {
		h, err := r.ReadHash128()
		if err != nil {
			return SerializedType{}, err
		}
		oldTypeHash = &h
	}

	t := SerializedType{
		ClassID:         classID,
		IsStripped:      isStripped,
		ScriptTypeIndex: scriptTypeIndex,
		ScriptGUID:      scriptGUID,
		OldTypeHash:     oldTypeHash,
		HasTypeTree:     enableTypeTree,
	}

	if !enableTypeTree {
		return t, nil
	}

	if version >= 12 || version == 10 {
		if err := readBlobTypeTree(r, version); err != nil {
			return SerializedType{}, err
		}
	} else {
		if err := readLegacyTypeTree(r, version); err != nil {
			return SerializedType{}, err
		}
	}

	if version >= 21 {
		if isRefType {
			className, err := r.ReadNullTerminatedString()
			if err != nil {
				return SerializedType{}, err
			}
			namespace, err := r.ReadNullTerminatedString()
			if err != nil {
				return SerializedType{}, err
			}
			assemblyName, err := r.ReadNullTerminatedString()
			if err != nil {
				return SerializedType{}, err
			}
			t.ClassName, t.Namespace, t.AssemblyName = className, namespace, assemblyName
		} else {
			deps, err := r.ReadU32Array()
			if err != nil {
				return SerializedType{}, err
			}
			t.TypeDependencies = deps
		}
	}

	return t, nil
}

// readLegacyTypeTree consumes the recursive (pre-blob) type-tree encoding.
// Neither Material nor Shader decoding needs its contents; this function
// exists only to leave the cursor in the right place afterward.
func readLegacyTypeTree(r *Reader, version uint32) error {
	type levelCount struct {
		level     uint8
		remaining int32
	}
	stack := []levelCount{{level: 0, remaining: 1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.remaining > 1 {
			stack = append(stack, levelCount{level: top.level, remaining: top.remaining - 1})
		}

		if _, err := r.ReadNullTerminatedString(); err != nil { // type
			return err
		}
		if _, err := r.ReadNullTerminatedString(); err != nil { // name
			return err
		}
		if _, err := r.ReadI32(); err != nil { // byte_size
			return err
		}
		if version == 2 {
			if _, err := r.ReadI32(); err != nil { // variable_count
				return err
			}
		}
		if version != 3 {
			if _, err := r.ReadI32(); err != nil { // index
				return err
			}
		}
		if _, err := r.ReadI32(); err != nil { // type_flags
			return err
		}
		if _, err := r.ReadI32(); err != nil { // version
			return err
		}
		if version != 3 {
			if _, err := r.ReadI32(); err != nil { // meta_flag
				return err
			}
		}

		childrenCount, err := r.ReadI32()
		if err != nil {
			return err
		}
		if childrenCount > 0 {
			stack = append(stack, levelCount{level: top.level + 1, remaining: childrenCount})
		}
	}
	return nil
}

// readBlobTypeTree consumes the flat blob type-tree encoding used by
// container versions 12+ (and the historical outlier, 10).
func readBlobTypeTree(r *Reader, version uint32) error {
	numberOfNodes, err := r.ReadI32()
	if err != nil {
		return err
	}
	stringBufferSize, err := r.ReadI32()
	if err != nil {
		return err
	}
	for i := int32(0); i < numberOfNodes; i++ {
		if _, err := r.ReadI16(); err != nil { // node version
			return err
		}
		if _, err := r.ReadU8(); err != nil { // level
			return err
		}
		if _, err := r.ReadU8(); err != nil { // type_flags
			return err
		}
		if _, err := r.ReadU32(); err != nil { // type_str_offset
			return err
		}
		if _, err := r.ReadU32(); err != nil { // name_str_offset
			return err
		}
		if _, err := r.ReadI32(); err != nil { // byte_size
			return err
		}
		if _, err := r.ReadI32(); err != nil { // index
			return err
		}
		if _, err := r.ReadI32(); err != nil { // meta_flag
			return err
		}
		if version >= 19 {
			if _, err := r.ReadU64(); err != nil { // ref_type_hash
				return err
			}
		}
	}
	if _, err := r.ReadBytes(int(stringBufferSize)); err != nil {
		return err
	}
	return nil
}

func readObjects(r *Reader, header AssetHeader, metadata AssetMetadata) ([]ObjectInfo, error) {
	n, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	objects := make([]ObjectInfo, n)
	for i := range objects {
		if err := r.Align(); err != nil {
			return nil, err
		}
		pathID, err := r.ReadI64()
		if err != nil {
			return nil, err
		}

		var byteStart int64
		if header.Version == 22 {
			byteStart, err = r.ReadI64()
		} else {
			var v uint32
			v, err = r.ReadU32()
			byteStart = int64(v)
		}
		if err != nil {
			return nil, err
		}
		byteStart += header.DataOffset

		byteSize, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		typeID, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		if typeID < 0 || int(typeID) >= len(metadata.Types) {
			return nil, &MissingTypeError{TypeID: typeID}
		}
		t := &metadata.Types[typeID]

		objects[i] = ObjectInfo{
			PathID:    pathID,
			ByteStart: byteStart,
			ByteSize:  byteSize,
			TypeID:    typeID,
			ClassID:   t.ClassID,
			Type:      t,
		}
	}
	return objects, nil
}

func readScriptTypes(r *Reader) ([]ScriptTypeRef, error) {
	n, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	out := make([]ScriptTypeRef, n)
	for i := range out {
		localIndex, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		if err := r.Align(); err != nil {
			return nil, err
		}
		localID, err := r.ReadI64()
		if err != nil {
			return nil, err
		}
		out[i] = ScriptTypeRef{
			LocalSerializedFileIndex: localIndex,
			LocalIdentifierInFile:    int32(localID),
		}
	}
	return out, nil
}

func readExternals(r *Reader) ([]ExternalRef, error) {
	n, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	out := make([]ExternalRef, n)
	for i := range out {
		if _, err := r.ReadNullTerminatedString(); err != nil { // ignored
			return nil, err
		}
		guid, err := r.ReadHash128()
		if err != nil {
			return nil, err
		}
		extType, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		path, err := r.ReadNullTerminatedString()
		if err != nil {
			return nil, err
		}
		out[i] = ExternalRef{GUID: guid, Type: extType, Path: path}
	}
	return out, nil
}

func readRefTypes(r *Reader, metadata AssetMetadata, version uint32) ([]SerializedType, error) {
	n, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	out := make([]SerializedType, n)
	for i := range out {
		t, err := readSerializedType(r, true, metadata.EnableTypeTree, version)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
