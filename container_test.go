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

// buildV17Container assembles a minimal, byte-accurate version-17
// SerializedFile: one GameObject-class type with a zero-node blob type
// tree, one object, no script types, no externals, and an empty
// user-information string.
func buildV17Container(tt *testing.T) []byte {
	var body bytes.Buffer // everything after the fixed header, big-endian.
	be := binary.BigEndian

	// metadata
	body.WriteString("2019.2.17f1\x00")
	writeU32(&body, be, 0) // target platform
	body.WriteByte(1)      // enable type tree = true

	writeU32(&body, be, 1) // type count

	writeI32(&body, be, ClassIDGameObject)
	body.WriteByte(0)            // is_stripped = false
	writeI16(&body, be, int16(-1)) // script_type_index
	// version >= 13: old_type_hash, always present
	body.Write(make([]byte, 16))
	// blob type tree: zero nodes, zero string buffer bytes
	writeI32(&body, be, 0) // number_of_nodes
	writeI32(&body, be, 0) // string_buffer_size

	// objects
	writeI32(&body, be, 1) // object count
	padTo4(&body)
	writeI64(&body, be, 1001) // path id
	writeU32(&body, be, 64)   // byte start (relative; header adds data offset)
	writeU32(&body, be, 32)   // byte size
	writeI32(&body, be, 0)    // type id

	// script types (version >= 11)
	writeI32(&body, be, 0)

	// externals
	writeI32(&body, be, 0)

	// user information (version >= 5)
	body.WriteByte(0)

	bodyBytes := body.Bytes()

	var out bytes.Buffer
	writeU32(&out, be, 2493)                      // metadata size, unchecked by this package
	writeU32(&out, be, uint32(len(bodyBytes)+20)) // file size, unchecked
	writeU32(&out, be, 17)                        // version
	writeU32(&out, be, 4096)                      // data offset
	out.WriteByte(1)                              // endianness: non-zero = big-endian
	out.Write(make([]byte, 3))                    // reserved
	out.Write(bodyBytes)

	return out.Bytes()
}

func writeU32(buf *bytes.Buffer, order binary.ByteOrder, v uint32) {
	var b [4]byte
	order.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeI32(buf *bytes.Buffer, order binary.ByteOrder, v int32) {
	writeU32(buf, order, uint32(v))
}

func writeI16(buf *bytes.Buffer, order binary.ByteOrder, v int16) {
	var b [2]byte
	order.PutUint16(b[:], uint16(v))
	buf.Write(b[:])
}

func writeI64(buf *bytes.Buffer, order binary.ByteOrder, v int64) {
	var b [8]byte
	order.PutUint64(b[:], uint64(v))
	buf.Write(b[:])
}

func padTo4(buf *bytes.Buffer) {
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
}

func TestReadAssetInfoV17(tt *testing.T) {
	info, err := ReadAssetInfo(buildV17Container(tt))
	require.NoError(tt, err)

	require.Equal(tt, uint32(17), info.Header.Version)
	require.Equal(tt, BigEndian, info.Header.Endianness)
	require.Equal(tt, int64(4096), info.Header.DataOffset)

	require.Equal(tt, "2019.2.17f1", info.Metadata.EngineVersion.String())
	require.True(tt, info.Metadata.EnableTypeTree)
	require.Len(tt, info.Metadata.Types, 1)
	require.Equal(tt, int32(ClassIDGameObject), info.Metadata.Types[0].ClassID)

	require.Len(tt, info.Objects, 1)
	obj := info.Objects[0]
	require.Equal(tt, int64(1001), obj.PathID)
	require.Equal(tt, int64(64+4096), obj.ByteStart)
	require.Equal(tt, uint32(32), obj.ByteSize)
	require.Equal(tt, int32(ClassIDGameObject), obj.ClassID)

	require.Empty(tt, info.ScriptTypes)
	require.Empty(tt, info.Externals)
	require.Empty(tt, info.RefTypes)
	require.Equal(tt, "", info.UserInformation)
}

func TestReadAssetInfoRejectsUnsupportedVersion(tt *testing.T) {
	buf := []byte{
		0x00, 0x00, 0x00, 0x00, // metadata size
		0x00, 0x00, 0x00, 0x00, // file size
		0x00, 0x00, 0x00, 0x05, // version 5: below the supported range
		0x00, 0x00, 0x00, 0x00, // data offset
		0x01,             // endianness
		0x00, 0x00, 0x00, // reserved
	}
	_, err := ReadAssetInfo(buf)
	require.Error(tt, err)
	var unsupported *UnsupportedFileVersionError
	require.ErrorAs(tt, err, &unsupported)
}

func TestReadAssetInfoRejectsMissingType(tt *testing.T) {
	buf := buildV17Container(tt)
	// Corrupt the object's type id (the last 4 bytes before the trailing
	// zero-length script-types/externals/user-information tail) to point
	// past the single declared type.
	idx := bytes.LastIndex(buf, []byte{0x00, 0x00, 0x00, 32, 0x00, 0x00, 0x00, 0x00})
	require.NotEqual(tt, -1, idx, "fixture layout changed; update the corruption offset")
	buf[idx+7] = 9 // type id = 9, out of range
	_, err := ReadAssetInfo(buf)
	require.Error(tt, err)
	var missing *MissingTypeError
	require.ErrorAs(tt, err, &missing)
}
