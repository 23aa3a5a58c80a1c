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
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderPrimitivesBigEndian(tt *testing.T) {
	buf := []byte{0x00, 0x00, 0x01, 0x02, 0xFF, 0x00, 0x00, 0x00, 0x00, 0x00}
	r := NewReader(buf)
	u32, err := r.ReadU32()
	require.NoError(tt, err)
	require.Equal(tt, uint32(0x00000102), u32)

	i8, err := r.ReadI8()
	require.NoError(tt, err)
	require.Equal(tt, int8(-1), i8)
}

func TestReaderPrimitivesLittleEndian(tt *testing.T) {
	buf := []byte{0x02, 0x01, 0x00, 0x00}
	r := NewReader(buf)
	r.SetOrder(binary.LittleEndian)
	u32, err := r.ReadU32()
	require.NoError(tt, err)
	require.Equal(tt, uint32(0x00000102), u32)
}

func TestReaderAlignIsIdempotent(tt *testing.T) {
	r := NewReader(make([]byte, 16))
	require.NoError(tt, r.Seek(5))
	require.NoError(tt, r.Align())
	require.Equal(tt, int64(8), r.Position())
	require.NoError(tt, r.Align())
	require.Equal(tt, int64(8), r.Position())
}

func TestReaderShortReadFails(tt *testing.T) {
	r := NewReader([]byte{0x01})
	_, err := r.ReadU32()
	require.Error(tt, err)
}

func TestReaderCharArrayWidensNonASCII(tt *testing.T) {
	// length=2, bytes 0xE9 0x41 ("\xe9A"): must not be interpreted as UTF-8.
	buf := []byte{0x00, 0x00, 0x00, 0x02, 0xE9, 0x41, 0x00, 0x00}
	r := NewReader(buf)
	s, err := r.ReadCharArray()
	require.NoError(tt, err)
	require.Equal(tt, []rune{0xE9, 0x41}, []rune(s))
}

func TestReaderNullTerminatedString(tt *testing.T) {
	buf := []byte("hello\x00trailing")
	r := NewReader(buf)
	s, err := r.ReadNullTerminatedString()
	require.NoError(tt, err)
	require.Equal(tt, "hello", s)
	require.Equal(tt, int64(6), r.Position())
}

func TestReaderU16ArrayNoImplicitAlign(tt *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x02, 0xAA}
	r := NewReader(buf)
	arr, err := r.ReadU16Array()
	require.NoError(tt, err)
	require.Equal(tt, []uint16{1}, arr)
	require.Equal(tt, int64(6), r.Position())
}
