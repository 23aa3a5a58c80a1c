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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOMapPreservesInsertionOrder(tt *testing.T) {
	m := OMap[string, int]{Keys: []string{"z", "a", "m"}, Vals: []int{1, 2, 3}}
	require.Equal(tt, []string{"z", "a", "m"}, m.Keys)
	v, ok := m.Get("a")
	require.True(tt, ok)
	require.Equal(tt, 2, v)
}

func TestOMapGetMissing(tt *testing.T) {
	m := OMap[string, int]{}
	_, ok := m.Get("missing")
	require.False(tt, ok)
}

func TestOMapGetPrefersFirstOnDuplicateKeys(tt *testing.T) {
	// The format allows duplicate keys (e.g. a tag set in two places); a
	// linear scan must resolve to the first occurrence, not the last.
	m := OMap[string, int]{Keys: []string{"dup", "dup"}, Vals: []int{1, 2}}
	v, ok := m.Get("dup")
	require.True(tt, ok)
	require.Equal(tt, 1, v)
}

func TestDecodeStringTagMap(tt *testing.T) {
	buf := []byte{
		0x00, 0x00, 0x00, 0x01, // count = 1
		0x00, 0x00, 0x00, 0x03, 'R', 'e', 'q', 0x00, // key "Req" + pad
		0x00, 0x00, 0x00, 0x04, 'T', 'r', 'u', 'e', // value "True", already aligned
	}
	r := NewReader(buf)
	m, err := decodeStringTagMap(r, nil)
	require.NoError(tt, err)
	require.Equal(tt, 1, m.Len())
	v, ok := m.Get("Req")
	require.True(tt, ok)
	require.Equal(tt, "True", v)
}
