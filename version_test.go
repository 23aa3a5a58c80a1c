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

func TestParseEngineVersion(tt *testing.T) {
	v, err := ParseEngineVersion("2019.2.17f1")
	require.NoError(tt, err)
	require.Equal(tt, EngineVersion{Major: 2019, Minor: 2, Build: 17, Suffix: SuffixFinal, SuffixNum: 1}, v)
}

func TestParseEngineVersionRejectsGarbage(tt *testing.T) {
	_, err := ParseEngineVersion("not.a.version")
	require.Error(tt, err)
}

func TestEngineVersionOrdering(tt *testing.T) {
	older := EV(2018, 4, 0)
	newer := EV(2019, 2, 0)
	require.True(tt, newer.AtLeast(older))
	require.False(tt, older.AtLeast(newer))
	require.True(tt, older.Less(newer))
}

func TestSuffixKindOrdering(tt *testing.T) {
	// alpha < beta < final < patch < experimental < china, per the engine's
	// own release-channel ordering.
	require.True(tt, SuffixAlpha < SuffixBeta)
	require.True(tt, SuffixBeta < SuffixFinal)
	require.True(tt, SuffixFinal < SuffixPatch)
	require.True(tt, SuffixPatch < SuffixExperimental)
	require.True(tt, SuffixExperimental < SuffixChina)
}

func TestEngineVersionCompareAcrossSuffix(tt *testing.T) {
	beta, err := ParseEngineVersion("2020.1.0b3")
	require.NoError(tt, err)
	final, err := ParseEngineVersion("2020.1.0f1")
	require.NoError(tt, err)
	require.True(tt, final.AtLeast(beta))
	require.True(tt, beta.Less(final))
}

func TestEngineVersionDefaultsMissingComponents(tt *testing.T) {
	v, err := ParseEngineVersion("2021")
	require.NoError(tt, err)
	require.Equal(tt, uint16(2021), v.Major)
	require.Equal(tt, uint16(0), v.Minor)
	require.Equal(tt, uint16(0), v.Build)
}
