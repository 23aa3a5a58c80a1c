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
	"fmt"
	"strconv"
	"strings"
)

// SuffixKind is the release-channel letter trailing an engine version, e.g.
// the "f" in "2019.2.17f1". Its declaration order is its sort order.
type SuffixKind uint8

const (
	SuffixAlpha SuffixKind = iota
	SuffixBeta
	SuffixFinal
	SuffixPatch
	SuffixExperimental
	SuffixChina
)

func (k SuffixKind) String() string {
	switch k {
	case SuffixAlpha:
		return "a"
	case SuffixBeta:
		return "b"
	case SuffixFinal:
		return "f"
	case SuffixPatch:
		return "p"
	case SuffixExperimental:
		return "x"
	case SuffixChina:
		return "c"
	default:
		return "?"
	}
}

func suffixKindFromByte(b byte) (SuffixKind, bool) {
	switch b {
	case 'a':
		return SuffixAlpha, true
	case 'b':
		return SuffixBeta, true
	case 'f':
		return SuffixFinal, true
	case 'p':
		return SuffixPatch, true
	case 'x':
		return SuffixExperimental, true
	case 'c':
		return SuffixChina, true
	default:
		return 0, false
	}
}

// EngineVersion is a totally ordered engine version tuple, parsed from
// strings like "2019.2.17f1". Missing components default to 0 and
// SuffixFinal.
type EngineVersion struct {
	Major     uint16
	Minor     uint16
	Build     uint16
	Suffix    SuffixKind
	SuffixNum uint8
}

func (v EngineVersion) String() string {
	return fmt.Sprintf("%d.%d.%d%s%d", v.Major, v.Minor, v.Build, v.Suffix, v.SuffixNum)
}

// Compare returns -1, 0, or +1 as v is less than, equal to, or greater than
// other, comparing lexicographically over (Major, Minor, Build, Suffix,
// SuffixNum).
func (v EngineVersion) Compare(other EngineVersion) int {
	if c := cmpUint16(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmpUint16(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := cmpUint16(v.Build, other.Build); c != 0 {
		return c
	}
	if v.Suffix != other.Suffix {
		if v.Suffix < other.Suffix {
			return -1
		}
		return 1
	}
	return cmpUint8(v.SuffixNum, other.SuffixNum)
}

// AtLeast reports whether v >= other. Almost every engine-version gate in
// the shader decoder is spelled as an AtLeast call; the container reader
// gates on the integer file version instead.
func (v EngineVersion) AtLeast(other EngineVersion) bool {
	return v.Compare(other) >= 0
}

// Less reports whether v < other.
func (v EngineVersion) Less(other EngineVersion) bool {
	return v.Compare(other) < 0
}

func cmpUint16(a, b uint16) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUint8(a, b uint8) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// EV is a convenience constructor for the (Major, Minor, Build) literals
// that pepper the shader decoder's version gates (e.g. EV(2017, 2, 0)).
func EV(major, minor, build uint16) EngineVersion {
	return EngineVersion{Major: major, Minor: minor, Build: build, Suffix: SuffixFinal}
}

// ParseEngineVersion parses strings shaped like "2019.2.17f1". Components
// left unspecified by a short string default to 0 and SuffixFinal; an empty
// string parses as 0.0.0f0.
func ParseEngineVersion(s string) (EngineVersion, error) {
	v := EngineVersion{Suffix: SuffixFinal}
	if s == "" {
		return v, nil
	}

	parts := strings.SplitN(s, ".", 3)
	if n, err := strconv.ParseUint(parts[0], 10, 16); err == nil {
		v.Major = uint16(n)
	} else {
		return v, &InvalidVersionError{Input: s, Err: err}
	}
	if len(parts) < 2 {
		return v, nil
	}
	if n, err := strconv.ParseUint(parts[1], 10, 16); err == nil {
		v.Minor = uint16(n)
	} else {
		return v, &InvalidVersionError{Input: s, Err: err}
	}
	if len(parts) < 3 {
		return v, nil
	}

	rest := parts[2]
	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	if n, err := strconv.ParseUint(rest[:i], 10, 16); err == nil {
		v.Build = uint16(n)
	} else {
		return v, &InvalidVersionError{Input: s, Err: err}
	}
	rest = rest[i:]
	if rest == "" {
		return v, nil
	}

	kind, ok := suffixKindFromByte(rest[0])
	if !ok {
		return v, &InvalidVersionError{Input: s, Err: fmt.Errorf("unrecognized suffix letter %q", rest[0])}
	}
	v.Suffix = kind
	rest = rest[1:]
	if rest == "" {
		return v, nil
	}
	n, err := strconv.ParseUint(rest, 10, 8)
	if err != nil {
		return v, &InvalidVersionError{Input: s, Err: err}
	}
	v.SuffixNum = uint8(n)
	return v, nil
}
