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

// PPtr is a persistent pointer: a reference to an object, possibly in
// another container. FileID == 0 means "this container"; otherwise it
// indexes AssetInfo.Externals. The core never dereferences a PPtr --
// resolving the cross-file graph it forms is the caller's concern.
type PPtr struct {
	FileID int32
	PathID int64
}

// DecodePPtr decodes a PPtr: a signed 32-bit file id followed by a signed
// 64-bit path id.
func DecodePPtr(r *Reader, _ *AssetInfo) (PPtr, error) {
	fileID, err := r.ReadI32()
	if err != nil {
		return PPtr{}, err
	}
	pathID, err := r.ReadI64()
	if err != nil {
		return PPtr{}, err
	}
	return PPtr{FileID: fileID, PathID: pathID}, nil
}
