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

// Package unityassets decodes Unity Engine SerializedFile containers: the
// binary format Unity uses for scenes, prefabs, and asset bundles.
//
// ReadAssetInfo parses a container's header, metadata, and object index
// without touching any object payload. Callers then seek to an object's
// byte range (SeekToObject) and invoke a matching decoder -- DecodeMaterial
// for class id 21, DecodeShader for class id 48 -- to decode the payload
// itself.
//
// The package supports container versions 17 through 22 and engine
// versions from Unity 5 through the 2021.x cycle, the range the Material
// and Shader decoders' version-gated fields span.
package unityassets
