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

// Unity persistent class ids, as they appear in ObjectInfo.ClassID. This
// package only decodes ClassIDMaterial and ClassIDShader objects; the rest
// are named here because a container's object index commonly contains them
// and callers filtering Objects by class need stable names to filter by.
const (
	ClassIDGameObject    = 1
	ClassIDTransform     = 4
	ClassIDMaterial      = 21
	ClassIDTexture2D     = 28
	ClassIDShader        = 48
	ClassIDFont          = 128
	ClassIDMonoBehaviour = 114
	ClassIDPreloadData   = 150
	ClassIDSprite        = 213
)
