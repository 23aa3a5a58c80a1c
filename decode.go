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

// Decoder decodes one value of T from r, given the asset's container
// context. Every object decoder in this package (Material, Shader, and
// every nested structure inside them) has this shape.
type Decoder[T any] func(r *Reader, info *AssetInfo) (T, error)

// DecodeArray reads an i32 count, decodes that many items with decode, and
// aligns the cursor to 4 bytes. This is the single implementation of the
// format's universal array-decode rule: every array of decoded items in the
// Material and Shader decoders goes through this function. (The container
// reader's tables and the raw u16/u32/byte arrays are read by their own
// loops, without this trailing align.) Omitting the trailing
// align corrupts all downstream reads, so it is centralized here rather than
// repeated at each call site.
func DecodeArray[T any](r *Reader, info *AssetInfo, decode Decoder[T]) ([]T, error) {
	n, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &DeserializationError{Message: "negative array length"}
	}
	out := make([]T, n)
	for i := range out {
		v, err := decode(r, info)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	if err := r.Align(); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeCharArray(r *Reader, _ *AssetInfo) (string, error) {
	return r.ReadCharArray()
}
