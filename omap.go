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

// OMap is an ordered (key, value) sequence preserving file order, backed by
// two parallel slices rather than a hash table. The file format dictates
// insertion order and that order is part of this package's external
// contract, so reconstituting it from a hash map would be an anti-pattern:
// lookup here is a deliberate linear scan, not an accident of
// implementation.
type OMap[K comparable, V any] struct {
	Keys []K
	Vals []V
}

// Len returns the number of pairs.
func (m OMap[K, V]) Len() int { return len(m.Keys) }

// Get performs a linear scan for k, returning its value and whether it was
// found.
func (m OMap[K, V]) Get(k K) (V, bool) {
	for i, key := range m.Keys {
		if key == k {
			return m.Vals[i], true
		}
	}
	var zero V
	return zero, false
}

// decodeOMap reads an i32 count, then that many (K,V) pairs in order.
func decodeOMap[K comparable, V any](r *Reader, info *AssetInfo, decodeKey Decoder[K], decodeVal Decoder[V]) (OMap[K, V], error) {
	n, err := r.ReadI32()
	if err != nil {
		return OMap[K, V]{}, err
	}
	if n < 0 {
		return OMap[K, V]{}, &DeserializationError{Message: "negative ordered-map length"}
	}
	m := OMap[K, V]{Keys: make([]K, n), Vals: make([]V, n)}
	for i := range m.Keys {
		k, err := decodeKey(r, info)
		if err != nil {
			return OMap[K, V]{}, err
		}
		v, err := decodeVal(r, info)
		if err != nil {
			return OMap[K, V]{}, err
		}
		m.Keys[i] = k
		m.Vals[i] = v
	}
	return m, nil
}

func decodeStringTagMap(r *Reader, info *AssetInfo) (OMap[string, string], error) {
	return decodeOMap(r, info, decodeCharArray, decodeCharArray)
}
