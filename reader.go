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
	"math"
	"strings"
)

// Reader is a cursor over an in-memory byte buffer, with a configurable
// endianness and 4-byte self-alignment. It holds no file handle and does no
// I/O of its own; the buffer is supplied once, by the caller.
//
// A failed read or seek leaves the cursor in an unspecified position. The
// caller must not keep reading from a Reader after an error without first
// calling Seek.
type Reader struct {
	buf   []byte
	pos   int64
	order binary.ByteOrder
}

// NewReader returns a Reader positioned at the start of buf, defaulting to
// big-endian (the header's own multi-byte fields are read big-endian until
// the endianness byte inside it is consumed; see ReadAssetInfo).
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf, order: binary.BigEndian}
}

// SetOrder changes the endianness applied to subsequently-read multi-byte
// primitives. u8 reads are endianness-independent.
func (r *Reader) SetOrder(order binary.ByteOrder) { r.order = order }

// Position returns the current cursor offset.
func (r *Reader) Position() int64 { return r.pos }

// Len returns the total size of the underlying buffer.
func (r *Reader) Len() int64 { return int64(len(r.buf)) }

// Seek moves the cursor to an absolute offset.
func (r *Reader) Seek(pos int64) error {
	if pos < 0 || pos > int64(len(r.buf)) {
		return errIO("seek to %d out of range [0, %d]", pos, len(r.buf))
	}
	r.pos = pos
	return nil
}

// SeekRelative moves the cursor by delta relative to its current position.
func (r *Reader) SeekRelative(delta int64) error {
	return r.Seek(r.pos + delta)
}

// Align advances the cursor to the next multiple of 4. It is idempotent: if
// the cursor is already aligned, it is a no-op.
func (r *Reader) Align() error {
	aligned := (r.pos + 3) &^ 3
	return r.Seek(aligned)
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 {
		return nil, errIO("negative read length %d", n)
	}
	end := r.pos + int64(n)
	if end > int64(len(r.buf)) {
		return nil, errIO("short read: wanted %d bytes at %d, have %d", n, r.pos, len(r.buf))
	}
	b := r.buf[r.pos:end]
	r.pos = end
	return b, nil
}

// ReadBytes copies n bytes verbatim, advancing the cursor.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// ReadHash128 reads a fixed 16-byte hash, used for script GUIDs, old type
// hashes, and the 2020.2+ Pass editor-data-hash array.
func (r *Reader) ReadHash128() ([16]byte, error) {
	var h [16]byte
	b, err := r.take(16)
	if err != nil {
		return h, err
	}
	copy(h[:], b)
	return h, nil
}

// ReadU8 reads an unsigned byte. u8 is endianness-independent.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadI8 reads a signed byte.
func (r *Reader) ReadI8() (int8, error) {
	u, err := r.ReadU8()
	return int8(u), err
}

// ReadBool reads one byte; true iff the byte equals 1. It does not align.
func (r *Reader) ReadBool() (bool, error) {
	u, err := r.ReadU8()
	if err != nil {
		return false, err
	}
	return u == 1, nil
}

// ReadU16 reads an unsigned 16-bit value in the reader's current endianness.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

// ReadI16 reads a signed 16-bit value.
func (r *Reader) ReadI16() (int16, error) {
	u, err := r.ReadU16()
	return int16(u), err
}

// ReadU32 reads an unsigned 32-bit value.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

// ReadI32 reads a signed 32-bit value.
func (r *Reader) ReadI32() (int32, error) {
	u, err := r.ReadU32()
	return int32(u), err
}

// ReadU64 reads an unsigned 64-bit value.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(b), nil
}

// ReadI64 reads a signed 64-bit value.
func (r *Reader) ReadI64() (int64, error) {
	u, err := r.ReadU64()
	return int64(u), err
}

// ReadF32 reads an IEEE-754 binary32 value; no rounding is performed.
func (r *Reader) ReadF32() (float32, error) {
	u, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// ReadByteArray reads a u32 length prefix, then that many raw bytes. It does
// not align.
func (r *Reader) ReadByteArray() ([]byte, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return r.ReadBytes(int(n))
}

// ReadCharArray reads a length-prefixed byte array and widens each byte to
// one character, without UTF-8 validation, then aligns. The format embeds
// 8-bit code points; interpreting them as UTF-8 would corrupt any byte >=
// 0x80.
func (r *Reader) ReadCharArray() (string, error) {
	b, err := r.ReadByteArray()
	if err != nil {
		return "", err
	}
	if err := r.Align(); err != nil {
		return "", err
	}
	return widenBytesToString(b), nil
}

func widenBytesToString(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}

// ReadNullTerminatedString reads bytes until a zero byte, which is consumed
// but not included in the result. It does not align.
func (r *Reader) ReadNullTerminatedString() (string, error) {
	var sb strings.Builder
	for {
		b, err := r.ReadU8()
		if err != nil {
			return "", err
		}
		if b == 0 {
			return sb.String(), nil
		}
		sb.WriteRune(rune(b))
	}
}

// ReadU32Array reads a u32 length prefix followed by that many u32 elements.
// It does not align; the array-decode helper in decode.go owns alignment
// for generic decoded arrays, but this raw-uint32-array reader is used
// directly by type-dependency lists, which spec.md does not align after.
func (r *Reader) ReadU32Array() ([]uint32, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		v, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ReadU16Array reads a u32 length prefix followed by that many u16 elements.
// Alignment after a u16 array is the caller's responsibility (it differs by
// call site: see the sub-program keyword-indices version split).
func (r *Reader) ReadU16Array() ([]uint16, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	out := make([]uint16, n)
	for i := range out {
		v, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
