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

	"github.com/pkg/errors"
)

// MissingTypeError is returned when an object references a type index that
// does not exist in the container's metadata type table.
type MissingTypeError struct {
	TypeID int32
}

func (e *MissingTypeError) Error() string {
	return fmt.Sprintf("unityassets: missing type %d", e.TypeID)
}

// UnsupportedFileVersionError is returned when a container's header declares
// a version outside {17..22}.
type UnsupportedFileVersionError struct {
	Version uint32
}

func (e *UnsupportedFileVersionError) Error() string {
	return fmt.Sprintf("unityassets: unsupported file version %d", e.Version)
}

// UnsupportedEngineVersionError is reserved for decoders that find an engine
// version they cannot handle at all (as opposed to a version-gated field,
// which is not an error).
type UnsupportedEngineVersionError struct {
	Version EngineVersion
}

func (e *UnsupportedEngineVersionError) Error() string {
	return fmt.Sprintf("unityassets: unsupported engine version %s", e.Version)
}

// UnsupportedFeatureError is returned when a known-but-unimplemented branch
// of the format is encountered.
type UnsupportedFeatureError struct {
	Message string
}

func (e *UnsupportedFeatureError) Error() string {
	return "unityassets: unsupported feature: " + e.Message
}

// InvalidVersionError wraps a failure to parse an engine version string.
type InvalidVersionError struct {
	Input string
	Err   error
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("unityassets: invalid engine version %q: %v", e.Input, e.Err)
}

func (e *InvalidVersionError) Unwrap() error { return e.Err }

// DeserializationError is the catch-all for semantic violations, such as an
// enum discriminant outside its declared domain.
type DeserializationError struct {
	Message string
}

func (e *DeserializationError) Error() string {
	return "unityassets: deserialization error: " + e.Message
}

// errIO wraps a short read or an out-of-buffer seek. The reader's cursor is
// left in an unspecified position after this error; callers must not reuse
// the reader without an explicit Seek.
func errIO(format string, args ...interface{}) error {
	return errors.Wrap(fmt.Errorf(format, args...), "unityassets: IO")
}
