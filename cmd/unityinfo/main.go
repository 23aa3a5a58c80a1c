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

// Command unityinfo prints a summary of a Unity SerializedFile container:
// its header, engine version, and object index, optionally decoding every
// Material and Shader object it finds.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"github.com/rs/zerolog"

	"github.com/go-unity/unityassets"
	"github.com/go-unity/unityassets/unitylog"
)

func main() {
	var (
		verbose bool
		decode  bool
	)
	flag.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flag.BoolVarP(&decode, "decode", "d", false, "decode every Material and Shader object found")
	flag.Parse()

	log := unitylog.New(os.Stderr, verbose)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: unityinfo [flags] <serialized-file>")
		os.Exit(2)
	}

	if err := run(flag.Arg(0), decode, log); err != nil {
		log.Error().Err(err).Msg("unityinfo failed")
		os.Exit(1)
	}
}

func run(path string, decode bool, log zerolog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read container")
	}

	info, err := unityassets.ReadAssetInfo(data)
	if err != nil {
		return errors.Wrap(err, "parse container")
	}

	log.Info().
		Uint32("version", info.Header.Version).
		Str("engine", info.Metadata.EngineVersion.String()).
		Int("objects", len(info.Objects)).
		Int("externals", len(info.Externals)).
		Msg("parsed container")

	counts := map[int32]int{}
	for _, obj := range info.Objects {
		counts[obj.ClassID]++
	}
	for classID, count := range counts {
		log.Debug().Int32("class_id", classID).Int("count", count).Msg("class histogram")
	}

	if !decode {
		return nil
	}

	r := unityassets.NewReader(data)
	r.SetOrder(info.Header.Endianness.ByteOrder())

	for _, obj := range info.Objects {
		if err := unityassets.SeekToObject(r, obj); err != nil {
			return errors.Wrapf(err, "seek to object %d", obj.PathID)
		}

		switch obj.ClassID {
		case unityassets.ClassIDMaterial:
			mat, err := unityassets.DecodeMaterial(r, info)
			if err != nil {
				log.Warn().Err(err).Int64("path_id", obj.PathID).Msg("failed to decode material")
				continue
			}
			log.Info().Int64("path_id", obj.PathID).Str("name", mat.Name).Msg("material")

		case unityassets.ClassIDShader:
			sh, err := unityassets.DecodeShader(r, info)
			if err != nil {
				log.Warn().Err(err).Int64("path_id", obj.PathID).Msg("failed to decode shader")
				continue
			}
			log.Info().Int64("path_id", obj.PathID).Str("name", sh.Name).Int("sub_shaders", len(sh.SubShaders)).Msg("shader")
		}
	}

	return nil
}
