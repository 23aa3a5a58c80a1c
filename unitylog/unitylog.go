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

// Package unitylog configures the structured logger used by this module's
// command-line tools. The core decoding package never logs: logging is an
// application-layer concern, owned entirely by cmd/.
package unitylog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a console-formatted zerolog.Logger writing to w. verbose
// lowers the minimum level to debug; otherwise only info-and-above is
// emitted.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// Default returns a logger writing to stderr at info level.
func Default() zerolog.Logger {
	return New(os.Stderr, false)
}
