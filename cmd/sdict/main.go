// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command sdict is a CLI for reading and indexing SDICT binary dictionary
// files.
package main

import (
	"os"
)

func main() {
	app := newSdictApp()
	// app's ExitErrHandler prints the error and calls cli.OsExiter; Run
	// returns the same error for completeness but the exit has already
	// happened by the time we get here on any failure path.
	_ = app.Run(os.Args)
}
