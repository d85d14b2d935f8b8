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

package sdict

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// defaultCacheDir returns $HOME/.sdictviewer/index_cache, matching the
// historical sdictviewer cache location. It is only a default: callers
// should treat the cache directory as a configuration parameter (WithCacheDir)
// rather than relying on a process-wide singleton.
func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".sdictviewer", "index_cache")
}

// options holds the configuration assembled by the functional Option values
// passed to Open.
type options struct {
	cacheDir string
	encoding string
	logger   *zap.SugaredLogger
	noCache  bool
}

func defaultOptions() options {
	return options{
		cacheDir: defaultCacheDir(),
		encoding: "utf-8",
		logger:   zap.NewNop().Sugar(),
	}
}

// Option configures a Dictionary at Open time.
type Option func(*options)

// WithCacheDir overrides the directory the IndexCache sidecar is read from
// and written to. The default is $HOME/.sdictviewer/index_cache.
func WithCacheDir(dir string) Option {
	return func(o *options) { o.cacheDir = dir }
}

// WithEncoding overrides the dictionary's text encoding. The default is
// "utf-8"; non-UTF-8 dictionaries are not otherwise supported by this
// package, but the value is recorded for callers that inspect it.
func WithEncoding(encoding string) Option {
	return func(o *options) { o.encoding = encoding }
}

// WithLogger installs a structured logger used for the warn-and-continue
// paths (short-index rows with unrepresentable code points, stale or
// unreadable index caches, full-index cursor overruns). The default is a
// no-op logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *options) { o.logger = logger }
}

// WithoutCache disables the sidecar IndexCache entirely: Open always loads
// the on-disk short index, and Close never writes a sidecar file regardless
// of the persist argument.
func WithoutCache() Option {
	return func(o *options) { o.noCache = true }
}
