// Copyright (c) 2013 Uwe Hoffmann. All rights reserved.

/*
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are
met:

   * Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.
   * Redistributions in binary form must reproduce the above
copyright notice, this list of conditions and the following disclaimer
in the documentation and/or other materials provided with the
distribution.
   * Neither the name of Google Inc. nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

// Package config loads bundler.ini, the process-wide configuration source
// for staging layout, S3 credentials, archive-size clamps and entry-path
// exclusions (spec §6). Grounded on the teacher's cmds/rombaserver/main.go,
// which reads romba.ini into a config.Config via gcfg.ReadFileInto and then
// post-processes a handful of fields (absolute-path resolution, unit
// conversion) before publishing it; bundler.ini follows the same load-then-
// normalize shape.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/scalingdata/gcfg"
)

// MaxEntryPathExclusions bounds the bundler.entry_path_exclusion.<N> keys
// (spec §6).
const MaxEntryPathExclusions = 16

// Config is the root of bundler.ini, one struct field per [section].
type Config struct {
	General GeneralSection
	Server  ServerSection
	Staging StagingSection
	S3      S3Section
	Archive ArchiveSection
	Hash    HashSection
}

// GeneralSection is [general].
type GeneralSection struct {
	LogDir           string `gcfg:"log.dir"`
	BundleRequestDir string `gcfg:"bundle.request.directory"`
}

// ServerSection is [server].
type ServerSection struct {
	Addr string `gcfg:"addr"`
	Host string `gcfg:"host"` // identity recorded on ArchiveJob.Host
}

// StagingSection is [staging].
type StagingSection struct {
	Directory     string `gcfg:"directory"`      // staging.directory
	DirectoryBase string `gcfg:"directory.base"` // staging.directory.base
	BaseURL       string `gcfg:"base.url"`
}

// S3Section is [s3].
type S3Section struct {
	Endpoint  string `gcfg:"endpoint"`
	Region    string `gcfg:"region"`
	IamRole   string `gcfg:"iam.role"`
	AccessKey string `gcfg:"access.key"`
	SecretKey string `gcfg:"secret.key"`
}

// ArchiveSection is [archive].
type ArchiveSection struct {
	MinSize               int64 `gcfg:"min.archive.size"` // MB
	MaxSize               int64 `gcfg:"max.archive.size"` // MB
	DefaultSize           int64 `gcfg:"default.archive.size"` // MB
	AverageCompressionPct int64 `gcfg:"average.compression.percentage"`
	EntryPathExclusion    [MaxEntryPathExclusions]string
}

// HashSection is [hash].
type HashSection struct {
	Algorithm string `gcfg:"algorithm"` // reference default "SHA1", spec §4.H step 5
}

// Load reads and lightly normalizes path into a Config.
func Load(path string) (*Config, error) {
	cfg := new(Config)

	if err := gcfg.ReadFileInto(cfg, path); err != nil {
		return nil, fmt.Errorf("reading bundler config %s: %w", path, err)
	}

	if cfg.Staging.Directory != "" {
		abs, err := filepath.Abs(cfg.Staging.Directory)
		if err != nil {
			return nil, fmt.Errorf("resolving staging.directory: %w", err)
		}
		cfg.Staging.Directory = abs
	}

	if cfg.Archive.MinSize == 0 {
		cfg.Archive.MinSize = 1
	}
	if cfg.Archive.MaxSize == 0 {
		cfg.Archive.MaxSize = 1024
	}
	if cfg.Archive.DefaultSize == 0 {
		cfg.Archive.DefaultSize = cfg.Archive.MaxSize
	}
	if cfg.Hash.Algorithm == "" {
		cfg.Hash.Algorithm = "SHA1"
	}

	return cfg, nil
}

// Exclusions returns the configured entry-path exclusion prefixes, in
// order, skipping unset slots.
func (c *Config) Exclusions() []string {
	var out []string
	for _, e := range c.Archive.EntryPathExclusion {
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

// HasS3Credentials reports whether enough S3 configuration is present to
// register an S3 driver: either an IAM role, or both an access and secret
// key (spec §6).
func (c *Config) HasS3Credentials() bool {
	if c.S3.IamRole != "" {
		return true
	}
	return c.S3.AccessKey != "" && c.S3.SecretKey != ""
}
