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

// Package entrypath computes the in-archive path recorded for a source
// file (component B of the bundler spec).
package entrypath

import (
	"strings"

	"github.com/uwedeportivo/bundler/fsprovider"
)

// MaxLen is the hard cap on an in-archive entry path (spec §3 invariant 4).
const MaxLen = 100

// Normalizer computes entry paths given a process-wide configuration of
// exclusion prefixes, a base directory to strip, and a replacement prefix
// to prepend. It is constructed once at process start and passed explicitly
// to callers (spec §9: no lazy-holder singleton).
type Normalizer struct {
	exclusions  []string
	baseDir     string
	archivePath string
}

// NewNormalizer builds a Normalizer from explicit configuration.
func NewNormalizer(exclusions []string, baseDir, archivePath string) *Normalizer {
	return &Normalizer{
		exclusions:  exclusions,
		baseDir:     baseDir,
		archivePath: archivePath,
	}
}

// Normalize computes the entry path for sourceURI, following spec §4.B's
// six-step algorithm.
func (n *Normalizer) Normalize(sourceURI string) string {
	p := fsprovider.StripScheme(sourceURI)

	for _, excl := range n.exclusions {
		if excl != "" && strings.HasPrefix(p, excl) {
			p = strings.TrimPrefix(p, excl)
			break
		}
	}

	if n.baseDir != "" {
		p = strings.TrimPrefix(p, n.baseDir)
	}

	if n.archivePath != "" {
		ap := strings.TrimSuffix(n.archivePath, "/")
		trimmed := strings.TrimPrefix(p, "/")
		// Re-normalizing an already-normalized path (idempotency, spec §8
		// property 6) must not re-prepend archivePath a second time.
		if trimmed == ap || strings.HasPrefix(trimmed, ap+"/") {
			p = trimmed
		} else {
			p = joinOneSep(n.archivePath, p)
		}
	}

	p = strings.TrimPrefix(p, "/")

	return enforceLength(p)
}

func joinOneSep(prefix, rest string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	rest = strings.TrimPrefix(rest, "/")
	return prefix + "/" + rest
}

// enforceLength applies spec §4.B step 6: while the path is too long, drop
// the leftmost segment if one remains, else truncate the filename while
// preserving its extension.
func enforceLength(p string) string {
	for len(p) > MaxLen {
		if idx := strings.Index(p, "/"); idx >= 0 {
			p = p[idx+1:]
			continue
		}
		p = truncateFilename(p)
	}
	return p
}

// truncateFilename shortens a single path segment (no "/") to MaxLen bytes,
// preserving a trailing ".ext" suffix when one is present and not at
// position 0 (a leading dot is a hidden-file marker, not an extension).
func truncateFilename(name string) string {
	ext := ""
	if dot := strings.LastIndex(name, "."); dot > 0 {
		ext = name[dot:]
	}

	if len(ext) >= MaxLen {
		// pathological: even the extension alone doesn't fit, just clip.
		return name[:MaxLen]
	}

	keep := MaxLen - len(ext)
	base := strings.TrimSuffix(name, ext)
	if len(base) > keep {
		base = base[:keep]
	}
	return base + ext
}
