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

// Package estimate computes a synthetic estimated-compressed-size used only
// by the bin-packer (component C of the bundler spec). Grounded on the
// teacher's own fixed 1/5 compression-ratio guess in
// archive.archiveWorker.archive ("estimatedCompressedSize := size / 5"),
// generalized into a configurable percentage per spec §4.C.
package estimate

import "github.com/uwedeportivo/bundler/types"

// Estimator computes the estimated compressed size of a file given its
// uncompressed size and the target archive type.
type Estimator struct {
	averageCompressionPct int64
}

// NewEstimator builds an Estimator from the configured
// average.compression.percentage (spec §6).
func NewEstimator(averageCompressionPct int64) *Estimator {
	return &Estimator{averageCompressionPct: averageCompressionPct}
}

// Estimate returns the estimated compressed size of size bytes for
// archiveType. Uncompressed container types (TAR, AR, CPIO) return size
// unchanged (spec §4.C).
func (e *Estimator) Estimate(size int64, archiveType types.ArchiveType) int64 {
	switch archiveType {
	case types.TAR, types.AR, types.CPIO:
		return size
	default:
		return size * (100 - e.averageCompressionPct) / 100
	}
}
