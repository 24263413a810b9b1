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

// Package binpack groups an ordered file list into bounded-size archives by
// estimated compressed size (component D of the bundler spec, the
// ArchiveJobFactory).
package binpack

import (
	"github.com/uwedeportivo/bundler/estimate"
	"github.com/uwedeportivo/bundler/types"
)

// SourceFile is one candidate input file before bin-packing.
type SourceFile struct {
	URI       string
	EntryPath string
	Size      int64
}

// Plan is one archive-to-be: the entries it will contain and their
// aggregate size (uncompressed).
type Plan struct {
	ArchiveId int
	Elements  []*types.ArchiveElement
	Size      int64
}

// Pack runs the first-fit-by-input-order bin-packer described in spec §4.D.
// files is consumed in order and never reordered; targetSize is the soft
// byte cap in bytes (already clamped to [MIN, MAX] MB by the caller).
func Pack(files []SourceFile, targetSize int64, archiveType types.ArchiveType, est *estimate.Estimator) []*Plan {
	if len(files) == 0 {
		return nil
	}

	var plans []*Plan
	counter := 0

	current := &Plan{ArchiveId: counter}
	var currentEstSize int64

	flush := func() {
		if len(current.Elements) == 0 {
			return
		}
		plans = append(plans, current)
		counter++
		current = &Plan{ArchiveId: counter}
		currentEstSize = 0
	}

	for _, f := range files {
		estSize := est.Estimate(f.Size, archiveType)

		if len(current.Elements) > 0 && currentEstSize+estSize >= targetSize {
			flush()
		}

		current.Elements = append(current.Elements, &types.ArchiveElement{
			SourceURI: f.URI,
			EntryPath: f.EntryPath,
			Size:      f.Size,
		})
		current.Size += f.Size
		currentEstSize += estSize
	}

	flush()

	return plans
}

// ClampSize clamps an archive target size in MB to [minMB, maxMB] and
// converts it to bytes.
func ClampSize(requestedMB, minMB, maxMB int64) int64 {
	mb := requestedMB
	if mb < minMB {
		mb = minMB
	}
	if mb > maxMB {
		mb = maxMB
	}
	return mb * 1024 * 1024
}
