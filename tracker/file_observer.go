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

// Package tracker holds the two observers that turn per-entry and
// per-archive completions into persisted job state (components G and I of
// the bundler spec). Grounded on the teacher's worker.ProgressTracker
// (worker/progress.go): same idea of a mutex-guarded aggregator fed by
// concurrent producers, re-pointed from an in-memory byte/file counter to
// the repository-backed Job/ArchiveJob/FileEntry tree, and expressed as an
// explicit callback rather than an interface with a registered-listener
// list (spec §9: "re-architect as an explicit callback").
package tracker

import (
	"github.com/golang/glog"

	"github.com/uwedeportivo/bundler/repo"
	"github.com/uwedeportivo/bundler/types"
)

// FileObserver is bound to one (jobId, archiveId) pair for the lifetime of
// the Archive Worker that owns it (spec §4.G).
type FileObserver struct {
	repository repo.JobRepository
	jobId      string
	archiveId  int
}

// NewFileObserver builds an observer over repository for one archive.
func NewFileObserver(repository repo.JobRepository, jobId string, archiveId int) *FileObserver {
	return &FileObserver{repository: repository, jobId: jobId, archiveId: archiveId}
}

// OnEntryComplete marks elem's FileEntry COMPLETE. Persistence failures are
// logged and swallowed: they must never abort the archive in progress
// (spec §4.G).
func (fo *FileObserver) OnEntryComplete(elem *types.ArchiveElement) {
	err := fo.repository.UpdateFileEntryState(fo.jobId, fo.archiveId, elem.SourceURI, types.FileComplete)
	if err != nil {
		glog.Errorf("tracker: failed to mark file entry complete (job %s, archive %d, source %s): %v",
			fo.jobId, fo.archiveId, elem.SourceURI, err)
	}
}
