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

// Package repo persists Jobs, their ArchiveJobs and FileEntrys (spec §6).
// Grounded on the teacher's db package: db.RomDB's pluggable-backend
// Factory (a package-level var set by blank-importing a backend such as
// db/level) is generalized here into a named registry, closer to the
// multi-backend style fsprovider already uses for filesystem drivers, so
// more than one JobRepository implementation can be linked into the same
// binary and chosen by configuration.
package repo

import (
	"sync"

	"github.com/golang/glog"

	"github.com/uwedeportivo/bundler/bundleerr"
	"github.com/uwedeportivo/bundler/types"
)

// JobRepository is the durable store backing the job-state machine (spec
// §6). Every method must be safe for concurrent use: archive workers update
// disjoint ArchiveJobs of the same Job concurrently, and the state reader
// (component K) reads concurrently with all of them.
type JobRepository interface {
	// PersistJob stores a brand-new Job and all of its ArchiveJobs/
	// FileEntrys in one shot (spec §4.J, after bin-packing).
	PersistJob(job *types.Job) error

	// GetJob returns the full Job tree, or bundleerr.NotFound.
	GetJob(jobId string) (*types.Job, error)

	// GetArchive returns one ArchiveJob, or bundleerr.NotFound.
	GetArchive(jobId string, archiveId int) (*types.ArchiveJob, error)

	// GetFileEntry returns one FileEntry, or bundleerr.NotFound.
	GetFileEntry(jobId string, archiveId int, sourceURI string) (*types.FileEntry, error)

	// ListJobIds enumerates every known job id, for the debug/admin surface.
	ListJobIds() ([]string, error)

	// UpdateJob overwrites job-level bookkeeping fields (state, counters,
	// timestamps) for an existing Job.
	UpdateJob(job *types.Job) error

	// UpdateArchive overwrites one ArchiveJob in place.
	UpdateArchive(archive *types.ArchiveJob) error

	// UpdateFileEntryState sets one FileEntry's state (component G, the
	// file-completion observer's only write).
	UpdateFileEntryState(jobId string, archiveId int, sourceURI string, state types.FileState) error
}

// Factory builds a JobRepository from a backend-specific data-source name
// (e.g. a directory path for the in-memory/disk-journal backend).
type Factory func(dsn string) (JobRepository, error)

var (
	mu        sync.Mutex
	factories = make(map[string]Factory)
)

// Register installs f under name, the way a backend package registers
// itself with db.Factory in the teacher. Call from an init() in the
// backend's own package.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		glog.Warningf("repo: replacing factory already registered for backend %q", name)
	}
	factories[name] = f
}

// Open builds a JobRepository using the backend registered as name.
func Open(name, dsn string) (JobRepository, error) {
	mu.Lock()
	f, ok := factories[name]
	mu.Unlock()

	if !ok {
		return nil, bundleerr.InvalidRequest.New("no repository backend registered for %q", name)
	}
	return f(dsn)
}
