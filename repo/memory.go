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

package repo

import (
	"sync"

	"github.com/uwedeportivo/bundler/bundleerr"
	"github.com/uwedeportivo/bundler/types"
)

func init() {
	Register("memory", func(dsn string) (JobRepository, error) {
		return newMemoryRepo(), nil
	})
}

// memoryRepo is the reference JobRepository: everything lives in a
// mutex-guarded map, mirroring the single-lock bookkeeping style of the
// teacher's worker.Progress rather than any actual teacher storage engine
// (db/level and friends are LevelDB-backed ROM/Dat catalogs with no bearing
// on this spec's job/archive/file-entry tree). Sized for one bundler
// process; a durable backend (e.g. a disk-journaled or SQL-backed
// implementation) would register itself under a different name.
type memoryRepo struct {
	mu   sync.RWMutex
	jobs map[string]*types.Job
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		jobs: make(map[string]*types.Job),
	}
}

func (r *memoryRepo) PersistJob(job *types.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs[job.JobId] = cloneJob(job)
	return nil
}

func (r *memoryRepo) GetJob(jobId string) (*types.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[jobId]
	if !ok {
		return nil, bundleerr.NotFound.New("no such job %q", jobId)
	}
	return cloneJob(job), nil
}

func (r *memoryRepo) GetArchive(jobId string, archiveId int) (*types.ArchiveJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[jobId]
	if !ok {
		return nil, bundleerr.NotFound.New("no such job %q", jobId)
	}
	archive := job.Archive(archiveId)
	if archive == nil {
		return nil, bundleerr.NotFound.New("no such archive %d in job %q", archiveId, jobId)
	}
	return cloneArchive(archive), nil
}

func (r *memoryRepo) GetFileEntry(jobId string, archiveId int, sourceURI string) (*types.FileEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[jobId]
	if !ok {
		return nil, bundleerr.NotFound.New("no such job %q", jobId)
	}
	archive := job.Archive(archiveId)
	if archive == nil {
		return nil, bundleerr.NotFound.New("no such archive %d in job %q", archiveId, jobId)
	}
	for _, fe := range archive.Files {
		if fe.SourceURI == sourceURI {
			cp := *fe
			return &cp, nil
		}
	}
	return nil, bundleerr.NotFound.New("no such file entry %q in job %q archive %d", sourceURI, jobId, archiveId)
}

func (r *memoryRepo) ListJobIds() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.jobs))
	for id := range r.jobs {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *memoryRepo) UpdateJob(job *types.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.jobs[job.JobId]
	if !ok {
		return bundleerr.NotFound.New("no such job %q", job.JobId)
	}

	updated := cloneJob(job)
	updated.Archives = existing.Archives
	r.jobs[job.JobId] = updated
	return nil
}

func (r *memoryRepo) UpdateArchive(archive *types.ArchiveJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[archive.JobId]
	if !ok {
		return bundleerr.NotFound.New("no such job %q", archive.JobId)
	}

	for i, a := range job.Archives {
		if a.ArchiveId == archive.ArchiveId {
			cp := cloneArchive(archive)
			cp.Files = a.Files
			job.Archives[i] = cp
			return nil
		}
	}
	return bundleerr.NotFound.New("no such archive %d in job %q", archive.ArchiveId, archive.JobId)
}

func (r *memoryRepo) UpdateFileEntryState(jobId string, archiveId int, sourceURI string, state types.FileState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobId]
	if !ok {
		return bundleerr.NotFound.New("no such job %q", jobId)
	}
	archive := job.Archive(archiveId)
	if archive == nil {
		return bundleerr.NotFound.New("no such archive %d in job %q", archiveId, jobId)
	}
	for _, fe := range archive.Files {
		if fe.SourceURI == sourceURI {
			fe.State = state
			return nil
		}
	}
	return bundleerr.NotFound.New("no such file entry %q in job %q archive %d", sourceURI, jobId, archiveId)
}

func cloneJob(job *types.Job) *types.Job {
	cp := *job
	cp.Archives = make([]*types.ArchiveJob, len(job.Archives))
	for i, a := range job.Archives {
		cp.Archives[i] = cloneArchive(a)
	}
	return &cp
}

func cloneArchive(archive *types.ArchiveJob) *types.ArchiveJob {
	cp := *archive
	cp.Files = make([]*types.FileEntry, len(archive.Files))
	for i, fe := range archive.Files {
		feCopy := *fe
		cp.Files[i] = &feCopy
	}
	return &cp
}
