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

// Package jobworker runs one ArchiveJob end-to-end (component H of the
// bundler spec): claim, bundle, hash, finalize. Grounded on the teacher's
// worker.Worker (worker/worker.go), which pulls WorkUnits off a channel and
// runs a caller-supplied per-unit function under a shared ProgressTracker;
// here there is exactly one unit of work per worker (its ArchiveJob), so
// the channel/pool machinery collapses into a single Run call, invoked
// once per archive by the dispatcher (component J) via errgroup.
package jobworker

import (
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/uwedeportivo/bundler/archiver"
	"github.com/uwedeportivo/bundler/fsprovider"
	"github.com/uwedeportivo/bundler/hasher"
	"github.com/uwedeportivo/bundler/repo"
	"github.com/uwedeportivo/bundler/tracker"
	"github.com/uwedeportivo/bundler/types"
)

// Worker runs one archive to completion.
type Worker struct {
	repository repo.JobRepository
	tracker    *tracker.JobTracker
	jobId      string
	archiveId  int
	hashType   types.HashType
	host       string
}

// New builds a Worker for one (jobId, archiveId) pair. host identifies this
// process for the ArchiveJob.Host bookkeeping field.
func New(repository repo.JobRepository, jobTracker *tracker.JobTracker, jobId string, archiveId int, hashType types.HashType, host string) *Worker {
	return &Worker{
		repository: repository,
		tracker:    jobTracker,
		jobId:      jobId,
		archiveId:  archiveId,
		hashType:   hashType,
		host:       host,
	}
}

// Run executes the full protocol of spec §4.H. It never returns an error
// to the caller: every failure mode is captured as a terminal ArchiveJob
// state and/or a log line, per the spec's "failures inside a worker never
// propagate" policy (spec §7).
func (w *Worker) Run() {
	archive, err := w.repository.GetArchive(w.jobId, w.archiveId)
	if err != nil {
		glog.Errorf("jobworker: archive %d of job %s not found, cannot start: %v", w.archiveId, w.jobId, err)
		return
	}

	archive.Host = w.host
	archive.StartTime = time.Now()
	archive.State = types.InProgress
	if err := w.repository.UpdateArchive(archive); err != nil {
		glog.Errorf("jobworker: failed to mark archive %d of job %s IN_PROGRESS: %v", w.archiveId, w.jobId, err)
		return
	}

	elements := make([]*types.ArchiveElement, len(archive.Files))
	for i, fe := range archive.Files {
		elements[i] = &types.ArchiveElement{SourceURI: fe.SourceURI, EntryPath: fe.EntryPath, Size: fe.Size}
	}

	arc, err := archiver.New(archive.Type)
	if err != nil {
		w.fail(archive, err)
		return
	}

	observer := tracker.NewFileObserver(w.repository, w.jobId, w.archiveId)

	if err := arc.Bundle(elements, archive.OutputURI, observer.OnEntryComplete); err != nil {
		w.fail(archive, err)
		return
	}

	if err := hasher.HashToFile(archive.OutputURI, archive.HashURI, w.hashType); err != nil {
		w.fail(archive, err)
		return
	}

	size, err := outputSize(archive.OutputURI)
	if err != nil {
		w.fail(archive, err)
		return
	}
	archive.Size = size

	archive.EndTime = time.Now()
	archive.State = types.Complete

	if err := w.repository.UpdateArchive(archive); err != nil {
		glog.Errorf("jobworker: failed to persist COMPLETE archive %d of job %s: %v", w.archiveId, w.jobId, err)
		return
	}

	w.tracker.Notify(w.archiveId)
}

// fail marks archive ERROR, persists it, and still notifies the tracker —
// a terminal archive, successful or not, must be accounted for. If the
// persistence itself fails, it logs and returns without notifying (spec
// §4.H step 8).
func (w *Worker) fail(archive *types.ArchiveJob, cause error) {
	glog.Errorf("jobworker: archive %d of job %s failed: %v", w.archiveId, w.jobId, cause)

	archive.EndTime = time.Now()
	archive.State = types.Error

	if err := w.repository.UpdateArchive(archive); err != nil {
		glog.Errorf("jobworker: failed to persist ERROR archive %d of job %s: %v", w.archiveId, w.jobId, err)
		return
	}

	w.tracker.Notify(w.archiveId)
}

// outputSize reports the byte size of a just-written artifact via the
// path/URI adapter. Local files are sized with os.Stat first to keep
// local-disk staging writes cheap; remote schemes, or a failed Stat, go
// through fsprovider.Resolve's reported size.
func outputSize(uri string) (int64, error) {
	if fsprovider.Scheme(uri) == "file" {
		if fi, err := os.Stat(fsprovider.StripScheme(uri)); err == nil {
			return fi.Size(), nil
		}
	}

	r, size, err := fsprovider.Resolve(uri)
	if err != nil {
		return 0, err
	}
	r.Close()
	return size, nil
}
