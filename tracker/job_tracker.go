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

package tracker

import (
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/uwedeportivo/bundler/repo"
	"github.com/uwedeportivo/bundler/types"
)

// JobTracker is the Job-Completion Observer, bound to exactly one jobId
// (spec §4.I). Notify is serialized with a plain mutex rather than the
// teacher's worker.Progress (which guards a single in-memory counter); here
// the critical section spans a full repository read-modify-write, so a
// mutex held for the call's duration is the natural fit (spec §5: "what
// matters is that step 4-7 of §4.I execute atomically per notification").
type JobTracker struct {
	mu         sync.Mutex
	repository repo.JobRepository
	jobId      string
}

// NewJobTracker builds a tracker over repository for one job.
func NewJobTracker(repository repo.JobRepository, jobId string) *JobTracker {
	return &JobTracker{repository: repository, jobId: jobId}
}

// Notify runs the full aggregation protocol of spec §4.I for the archive
// identified by archiveId. Safe for concurrent callers; calls serialize.
func (jt *JobTracker) Notify(archiveId int) {
	jt.mu.Lock()
	defer jt.mu.Unlock()

	job, err := jt.repository.GetJob(jt.jobId)
	if err != nil {
		glog.Errorf("tracker: notify(%d): job %s not found: %v", archiveId, jt.jobId, err)
		return
	}

	archive := job.Archive(archiveId)
	if archive == nil {
		glog.Errorf("tracker: notify(%d): archive not found in job %s", archiveId, jt.jobId)
		return
	}

	// Safety net (spec §4.I.3): a rare write-visibility lag can mean the
	// archive's own terminal update isn't observable yet at the point its
	// worker calls notify. Only a non-terminal archive gets coerced — an
	// archive already terminal (COMPLETE or ERROR) keeps the state its own
	// worker set (spec §8 S5: an ERROR archive must stay ERROR through job
	// completion).
	if !archive.Terminal() {
		archive.State = types.Complete
		archive.EndTime = now()
		if err := jt.repository.UpdateArchive(archive); err != nil {
			glog.Errorf("tracker: notify(%d): failed to coerce archive to COMPLETE: %v", archiveId, err)
		}
	}

	var numFilesComplete int
	var totalSizeComplete int64
	var numArchivesComplete int

	for _, a := range job.Archives {
		if a.Terminal() {
			numArchivesComplete++
		}
		for _, fe := range a.Files {
			if fe.State == types.FileComplete {
				numFilesComplete++
				totalSizeComplete += fe.Size
			}
		}
	}

	if numFilesComplete > job.NumFiles {
		glog.Warningf("tracker: notify(%d): clamping numFilesComplete %d to %d for job %s",
			archiveId, numFilesComplete, job.NumFiles, jt.jobId)
		numFilesComplete = job.NumFiles
	}
	if totalSizeComplete > job.TotalSize {
		glog.Warningf("tracker: notify(%d): clamping totalSizeComplete %d to %d for job %s",
			archiveId, totalSizeComplete, job.TotalSize, jt.jobId)
		totalSizeComplete = job.TotalSize
	}

	job.NumFilesComplete = numFilesComplete
	job.TotalSizeComplete = totalSizeComplete
	job.NumArchivesComplete = numArchivesComplete

	// ERROR archives count toward numArchivesComplete for job termination
	// purposes (spec §4.I "Decision", preserved from source behavior; see
	// spec §9 Open question 2). A job with any ERROR archive still reaches
	// job.state == COMPLETE once every archive is terminal.
	if numArchivesComplete == job.NumArchives {
		job.State = types.Complete
		job.EndTime = now()
	}

	if err := jt.repository.UpdateJob(job); err != nil {
		glog.Errorf("tracker: notify(%d): failed to persist job %s: %v", archiveId, jt.jobId, err)
	}
}

func now() time.Time {
	return time.Now()
}
