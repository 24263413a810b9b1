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

package bundle

import (
	"time"

	"github.com/uwedeportivo/bundler/types"
)

// ArchiveSnapshot is one terminal archive as reported in a Snapshot (spec
// §6 "Snapshot JSON ... archives (only terminal archives)").
type ArchiveSnapshot struct {
	ArchiveId int              `json:"archive_id"`
	State     types.JobState   `json:"state"`
	OutputURL string           `json:"output_url"`
	HashURL   string           `json:"hash_url"`
	NumFiles  int              `json:"num_files"`
	Size      int64            `json:"size"`
	Host      string           `json:"host"`
	StartTime time.Time        `json:"start_time"`
	EndTime   time.Time        `json:"end_time"`
}

// Snapshot is the read-side view of a Job (spec §4.K), field-for-field the
// contract named in spec §6 ("Snapshot JSON").
type Snapshot struct {
	JobId              string            `json:"job_id"`
	UserName           string            `json:"user_name"`
	State              types.JobState    `json:"state"`
	NumArchives        int               `json:"threads"`
	NumArchivesComplete int              `json:"threads_complete"`
	NumHashesComplete  int               `json:"hashes_complete"`
	NumFiles           int               `json:"num_files"`
	NumFilesComplete   int               `json:"files_complete"`
	TotalSize          int64             `json:"size"`
	TotalSizeComplete  int64             `json:"size_complete"`
	ElapsedTime        time.Duration     `json:"elapsed_time"`
	Archives           []ArchiveSnapshot `json:"archives"`
}

// GetSnapshot synthesizes a Snapshot from job, a pure function of the
// persisted state at read time (spec §4.K). numHashesComplete is defined
// to equal numArchivesComplete since hashes and archives are 1-1 in this
// design.
func GetSnapshot(job *types.Job) *Snapshot {
	snap := &Snapshot{
		JobId:               job.JobId,
		UserName:            job.UserName,
		State:               job.State,
		NumArchives:         job.NumArchives,
		NumArchivesComplete: job.NumArchivesComplete,
		NumHashesComplete:   job.NumArchivesComplete,
		NumFiles:            job.NumFiles,
		NumFilesComplete:    job.NumFilesComplete,
		TotalSize:           job.TotalSize,
		TotalSizeComplete:   job.TotalSizeComplete,
		ElapsedTime:         elapsedTime(job),
	}

	for _, a := range job.Archives {
		if !a.Terminal() {
			continue
		}
		snap.Archives = append(snap.Archives, ArchiveSnapshot{
			ArchiveId: a.ArchiveId,
			State:     a.State,
			OutputURL: a.OutputURL,
			HashURL:   a.HashURL,
			NumFiles:  a.NumFiles,
			Size:      a.Size,
			Host:      a.Host,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
		})
	}

	return snap
}

// elapsedTime implements spec §4.K's
// "(endTime>0 ? endTime : now) − startTime, or 0 if startTime == 0".
func elapsedTime(job *types.Job) time.Duration {
	if job.StartTime.IsZero() {
		return 0
	}
	end := time.Now()
	if !job.EndTime.IsZero() {
		end = job.EndTime
	}
	return end.Sub(job.StartTime)
}
