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

package types

import "time"

// FileEntry is one source file inside one archive. It is created when the
// owning Job is persisted and mutated only by the file-completion observer.
type FileEntry struct {
	JobId     string
	ArchiveId int
	SourceURI string
	EntryPath string
	Size      int64
	State     FileState
}

// ArchiveJob is one output archive artifact and everything needed to
// produce, locate and verify it.
type ArchiveJob struct {
	JobId       string
	ArchiveId   int
	Type        ArchiveType
	OutputURI   string
	HashURI     string
	OutputURL   string
	HashURL     string
	Host        string
	StartTime   time.Time
	EndTime     time.Time
	NumFiles    int
	Size        int64
	State       JobState
	Files       []*FileEntry
}

// Terminal reports whether the archive has reached a state from which it
// never transitions again (spec §3 ArchiveJob: "immutable after reaching a
// terminal state").
func (a *ArchiveJob) Terminal() bool {
	return a.State == Complete || a.State == Error
}

// Job is the overall client submission, exclusively owning its ArchiveJobs.
type Job struct {
	JobId               string
	UserName            string
	RequestedType       ArchiveType
	TargetArchiveSize   int64
	TotalSize           int64
	TotalSizeComplete   int64
	NumFiles            int
	NumFilesComplete    int
	NumArchives         int
	NumArchivesComplete int
	State               JobState
	StartTime           time.Time
	EndTime             time.Time
	Archives            []*ArchiveJob
}

// Archive looks up one of the job's archives by id, or nil if absent.
func (j *Job) Archive(archiveId int) *ArchiveJob {
	for _, a := range j.Archives {
		if a.ArchiveId == archiveId {
			return a
		}
	}
	return nil
}

// ArchiveElement is the transient unit the bin-packer produces and the
// archiver family consumes. It is never persisted (spec §3).
type ArchiveElement struct {
	SourceURI string
	EntryPath string
	Size      int64
}
