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
	"testing"
	"time"

	"github.com/uwedeportivo/bundler/types"
)

func TestGetSnapshotOnlyIncludesTerminalArchives(t *testing.T) {
	job := &types.Job{
		JobId:       "job1",
		NumArchives: 2,
		Archives: []*types.ArchiveJob{
			{ArchiveId: 0, State: types.Complete},
			{ArchiveId: 1, State: types.InProgress},
		},
	}

	snap := GetSnapshot(job)
	if len(snap.Archives) != 1 {
		t.Fatalf("Snapshot.Archives has %d entries, want 1", len(snap.Archives))
	}
	if snap.Archives[0].ArchiveId != 0 {
		t.Errorf("surviving archive id = %d, want 0", snap.Archives[0].ArchiveId)
	}
}

func TestGetSnapshotElapsedTimeZeroBeforeStart(t *testing.T) {
	job := &types.Job{JobId: "job1"}
	snap := GetSnapshot(job)
	if snap.ElapsedTime != 0 {
		t.Errorf("ElapsedTime = %v, want 0 for a job that never started", snap.ElapsedTime)
	}
}

func TestGetSnapshotElapsedTimeUsesEndTimeWhenSet(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(5 * time.Minute)
	job := &types.Job{JobId: "job1", StartTime: start, EndTime: end}

	snap := GetSnapshot(job)
	if snap.ElapsedTime != 5*time.Minute {
		t.Errorf("ElapsedTime = %v, want 5m", snap.ElapsedTime)
	}
}

func TestGetSnapshotHashesCompleteMirrorsArchivesComplete(t *testing.T) {
	job := &types.Job{JobId: "job1", NumArchivesComplete: 3}
	snap := GetSnapshot(job)
	if snap.NumHashesComplete != 3 {
		t.Errorf("NumHashesComplete = %d, want 3", snap.NumHashesComplete)
	}
}
