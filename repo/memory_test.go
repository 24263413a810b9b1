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
	"testing"

	"github.com/uwedeportivo/bundler/types"
)

func newTestJob(jobId string) *types.Job {
	return &types.Job{
		JobId:       jobId,
		UserName:    "tester",
		NumArchives: 1,
		Archives: []*types.ArchiveJob{
			{
				JobId:     jobId,
				ArchiveId: 0,
				NumFiles:  1,
				Files: []*types.FileEntry{
					{JobId: jobId, ArchiveId: 0, SourceURI: "file://a", EntryPath: "a", State: types.FileNotStarted},
				},
			},
		},
	}
}

func TestOpenUnregisteredBackendFails(t *testing.T) {
	if _, err := Open("no-such-backend", ""); err == nil {
		t.Fatal("Open() of an unregistered backend should fail")
	}
}

func TestMemoryRepoPersistAndGet(t *testing.T) {
	r, err := Open("memory", "")
	if err != nil {
		t.Fatal(err)
	}

	job := newTestJob("job1")
	if err := r.PersistJob(job); err != nil {
		t.Fatal(err)
	}

	got, err := r.GetJob("job1")
	if err != nil {
		t.Fatal(err)
	}
	if got.JobId != "job1" || got.UserName != "tester" {
		t.Errorf("GetJob() = %+v, want matching job1/tester", got)
	}
}

func TestMemoryRepoGetJobReturnsIndependentCopies(t *testing.T) {
	r, _ := Open("memory", "")
	job := newTestJob("job1")
	if err := r.PersistJob(job); err != nil {
		t.Fatal(err)
	}

	a, _ := r.GetJob("job1")
	b, _ := r.GetJob("job1")
	a.UserName = "mutated"

	if b.UserName == "mutated" {
		t.Error("GetJob() returned aliased state; mutating one snapshot affected another")
	}

	// Mutating the caller's original struct after PersistJob must not be
	// visible either.
	job.UserName = "also-mutated"
	fresh, _ := r.GetJob("job1")
	if fresh.UserName == "also-mutated" {
		t.Error("PersistJob() aliased the caller's Job instead of copying it")
	}
}

func TestMemoryRepoUpdateArchivePreservesFiles(t *testing.T) {
	r, _ := Open("memory", "")
	job := newTestJob("job1")
	if err := r.PersistJob(job); err != nil {
		t.Fatal(err)
	}

	archive, err := r.GetArchive("job1", 0)
	if err != nil {
		t.Fatal(err)
	}
	archive.State = types.Complete
	archive.Files = nil // UpdateArchive callers never carry Files; repo must preserve them

	if err := r.UpdateArchive(archive); err != nil {
		t.Fatal(err)
	}

	got, err := r.GetArchive("job1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if got.State != types.Complete {
		t.Errorf("archive state = %v, want Complete", got.State)
	}
	if len(got.Files) != 1 {
		t.Errorf("archive has %d files after UpdateArchive, want 1 preserved", len(got.Files))
	}
}

func TestMemoryRepoUpdateFileEntryState(t *testing.T) {
	r, _ := Open("memory", "")
	job := newTestJob("job1")
	if err := r.PersistJob(job); err != nil {
		t.Fatal(err)
	}

	if err := r.UpdateFileEntryState("job1", 0, "file://a", types.FileComplete); err != nil {
		t.Fatal(err)
	}

	fe, err := r.GetFileEntry("job1", 0, "file://a")
	if err != nil {
		t.Fatal(err)
	}
	if fe.State != types.FileComplete {
		t.Errorf("file entry state = %v, want FileComplete", fe.State)
	}
}

func TestMemoryRepoListJobIds(t *testing.T) {
	r, _ := Open("memory", "")
	r.PersistJob(newTestJob("job1"))
	r.PersistJob(newTestJob("job2"))

	ids, err := r.ListJobIds()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Fatalf("ListJobIds() = %v, want 2 entries", ids)
	}
}

func TestMemoryRepoGetMissingJobFails(t *testing.T) {
	r, _ := Open("memory", "")
	if _, err := r.GetJob("nope"); err == nil {
		t.Error("GetJob() of a missing job should fail")
	}
}
