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

package jobworker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/uwedeportivo/bundler/fsprovider"
	"github.com/uwedeportivo/bundler/repo"
	"github.com/uwedeportivo/bundler/tracker"
	"github.com/uwedeportivo/bundler/types"
)

func init() {
	fsprovider.Register("file", fsprovider.NewLocalDriver())
}

func TestRunSucceedsAndMarksArchiveComplete(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src.txt")
	if err := os.WriteFile(srcPath, []byte("payload"), 0644); err != nil {
		t.Fatal(err)
	}

	outputURI := "file://" + filepath.Join(dir, "out.zip")
	hashURI := "file://" + filepath.Join(dir, "out.zip.sha1")

	job := &types.Job{
		JobId:       "job1",
		NumArchives: 1,
		NumFiles:    1,
		TotalSize:   7,
		Archives: []*types.ArchiveJob{
			{
				JobId:     "job1",
				ArchiveId: 0,
				Type:      types.ZIP,
				OutputURI: outputURI,
				HashURI:   hashURI,
				NumFiles:  1,
				State:     types.NotStarted,
				Files: []*types.FileEntry{
					{JobId: "job1", ArchiveId: 0, SourceURI: "file://" + srcPath, EntryPath: "src.txt", Size: 7, State: types.FileNotStarted},
				},
			},
		},
	}

	repository, _ := repo.Open("memory", "")
	if err := repository.PersistJob(job); err != nil {
		t.Fatal(err)
	}

	jt := tracker.NewJobTracker(repository, "job1")
	w := New(repository, jt, "job1", 0, types.SHA1, "test-host")
	w.Run()

	archive, err := repository.GetArchive("job1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if archive.State != types.Complete {
		t.Fatalf("archive state = %v, want Complete", archive.State)
	}
	if archive.Host != "test-host" {
		t.Errorf("archive host = %q, want test-host", archive.Host)
	}
	if archive.Size == 0 {
		t.Errorf("archive size was not recorded")
	}

	if exists, _ := fsprovider.Exists(outputURI); !exists {
		t.Errorf("output artifact %s was not written", outputURI)
	}
	if exists, _ := fsprovider.Exists(hashURI); !exists {
		t.Errorf("hash artifact %s was not written", hashURI)
	}

	fe, err := repository.GetFileEntry("job1", 0, "file://"+srcPath)
	if err != nil {
		t.Fatal(err)
	}
	if fe.State != types.FileComplete {
		t.Errorf("file entry state = %v, want FileComplete", fe.State)
	}

	gotJob, err := repository.GetJob("job1")
	if err != nil {
		t.Fatal(err)
	}
	if gotJob.State != types.Complete {
		t.Errorf("job state = %v, want Complete", gotJob.State)
	}
}

func TestRunMarksArchiveErrorOnMissingSource(t *testing.T) {
	dir := t.TempDir()
	outputURI := "file://" + filepath.Join(dir, "out.zip")
	hashURI := "file://" + filepath.Join(dir, "out.zip.sha1")

	job := &types.Job{
		JobId:       "job1",
		NumArchives: 1,
		Archives: []*types.ArchiveJob{
			{
				JobId:     "job1",
				ArchiveId: 0,
				Type:      types.ZIP,
				OutputURI: outputURI,
				HashURI:   hashURI,
				NumFiles:  1,
				State:     types.NotStarted,
				Files: []*types.FileEntry{
					{JobId: "job1", ArchiveId: 0, SourceURI: "file://" + filepath.Join(dir, "nonexistent"), EntryPath: "a", Size: 1, State: types.FileNotStarted},
				},
			},
		},
	}

	repository, _ := repo.Open("memory", "")
	if err := repository.PersistJob(job); err != nil {
		t.Fatal(err)
	}

	jt := tracker.NewJobTracker(repository, "job1")
	w := New(repository, jt, "job1", 0, types.SHA1, "test-host")
	w.Run()

	archive, err := repository.GetArchive("job1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if archive.State != types.Error {
		t.Fatalf("archive state = %v, want Error", archive.State)
	}

	gotJob, err := repository.GetJob("job1")
	if err != nil {
		t.Fatal(err)
	}
	if gotJob.State != types.Complete {
		t.Errorf("job state = %v, want Complete (ERROR still counts toward termination)", gotJob.State)
	}
}
