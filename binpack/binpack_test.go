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

package binpack

import (
	"testing"

	"github.com/uwedeportivo/bundler/estimate"
	"github.com/uwedeportivo/bundler/types"
)

func TestPackEmptyInputReturnsNoPlans(t *testing.T) {
	est := estimate.NewEstimator(0)
	plans := Pack(nil, 1024, types.TAR, est)
	if len(plans) != 0 {
		t.Fatalf("Pack(nil) = %d plans, want 0", len(plans))
	}
}

func TestPackSplitsOnTargetSize(t *testing.T) {
	est := estimate.NewEstimator(0) // TAR is uncompressed so pct doesn't matter
	files := []SourceFile{
		{URI: "file://a", EntryPath: "a", Size: 400},
		{URI: "file://b", EntryPath: "b", Size: 400},
		{URI: "file://c", EntryPath: "c", Size: 400},
	}

	plans := Pack(files, 1000, types.TAR, est)

	if len(plans) != 2 {
		t.Fatalf("Pack() produced %d plans, want 2", len(plans))
	}
	if len(plans[0].Elements) != 2 {
		t.Errorf("first plan has %d elements, want 2", len(plans[0].Elements))
	}
	if len(plans[1].Elements) != 1 {
		t.Errorf("second plan has %d elements, want 1", len(plans[1].Elements))
	}
}

func TestPackNeverReordersInput(t *testing.T) {
	est := estimate.NewEstimator(0)
	files := []SourceFile{
		{URI: "file://z", EntryPath: "z", Size: 10},
		{URI: "file://a", EntryPath: "a", Size: 10},
		{URI: "file://m", EntryPath: "m", Size: 10},
	}

	plans := Pack(files, 1000, types.TAR, est)
	if len(plans) != 1 {
		t.Fatalf("Pack() produced %d plans, want 1", len(plans))
	}

	want := []string{"z", "a", "m"}
	for i, elem := range plans[0].Elements {
		if elem.EntryPath != want[i] {
			t.Errorf("element %d = %s, want %s", i, elem.EntryPath, want[i])
		}
	}
}

func TestPackSingleOversizedFileGetsItsOwnArchive(t *testing.T) {
	est := estimate.NewEstimator(0)
	files := []SourceFile{
		{URI: "file://huge", EntryPath: "huge", Size: 5000},
		{URI: "file://small", EntryPath: "small", Size: 10},
	}

	plans := Pack(files, 1000, types.TAR, est)

	if len(plans) != 2 {
		t.Fatalf("Pack() produced %d plans, want 2", len(plans))
	}
	if len(plans[0].Elements) != 1 || plans[0].Elements[0].EntryPath != "huge" {
		t.Errorf("first plan should contain only the oversized file alone")
	}
}

func TestPackIsDeterministicAcrossRuns(t *testing.T) {
	est := estimate.NewEstimator(20)
	files := []SourceFile{
		{URI: "file://1", EntryPath: "1", Size: 300},
		{URI: "file://2", EntryPath: "2", Size: 300},
		{URI: "file://3", EntryPath: "3", Size: 300},
		{URI: "file://4", EntryPath: "4", Size: 300},
	}

	first := Pack(files, 700, types.ZIP, est)
	second := Pack(files, 700, types.ZIP, est)

	if len(first) != len(second) {
		t.Fatalf("non-deterministic plan count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if len(first[i].Elements) != len(second[i].Elements) {
			t.Fatalf("plan %d element count differs across runs", i)
		}
	}
}

func TestClampSize(t *testing.T) {
	tests := []struct {
		requested, min, max int64
		wantMB              int64
	}{
		{requested: 50, min: 1, max: 1024, wantMB: 50},
		{requested: 0, min: 1, max: 1024, wantMB: 1},
		{requested: 5000, min: 1, max: 1024, wantMB: 1024},
	}

	for _, tt := range tests {
		got := ClampSize(tt.requested, tt.min, tt.max)
		want := tt.wantMB * 1024 * 1024
		if got != want {
			t.Errorf("ClampSize(%d, %d, %d) = %d, want %d", tt.requested, tt.min, tt.max, got, want)
		}
	}
}
