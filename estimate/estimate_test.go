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

package estimate

import (
	"testing"

	"github.com/uwedeportivo/bundler/types"
)

func TestEstimateUncompressedTypesReturnSizeUnchanged(t *testing.T) {
	e := NewEstimator(80)

	for _, at := range []types.ArchiveType{types.TAR, types.AR, types.CPIO} {
		if got := e.Estimate(1000, at); got != 1000 {
			t.Errorf("Estimate(1000, %v) = %d, want 1000", at, got)
		}
	}
}

func TestEstimateCompressedTypesApplyPercentage(t *testing.T) {
	tests := []struct {
		pct  int64
		size int64
		want int64
	}{
		{pct: 80, size: 1000, want: 200},
		{pct: 0, size: 1000, want: 1000},
		{pct: 100, size: 1000, want: 0},
		{pct: 50, size: 999, want: 499},
	}

	for _, tt := range tests {
		e := NewEstimator(tt.pct)
		for _, at := range []types.ArchiveType{types.ZIP, types.GZIP, types.BZIP2} {
			if got := e.Estimate(tt.size, at); got != tt.want {
				t.Errorf("Estimate(%d, %v) with pct=%d = %d, want %d", tt.size, at, tt.pct, got, tt.want)
			}
		}
	}
}
