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

	"github.com/uwedeportivo/bundler/types"
)

func TestRequestDefaults(t *testing.T) {
	r := &Request{}
	if got := r.normalizedUserName(); got != defaultUserName {
		t.Errorf("normalizedUserName() = %q, want %q", got, defaultUserName)
	}
	if got := r.normalizedOutputFilename(); got != defaultOutputFilename {
		t.Errorf("normalizedOutputFilename() = %q, want %q", got, defaultOutputFilename)
	}
	at, err := r.archiveType()
	if err != nil {
		t.Fatal(err)
	}
	if at != types.ZIP {
		t.Errorf("archiveType() default = %v, want ZIP", at)
	}
}

func TestRequestExplicitValues(t *testing.T) {
	r := &Request{UserName: "alice", OutputFilename: "nightly", Type: "TAR"}
	if got := r.normalizedUserName(); got != "alice" {
		t.Errorf("normalizedUserName() = %q, want alice", got)
	}
	if got := r.normalizedOutputFilename(); got != "nightly" {
		t.Errorf("normalizedOutputFilename() = %q, want nightly", got)
	}
	at, err := r.archiveType()
	if err != nil {
		t.Fatal(err)
	}
	if at != types.TAR {
		t.Errorf("archiveType() = %v, want TAR", at)
	}
}

func TestRequestUnknownArchiveTypeFails(t *testing.T) {
	r := &Request{Type: "RAR"}
	if _, err := r.archiveType(); err == nil {
		t.Error("archiveType() with an unsupported type should fail")
	}
}
