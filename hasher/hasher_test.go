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

package hasher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/uwedeportivo/bundler/fsprovider"
	"github.com/uwedeportivo/bundler/types"
)

func init() {
	fsprovider.Register("file", fsprovider.NewLocalDriver())
}

func TestHashKnownVectors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		algo types.HashType
		want string
	}{
		{types.MD5, "5eb63bbbe01eeed093cb22bb8f5acdc3"},
		{types.SHA1, "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"},
		{types.SHA256, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"},
	}

	for _, tt := range tests {
		got, err := Hash("file://"+path, tt.algo)
		if err != nil {
			t.Fatalf("Hash(%v) error: %v", tt.algo, err)
		}
		if got != tt.want {
			t.Errorf("Hash(%v) = %s, want %s", tt.algo, got, tt.want)
		}
	}
}

func TestHashToFileWritesDigest(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.txt")
	outputPath := filepath.Join(dir, "input.txt.sha1")

	if err := os.WriteFile(inputPath, []byte("hello world"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := HashToFile("file://"+inputPath, "file://"+outputPath, types.SHA1); err != nil {
		t.Fatalf("HashToFile() error: %v", err)
	}

	got, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	want := "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"
	if string(got) != want {
		t.Errorf("hash file contains %q, want %q", got, want)
	}
}

func TestHashUnsupportedAlgorithm(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Hash("file://"+path, types.HashType(99)); err == nil {
		t.Error("Hash() with unsupported algorithm should fail")
	}
}
