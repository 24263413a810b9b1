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

// Package bundle is the Job Factory / Dispatcher and Job-State Reader
// (components J and K of the bundler spec): it validates and expands a
// submission, bin-packs it, persists the Job, spawns one Archive Worker
// per ArchiveJob, and synthesizes read-side snapshots. Grounded on the
// teacher's service.RombaService (service/service.go), which plays the
// same "accept a request, validate, spawn workers, track a handle" role
// for ROM-archive operations.
package bundle

import "github.com/uwedeportivo/bundler/types"

// FileRequest is one entry of a submission's file list (spec §6: "files:
// [{path, archive_path?} | string]").
type FileRequest struct {
	Path        string `json:"path"`
	ArchivePath string `json:"archive_path,omitempty"`
}

// Request is the translated form of a submission, after the HTTP layer's
// JSON/text decoding but before validation (spec §6 "Request JSON").
type Request struct {
	Files          []FileRequest
	Type           string
	MaxSizeMB      int64
	OutputFilename string
	UserName       string
}

// defaultUserName is used when the submission omits one (spec §4.J.1).
const defaultUserName = "unavailable"

// defaultOutputFilename is used when the submission omits a template.
const defaultOutputFilename = "bundle"

func (r *Request) normalizedUserName() string {
	if r.UserName == "" {
		return defaultUserName
	}
	return r.UserName
}

func (r *Request) normalizedOutputFilename() string {
	if r.OutputFilename == "" {
		return defaultOutputFilename
	}
	return r.OutputFilename
}

func (r *Request) archiveType() (types.ArchiveType, error) {
	if r.Type == "" {
		return types.ZIP, nil
	}
	return types.ParseArchiveType(r.Type)
}
