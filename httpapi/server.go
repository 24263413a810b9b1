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

// Package httpapi is the thin HTTP/JSON translation layer in front of the
// bundle dispatcher (spec §6's "Submission API", explicitly out of the
// core's scope beyond its contract). The teacher fronts service.RombaService
// with gorilla/rpc's JSON-RPC 2.0 codec (cmds/rombaserver/main.go); this
// spec's six endpoints are plain REST-ish routes with no RPC envelope, so
// they're served directly off stdlib net/http.ServeMux rather than forcing
// an RPC shape the spec doesn't ask for.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/uwedeportivo/bundler/bundle"
	"github.com/uwedeportivo/bundler/repo"
)

// Server wires the dispatcher and repository to HTTP handlers.
type Server struct {
	dispatcher  *bundle.Dispatcher
	repository  repo.JobRepository
	requestDir  string
	idGenerator func() (string, error)
}

// NewServer builds a Server. requestDir, when non-empty, enables the
// debug-archival side-feature of spec §6 ("bundle.request.directory").
func NewServer(dispatcher *bundle.Dispatcher, repository repo.JobRepository, requestDir string) *Server {
	return &Server{
		dispatcher:  dispatcher,
		repository:  repository,
		requestDir:  requestDir,
		idGenerator: newJobId,
	}
}

// Handler builds the routed mux for this Server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/BundleFilesJSON", s.handleBundleJSON)
	mux.HandleFunc("/BundleFiles", s.handleBundleJSON)
	mux.HandleFunc("/BundleFilesText", s.handleBundleText)
	mux.HandleFunc("/GetState", s.handleGetState)
	mux.HandleFunc("/isAlive", s.handleIsAlive)
	mux.HandleFunc("/DataSourceTest", s.handleDataSourceTest)
	return mux
}

// submissionBody is the wire shape accepted by all three bundle endpoints
// (spec §6 "Request JSON"); BundleFilesText carries the same JSON as a
// text/plain body instead of application/json.
type submissionBody struct {
	Files          []rawFileEntry `json:"files"`
	Type           string         `json:"type"`
	MaxSize        int64          `json:"max_size"`
	OutputFilename string         `json:"output_filename"`
	UserName       string         `json:"user_name"`
}

// rawFileEntry accepts either a bare path string or a {path, archive_path}
// object (spec §6: "mixed forms accepted").
type rawFileEntry struct {
	Path        string
	ArchivePath string
}

func (e *rawFileEntry) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		e.Path = s
		return nil
	}

	var obj struct {
		Path        string `json:"path"`
		ArchivePath string `json:"archive_path"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	e.Path = obj.Path
	e.ArchivePath = obj.ArchivePath
	return nil
}

func (s *Server) handleBundleJSON(w http.ResponseWriter, r *http.Request) {
	s.handleSubmission(w, r)
}

func (s *Server) handleBundleText(w http.ResponseWriter, r *http.Request) {
	s.handleSubmission(w, r)
}

func (s *Server) handleSubmission(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "reading request body", http.StatusBadRequest)
		return
	}

	s.archiveRawRequest(body)

	var sub submissionBody
	if err := json.Unmarshal(body, &sub); err != nil {
		http.Error(w, "malformed submission JSON", http.StatusBadRequest)
		return
	}

	req := &bundle.Request{
		Type:           sub.Type,
		MaxSizeMB:      sub.MaxSize,
		OutputFilename: sub.OutputFilename,
		UserName:       sub.UserName,
	}
	for _, f := range sub.Files {
		req.Files = append(req.Files, bundle.FileRequest{Path: f.Path, ArchivePath: f.ArchivePath})
	}

	jobId, err := s.idGenerator()
	if err != nil {
		http.Error(w, "generating job id", http.StatusInternalServerError)
		return
	}

	job, err := s.dispatcher.Submit(jobId, req)
	if err != nil {
		glog.Errorf("httpapi: submit failed for job %s: %v", jobId, err)
		http.Error(w, "submission failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"job_id":    job.JobId,
		"user_name": job.UserName,
		"state":     job.State.String(),
	})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	jobId := r.URL.Query().Get("job_id")
	job, err := s.repository.GetJob(jobId)
	if err != nil {
		http.Error(w, "unknown job_id", http.StatusInternalServerError)
		return
	}

	writeJSON(w, bundle.GetSnapshot(job))
}

func (s *Server) handleIsAlive(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "OK")
}

func (s *Server) handleDataSourceTest(w http.ResponseWriter, r *http.Request) {
	ids, err := s.repository.ListJobIds()
	if err != nil {
		http.Error(w, "listing job ids", http.StatusInternalServerError)
		return
	}
	writeJSON(w, ids)
}

// archiveRawRequest implements the debug-archival side-feature of spec §6
// ("bundle.request.directory"): a pure logging feature, errors here must
// never affect the submission response.
func (s *Server) archiveRawRequest(body []byte) {
	if s.requestDir == "" {
		return
	}

	name, err := uuid.NewRandom()
	if err != nil {
		glog.Warningf("httpapi: failed to generate debug-archival id: %v", err)
		return
	}

	path := s.requestDir + "/" + name.String() + ".json"
	if err := writeDebugFile(path, body); err != nil {
		glog.Warningf("httpapi: failed to archive raw request to %s: %v", path, err)
	}
}

func writeDebugFile(path string, body []byte) error {
	return os.WriteFile(path, body, 0644)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Errorf("httpapi: failed to encode JSON response: %v", err)
	}
}

func newJobId() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	// spec §3: "job id (16-byte hex, unique)" — a raw UUID is already 16
	// bytes; hex-encode without separators to match.
	b := id[:]
	const hexDigits = "0123456789abcdef"
	out := make([]byte, 0, 32)
	for _, c := range b {
		out = append(out, hexDigits[c>>4], hexDigits[c&0x0f])
	}
	return string(out), nil
}
