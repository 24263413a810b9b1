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
	"fmt"
	"strings"

	"github.com/uwedeportivo/bundler/fsprovider"
	"github.com/uwedeportivo/bundler/types"
)

// nameGenerator derives the per-archive output/hash URIs and URLs from the
// staging layout described in spec §6: "<staging>/<job_id>/<template>_
// <archive_id>.<ext> plus sibling .<hash-ext> file", with the URL form
// computed by replacing the staging root prefix with the base URL.
type nameGenerator struct {
	stagingDirectory string
	baseURL          string
}

func newNameGenerator(stagingDirectory, baseURL string) *nameGenerator {
	return &nameGenerator{stagingDirectory: stagingDirectory, baseURL: baseURL}
}

// jobDirectory is the staging subdirectory that holds every artifact of
// one job.
func (ng *nameGenerator) jobDirectory(jobId string) string {
	return fsprovider.Join(ng.stagingDirectory, jobId)
}

// outputURI returns the archive artifact's own URI for one archive within
// a job.
func (ng *nameGenerator) outputURI(jobId, template string, archiveId int, archiveType types.ArchiveType) string {
	name := fmt.Sprintf("%s_%d%s", template, archiveId, archiveType.Ext())
	return fsprovider.Join(ng.jobDirectory(jobId), name)
}

// hashURI returns the sibling digest file's URI for outputURI.
func (ng *nameGenerator) hashURI(outputURI string, hashType types.HashType) string {
	return outputURI + "." + hashType.Ext()
}

// url turns a staged URI into its externally reachable HTTP form by
// replacing the staging root prefix with the configured base URL and
// normalizing path separators (spec §6).
func (ng *nameGenerator) url(uri string) string {
	path := fsprovider.StripScheme(uri)
	stagingPath := fsprovider.StripScheme(ng.stagingDirectory)

	rel := strings.TrimPrefix(path, stagingPath)
	joined := strings.TrimSuffix(ng.baseURL, "/") + "/" + strings.TrimPrefix(rel, "/")
	return fsprovider.NormalizeSlashes(joined)
}
