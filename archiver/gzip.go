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

package archiver

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/uwedeportivo/bundler/bundleerr"
	"github.com/uwedeportivo/bundler/types"
)

// gzipArchiver produces a gzip-compressed tar (.tar.gz): first a plain
// intermediate tar, then a streamed gzip compression pass into the final
// artifact, then the intermediate is removed (spec §4.E). Grounded on the
// teacher's cgzip-wrapped writers in archive/archive.go, replacing the
// teacher's CGO-bound cgzip with the pure-Go klauspost/compress/gzip used
// elsewhere in the retrieved corpus (nabbar-golib).
type gzipArchiver struct{}

func (a *gzipArchiver) Bundle(elements []*types.ArchiveElement, outputURI string, onEntryComplete OnEntryComplete) error {
	tarPath, err := buildIntermediateTar(elements, onEntryComplete)
	if err != nil {
		return err
	}
	defer os.Remove(tarPath)

	in, err := os.Open(tarPath)
	if err != nil {
		return bundleerr.TransientIO.New("reopening intermediate tar: %v", err)
	}
	defer in.Close()
	br := bufio.NewReaderSize(in, copyBufSize)

	out, err := prepareOutput(outputURI)
	if err != nil {
		return err
	}
	defer out.Close()

	gw, err := gzip.NewWriterLevel(out, gzip.DefaultCompression)
	if err != nil {
		return bundleerr.TransientIO.New("creating gzip writer: %v", err)
	}

	if _, err := io.Copy(gw, br); err != nil {
		gw.Close()
		return bundleerr.TransientIO.New("compressing tar into gzip: %v", err)
	}

	if err := gw.Close(); err != nil {
		return bundleerr.TransientIO.New("closing gzip writer: %v", err)
	}

	return nil
}
