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

	"github.com/dsnet/compress/bzip2"

	"github.com/uwedeportivo/bundler/bundleerr"
	"github.com/uwedeportivo/bundler/types"
)

// bzip2Archiver produces a bzip2-compressed tar (.tar.bz2) the same way
// gzipArchiver produces a .tar.gz: intermediate tar, then a streamed
// compression pass, then intermediate removal. The standard library's
// compress/bzip2 is read-only, so this uses github.com/dsnet/compress's
// bzip2 writer, the only BZIP2-writing library found anywhere in the
// retrieved corpus (nabbar-golib's go.mod).
type bzip2Archiver struct{}

func (a *bzip2Archiver) Bundle(elements []*types.ArchiveElement, outputURI string, onEntryComplete OnEntryComplete) error {
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

	bw, err := bzip2.NewWriter(out, nil)
	if err != nil {
		return bundleerr.TransientIO.New("creating bzip2 writer: %v", err)
	}

	if _, err := io.Copy(bw, br); err != nil {
		bw.Close()
		return bundleerr.TransientIO.New("compressing tar into bzip2: %v", err)
	}

	if err := bw.Close(); err != nil {
		return bundleerr.TransientIO.New("closing bzip2 writer: %v", err)
	}

	return nil
}
