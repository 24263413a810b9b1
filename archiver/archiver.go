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

// Package archiver streams a set of ArchiveElements into a typed archive
// container (component E of the bundler spec): one variant per
// types.ArchiveType, all sharing the bundle(elements, outputURI,
// onEntryComplete) contract from spec §4.E. Grounded on the teacher's
// archiveWorker.archive/archiveZip/archiveGzip family in
// archive/archive.go, generalized from "ingest foreign archives into a
// depot" to "bundle arbitrary source files into one of six output
// container types".
package archiver

import (
	"bufio"
	"io"
	"os"

	"github.com/golang/glog"

	"github.com/uwedeportivo/bundler/bundleerr"
	"github.com/uwedeportivo/bundler/fsprovider"
	"github.com/uwedeportivo/bundler/types"
)

// copyBufSize matches the teacher's own bufio usage in archive.archive and
// the ~8KiB default the spec calls "adequate" (spec §4.E).
const copyBufSize = 8 * 1024

// OnEntryComplete is invoked once per source file immediately after its
// bytes have been written and its archive entry closed (spec §4.E, feeding
// component G, the File-Completion Observer).
type OnEntryComplete func(elem *types.ArchiveElement)

// Archiver streams elements into one output archive artifact.
type Archiver interface {
	// Bundle deletes outputURI if it exists, then writes elements into it
	// in order, invoking onEntryComplete after each entry.
	Bundle(elements []*types.ArchiveElement, outputURI string, onEntryComplete OnEntryComplete) error
}

// New returns the Archiver variant for archiveType.
func New(archiveType types.ArchiveType) (Archiver, error) {
	switch archiveType {
	case types.ZIP:
		return &zipArchiver{}, nil
	case types.TAR:
		return &tarArchiver{}, nil
	case types.AR:
		return &arArchiver{}, nil
	case types.CPIO:
		return &cpioArchiver{}, nil
	case types.GZIP:
		return &gzipArchiver{}, nil
	case types.BZIP2:
		return &bzip2Archiver{}, nil
	default:
		return nil, bundleerr.InvalidRequest.New("unknown archive type %v", archiveType)
	}
}

// prepareOutput deletes outputURI if it already exists and opens a fresh
// writer for it (spec §4.E: "Delete outputURI if it already exists").
func prepareOutput(outputURI string) (io.WriteCloser, error) {
	exists, err := fsprovider.Exists(outputURI)
	if err != nil {
		return nil, err
	}
	if exists {
		glog.V(2).Infof("archiver: deleting pre-existing output %s", outputURI)
		if err := fsprovider.Delete(outputURI); err != nil {
			return nil, err
		}
	}

	return fsprovider.Write(outputURI)
}

// copyElement streams one source file into w.
func copyElement(w io.Writer, elem *types.ArchiveElement) error {
	r, _, err := fsprovider.Resolve(elem.SourceURI)
	if err != nil {
		return err
	}
	defer r.Close()

	br := bufio.NewReaderSize(r, copyBufSize)

	_, err = io.Copy(w, br)
	return err
}

// buildIntermediateTar streams elements into a fresh local temp file
// containing a TAR, invoking onEntryComplete as entries are written, and
// returns the temp file's path. Callers of the compressed variants (GZIP,
// BZIP2) compress this file into the final artifact and then remove it
// (spec §4.E: "first produce an intermediate .tar artifact ... then delete
// the intermediate").
func buildIntermediateTar(elements []*types.ArchiveElement, onEntryComplete OnEntryComplete) (string, error) {
	tmp, err := os.CreateTemp("", "bundler-intermediate-*.tar")
	if err != nil {
		return "", bundleerr.TransientIO.New("creating intermediate tar: %v", err)
	}
	path := tmp.Name()

	bw := bufio.NewWriterSize(tmp, copyBufSize)

	if err := writeTarEntries(bw, elements, onEntryComplete); err != nil {
		tmp.Close()
		os.Remove(path)
		return "", err
	}

	if err := bw.Flush(); err != nil {
		tmp.Close()
		os.Remove(path)
		return "", bundleerr.TransientIO.New("flushing intermediate tar: %v", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(path)
		return "", bundleerr.TransientIO.New("closing intermediate tar: %v", err)
	}

	return path, nil
}
