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
	"archive/tar"
	"io"

	"github.com/uwedeportivo/bundler/bundleerr"
	"github.com/uwedeportivo/bundler/types"
)

// tarArchiver writes a plain, uncompressed POSIX tar. Grounded on
// nabbar-golib's archive/tar/writer.go Create, adapted from "walk a
// directory tree" to "stream a pre-computed element list".
type tarArchiver struct{}

func (a *tarArchiver) Bundle(elements []*types.ArchiveElement, outputURI string, onEntryComplete OnEntryComplete) error {
	w, err := prepareOutput(outputURI)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := writeTarEntries(w, elements, onEntryComplete); err != nil {
		return err
	}

	return nil
}

// writeTarEntries writes elements as tar entries into w. Shared by the
// plain TAR archiver and the GZIP/BZIP2 archivers' intermediate-tar step.
func writeTarEntries(w io.Writer, elements []*types.ArchiveElement, onEntryComplete OnEntryComplete) error {
	tw := tar.NewWriter(w)
	defer tw.Close()

	for _, elem := range elements {
		hdr := &tar.Header{
			Name:     elem.EntryPath,
			Mode:     0644,
			Size:     elem.Size,
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return bundleerr.TransientIO.New("writing tar header for %s: %v", elem.EntryPath, err)
		}
		if err := copyElement(tw, elem); err != nil {
			return bundleerr.TransientIO.New("writing tar entry %s: %v", elem.EntryPath, err)
		}
		if onEntryComplete != nil {
			onEntryComplete(elem)
		}
	}

	if err := tw.Close(); err != nil {
		return bundleerr.TransientIO.New("closing tar: %v", err)
	}

	return nil
}
