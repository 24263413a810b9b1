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
	"archive/zip"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/uwedeportivo/bundler/bundleerr"
	"github.com/uwedeportivo/bundler/types"
)

// zipArchiver writes a deflate-compressed ZIP. Grounded on the teacher's
// depot ingestion of zip roms (archive/archive.go) and nabbar-golib's
// archive/zip/writer.go, which also registers klauspost/compress's faster
// pure-Go deflate in place of stdlib's.
type zipArchiver struct{}

func init() {
	// Matches nabbar-golib's pattern of pointing archive/zip's deflate
	// registration at klauspost/compress for better throughput than the
	// stdlib implementation, without changing the on-disk format.
	zip.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})
}

func (a *zipArchiver) Bundle(elements []*types.ArchiveElement, outputURI string, onEntryComplete OnEntryComplete) error {
	w, err := prepareOutput(outputURI)
	if err != nil {
		return err
	}
	defer w.Close()

	zw := zip.NewWriter(w)
	defer zw.Close()

	for _, elem := range elements {
		hdr := &zip.FileHeader{
			Name:   elem.EntryPath,
			Method: zip.Deflate,
		}
		hdr.SetMode(0644)

		entry, err := zw.CreateHeader(hdr)
		if err != nil {
			return bundleerr.TransientIO.New("writing zip header for %s: %v", elem.EntryPath, err)
		}
		if err := copyElement(entry, elem); err != nil {
			return bundleerr.TransientIO.New("writing zip entry %s: %v", elem.EntryPath, err)
		}
		if onEntryComplete != nil {
			onEntryComplete(elem)
		}
	}

	if err := zw.Close(); err != nil {
		return bundleerr.TransientIO.New("closing zip: %v", err)
	}

	return nil
}
