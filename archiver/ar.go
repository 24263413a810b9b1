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
	"fmt"
	"io"

	"github.com/uwedeportivo/bundler/bundleerr"
	"github.com/uwedeportivo/bundler/types"
)

// arArchiver writes a common Unix "ar" archive (the GNU/BSD variant with a
// bare "!<arch>\n" global magic and fixed 60-byte per-member headers). No
// third-party AR-writing library was found anywhere in the retrieved
// example corpus, so this is hand-rolled directly against the format; it
// and cpioArchiver are the two archiver variants not grounded on an
// existing writer.
type arArchiver struct{}

const (
	arMagic       = "!<arch>\n"
	arHeaderSize  = 60
	arEntryPad    = '\n'
	arHeaderEnd   = "`\n"
	arFieldFiller = ' '
)

func (a *arArchiver) Bundle(elements []*types.ArchiveElement, outputURI string, onEntryComplete OnEntryComplete) error {
	w, err := prepareOutput(outputURI)
	if err != nil {
		return err
	}
	defer w.Close()

	if _, err := io.WriteString(w, arMagic); err != nil {
		return bundleerr.TransientIO.New("writing ar magic: %v", err)
	}

	for _, elem := range elements {
		if err := writeArHeader(w, elem); err != nil {
			return err
		}
		if err := copyElement(w, elem); err != nil {
			return bundleerr.TransientIO.New("writing ar entry %s: %v", elem.EntryPath, err)
		}
		// Members are padded to an even number of bytes.
		if elem.Size%2 != 0 {
			if _, err := w.Write([]byte{arEntryPad}); err != nil {
				return bundleerr.TransientIO.New("padding ar entry %s: %v", elem.EntryPath, err)
			}
		}
		if onEntryComplete != nil {
			onEntryComplete(elem)
		}
	}

	return nil
}

// writeArHeader emits the fixed 60-byte ar member header:
//
//	name(16) mtime(12) uid(6) gid(6) mode(8) size(10) end(2)
//
// File names longer than 16 bytes are truncated to fit the fixed field,
// since ar's GNU/BSD long-name extensions would add a second
// format-detection axis this bundler has no need for.
func writeArHeader(w io.Writer, elem *types.ArchiveElement) error {
	name := elem.EntryPath
	if len(name) > 16 {
		name = name[:16]
	}

	hdr := make([]byte, 0, arHeaderSize)
	hdr = appendField(hdr, name, 16)
	hdr = appendField(hdr, "0", 12)   // mtime
	hdr = appendField(hdr, "0", 6)    // uid
	hdr = appendField(hdr, "0", 6)    // gid
	hdr = appendField(hdr, "100644", 8)
	hdr = appendField(hdr, fmt.Sprintf("%d", elem.Size), 10)
	hdr = append(hdr, arHeaderEnd...)

	if len(hdr) != arHeaderSize {
		return bundleerr.TransientIO.New("internal error: ar header for %s is %d bytes, want %d", elem.EntryPath, len(hdr), arHeaderSize)
	}

	if _, err := w.Write(hdr); err != nil {
		return bundleerr.TransientIO.New("writing ar header for %s: %v", elem.EntryPath, err)
	}
	return nil
}

// appendField appends s to b, space-padded (ar convention) to exactly width
// bytes, truncating s if it's already longer than width.
func appendField(b []byte, s string, width int) []byte {
	if len(s) > width {
		s = s[:width]
	}
	b = append(b, s...)
	for i := len(s); i < width; i++ {
		b = append(b, arFieldFiller)
	}
	return b
}
