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

// cpioArchiver writes the "newc" (new ASCII, no checksum) cpio format: a
// 110-byte fixed ASCII-hex header per entry, the entry name (NUL
// terminated) and entry data each padded to a 4-byte boundary, and a
// trailing TRAILER!!! entry. Like the AR writer, no third-party cpio
// library turned up anywhere in the retrieved corpus, so this is hand-
// rolled directly against the format.
type cpioArchiver struct{}

const (
	cpioMagic        = "070701"
	cpioHeaderFields = 13 // after the 6-byte magic, 13 8-hex-digit fields
	cpioTrailerName  = "TRAILER!!!"
)

func (a *cpioArchiver) Bundle(elements []*types.ArchiveElement, outputURI string, onEntryComplete OnEntryComplete) error {
	w, err := prepareOutput(outputURI)
	if err != nil {
		return err
	}
	defer w.Close()

	ino := uint32(1)
	for _, elem := range elements {
		if err := writeCpioEntry(w, elem, ino, 0100644, uint32(elem.Size)); err != nil {
			return err
		}
		if err := copyElement(w, elem); err != nil {
			return bundleerr.TransientIO.New("writing cpio entry %s: %v", elem.EntryPath, err)
		}
		if err := writePad4(w, int(elem.Size)); err != nil {
			return err
		}
		if onEntryComplete != nil {
			onEntryComplete(elem)
		}
		ino++
	}

	if err := writeCpioEntry(w, &types.ArchiveElement{EntryPath: cpioTrailerName}, 0, 0, 0); err != nil {
		return err
	}

	return nil
}

// writeCpioEntry writes one newc-format header followed by its
// NUL-terminated, 4-byte-padded name.
func writeCpioEntry(w io.Writer, elem *types.ArchiveElement, ino uint32, mode uint32, size uint32) error {
	nameLen := len(elem.EntryPath) + 1 // include NUL terminator

	fields := []uint32{
		ino,        // c_ino
		mode,       // c_mode
		0,          // c_uid
		0,          // c_gid
		1,          // c_nlink
		0,          // c_mtime
		size,       // c_filesize
		0,          // c_devmajor
		0,          // c_devminor
		0,          // c_rdevmajor
		0,          // c_rdevminor
		uint32(nameLen), // c_namesize
		0,          // c_check
	}

	header := cpioMagic
	for _, f := range fields {
		header += fmt.Sprintf("%08X", f)
	}

	if _, err := io.WriteString(w, header); err != nil {
		return bundleerr.TransientIO.New("writing cpio header for %s: %v", elem.EntryPath, err)
	}

	name := append([]byte(elem.EntryPath), 0)
	if _, err := w.Write(name); err != nil {
		return bundleerr.TransientIO.New("writing cpio name for %s: %v", elem.EntryPath, err)
	}

	return writePad4(w, len(header)+len(name))
}

// writePad4 writes zero bytes so that written (the count of bytes emitted
// since the start of the current header-or-data region) lands on a 4-byte
// boundary.
func writePad4(w io.Writer, written int) error {
	if pad := (4 - written%4) % 4; pad > 0 {
		if _, err := w.Write(make([]byte, pad)); err != nil {
			return bundleerr.TransientIO.New("writing cpio padding: %v", err)
		}
	}
	return nil
}
