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
	"github.com/golang/glog"

	"github.com/uwedeportivo/bundler/binpack"
	"github.com/uwedeportivo/bundler/entrypath"
	"github.com/uwedeportivo/bundler/fsprovider"
)

// expandFiles is the File Validator of spec §4.J step 2: it turns the
// submission's file list into a flat list of individual source files,
// walking any entry that names a directory (A.walk), and computing each
// file's entry path via the Normalizer.
func expandFiles(files []FileRequest, normalizer *entrypath.Normalizer) ([]binpack.SourceFile, error) {
	var out []binpack.SourceFile

	for _, f := range files {
		exists, err := fsprovider.Exists(f.Path)
		if err != nil {
			return nil, err
		}
		if !exists {
			glog.Warningf("bundle: skipping nonexistent source %s", f.Path)
			continue
		}

		leaves, err := fsprovider.Walk(f.Path)
		if err != nil {
			return nil, err
		}

		for _, leaf := range leaves {
			entryPath := f.ArchivePath
			if entryPath == "" {
				entryPath = normalizer.Normalize(leaf)
			}

			rc, size, err := fsprovider.Resolve(leaf)
			if err != nil {
				return nil, err
			}
			rc.Close()

			out = append(out, binpack.SourceFile{URI: leaf, EntryPath: entryPath, Size: size})
		}
	}

	return out, nil
}
