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

package fsprovider

import (
	"io"
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"

	"github.com/uwedeportivo/bundler/bundleerr"
)

// LocalDriver implements Driver over the POSIX filesystem, registered for
// the "file" scheme.
type LocalDriver struct{}

// NewLocalDriver returns a ready-to-register local filesystem driver.
func NewLocalDriver() *LocalDriver {
	return new(LocalDriver)
}

func (d *LocalDriver) path(uri string) string {
	return StripScheme(uri)
}

func (d *LocalDriver) Resolve(uri string) (io.ReadCloser, int64, error) {
	p := d.path(uri)

	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, bundleerr.NotFound.New("%s: %v", p, err)
		}
		if os.IsPermission(err) {
			return nil, 0, bundleerr.PermissionDenied.New("%s: %v", p, err)
		}
		return nil, 0, bundleerr.TransientIO.New("%s: %v", p, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, bundleerr.TransientIO.New("%s: %v", p, err)
	}

	return f, fi.Size(), nil
}

func (d *LocalDriver) Write(uri string) (io.WriteCloser, error) {
	p := d.path(uri)

	if err := os.MkdirAll(filepath.Dir(p), 0777); err != nil {
		return nil, bundleerr.TransientIO.New("%s: %v", p, err)
	}

	f, err := os.Create(p)
	if err != nil {
		if os.IsPermission(err) {
			return nil, bundleerr.PermissionDenied.New("%s: %v", p, err)
		}
		return nil, bundleerr.TransientIO.New("%s: %v", p, err)
	}
	return f, nil
}

func (d *LocalDriver) Exists(uri string) (bool, error) {
	p := d.path(uri)

	_, err := os.Stat(p)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, bundleerr.TransientIO.New("%s: %v", p, err)
}

func (d *LocalDriver) Delete(uri string) error {
	p := d.path(uri)

	err := os.Remove(p)
	if err != nil && !os.IsNotExist(err) {
		return bundleerr.TransientIO.New("%s: %v", p, err)
	}
	return nil
}

func (d *LocalDriver) Walk(uri string) ([]string, error) {
	p := d.path(uri)

	fi, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bundleerr.NotFound.New("%s: %v", p, err)
		}
		return nil, bundleerr.TransientIO.New("%s: %v", p, err)
	}
	if !fi.IsDir() {
		// godirwalk.Walk requires a directory root; a bare file is already
		// its own single leaf.
		return []string{p}, nil
	}

	var paths []string

	err = godirwalk.Walk(p, &godirwalk.Options{
		Unsorted: false,
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			isDir, err := de.IsDirOrSymlinkToDir()
			if err != nil {
				return err
			}
			if !isDir {
				paths = append(paths, osPathname)
			}
			return nil
		},
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bundleerr.NotFound.New("%s: %v", p, err)
		}
		return nil, bundleerr.TransientIO.New("%s: %v", p, err)
	}

	return paths, nil
}
