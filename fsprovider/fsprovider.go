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

// Package fsprovider resolves opaque source/output locations to readable or
// writable byte streams across pluggable schemes (component A of the
// bundler spec). Drivers register themselves once at process start, the
// same way the teacher's db package lets a backend register itself via
// db.Factory/a blank import of db/clevel.
package fsprovider

import (
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/golang/glog"

	"github.com/uwedeportivo/bundler/bundleerr"
)

// Driver resolves and manipulates locations under one URI scheme.
type Driver interface {
	// Resolve opens a location for reading and reports its size.
	Resolve(uri string) (io.ReadCloser, int64, error)
	// Write opens a location for writing, creating it if it doesn't exist
	// and overwriting it if it does; there is no append mode.
	Write(uri string) (io.WriteCloser, error)
	// Exists reports whether the location is present.
	Exists(uri string) (bool, error)
	// Delete removes the location. Deleting an absent location is not an
	// error.
	Delete(uri string) error
	// Walk depth-first enumerates files (not directories) under uri.
	Walk(uri string) ([]string, error)
}

var (
	mu      sync.Mutex
	drivers = make(map[string]Driver)
)

// Register installs a driver for scheme. Safe to call concurrently; a
// second registration for the same scheme replaces the first, matching the
// teacher's idempotent-registration requirement (spec §5 "Process-wide
// state").
func Register(scheme string, d Driver) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := drivers[scheme]; exists {
		glog.Warningf("fsprovider: replacing driver already registered for scheme %q", scheme)
	}
	drivers[scheme] = d
	glog.Infof("fsprovider: registered driver for scheme %q", scheme)
}

func lookup(scheme string) (Driver, error) {
	mu.Lock()
	d, ok := drivers[scheme]
	mu.Unlock()

	if !ok {
		return nil, bundleerr.SchemeUnsupported.New("no driver registered for scheme %q", scheme)
	}
	return d, nil
}

// Scheme extracts a URI's scheme, defaulting to "file" for a bare path
// (spec §4.A: "If a caller passes a bare path without scheme, it is treated
// as file://").
func Scheme(uri string) string {
	if idx := strings.Index(uri, "://"); idx >= 0 {
		return uri[:idx]
	}
	return "file"
}

// Resolve opens uri for reading and reports its size.
func Resolve(uri string) (io.ReadCloser, int64, error) {
	d, err := lookup(Scheme(uri))
	if err != nil {
		return nil, 0, err
	}
	return d.Resolve(uri)
}

// Write opens uri for writing.
func Write(uri string) (io.WriteCloser, error) {
	d, err := lookup(Scheme(uri))
	if err != nil {
		return nil, err
	}
	return d.Write(uri)
}

// Exists reports whether uri is present.
func Exists(uri string) (bool, error) {
	d, err := lookup(Scheme(uri))
	if err != nil {
		return false, err
	}
	return d.Exists(uri)
}

// Delete removes uri.
func Delete(uri string) error {
	d, err := lookup(Scheme(uri))
	if err != nil {
		return err
	}
	return d.Delete(uri)
}

// Walk depth-first enumerates files (not directories) under uri.
func Walk(uri string) ([]string, error) {
	d, err := lookup(Scheme(uri))
	if err != nil {
		return nil, err
	}
	return d.Walk(uri)
}

// Join appends relPath to baseURI, ensuring exactly one separator between
// them and preserving baseURI's scheme.
func Join(baseURI, relPath string) string {
	relPath = strings.TrimPrefix(relPath, "/")
	if strings.HasSuffix(baseURI, "/") {
		return baseURI + relPath
	}
	return baseURI + "/" + relPath
}

// StripScheme returns uri's path component, dropping a "scheme://host"
// prefix if present.
func StripScheme(uri string) string {
	if !strings.Contains(uri, "://") {
		return uri
	}
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	p := u.Path
	if u.Host != "" {
		p = "/" + u.Host + p
	}
	return p
}

// NormalizeSlashes replaces backslashes with forward slashes, used when
// turning a staged on-disk path into the HTTP output URL (spec §6).
func NormalizeSlashes(s string) string {
	return strings.ReplaceAll(s, "\\", "/")
}
