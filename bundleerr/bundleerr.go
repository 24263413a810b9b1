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

// Package bundleerr holds the error classes shared across the bundler core,
// following the teacher's own use of spacemonkeygo/errors for
// worker.StopProcessing and the DAT parser's ParseError/XMLParseError
// classes.
package bundleerr

import "github.com/spacemonkeygo/errors"

var (
	// NotFound is raised by a fsprovider driver or the repository when the
	// requested resource does not exist.
	NotFound = errors.NewClass("not found")

	// PermissionDenied is raised by a fsprovider driver on an ACL failure.
	PermissionDenied = errors.NewClass("permission denied")

	// TransientIO is raised on a retriable I/O failure; the core never
	// retries itself (spec §7) but callers may classify on this class.
	TransientIO = errors.NewClass("transient io error")

	// SchemeUnsupported is raised when a URI's scheme has no registered
	// fsprovider driver.
	SchemeUnsupported = errors.NewClass("scheme unsupported")

	// InvalidRequest is raised by the dispatcher's submission validation.
	InvalidRequest = errors.NewClass("invalid request")

	// HashFailure is raised when the hasher cannot open or read a
	// completed archive artifact.
	HashFailure = errors.NewClass("hash failure")
)
