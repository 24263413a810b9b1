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

// Package types holds the data model shared by every bundler package: the
// Job/ArchiveJob/FileEntry ownership tree and the sum-typed enums that
// appear in both the persistence contract and the JSON wire format.
package types

import "fmt"

// JobState is the lifecycle state of a Job or ArchiveJob.
type JobState int

const (
	NotStarted JobState = iota
	InProgress
	Complete
	Error
	InvalidRequest
	NotAvailable
)

var jobStateNames = map[JobState]string{
	NotStarted:     "NOT_STARTED",
	InProgress:     "IN_PROGRESS",
	Complete:       "COMPLETE",
	Error:          "ERROR",
	InvalidRequest: "INVALID_REQUEST",
	NotAvailable:   "NOT_AVAILABLE",
}

func (s JobState) String() string {
	if name, ok := jobStateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s JobState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *JobState) UnmarshalText(b []byte) error {
	str := string(b)
	for k, v := range jobStateNames {
		if v == str {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown job state %q", str)
}

// ArchiveType is the requested output archive container.
type ArchiveType int

const (
	ZIP ArchiveType = iota
	TAR
	AR
	CPIO
	GZIP
	BZIP2
)

var archiveTypeNames = map[ArchiveType]string{
	ZIP:   "ZIP",
	TAR:   "TAR",
	AR:    "AR",
	CPIO:  "CPIO",
	GZIP:  "GZIP",
	BZIP2: "BZIP2",
}

var archiveTypeExts = map[ArchiveType]string{
	ZIP:   ".zip",
	TAR:   ".tar",
	AR:    ".ar",
	CPIO:  ".cpio",
	GZIP:  ".tar.gz",
	BZIP2: ".tar.bz2",
}

func (t ArchiveType) String() string {
	if name, ok := archiveTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Ext returns the enforced file extension for the output artifact.
func (t ArchiveType) Ext() string {
	return archiveTypeExts[t]
}

// Compressed reports whether this archive type requires an intermediate
// .tar artifact and a compression pass (see spec §4.E).
func (t ArchiveType) Compressed() bool {
	return t == GZIP || t == BZIP2
}

func (t ArchiveType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ArchiveType) UnmarshalText(b []byte) error {
	str := string(b)
	for k, v := range archiveTypeNames {
		if v == str {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown archive type %q", str)
}

// ParseArchiveType parses the text form used in submission JSON.
func ParseArchiveType(s string) (ArchiveType, error) {
	var t ArchiveType
	err := t.UnmarshalText([]byte(s))
	return t, err
}

// HashType is the digest algorithm used to fingerprint a completed archive.
type HashType int

const (
	MD5 HashType = iota
	SHA1
	SHA256
	SHA384
	SHA512
)

var hashTypeNames = map[HashType]string{
	MD5:    "MD5",
	SHA1:   "SHA1",
	SHA256: "SHA256",
	SHA384: "SHA384",
	SHA512: "SHA512",
}

var hashTypeExts = map[HashType]string{
	MD5:    "md5",
	SHA1:   "sha1",
	SHA256: "sha256",
	SHA384: "sha384",
	SHA512: "sha512",
}

func (h HashType) String() string {
	if name, ok := hashTypeNames[h]; ok {
		return name
	}
	return "UNKNOWN"
}

// Ext returns the hash file's extension, e.g. "sha1".
func (h HashType) Ext() string {
	return hashTypeExts[h]
}

func (h HashType) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *HashType) UnmarshalText(b []byte) error {
	str := string(b)
	for k, v := range hashTypeNames {
		if v == str {
			*h = k
			return nil
		}
	}
	return fmt.Errorf("unknown hash type %q", str)
}

// FileState is the lifecycle state of a single FileEntry.
type FileState int

const (
	FileNotStarted FileState = iota
	FileInProgress
	FileComplete
	FileError
)

var fileStateNames = map[FileState]string{
	FileNotStarted: "NOT_STARTED",
	FileInProgress: "IN_PROGRESS",
	FileComplete:   "COMPLETE",
	FileError:      "ERROR",
}

func (s FileState) String() string {
	if name, ok := fileStateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}
