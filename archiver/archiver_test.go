// Copyright (c) 2013 Uwe Hoffmann. All rights reserved.

package archiver

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/uwedeportivo/bundler/fsprovider"
	"github.com/uwedeportivo/bundler/types"
)

func init() {
	fsprovider.Register("file", fsprovider.NewLocalDriver())
}

func writeSourceFile(t *testing.T, dir, name string, contents []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, contents, 0644); err != nil {
		t.Fatalf("writing source file: %v", err)
	}
	return p
}

func TestArchiversRoundTrip(t *testing.T) {
	dir := t.TempDir()

	elements := []*types.ArchiveElement{
		{SourceURI: writeSourceFile(t, dir, "a.txt", []byte("hello")), EntryPath: "a.txt", Size: 5},
		{SourceURI: writeSourceFile(t, dir, "b.txt", []byte("goodbye world")), EntryPath: "sub/b.txt", Size: 13},
	}

	for _, archiveType := range []types.ArchiveType{types.ZIP, types.TAR, types.AR, types.CPIO, types.GZIP, types.BZIP2} {
		archiveType := archiveType
		t.Run(archiveType.String(), func(t *testing.T) {
			arc, err := New(archiveType)
			if err != nil {
				t.Fatalf("New(%v): %v", archiveType, err)
			}

			out := filepath.Join(dir, "out"+archiveType.Ext())

			var completed []string
			err = arc.Bundle(elements, out, func(e *types.ArchiveElement) {
				completed = append(completed, e.EntryPath)
			})
			if err != nil {
				t.Fatalf("Bundle: %v", err)
			}

			if len(completed) != len(elements) {
				t.Fatalf("onEntryComplete called %d times, want %d", len(completed), len(elements))
			}
			for i, e := range elements {
				if completed[i] != e.EntryPath {
					t.Errorf("completed[%d] = %q, want %q (order must be preserved)", i, completed[i], e.EntryPath)
				}
			}

			if _, err := os.Stat(out); err != nil {
				t.Fatalf("output missing: %v", err)
			}
		})
	}
}

func TestZipArchiverProducesValidZip(t *testing.T) {
	dir := t.TempDir()
	elements := []*types.ArchiveElement{
		{SourceURI: writeSourceFile(t, dir, "a.txt", []byte("hello")), EntryPath: "a.txt", Size: 5},
	}

	arc, err := New(types.ZIP)
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.zip")
	if err := arc.Bundle(elements, out, nil); err != nil {
		t.Fatal(err)
	}

	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("opening produced zip: %v", err)
	}
	defer zr.Close()

	if len(zr.File) != 1 || zr.File[0].Name != "a.txt" {
		t.Fatalf("unexpected zip contents: %+v", zr.File)
	}

	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "hello" {
		t.Errorf("entry contents = %q, want %q", data, "hello")
	}
}

func TestGzipArchiverProducesGzippedTar(t *testing.T) {
	dir := t.TempDir()
	elements := []*types.ArchiveElement{
		{SourceURI: writeSourceFile(t, dir, "a.txt", []byte("hello")), EntryPath: "a.txt", Size: 5},
	}

	arc, err := New(types.GZIP)
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.tar.gz")
	if err := arc.Bundle(elements, out, nil); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("output is not valid gzip: %v", err)
	}
	defer gr.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, gr); err != nil {
		t.Fatalf("decompressing: %v", err)
	}

	tr := tar.NewReader(&buf)
	hdr, err := tr.Next()
	if err != nil {
		t.Fatalf("reading tar entry: %v", err)
	}
	if hdr.Name != "a.txt" {
		t.Errorf("tar entry name = %q, want %q", hdr.Name, "a.txt")
	}

	if _, err := tr.Next(); err != io.EOF {
		t.Errorf("expected single entry, got more")
	}

	// intermediate .tar must not survive alongside the final artifact.
	if _, err := os.Stat(out + ".tar"); !os.IsNotExist(err) {
		t.Errorf("intermediate tar was not cleaned up")
	}
}

func TestArArchiverDeletesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.ar")
	if err := os.WriteFile(out, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	elements := []*types.ArchiveElement{
		{SourceURI: writeSourceFile(t, dir, "a.txt", []byte("hi")), EntryPath: "a.txt", Size: 2},
	}

	arc, err := New(types.AR)
	if err != nil {
		t.Fatal(err)
	}
	if err := arc.Bundle(elements, out, nil); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte(arMagic)) {
		t.Errorf("output does not start with ar magic: %q", data[:min(len(data), 8)])
	}
	if bytes.Contains(data, []byte("stale")) {
		t.Errorf("stale pre-existing content was not replaced")
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
