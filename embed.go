// Package phonebook provides embedded sample seed files and an overlay
// filesystem that checks local disk first, falling back to embedded.
package phonebook

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed samples/*.yaml
var rawSamples embed.FS

// Samples is the embedded sample seeds with the "samples/" prefix stripped.
var Samples = mustSub(rawSamples, "samples")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// OverlayFS returns a filesystem that checks localDir on disk first,
// falling back to the embedded filesystem for files not found locally.
func OverlayFS(localDir string, embedded fs.FS) fs.FS {
	return overlayFS{localDir: localDir, embedded: embedded}
}

type overlayFS struct {
	localDir string
	embedded fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := os.Open(filepath.Join(o.localDir, name))
	if err == nil {
		return f, nil
	}
	return o.embedded.Open(name)
}

// SeedSource splits a --seed value into a filesystem and a name within it.
// A file on disk wins; otherwise the base name is looked up in Samples.
func SeedSource(path string) (fs.FS, string) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return OverlayFS(dir, Samples), name
}
