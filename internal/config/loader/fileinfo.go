package loader

import (
	"io/fs"
	"path"
	"time"
)

type memFileInfo struct {
	name string
	size int64
}

func (f memFileInfo) Name() string       { return path.Base(f.name) }
func (f memFileInfo) Size() int64        { return f.size }
func (f memFileInfo) Mode() fs.FileMode  { return 0o644 }
func (f memFileInfo) ModTime() time.Time { return time.Time{} }
func (f memFileInfo) IsDir() bool        { return false }
func (f memFileInfo) Sys() any           { return nil }
