package chat

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrFileNotFound reports that a shared file could not be read.
var ErrFileNotFound = errors.New("file not found")

// FileSource supplies the bytes behind a shared file name. Content is never
// cached: every share re-reads the source.
type FileSource interface {
	ReadFile(name string) ([]byte, error)
}

// DirSource reads shared files from a root directory.
type DirSource struct {
	Root string
}

// ReadFile implements FileSource.
func (d DirSource) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.Root, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	return data, nil
}

// fileRegistry records which file names were shared into each room, in share
// order. Duplicates are kept; content is not retained.
type fileRegistry struct {
	byRoom map[string][]string
}

func newFileRegistry() *fileRegistry {
	return &fileRegistry{byRoom: make(map[string][]string)}
}

func (r *fileRegistry) record(room, name string) {
	r.byRoom[room] = append(r.byRoom[room], name)
}

func (r *fileRegistry) list(room string) []string {
	names := r.byRoom[room]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// formatFileList renders the /files response.
func formatFileList(room string, names []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Files in room %s]:\n", room)
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return b.String()
}
