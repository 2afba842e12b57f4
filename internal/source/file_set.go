package source

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every file a compilation reads. Adding the same path twice
// yields two versions; lookups by path see the newest.
type FileSet struct {
	files  []File
	byPath map[string]FileID
}

func NewFileSet() *FileSet {
	return &FileSet{byPath: map[string]FileID{}}
}

// Add stores content as given and returns its new id. Content larger than a
// uint32 offset can address is a programming error upstream of the loader.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	path = filepath.ToSlash(filepath.Clean(path))
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("source %s: %w", path, err))
	}
	id, err := safecast.Conv[FileID](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source %s: too many files: %w", path, err))
	}
	fs.files = append(fs.files, newFile(id, path, content, flags))
	fs.byPath[path] = id
	return id
}

// Load reads path from disk and adds its normalized content.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- reading caller-named sources is the point
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := normalize(content)
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds in-memory content, normalized the same way Load does.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	content, flags := normalize(content)
	return fs.Add(name, content, flags|FileVirtual)
}

// Get returns the file for id, or nil when the id is unknown.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// Lookup finds the newest version of path.
func (fs *FileSet) Lookup(path string) (FileID, bool) {
	id, ok := fs.byPath[filepath.ToSlash(filepath.Clean(path))]
	return id, ok
}

// Resolve converts both ends of span to line and column.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.Position(span.Start), f.Position(span.End)
}
