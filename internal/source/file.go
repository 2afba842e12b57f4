package source

import (
	"bytes"
	"sort"
)

// FileID names a file inside one FileSet; ids are dense and never reused.
type FileID uint32

// FileFlags records how a file entered the set and what loading changed.
type FileFlags uint8

const (
	FileVirtual FileFlags = 1 << iota // stdin or an in-memory test input
	FileHadBOM
	FileNormalizedCRLF
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// File is one immutable version of a source text.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Flags   FileFlags

	// lineStarts[i] is the offset of the first byte of line i+1.
	lineStarts []uint32
}

// LineCol is a 1-based position; Col counts bytes, so a tab is one column.
type LineCol struct {
	Line uint32
	Col  uint32
}

func newFile(id FileID, path string, content []byte, flags FileFlags) File {
	starts := []uint32{0}
	for off := 0; ; {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			break
		}
		off += i + 1
		starts = append(starts, uint32(off))
	}
	return File{ID: id, Path: path, Content: content, Flags: flags, lineStarts: starts}
}

// Lines reports how many lines the file has; an empty file has one.
func (f *File) Lines() int { return len(f.lineStarts) }

// Position maps a byte offset to its line and column. Offsets past the end
// land on the last line.
func (f *File) Position(off uint32) LineCol {
	line := sort.Search(len(f.lineStarts), func(i int) bool { return f.lineStarts[i] > off })
	return LineCol{
		Line: uint32(line),
		Col:  off - f.lineStarts[line-1] + 1,
	}
}

// Line returns the text of the 1-based line n without its newline, or ""
// when n is out of range.
func (f *File) Line(n uint32) string {
	if n == 0 || int(n) > len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[n-1]
	end := uint32(len(f.Content))
	if int(n) < len(f.lineStarts) {
		end = f.lineStarts[n] - 1
	}
	return string(f.Content[start:end])
}

// Text returns the source covered by span, or "" if span is not from f or
// runs out of bounds.
func (f *File) Text(span Span) string {
	if span.File != f.ID || span.End < span.Start || int(span.End) > len(f.Content) {
		return ""
	}
	return string(f.Content[span.Start:span.End])
}

// normalize strips a leading BOM and folds CRLF pairs into LF. A lone '\r'
// survives.
func normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content, flags = rest, FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	return content, flags
}
