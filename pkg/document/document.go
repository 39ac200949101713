// Package document holds the in-memory representation of a processed file.
//
// Documents are loaded once per run and shared by every pass. Handlers
// read and replace lines; the processor writes the document back only
// when its content differs from what was loaded.
package document

import (
	"path"
	"strings"
)

// Kind tells how a document is interpreted
type Kind int

const (
	// KindSource is any non-markdown file
	KindSource Kind = iota
	// KindMarkdown files carry snip regions
	KindMarkdown
)

func (k Kind) String() string {
	if k == KindMarkdown {
		return "markdown"
	}
	return "source"
}

// KindOf derives the document kind from the file extension
func KindOf(name string) Kind {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return KindMarkdown
	default:
		return KindSource
	}
}

// Document is a file split into lines
type Document struct {
	// Path is the filesystem path used to read and write the file
	Path string
	// RelPath is the slash separated path relative to the processing root
	RelPath string
	Kind    Kind

	lines           []string
	eol             string
	trailingNewline bool
	original        string
}

// New creates a document from raw content. Line endings are detected
// from the first line and restored on output.
func New(filePath, relPath string, content []byte) *Document {
	d := &Document{
		Path:     filePath,
		RelPath:  relPath,
		Kind:     KindOf(relPath),
		eol:      "\n",
		original: string(content),
	}

	text := string(content)
	if text == "" {
		return d
	}
	if i := strings.IndexByte(text, '\n'); i > 0 && text[i-1] == '\r' {
		d.eol = "\r\n"
	}
	if strings.HasSuffix(text, "\n") {
		d.trailingNewline = true
		text = strings.TrimSuffix(text, "\n")
	}
	d.lines = strings.Split(text, "\n")
	if d.eol == "\r\n" {
		for i, l := range d.lines {
			d.lines[i] = strings.TrimSuffix(l, "\r")
		}
	}
	return d
}

// Lines returns a copy of the current lines
func (d *Document) Lines() []string {
	return append([]string(nil), d.lines...)
}

// LineCount returns the number of lines
func (d *Document) LineCount() int {
	return len(d.lines)
}

// SetLines replaces the content of the document
func (d *Document) SetLines(lines []string) {
	d.lines = append([]string(nil), lines...)
	if len(d.lines) > 0 && d.original == "" {
		d.trailingNewline = true
	}
}

// Content renders the current lines with the original line endings
func (d *Document) Content() []byte {
	if len(d.lines) == 0 {
		return nil
	}
	out := strings.Join(d.lines, d.eol)
	if d.trailingNewline {
		out += d.eol
	}
	return []byte(out)
}

// Original returns the content the document was loaded with
func (d *Document) Original() []byte {
	return []byte(d.original)
}

// Modified reports whether the content differs from the loaded one
func (d *Document) Modified() bool {
	return string(d.Content()) != d.original
}

// IsMarkdown is a shortcut for Kind == KindMarkdown
func (d *Document) IsMarkdown() bool {
	return d.Kind == KindMarkdown
}
