package document

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/params"
)

var (
	regionStartRe = regexp.MustCompile(`^(\s*)\[//\]:\s*#\s*\(\s*snip\s+(.*)\)\s*$` +
		`|^(\s*)<!--\s*snip\s+(.*)-->\s*$`)
	regionEndRe = regexp.MustCompile("^\\s*```\\s*$" +
		`|^\s*\[//\]:\s*#\s*\(\s*end\s+snip\s*(.*)\)\s*$` +
		`|^\s*<!--\s*end\s+snip\s*(.*)-->\s*$`)
	commentOpenRe = regexp.MustCompile(`^\s*<!--\s*snip(\s|$)`)
)

// Region is a generated part of a markdown document
//
//	<!-- snip NAME params -->
//	```java
//	body
//	```
type Region struct {
	// Name is the first bare word of the header
	Name   string
	Params *params.Params

	// Header holds the start line(s) verbatim
	Header []string
	// Fence is the opening code fence kept in front of the body
	Fence    string
	HasFence bool
	Body     []string
	// Footer is the line that closed the region
	Footer string

	// StartLine is the 1-based line number of the first header line
	StartLine int
}

// SnippetName returns the snippet the region is filled from: the
// snippet parameter when given, the region name otherwise.
func (r *Region) SnippetName() string {
	if v, ok := r.Params.Get("snippet"); ok {
		return v
	}
	return r.Name
}

func (r *Region) lines() []string {
	out := append([]string(nil), r.Header...)
	if r.HasFence {
		out = append(out, r.Fence)
	}
	out = append(out, r.Body...)
	return append(out, r.Footer)
}

// segment is either a plain line or a region
type segment struct {
	line   string
	number int
	region *Region
}

// matchHeader checks for a region header at line i and returns the
// parameter text and the number of lines the header spans.
func matchHeader(lines []string, i int) (string, int, bool) {
	if m := regionStartRe.FindStringSubmatch(lines[i]); m != nil {
		return headerText(m), 1, true
	}
	if !commentOpenRe.MatchString(lines[i]) {
		return "", 0, false
	}
	joined := make([]string, 0, 4)
	for j := i; j < len(lines); j++ {
		joined = append(joined, strings.TrimSpace(lines[j]))
		if strings.HasSuffix(strings.TrimRight(lines[j], " \t"), "-->") {
			if m := regionStartRe.FindStringSubmatch(strings.Join(joined, " ")); m != nil {
				return headerText(m), j - i + 1, true
			}
			return "", 0, false
		}
	}
	return "", 0, false
}

func headerText(m []string) string {
	if m[2] != "" || m[4] == "" {
		return strings.TrimSpace(m[2])
	}
	return strings.TrimSpace(m[4])
}

func (d *Document) split() ([]segment, error) {
	var segs []segment
	lines := d.lines
	for i := 0; i < len(lines); {
		text, n, ok := matchHeader(lines, i)
		if !ok {
			segs = append(segs, segment{line: lines[i], number: i + 1})
			i++
			continue
		}

		name, p, err := params.ParseNamed(text)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrSegmentParams, "%s:%d: invalid snip header", d.RelPath, i+1).
				At(d.RelPath, i+1)
		}
		r := &Region{
			Name:      name,
			Params:    p,
			Header:    append([]string(nil), lines[i:i+n]...),
			StartLine: i + 1,
		}

		j := i + n
		if j < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[j]), "```") && !regionEndRe.MatchString(lines[j]) {
			r.Fence = lines[j]
			r.HasFence = true
			j++
		}
		closed := false
		for ; j < len(lines); j++ {
			if regionEndRe.MatchString(lines[j]) {
				r.Footer = lines[j]
				closed = true
				break
			}
			r.Body = append(r.Body, lines[j])
		}
		if !closed {
			return nil, errors.Newf(errors.ErrSegmentUnterminated,
				"%s:%d: snip region %q is not closed", d.RelPath, i+1, name).
				At(d.RelPath, i+1)
		}
		segs = append(segs, segment{number: i + 1, region: r})
		i = j + 1
	}
	return segs, nil
}

// Regions returns the snip regions of a markdown document. Source
// documents have none.
func (d *Document) Regions() ([]*Region, error) {
	if !d.IsMarkdown() {
		return nil, nil
	}
	segs, err := d.split()
	if err != nil {
		return nil, err
	}
	var regions []*Region
	for _, s := range segs {
		if s.region != nil {
			regions = append(regions, s.region)
		}
	}
	return regions, nil
}

// EditRegions calls fn for every region in document order and writes the
// (possibly modified) regions back. Nothing is changed when fn fails.
func (d *Document) EditRegions(fn func(r *Region) error) error {
	if !d.IsMarkdown() {
		return nil
	}
	segs, err := d.split()
	if err != nil {
		return err
	}
	out := make([]string, 0, len(d.lines))
	for _, s := range segs {
		if s.region == nil {
			out = append(out, s.line)
			continue
		}
		if err := fn(s.region); err != nil {
			return err
		}
		out = append(out, s.region.lines()...)
	}
	d.lines = out
	return nil
}

// Line is a numbered line of a document
type Line struct {
	Number int
	Text   string
}

// SourceLines returns the lines that may define snippets. For markdown
// documents the content of snip regions is generated and left out.
func (d *Document) SourceLines() ([]Line, error) {
	if !d.IsMarkdown() {
		out := make([]Line, len(d.lines))
		for i, l := range d.lines {
			out[i] = Line{Number: i + 1, Text: l}
		}
		return out, nil
	}
	segs, err := d.split()
	if err != nil {
		return nil, err
	}
	var out []Line
	for _, s := range segs {
		if s.region == nil {
			out = append(out, Line{Number: s.number, Text: s.line})
		}
	}
	return out, nil
}
