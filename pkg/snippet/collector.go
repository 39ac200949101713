package snippet

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/snipper/pkg/document"
	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/params"
)

// Default markers recognise // and /* */ comments
const (
	DefaultStart = `(?://|/\*)\s*snipp?et\s+(.*)$`
	DefaultEnd   = `(?://\s*end\s+snipp?et|end\s+snipp?et\s*\*/)`
)

// Collector finds snippet definitions in lines
type Collector struct {
	start *regexp.Regexp
	end   *regexp.Regexp
}

// NewCollector compiles the start and end markers. Empty patterns fall
// back to the defaults. The start pattern must have a capture group
// holding the name and parameters.
func NewCollector(start, end string) (*Collector, error) {
	if start == "" {
		start = DefaultStart
	}
	if end == "" {
		end = DefaultEnd
	}
	startRe, err := regexp.Compile(start)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidPattern, "invalid snippet start pattern %q", start)
	}
	if startRe.NumSubexp() < 1 {
		return nil, errors.Newf(errors.ErrInvalidPattern, "snippet start pattern %q has no capture group", start)
	}
	endRe, err := regexp.Compile(end)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidPattern, "invalid snippet end pattern %q", end)
	}
	return &Collector{start: startRe, end: endRe}, nil
}

// Collect returns the snippets defined in lines, in order of definition
func (c *Collector) Collect(source string, lines []document.Line) ([]*Snippet, error) {
	var (
		out     []*Snippet
		current *Snippet
	)
	for _, line := range lines {
		if current == nil {
			m := c.start.FindStringSubmatch(line.Text)
			if m == nil {
				continue
			}
			name, p, err := parseStart(m[1])
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrSnippetMalformed, "%s:%d: malformed snippet start", source, line.Number).
					At(source, line.Number)
			}
			if name == "" {
				return nil, errors.Newf(errors.ErrSnippetMalformed, "%s:%d: snippet has no name", source, line.Number).
					At(source, line.Number)
			}
			current = &Snippet{Name: name, Params: p, Lines: []string{}, Source: source, Line: line.Number}
			continue
		}
		if c.end.MatchString(line.Text) {
			out = append(out, current)
			current = nil
			continue
		}
		current.Lines = append(current.Lines, line.Text)
	}
	if current != nil {
		return nil, errors.Newf(errors.ErrSnippetUnterminated,
			"%s:%d: snippet %q was not finished before the end of the file", source, current.Line, current.Name).
			At(source, current.Line).
			WithDetail("snippet", current.Name)
	}
	return out, nil
}

func parseStart(rest string) (string, *params.Params, error) {
	rest = strings.TrimSpace(rest)
	for _, suffix := range []string{"*/", "-->"} {
		rest = strings.TrimSpace(strings.TrimSuffix(rest, suffix))
	}
	return params.ParseNamed(rest)
}
