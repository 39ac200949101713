// Package regex implements the regex handler, which rewrites and filters
// the lines of a region:
//
//	regex="replace='/search/replacement/' kill='^\s*//' escape='~'"
//
// A replace value may use any delimiter character. Replacements run in
// the order given; lines matching a kill pattern are dropped after the
// replacements, or before them with killFirst. Replacements refer to
// groups as $1 or ${name}.
package regex

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/snipper/pkg/document"
	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/handlers"
	"github.com/arthur-debert/snipper/pkg/params"
	"github.com/arthur-debert/snipper/pkg/types"
)

// Name is the registry name of the regex handler
const Name = "regex"

// Options hold defaults used when a directive does not set them
type Options struct {
	Escape string `option:"escape"`
}

// Handler is the regex handler
type Handler struct {
	handlers.Base
	options Options
}

// New creates a regex handler running in pass 4 by default
func New(opts ...handlers.Option) *Handler {
	h := &Handler{}
	h.Base = handlers.NewBase(Name, 4, "regex", &h.options, opts...)
	return h
}

// Handle applies the regex directive to the regions of doc
func (h *Handler) Handle(ctx *types.RunContext, doc *document.Document) error {
	if err := h.Validate(); err != nil {
		return err
	}
	return handlers.ForEachDirective(doc, h.Mnemonic(), func(r *document.Region, d *handlers.Directive) ([]string, error) {
		rules, err := h.Compile(d.Params)
		if err != nil {
			return nil, err
		}
		return rules.Apply(r.Body), nil
	})
}

// Replacement is a compiled replace rule. Replace is in the expansion
// syntax of regexp.Regexp.Expand.
type Replacement struct {
	Search  *regexp.Regexp
	Replace string
}

// Rules is a compiled regex directive
type Rules struct {
	Replacements []Replacement
	Kill         []*regexp.Regexp
	KillFirst    bool
}

// Compile builds the rules of a directive
func (h *Handler) Compile(p *params.Params) (*Rules, error) {
	escape := p.GetDefault("escape", h.options.Escape)
	rules := &Rules{}

	killFirst, err := p.Bool("killFirst", false)
	if err != nil {
		return nil, err
	}
	rules.KillFirst = killFirst

	for _, spec := range p.All("replace") {
		search, replace, err := SplitReplace(spec)
		if err != nil {
			return nil, err
		}
		re, err := regexp.Compile(descape(search, escape))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidPattern, "invalid search pattern %q", search)
		}
		template, err := Template(replace, re.NumSubexp())
		if err != nil {
			return nil, err
		}
		rules.Replacements = append(rules.Replacements, Replacement{Search: re, Replace: template})
	}

	for _, kill := range p.All("kill") {
		re, err := regexp.Compile(descape(kill, escape))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidPattern, "invalid kill pattern %q", kill)
		}
		rules.Kill = append(rules.Kill, re)
	}
	return rules, nil
}

// Apply runs the rules over lines
func (r *Rules) Apply(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if r.KillFirst && r.killed(line) {
			continue
		}
		for _, rep := range r.Replacements {
			line = rep.Search.ReplaceAllString(line, rep.Replace)
		}
		if !r.KillFirst && r.killed(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func (r *Rules) killed(line string) bool {
	for _, re := range r.Kill {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// SplitReplace splits "WsearchWreplaceW" where W is the first character
func SplitReplace(spec string) (string, string, error) {
	if utf8.RuneCountInString(spec) < 3 {
		return "", "", errors.Newf(errors.ErrDirective,
			"replace %q is too short, the minimum is three characters like '///'", spec)
	}
	delim, size := utf8.DecodeRuneInString(spec)
	d := string(delim)
	if !strings.HasSuffix(spec, d) {
		return "", "", errors.Newf(errors.ErrDirective,
			"replace %q does not end with the character it starts with", spec)
	}
	inner := spec[size : len(spec)-len(d)]
	mid := strings.Index(inner, d)
	if mid < 0 {
		return "", "", errors.Newf(errors.ErrDirective, "replace %q has only one part", spec)
	}
	return inner[:mid], inner[mid+len(d):], nil
}

// Template converts a replacement string to regexp expansion syntax.
// $N refers to group N, taking as many digits as still name an existing
// group, so "$1_x" is group 1 followed by "_x" and "$12" is group 1 then
// "2" when there are fewer than 12 groups. ${name} refers to a named group.
// A backslash makes the next character literal.
func Template(replace string, groups int) (string, error) {
	var b strings.Builder
	for i := 0; i < len(replace); i++ {
		c := replace[i]
		switch c {
		case '\\':
			i++
			if i == len(replace) {
				return "", errors.Newf(errors.ErrDirective, "replacement %q ends with a backslash", replace)
			}
			if replace[i] == '$' {
				b.WriteString("$$")
			} else {
				b.WriteByte(replace[i])
			}
		case '$':
			i++
			if i == len(replace) {
				return "", errors.Newf(errors.ErrDirective, "replacement %q ends with a group reference without a group", replace)
			}
			if replace[i] == '{' {
				end := strings.IndexByte(replace[i:], '}')
				if end < 0 {
					return "", errors.Newf(errors.ErrDirective, "replacement %q has an unclosed group name", replace)
				}
				b.WriteString("$" + replace[i:i+end+1])
				i += end
				continue
			}
			if !isDigit(replace[i]) {
				return "", errors.Newf(errors.ErrDirective, "replacement %q has an illegal group reference", replace)
			}
			group := int(replace[i] - '0')
			for i+1 < len(replace) && isDigit(replace[i+1]) {
				next := group*10 + int(replace[i+1]-'0')
				if next > groups {
					break
				}
				group = next
				i++
			}
			if group > groups {
				return "", errors.Newf(errors.ErrDirective, "replacement %q refers to group %d, the pattern has %d", replace, group, groups)
			}
			fmt.Fprintf(&b, "${%d}", group)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func descape(s, escape string) string {
	if escape == "" {
		return s
	}
	return strings.ReplaceAll(s, escape, `\`)
}
