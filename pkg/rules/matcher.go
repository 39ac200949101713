package rules

import (
	"regexp"

	"github.com/arthur-debert/snipper/pkg/errors"
)

// Rule selects files by regex
type Rule struct {
	file    *regexp.Regexp
	exclude []*regexp.Regexp
}

// CompileRule compiles a file regex and exclusion regexes. An empty file
// regex matches every file.
func CompileRule(file string, exclude []string) (*Rule, error) {
	fileRe, err := regexp.Compile(file)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidPattern, "invalid file pattern %q", file).
			WithDetail("pattern", file)
	}
	r := &Rule{file: fileRe}
	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidPattern, "invalid exclude pattern %q", pattern).
				WithDetail("pattern", pattern)
		}
		r.exclude = append(r.exclude, re)
	}
	return r, nil
}

// Matches reports whether the relative path is selected
func (r *Rule) Matches(relPath string) bool {
	if !r.file.MatchString(relPath) {
		return false
	}
	for _, re := range r.exclude {
		if re.MatchString(relPath) {
			return false
		}
	}
	return true
}

// Filter returns the files selected by the rule, keeping their order
func (r *Rule) Filter(files []FileInfo) []FileInfo {
	var out []FileInfo
	for _, f := range files {
		if r.Matches(f.RelPath) {
			out = append(out, f)
		}
	}
	return out
}
