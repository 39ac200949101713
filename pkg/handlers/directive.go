package handlers

import (
	"github.com/arthur-debert/snipper/pkg/document"
	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/params"
)

// Directive is the parsed value of a handler's key on a region header,
// e.g. number="start=3 step=2".
type Directive struct {
	// ID is the leading bare word of the value, e.g. "remove" in
	// skip="remove"
	ID     string
	Params *params.Params
}

// ParseDirective reads the directive named mnemonic from a region. It
// reports false when the key is absent or its value is empty.
func ParseDirective(r *document.Region, mnemonic string) (*Directive, bool, error) {
	value, ok := r.Params.Get(mnemonic)
	if !ok || value == "" {
		return nil, false, nil
	}
	id, p, err := params.ParseNamed(value)
	if err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrDirective, "invalid %s directive on region %q", mnemonic, r.Name).
			WithDetail("region", r.Name).
			WithDetail("line", r.StartLine)
	}
	return &Directive{ID: id, Params: p}, true, nil
}

// DirectiveFunc transforms the body of a region carrying a directive
type DirectiveFunc func(r *document.Region, d *Directive) ([]string, error)

// ForEachDirective applies fn to the body of every region of doc that
// carries the mnemonic directive. Errors name the file and the region.
func ForEachDirective(doc *document.Document, mnemonic string, fn DirectiveFunc) error {
	return doc.EditRegions(func(r *document.Region) error {
		d, ok, err := ParseDirective(r, mnemonic)
		if err != nil {
			return errors.Wrapf(err, errors.ErrDirective, "%s:%d", doc.RelPath, r.StartLine).
				WithDetail("file", doc.RelPath)
		}
		if !ok {
			return nil
		}
		body, err := fn(r, d)
		if err != nil {
			return errors.Wrapf(err, errors.ErrDirective, "%s:%d: %s directive on region %q", doc.RelPath, r.StartLine, mnemonic, r.Name).
				WithDetail("file", doc.RelPath).
				WithDetail("region", r.Name)
		}
		r.Body = body
		return nil
	})
}
