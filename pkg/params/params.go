// Package params parses the key="value" parameter lists used on snippet
// start lines, markdown region headers and handler directives.
//
// Accepted forms are key="value", key='value', key=bareword and a bare
// key, which stands for key=true. Keys may repeat and keep their order.
package params

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/arthur-debert/snipper/pkg/errors"
)

// Param is a single key/value pair
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of parameters
type Params struct {
	entries []Param
}

// Parse parses a parameter list
func Parse(s string) (*Params, error) {
	toks, err := scan(s)
	if err != nil {
		return nil, err
	}
	p := &Params{}
	for _, t := range toks {
		p.entries = append(p.entries, Param{Key: t.key, Value: t.value})
	}
	return p, nil
}

// ParseNamed parses "NAME key=value ...". The first token is the name when
// it carries no value; otherwise the name is empty.
func ParseNamed(s string) (string, *Params, error) {
	toks, err := scan(s)
	if err != nil {
		return "", nil, err
	}
	name := ""
	if len(toks) > 0 && toks[0].bare {
		name = toks[0].key
		toks = toks[1:]
	}
	p := &Params{}
	for _, t := range toks {
		p.entries = append(p.entries, Param{Key: t.key, Value: t.value})
	}
	return name, p, nil
}

// Get returns the first value of key
func (p *Params) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	for _, e := range p.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// GetDefault returns the first value of key or def when absent
func (p *Params) GetDefault(key, def string) string {
	if v, ok := p.Get(key); ok {
		return v
	}
	return def
}

// All returns every value of key in declaration order
func (p *Params) All(key string) []string {
	if p == nil {
		return nil
	}
	var values []string
	for _, e := range p.entries {
		if e.Key == key {
			values = append(values, e.Value)
		}
	}
	return values
}

// Has reports whether key is present
func (p *Params) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Bool interprets the value of key as a boolean. Absent keys yield def.
func (p *Params) Bool(key string, def bool) (bool, error) {
	v, ok := p.Get(key)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return def, errors.Newf(errors.ErrSegmentParams, "parameter %s=%q is not a boolean", key, v).
			WithDetail("key", key)
	}
	return b, nil
}

// Int interprets the value of key as an integer. Absent keys yield def.
func (p *Params) Int(key string, def int) (int, error) {
	v, ok := p.Get(key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def, errors.Newf(errors.ErrSegmentParams, "parameter %s=%q is not an integer", key, v).
			WithDetail("key", key)
	}
	return n, nil
}

// Keys returns the distinct keys in order of first appearance
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	seen := map[string]bool{}
	var keys []string
	for _, e := range p.entries {
		if !seen[e.Key] {
			seen[e.Key] = true
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Entries returns a copy of all entries
func (p *Params) Entries() []Param {
	if p == nil {
		return nil
	}
	return append([]Param(nil), p.entries...)
}

// Len returns the number of entries, counting repeated keys
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// Map returns the first value of every key. Used to feed option decoders.
func (p *Params) Map() map[string]interface{} {
	m := make(map[string]interface{}, p.Len())
	for _, k := range p.Keys() {
		if values := p.All(k); len(values) > 1 {
			m[k] = values
		} else {
			m[k] = values[0]
		}
	}
	return m
}

type token struct {
	key   string
	value string
	bare  bool
}

func scan(s string) ([]token, error) {
	var toks []token
	r := []rune(s)
	i := 0
	for {
		for i < len(r) && unicode.IsSpace(r[i]) {
			i++
		}
		if i >= len(r) {
			return toks, nil
		}

		start := i
		for i < len(r) && !unicode.IsSpace(r[i]) && r[i] != '=' {
			i++
		}
		key := string(r[start:i])
		if key == "" {
			return nil, errors.Newf(errors.ErrSegmentParams, "missing parameter name at offset %d in %q", start, s)
		}
		if i >= len(r) || r[i] != '=' {
			toks = append(toks, token{key: key, value: "true", bare: true})
			continue
		}
		i++ // '='

		if i < len(r) && (r[i] == '"' || r[i] == '\'') {
			value, next, err := quoted(r, i)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrSegmentParams, "parameter %s in %q", key, s)
			}
			toks = append(toks, token{key: key, value: value})
			i = next
			continue
		}

		vstart := i
		for i < len(r) && !unicode.IsSpace(r[i]) {
			i++
		}
		toks = append(toks, token{key: key, value: string(r[vstart:i])})
	}
}

// quoted reads a quoted value starting at the opening quote and returns
// the value and the index after the closing quote.
func quoted(r []rune, i int) (string, int, error) {
	q := r[i]
	i++
	var b strings.Builder
	for i < len(r) {
		c := r[i]
		switch {
		case c == q:
			return b.String(), i + 1, nil
		case c == '\\' && i+1 < len(r):
			switch r[i+1] {
			case '\\', '"', '\'':
				b.WriteRune(r[i+1])
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				// unknown escapes stay literal so regexes survive
				b.WriteRune(c)
				b.WriteRune(r[i+1])
			}
			i += 2
		default:
			b.WriteRune(c)
			i++
		}
	}
	return "", i, errors.Newf(errors.ErrSegmentParams, "unterminated %c quote", q)
}
