package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

type encoder interface {
	Encode(v interface{}) error
}

// structuredRenderer writes JSON or YAML documents
type structuredRenderer struct {
	enc encoder
}

func newJSON(w io.Writer) *structuredRenderer {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &structuredRenderer{enc: enc}
}

func newYAML(w io.Writer) *structuredRenderer {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &structuredRenderer{enc: enc}
}

func (r *structuredRenderer) RenderReport(report *Report) error {
	return r.enc.Encode(report)
}

func (r *structuredRenderer) RenderSnippets(snippets []SnippetReport) error {
	return r.enc.Encode(map[string]interface{}{"snippets": snippets})
}

func (r *structuredRenderer) RenderError(err error) error {
	return r.enc.Encode(map[string]interface{}{"error": NewErrorReport(err)})
}

func (r *structuredRenderer) RenderMessage(msg string) error {
	return r.enc.Encode(map[string]string{"message": msg})
}
