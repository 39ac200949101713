package config

import (
	"bytes"

	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

const generatedHeader = `# snipper configuration
#
# Handlers: snippet-reader, md-snippet-writer, line-skipper, regex, trim,
# line-numberer. Each handler accepts "passes" and handler specific
# "options"; run 'snipper help directives' for the region directives.

`

// GenerateTOML renders cfg as a TOML project file. Root is left out so
// the file stays valid wherever it is placed.
func GenerateTOML(cfg *Config) ([]byte, error) {
	c := *cfg
	c.Root = ""

	var buf bytes.Buffer
	buf.WriteString(generatedHeader)
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(struct {
		Glob           string          `toml:"glob"`
		IgnoreDirs     []string        `toml:"ignore_dirs"`
		Concurrency    int             `toml:"concurrency"`
		Styles         string          `toml:"styles,omitempty"`
		Configurations []Configuration `toml:"configurations"`
	}{c.Glob, c.IgnoreDirs, c.Concurrency, c.Styles, c.Configurations}); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return buf.Bytes(), nil
}
