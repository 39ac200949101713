package config

import (
	_ "embed"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/snipper/pkg/errors"
)

// defaultsTOML holds the built-in configurations: the Markdown writer
// stack and the source readers
//
//go:embed embedded/defaults.toml
var defaultsTOML []byte

// loadDefaults is the bottom layer of every configuration
func loadDefaults(k *koanf.Koanf) error {
	m, err := toml.Parser().Unmarshal(defaultsTOML)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "embedded defaults are invalid")
	}
	if err := k.Load(confmap.Provider(m, ""), nil); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}
	return nil
}
