package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides. A double underscore
// separates nested keys.
const EnvPrefix = "SNIPPER_"

// ProjectFiles are looked up in the root directory, first match wins
var ProjectFiles = []string{".snipper.toml", "snipper.toml", ".snipper.yaml", "snipper.yaml"}

// LoadOptions locate the configuration
type LoadOptions struct {
	// Root is searched for a project file
	Root string
	// File, when set, is used instead of a project file and must exist
	File string
	// Overrides are applied last, e.g. from command line flags
	Overrides map[string]interface{}
}

// Load reads the layered configuration
func Load(opts LoadOptions) (*Config, string, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := loadDefaults(k); err != nil {
		return nil, "", err
	}

	// 2. Project file
	path, err := findProjectFile(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		if err := loadFile(k, path); err != nil {
			return nil, "", err
		}
		logger.Debug().Str("file", path).Msg("Loaded project configuration")
	}

	// 3. Environment
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, "", errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, "", errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, "", err
	}
	cfg.Root = resolveRoot(opts.Root, cfg.Root)
	return cfg, path, nil
}

// Defaults returns the embedded configuration
func Defaults() (*Config, error) {
	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		return nil, err
	}
	return unmarshal(k)
}

// resolveRoot interprets a configured root relative to the directory the
// configuration was looked up in
func resolveRoot(base, configured string) string {
	if base == "" {
		base = "."
	}
	if configured == "" {
		return base
	}
	if filepath.IsAbs(configured) {
		return configured
	}
	return filepath.Join(base, configured)
}

func findProjectFile(opts LoadOptions) (string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return "", errors.Wrapf(err, errors.ErrFileNotFound, "configuration file %s not found", opts.File).
				WithDetail("file", opts.File)
		}
		return opts.File, nil
	}
	root := opts.Root
	if root == "" {
		root = "."
	}
	for _, name := range ProjectFiles {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".toml":
		parser = toml.Parser()
	default:
		return errors.Newf(errors.ErrConfigLoad, "unsupported configuration format %q", filepath.Ext(path)).
			WithDetail("file", path)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load configuration from %s", path).
			WithDetail("file", path)
	}
	return nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}
