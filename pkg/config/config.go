package config

import "path/filepath"

// Config is the complete snipper configuration
type Config struct {
	// Root is the directory processed, relative to the working directory
	Root string `koanf:"root" toml:"root"`
	// Glob selects candidate files below Root
	Glob string `koanf:"glob" toml:"glob"`
	// IgnoreDirs are directory names never descended into
	IgnoreDirs  []string `koanf:"ignore_dirs" toml:"ignore_dirs"`
	Concurrency int      `koanf:"concurrency" toml:"concurrency"`
	// Styles is a YAML theme for terminal output, relative to Root
	Styles string `koanf:"styles" toml:"styles,omitempty"`

	Configurations []Configuration `koanf:"configurations" toml:"configurations"`
}

// StylesPath resolves Styles against Root. Empty when no theme is set.
func (c *Config) StylesPath() string {
	if c.Styles == "" || filepath.IsAbs(c.Styles) {
		return c.Styles
	}
	return filepath.Join(c.Root, c.Styles)
}

// Configuration selects files and names the handlers run on them
type Configuration struct {
	Name     string    `koanf:"name" toml:"name"`
	File     string    `koanf:"file" toml:"file"`
	Exclude  []string  `koanf:"exclude" toml:"exclude,omitempty"`
	Handlers []Handler `koanf:"handlers" toml:"handlers"`
}

// Handler names a registered handler
type Handler struct {
	Name string `koanf:"name" toml:"name"`
	// Passes overrides the handler's default passes
	Passes  []int                  `koanf:"passes" toml:"passes,omitempty"`
	Options map[string]interface{} `koanf:"options" toml:"options,omitempty"`
}
