// Package config handles configuration management for snipper.
// Configuration is layered: embedded defaults, then a project file found
// in the processing root (or given explicitly), then SNIPPER_ environment
// variables. The result is turned into processor configurations through
// the handler registry.
package config
