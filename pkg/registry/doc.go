// Package registry provides a thread-safe, generic name to item registry.
// Handler names used in configuration files resolve through it.
package registry
