// Package types defines the core types and interfaces shared by the
// processor and the handlers: the Handler contract, pass sets, the
// filesystem abstraction and the per-run context handed to handlers.
package types
