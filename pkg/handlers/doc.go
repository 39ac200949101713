// Package handlers provides the building blocks shared by all document
// handlers: pass selection, mnemonics, option decoding and access to the
// directives written on markdown snip regions.
//
// Concrete handlers live in sub packages:
//
//   - snippets: snippet-reader and md-snippet-writer
//   - lineskip: line-skipper
//   - regex: regex
//   - trim: trim
//   - linenumber: line-numberer
//
// Handlers are registered by name in handlers/registry so configuration
// files can refer to them.
package handlers
