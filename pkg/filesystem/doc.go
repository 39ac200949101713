// Package filesystem provides the types.FS implementations: the OS
// filesystem with atomic replacement of written files, and afero backed
// variants for memory trees and read-only runs.
package filesystem
