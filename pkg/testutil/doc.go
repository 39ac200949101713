// Package testutil builds file trees for tests, in memory or in a
// temporary directory.
package testutil
