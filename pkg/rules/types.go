package rules

// FileInfo is a file found by the scanner
type FileInfo struct {
	// Path is the filesystem path
	Path string
	// RelPath is the slash separated path relative to the scanned root
	RelPath string
	// Name is the base name
	Name string
}
