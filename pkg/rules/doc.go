// Package rules selects the files a run works on.
//
// Selection happens in two steps. The Scanner walks the processing root
// and keeps every regular file whose slash separated relative path
// matches the root glob. Each configuration then applies its Rule to
// that list.
//
// # Root glob
//
// The root glob uses doublestar syntax:
//
//   - `**/*.*` - every file with an extension, at any depth
//   - `docs/**/*.md` - markdown below docs
//   - `*.java` - java files in the root only
//
// `**/` also matches zero directories, so `**/*.md` matches README.md.
//
// # Rules
//
// A Rule holds a file regex and exclusion regexes. Both are searched, not
// anchored, in the relative path:
//
//	file    = '\.md$'
//	exclude = ["target", "^vendor/"]
//
// A file is selected when the file regex matches and no exclusion does.
package rules
