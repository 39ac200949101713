package output

import (
	"os"
	"slices"
	"strings"

	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects a renderer
type Format int

const (
	// FormatAuto is FormatTerminal on a color capable terminal and
	// FormatText otherwise
	FormatAuto Format = iota
	FormatTerminal
	FormatText
	FormatJSON
	FormatYAML
	// FormatJUnit reports one test case per processed file
	FormatJUnit
)

// Formats lists the canonical format names, indexed by Format
var Formats = []string{"auto", "term", "text", "json", "yaml", "junit"}

var formatAliases = map[string]Format{
	"":         FormatAuto,
	"terminal": FormatTerminal,
	"plain":    FormatText,
	"yml":      FormatYAML,
	"xml":      FormatJUnit,
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(Formats) {
		return "unknown"
	}
	return Formats[f]
}

// ParseFormat accepts the canonical names, a few aliases and any case
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(s)
	if i := slices.Index(Formats, s); i >= 0 {
		return Format(i), nil
	}
	if f, ok := formatAliases[s]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format %q (one of %s)", s, strings.Join(Formats, ", "))
}

// DetectFormat resolves FormatAuto for output. NO_COLOR, pipes and
// terminals without color support get plain text.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}

	if termenv.NewOutput(output).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
