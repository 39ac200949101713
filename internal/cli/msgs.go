package cli

import (
	_ "embed"
	"strings"
)

// Short messages
const (
	MsgRootShort       = "Keep documentation snippets in sync with source code"
	MsgRunShort        = "Process the root directory"
	MsgSnippetsShort   = "List the snippets collected from the root directory"
	MsgWatchShort      = "Process the root directory on every change"
	MsgGenConfigShort  = "Print the configuration as TOML"
	MsgManShort        = "Generate man pages"
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot        = "Directory to process"
	MsgFlagConfig      = "Configuration file (default: .snipper.toml or snipper.yaml in the root)"
	MsgFlagGlob        = "Glob selecting candidate files, overrides the configuration"
	MsgFlagDryRun      = "Compute changes without writing them"
	MsgFlagDiff        = "Show unified diffs of changed files"
	MsgFlagCheck       = "Fail when files are out of date; implies --dry-run"
	MsgFlagFormat      = "Output format: auto, term, text, json, yaml or junit"
	MsgFlagSkipHandler = "Do not run the named handler (repeatable)"
	MsgFlagDebounce    = "Quiet period before a run"
	MsgFlagManDir      = "Directory the man pages are written to"
	MsgFlagEffective   = "Print the loaded configuration instead of the defaults"

	MsgErrOutdated  = "%d file(s) out of date"
	MsgErrUnknownHandler = "unknown handler %q given to --skip-handler"
	MsgManWritten   = "Man pages written to %s"
)

var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong    = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
