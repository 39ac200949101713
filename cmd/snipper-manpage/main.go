package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/snipper/internal/cli"
	"github.com/arthur-debert/snipper/internal/version"
	"github.com/spf13/cobra/doc"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "SNIPPER",
		Section: "1",
		Source:  "snipper " + version.Version,
		Manual:  "snipper manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
