package main

import (
	"context"
	"fmt"
	"os"

	"github.com/arthur-debert/snipper/internal/cli"
	"github.com/arthur-debert/snipper/pkg/output/styles"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, styles.GetStyle("Error").Render(fmt.Sprintf("Error: %v", err)))
		}
		os.Exit(1)
	}
}
