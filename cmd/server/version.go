package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ndewijer/portfolio-tracker/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "portfolio-tracker %s (%s %s/%s)\n",
				version.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
