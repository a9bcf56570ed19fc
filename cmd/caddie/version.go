package main

import (
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "v0.3.0"
	commit  = "HEAD"
	date    = "2026-08-21"
)

func init() {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Long:  `Print the version information for the caddie CLI`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("caddie version %s\n", version)
			cmd.Printf("Commit: %s\n", commit)
			cmd.Printf("Build Date: %s\n", date)
			cmd.Printf("Go Version: %s\n", runtime.Version())
			cmd.Printf("Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}

	rootCmd.AddCommand(versionCmd)
}
