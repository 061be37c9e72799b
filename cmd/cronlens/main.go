package main

import (
	"fmt"
	"os"

	"github.com/aatumaykin/cronlens/internal/messages"
	"github.com/aatumaykin/cronlens/internal/version"
)

var (
	Version   string = "0.1.0-dev"
	BuildTime string = "unknown"
	GitCommit string = "unknown"
	GoVersion string = "unknown"
)

func init() {
	version.SetInfo(Version, BuildTime, GitCommit, GoVersion)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, messages.FormatError(err))
		os.Exit(1)
	}
}
