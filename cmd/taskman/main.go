// Package main implements the taskman CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "taskman",
	Short:         "Taskman - a client for the task-manager server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errReported marks failures the notifier has already shown, so main
// exits non-zero without printing the message a second time.
var errReported = errors.New("reported")

// reported converts a store error into errReported. Store operations
// notify the user themselves; the caller only needs the exit code.
func reported(err error) error {
	if err == nil {
		return nil
	}
	return errReported
}
