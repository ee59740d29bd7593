// Bopi is a command line tool for the BoPi pH/sensor monitoring box.
//
// It provides box discovery, sensor readouts, raw API access, and an
// MQTT publisher that bridges the box into a home automation setup.
// All communication goes over the box's local HTTP API.
//
// Usage:
//
//	bopi [command] [flags]
//
// See 'bopi --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mderasse/go-bopi/internal/logging"
	"github.com/mderasse/go-bopi/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bopi",
	Short: "BoPi sensor box utility",
	Long: `A command line tool for the BoPi pH/sensor monitoring box.

Provides box discovery, sensor readouts, raw API access, and an MQTT
publisher for home automation setups.`,
	Version: version.Version,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bopi %s\n", version.Full())
	},
}
