package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "nyaya",
	Short: "nyaya — NyayaBharat civic engagement and legal assistance gateway",
	Long:  "nyaya-go is the Go gateway for the NyayaBharat unified civic engagement and legal assistance platform.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = Version
}
