/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tmarsden/binq/pkg/archive"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "binq",
	Short: "binq - binary snapshot toolkit",
	Long: `binq inspects, verifies and archives binary snapshot files written
in the binq wire format: a checksum-framed buffer with a length-record
header and tail-first payload.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global data directory flag for archive-backed commands
	rootCmd.PersistentFlags().StringP("data-dir", "d", "./data", "Data directory for the snapshot archive")
}

// openArchive opens the snapshot archive under the --data-dir flag.
func openArchive(cmd *cobra.Command) (*archive.Store, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	return openArchiveAt(dataDir)
}

func openArchiveAt(dataDir string) (*archive.Store, error) {
	return archive.Open(dataDir)
}
