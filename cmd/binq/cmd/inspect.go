package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmarsden/binq/pkg/serq"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print the header breakdown of a snapshot file",
	Long: `Read a snapshot file and print its checksum, header ledger and
payload size.

Example:
  binq inspect save.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := serq.New()
		if err := q.ReadFile(args[0]); err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}

		stats := q.Stats()
		cmd.Printf("checksum:      0x%08X\n", stats.Checksum)
		cmd.Printf("header bytes:  %d\n", stats.HeaderBytes)
		cmd.Printf("payload bytes: %d\n", stats.PayloadBytes)
		cmd.Printf("length records (consumption order): %d\n", len(stats.Records))
		for i, rec := range stats.Records {
			cmd.Printf("  [%d] %d\n", i, rec)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
