package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmarsden/binq/pkg/serq"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Check a snapshot file against its embedded checksum",
	Long: `Read a snapshot file, recompute the checksum of its buffer and
compare it to the stored one. Exits non-zero when the file is corrupt.

Example:
  binq verify save.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := serq.New()
		if err := q.ReadFile(args[0]); err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}

		if !q.Validate() {
			return fmt.Errorf("checksum mismatch: %s is corrupt", args[0])
		}

		cmd.Printf("%s: ok (checksum 0x%08X)\n", args[0], q.Stats().Checksum)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
