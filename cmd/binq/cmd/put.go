package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <name> <file>",
	Short: "Store a snapshot file in the archive",
	Long: `Store a snapshot file as a new revision of the named snapshot.
The file's checksum is verified before it is accepted.

Example:
  binq put game save.bin`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		framed, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[1], err)
		}

		store, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.Put(name, framed)
		if err != nil {
			return fmt.Errorf("failed to store snapshot: %w", err)
		}

		cmd.Printf("stored %s revision %s (%d bytes)\n", name, id.String(), len(framed))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
}
