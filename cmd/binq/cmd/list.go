package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [name]",
	Short: "List snapshots or the revisions of one snapshot",
	Long: `Without arguments, list the names of all snapshots in the archive.
With a name, list that snapshot's revisions oldest first.

Examples:
  binq list
  binq list game`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) == 0 {
			names, err := store.Names()
			if err != nil {
				return fmt.Errorf("failed to list snapshots: %w", err)
			}
			for _, name := range names {
				cmd.Println(name)
			}
			return nil
		}

		revs, err := store.Revisions(args[0])
		if err != nil {
			return fmt.Errorf("failed to list revisions: %w", err)
		}
		for _, rev := range revs {
			cmd.Printf("%s  %d bytes\n", rev.ID.String(), rev.Size)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
