package cmd

import (
	"fmt"
	"os"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Fetch a snapshot from the archive",
	Long: `Fetch the latest revision of a named snapshot and write it to a
file, or to stdout when no output path is given. Use --rev to fetch a
specific revision.

Example:
  binq get game -o save.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		rev, _ := cmd.Flags().GetString("rev")
		output, _ := cmd.Flags().GetString("output")

		store, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		var framed []byte
		if rev == "" {
			var ferr error
			framed, _, ferr = store.Latest(name)
			if ferr != nil {
				return fmt.Errorf("failed to fetch snapshot: %w", ferr)
			}
		} else {
			id, perr := ksuid.Parse(rev)
			if perr != nil {
				return fmt.Errorf("malformed revision id %q: %w", rev, perr)
			}
			framed, err = store.Get(name, id)
			if err != nil {
				return fmt.Errorf("failed to fetch snapshot: %w", err)
			}
		}

		if output == "" {
			_, err = cmd.OutOrStdout().Write(framed)
			return err
		}
		if err := os.WriteFile(output, framed, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		cmd.Printf("wrote %s (%d bytes)\n", output, len(framed))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringP("output", "o", "", "Write the snapshot to this file instead of stdout")
	getCmd.Flags().String("rev", "", "Fetch a specific revision instead of the latest")
}
