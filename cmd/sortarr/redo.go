package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/sortarr/internal/transfer"
)

var redoCmd = &cobra.Command{
	Use:   "redo <id> <tmdbid>|<movie|tv>",
	Short: "Organize a history record again",
	Long: `Organize the source of a history record again, replacing what the
earlier attempt put into the library.

The second argument names the media: a TMDB id and type separated by '|'.
Leave the id empty to recognize from the file name again. This is the
same format failure notifications suggest.

Examples:
  sortarr redo 42 '1396|tv'     # Breaking Bad
  sortarr redo 42 '|movie'      # Recognize again as a movie`,
	Args: cobra.ExactArgs(2),
	RunE: runRedoCmd,
}

func init() {
	rootCmd.AddCommand(redoCmd)
}

func runRedoCmd(_ *cobra.Command, args []string) error {
	req, err := transfer.ParseRedoArgs(strings.Join(args, " "))
	if err != nil {
		return err
	}

	client := NewClient(serverURL, apiKey)
	resp, err := client.Redo(req)
	if err != nil {
		return fmt.Errorf("redo failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}
	if !resp.Success {
		return fmt.Errorf("redo of record %d failed: %s", req.HistoryID, resp.Message)
	}
	fmt.Fprintf(stdout, "Record %d organized again\n", req.HistoryID)
	return nil
}
