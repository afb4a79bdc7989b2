package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	v1 "github.com/vmunix/sortarr/internal/api/v1"
	"github.com/vmunix/sortarr/pkg/release"
)

var transferCmd = &cobra.Command{
	Use:   "transfer <path>",
	Short: "Organize a file or directory into the library",
	Long: `Recognize and organize a file or directory into the configured libraries.

The path is resolved on the server. Directories are expanded into their
media files; disc folders are transferred whole.

Examples:
  sortarr transfer /downloads/Heat.1995.1080p.BluRay.x264
  sortarr transfer /downloads/Show.S01 --type tv --tmdb 1396
  sortarr transfer /downloads/Show --season 2 --episode-pattern "Show - {ep}.mkv"
  sortarr transfer /downloads/Movie.mkv --mode link --background`,
	Args: cobra.ExactArgs(1),
	RunE: runTransferCmd,
}

func init() {
	rootCmd.AddCommand(transferCmd)
	addTransferFlags(transferCmd)
}

func addTransferFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("type", "", "Media type (movie, tv); required with --tmdb")
	f.Int64("tmdb", 0, "TMDB id, skips recognition")
	f.Int("season", 0, "Override the season")
	f.String("mode", "", "Transfer mode (copy, move, link, softlink)")
	f.String("target", "", "Target directory (default: resolved from the libraries)")
	f.String("storage", "", "Source storage (default: local)")
	f.String("target-storage", "", "Target storage")
	f.String("episode-pattern", "", "Episode locator, {ep} marks the episode number")
	f.String("episode-offset", "", "Episode offset expression, e.g. EP+1")
	f.Int("episode-start", 0, "First episode to accept")
	f.Int("episode-end", 0, "Last episode to accept")
	f.Int("min-size", 0, "Minimum media file size in MB")
	f.Bool("scrape", false, "Request metadata scraping")
	f.Bool("no-scrape", false, "Skip metadata scraping")
	f.Bool("force", false, "Transfer even if already organized")
	f.Bool("background", false, "Queue and return immediately")
	cmd.MarkFlagsMutuallyExclusive("scrape", "no-scrape")
	_ = cmd.RegisterFlagCompletionFunc("type", completeMediaType)
	_ = cmd.RegisterFlagCompletionFunc("mode", completeTransferMode)
}

func runTransferCmd(cmd *cobra.Command, args []string) error {
	req, err := transferRequest(cmd, args[0])
	if err != nil {
		return err
	}

	client := NewClient(serverURL, apiKey)
	resp, err := client.Transfer(req)
	if err != nil {
		return fmt.Errorf("transfer failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}
	printTransferResult(req, resp)
	if !resp.Success {
		return fmt.Errorf("transfer of %s did not complete", filepath.Base(req.Path))
	}
	return nil
}

func transferRequest(cmd *cobra.Command, path string) (v1.TransferRequest, error) {
	f := cmd.Flags()
	req := v1.TransferRequest{Path: path}
	req.Type, _ = f.GetString("type")
	req.TMDBID, _ = f.GetInt64("tmdb")
	req.Season, _ = f.GetInt("season")
	req.Mode, _ = f.GetString("mode")
	req.TargetPath, _ = f.GetString("target")
	req.Storage, _ = f.GetString("storage")
	req.TargetStorage, _ = f.GetString("target-storage")
	req.MinSizeMB, _ = f.GetInt("min-size")
	req.Force, _ = f.GetBool("force")
	req.Background, _ = f.GetBool("background")

	if req.TMDBID != 0 && req.Type == "" {
		return req, fmt.Errorf("--tmdb requires --type")
	}

	var ef release.EpisodeFormat
	ef.Pattern, _ = f.GetString("episode-pattern")
	ef.Offset, _ = f.GetString("episode-offset")
	ef.Start, _ = f.GetInt("episode-start")
	ef.End, _ = f.GetInt("episode-end")
	if !ef.IsZero() {
		if _, err := ef.Compile(); err != nil {
			return req, err
		}
		req.EpisodeFormat = ef
	}

	if scrape, _ := f.GetBool("scrape"); scrape {
		req.Scrape = &scrape
	}
	if noScrape, _ := f.GetBool("no-scrape"); noScrape {
		scrape := false
		req.Scrape = &scrape
	}
	return req, nil
}

func printTransferResult(req v1.TransferRequest, resp *v1.TransferResponse) {
	name := filepath.Base(req.Path)
	switch {
	case resp.Success && req.Background:
		fmt.Fprintf(stdout, "Queued %s\n", name)
	case resp.Success:
		fmt.Fprintf(stdout, "Organized %s\n", name)
	default:
		fmt.Fprintf(stdout, "Failed %s\n", name)
	}
	if resp.Message != "" {
		fmt.Fprintln(stdout, resp.Message)
	}
}
