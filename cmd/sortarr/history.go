package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	v1 "github.com/vmunix/sortarr/internal/api/v1"
	"github.com/vmunix/sortarr/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "Show transfer history",
	Long: `List transfer history, newest first, or show one record in detail.

Examples:
  sortarr history                  # Last 20 transfers
  sortarr history --failed         # Failed transfers only
  sortarr history --search heat    # Match title or source path
  sortarr history 42               # Details of record 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	f := historyCmd.Flags()
	f.IntP("limit", "n", 20, "Number of records")
	f.Int("offset", 0, "Records to skip")
	f.Bool("failed", false, "Only failed transfers")
	f.Bool("succeeded", false, "Only successful transfers")
	f.String("type", "", "Filter by media type (movie, tv)")
	f.StringP("search", "s", "", "Filter by title or source path")
	f.String("hash", "", "Filter by torrent hash")
	historyCmd.MarkFlagsMutuallyExclusive("failed", "succeeded")
	_ = historyCmd.RegisterFlagCompletionFunc("type", completeMediaType)
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid history ID: %s", args[0])
		}
		rec, err := client.HistoryRecord(id)
		if err != nil {
			return fmt.Errorf("history fetch failed: %w", err)
		}
		if jsonOutput {
			printJSON(rec)
			return nil
		}
		printHistoryRecord(rec)
		return nil
	}

	f := cmd.Flags()
	var q HistoryQuery
	q.Limit, _ = f.GetInt("limit")
	q.Offset, _ = f.GetInt("offset")
	q.Type, _ = f.GetString("type")
	q.Search, _ = f.GetString("search")
	q.Hash, _ = f.GetString("hash")
	if failed, _ := f.GetBool("failed"); failed {
		ok := false
		q.Success = &ok
	}
	if succeeded, _ := f.GetBool("succeeded"); succeeded {
		ok := true
		q.Success = &ok
	}

	resp, err := client.History(q)
	if err != nil {
		return fmt.Errorf("history fetch failed: %w", err)
	}
	if jsonOutput {
		printJSON(resp)
		return nil
	}
	printHistory(resp)
	return nil
}

func printHistory(resp *v1.HistoryResponse) {
	if len(resp.Items) == 0 {
		fmt.Fprintln(stdout, "No history")
		return
	}
	rows := make([][]string, 0, len(resp.Items))
	for _, r := range resp.Items {
		status := "ok"
		if !r.Success {
			status = "FAIL"
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			status,
			truncate(historyTitle(r), 30),
			truncate(filepath.Base(r.SrcPath), 44),
			formatTimeAgo(r.CreatedAt),
		})
	}
	fmt.Fprintf(stdout, "History (%d of %d):\n\n", len(resp.Items), resp.Total)
	fmt.Fprintln(stdout, renderTable(stdout, []string{"ID", "Status", "Media", "Source", "When"}, rows, 1))
}

func historyTitle(r *history.Record) string {
	if r.Title == "" {
		return "-"
	}
	title := r.Title
	if r.Year > 0 {
		title += fmt.Sprintf(" (%d)", r.Year)
	}
	if r.Season > 0 {
		title += fmt.Sprintf(" S%02d", r.Season)
	}
	return title
}

func printHistoryRecord(r *history.Record) {
	status := "success"
	if !r.Success {
		status = "failed"
	}
	fmt.Fprintf(stdout, "Record %d (%s, %s)\n\n", r.ID, status, formatTimeAgo(r.CreatedAt))
	fmt.Fprintf(stdout, "  Media:    %s\n", historyTitle(r))
	if r.TMDBID > 0 {
		fmt.Fprintf(stdout, "  TMDB:     %s %d\n", r.MediaType, r.TMDBID)
	}
	if len(r.Episodes) > 0 {
		eps := make([]string, len(r.Episodes))
		for i, e := range r.Episodes {
			eps[i] = strconv.Itoa(e)
		}
		fmt.Fprintf(stdout, "  Episodes: %s\n", strings.Join(eps, ", "))
	}
	fmt.Fprintf(stdout, "  Source:   %s:%s\n", r.SrcStorage, r.SrcPath)
	if r.DestPath != "" {
		fmt.Fprintf(stdout, "  Dest:     %s:%s (%s)\n", r.DestStorage, r.DestPath, r.Mode)
	}
	if r.Hash != "" {
		fmt.Fprintf(stdout, "  Torrent:  %s %s\n", r.Downloader, r.Hash)
	}
	if r.ErrorMsg != "" {
		fmt.Fprintf(stdout, "  Error:    %s\n", r.ErrorMsg)
		fmt.Fprintf(stdout, "\nRetry with: sortarr redo %d '<tmdbid>|%s'\n", r.ID, redoType(r))
	}
	for _, f := range r.Files {
		fmt.Fprintf(stdout, "  File:     %s\n", f)
	}
}

func redoType(r *history.Record) string {
	if r.MediaType == "" {
		return "movie"
	}
	return string(r.MediaType)
}
