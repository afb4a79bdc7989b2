package main

import (
	"fmt"

	"github.com/spf13/cobra"

	v1 "github.com/vmunix/sortarr/internal/api/v1"
	"github.com/vmunix/sortarr/internal/transfer"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Daemon status and transfer progress",
	Args:  cobra.NoArgs,
	RunE:  runStatusCmd,
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Check the download clients for finished torrents now",
	Args:  cobra.NoArgs,
	RunE:  runProcessCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(processCmd)
}

func runStatusCmd(_ *cobra.Command, _ []string) error {
	client := NewClient(serverURL, apiKey)
	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}
	printStatus(serverURL, status)
	return nil
}

func printStatus(server string, s *v1.StatusResponse) {
	poller := "disabled"
	if s.Poller {
		poller = "enabled"
	}
	fmt.Fprintf(stdout, "sortarrd %s | Server: %s (%s) | Poller: %s\n\n", s.Version, server, s.Status, poller)

	fmt.Fprintln(stdout, "Transfers")
	fmt.Fprintf(stdout, "  Workers:  %d\n", s.Workers)
	fmt.Fprintf(stdout, "  Jobs:     %d\n", s.Jobs)
	fmt.Fprintf(stdout, "  Waiting:  %d\n", s.Waiting)
	printProgress(s.Progress)
}

func printProgress(p transfer.ProgressSnapshot) {
	if !p.Running && p.Total == 0 {
		return
	}
	fmt.Fprintln(stdout)
	state := "finished " + formatTimeAgo(p.FinishedAt)
	if p.Running {
		state = "running since " + formatTimeAgo(p.StartedAt)
	}
	fmt.Fprintf(stdout, "Batch (%s)\n", state)
	fmt.Fprintf(stdout, "  Progress: %d/%d (%.0f%%)", p.Processed, p.Total, p.Percent)
	if p.Failed > 0 {
		fmt.Fprintf(stdout, ", %d failed", p.Failed)
	}
	fmt.Fprintln(stdout)
	if p.Current != "" {
		fmt.Fprintf(stdout, "  Current:  %s\n", p.Current)
	}
	if p.Message != "" {
		fmt.Fprintf(stdout, "  %s\n", p.Message)
	}
}

func runProcessCmd(_ *cobra.Command, _ []string) error {
	client := NewClient(serverURL, apiKey)
	resp, err := client.Process()
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}
	if jsonOutput {
		printJSON(resp)
		return nil
	}
	if resp.Ran {
		fmt.Fprintln(stdout, "Download clients checked")
	} else {
		fmt.Fprintln(stdout, "A check is already running")
	}
	return nil
}
