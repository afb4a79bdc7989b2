package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	v1 "github.com/vmunix/sortarr/internal/api/v1"
	"github.com/vmunix/sortarr/internal/jobs"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show tracked transfer jobs",
	Args:  cobra.NoArgs,
	RunE:  runQueueCmd,
}

var dequeueCmd = &cobra.Command{
	Use:   "dequeue <path>",
	Short: "Remove a waiting file from the queue",
	Args:  cobra.ExactArgs(1),
	RunE:  runDequeueCmd,
}

func init() {
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(dequeueCmd)
	queueCmd.Flags().BoolP("all", "a", false, "Include completed and failed tasks")
	dequeueCmd.Flags().String("storage", "", "Storage of the file (default: local)")
}

func runQueueCmd(cmd *cobra.Command, _ []string) error {
	showAll, _ := cmd.Flags().GetBool("all")

	client := NewClient(serverURL, apiKey)
	q, err := client.Queue()
	if err != nil {
		return fmt.Errorf("queue fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(q)
		return nil
	}
	printQueue(q, showAll)
	return nil
}

func printQueue(q *v1.QueueResponse, showAll bool) {
	var rows [][]string
	for _, j := range q.Jobs {
		title := j.Name
		if j.Media != nil {
			title = j.Media.Title
			if j.Media.Year > 0 {
				title += " (" + strconv.Itoa(j.Media.Year) + ")"
			}
		}
		season := "-"
		if j.Season > 0 {
			season = strconv.Itoa(j.Season)
		}
		for _, r := range j.Records {
			if !showAll && (r.State == jobs.StateCompleted || r.State == jobs.StateFailed) {
				continue
			}
			rows = append(rows, []string{
				truncate(title, 30),
				season,
				truncate(filepath.Base(r.File.Path), 44),
				string(r.State),
				formatSize(r.File.Size),
			})
		}
	}

	if len(rows) == 0 {
		fmt.Fprintln(stdout, "No queued transfers")
		return
	}
	fmt.Fprintf(stdout, "Transfers (%d jobs, %d waiting):\n\n", len(q.Jobs), q.Waiting)
	fmt.Fprintln(stdout, renderTable(stdout, []string{"Media", "Season", "File", "State", "Size"}, rows, 5))
}

func runDequeueCmd(cmd *cobra.Command, args []string) error {
	storage, _ := cmd.Flags().GetString("storage")
	client := NewClient(serverURL, apiKey)
	if err := client.Dequeue(args[0], storage); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%s is not waiting in the queue", args[0])
		}
		return fmt.Errorf("dequeue failed: %w", err)
	}
	fmt.Fprintf(stdout, "Removed %s from the queue\n", filepath.Base(args[0]))
	return nil
}
