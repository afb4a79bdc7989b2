package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	v1 "github.com/vmunix/sortarr/internal/api/v1"
	"github.com/vmunix/sortarr/internal/events"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent events",
	Long: `Shows the server's event log.

  sortarr events -n 50
  sortarr events --since 2h
  sortarr events --entity media:1396`,
	Args: cobra.NoArgs,
	RunE: runEventsCmd,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().IntP("limit", "n", 20, "Number of events")
	eventsCmd.Flags().String("since", "", "Only events after a timestamp (RFC 3339) or duration ago (e.g. 2h)")
	eventsCmd.Flags().String("entity", "", "Only events for an entity, as <type>:<id> (e.g. media:1396)")
	eventsCmd.MarkFlagsMutuallyExclusive("since", "entity")
}

func runEventsCmd(cmd *cobra.Command, _ []string) error {
	q := EventQuery{}
	q.Limit, _ = cmd.Flags().GetInt("limit")
	q.Since, _ = cmd.Flags().GetString("since")
	q.Entity, _ = cmd.Flags().GetString("entity")

	client := NewClient(serverURL, apiKey)
	evts, err := client.Events(q)
	if err != nil {
		return fmt.Errorf("events fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(evts)
		return nil
	}
	printEvents(evts)
	return nil
}

func printEvents(evts []v1.EventResponse) {
	if len(evts) == 0 {
		fmt.Fprintln(stdout, "No events")
		return
	}

	registry := events.DefaultRegistry()
	rows := make([][]string, 0, len(evts))
	for _, e := range evts {
		when := e.OccurredAt
		if t, err := time.Parse(time.RFC3339, e.OccurredAt); err == nil {
			when = formatTimeAgo(t)
		}
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.EventType,
			e.EntityType + ":" + strconv.FormatInt(e.EntityID, 10),
			when,
			truncate(describeEvent(registry, e), 70),
		})
	}
	fmt.Fprintln(stdout, renderTable(stdout, []string{"ID", "Event", "Entity", "When", "Detail"}, rows, 1))
}

// describeEvent renders a one-line summary from an event payload. Unknown
// types and unreadable payloads describe as empty.
func describeEvent(registry *events.Registry, e v1.EventResponse) string {
	if len(e.Payload) == 0 {
		return ""
	}
	evt, err := registry.Unmarshal(events.RawEvent{EventType: e.EventType, Payload: string(e.Payload)})
	if err != nil {
		return ""
	}

	switch ev := evt.(type) {
	case *events.TransferQueued:
		return ev.SourcePath
	case *events.TransferCompleted:
		return filepath.Base(ev.SourcePath) + " -> " + ev.TargetPath
	case *events.TransferFailed:
		return filepath.Base(ev.SourcePath) + ": " + ev.Reason
	case *events.JobCompleted:
		title := ev.Title
		if ev.Season > 0 {
			title = fmt.Sprintf("%s S%02d", title, ev.Season)
		}
		return fmt.Sprintf("%s, %d files (%s)", title, ev.FileCount, formatSize(ev.TotalSize))
	case *events.MetadataScrapeRequested:
		return ev.TargetDir
	case *events.TorrentTransferred:
		return ev.Downloader + " " + ev.Hash
	case *events.TorrentRemoved:
		return ev.Downloader + " " + ev.Hash
	}
	return ""
}
