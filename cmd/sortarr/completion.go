package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vmunix/sortarr/internal/media"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a shell completion script for sortarr.

  source <(sortarr completion bash)
  sortarr completion zsh > "${fpath[1]}/_sortarr"
  sortarr completion fish > ~/.config/fish/completions/sortarr.fish
  sortarr completion powershell | Out-String | Invoke-Expression

History ids for 'redo' and 'history' are completed from the server's
recent failures, so completion works best with the server running.`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		default:
			return rootCmd.GenBashCompletionV2(out, true)
		}
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(completionCmd)
	historyCmd.ValidArgsFunction = completeFailedHistory
	redoCmd.ValidArgsFunction = completeFailedHistory
}

func completeMediaType(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
	return []cobra.Completion{string(media.TypeMovie), string(media.TypeTV)}, cobra.ShellCompDirectiveNoFileComp
}

func completeTransferMode(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
	return []cobra.Completion{
		cobra.CompletionWithDesc(string(media.ModeMove), "rename into the library"),
		cobra.CompletionWithDesc(string(media.ModeCopy), "copy, keep the source"),
		cobra.CompletionWithDesc(string(media.ModeLink), "hard link"),
		cobra.CompletionWithDesc(string(media.ModeSoftlink), "symbolic link"),
	}, cobra.ShellCompDirectiveNoFileComp
}

// completeFailedHistory offers ids of recent failed transfers as the first
// argument.
func completeFailedHistory(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	failed := false
	resp, err := NewClient(serverURL, apiKey).History(HistoryQuery{Success: &failed, Limit: 20})
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ids := make([]cobra.Completion, 0, len(resp.Items))
	for _, r := range resp.Items {
		ids = append(ids, cobra.CompletionWithDesc(strconv.FormatInt(r.ID, 10), truncate(r.SrcPath, 60)))
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
