package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/sortarr/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example configuration file",
	Long:  "Writes a commented example config to path, or to the default location ($XDG_CONFIG_HOME/sortarr/config.toml).",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configCheckCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields, and environment variable substitution without starting the server.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigCheck,
}

var configShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Print the effective configuration",
	Long:  "Prints the configuration after environment substitution and defaults.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show where the configuration is looked up",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configCheckCmd, configShowCmd, configPathCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")
	if err := config.WriteDefault(path, force); err != nil {
		return fmt.Errorf("write config: %w (use --force to overwrite)", err)
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	fmt.Fprintln(stdout, "Edit the library paths and set TMDB_API_KEY, then run 'sortarr config check'.")
	return nil
}

func configPathArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return config.Discover()
}

func runConfigCheck(_ *cobra.Command, args []string) error {
	path, err := configPathArg(args)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(cfg)
	if warnings := cfg.Warnings(); len(warnings) > 0 {
		fmt.Fprintln(stdout, "\nWarnings:")
		for _, w := range warnings {
			fmt.Fprintf(stdout, "  - %s\n", w)
		}
	}
	fmt.Fprintln(stdout, "\nConfiguration valid!")
	return nil
}

func runConfigShow(_ *cobra.Command, args []string) error {
	path, err := configPathArg(args)
	if err != nil {
		return err
	}
	cfg, err := config.LoadWithoutValidation(path)
	if err != nil {
		return err
	}
	if jsonOutput {
		printJSON(cfg)
		return nil
	}
	return cfg.Encode(stdout)
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	found, err := config.Discover()
	if err != nil {
		found = "(none)"
	}
	fmt.Fprintf(stdout, "Active:   %s\n", found)
	fmt.Fprintf(stdout, "Override: $%s\n", config.EnvConfig)
	fmt.Fprintln(stdout, "Searched:")
	for _, p := range config.SearchPaths() {
		fmt.Fprintf(stdout, "  %s\n", p)
	}
	return nil
}

func printConfigErrors(e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(stdout, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(stdout, "  - %s\n", m)
		}
		fmt.Fprintln(stdout)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(stdout, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(stdout, "  - %s\n", err)
		}
		fmt.Fprintln(stdout)
	}
}

func printConfigSummary(cfg *config.Config) {
	fmt.Fprintln(stdout, "Configuration Summary:")
	fmt.Fprintf(stdout, "  Server:     %s:%d (log: %s)\n", cfg.Server.Host, cfg.Server.Port, cfg.Log.Level)
	fmt.Fprintf(stdout, "  Database:   %s\n", cfg.Database.Path)

	libs := make([]string, 0, len(cfg.Libraries))
	for _, l := range cfg.Libraries {
		libs = append(libs, fmt.Sprintf("%s (%s)", l.Name, l.Path))
	}
	fmt.Fprintf(stdout, "  Libraries:  %s\n", strings.Join(libs, ", "))
	fmt.Fprintf(stdout, "  Transfer:   %s, %d workers\n", cfg.Transfer.Mode, cfg.Transfer.Workers)

	if len(cfg.Downloads.Dirs) > 0 {
		fmt.Fprintf(stdout, "  Downloads:  %s (every %s)\n", strings.Join(cfg.Downloads.Dirs, ", "), cfg.Downloads.PollInterval)
	}

	downloaders := make([]string, 0, len(cfg.Downloaders.QBittorrent))
	for _, qb := range cfg.Downloaders.QBittorrent {
		downloaders = append(downloaders, qb.Name)
	}
	if len(downloaders) > 0 {
		fmt.Fprintf(stdout, "  Downloaders: %s\n", strings.Join(downloaders, ", "))
	}

	integrations := []string{}
	if cfg.TMDB.APIKey != "" {
		integrations = append(integrations, "tmdb")
	}
	if cfg.Notifications.Ntfy != nil {
		integrations = append(integrations, "ntfy")
	}
	if cfg.Notifications.Plex != nil {
		integrations = append(integrations, "plex")
	}
	if len(integrations) > 0 {
		fmt.Fprintf(stdout, "  Integrations: %s\n", strings.Join(integrations, ", "))
	}
}
