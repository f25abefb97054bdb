package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"readinglist/internal/bootstrap"
	"readinglist/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	dataDir    string
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "readinglist",
		Short:         "Track books, reading status and reading goals",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Without a subcommand the terminal UI starts.
		RunE: func(_ *cobra.Command, _ []string) error {
			return opts.runTUI()
		},
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", defaultDataDir(), "directory holding the database, log and config")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default <data-dir>/config.yaml)")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newMigrateCmd(opts))
	root.AddCommand(newBookCmd(opts))
	root.AddCommand(newAuthorCmd(opts))
	root.AddCommand(newSubjectCmd(opts))
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newGoalCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	return root
}

func defaultDataDir() string {
	if dir := os.Getenv("READINGLIST_DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".readinglist"
	}
	return filepath.Join(home, ".readinglist")
}

func (o *rootOptions) config() (config.Config, error) {
	return config.Load(o.dataDir, o.configPath)
}

// withApp wires the application for one command and closes it afterwards.
func (o *rootOptions) withApp(fn func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := o.config()
	if err != nil {
		return err
	}
	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(ctx, app)
}

func (o *rootOptions) runTUI() error {
	return o.withApp(func(_ context.Context, app *bootstrap.App) error {
		return bootstrap.RunTUI(app)
	})
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return opts.runTUI()
		},
	}
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if err := bootstrap.Migrate(cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", cfg.DBDriver)
			return nil
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// optionalInt is nil unless the flag was given.
func optionalInt(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func orDash(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func row(cols ...string) string {
	return strings.Join(cols, "\t") + "\n"
}
