package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"readinglist/internal/bootstrap"
	listdto "readinglist/internal/modules/readinglist/dto"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	list := &cobra.Command{Use: "list", Short: "Manage your reading list"}

	list.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Every entry, most recently updated first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				entries, err := app.ListCLI.MyReadingList(ctx)
				if err != nil {
					return err
				}
				return printEntries(cmd.OutOrStdout(), entries)
			})
		},
	})

	list.AddCommand(&cobra.Command{
		Use:   "status <status>",
		Short: "Entries with one status (to_read, currently_reading, completed, paused, abandoned)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				entries, err := app.ListCLI.ByStatus(ctx, args[0])
				if err != nil {
					return err
				}
				return printEntries(cmd.OutOrStdout(), entries)
			})
		},
	})

	var status string
	add := &cobra.Command{
		Use:   "add <isbn>",
		Short: "Put a catalog book on your list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				id, err := app.ListCLI.AddBook(ctx, args[0], status)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added entry %d\n", id)
				return nil
			})
		},
	}
	add.Flags().StringVar(&status, "status", "", "initial status (default to_read)")
	list.AddCommand(add)

	list.AddCommand(&cobra.Command{
		Use:   "set <entry-id> <status>",
		Short: "Change an entry's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				if err := app.ListCLI.UpdateStatus(ctx, id, args[1]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "entry %d is now %s\n", id, args[1])
				return nil
			})
		},
	})

	var notes string
	rate := &cobra.Command{
		Use:   "rate <entry-id> <1-5>",
		Short: "Rate an entry, optionally replacing its notes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rating, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid rating %q", args[1])
			}
			var notesArg *string
			if cmd.Flags().Changed("notes") {
				notesArg = &notes
			}
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				if err := app.ListCLI.Rate(ctx, id, rating, notesArg); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rated entry %d %d/5\n", id, rating)
				return nil
			})
		},
	}
	rate.Flags().StringVar(&notes, "notes", "", "notes to store with the rating")
	list.AddCommand(rate)

	list.AddCommand(&cobra.Command{
		Use:   "remove <entry-id>",
		Short: "Take an entry off your list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				if err := app.ListCLI.Remove(ctx, id); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed entry %d\n", id)
				return nil
			})
		},
	})

	var recentLimit int
	recent := &cobra.Command{
		Use:   "recent",
		Short: "Recently completed books",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				entries, err := app.ListCLI.RecentlyCompleted(ctx, recentLimit)
				if err != nil {
					return err
				}
				return printEntries(cmd.OutOrStdout(), entries)
			})
		},
	}
	recent.Flags().IntVar(&recentLimit, "limit", 0, "number of entries (default 5)")
	list.AddCommand(recent)

	list.AddCommand(&cobra.Command{
		Use:   "reading",
		Short: "Books you are currently reading",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				entries, err := app.ListCLI.CurrentlyReading(ctx)
				if err != nil {
					return err
				}
				return printEntries(cmd.OutOrStdout(), entries)
			})
		},
	})

	var topLimit int
	top := &cobra.Command{
		Use:   "top",
		Short: "Your highest rated books",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				entries, err := app.ListCLI.TopRated(ctx, topLimit)
				if err != nil {
					return err
				}
				return printEntries(cmd.OutOrStdout(), entries)
			})
		},
	}
	top.Flags().IntVar(&topLimit, "limit", 0, "number of entries (default 10)")
	list.AddCommand(top)

	return list
}

func printEntries(w io.Writer, entries []listdto.EntryOutput) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no entries")
		return err
	}
	for _, e := range entries {
		line := row(strconv.FormatInt(e.ID, 10), e.ISBN, e.Title, e.Authors, e.Status, orDash(e.Rating))
		if _, err := fmt.Fprint(w, line); err != nil {
			return err
		}
	}
	return nil
}
