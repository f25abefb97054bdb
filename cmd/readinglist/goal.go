package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"readinglist/internal/bootstrap"
	goaldto "readinglist/internal/modules/goal/dto"
)

const dateLayout = "2006-01-02"

func newGoalCmd(opts *rootOptions) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Reading goals"}

	goal.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Active goals, nearest deadline first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				goals, err := app.GoalCLI.ActiveGoals(ctx)
				if err != nil {
					return err
				}
				return printGoals(cmd.OutOrStdout(), goals)
			})
		},
	})

	goal.AddCommand(&cobra.Command{
		Use:   "progress <goal-id>",
		Short: "Progress towards a goal's targets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				p, err := app.GoalCLI.GoalProgress(ctx, id)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "%s (due %s)\n", p.Goal.Name, p.Goal.Deadline.Format(dateLayout))
				_, _ = fmt.Fprintf(w, "books:    %d / %s (%.1f%%)\n", p.BooksAdded, orDash(p.Goal.TargetBooks), p.BookPercent)
				_, _ = fmt.Fprintf(w, "pages:    %d / %s (%.1f%%)\n", p.TotalPages, orDash(p.Goal.TargetPages), p.PagePercent)
				_, _ = fmt.Fprintf(w, "achieved: %t\n", p.Achieved)
				if p.Overdue {
					_, _ = fmt.Fprintln(w, "deadline: overdue")
				} else {
					_, _ = fmt.Fprintf(w, "deadline: %d days left\n", p.DaysLeft)
				}
				return nil
			})
		},
	})

	var (
		description, start, deadline string
		targetBooks, targetPages     int
		isbns                        []string
	)
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a goal, optionally with its first books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				startDate := app.Clock.Now()
				if start != "" {
					var err error
					if startDate, err = time.Parse(dateLayout, start); err != nil {
						return fmt.Errorf("invalid --start %q: want %s", start, dateLayout)
					}
				}
				deadlineDate, err := time.Parse(dateLayout, deadline)
				if err != nil {
					return fmt.Errorf("invalid --deadline %q: want %s", deadline, dateLayout)
				}
				g, err := app.GoalCLI.CreateGoal(ctx, args[0], description, startDate, deadlineDate,
					optionalInt(cmd, "books", targetBooks), optionalInt(cmd, "pages", targetPages), isbns)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created goal %d %s (%s)\n", g.ID, g.Name, g.Targets)
				return nil
			})
		},
	}
	create.Flags().StringVar(&description, "description", "", "what the goal is about")
	create.Flags().StringVar(&start, "start", "", "start date (default today)")
	create.Flags().StringVar(&deadline, "deadline", "", "deadline date")
	create.Flags().IntVar(&targetBooks, "books", 0, "number of books to read")
	create.Flags().IntVar(&targetPages, "pages", 0, "number of pages to read")
	create.Flags().StringSliceVar(&isbns, "isbn", nil, "book to link right away (repeatable)")
	_ = create.MarkFlagRequired("deadline")
	goal.AddCommand(create)

	goal.AddCommand(&cobra.Command{
		Use:   "add-book <goal-id> <isbn>",
		Short: "Link a book to a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				if err := app.GoalCLI.AddBookToGoal(ctx, id, args[1]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s to goal %d\n", args[1], id)
				return nil
			})
		},
	})

	goal.AddCommand(&cobra.Command{
		Use:   "complete <goal-id>",
		Short: "Mark a goal completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				if err := app.GoalCLI.MarkGoalComplete(ctx, id); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal %d completed\n", id)
				return nil
			})
		},
	})

	var days int
	upcoming := &cobra.Command{
		Use:   "upcoming",
		Short: "Active goals due soon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				goals, err := app.GoalCLI.UpcomingDeadlines(ctx, days)
				if err != nil {
					return err
				}
				return printGoals(cmd.OutOrStdout(), goals)
			})
		},
	}
	upcoming.Flags().IntVar(&days, "days", 0, "window in days (default 7)")
	goal.AddCommand(upcoming)

	goal.AddCommand(&cobra.Command{
		Use:   "books <goal-id>",
		Short: "Books linked to a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				books, err := app.GoalCLI.GoalBooks(ctx, id)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(books) == 0 {
					_, _ = fmt.Fprintln(w, "no books")
					return nil
				}
				for _, b := range books {
					_, _ = fmt.Fprint(w, row(b.ISBN, b.Title, orDash(b.Pages)))
				}
				return nil
			})
		},
	})

	var dir string
	export := &cobra.Command{
		Use:   "export <goal-id>",
		Short: "Write a goal and its progress as a markdown note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if dir == "" {
				dir = filepath.Join(opts.dataDir, "goals")
			}
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.GoalCLI.ExportGoal(ctx, id, dir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", out.Path)
				return nil
			})
		},
	}
	export.Flags().StringVar(&dir, "dir", "", "target directory (default <data-dir>/goals)")
	goal.AddCommand(export)

	goal.AddCommand(&cobra.Command{
		Use:   "import <note.md>",
		Short: "Create a goal from an exported note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				g, err := app.GoalCLI.ImportGoal(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported goal %d %s\n", g.ID, g.Name)
				return nil
			})
		},
	})

	return goal
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Reading overview",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				o, err := app.StatsCLI.Overview(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "entries\t%d\ncompleted\t%d\nreading\t%d\npages read\t%d\n",
					o.Total, o.Completed, o.Reading, o.PagesRead)
				if o.Rated > 0 {
					_, _ = fmt.Fprintf(w, "average rating\t%.2f (%d rated)\n", o.AverageRating, o.Rated)
				}
				for _, c := range o.ByStatus {
					_, _ = fmt.Fprint(w, row("status", c.Status, strconv.Itoa(c.Count)))
				}
				_, _ = fmt.Fprintf(w, "active goals\t%d\n", o.ActiveGoals)
				for _, p := range o.Goals {
					_, _ = fmt.Fprint(w, row("goal", p.Goal.Name,
						fmt.Sprintf("%.1f%% books", p.BookPercent),
						fmt.Sprintf("%.1f%% pages", p.PagePercent),
						strconv.FormatBool(p.Achieved)))
				}
				return nil
			})
		},
	}
}

func printGoals(w io.Writer, goals []goaldto.GoalOutput) error {
	if len(goals) == 0 {
		_, err := fmt.Fprintln(w, "no goals")
		return err
	}
	for _, g := range goals {
		line := row(strconv.FormatInt(g.ID, 10), g.Name, g.StartDate.Format(dateLayout), g.Deadline.Format(dateLayout), g.Targets)
		if _, err := fmt.Fprint(w, line); err != nil {
			return err
		}
	}
	return nil
}
