package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"readinglist/internal/bootstrap"
	catalogdto "readinglist/internal/modules/catalog/dto"
)

func newBookCmd(opts *rootOptions) *cobra.Command {
	book := &cobra.Command{Use: "book", Short: "Browse and add catalog books"}

	book.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every book by title",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				books, err := app.CatalogCLI.ListBooks(ctx)
				if err != nil {
					return err
				}
				return printBooks(cmd.OutOrStdout(), books)
			})
		},
	})

	book.AddCommand(&cobra.Command{
		Use:   "search <term>",
		Short: "Search titles, ISBNs and author names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				books, err := app.CatalogCLI.SearchBooks(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				return printBooks(cmd.OutOrStdout(), books)
			})
		},
	})

	book.AddCommand(&cobra.Command{
		Use:   "show <isbn>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				b, err := app.CatalogCLI.GetBook(ctx, args[0])
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "%s\n%s\n", b.Title, b.Byline)
				_, _ = fmt.Fprintf(w, "isbn:     %s\n", b.ISBN)
				_, _ = fmt.Fprintf(w, "year:     %s\n", orDash(b.PublicationYear))
				_, _ = fmt.Fprintf(w, "pages:    %s\n", orDash(b.Pages))
				_, _ = fmt.Fprintf(w, "subjects: %s\n", strings.Join(b.Subjects, ", "))
				if b.Description != "" {
					_, _ = fmt.Fprintf(w, "\n%s\n", b.Description)
				}
				return nil
			})
		},
	})

	var (
		title, description string
		year, pages        int
		authors, subjects  []string
	)
	add := &cobra.Command{
		Use:   "add <isbn>",
		Short: "Add a book to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				b, err := app.CatalogCLI.AddBook(ctx, args[0], title,
					optionalInt(cmd, "year", year), optionalInt(cmd, "pages", pages),
					description, authors, subjects)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", b.Title, b.ISBN)
				return nil
			})
		},
	}
	add.Flags().StringVar(&title, "title", "", "book title")
	add.Flags().StringVar(&description, "description", "", "short description")
	add.Flags().IntVar(&year, "year", 0, "publication year")
	add.Flags().IntVar(&pages, "pages", 0, "page count")
	add.Flags().StringSliceVar(&authors, "author", nil, "author name (repeatable)")
	add.Flags().StringSliceVar(&subjects, "subject", nil, "subject name (repeatable)")
	_ = add.MarkFlagRequired("title")
	book.AddCommand(add)

	var limit int
	recent := &cobra.Command{
		Use:   "recent",
		Short: "Most recently added books",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				books, err := app.CatalogCLI.RecentlyAdded(ctx, limit)
				if err != nil {
					return err
				}
				return printBooks(cmd.OutOrStdout(), books)
			})
		},
	}
	recent.Flags().IntVar(&limit, "limit", 0, "number of books (default 10)")
	book.AddCommand(recent)

	book.AddCommand(&cobra.Command{
		Use:   "by-subject <subject-id>",
		Short: "Books filed under a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				books, err := app.CatalogCLI.BooksBySubject(ctx, id)
				if err != nil {
					return err
				}
				return printBooks(cmd.OutOrStdout(), books)
			})
		},
	})

	book.AddCommand(&cobra.Command{
		Use:   "by-author <author-id>",
		Short: "Books written by an author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				books, err := app.CatalogCLI.BooksByAuthor(ctx, id)
				if err != nil {
					return err
				}
				return printBooks(cmd.OutOrStdout(), books)
			})
		},
	})

	return book
}

func newAuthorCmd(opts *rootOptions) *cobra.Command {
	author := &cobra.Command{Use: "author", Short: "Author queries"}

	author.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every author",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				authors, err := app.CatalogCLI.ListAuthors(ctx)
				if err != nil {
					return err
				}
				return printNamed(cmd.OutOrStdout(), authors, "no authors")
			})
		},
	})

	author.AddCommand(&cobra.Command{
		Use:   "search <name>",
		Short: "Authors whose name contains the term",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				authors, err := app.CatalogCLI.SearchAuthors(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				return printNamed(cmd.OutOrStdout(), authors, "no authors")
			})
		},
	})

	var limit int
	mostRead := &cobra.Command{
		Use:   "most-read",
		Short: "Authors with the most completed books",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				tallies, err := app.CatalogCLI.MostReadAuthors(ctx, limit)
				if err != nil {
					return err
				}
				return printTallies(cmd.OutOrStdout(), tallies)
			})
		},
	}
	mostRead.Flags().IntVar(&limit, "limit", 0, "number of authors (default 10)")
	author.AddCommand(mostRead)
	return author
}

func newSubjectCmd(opts *rootOptions) *cobra.Command {
	subject := &cobra.Command{Use: "subject", Short: "Subject queries"}

	subject.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every subject",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				subjects, err := app.CatalogCLI.ListSubjects(ctx)
				if err != nil {
					return err
				}
				named := make([]catalogdto.AuthorOutput, len(subjects))
				for i, s := range subjects {
					named[i] = catalogdto.AuthorOutput(s)
				}
				return printNamed(cmd.OutOrStdout(), named, "no subjects")
			})
		},
	})

	subject.AddCommand(&cobra.Command{
		Use:   "counts",
		Short: "Number of catalog books per subject",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				tallies, err := app.CatalogCLI.SubjectBookCounts(ctx)
				if err != nil {
					return err
				}
				return printTallies(cmd.OutOrStdout(), tallies)
			})
		},
	})

	var limit int
	top := &cobra.Command{
		Use:   "top",
		Short: "Subjects that appear most on your reading list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(func(ctx context.Context, app *bootstrap.App) error {
				tallies, err := app.CatalogCLI.MyTopSubjects(ctx, limit)
				if err != nil {
					return err
				}
				return printTallies(cmd.OutOrStdout(), tallies)
			})
		},
	}
	top.Flags().IntVar(&limit, "limit", 0, "number of subjects (default 5)")
	subject.AddCommand(top)
	return subject
}

func printBooks(w io.Writer, books []catalogdto.BookOutput) error {
	if len(books) == 0 {
		_, err := fmt.Fprintln(w, "no books")
		return err
	}
	for _, b := range books {
		if _, err := fmt.Fprint(w, row(b.ISBN, b.Title, b.Byline, orDash(b.PublicationYear), orDash(b.Pages))); err != nil {
			return err
		}
	}
	return nil
}

func printNamed(w io.Writer, items []catalogdto.AuthorOutput, empty string) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, empty)
		return err
	}
	for _, it := range items {
		if _, err := fmt.Fprint(w, row(strconv.FormatInt(it.ID, 10), it.Name)); err != nil {
			return err
		}
	}
	return nil
}

func printTallies(w io.Writer, tallies []catalogdto.TallyOutput) error {
	if len(tallies) == 0 {
		_, err := fmt.Fprintln(w, "nothing yet")
		return err
	}
	for _, t := range tallies {
		if _, err := fmt.Fprint(w, row(strconv.FormatInt(t.ID, 10), t.Name, strconv.Itoa(t.Count))); err != nil {
			return err
		}
	}
	return nil
}
