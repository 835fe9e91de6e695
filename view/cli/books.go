package cli

import (
	"fmt"
	"time"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/Astemirdum/library-view/view/internal/service/paging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func (c *cli) newBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse and manage the catalogue",
	}
	cmd.AddCommand(
		c.newBooksListCmd(),
		c.newBooksGetCmd(),
		c.newBooksCreateCmd(),
		c.newBooksUpdateCmd(),
		c.newBooksDeleteCmd(),
		c.newBooksBorrowCmd(),
	)
	return cmd
}

type listFlags struct {
	page   int
	search string
}

func (f *listFlags) register(flags *pflag.FlagSet, searchUsage string) {
	flags.IntVar(&f.page, "page", 1, "page number")
	if searchUsage != "" {
		flags.StringVarP(&f.search, "search", "s", "", searchUsage)
	}
}

// loadPage runs one paged list load the way the view server does.
func loadPage[T any](cmd *cobra.Command, fetch paging.FetchFunc[T], itemsPerPage int, f listFlags) (paging.State[T], error) {
	ctrl := paging.NewController(fetch, itemsPerPage)
	ctrl.SetSearch(f.search)
	ctrl.SetPage(f.page)
	state, _ := ctrl.Load(cmd.Context())
	return state, state.Err
}

func (c *cli) newBooksListCmd() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := c.requireSession()
			if err != nil {
				return fail(err, "")
			}
			state, err := loadPage(cmd, a.Client.ListBooks, c.cfg.ItemsPerPage, f)
			if err != nil {
				return fail(err, "Failed to load books")
			}
			if err := c.render(state, bookTable(state.Items)); err != nil {
				return err
			}
			c.pagerNote(state.Pager)
			return nil
		},
	}
	f.register(cmd.Flags(), "title, author or ISBN")
	return cmd
}

func (c *cli) newBooksGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			a, _, err := c.requireSession()
			if err != nil {
				return fail(err, "")
			}
			b, err := a.Client.GetBook(cmd.Context(), id)
			if err != nil {
				return fail(err, "Failed to load book")
			}
			return c.render(b, bookTable([]model.Book{b}))
		},
	}
}

type bookFlags struct {
	title, author, isbn string
	year                int
	total, available    int
}

func (f *bookFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.title, "title", "", "title")
	flags.StringVar(&f.author, "author", "", "author")
	flags.StringVar(&f.isbn, "isbn", "", "ISBN")
	flags.IntVar(&f.year, "year", 0, "year of publication")
	flags.IntVar(&f.total, "total", 1, "total copies")
	flags.IntVar(&f.available, "available", 1, "available copies")
}

// apply overlays the flags that were set on req.
func (f *bookFlags) apply(flags *pflag.FlagSet, req *model.BookRequest) {
	if flags.Changed("title") {
		req.Title = f.title
	}
	if flags.Changed("author") {
		req.Author = f.author
	}
	if flags.Changed("isbn") {
		req.ISBN = &f.isbn
	}
	if flags.Changed("year") {
		req.PublishedYear = &f.year
	}
	if flags.Changed("total") {
		req.TotalCopies = f.total
	}
	if flags.Changed("available") {
		req.AvailableCopies = f.available
	}
}

func (c *cli) newBooksCreateCmd() *cobra.Command {
	var f bookFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a book",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := c.requireAdmin()
			if err != nil {
				return fail(err, "")
			}
			req := model.NewBookRequest()
			f.apply(cmd.Flags(), &req)
			b, err := a.Client.CreateBook(cmd.Context(), req)
			if err != nil {
				return fail(err, "Failed to create book")
			}
			c.note("Book created")
			return c.render(b, bookTable([]model.Book{b}))
		},
	}
	f.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("author")
	return cmd
}

func (c *cli) newBooksUpdateCmd() *cobra.Command {
	var f bookFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a book; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			a, _, err := c.requireAdmin()
			if err != nil {
				return fail(err, "")
			}
			cur, err := a.Client.GetBook(cmd.Context(), id)
			if err != nil {
				return fail(err, "Failed to load book")
			}
			req := model.BookRequest{
				Title:           cur.Title,
				Author:          cur.Author,
				ISBN:            cur.ISBN,
				PublishedYear:   cur.PublishedYear,
				TotalCopies:     cur.TotalCopies,
				AvailableCopies: cur.AvailableCopies,
			}
			f.apply(cmd.Flags(), &req)
			b, err := a.Client.UpdateBook(cmd.Context(), id, req)
			if err != nil {
				return fail(err, "Failed to update book")
			}
			c.note("Book updated")
			return c.render(b, bookTable([]model.Book{b}))
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func (c *cli) newBooksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			a, _, err := c.requireAdmin()
			if err != nil {
				return fail(err, "")
			}
			if err := a.Client.DeleteBook(cmd.Context(), id); err != nil {
				return fail(err, "Failed to delete book")
			}
			_, err = fmt.Fprintf(c.out, "Book %d deleted\n", id)
			return err
		},
	}
}

func parseDate(s string) (model.Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return model.Date{}, errors.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return model.NewDate(t), nil
}

func (c *cli) newBooksBorrowCmd() *cobra.Command {
	var due string
	cmd := &cobra.Command{
		Use:   "borrow ID",
		Short: "Borrow a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			a, _, err := c.requireSession()
			if err != nil {
				return fail(err, "")
			}
			req := model.BorrowingRequest{BookID: id, DueDate: model.DefaultDueDate(time.Now())}
			if due != "" {
				if req.DueDate, err = parseDate(due); err != nil {
					return err
				}
			}
			b, err := a.Client.CreateBorrowing(cmd.Context(), req)
			if err != nil {
				return fail(err, "Failed to borrow book")
			}
			c.note("Borrowed, due %s", date(b.DueDate))
			return c.render(b, borrowingTable([]model.Borrowing{b}))
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "due date YYYY-MM-DD, 30 days from today by default")
	return cmd
}
