package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/Astemirdum/library-view/view/internal/service/paging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func parseStatus(s string) (model.BorrowingStatus, error) {
	status := model.BorrowingStatus(s)
	switch status {
	case "", model.StatusBorrowed, model.StatusReturned, model.StatusOverdue:
		return status, nil
	}
	return "", errors.Errorf("invalid status %q, want borrowed, returned or overdue", s)
}

func (c *cli) newBorrowingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "borrowings",
		Short: "Manage borrowings",
	}
	cmd.AddCommand(
		c.newBorrowingsListCmd(),
		c.newBorrowingsGetCmd(),
		c.newBorrowingsCreateCmd(),
		c.newBorrowingsReturnCmd(),
		c.newBorrowingsUpdateCmd(),
		c.newBorrowingsDeleteCmd(),
	)
	return cmd
}

func (c *cli) newBorrowingsListCmd() *cobra.Command {
	var (
		f      listFlags
		status string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List borrowings (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseStatus(status)
			if err != nil {
				return err
			}
			a, _, err := c.requireAdmin()
			if err != nil {
				return fail(err, "")
			}
			f.search = string(st)
			state, err := loadPage(cmd, borrowingsByStatus(a.Client.ListBorrowings), c.cfg.ItemsPerPage, f)
			if err != nil {
				return fail(err, "Failed to load borrowings")
			}
			if err := c.render(state, borrowingTable(state.Items)); err != nil {
				return err
			}
			c.pagerNote(state.Pager)
			return nil
		},
	}
	f.register(cmd.Flags(), "")
	cmd.Flags().StringVar(&status, "status", "", "borrowed, returned or overdue")
	return cmd
}

func (c *cli) newBorrowingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one borrowing (admin)",
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
			b, err := a.Client.GetBorrowing(cmd.Context(), id)
			if err != nil {
				return fail(err, "Failed to load borrowing")
			}
			return c.render(b, borrowingTable([]model.Borrowing{b}))
		},
	}
}

func (c *cli) newBorrowingsCreateCmd() *cobra.Command {
	var (
		bookID, memberID int
		due              string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Lend a book to a member (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := c.requireAdmin()
			if err != nil {
				return fail(err, "")
			}
			req := model.BorrowingRequest{BookID: bookID, DueDate: model.DefaultDueDate(time.Now())}
			if memberID > 0 {
				req.MemberID = &memberID
			}
			if due != "" {
				if req.DueDate, err = parseDate(due); err != nil {
					return err
				}
			}
			b, err := a.Client.CreateBorrowing(cmd.Context(), req)
			if err != nil {
				return fail(err, "Failed to create borrowing")
			}
			c.note("Borrowing created")
			return c.render(b, borrowingTable([]model.Borrowing{b}))
		},
	}
	cmd.Flags().IntVar(&bookID, "book", 0, "book id")
	cmd.Flags().IntVar(&memberID, "member", 0, "member id")
	cmd.Flags().StringVar(&due, "due", "", "due date YYYY-MM-DD, 30 days from today by default")
	_ = cmd.MarkFlagRequired("book")
	_ = cmd.MarkFlagRequired("member")
	return cmd
}

func (c *cli) newBorrowingsReturnCmd() *cobra.Command {
	var fine float64
	cmd := &cobra.Command{
		Use:   "return ID",
		Short: "Return a borrowed book",
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
			b, err := a.Client.ReturnBook(cmd.Context(), id, fine)
			if err != nil {
				return fail(err, "Failed to return book")
			}
			c.note("Book returned")
			return c.render(b, borrowingTable([]model.Borrowing{b}))
		},
	}
	cmd.Flags().Float64Var(&fine, "fine", 0, "fine amount")
	return cmd
}

func (c *cli) newBorrowingsUpdateCmd() *cobra.Command {
	var (
		status, returned string
		fine             float64
	)
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Correct a borrowing record (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			var upd model.BorrowingUpdate
			flags := cmd.Flags()
			if flags.Changed("status") {
				st, err := parseStatus(status)
				if err != nil {
					return err
				}
				upd.Status = &st
			}
			if flags.Changed("returned") {
				d, err := parseDate(returned)
				if err != nil {
					return err
				}
				upd.ReturnDate = &d
			}
			if flags.Changed("fine") {
				upd.FineAmount = &fine
			}
			a, _, err := c.requireAdmin()
			if err != nil {
				return fail(err, "")
			}
			b, err := a.Client.UpdateBorrowing(cmd.Context(), id, upd)
			if err != nil {
				return fail(err, "Failed to update borrowing")
			}
			return c.render(b, borrowingTable([]model.Borrowing{b}))
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "borrowed, returned or overdue")
	cmd.Flags().StringVar(&returned, "returned", "", "return date YYYY-MM-DD")
	cmd.Flags().Float64Var(&fine, "fine", 0, "fine amount")
	return cmd
}

func (c *cli) newBorrowingsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a borrowing record (admin)",
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
			if err := a.Client.DeleteBorrowing(cmd.Context(), id); err != nil {
				return fail(err, "Failed to delete borrowing")
			}
			_, err = fmt.Fprintf(c.out, "Borrowing %d deleted\n", id)
			return err
		},
	}
}

type listBorrowingsFunc func(ctx context.Context, status model.BorrowingStatus, q model.Query) (model.Page[model.Borrowing], error)

// borrowingsByStatus pages borrowings with the status filter as the search term.
func borrowingsByStatus(list listBorrowingsFunc) paging.FetchFunc[model.Borrowing] {
	return func(ctx context.Context, q model.Query) (model.Page[model.Borrowing], error) {
		return list(ctx, model.BorrowingStatus(q.Search), q)
	}
}
