package cli

import (
	"fmt"
	"time"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func (c *cli) newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Library stats and the newest books (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := c.requireAdmin()
			if err != nil {
				return fail(err, "")
			}
			d, err := a.Client.Dashboard(cmd.Context())
			if err != nil {
				return fail(err, "Failed to load dashboard")
			}
			if c.output != formatTable {
				return c.render(d, nil)
			}
			if err := c.render(d.Stats, statsTable(d.Stats)); err != nil {
				return err
			}
			c.note("Newest books")
			return c.render(d.NewBooks, bookTable(d.NewBooks))
		},
	}
}

type myDashboard struct {
	Loans      []model.Loan `json:"loans"`
	PendingDue []model.Loan `json:"pending_due"`
}

func (c *cli) newMyDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "my-dashboard",
		Short: "Your borrowings and what is due soon",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := c.requireSession()
			if err != nil {
				return fail(err, "")
			}
			bs, err := a.Client.UserDashboard(cmd.Context())
			if err != nil {
				return fail(err, "Failed to load your borrowings")
			}
			loans := model.NewLoans(bs, time.Now())
			d := myDashboard{Loans: loans, PendingDue: model.PendingDue(loans)}
			if c.output != formatTable {
				return c.render(d, nil)
			}
			if err := c.render(d.Loans, loanTable(d.Loans)); err != nil {
				return err
			}
			c.note("%d due within %d days", len(d.PendingDue), model.PendingDueDays)
			return nil
		},
	}
}

func (c *cli) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Public library stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.services()
			if err != nil {
				return err
			}
			s, err := a.Client.Stats(cmd.Context())
			if err != nil {
				return fail(err, "Failed to load stats")
			}
			return c.render(s, statsTable(s))
		},
	}
}

func (c *cli) newSubscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe EMAIL",
		Short: "Subscribe to the newsletter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.services()
			if err != nil {
				return err
			}
			if _, err := a.Client.Subscribe(cmd.Context(), args[0]); err != nil {
				return fail(err, "Failed to subscribe")
			}
			_, err = fmt.Fprintf(c.out, "Subscribed %s\n", args[0])
			return err
		},
	}
}

func (c *cli) newSubscriptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subscriptions",
		Short: "List newsletter subscriptions (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := c.requireAdmin()
			if err != nil {
				return fail(err, "")
			}
			subs, err := a.Client.ListSubscriptions(cmd.Context())
			if err != nil {
				return fail(err, "Failed to load subscriptions")
			}
			return c.render(subs, func() *table.Table {
				t := newTable("ID", "Email")
				for _, s := range subs {
					t.Row(itoa(s.ID), s.Email)
				}
				return t
			})
		},
	}
}

func (c *cli) newTestimonialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testimonials",
		Short: "Reader testimonials",
	}
	cmd.AddCommand(c.newTestimonialsListCmd(), c.newTestimonialsCreateCmd(), c.newTestimonialsDeleteCmd())
	return cmd
}

func testimonialTable(ts []model.Testimonial) func() *table.Table {
	return func() *table.Table {
		t := newTable("ID", "Reader", "Rating", "Comment")
		for _, tm := range ts {
			t.Row(itoa(tm.ID), tm.ReaderName, fmt.Sprintf("%d/5", tm.Rating), tm.Comment)
		}
		return t
	}
}

func (c *cli) newTestimonialsListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List testimonials",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.services()
			if err != nil {
				return err
			}
			ts, err := a.Client.ListTestimonials(cmd.Context(), model.Query{Limit: limit})
			if err != nil {
				return fail(err, "Failed to load testimonials")
			}
			return c.render(ts, testimonialTable(ts))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "how many")
	return cmd
}

func (c *cli) newTestimonialsCreateCmd() *cobra.Command {
	var (
		req    model.TestimonialRequest
		bookID int
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Leave a testimonial",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.services()
			if err != nil {
				return err
			}
			if bookID > 0 {
				req.BookID = &bookID
			}
			t, err := a.Client.CreateTestimonial(cmd.Context(), req)
			if err != nil {
				return fail(err, "Failed to submit testimonial")
			}
			return c.render(t, testimonialTable([]model.Testimonial{t}))
		},
	}
	cmd.Flags().StringVar(&req.ReaderName, "name", "", "your name")
	cmd.Flags().IntVar(&req.Rating, "rating", 5, "rating from 1 to 5")
	cmd.Flags().StringVar(&req.Comment, "comment", "", "what you liked")
	cmd.Flags().IntVar(&bookID, "book", 0, "book id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("comment")
	return cmd
}

func (c *cli) newTestimonialsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a testimonial (admin)",
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
			if err := a.Client.DeleteTestimonial(cmd.Context(), id); err != nil {
				return fail(err, "Failed to delete testimonial")
			}
			_, err = fmt.Fprintf(c.out, "Testimonial %d deleted\n", id)
			return err
		},
	}
}
