package cli

import (
	"fmt"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func (c *cli) newMembersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage members (admin)",
	}
	cmd.AddCommand(
		c.newMembersListCmd(),
		c.newMembersGetCmd(),
		c.newMembersCreateCmd(),
		c.newMembersUpdateCmd(),
		c.newMembersDeleteCmd(),
		c.newMembersUserCmd(),
		c.newMembersBorrowingsCmd(),
	)
	return cmd
}

func (c *cli) newMembersListCmd() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := c.requireAdmin()
			if err != nil {
				return fail(err, "")
			}
			state, err := loadPage(cmd, a.Client.ListMembers, c.cfg.ItemsPerPage, f)
			if err != nil {
				return fail(err, "Failed to load members")
			}
			if err := c.render(state, memberTable(state.Items)); err != nil {
				return err
			}
			c.pagerNote(state.Pager)
			return nil
		},
	}
	f.register(cmd.Flags(), "name or email")
	return cmd
}

func (c *cli) newMembersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one member",
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
			m, err := a.Client.GetMember(cmd.Context(), id)
			if err != nil {
				return fail(err, "Failed to load member")
			}
			return c.render(m, memberTable([]model.Member{m}))
		},
	}
}

type memberFlags struct {
	name, email, phone, address, picture string
	role, password                       string
	account                              bool
}

func (f *memberFlags) register(flags *pflag.FlagSet, accountUsage string) {
	flags.StringVar(&f.name, "name", "", "full name")
	flags.StringVar(&f.email, "email", "", "email")
	flags.StringVar(&f.phone, "phone", "", "phone number")
	flags.StringVar(&f.address, "address", "", "postal address")
	flags.StringVar(&f.picture, "picture", "", "profile picture URL")
	flags.StringVar(&f.role, "role", "", "login role: admin or member")
	flags.StringVar(&f.password, "password", "", "login password")
	flags.BoolVar(&f.account, "account", false, accountUsage)
}

func (f *memberFlags) apply(flags *pflag.FlagSet, req *model.MemberRequest) {
	set := func(name string, dst **string, v string) {
		if flags.Changed(name) {
			*dst = &v
		}
	}
	if flags.Changed("name") {
		req.Name = f.name
	}
	if flags.Changed("email") {
		req.Email = f.email
	}
	set("phone", &req.Phone, f.phone)
	set("address", &req.Address, f.address)
	set("picture", &req.ProfilePicture, f.picture)
	set("password", &req.Password, f.password)
	if flags.Changed("role") {
		role := model.Role(f.role)
		req.Role = &role
	}
}

func (c *cli) newMembersCreateCmd() *cobra.Command {
	var f memberFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a member, optionally with a login account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := c.requireAdmin()
			if err != nil {
				return fail(err, "")
			}
			var req model.MemberRequest
			f.apply(cmd.Flags(), &req)
			req.CreateUserAccount = f.account
			m, err := a.Client.CreateMember(cmd.Context(), req)
			if err != nil {
				return fail(err, "Failed to create member")
			}
			c.note("Member created")
			return c.render(m, memberTable([]model.Member{m}))
		},
	}
	f.register(cmd.Flags(), "also create a login account")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) newMembersUpdateCmd() *cobra.Command {
	var f memberFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a member; omitted flags keep their value",
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
			cur, err := a.Client.GetMember(cmd.Context(), id)
			if err != nil {
				return fail(err, "Failed to load member")
			}
			req := model.MemberRequest{
				Name:           cur.Name,
				Email:          cur.Email,
				Phone:          cur.Phone,
				Address:        cur.Address,
				ProfilePicture: cur.ProfilePicture,
			}
			f.apply(cmd.Flags(), &req)
			req.UpdateUserAccount = f.account
			m, err := a.Client.UpdateMember(cmd.Context(), id, req)
			if err != nil {
				return fail(err, "Failed to update member")
			}
			c.note("Member updated")
			return c.render(m, memberTable([]model.Member{m}))
		},
	}
	f.register(cmd.Flags(), "also update the login account")
	return cmd
}

func (c *cli) newMembersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a member",
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
			if err := a.Client.DeleteMember(cmd.Context(), id); err != nil {
				return fail(err, "Failed to delete member")
			}
			_, err = fmt.Fprintf(c.out, "Member %d deleted\n", id)
			return err
		},
	}
}

func (c *cli) newMembersUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user ID",
		Short: "Show the login account of a member",
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
			u, err := a.Client.GetMemberUser(cmd.Context(), id)
			if err != nil {
				return fail(err, "Failed to load account")
			}
			return c.render(u, func() *table.Table {
				active := "no"
				if u.IsActive {
					active = "yes"
				}
				return newTable("ID", "Email", "Role", "Active").Row(itoa(u.ID), u.Email, string(u.Role), active)
			})
		},
	}
}

func (c *cli) newMembersBorrowingsCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "borrowings ID",
		Short: "List the borrowings of a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			st, err := parseStatus(status)
			if err != nil {
				return err
			}
			a, _, err := c.requireAdmin()
			if err != nil {
				return fail(err, "")
			}
			bs, err := a.Client.ListMemberBorrowings(cmd.Context(), id, st)
			if err != nil {
				return fail(err, "Failed to load borrowings")
			}
			return c.render(bs, borrowingTable(bs))
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "borrowed, returned or overdue")
	return cmd
}
