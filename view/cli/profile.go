package cli

import (
	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/Astemirdum/library-view/view/internal/service/profile"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func (c *cli) newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
	}
	cmd.AddCommand(c.newProfileShowCmd(), c.newProfileUpdateCmd())
	return cmd
}

func (c *cli) renderProfile(p model.Profile) error {
	return c.render(p, func() *table.Table {
		f := profile.FormOf(p)
		return newTable("Name", "Email", "Phone", "Role", "Member").
			Row(f.Name, f.Email, f.Phone, string(p.User.Role), opt(p.User.MemberID, itoa))
	})
}

func (c *cli) newProfileShowCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := c.requireSession()
			if err != nil {
				return fail(err, "")
			}
			p, err := a.Profiles.Get(cmd.Context(), refresh)
			if err != nil {
				return fail(err, "Failed to load profile")
			}
			return c.renderProfile(p)
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the profile cache")
	return cmd
}

func (c *cli) newProfileUpdateCmd() *cobra.Command {
	var edit profile.Form
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edit your profile; omitted flags keep their value",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := c.requireSession()
			if err != nil {
				return fail(err, "")
			}
			ctx := cmd.Context()
			current, err := a.Profiles.Get(ctx, false)
			if err != nil {
				return fail(err, "Failed to load profile")
			}
			form := profile.FormOf(current)
			flags := cmd.Flags()
			if flags.Changed("name") {
				form.Name = edit.Name
			}
			if flags.Changed("email") {
				form.Email = edit.Email
			}
			if flags.Changed("phone") {
				form.Phone = edit.Phone
			}
			if flags.Changed("picture") {
				form.ProfilePicture = edit.ProfilePicture
			}
			if flags.Changed("password") {
				form.Password, form.ConfirmPassword = edit.Password, edit.ConfirmPassword
				if !flags.Changed("confirm-password") {
					if form.ConfirmPassword, err = c.readPassword("Confirm password: "); err != nil {
						return err
					}
				}
			}
			upd, err := form.Update(current.Member != nil)
			if err != nil {
				return fail(err, "Failed to update profile")
			}
			if _, err := a.Profiles.Update(ctx, upd); err != nil {
				return fail(err, "Failed to update profile")
			}
			p, err := a.Profiles.Get(ctx, true)
			if err != nil {
				return fail(err, "Failed to load profile")
			}
			c.note("Profile updated")
			return c.renderProfile(p)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&edit.Name, "name", "", "full name")
	flags.StringVar(&edit.Email, "email", "", "email")
	flags.StringVar(&edit.Phone, "phone", "", "phone number")
	flags.StringVar(&edit.ProfilePicture, "picture", "", "profile picture URL")
	flags.StringVar(&edit.Password, "password", "", "new password")
	flags.StringVar(&edit.ConfirmPassword, "confirm-password", "", "new password again, prompted for when omitted")
	return cmd
}
