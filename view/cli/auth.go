package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/Astemirdum/library-view/view/app"
	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/Astemirdum/library-view/view/internal/service/session"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword prompts without echo when stdin is a terminal.
func (c *cli) readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no terminal to read the password from, use --password")
	}
	fmt.Fprint(c.errOut, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(c.errOut)
	if err != nil {
		return "", errors.Wrap(err, "read password")
	}
	return strings.TrimSpace(string(b)), nil
}

func (c *cli) newServeCmd() *cobra.Command {
	var host, port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the view server",
		Example: `  # serve on the default address
  library-view serve

  # serve on all interfaces
  library-view serve --host 0.0.0.0 --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if host != "" {
				cfg.Server.Host = host
			}
			if port != "" {
				cfg.Server.Port = port
			}
			return app.Run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "listen host, overrides VIEW_HTTP_HOST")
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port, overrides VIEW_HTTP_PORT")
	return cmd
}

type loginResult struct {
	Role    model.Role `json:"role"`
	UserID  int        `json:"user_id"`
	Landing string     `json:"landing"`
}

func (c *cli) printLogin(sess session.Session) error {
	res := loginResult{Role: sess.User.Role, UserID: sess.User.UserID, Landing: session.Landing(sess.User.Role)}
	if c.output == formatTable {
		_, err := fmt.Fprintf(c.out, "Logged in as %s (user %d)\n", res.Role, res.UserID)
		return err
	}
	return c.render(res, nil)
}

func (c *cli) newLoginCmd() *cobra.Command {
	var cred model.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.services()
			if err != nil {
				return err
			}
			if cred.Password == "" {
				if cred.Password, err = c.readPassword("Password: "); err != nil {
					return err
				}
			}
			sess, err := a.Sessions.Login(cmd.Context(), cred)
			if err != nil {
				return fail(err, "Login failed. Please check your credentials.")
			}
			return c.printLogin(sess)
		},
	}
	cmd.Flags().StringVarP(&cred.Email, "email", "e", "", "account email")
	cmd.Flags().StringVar(&cred.Password, "password", "", "password, prompted for when omitted")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) newSignupCmd() *cobra.Command {
	var (
		req         model.SignupRequest
		phone, addr string
	)
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a member account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.services()
			if err != nil {
				return err
			}
			if req.Password == "" {
				if req.Password, err = c.readPassword("Password: "); err != nil {
					return err
				}
			}
			if phone != "" {
				req.Phone = &phone
			}
			if addr != "" {
				req.Address = &addr
			}
			sess, err := a.Sessions.Signup(cmd.Context(), req)
			if err != nil {
				return fail(err, "Signup failed. Please try again.")
			}
			return c.printLogin(sess)
		},
	}
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "full name")
	cmd.Flags().StringVar(&req.Password, "password", "", "password, prompted for when omitted")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&addr, "address", "", "postal address")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (c *cli) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.services()
			if err != nil {
				return err
			}
			if err := a.Sessions.Logout(); err != nil {
				return fail(err, "Failed to log out")
			}
			_, err = fmt.Fprintln(c.out, "Logged out")
			return err
		},
	}
}

type whoami struct {
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	Role   model.Role    `json:"role"`
	UserID int           `json:"user_id"`
	Tabs   []session.Tab `json:"tabs"`
}

func (c *cli) newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, sess, err := c.requireSession()
			if err != nil {
				return fail(err, "")
			}
			p, err := a.Profiles.Get(cmd.Context(), false)
			if err != nil {
				return fail(err, "Failed to load profile")
			}
			w := whoami{Email: p.User.Email, Role: sess.User.Role, UserID: sess.User.UserID, Tabs: session.Tabs(sess, true)}
			if p.Member != nil {
				w.Name = p.Member.Name
			}
			return c.render(w, func() *table.Table {
				return newTable("Name", "Email", "Role", "User").Row(w.Name, w.Email, string(w.Role), itoa(w.UserID))
			})
		},
	}
}
