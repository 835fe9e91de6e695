// Package cli is the terminal front end of the library client. It drives the
// same session store, profile cache and backend client as the view server.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Astemirdum/library-view/pkg/logger"
	"github.com/Astemirdum/library-view/view/app"
	"github.com/Astemirdum/library-view/view/config"
	"github.com/Astemirdum/library-view/view/internal/errs"
	"github.com/Astemirdum/library-view/view/internal/service/session"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

type cli struct {
	out    io.Writer
	errOut io.Writer

	output      string
	baseURL     string
	sessionFile string
	verbose     bool

	cfg config.Config
	app *app.App
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(os.Stdout, os.Stderr)
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}
	cmd := &cobra.Command{
		Use:   "library-view",
		Short: "Neighborhood library client",
		Long: `library-view talks to the library backend on behalf of one user.

The session is kept in a local file shared by every library-view process,
so logging in from the CLI also logs in the view server and vice versa.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.app != nil {
				c.app.Close()
			}
		},
	}
	cmd.SetOut(c.out)
	cmd.SetErr(c.errOut)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&c.output, "output", "o", formatTable, "output format: table, json or yaml")
	flags.StringVar(&c.baseURL, "api", "", "backend base URL, overrides API_BASE_URL")
	flags.StringVar(&c.sessionFile, "session-file", "", "session file, overrides SESSION_FILE")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		c.newServeCmd(),
		c.newLoginCmd(),
		c.newSignupCmd(),
		c.newLogoutCmd(),
		c.newWhoamiCmd(),
		c.newProfileCmd(),
		c.newBooksCmd(),
		c.newMembersCmd(),
		c.newBorrowingsCmd(),
		c.newDashboardCmd(),
		c.newMyDashboardCmd(),
		c.newStatsCmd(),
		c.newSubscribeCmd(),
		c.newSubscriptionsCmd(),
		c.newTestimonialsCmd(),
	)
	return cmd
}

func (c *cli) setup() error {
	switch c.output {
	case formatTable, formatJSON, formatYAML:
	default:
		return errors.Errorf("unknown output format %q", c.output)
	}
	ops := []config.Option{
		config.WithBaseURL(c.baseURL),
		config.WithSessionFile(c.sessionFile),
	}
	if c.verbose {
		ops = append(ops, config.WithLogLevel(zapcore.DebugLevel))
	}
	cfg, err := config.Load(ops...)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// services builds the client stack on first use; serve builds its own.
func (c *cli) services() (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	// commands stay quiet below warn unless asked; serve logs at LOG_LEVEL
	logCfg := c.cfg.Log
	if !c.verbose {
		logCfg.LogLevel = max(logCfg.LogLevel, zapcore.WarnLevel)
	}
	log := logger.NewLogger(logCfg, "cli")
	a, err := app.New(c.cfg, log, &navigator{out: c.errOut})
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

// requireSession applies the route guard to a command.
func (c *cli) requireSession() (*app.App, session.Session, error) {
	a, err := c.services()
	if err != nil {
		return nil, session.Session{}, err
	}
	sess, ok := a.Sessions.Current()
	if !ok {
		return nil, session.Session{}, errs.ErrNoSession
	}
	return a, sess, nil
}

func (c *cli) requireAdmin() (*app.App, session.Session, error) {
	a, sess, err := c.requireSession()
	if err != nil {
		return nil, session.Session{}, err
	}
	if !sess.IsAdmin() {
		return nil, session.Session{}, errs.ErrForbidden
	}
	return a, sess, nil
}

// fail turns err into the message shown to the user.
func fail(err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		return errors.New("session expired, please log in again")
	case errors.Is(err, errs.ErrNoSession):
		return errors.New(errs.Message(err, fallback))
	case errors.Is(err, errs.ErrForbidden):
		return errors.New("admin access required")
	case errors.Is(err, context.Canceled):
		return err
	}
	return errors.New(errs.Message(err, fallback))
}

func idArg(args []string) (int, error) {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

// navigator reports navigation a teardown asks for.
type navigator struct {
	out io.Writer
}

func (n *navigator) Navigate(path string) {
	if path == "/login" {
		fmt.Fprintln(n.out, "Your session has ended. Run `library-view login` to continue.")
	}
}
