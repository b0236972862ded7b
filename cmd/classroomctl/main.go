// Command classroomctl is the terminal front end for a classpoints server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yigit/classpoints/internal/client"
	"github.com/yigit/classpoints/internal/pkg/logger"
	"github.com/yigit/classpoints/internal/presentation"
)

// AdminPasswordEnv supplies the admin passphrase when --admin-pw is not given
const AdminPasswordEnv = "CLASSROOM_ADMIN_PW"

// app holds the flag values and collaborators shared by all commands
type app struct {
	server      string
	sessionPath string
	adminPw     string
	timeout     time.Duration
	verbose     bool

	session *client.Session
	api     *client.Client
	styles  presentation.Styles
	log     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{styles: presentation.DefaultStyles()}

	root := &cobra.Command{
		Use:   "classroomctl",
		Short: "Classroom attendance, points and shop from the terminal",
		Long: `classroomctl talks to a classpoints server.

Students check in from their seat, browse the shop and buy desk skins
and titles. Admin commands need the shared passphrase, given with
--admin-pw or the ` + AdminPasswordEnv + ` environment variable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.server, "server", "s", "", "API base URL (default: session server or "+client.DefaultBaseURL+")")
	root.PersistentFlags().StringVar(&a.sessionPath, "session", client.DefaultSessionPath(), "Session file path")
	root.PersistentFlags().StringVar(&a.adminPw, "admin-pw", "", "Admin passphrase (or set "+AdminPasswordEnv+")")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 15*time.Second, "Request timeout")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.seatingCmd(),
		a.attendCmd(),
		a.todayCmd(),
		a.historyCmd(),
		a.shopCmd(),
		a.buyCmd(),
		a.purchasesCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.meCmd(),
		a.adminCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	level := "warn"
	if a.verbose {
		level = "debug"
	}
	a.log = logger.Configure(logger.Config{Level: level, Pretty: true, Output: cmd.ErrOrStderr()})

	session, err := client.LoadSession(a.sessionPath)
	if err != nil {
		return err
	}
	a.session = session

	server := a.server
	if server == "" {
		server = session.Server
	}
	a.api = client.New(server, client.WithToken(session.Token))
	a.log.Debug().Str("server", a.api.BaseURL()).Bool("loggedIn", session.LoggedIn()).Msg("Client ready")
	return nil
}

func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.timeout)
}

// adminPassword returns the passphrase from the flag or the environment
func (a *app) adminPassword() (string, error) {
	if a.adminPw != "" {
		return a.adminPw, nil
	}
	if pw := os.Getenv(AdminPasswordEnv); pw != "" {
		return pw, nil
	}
	return "", fmt.Errorf("admin passphrase required: pass --admin-pw or set %s", AdminPasswordEnv)
}

// requireSession returns the logged-in session or an error telling the user to log in
func (a *app) requireSession() (*client.Session, error) {
	if !a.session.LoggedIn() {
		return nil, fmt.Errorf("not logged in: run 'classroomctl login <name> <password>'")
	}
	return a.session, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, presentation.Result(presentation.DefaultStyles(), false, err.Error()))
		os.Exit(1)
	}
}
