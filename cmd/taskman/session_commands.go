package main

import (
	"fmt"

	"github.com/Harshpandey2165/taskmanager--v1/session"
	"github.com/spf13/cobra"
)

// login
var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Log in to the task-manager server",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogin,
}

// logout
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

// register
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

var (
	registerName  string
	registerEmail string
)

// whoami
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

// status
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the stored session is still valid",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, whoamiCmd, statusCmd)

	registerCmd.Flags().StringVar(&registerName, "name", "", "Account name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	email := ""
	if len(args) > 0 {
		email = args[0]
	}
	if email == "" {
		email, err = a.promptLine("Email")
		if err != nil {
			return err
		}
	}
	password, err := a.promptSecret(cmd, "Password")
	if err != nil {
		return err
	}

	a.session.SetDraftEmail(email)
	a.session.SetDraftPassword(password)
	if err := a.session.Login(ctx); err != nil {
		return reported(err)
	}

	return a.persistSession()
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	logoutErr := a.session.Logout(cmd.Context())
	if err := a.clearPersistedSession(); err != nil {
		return err
	}
	return reported(logoutErr)
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	name := registerName
	if name == "" {
		name, err = a.promptLine("Name")
		if err != nil {
			return err
		}
	}
	email := registerEmail
	if email == "" {
		email, err = a.promptLine("Email")
		if err != nil {
			return err
		}
	}
	password, err := a.promptSecret(cmd, "Password")
	if err != nil {
		return err
	}

	a.session.SetDraftName(name)
	a.session.SetDraftEmail(email)
	a.session.SetDraftPassword(password)
	return reported(a.session.Register(cmd.Context()))
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	user, err := a.requireUser(cmd.Context())
	if err != nil {
		return err
	}

	printUserDetail(a, user)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if !a.session.ProbeSession(ctx) {
		a.clearPersistedSession()
		fmt.Fprintln(a.out, "Not logged in.")
		a.notifier.Info("Run 'taskman login' to sign in.")
		return errReported
	}

	if err := a.session.GetUser(ctx); err != nil {
		return reported(err)
	}
	user := a.session.User()
	fmt.Fprintf(a.out, "Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func printUserDetail(a *app, user session.User) {
	fmt.Fprintf(a.out, "ID:       %s\n", user.ID)
	fmt.Fprintf(a.out, "Name:     %s\n", user.Name)
	fmt.Fprintf(a.out, "Email:    %s\n", user.Email)
	fmt.Fprintf(a.out, "Role:     %s\n", user.Role)
	if user.Bio != "" {
		fmt.Fprintf(a.out, "Bio:      %s\n", user.Bio)
	}
	verified := "no"
	if user.IsVerified {
		verified = "yes"
	}
	fmt.Fprintf(a.out, "Verified: %s\n", verified)
}
