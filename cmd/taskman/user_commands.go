package main

import (
	"fmt"
	"strings"

	"github.com/Harshpandey2165/taskmanager--v1/internal/ui"
	"github.com/Harshpandey2165/taskmanager--v1/session"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage your account",
}

// user update
var userUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	Args:  cobra.NoArgs,
	RunE:  runUserUpdate,
}

var (
	userUpdateName  string
	userUpdatePhoto string
	userUpdateBio   string
)

// user passwd
var userPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your password",
	Args:  cobra.NoArgs,
	RunE:  runUserPasswd,
}

// user list
var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts (admin only)",
	Args:  cobra.NoArgs,
	RunE:  runUserList,
}

// user rm
var userRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an account (admin only)",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserRm,
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userUpdateCmd, userPasswdCmd, userListCmd, userRmCmd)

	// user update flags
	userUpdateCmd.Flags().StringVar(&userUpdateName, "name", "", "New display name")
	userUpdateCmd.Flags().StringVar(&userUpdatePhoto, "photo", "", "New photo URL")
	userUpdateCmd.Flags().StringVar(&userUpdateBio, "bio", "", "New bio")
}

func runUserUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	update := session.UserUpdate{}
	if cmd.Flags().Changed("name") {
		update.Name = &userUpdateName
	}
	if cmd.Flags().Changed("photo") {
		update.Photo = &userUpdatePhoto
	}
	if cmd.Flags().Changed("bio") {
		update.Bio = &userUpdateBio
	}
	if update.Name == nil && update.Photo == nil && update.Bio == nil {
		return fmt.Errorf("nothing to update (use --name, --photo, or --bio)")
	}

	if err := a.session.UpdateUser(cmd.Context(), update); err != nil {
		if a.sessionExpired() {
			a.clearPersistedSession()
			a.notifier.Info("Run 'taskman login' to sign in.")
		}
		return reported(err)
	}
	return nil
}

func runUserPasswd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	current, err := a.promptSecret(cmd, "Current password")
	if err != nil {
		return err
	}
	updated, err := a.promptSecret(cmd, "New password")
	if err != nil {
		return err
	}
	if len(updated) < session.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", session.MinPasswordLength)
	}

	return reported(a.session.ChangePassword(cmd.Context(), current, updated))
}

func runUserList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	user, err := a.requireUser(cmd.Context())
	if err != nil {
		return err
	}
	if user.Role != session.RoleAdmin {
		return fmt.Errorf("user list requires the admin role")
	}

	users := a.session.AllUsers()
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users found.")
		return nil
	}

	builder := ui.NewTableBuilder([]string{"ID", "NAME", "EMAIL", "ROLE", "VERIFIED"}, len(users))
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	prefixLengths := ui.UniqueIDPrefixLengths(ids)
	for _, u := range users {
		verified := "no"
		if u.IsVerified {
			verified = "yes"
		}
		builder.AddRow([]string{
			a.styler.HighlightID(u.ID, prefixLengths[strings.ToLower(u.ID)]),
			ui.TruncateTableCell(u.Name),
			u.Email,
			string(u.Role),
			verified,
		})
	}
	fmt.Fprint(a.out, builder.String())
	return nil
}

func runUserRm(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	user, err := a.requireUser(ctx)
	if err != nil {
		return err
	}
	if user.Role != session.RoleAdmin {
		return fmt.Errorf("user rm requires the admin role")
	}

	id, err := matchUserID(a.session.AllUsers(), args[0])
	if err != nil {
		return err
	}
	return reported(a.session.DeleteUser(ctx, id))
}

func matchUserID(users []session.User, ref string) (string, error) {
	needle := strings.ToLower(ref)
	match := ""
	for _, u := range users {
		id := strings.ToLower(u.ID)
		if id == needle {
			return u.ID, nil
		}
		if strings.HasPrefix(id, needle) {
			if match != "" {
				return "", fmt.Errorf("user ID %q is ambiguous", ref)
			}
			match = u.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no user matches %q", ref)
	}
	return match, nil
}
