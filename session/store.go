package session

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/Harshpandey2165/taskmanager--v1/apiclient"
	"github.com/Harshpandey2165/taskmanager--v1/internal/nav"
	"github.com/Harshpandey2165/taskmanager--v1/internal/notify"
)

// Options configures a Store.
type Options struct {
	// Notifier receives user-facing outcome messages.
	// Defaults to notify.Discard.
	Notifier notify.Notifier

	// Navigator receives navigation signals. Defaults to nav.Discard.
	Navigator nav.Navigator
}

// Store holds the session state: the authenticated user, the
// authentication flag, and the in-progress credential draft.
type Store struct {
	client    *apiclient.Client
	notifier  notify.Notifier
	navigator nav.Navigator

	mu            sync.Mutex
	user          User
	allUsers      []User
	draft         Draft
	authenticated bool
	loading       bool
	clearedHooks  []func()
	changedHooks  []func(User)
}

// New creates a session store backed by the given gateway.
func New(client *apiclient.Client, opts Options) *Store {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Discard
	}
	navigator := opts.Navigator
	if navigator == nil {
		navigator = nav.Discard
	}
	return &Store{
		client:    client,
		notifier:  notifier,
		navigator: navigator,
	}
}

// User returns the current identity. Zero-valued when anonymous.
func (s *Store) User() User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAuthenticated reports whether the last probe or login succeeded
// with no subsequent logout or session invalidation.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Loading reports whether an operation is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// AllUsers returns the admin user listing, populated as a side effect
// when the identity's role becomes admin.
func (s *Store) AllUsers() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]User, len(s.allUsers))
	copy(out, s.allUsers)
	return out
}

// Draft returns the in-progress credential draft.
func (s *Store) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetDraftName sets the name field of the credential draft.
func (s *Store) SetDraftName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Name = name
}

// SetDraftEmail sets the email field of the credential draft.
func (s *Store) SetDraftEmail(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Email = email
}

// SetDraftPassword sets the password field of the credential draft.
func (s *Store) SetDraftPassword(password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Password = password
}

// OnIdentityCleared registers fn to run whenever the identity is
// cleared: logout, a failed probe, or a session invalidation from the
// gateway. The task store subscribes here to drop stale tasks.
func (s *Store) OnIdentityCleared(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearedHooks = append(s.clearedHooks, fn)
}

// OnIdentityChanged registers fn to run whenever a merged identity
// response changes the user's ID, i.e. a different account became
// current. The task store subscribes here to fetch on login.
func (s *Store) OnIdentityChanged(fn func(User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changedHooks = append(s.changedHooks, fn)
}

// Register submits the credential draft as a new account. The draft is
// validated locally first; no network call is made when it fails. On
// success the draft is cleared and the caller is pointed at login (a
// new account is not auto-authenticated).
func (s *Store) Register(ctx context.Context) error {
	defer s.startLoading()()

	draft := s.Draft()
	if err := ValidateRegistration(draft); err != nil {
		s.notifier.Error("Please enter a valid email and a password of at least 6 characters")
		return err
	}

	if err := s.client.Post(ctx, "/register", draft, nil); err != nil {
		s.notifier.Error(failureMessage(err, "Registration failed"))
		return fmt.Errorf("register: %w", err)
	}

	s.mu.Lock()
	s.draft = Draft{}
	s.mu.Unlock()

	s.notifier.Success("Registered successfully")
	s.navigator.Navigate(nav.TargetLogin)
	return nil
}

// Login submits the credential draft. On success the session becomes
// authenticated, the draft is cleared, the identity is fetched, and the
// caller is pointed home.
func (s *Store) Login(ctx context.Context) error {
	defer s.startLoading()()

	draft := s.Draft()
	if err := ValidateLogin(draft); err != nil {
		s.notifier.Error("Email and password are required")
		return err
	}

	credentials := Draft{Email: draft.Email, Password: draft.Password}
	if err := s.client.Post(ctx, "/login", credentials, nil); err != nil {
		s.notifier.Error(failureMessage(err, "Login failed. Please try again."))
		return fmt.Errorf("login: %w", err)
	}

	s.mu.Lock()
	s.authenticated = true
	s.draft = Draft{}
	s.mu.Unlock()

	s.notifier.Success("Logged in successfully")

	// The session is established even when the identity fetch fails;
	// GetUser reports that failure itself and the caller still lands
	// home.
	s.GetUser(ctx)

	s.navigator.Navigate(nav.TargetHome)
	return nil
}

// ProbeSession asks the server whether the stored credential still
// identifies a live session. Invoked once at startup so a previous
// session can be recovered without re-entering a password. A negative
// or failed probe clears the identity and points the caller at login.
func (s *Store) ProbeSession(ctx context.Context) bool {
	defer s.startLoading()()

	var loggedIn bool
	err := s.client.Get(ctx, "/login-status", &loggedIn)
	if err != nil {
		if !apiclient.IsKind(err, apiclient.KindAuth) {
			s.notifier.Error(failureMessage(err, "Could not check login status"))
		}
		s.clearIdentity()
		s.navigator.Navigate(nav.TargetLogin)
		return false
	}

	s.mu.Lock()
	s.authenticated = loggedIn
	s.mu.Unlock()

	if !loggedIn {
		s.clearIdentity()
		s.navigator.Navigate(nav.TargetLogin)
		return false
	}

	return true
}

// GetUser fetches the current identity and merges it into the User
// record. Partial responses only overwrite the fields they carry.
func (s *Store) GetUser(ctx context.Context) error {
	defer s.startLoading()()

	var patch userPatch
	if err := s.client.Get(ctx, "/user", &patch); err != nil {
		s.notifier.Error(failureMessage(err, "Failed to fetch user details"))
		return fmt.Errorf("get user: %w", err)
	}

	s.applyPatch(ctx, patch)
	return nil
}

// UpdateUser submits a partial profile update and merges the response.
func (s *Store) UpdateUser(ctx context.Context, update UserUpdate) error {
	defer s.startLoading()()

	var patch userPatch
	if err := s.client.Patch(ctx, "/user", update, &patch); err != nil {
		s.notifier.Error(failureMessage(err, "Failed to update user"))
		return fmt.Errorf("update user: %w", err)
	}

	s.applyPatch(ctx, patch)
	s.notifier.Success("Profile updated successfully")
	return nil
}

// Logout ends the session. Local identity state is cleared whether or
// not the server call succeeds; a client must never remain locally
// authenticated after a logout was issued.
func (s *Store) Logout(ctx context.Context) error {
	defer s.startLoading()()

	err := s.client.Get(ctx, "/logout", nil)

	s.clearIdentity()
	s.navigator.Navigate(nav.TargetLogin)

	if err != nil {
		s.notifier.Error(failureMessage(err, "Failed to log out"))
		return fmt.Errorf("logout: %w", err)
	}

	s.notifier.Success("Logged out successfully")
	return nil
}

// ChangePassword changes the password of the authenticated user.
func (s *Store) ChangePassword(ctx context.Context, current, updated string) error {
	defer s.startLoading()()

	body := map[string]string{
		"currentPassword": current,
		"newPassword":     updated,
	}
	if err := s.client.Patch(ctx, "/change-password", body, nil); err != nil {
		s.notifier.Error(failureMessage(err, "Failed to change password"))
		return fmt.Errorf("change password: %w", err)
	}

	s.notifier.Success("Password changed successfully")
	return nil
}

// ForgotPasswordEmail requests a password-reset email.
func (s *Store) ForgotPasswordEmail(ctx context.Context, email string) error {
	defer s.startLoading()()

	body := map[string]string{"email": email}
	if err := s.client.Post(ctx, "/forgot-password", body, nil); err != nil {
		s.notifier.Error(failureMessage(err, "Failed to send password reset email"))
		return fmt.Errorf("forgot password: %w", err)
	}

	s.notifier.Success("Password reset email sent")
	return nil
}

// ResetPassword sets a new password using an emailed reset token, then
// points the caller at login.
func (s *Store) ResetPassword(ctx context.Context, token, password string) error {
	defer s.startLoading()()

	body := map[string]string{"password": password}
	path := "/reset-password/" + url.PathEscape(token)
	if err := s.client.Post(ctx, path, body, nil); err != nil {
		s.notifier.Error(failureMessage(err, "Failed to reset password"))
		return fmt.Errorf("reset password: %w", err)
	}

	s.notifier.Success("Password reset successfully")
	s.navigator.Navigate(nav.TargetLogin)
	return nil
}

// EmailVerification requests a verification email for the current user.
func (s *Store) EmailVerification(ctx context.Context) error {
	defer s.startLoading()()

	if err := s.client.Post(ctx, "/verify-email", struct{}{}, nil); err != nil {
		s.notifier.Error(failureMessage(err, "Failed to send verification email"))
		return fmt.Errorf("email verification: %w", err)
	}

	s.notifier.Success("Verification email sent")
	return nil
}

// VerifyUser redeems an emailed verification token, refreshes the
// identity, and points the caller home.
func (s *Store) VerifyUser(ctx context.Context, token string) error {
	defer s.startLoading()()

	path := "/verify-user/" + url.PathEscape(token)
	if err := s.client.Post(ctx, path, struct{}{}, nil); err != nil {
		s.notifier.Error(failureMessage(err, "Failed to verify account"))
		return fmt.Errorf("verify user: %w", err)
	}

	s.notifier.Success("Account verified successfully")
	if err := s.GetUser(ctx); err == nil {
		s.navigator.Navigate(nav.TargetHome)
	}
	return nil
}

// DeleteUser removes an account (admin only) and refreshes the listing.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	defer s.startLoading()()

	if err := s.client.Delete(ctx, "/admin/users/"+url.PathEscape(id)); err != nil {
		s.notifier.Error(failureMessage(err, "Failed to delete user"))
		return fmt.Errorf("delete user: %w", err)
	}

	s.notifier.Success("User deleted successfully")
	s.refreshAllUsers(ctx)
	return nil
}

// InvalidateSession clears the identity in response to a gateway
// session-invalidated signal. The host wires the gateway's hook here so
// a 401 from any endpoint immediately de-authenticates the client.
func (s *Store) InvalidateSession() {
	s.clearIdentity()
	s.navigator.Navigate(nav.TargetLogin)
}

// applyPatch merges an identity response. Gaining the admin role
// triggers the admin user listing fetch as a side effect.
func (s *Store) applyPatch(ctx context.Context, patch userPatch) {
	s.mu.Lock()
	wasAdmin := s.user.Role == RoleAdmin
	previousID := s.user.ID
	patch.apply(&s.user)
	becameAdmin := !wasAdmin && s.user.Role == RoleAdmin
	user := s.user
	var hooks []func(User)
	if user.ID != previousID {
		hooks = make([]func(User), len(s.changedHooks))
		copy(hooks, s.changedHooks)
	}
	s.mu.Unlock()

	for _, hook := range hooks {
		hook(user)
	}

	if becameAdmin {
		s.refreshAllUsers(ctx)
	}
}

func (s *Store) refreshAllUsers(ctx context.Context) {
	var users []User
	if err := s.client.Get(ctx, "/admin/users", &users); err != nil {
		s.notifier.Error(failureMessage(err, "Failed to fetch users"))
		return
	}

	s.mu.Lock()
	s.allUsers = users
	s.mu.Unlock()
}

func (s *Store) clearIdentity() {
	s.mu.Lock()
	s.user = User{}
	s.allUsers = nil
	s.authenticated = false
	hooks := make([]func(), len(s.clearedHooks))
	copy(hooks, s.clearedHooks)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}

// startLoading marks an operation in flight and returns the matching
// cleanup. Deferring the cleanup guarantees loading never sticks true
// after a settled request.
func (s *Store) startLoading() func() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}
}

// failureMessage prefers the server's own message for user feedback.
func failureMessage(err error, fallback string) string {
	if message := apiclient.ServerMessage(err); message != "" {
		return message
	}
	return fallback
}
