package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Harshpandey2165/taskmanager--v1/apiclient"
	"github.com/Harshpandey2165/taskmanager--v1/internal/config"
	"github.com/Harshpandey2165/taskmanager--v1/internal/nav"
	"github.com/Harshpandey2165/taskmanager--v1/internal/notify"
	"github.com/Harshpandey2165/taskmanager--v1/internal/state"
	"github.com/Harshpandey2165/taskmanager--v1/internal/ui"
	"github.com/Harshpandey2165/taskmanager--v1/session"
	"github.com/Harshpandey2165/taskmanager--v1/task"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// app wires the stores together for one command invocation: config,
// persisted session state, the API gateway, and the two stores.
type app struct {
	cfg      *config.Config
	state    *state.Store
	client   *apiclient.Client
	session  *session.Store
	tasks    *task.Store
	notifier notify.Notifier
	nav      *nav.Recorder
	styler   ui.Styler

	out         io.Writer
	errOut      io.Writer
	stdin       *bufio.Reader
	interactive bool
}

func newApp(cmd *cobra.Command) (*app, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	if serverURL := os.Getenv("TASKMAN_SERVER_URL"); serverURL != "" {
		cfg.Server.URL = serverURL
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}

	stateDir := os.Getenv("TASKMAN_STATE_DIR")
	if stateDir == "" {
		stateDir, err = state.DefaultDir()
		if err != nil {
			return nil, err
		}
	}

	a := &app{
		cfg:    cfg,
		state:  state.NewStore(stateDir),
		nav:    &nav.Recorder{},
		styler: ui.NewStyler(cfg.Output.Color),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		stdin:  bufio.NewReader(cmd.InOrStdin()),
	}
	if stdinFile, ok := cmd.InOrStdin().(*os.File); ok {
		a.interactive = term.IsTerminal(int(stdinFile.Fd()))
	}

	if a.out == os.Stdout {
		a.notifier = notify.NewTerminal()
	} else {
		a.notifier = notify.NewTerminalWriter(a.out)
	}

	// The gateway hook references the session store, which in turn
	// needs the gateway. Late-bind through the app.
	a.client, err = apiclient.New(cfg.Server.URL, apiclient.Options{
		Timeout: timeout,
		OnSessionInvalid: func() {
			if a.session != nil {
				a.session.InvalidateSession()
			}
		},
	})
	if err != nil {
		return nil, err
	}

	cookies, err := a.state.SessionCookies(cfg.Server.URL, time.Now())
	if err != nil {
		return nil, err
	}
	a.client.SetCookies(cookies)

	a.session = session.New(a.client, session.Options{
		Notifier:  a.notifier,
		Navigator: a.nav,
	})
	a.tasks = task.New(a.client, task.Options{Notifier: a.notifier})
	a.tasks.BindSession(a.session)

	return a, nil
}

// persistSession writes the gateway's cookies to disk so the next
// invocation stays logged in.
func (a *app) persistSession() error {
	return a.state.SaveSessionCookies(a.cfg.Server.URL, a.client.Cookies())
}

func (a *app) clearPersistedSession() error {
	return a.state.ClearSession()
}

// sessionExpired reports whether an operation was rejected for a dead
// session during this invocation.
func (a *app) sessionExpired() bool {
	return a.nav.Last() == nav.TargetLogin
}

// requireUser fetches the current identity, which also populates the
// task collection through the session binding. Fails with a login hint
// when the stored session is no longer valid.
func (a *app) requireUser(ctx context.Context) (session.User, error) {
	if err := a.session.GetUser(ctx); err != nil {
		if a.sessionExpired() {
			a.clearPersistedSession()
			a.notifier.Info("Run 'taskman login' to sign in.")
		}
		return session.User{}, reported(err)
	}
	return a.session.User(), nil
}

// promptLine reads one line of input, printing the label when
// interactive.
func (a *app) promptLine(label string) (string, error) {
	if a.interactive {
		fmt.Fprintf(a.errOut, "%s: ", label)
	}
	line, err := a.stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read input: %w", err)
	}
	value := strings.TrimRight(line, "\r\n")
	if value == "" && err == io.EOF {
		return "", fmt.Errorf("%s is required", strings.ToLower(label))
	}
	return value, nil
}

// promptSecret reads a password without echo when stdin is a tty, and
// falls back to a plain line read otherwise.
func (a *app) promptSecret(cmd *cobra.Command, label string) (string, error) {
	stdinFile, ok := cmd.InOrStdin().(*os.File)
	if ok && term.IsTerminal(int(stdinFile.Fd())) {
		fmt.Fprintf(a.errOut, "%s: ", label)
		secret, err := term.ReadPassword(int(stdinFile.Fd()))
		fmt.Fprintln(a.errOut)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(secret), nil
	}
	return a.promptLine(label)
}
