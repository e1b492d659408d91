package task

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Harshpandey2165/taskmanager--v1/apiclient"
	"github.com/Harshpandey2165/taskmanager--v1/internal/notify"
	"github.com/Harshpandey2165/taskmanager--v1/session"
)

// Exercises the full wiring the host application sets up: a session
// store and a task store sharing one gateway, with the task store bound
// to the session lifecycle.
func TestBindSession_LoginFetchesAndLogoutClears(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			http.SetCookie(w, &http.Cookie{Name: "token", Value: "abc", Path: "/"})
		case "/user":
			w.Write([]byte(`{"_id": "u1", "name": "Alice", "role": "user"}`))
		case "/tasks":
			w.Write([]byte(`{"tasks": [{"_id": "t1", "title": "a", "description": "d", "priority": "low", "userId": "u1"}]}`))
		case "/logout":
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
		}
	}))
	t.Cleanup(server.Close)

	client, err := apiclient.New(server.URL, apiclient.Options{})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	sessions := session.New(client, session.Options{Notifier: notify.Discard})
	tasks := New(client, Options{Notifier: notify.Discard})
	tasks.BindSession(sessions)

	sessions.SetDraftEmail("alice@example.com")
	sessions.SetDraftPassword("hunter22")
	if err := sessions.Login(context.Background()); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if got := len(tasks.Tasks()); got != 1 {
		t.Fatalf("expected collection fetched on login, got %d tasks", got)
	}

	tasks.OpenForEdit(tasks.Tasks()[0])

	if err := sessions.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if got := len(tasks.Tasks()); got != 0 {
		t.Errorf("expected empty collection after logout, got %d tasks", got)
	}
	if tasks.Buffer() != emptyDraft() {
		t.Errorf("expected buffer reset after logout, got %+v", tasks.Buffer())
	}
	if tasks.Mode() != ModeNone {
		t.Error("expected modal closed after logout")
	}

	// A fetch after logout is a silent no-op: no owner, no request.
	if err := tasks.List(context.Background()); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
}
