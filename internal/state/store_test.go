package state

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(t.TempDir())

	st, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.ServerURL != "" || len(st.Cookies) != 0 {
		t.Errorf("expected empty state, got %+v", st)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	want := &State{
		ServerURL: "https://api.example.com",
		Cookies:   []Cookie{{Name: "token", Value: "abc"}},
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ServerURL != want.ServerURL {
		t.Errorf("ServerURL = %q, want %q", got.ServerURL, want.ServerURL)
	}
	if len(got.Cookies) != 1 || got.Cookies[0].Value != "abc" {
		t.Errorf("Cookies = %+v", got.Cookies)
	}
}

func TestStateFilePermissions(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	if err := store.Save(&State{ServerURL: "https://api.example.com"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("state file mode = %o, want 600", perm)
	}
}

func TestSessionCookiesFiltersExpired(t *testing.T) {
	store := NewStore(t.TempDir())
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	err := store.SaveSessionCookies("https://api.example.com", []*http.Cookie{
		{Name: "token", Value: "live", Expires: now.Add(time.Hour)},
		{Name: "stale", Value: "dead", Expires: now.Add(-time.Hour)},
		{Name: "session", Value: "forever"},
	})
	if err != nil {
		t.Fatalf("SaveSessionCookies: %v", err)
	}

	cookies, err := store.SessionCookies("https://api.example.com", now)
	if err != nil {
		t.Fatalf("SessionCookies: %v", err)
	}
	if len(cookies) != 2 {
		t.Fatalf("expected 2 live cookies, got %d", len(cookies))
	}
	for _, c := range cookies {
		if c.Name == "stale" {
			t.Error("expired cookie survived")
		}
	}
}

func TestSessionCookiesIgnoresOtherServer(t *testing.T) {
	store := NewStore(t.TempDir())

	err := store.SaveSessionCookies("https://one.example.com", []*http.Cookie{
		{Name: "token", Value: "abc"},
	})
	if err != nil {
		t.Fatalf("SaveSessionCookies: %v", err)
	}

	cookies, err := store.SessionCookies("https://two.example.com", time.Now())
	if err != nil {
		t.Fatalf("SessionCookies: %v", err)
	}
	if len(cookies) != 0 {
		t.Errorf("expected no cookies for other server, got %d", len(cookies))
	}
}

func TestClearSession(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.SaveSessionCookies("https://api.example.com", []*http.Cookie{
		{Name: "token", Value: "abc"},
	}); err != nil {
		t.Fatalf("SaveSessionCookies: %v", err)
	}
	if err := store.ClearSession(); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}

	cookies, err := store.SessionCookies("https://api.example.com", time.Now())
	if err != nil {
		t.Fatalf("SessionCookies: %v", err)
	}
	if len(cookies) != 0 {
		t.Errorf("expected no cookies after clear, got %d", len(cookies))
	}
}

func TestUpdateModifiesState(t *testing.T) {
	store := NewStore(t.TempDir())

	err := store.Update(func(st *State) error {
		st.ServerURL = "https://api.example.com"
		st.Cookies = append(st.Cookies, Cookie{Name: "token", Value: "v1"})
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	err = store.Update(func(st *State) error {
		if len(st.Cookies) != 1 {
			t.Errorf("expected previous cookie visible, got %d", len(st.Cookies))
		}
		st.Cookies[0].Value = "v2"
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	st, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.Cookies[0].Value != "v2" {
		t.Errorf("Value = %q, want v2", st.Cookies[0].Value)
	}
}
