// Package state persists CLI session state between invocations.
package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// State is the contents of the state file. The session cookie issued
// at login lives here so later invocations stay authenticated.
type State struct {
	// ServerURL records which server the cookies belong to. Cookies
	// are discarded when the configured server changes.
	ServerURL string `json:"serverUrl,omitempty"`

	Cookies []Cookie `json:"cookies,omitempty"`
}

// Cookie is the persisted form of an HTTP cookie.
type Cookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Expires time.Time `json:"expires,omitzero"`
}

// Store manages the state file with locking.
type Store struct {
	dir string
}

// DefaultDir returns the default state directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "taskman"), nil
}

// NewStore creates a state store using the given directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) statePath() string {
	return filepath.Join(s.dir, "state.json")
}

func (s *Store) lockPath() string {
	return filepath.Join(s.dir, "state.lock")
}

// Load reads the state from disk. Returns an empty state if the file
// doesn't exist.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.statePath())
	if os.IsNotExist(err) {
		return &State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	return &st, nil
}

// Save writes the state to disk atomically.
func (s *Store) Save(st *State) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if existing, err := os.ReadFile(s.statePath()); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read state file: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.dir, filepath.Base(s.statePath())+".tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := os.Chmod(name, 0o600); err != nil {
		os.Remove(name)
		return fmt.Errorf("chmod temp state file: %w", err)
	}

	if err := os.Rename(name, s.statePath()); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename state file: %w", err)
	}

	return nil
}

// Update atomically reads, modifies, and writes the state with file
// locking. Concurrent taskman invocations serialize here.
func (s *Store) Update(fn func(st *State) error) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	lockFile, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	st, err := s.Load()
	if err != nil {
		return err
	}

	if err := fn(st); err != nil {
		return err
	}

	return s.Save(st)
}

// SessionCookies returns the persisted cookies for serverURL as HTTP
// cookies, dropping expired ones. Cookies stored for a different
// server are ignored.
func (s *Store) SessionCookies(serverURL string, now time.Time) ([]*http.Cookie, error) {
	st, err := s.Load()
	if err != nil {
		return nil, err
	}
	if st.ServerURL != serverURL {
		return nil, nil
	}

	cookies := make([]*http.Cookie, 0, len(st.Cookies))
	for _, c := range st.Cookies {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Expires: c.Expires,
		})
	}
	return cookies, nil
}

// SaveSessionCookies replaces the persisted cookies for serverURL.
func (s *Store) SaveSessionCookies(serverURL string, cookies []*http.Cookie) error {
	return s.Update(func(st *State) error {
		st.ServerURL = serverURL
		st.Cookies = st.Cookies[:0]
		for _, c := range cookies {
			st.Cookies = append(st.Cookies, Cookie{
				Name:    c.Name,
				Value:   c.Value,
				Expires: c.Expires,
			})
		}
		return nil
	})
}

// ClearSession removes all persisted cookies.
func (s *Store) ClearSession() error {
	return s.Update(func(st *State) error {
		st.ServerURL = ""
		st.Cookies = nil
		return nil
	})
}
