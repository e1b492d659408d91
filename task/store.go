package task

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/Harshpandey2165/taskmanager--v1/apiclient"
	"github.com/Harshpandey2165/taskmanager--v1/internal/notify"
	"github.com/Harshpandey2165/taskmanager--v1/session"
)

// Options configures a Store.
type Options struct {
	// Notifier receives user-facing outcome messages.
	// Defaults to notify.Discard.
	Notifier notify.Notifier
}

// Store caches the task collection for the current session and drives
// the modal editing state machine.
type Store struct {
	client   *apiclient.Client
	notifier notify.Notifier

	mu          sync.Mutex
	owner       string
	tasks       []Task
	buffer      Task
	mode        Mode
	profileOpen bool
	activeID    string
	loading     bool

	// seq numbers every operation; appliedSeq is the seq of the last
	// write accepted into the collection. A list response whose seq
	// predates appliedSeq lost the race to a newer mutation and is
	// discarded instead of overwriting it.
	seq        uint64
	appliedSeq uint64
}

// New creates a task store backed by the given gateway.
func New(client *apiclient.Client, opts Options) *Store {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Store{
		client:   client,
		notifier: notifier,
		buffer:   emptyDraft(),
	}
}

// BindSession ties the store's lifecycle to a session store: the
// collection is fetched when an identity appears and cleared the moment
// the identity is cleared, so tasks from a previous session are never
// left visible.
func (s *Store) BindSession(sess *session.Store) {
	sess.OnIdentityChanged(func(user session.User) {
		s.SetOwner(user.ID)
		s.List(context.Background())
	})
	sess.OnIdentityCleared(func() {
		s.Reset()
	})
}

// SetOwner scopes the store to a user. An empty owner makes every fetch
// a silent no-op.
func (s *Store) SetOwner(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner = id
}

// Reset drops the collection and all editing state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner = ""
	s.tasks = nil
	s.resetModalLocked()
}

// Tasks returns a copy of the collection.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Active returns the tasks not yet completed. Recomputed from the
// collection on every call; never mutated directly.
func (s *Store) Active() []Task {
	return s.filter(func(t Task) bool { return !t.Completed })
}

// Completed returns the finished tasks.
func (s *Store) Completed() []Task {
	return s.filter(func(t Task) bool { return t.Completed })
}

// Loading reports whether an operation is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// List fetches all tasks owned by the session and replaces the local
// collection wholesale. With no owner it is a no-op, never an error. A
// response that is not a sequence of tasks empties the collection and
// reports a format error; a response that lost the race to a newer
// local mutation is discarded.
func (s *Store) List(ctx context.Context) error {
	s.mu.Lock()
	if s.owner == "" {
		s.mu.Unlock()
		return nil
	}
	s.seq++
	fetchSeq := s.seq
	s.mu.Unlock()

	defer s.startLoading()()

	var out struct {
		Tasks []Task `json:"tasks"`
	}
	err := s.client.Get(ctx, "/tasks", &out)
	if err != nil {
		if errors.Is(err, apiclient.ErrDecode) {
			s.replaceCollection(fetchSeq, nil)
			s.notifier.Error("Invalid response format from server")
			return nil
		}

		s.replaceCollection(fetchSeq, nil)
		if apiclient.IsKind(err, apiclient.KindAuth) {
			s.notifier.Error("Please login to continue")
		} else {
			s.notifier.Error("Failed to fetch tasks. Please try again.")
		}
		return fmt.Errorf("list tasks: %w", err)
	}

	s.replaceCollection(fetchSeq, out.Tasks)
	return nil
}

// Get fetches a single task and loads it into the edit buffer. A 404
// reports not-found and leaves both the buffer and the collection
// untouched.
func (s *Store) Get(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	defer s.startLoading()()

	var fetched Task
	if err := s.client.Get(ctx, "/task/"+url.PathEscape(id), &fetched); err != nil {
		if apiclient.IsKind(err, apiclient.KindNotFound) {
			s.notifier.Error("Task not found")
			return fmt.Errorf("get task %s: %w", id, ErrTaskNotFound)
		}
		s.notifier.Error("Failed to fetch task details")
		return fmt.Errorf("get task %s: %w", id, err)
	}

	s.SetBuffer(fetched)
	return nil
}

// Create submits a draft as a new task. The draft is validated locally
// first; no network call is made when it fails. On success the
// server-returned task joins the collection and the modal closes.
func (s *Store) Create(ctx context.Context, draft Task) error {
	defer s.startLoading()()

	if err := ValidateDraft(draft); err != nil {
		s.notifier.Error("Title and description are required")
		return err
	}

	var created Task
	if err := s.client.Post(ctx, "/task/create", draft, &created); err != nil {
		switch {
		case apiclient.IsKind(err, apiclient.KindAuth):
			s.notifier.Error("Please login to create tasks")
		case apiclient.ServerMessage(err) != "":
			s.notifier.Error(apiclient.ServerMessage(err))
		default:
			s.notifier.Error("Failed to create task")
		}
		return fmt.Errorf("create task: %w", err)
	}

	s.mu.Lock()
	s.seq++
	s.appliedSeq = s.seq
	s.tasks = append(s.tasks, created)
	s.resetModalLocked()
	s.mu.Unlock()

	s.notifier.Success("Task created successfully")
	return nil
}

// Update submits a modified task. On success the matching collection
// entry is replaced by ID and the modal closes. A 404 is reported
// distinctly from other failures.
func (s *Store) Update(ctx context.Context, draft Task) error {
	defer s.startLoading()()

	if err := ValidateUpdate(draft); err != nil {
		s.notifier.Error("Invalid task data")
		return err
	}

	var updated Task
	if err := s.client.Patch(ctx, "/task/"+url.PathEscape(draft.ID), draft, &updated); err != nil {
		switch {
		case apiclient.IsKind(err, apiclient.KindAuth):
			s.notifier.Error("Please login to update tasks")
		case apiclient.IsKind(err, apiclient.KindNotFound):
			s.notifier.Error("Task not found")
			return fmt.Errorf("update task %s: %w", draft.ID, ErrTaskNotFound)
		case apiclient.ServerMessage(err) != "":
			s.notifier.Error(apiclient.ServerMessage(err))
		default:
			s.notifier.Error("Failed to update task")
		}
		return fmt.Errorf("update task %s: %w", draft.ID, err)
	}

	s.mu.Lock()
	s.seq++
	s.appliedSeq = s.seq
	for i := range s.tasks {
		if s.tasks[i].ID == updated.ID {
			s.tasks[i] = updated
			break
		}
	}
	s.resetModalLocked()
	s.mu.Unlock()

	s.notifier.Success("Task updated successfully")
	return nil
}

// Delete removes a task. A 404 means the task is already gone
// server-side; the local entry is removed either way, since "already
// deleted" is an acceptable terminal state.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		s.notifier.Error("Invalid task ID")
		return ErrMissingID
	}

	defer s.startLoading()()

	err := s.client.Delete(ctx, "/task/"+url.PathEscape(id))
	if err != nil && !apiclient.IsKind(err, apiclient.KindNotFound) {
		switch {
		case apiclient.IsKind(err, apiclient.KindAuth):
			s.notifier.Error("Please login to delete tasks")
		case apiclient.ServerMessage(err) != "":
			s.notifier.Error(apiclient.ServerMessage(err))
		default:
			s.notifier.Error("Failed to delete task")
		}
		return fmt.Errorf("delete task %s: %w", id, err)
	}

	s.mu.Lock()
	s.seq++
	s.appliedSeq = s.seq
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.mu.Unlock()

	if err != nil {
		s.notifier.Info("Task was already deleted")
	} else {
		s.notifier.Success("Task deleted successfully")
	}
	return nil
}

// replaceCollection installs a list response unless a newer mutation
// was applied while the fetch was in flight.
func (s *Store) replaceCollection(fetchSeq uint64, tasks []Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appliedSeq > fetchSeq {
		return
	}
	s.tasks = tasks
	s.appliedSeq = fetchSeq
}

func (s *Store) filter(keep func(Task) bool) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Task
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
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
