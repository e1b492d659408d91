package task

// The modal state machine. The add/edit mode and the profile flag are
// deliberately independent: the profile view may be open at the same
// time as the edit modal, so they are two pieces of state rather than
// one enum. Close clears both.

// Mode returns the current add/edit modal mode.
func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// ProfileOpen reports whether the profile view is open.
func (s *Store) ProfileOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileOpen
}

// ActiveTaskID returns the ID of the task being edited, or "" when the
// modal is not in edit mode.
func (s *Store) ActiveTaskID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Buffer returns a copy of the edit buffer.
func (s *Store) Buffer() Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// OpenForAdd opens the modal to compose a new task. The buffer is reset
// to its defaults and no task is active.
func (s *Store) OpenForAdd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeAdd
	s.buffer = emptyDraft()
	s.activeID = ""
}

// OpenForEdit opens the modal on a copy of an existing task.
func (s *Store) OpenForEdit(t Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeEdit
	s.buffer = t
	s.activeID = t.ID
}

// OpenProfile opens the profile view. Independent of the add/edit mode.
func (s *Store) OpenProfile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profileOpen = true
}

// Close closes every modal surface: mode, buffer, active task, and the
// profile flag all return to their initial values.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetModalLocked()
}

func (s *Store) resetModalLocked() {
	s.mode = ModeNone
	s.profileOpen = false
	s.activeID = ""
	s.buffer = emptyDraft()
}

// SetBuffer replaces the whole edit buffer. Used when a fetched task is
// loaded for editing.
func (s *Store) SetBuffer(t Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = t
}

// SetTitle sets the buffer's title, preserving all other fields.
func (s *Store) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer.Title = title
}

// SetDescription sets the buffer's description.
func (s *Store) SetDescription(description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer.Description = description
}

// SetPriority sets the buffer's priority.
func (s *Store) SetPriority(priority Priority) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer.Priority = priority
}

// SetDueDate sets the buffer's due date.
func (s *Store) SetDueDate(dueDate string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer.DueDate = dueDate
}

// SetCompleted sets the buffer's completed flag.
func (s *Store) SetCompleted(completed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer.Completed = completed
}
