// Package notify is the user-feedback side channel of the state layer.
//
// Every store operation reports its outcome here instead of returning
// presentation strings. The terminal sink is the CLI equivalent of the
// toast notifications the stores were designed for.
package notify

// Notifier receives user-facing outcome messages from the stores.
type Notifier interface {
	// Success reports a completed operation.
	Success(message string)

	// Error reports a failed operation.
	Error(message string)

	// Info reports a neutral status message.
	Info(message string)
}

// Discard is a Notifier that drops every message.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Success(string) {}
func (discard) Error(string)   {}
func (discard) Info(string)    {}

// Recorder is a Notifier that remembers every message, for tests.
type Recorder struct {
	Successes []string
	Errors    []string
	Infos     []string
}

// Success records a success message.
func (r *Recorder) Success(message string) {
	r.Successes = append(r.Successes, message)
}

// Error records an error message.
func (r *Recorder) Error(message string) {
	r.Errors = append(r.Errors, message)
}

// Info records an info message.
func (r *Recorder) Info(message string) {
	r.Infos = append(r.Infos, message)
}

// LastError returns the most recent error message, or "".
func (r *Recorder) LastError() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[len(r.Errors)-1]
}

// LastSuccess returns the most recent success message, or "".
func (r *Recorder) LastSuccess() string {
	if len(r.Successes) == 0 {
		return ""
	}
	return r.Successes[len(r.Successes)-1]
}
