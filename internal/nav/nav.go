// Package nav defines the navigation signals emitted by the state layer.
//
// The stores never perform navigation themselves. They emit a typed
// target and the hosting application decides what, if anything, to do
// with it. A CLI host may print a hint; a web host would change routes.
package nav

// Target identifies a navigation destination.
type Target string

const (
	// TargetHome is the main task view.
	TargetHome Target = "home"

	// TargetLogin is the login entry point.
	TargetLogin Target = "login"
)

// Navigator receives navigation signals from the stores.
type Navigator interface {
	Navigate(target Target)
}

// Func adapts a plain function into a Navigator.
type Func func(Target)

// Navigate calls the wrapped function.
func (f Func) Navigate(target Target) {
	if f != nil {
		f(target)
	}
}

// Discard is a Navigator that ignores every signal.
var Discard Navigator = Func(nil)

// Recorder is a Navigator that remembers every signal. Tests assert on
// the recorded targets; the CLI checks Last to detect a dead session.
type Recorder struct {
	Targets []Target
}

// Navigate appends the target to the recorded list.
func (r *Recorder) Navigate(target Target) {
	r.Targets = append(r.Targets, target)
}

// Last returns the most recent target, or "" if none were recorded.
func (r *Recorder) Last() Target {
	if len(r.Targets) == 0 {
		return ""
	}
	return r.Targets[len(r.Targets)-1]
}
