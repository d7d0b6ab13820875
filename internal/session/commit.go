package session

import "context"

// Committer injects a transcript into the target window when stop succeeds.
type Committer interface {
	Commit(ctx context.Context, transcript string, windowAddress string, pressEnter bool) error
}

// CommitFunc adapts a function to the Committer interface.
type CommitFunc func(context.Context, string, string, bool) error

func (f CommitFunc) Commit(ctx context.Context, transcript string, windowAddress string, pressEnter bool) error {
	return f(ctx, transcript, windowAddress, pressEnter)
}

// Focuser reports the currently focused window at recording start.
type Focuser interface {
	ActiveWindowAddress(context.Context) (string, error)
}

// FocusFunc adapts a function to the Focuser interface.
type FocusFunc func(context.Context) (string, error)

func (f FocusFunc) ActiveWindowAddress(ctx context.Context) (string, error) {
	return f(ctx)
}

// Notifier is the session-facing subset of notification behavior.
type Notifier interface {
	Recording()
	Transcribing()
	Committed(transcript string)
	Cancelled()
	Failed(reason string)
}

// noopNotifier preserves session flow when no notifier is wired.
type noopNotifier struct{}

func (noopNotifier) Recording()       {}
func (noopNotifier) Transcribing()    {}
func (noopNotifier) Committed(string) {}
func (noopNotifier) Cancelled()       {}
func (noopNotifier) Failed(string)    {}
