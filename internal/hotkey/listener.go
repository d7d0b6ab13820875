package hotkey

import (
	"context"
	"fmt"

	"golang.design/x/hotkey"
)

// Kind classifies one hotkey event surfaced to the session.
type Kind int

const (
	RecordDown Kind = iota + 1
	RecordUp
	CancelTap
	NoEnterTap
)

// Event is one observed hotkey action.
type Event struct {
	Kind Kind
}

// Listener owns the registered global hotkeys and fans their activity into
// a single event channel.
type Listener struct {
	record  *hotkey.Hotkey
	cancel  *hotkey.Hotkey
	noEnter *hotkey.Hotkey

	events chan Event
}

// NewListener registers the record hotkey and the optional cancel/no-enter
// hotkeys. Registration failure unwinds anything already registered.
func NewListener(record Binding, cancel *Binding, noEnter *Binding) (*Listener, error) {
	l := &Listener{events: make(chan Event, 8)}

	var err error
	l.record, err = register(record)
	if err != nil {
		return nil, err
	}

	if cancel != nil {
		l.cancel, err = register(*cancel)
		if err != nil {
			l.Close()
			return nil, err
		}
	}
	if noEnter != nil {
		l.noEnter, err = register(*noEnter)
		if err != nil {
			l.Close()
			return nil, err
		}
	}

	return l, nil
}

func register(binding Binding) (*hotkey.Hotkey, error) {
	hk := hotkey.New(binding.Mods, binding.Key)
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("register hotkey %q: %w", binding.Raw, err)
	}
	return hk, nil
}

// Events returns the fan-in channel of hotkey activity.
func (l *Listener) Events() <-chan Event {
	return l.events
}

// Run forwards hotkey activity to Events until ctx is done.
func (l *Listener) Run(ctx context.Context) {
	recordDown := l.record.Keydown()
	recordUp := l.record.Keyup()

	var cancelDown, noEnterDown <-chan hotkey.Event
	if l.cancel != nil {
		cancelDown = l.cancel.Keydown()
	}
	if l.noEnter != nil {
		noEnterDown = l.noEnter.Keydown()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-recordDown:
			l.emit(ctx, Event{Kind: RecordDown})
		case <-recordUp:
			l.emit(ctx, Event{Kind: RecordUp})
		case <-cancelDown:
			l.emit(ctx, Event{Kind: CancelTap})
		case <-noEnterDown:
			l.emit(ctx, Event{Kind: NoEnterTap})
		}
	}
}

func (l *Listener) emit(ctx context.Context, ev Event) {
	select {
	case <-ctx.Done():
	case l.events <- ev:
	}
}

// Close unregisters every hotkey held by the listener.
func (l *Listener) Close() {
	for _, hk := range []*hotkey.Hotkey{l.record, l.cancel, l.noEnter} {
		if hk != nil {
			_ = hk.Unregister()
		}
	}
}
