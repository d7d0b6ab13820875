package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		name    string
		from    State
		event   Event
		want    State
		wantErr bool
	}{
		{name: "idle start", from: StateIdle, event: EventStart, want: StateRecording},
		{name: "recording stop", from: StateRecording, event: EventStop, want: StateTranscribing},
		{name: "recording cancel", from: StateRecording, event: EventCancel, want: StateIdle},
		{name: "recording abort", from: StateRecording, event: EventAbort, want: StateIdle},
		{name: "transcribing commit", from: StateTranscribing, event: EventCommit, want: StateIdle},
		{name: "transcribing abort", from: StateTranscribing, event: EventAbort, want: StateIdle},
		{name: "idle stop invalid", from: StateIdle, event: EventStop, wantErr: true},
		{name: "idle cancel invalid", from: StateIdle, event: EventCancel, wantErr: true},
		{name: "recording start invalid", from: StateRecording, event: EventStart, wantErr: true},
		{name: "transcribing start invalid", from: StateTranscribing, event: EventStart, wantErr: true},
		{name: "transcribing cancel invalid", from: StateTranscribing, event: EventCancel, wantErr: true},
		{name: "unknown state", from: State("bogus"), event: EventStart, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := Transition(tc.from, tc.event)
			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, tc.from, next)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, next)
		})
	}
}

func TestFullCycleReturnsToIdle(t *testing.T) {
	state := StateIdle
	for _, event := range []Event{EventStart, EventStop, EventCommit} {
		next, err := Transition(state, event)
		require.NoError(t, err)
		state = next
	}
	assert.Equal(t, StateIdle, state)
}
