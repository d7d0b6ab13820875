package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.design/x/hotkey"
)

func TestParseBinding(t *testing.T) {
	cases := []struct {
		spec     string
		wantMods []hotkey.Modifier
		wantKey  hotkey.Key
		wantErr  bool
	}{
		{spec: "f2", wantKey: hotkey.KeyF2},
		{spec: "F12", wantKey: hotkey.KeyF12},
		{spec: "ctrl+shift+d", wantMods: []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}, wantKey: hotkey.KeyD},
		{spec: "alt+space", wantMods: []hotkey.Modifier{hotkey.Mod1}, wantKey: hotkey.KeySpace},
		{spec: "super+enter", wantMods: []hotkey.Modifier{hotkey.Mod4}, wantKey: hotkey.KeyReturn},
		{spec: " Control + 3 ", wantMods: []hotkey.Modifier{hotkey.ModCtrl}, wantKey: hotkey.Key3},
		{spec: "", wantErr: true},
		{spec: "ctrl+", wantErr: true},
		{spec: "hyper+a", wantErr: true},
		{spec: "ctrl+pageup", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.spec, func(t *testing.T) {
			binding, err := ParseBinding(tc.spec)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantMods, binding.Mods)
			assert.Equal(t, tc.wantKey, binding.Key)
		})
	}
}

func TestParseBindingKeepsRawSpec(t *testing.T) {
	binding, err := ParseBinding("Ctrl+Shift+D")
	require.NoError(t, err)
	assert.Equal(t, "Ctrl+Shift+D", binding.Raw)
}

func TestParseBindingAliases(t *testing.T) {
	ret, err := ParseBinding("return")
	require.NoError(t, err)
	enter, err2 := ParseBinding("enter")
	require.NoError(t, err2)
	assert.Equal(t, ret.Key, enter.Key)

	esc, err := ParseBinding("esc")
	require.NoError(t, err)
	escape, err2 := ParseBinding("escape")
	require.NoError(t, err2)
	assert.Equal(t, esc.Key, escape.Key)
}
