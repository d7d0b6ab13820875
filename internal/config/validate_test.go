package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaultsPass(t *testing.T) {
	warnings, err := Validate(Default())
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"empty hotkey", func(c *Config) { c.Hotkey = " " }, "hotkey"},
		{"bad mode", func(c *Config) { c.Mode = "hold" }, "mode"},
		{"bad after action", func(c *Config) { c.AfterAction = "tab" }, "after_action"},
		{"bad window target", func(c *Config) { c.WindowTarget = "both" }, "window_target"},
		{"bad model", func(c *Config) { c.Model = "huge" }, "model"},
		{"bad deafen", func(c *Config) { c.Deafen = "quiet" }, "deafen_while_recording"},
		{"empty language", func(c *Config) { c.Language = "" }, "language"},
		{"empty paste shortcut without type cmd", func(c *Config) { c.Paste.Shortcut = "" }, "paste_shortcut"},
		{"cancel key clash", func(c *Config) { c.CancelKey = "f2" }, "bound to"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			_, err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestValidateTypeCmdReplacesPasteShortcut(t *testing.T) {
	cfg := Default()
	cfg.Paste.Shortcut = ""
	cfg.TypeCmd = CommandConfig{Raw: "wtype -", Argv: []string{"wtype", "-"}}

	_, err := Validate(cfg)
	require.NoError(t, err)
}

func TestValidateWarnsOnDisabledKeys(t *testing.T) {
	cfg := Default()
	cfg.CancelKey = ""
	cfg.NoEnterKey = ""

	warnings, err := Validate(cfg)
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0].Message, "cancel_key")
	assert.Contains(t, warnings[1].Message, "no_enter_key")
}

func TestParseArgv(t *testing.T) {
	cases := []struct {
		input   string
		want    []string
		wantErr bool
	}{
		{input: "wtype -", want: []string{"wtype", "-"}},
		{input: `ydotool type --file '/dev/stdin'`, want: []string{"ydotool", "type", "--file", "/dev/stdin"}},
		{input: `cmd "two words"`, want: []string{"cmd", "two words"}},
		{input: `cmd escaped\ space`, want: []string{"cmd", "escaped space"}},
		{input: "", want: nil},
		{input: `cmd "unterminated`, wantErr: true},
		{input: `cmd trailing\`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			argv, err := parseArgv(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, argv)
		})
	}
}
