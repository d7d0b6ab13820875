package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Parse reads settings content as JSON5 layered over base defaults.
//
// The supported JSON5 subset is strict JSON plus // and /* */ comments and
// trailing commas, which matches what Save emits.
func Parse(content string, base Config) (Config, []Warning, error) {
	if strings.TrimSpace(content) == "" {
		warnings, err := Validate(base)
		if err != nil {
			return Config{}, nil, err
		}
		return base, warnings, nil
	}

	normalized, err := normalizeJSON5(content)
	if err != nil {
		return Config{}, nil, err
	}

	decoder := json.NewDecoder(strings.NewReader(normalized))
	decoder.DisallowUnknownFields()

	var payload json5Settings
	if err := decoder.Decode(&payload); err != nil {
		return Config{}, nil, wrapJSONDecodeError(normalized, err)
	}
	if err := ensureSingleJSONValue(decoder); err != nil {
		return Config{}, nil, wrapJSONDecodeError(normalized, err)
	}

	cfg := base
	if err := payload.applyTo(&cfg); err != nil {
		return Config{}, nil, err
	}

	warnings, err := Validate(cfg)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, warnings, nil
}

// json5Settings mirrors the settings file shape; pointer fields distinguish
// absent keys from zero values.
type json5Settings struct {
	Hotkey       *string `json:"hotkey"`
	CancelKey    *string `json:"cancel_key"`
	NoEnterKey   *string `json:"no_enter_key"`
	Mode         *string `json:"mode"`
	AfterAction  *string `json:"after_action"`
	WindowTarget *string `json:"window_target"`

	Model    *string `json:"model"`
	ModelDir *string `json:"model_dir"`
	Language *string `json:"language"`

	DeviceName    *string `json:"device_name"`
	AudioFallback *string `json:"audio_fallback"`

	Deafen *json5Deafen `json:"deafen_while_recording"`

	PasteShortcut *string `json:"paste_shortcut"`
	TypeCmd       *string `json:"type_cmd"`

	Notify         *bool `json:"notify"`
	DebugAudioDump *bool `json:"debug_audio_dump"`
}

// json5Deafen accepts "off"/"half"/"on" or a legacy boolean.
type json5Deafen string

func (d *json5Deafen) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = json5Deafen(strings.ToLower(strings.TrimSpace(s)))
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*d = DeafenOn
		} else {
			*d = DeafenOff
		}
		return nil
	}

	return fmt.Errorf("expected \"off\", \"half\", \"on\", or a boolean")
}

func (payload json5Settings) applyTo(cfg *Config) error {
	if payload.Hotkey != nil {
		cfg.Hotkey = strings.TrimSpace(*payload.Hotkey)
	}
	if payload.CancelKey != nil {
		cfg.CancelKey = strings.TrimSpace(*payload.CancelKey)
	}
	if payload.NoEnterKey != nil {
		cfg.NoEnterKey = strings.TrimSpace(*payload.NoEnterKey)
	}
	if payload.Mode != nil {
		cfg.Mode = strings.ToLower(strings.TrimSpace(*payload.Mode))
	}
	if payload.AfterAction != nil {
		cfg.AfterAction = strings.ToLower(strings.TrimSpace(*payload.AfterAction))
	}
	if payload.WindowTarget != nil {
		cfg.WindowTarget = strings.ToLower(strings.TrimSpace(*payload.WindowTarget))
	}
	if payload.Model != nil {
		cfg.Model = strings.ToLower(strings.TrimSpace(*payload.Model))
	}
	if payload.ModelDir != nil {
		cfg.ModelDir = strings.TrimSpace(*payload.ModelDir)
	}
	if payload.Language != nil {
		cfg.Language = strings.TrimSpace(*payload.Language)
	}
	if payload.DeviceName != nil {
		cfg.Audio.Input = strings.TrimSpace(*payload.DeviceName)
	}
	if payload.AudioFallback != nil {
		cfg.Audio.Fallback = strings.TrimSpace(*payload.AudioFallback)
	}
	if payload.Deafen != nil {
		cfg.Deafen = string(*payload.Deafen)
	}
	if payload.PasteShortcut != nil {
		cfg.Paste.Shortcut = strings.TrimSpace(*payload.PasteShortcut)
	}
	if payload.TypeCmd != nil {
		raw := *payload.TypeCmd
		argv, err := parseArgv(raw)
		if err != nil {
			return fmt.Errorf("invalid type_cmd: %w", err)
		}
		cfg.TypeCmd = CommandConfig{Raw: raw, Argv: argv}
	}
	if payload.Notify != nil {
		cfg.Notify = *payload.Notify
	}
	if payload.DebugAudioDump != nil {
		cfg.Debug.AudioDump = *payload.DebugAudioDump
	}
	return nil
}

// normalizeJSON5 blanks comments and trailing commas in place so byte
// offsets in decode errors still line up with the source file.
func normalizeJSON5(content string) (string, error) {
	buf := []byte(content)

	if err := blankComments(buf); err != nil {
		return "", err
	}
	blankTrailingCommas(buf)
	return string(buf), nil
}

func blankComments(buf []byte) error {
	inString := false
	escape := false

	for i := 0; i < len(buf); i++ {
		ch := buf[i]

		if inString {
			if escape {
				escape = false
				continue
			}
			if ch == '\\' {
				escape = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		if ch == '"' {
			inString = true
			continue
		}

		if ch != '/' || i+1 >= len(buf) {
			continue
		}

		switch buf[i+1] {
		case '/':
			for i < len(buf) && buf[i] != '\n' && buf[i] != '\r' {
				buf[i] = ' '
				i++
			}
		case '*':
			buf[i], buf[i+1] = ' ', ' '
			i += 2
			closed := false
			for i < len(buf) {
				if buf[i] == '*' && i+1 < len(buf) && buf[i+1] == '/' {
					buf[i], buf[i+1] = ' ', ' '
					i++
					closed = true
					break
				}
				if buf[i] != '\n' && buf[i] != '\r' && buf[i] != '\t' {
					buf[i] = ' '
				}
				i++
			}
			if !closed {
				return fmt.Errorf("unterminated block comment in settings")
			}
		}
	}

	if inString {
		return fmt.Errorf("unterminated string in settings")
	}
	return nil
}

func blankTrailingCommas(buf []byte) {
	inString := false
	escape := false

	for i := 0; i < len(buf); i++ {
		ch := buf[i]

		if inString {
			if escape {
				escape = false
				continue
			}
			if ch == '\\' {
				escape = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case ',':
			j := i + 1
			for j < len(buf) && isJSONSpace(buf[j]) {
				j++
			}
			if j < len(buf) && (buf[j] == '}' || buf[j] == ']') {
				buf[i] = ' '
			}
		}
	}
}

func isJSONSpace(ch byte) bool {
	return ch == ' ' || ch == '\n' || ch == '\r' || ch == '\t'
}

func ensureSingleJSONValue(decoder *json.Decoder) error {
	var extra struct{}
	err := decoder.Decode(&extra)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		return fmt.Errorf("multiple JSON values are not allowed")
	}
	return err
}

func wrapJSONDecodeError(content string, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := offsetToLineCol(content, syntaxErr.Offset)
		return fmt.Errorf("line %d column %d: %w", line, col, err)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, col := offsetToLineCol(content, typeErr.Offset)
		return fmt.Errorf("line %d column %d: %w", line, col, err)
	}

	// Unknown-field errors carry no offset; locate the offending key in the
	// source so the report still points at a line.
	if name, ok := unknownFieldName(err); ok {
		if idx := strings.Index(content, `"`+name+`"`); idx >= 0 {
			line, col := offsetToLineCol(content, int64(idx+1))
			return fmt.Errorf("line %d column %d: %w", line, col, err)
		}
	}

	return err
}

// unknownFieldName extracts the key name from a DisallowUnknownFields error.
func unknownFieldName(err error) (string, bool) {
	msg := err.Error()
	const marker = `unknown field "`
	start := strings.Index(msg, marker)
	if start < 0 {
		return "", false
	}
	rest := msg[start+len(marker):]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

func offsetToLineCol(content string, offset int64) (int, int) {
	if offset <= 0 {
		return 1, 1
	}

	limit := int(offset)
	if limit > len(content) {
		limit = len(content)
	}

	line := 1
	col := 1
	for i := 0; i < limit-1; i++ {
		if content[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
