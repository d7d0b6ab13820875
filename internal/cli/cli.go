// Package cli parses the vibemic command line.
package cli

import (
	"errors"
	"fmt"
	"strings"
)

type Command string

const (
	CommandRun     Command = "run"
	CommandToggle  Command = "toggle"
	CommandStop    Command = "stop"
	CommandCancel  Command = "cancel"
	CommandStatus  Command = "status"
	CommandDevices Command = "devices"
	CommandDoctor  Command = "doctor"
	CommandVersion Command = "version"
	CommandHelp    Command = "help"
)

var validCommands = map[Command]struct{}{
	CommandRun:     {},
	CommandToggle:  {},
	CommandStop:    {},
	CommandCancel:  {},
	CommandStatus:  {},
	CommandDevices: {},
	CommandDoctor:  {},
	CommandVersion: {},
	CommandHelp:    {},
}

// Parsed is the decoded command line. Override fields are empty when the
// matching flag was not given.
type Parsed struct {
	Command      Command
	SettingsPath string
	Model        string
	Hotkey       string
	Mode         string
	Device       string
	ShowHelp     bool
}

func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}

	takeValue := func(i *int, flag string) (string, error) {
		*i++
		if *i >= len(args) {
			return "", fmt.Errorf("%s requires a value", flag)
		}
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
		case "-s", "--settings":
			value, err := takeValue(&i, arg)
			if err != nil {
				return Parsed{}, errors.New("--settings requires a path")
			}
			parsed.SettingsPath = value
		case "-m", "--model":
			value, err := takeValue(&i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.Model = value
		case "-k", "--hotkey":
			value, err := takeValue(&i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.Hotkey = value
		case "--mode":
			value, err := takeValue(&i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.Mode = value
		case "-d", "--device":
			value, err := takeValue(&i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.Device = value
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			cmd := Command(arg)
			if _, ok := validCommands[cmd]; !ok {
				return Parsed{}, fmt.Errorf("unknown command: %s", arg)
			}

			parsed.Command = cmd
			parsed.ShowHelp = cmd == CommandHelp
			if i != len(args)-1 {
				return Parsed{}, fmt.Errorf("unexpected arguments after command %q", arg)
			}
		}
	}

	return parsed, nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [flags] <command>

Commands:
  run       Run the dictation daemon (hotkey listener + IPC server)
  toggle    Start recording or stop+commit when already recording
  stop      Stop active recording and commit transcript
  cancel    Cancel active recording and discard transcript
  status    Print the daemon's current state
  devices   List available input devices
  doctor    Run settings and environment checks
  version   Print version information
  help      Show this help

Flags:
  -s, --settings PATH   Settings file path (default: $XDG_CONFIG_HOME/vibemic/settings.json5)
  -m, --model NAME      Override whisper model (tiny|base|small|medium|large)
  -k, --hotkey SPEC     Override the record hotkey (e.g. "ctrl+shift+d")
      --mode MODE       Override activation mode (push|toggle)
  -d, --device NAME     Override the input device
  -h, --help            Show help
      --version         Show version
`, binaryName)
}
