package console

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Nanssss/bipmap/internal/config"
)

// commandKind enumerates the commands the console understands.
type commandKind int

const (
	// commandUnknown marks input that matches no known command.
	commandUnknown commandKind = iota
	// commandEmpty marks blank input, which is silently ignored.
	commandEmpty
	// commandSetVolume carries a validated volume in percent.
	commandSetVolume
	// commandSetDelay carries a validated delay.
	commandSetDelay
	// commandSetSound carries a sound path, not yet checked against the filesystem.
	commandSetSound
	// commandPause mutes the beeps.
	commandPause
	// commandResume unmutes the beeps.
	commandResume
	// commandQuit ends the session.
	commandQuit
)

// command is the validated result of parsing one input line.
type command struct {
	kind   commandKind
	volume int
	delay  time.Duration
	sound  string
}

var (
	// errInvalidVolume rejects volumes that are not integers in 0-100.
	errInvalidVolume = errors.New("invalid volume value")
	// errInvalidDelay rejects delays that are not positive integers.
	errInvalidDelay = errors.New("invalid delay value")
	// errMissingSound rejects a sound command without a path argument.
	errMissingSound = errors.New("missing sound file path")
)

// quitWords are the inputs that end the session, including the parenthesized
// forms users type out of habit.
//
//nolint:gochecknoglobals // Immutable lookup table.
var quitWords = map[string]struct{}{
	"quit":   {},
	"quit()": {},
	"exit":   {},
	"exit()": {},
	"stop":   {},
	"stop()": {},
	"q":      {},
}

// parse classifies one input line and validates its argument before any
// state is touched. Whether a sound path actually exists is checked later by
// the dispatcher against the filesystem.
func parse(line string) (command, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return command{kind: commandEmpty}, nil
	}

	if _, ok := quitWords[strings.ToLower(trimmed)]; ok {
		return command{kind: commandQuit}, nil
	}

	switch strings.Fields(trimmed)[0] {
	case "-v":
		return parseVolume(trimmed)
	case "-d":
		return parseDelay(trimmed)
	case "-s":
		return parseSound(trimmed)
	}

	switch strings.ToLower(trimmed) {
	case "pause":
		return command{kind: commandPause}, nil
	case "resume":
		return command{kind: commandResume}, nil
	default:
		return command{kind: commandUnknown}, nil
	}
}

// parseVolume accepts an integer percentage between 0 and 100 inclusive.
func parseVolume(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return command{}, errInvalidVolume
	}

	volume, err := strconv.Atoi(fields[1])
	if err != nil || volume < config.MinVolume || volume > config.MaxVolume {
		return command{}, errInvalidVolume
	}

	return command{kind: commandSetVolume, volume: volume}, nil
}

// parseDelay accepts a positive integer number of seconds.
func parseDelay(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return command{}, errInvalidDelay
	}

	seconds, err := strconv.Atoi(fields[1])
	if err != nil || seconds <= 0 {
		return command{}, errInvalidDelay
	}

	return command{kind: commandSetDelay, delay: time.Duration(seconds) * time.Second}, nil
}

// parseSound keeps everything after the flag as the path, so sound files may
// live in directories with spaces in their names.
func parseSound(line string) (command, error) {
	path := strings.TrimSpace(strings.TrimPrefix(line, "-s"))
	if path == "" {
		return command{}, errMissingSound
	}

	return command{kind: commandSetSound, sound: path}, nil
}

// warningFor maps a validation error onto the message shown to the user.
func warningFor(err error) string {
	switch {
	case errors.Is(err, errInvalidVolume):
		return "Invalid volume value."
	case errors.Is(err, errInvalidDelay):
		return "Invalid delay value."
	case errors.Is(err, errMissingSound):
		return "Invalid sound filename/path."
	default:
		return err.Error()
	}
}
