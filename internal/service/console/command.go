package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Nanssss/bipmap/internal/audio"
	"github.com/Nanssss/bipmap/internal/config"
	"github.com/Nanssss/bipmap/internal/logger"
	"github.com/Nanssss/bipmap/internal/repository/settings"
	"github.com/Nanssss/bipmap/internal/service/beeper"
	"github.com/Nanssss/bipmap/internal/service/instance"
)

// Options contains parameters for the console session.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	// Empty selects the default filename in the working directory.
	ConfigPath string
	// Store overrides the file-backed settings store. Used by tests.
	Store settings.Store
	// Sink overrides the speaker-backed audio sink. Used by tests.
	Sink audio.Sink
	// In is the command source. Defaults to standard input.
	In io.Reader
	// Out receives the banner, prompt and warnings. Defaults to standard output.
	Out io.Writer
}

// errSoundNotFound is returned when a sound path resolves to no file.
var errSoundNotFound = errors.New("sound file not found")

// session holds the collaborators of a single console run.
type session struct {
	store      settings.Store
	sink       audio.Sink
	controller *beeper.Controller
	cfg        *config.Config
	in         io.Reader
	out        io.Writer
}

// Run starts the beeper from the persisted settings and serves commands until
// the user quits, input ends or the context is canceled. The returned error
// is non-nil only for startup failures; a finished session returns nil.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "bipmap")

	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}

	return s.loop(ctx)
}

// newSession prints the banner, loads the settings, checks the environment
// and starts the beeper.
func newSession(ctx context.Context, opts *Options) (*session, error) {
	s := &session{
		store: opts.Store,
		sink:  opts.Sink,
		in:    opts.In,
		out:   opts.Out,
	}

	if s.in == nil {
		s.in = os.Stdin
	}

	if s.out == nil {
		s.out = os.Stdout
	}

	if s.store == nil {
		s.store = settings.NewFileStore(opts.ConfigPath)
	}

	printBanner(s.out, settingsDisplayPath(opts))

	cfg, err := settings.LoadOrCreate(ctx, s.store)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	s.cfg = cfg

	warnOnDuplicateInstance(ctx)

	soundPath, err := resolveSoundPath(cfg.Sound)
	if err != nil {
		return nil, fmt.Errorf("sound configured in %s: %w", settingsDisplayPath(opts), err)
	}

	printUsage(s.out)

	if s.sink == nil {
		sink, err := audio.NewSpeakerSink()
		if err != nil {
			return nil, fmt.Errorf("open audio device: %w", err)
		}

		s.sink = sink
	}

	controller, err := beeper.New(ctx, s.sink, soundPath, cfg.DelayDuration(), cfg.Volume)
	if err != nil {
		_ = s.sink.Close()

		return nil, fmt.Errorf("start beeper: %w", err)
	}

	s.controller = controller

	logger.Info(ctx, controller.Status().String())

	return s, nil
}

// loop reads commands until quit, end of input or context cancellation.
func (s *session) loop(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := s.readLines(ctx)

	for {
		printPrompt(s.out)

		select {
		case <-ctx.Done():
			s.shutdown(ctx)

			return nil
		case line, ok := <-lines:
			if !ok {
				// End of input behaves like quit.
				s.shutdown(ctx)

				return nil
			}

			if quit := s.dispatch(ctx, line); quit {
				s.shutdown(ctx)

				return nil
			}
		}
	}
}

// readLines feeds input lines into a channel from a dedicated goroutine so
// the dispatch loop can watch the context at the same time. The goroutine can
// stay blocked in Read until the process exits; stdin has no portable
// cancellation.
func (s *session) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			logger.Warnf(ctx, "Could not read commands: %v", err)
		}
	}()

	return lines
}

// dispatch parses and executes one command line. It reports whether the
// session should end.
func (s *session) dispatch(ctx context.Context, line string) bool {
	cmd, err := parse(line)
	if err != nil {
		printWarning(s.out, warningFor(err))

		return false
	}

	switch cmd.kind {
	case commandEmpty:
	case commandSetVolume:
		s.controller.SetVolume(ctx, cmd.volume)
		s.cfg.Volume = cmd.volume
		s.persist(ctx)
	case commandSetDelay:
		s.controller.SetDelay(ctx, cmd.delay)
		s.cfg.Delay = int(cmd.delay / time.Second)
		s.persist(ctx)
	case commandSetSound:
		s.setSound(ctx, cmd.sound)
	case commandPause:
		s.controller.Pause(ctx)
	case commandResume:
		s.controller.Resume(ctx)
	case commandQuit:
		return true
	case commandUnknown:
		printWarning(s.out, "Invalid command. Try:")
		printUsage(s.out)
	}

	return false
}

// setSound resolves, loads and persists a replacement sound. On any failure
// the previous sound stays active.
func (s *session) setSound(ctx context.Context, path string) {
	resolved, err := resolveSoundPath(path)
	if err != nil {
		printWarning(s.out, "Invalid sound filename/path.")

		return
	}

	if err = s.controller.SetSound(ctx, resolved); err != nil {
		printWarning(s.out, fmt.Sprintf("Error loading sound '%s': %v", path, err))

		return
	}

	s.cfg.Sound = path
	s.persist(ctx)
}

// persist writes the settings after an accepted change. A persistence failure
// is reported and the session continues with the in-memory values.
func (s *session) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.cfg); err != nil {
		logger.Warnf(ctx, "Could not save settings: %v", err)
	}
}

// shutdown stops the beeper and says goodbye.
func (s *session) shutdown(ctx context.Context) {
	s.controller.Stop(ctx)
	printFarewell(s.out)
}

// warnOnDuplicateInstance reports when another bipmap process is running,
// since two beepers sharing one speaker confuse the cadence.
func warnOnDuplicateInstance(ctx context.Context) {
	duplicate, err := instance.OtherRunning()
	if err != nil {
		logger.Debugf(ctx, "Could not scan for running instances: %v", err)

		return
	}

	if duplicate {
		logger.Warn(ctx, "Another bipmap instance appears to be running")
	}
}

// resolveSoundPath returns a path whose file exists, trying the path as given
// first and then relative to the executable's directory, where an installed
// default sound would live.
func resolveSoundPath(path string) (string, error) {
	if fileExists(path) {
		return path, nil
	}

	if !filepath.IsAbs(path) {
		if executable, err := os.Executable(); err == nil {
			candidate := filepath.Join(filepath.Dir(executable), path)
			if fileExists(candidate) {
				return candidate, nil
			}
		}
	}

	return "", fmt.Errorf("'%s': %w", path, errSoundNotFound)
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

// settingsDisplayPath names the settings file for messages.
func settingsDisplayPath(opts *Options) string {
	if opts.ConfigPath != "" {
		return opts.ConfigPath
	}

	return config.DefaultConfigFilename
}
