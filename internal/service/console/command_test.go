package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Nanssss/bipmap/internal/audio"
	"github.com/Nanssss/bipmap/internal/config"
	"github.com/Nanssss/bipmap/internal/repository/settings"
)

// memoryStore is an in-memory settings store for session tests.
type memoryStore struct {
	mu      sync.Mutex
	cfg     *config.Config
	saveErr error
	saves   int
}

func (m *memoryStore) Load(_ context.Context) (*config.Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg == nil {
		return nil, settings.ErrNotFound
	}

	return m.cfg.Clone(), nil
}

func (m *memoryStore) Save(_ context.Context, cfg *config.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}

	m.cfg = cfg.Clone()
	m.saves++

	return nil
}

func (m *memoryStore) saved() (*config.Config, int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cfg.Clone(), m.saves
}

var errDecodeFailed = errors.New("decode failed")

// fakeSink is an in-memory audio.Sink recording activity for assertions.
type fakeSink struct {
	mu sync.Mutex
	// failing contains paths whose Load calls fail.
	failing map[string]bool
	closed  bool
}

func newFakeSink() *fakeSink {
	return &fakeSink{failing: make(map[string]bool)}
}

func (f *fakeSink) Load(path string) (*audio.Clip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing[path] {
		return nil, errDecodeFailed
	}

	return &audio.Clip{}, nil
}

func (f *fakeSink) Play(*audio.Clip, float64) {}

func (f *fakeSink) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true

	return nil
}

func (f *fakeSink) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closed
}

// testFixture bundles a runnable session over fakes and temp files.
type testFixture struct {
	store *memoryStore
	sink  *fakeSink
	out   *bytes.Buffer
	sound string
	dir   string
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()

	dir := t.TempDir()
	sound := filepath.Join(dir, "beep.wav")
	require.NoError(t, os.WriteFile(sound, []byte("fake"), 0o600))

	return &testFixture{
		store: &memoryStore{cfg: &config.Config{Sound: sound, Delay: 7, Volume: 20}},
		sink:  newFakeSink(),
		out:   &bytes.Buffer{},
		sound: sound,
		dir:   dir,
	}
}

// run executes a scripted session and returns Run's error.
func (f *testFixture) run(t *testing.T, input string) error {
	t.Helper()

	return Run(context.Background(), &Options{
		Store: f.store,
		Sink:  f.sink,
		In:    strings.NewReader(input),
		Out:   f.out,
	})
}

// TestRun_QuitEndsSession covers banner, usage, prompt and farewell on a
// plain quit.
func TestRun_QuitEndsSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	require.NoError(t, f.run(t, "quit\n"))
	require.True(t, f.sink.isClosed())

	output := f.out.String()
	require.Contains(t, output, "Available commands:")
	require.Contains(t, output, "Stay aware of the minimap")
	require.Contains(t, output, "> ")
	require.Contains(t, output, "Exiting program.")
}

// TestRun_VolumeCommandPersists checks accepted volumes land in the store.
func TestRun_VolumeCommandPersists(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	require.NoError(t, f.run(t, "-v 0\n-v 100\nquit\n"))

	cfg, saves := f.store.saved()
	require.Equal(t, 100, cfg.Volume)
	require.Equal(t, 2, saves)
}

// TestRun_InvalidVolumeRejected warns and leaves the store untouched.
func TestRun_InvalidVolumeRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	require.NoError(t, f.run(t, "-v 101\n-v -1\n-v abc\nquit\n"))

	cfg, saves := f.store.saved()
	require.Equal(t, 20, cfg.Volume)
	require.Equal(t, 0, saves)
	require.Contains(t, f.out.String(), "Invalid volume value.")
}

// TestRun_DelayCommandPersists checks accepted delays land in the store.
func TestRun_DelayCommandPersists(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	require.NoError(t, f.run(t, "-d 3\nquit\n"))

	cfg, saves := f.store.saved()
	require.Equal(t, 3, cfg.Delay)
	require.Equal(t, 1, saves)
}

// TestRun_InvalidDelayRejected warns and leaves the store untouched.
func TestRun_InvalidDelayRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	require.NoError(t, f.run(t, "-d 0\n-d -2\nquit\n"))

	cfg, saves := f.store.saved()
	require.Equal(t, 7, cfg.Delay)
	require.Equal(t, 0, saves)
	require.Contains(t, f.out.String(), "Invalid delay value.")
}

// TestRun_SoundCommandPersists swaps to an existing file and stores the path
// as the user typed it.
func TestRun_SoundCommandPersists(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	other := filepath.Join(f.dir, "horn.wav")
	require.NoError(t, os.WriteFile(other, []byte("fake"), 0o600))

	require.NoError(t, f.run(t, "-s "+other+"\nquit\n"))

	cfg, saves := f.store.saved()
	require.Equal(t, other, cfg.Sound)
	require.Equal(t, 1, saves)
}

// TestRun_MissingSoundRejected keeps the old sound when the path is absent.
func TestRun_MissingSoundRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	require.NoError(t, f.run(t, "-s "+filepath.Join(f.dir, "nope.wav")+"\nquit\n"))

	cfg, saves := f.store.saved()
	require.Equal(t, f.sound, cfg.Sound)
	require.Equal(t, 0, saves)
	require.Contains(t, f.out.String(), "Invalid sound filename/path.")
}

// TestRun_UndecodableSoundRejected keeps the old sound when loading fails.
func TestRun_UndecodableSoundRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	other := filepath.Join(f.dir, "broken.ogg")
	require.NoError(t, os.WriteFile(other, []byte("xx"), 0o600))
	f.sink.failing[other] = true

	require.NoError(t, f.run(t, "-s "+other+"\nquit\n"))

	cfg, saves := f.store.saved()
	require.Equal(t, f.sound, cfg.Sound)
	require.Equal(t, 0, saves)
	require.Contains(t, f.out.String(), "Error loading sound")
}

// TestRun_PauseResumeAccepted runs the toggles without warnings.
func TestRun_PauseResumeAccepted(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	require.NoError(t, f.run(t, "pause\nresume\nquit\n"))
	require.NotContains(t, f.out.String(), "Invalid")
}

// TestRun_UnknownCommandPrintsUsage reprints the command reference.
func TestRun_UnknownCommandPrintsUsage(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	require.NoError(t, f.run(t, "wat\nquit\n"))

	output := f.out.String()
	require.Contains(t, output, "Invalid command. Try:")
	require.Equal(t, 2, strings.Count(output, "Available commands:"))
}

// TestRun_EOFActsAsQuit ends the session cleanly when input runs out.
func TestRun_EOFActsAsQuit(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	require.NoError(t, f.run(t, "-v 55\n"))
	require.True(t, f.sink.isClosed())
	require.Contains(t, f.out.String(), "Exiting program.")

	cfg, _ := f.store.saved()
	require.Equal(t, 55, cfg.Volume)
}

// TestRun_QuitVariants terminates on every spelling.
func TestRun_QuitVariants(t *testing.T) {
	t.Parallel()

	for _, variant := range []string{"quit", "quit()", "exit", "exit()", "stop", "stop()", "q"} {
		f := newFixture(t)

		require.NoError(t, f.run(t, variant+"\n"), variant)
		require.True(t, f.sink.isClosed(), variant)
	}
}

// TestRun_ContextCancelStopsSession tears down like quit when the context is
// canceled while input is idle.
func TestRun_ContextCancelStopsSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	reader, writer := io.Pipe()
	t.Cleanup(func() {
		_ = writer.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	err := Run(ctx, &Options{
		Store: f.store,
		Sink:  f.sink,
		In:    reader,
		Out:   f.out,
	})
	require.NoError(t, err)
	require.True(t, f.sink.isClosed())
	require.Contains(t, f.out.String(), "Exiting program.")
}

// TestRun_PersistFailureKeepsSessionAlive warns but keeps serving commands
// when the settings cannot be written.
func TestRun_PersistFailureKeepsSessionAlive(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.store.saveErr = errors.New("disk full")

	require.NoError(t, f.run(t, "-v 50\n-d 2\nquit\n"))
	require.True(t, f.sink.isClosed())
}

// TestRun_MissingConfiguredSoundFails makes startup fail before any beeping.
func TestRun_MissingConfiguredSoundFails(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.store.cfg.Sound = filepath.Join(f.dir, "ghost.wav")

	err := f.run(t, "quit\n")
	require.ErrorIs(t, err, errSoundNotFound)
}

// TestRun_UndecodableConfiguredSoundFails propagates the load error and
// releases the audio device.
func TestRun_UndecodableConfiguredSoundFails(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.sink.failing[f.sound] = true

	err := f.run(t, "quit\n")
	require.ErrorIs(t, err, errDecodeFailed)
	require.True(t, f.sink.isClosed())
}

// TestRun_FirstRunWritesDefaults creates the default settings on first start.
func TestRun_FirstRunWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultSound), []byte("fake"), 0o600))
	t.Chdir(dir)

	store := &memoryStore{}
	sink := newFakeSink()
	out := &bytes.Buffer{}

	require.NoError(t, Run(context.Background(), &Options{
		Store: store,
		Sink:  sink,
		In:    strings.NewReader("quit\n"),
		Out:   out,
	}))

	cfg, saves := store.saved()
	require.Equal(t, config.Default(), cfg)
	require.Equal(t, 1, saves)
}

// TestResolveSoundPath_Missing rejects absent files and directories.
func TestResolveSoundPath_Missing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := resolveSoundPath(filepath.Join(dir, "absent.wav"))
	require.ErrorIs(t, err, errSoundNotFound)

	// A directory is not a playable file.
	_, err = resolveSoundPath(dir)
	require.ErrorIs(t, err, errSoundNotFound)
}

// TestResolveSoundPath_ExecutableDirFallback finds sounds installed next to
// the binary.
func TestResolveSoundPath_ExecutableDirFallback(t *testing.T) {
	t.Parallel()

	executable, err := os.Executable()
	require.NoError(t, err)

	name := "bipmap-test-fallback.wav"
	full := filepath.Join(filepath.Dir(executable), name)
	require.NoError(t, os.WriteFile(full, []byte("fake"), 0o600))

	t.Cleanup(func() {
		_ = os.Remove(full)
	})

	resolved, err := resolveSoundPath(name)
	require.NoError(t, err)
	require.Equal(t, full, resolved)
}
