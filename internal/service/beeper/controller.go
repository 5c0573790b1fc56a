package beeper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Nanssss/bipmap/internal/audio"
	"github.com/Nanssss/bipmap/internal/logger"
	"github.com/Nanssss/bipmap/internal/timer"
)

// percentScale converts a volume in percent into a linear gain.
const percentScale = 100.0

// Controller owns the repeating beep: the loaded clip, the playback
// parameters and the schedule. All mutations and the timer's fire handler
// are serialized behind one mutex, so a beep can never observe a half-applied
// change and no sound can escape after Stop returns.
type Controller struct {
	// sink plays clips on the audio device.
	sink audio.Sink
	// timer drives onFire once per delay.
	timer *timer.Repeating
	// clock is the time source handed to the timer.
	clock timer.Clock

	// mu protects the mutable state below against the timer goroutine.
	mu sync.Mutex
	// clip is the currently loaded sound.
	clip *audio.Clip
	// soundPath is the file the current clip was loaded from.
	soundPath string
	// volume is the playback volume in percent, 0 to 100.
	volume int
	// delay is the period between fires.
	delay time.Duration
	// paused mutes fires without stopping the schedule.
	paused bool
	// stopped marks the controller terminal and gates fires in flight.
	stopped bool
}

// Status is a point-in-time copy of the controller state for rendering.
type Status struct {
	// SoundPath is the file the current clip was loaded from.
	SoundPath string
	// Volume is the playback volume in percent.
	Volume int
	// Delay is the period between fires.
	Delay time.Duration
	// Paused reports whether fires are currently muted.
	Paused bool
}

// String renders the status line shown at startup and after each change.
func (s Status) String() string {
	return fmt.Sprintf("Volume: %d%% | Delay: %s", s.Volume, s.Delay)
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock substitutes the timer's time source. Used by tests.
func WithClock(clock timer.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// New loads the sound at soundPath through the sink and starts beeping every
// delay at the given volume in percent. A load failure is returned with
// nothing scheduled. Delay and volume arrive pre-validated from the command
// layer.
func New(
	ctx context.Context,
	sink audio.Sink,
	soundPath string,
	delay time.Duration,
	volume int,
	opts ...Option,
) (*Controller, error) {
	clip, err := sink.Load(soundPath)
	if err != nil {
		return nil, fmt.Errorf("load sound %q: %w", soundPath, err)
	}

	c := &Controller{
		sink:      sink,
		clip:      clip,
		soundPath: soundPath,
		volume:    volume,
		delay:     delay,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.timer = timer.New(delay, func() {
		c.onFire()
	}, timer.WithClock(c.clock))
	c.timer.Start()

	logger.DebugKV(ctx, "Beeper started",
		"sound", soundPath,
		"length", clip.Duration().String(),
		"volume", volume,
		"delay", delay.String(),
	)

	return c, nil
}

// onFire is the timer callback. It plays the current clip unless the
// controller is paused or stopped. Playing under the mutex means a fire
// racing with Stop either finishes before Stop returns or never sounds.
func (c *Controller) onFire() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || c.paused {
		return
	}

	c.sink.Play(c.clip, float64(c.volume)/percentScale)
}

// SetVolume stores a new volume in percent. The value arrives pre-validated.
func (c *Controller) SetVolume(ctx context.Context, volume int) {
	c.mu.Lock()
	c.volume = volume
	status := c.statusLocked()
	c.mu.Unlock()

	logger.Info(ctx, status.String())
}

// SetDelay changes the period between fires. The fire already scheduled
// keeps its deadline; the new delay applies from the next one.
func (c *Controller) SetDelay(ctx context.Context, delay time.Duration) {
	c.mu.Lock()
	c.delay = delay
	c.timer.SetInterval(delay)
	status := c.statusLocked()
	c.mu.Unlock()

	logger.Info(ctx, status.String())
}

// SetSound loads the sound at path and swaps it in. On failure the previous
// clip stays active and playable, and the error is returned for reporting.
func (c *Controller) SetSound(ctx context.Context, path string) error {
	clip, err := c.sink.Load(path)
	if err != nil {
		return fmt.Errorf("load sound %q: %w", path, err)
	}

	c.mu.Lock()
	c.clip = clip
	c.soundPath = path
	c.mu.Unlock()

	logger.Infof(ctx, "New sound loaded: %s", path)

	return nil
}

// Pause mutes fires while keeping the schedule running.
// Pausing an already-paused beeper changes nothing.
func (c *Controller) Pause(ctx context.Context) {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()

	logger.Info(ctx, "Beeping paused")
}

// Resume unmutes fires. The next already-scheduled fire plays as normal.
func (c *Controller) Resume(ctx context.Context) {
	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()

	logger.Info(ctx, "Beeping resumed")
}

// Stop is terminal: it cancels the schedule, drops the clip and closes the
// sink. After Stop returns no fire can make a sound. Calling Stop twice is
// safe.
func (c *Controller) Stop(ctx context.Context) {
	c.mu.Lock()

	if c.stopped {
		c.mu.Unlock()
		return
	}

	c.stopped = true
	c.clip = nil
	c.timer.Stop()

	if err := c.sink.Close(); err != nil {
		logger.Warnf(ctx, "Could not close audio device: %v", err)
	}

	c.mu.Unlock()

	logger.Debug(ctx, "Beeper stopped")
}

// Status returns a snapshot of the controller state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.statusLocked()
}

// statusLocked builds the snapshot. Callers must hold mu.
func (c *Controller) statusLocked() Status {
	return Status{
		SoundPath: c.soundPath,
		Volume:    c.volume,
		Delay:     c.delay,
		Paused:    c.paused,
	}
}
