package audio

import (
	"time"

	"github.com/gopxl/beep/v2"
)

// Clip is an opaque handle to a loaded sound. Its samples are fully buffered
// and immutable, so a clip stays playable while a replacement is loading.
type Clip struct {
	// buffer holds the decoded samples at the mixer rate.
	buffer *beep.Buffer
}

// Duration returns the length of the buffered sound.
func (c *Clip) Duration() time.Duration {
	if c == nil || c.buffer == nil {
		return 0
	}

	return c.buffer.Format().SampleRate.D(c.buffer.Len())
}

// Sink is the capability to load sound resources and play them at a gain
// between 0 and 1. Play is fire-and-forget: it must not block the caller,
// and playback problems are handled inside the implementation.
type Sink interface {
	Load(path string) (*Clip, error)
	Play(clip *Clip, gain float64)
	Close() error
}
