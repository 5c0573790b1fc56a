package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	// mixerRate is the sample rate the speaker mixes at. Clips recorded at
	// other rates are resampled to it during load.
	mixerRate beep.SampleRate = 44100

	// mixerChannels and mixerPrecision describe the buffered sample layout.
	mixerChannels  = 2
	mixerPrecision = 2

	// speakerBufferLength is the duration of the speaker's internal buffer.
	// Smaller values reduce playback latency at the cost of stutter.
	speakerBufferLength = time.Second / 10

	// resampleQuality balances resampling fidelity against CPU cost.
	resampleQuality = 4

	// volumeBase is the exponent base mapping linear gain onto the
	// logarithmic scale used by the volume effect.
	volumeBase = 2
)

// ErrUnsupportedFormat is returned when a sound file's extension matches no
// known decoder.
var ErrUnsupportedFormat = errors.New("unsupported sound format")

// SpeakerSink plays clips through the default audio device. A process holds
// at most one SpeakerSink because the underlying speaker is process-global.
type SpeakerSink struct {
	// closeOnce guards the speaker teardown.
	closeOnce sync.Once
}

// NewSpeakerSink initialises the audio device at the mixer rate.
// Construction fails when no playback device is available.
func NewSpeakerSink() (*SpeakerSink, error) {
	if err := speaker.Init(mixerRate, mixerRate.N(speakerBufferLength)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	return &SpeakerSink{}, nil
}

// Load reads, decodes and fully buffers the sound file at path. The decoder
// is chosen by file extension: .wav, .mp3, .flac and .ogg are supported.
func (s *SpeakerSink) Load(path string) (*Clip, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open sound file: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	buffer, err := decodeBuffer(file, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &Clip{buffer: buffer}, nil
}

// Play mixes the clip into the speaker output at the given gain.
// It never blocks: the speaker consumes the samples on its own goroutine.
func (s *SpeakerSink) Play(clip *Clip, gain float64) {
	if clip == nil || clip.buffer == nil {
		return
	}

	streamer := clip.buffer.Streamer(0, clip.buffer.Len())
	speaker.Play(volumeStreamer(streamer, gain))
}

// Close drops any playing sounds and releases the audio device.
// It is safe to call more than once.
func (s *SpeakerSink) Close() error {
	s.closeOnce.Do(func() {
		speaker.Clear()
		speaker.Close()
	})

	return nil
}

// decodeBuffer decodes r according to the file extension and returns the
// samples fully buffered at the mixer rate.
func decodeBuffer(r io.Reader, ext string) (*beep.Buffer, error) {
	var (
		streamer beep.Streamer
		format   beep.Format
		err      error
	)

	switch strings.ToLower(ext) {
	case ".wav":
		streamer, format, err = wav.Decode(r)
	case ".mp3":
		streamer, format, err = mp3.Decode(r)
	case ".flac":
		streamer, format, err = flac.Decode(r)
	case ".ogg", ".oga":
		streamer, format, err = vorbis.Decode(r)
	default:
		return nil, fmt.Errorf("%q: %w", ext, ErrUnsupportedFormat)
	}

	if err != nil {
		return nil, err
	}

	if format.SampleRate != mixerRate {
		streamer = beep.Resample(resampleQuality, format.SampleRate, mixerRate, streamer)
	}

	buffer := beep.NewBuffer(beep.Format{
		SampleRate:  mixerRate,
		NumChannels: mixerChannels,
		Precision:   mixerPrecision,
	})
	buffer.Append(streamer)

	return buffer, nil
}

// volumeStreamer wraps s so it plays at a linear gain in [0, 1]. The gain is
// clamped into range; zero yields silence rather than a divergent logarithm.
func volumeStreamer(s beep.Streamer, gain float64) *effects.Volume {
	if gain < 0 {
		gain = 0
	}

	if gain > 1 {
		gain = 1
	}

	volume := &effects.Volume{
		Streamer: s,
		Base:     volumeBase,
		Silent:   gain == 0,
	}

	if gain > 0 {
		volume.Volume = math.Log2(gain)
	}

	return volume
}
