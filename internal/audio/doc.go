// Package audio provides the sound capability behind the beeps: loading a
// sound file into an immutable in-memory clip and playing it at a linear
// gain.
//
// The Sink interface abstracts the audio device so services and tests can
// substitute fakes. SpeakerSink is the production implementation backed by
// the system speaker; it buffers clips fully at load time, so playback never
// touches the filesystem.
package audio
