// Package config defines the persisted beep settings and provides helpers to
// load, validate and save them in YAML format.
//
// A settings file carries three keys: the sound file path, the delay between
// beeps in seconds and the playback volume in percent. Absent keys fall back
// to the documented defaults so a hand-edited file only needs the values the
// user cares about.
package config
