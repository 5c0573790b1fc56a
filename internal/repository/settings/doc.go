// Package settings implements persistence for the beep configuration.
//
// FileStore keeps the settings as a YAML file on disk behind the Store
// interface consumed by the console service. LoadOrCreate covers the first
// run: when no file exists yet it writes the documented defaults and hands
// them back.
package settings
