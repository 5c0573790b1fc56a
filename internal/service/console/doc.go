// Package console implements the interactive command loop of the bipmap
// binary.
//
// A session loads the persisted settings, starts the beeper and then reads
// commands line by line: volume, delay and sound changes, pause and resume,
// and several spellings of quit. Accepted changes are applied to the running
// beeper first and then written back to the settings file, so the next start
// picks up where the user left off.
//
// Input is consumed on a dedicated goroutine feeding a channel; the dispatch
// loop selects over that channel and the context, so a signal-canceled
// context tears the session down like a quit command would.
package console
