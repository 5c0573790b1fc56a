// Package timer provides the repeating schedule that drives the beeps.
//
// Repeating wraps a chain of one-shot timers: every fire arms its successor
// before running the callback, and Stop cancels whichever fire is armed.
// The Clock interface decouples scheduling from wall time so tests can step
// through fires without sleeping.
package timer
