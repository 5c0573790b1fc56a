// Package beeper implements the controller that plays a sound on a repeating
// schedule with adjustable volume, delay and sound file.
//
// The controller guards its state with a single mutex shared by the command
// side and the timer's fire handler: parameter changes are atomic with
// respect to fires, and after Stop returns no further sound can be produced.
package beeper
