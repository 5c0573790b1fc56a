// Package instance detects other running copies of the binary by scanning
// the process table. The console uses it to warn when two beepers would
// overlap their schedules.
package instance
