// Package schedule implements the meeting-availability engine: interval
// conflict checks, candidate slot generation over a working-hours window,
// priority ranking of proposals, and aggregate reporting over the event
// snapshot.
//
// Everything here is a pure function of its inputs; the package performs
// no I/O and is deterministic for a fixed snapshot, constraint set and
// clock value.
package schedule
