// Package logging provides structured logging helpers built on log/slog.
//
// It defines canonical attribute keys used across the assistant so that
// log lines from the router, the scheduling engine and the remote clients
// can be correlated, plus helpers for anonymizing email addresses before
// they appear in logs.
package logging
