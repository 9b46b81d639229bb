// Package calendar provides the assistant's calendar domain model and its
// boundary to Google Calendar.
//
// The assistant operates on an in-memory Snapshot of events that is
// replaced wholesale on refresh and appended to optimistically on local
// creation. A Google-backed Client implements the Service interface for
// the remote boundary; pure builders produce browser deep-links and ICS
// payloads for the degraded paths that need no API access.
package calendar
