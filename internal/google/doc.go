// Package google handles OAuth2 token storage and retrieval for the
// Google Calendar API.
//
// The interactive sign-in flow itself is out of scope for the assistant;
// this package only models the boundary: a TokenProvider that yields a
// token for an account, with a file-based default implementation that
// reads tokens cached under the user cache directory.
package google
