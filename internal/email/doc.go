// Package email resolves meeting recipients from conversational context
// and composes invitation drafts with Gmail and mailto compose links.
package email
