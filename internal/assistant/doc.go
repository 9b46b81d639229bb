// Package assistant implements the tool-dispatch core: a registry of
// operation specs, argument normalization, duplicate-call suppression
// and a router that maps a named call with an argument bag to a typed
// handler. The same router backs both the interactive chat loop and the
// MCP server.
package assistant
