// Package nlparse contains small natural-language helpers that backstop
// the language model: recomputing dates the model resolved incorrectly
// and extracting tool calls the model emitted as plain text.
package nlparse
