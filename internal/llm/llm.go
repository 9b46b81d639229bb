// Package llm is the boundary to the external language model: a small
// message/tool-call contract, a langchaingo-backed OpenAI-compatible
// adapter, and the catalog conversion for function calling.
package llm

import (
	"context"
	"encoding/json"

	"github.com/tmc/langchaingo/llms"

	"calassist/internal/assistant"
	"calassist/internal/nlparse"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one turn of conversation exchanged with the model.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// ToolCall is a function call the model asked for. Arguments is the raw
// JSON the model produced.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Reply is one model response: text, tool calls, or both.
type Reply struct {
	Text      string
	ToolCalls []ToolCall
}

// Adapter is the model boundary. Implementations wrap one provider.
type Adapter interface {
	Generate(ctx context.Context, history []Message, tools []llms.Tool) (*Reply, error)
}

// ToolDefs converts the registry catalog into the function-calling
// schema the model expects.
func ToolDefs(specs []*assistant.Spec) []llms.Tool {
	tools := make([]llms.Tool, 0, len(specs))
	for _, spec := range specs {
		tools = append(tools, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  spec.JSONSchema(),
			},
		})
	}
	return tools
}

// DecodeCall parses a tool call's JSON arguments into the router's
// argument bag. Undecodable arguments yield an empty bag rather than an
// error; validation happens at dispatch.
func DecodeCall(tc ToolCall) assistant.Call {
	args := map[string]any{}
	if tc.Arguments != "" {
		if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
			args = map[string]any{}
		}
	}
	return assistant.Call{Name: tc.Name, Arguments: args}
}

// FallbackCalls recovers tool calls written out as plain text, filtered
// to operations the registry actually knows. Used when the model
// returned no structured calls.
func FallbackCalls(text string, registry *assistant.Registry) []assistant.Call {
	var calls []assistant.Call
	for _, pc := range nlparse.ParseCalls(text) {
		if _, ok := registry.Get(pc.Name); !ok {
			continue
		}
		calls = append(calls, assistant.Call{Name: pc.Name, Arguments: pc.Arguments})
	}
	return calls
}
