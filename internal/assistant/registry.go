package assistant

import (
	"context"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
)

// ParamType is the declared type of a tool parameter.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamNumber  ParamType = "number"
	ParamBoolean ParamType = "boolean"
	// ParamList parameters go through StringList normalization before
	// dispatch.
	ParamList ParamType = "list"
)

// Param describes one parameter of a tool.
type Param struct {
	Name        string
	Description string
	Type        ParamType
	Required    bool
	Enum        []string
}

// Handler executes one tool call against the shared environment.
type Handler func(ctx context.Context, env *Env, args map[string]any) (*Result, error)

// Spec describes a registered operation: its published schema, its
// handler, and how duplicate calls to it are recognized.
type Spec struct {
	Name        string
	Description string
	Params      []Param

	// SideEffecting operations are duplicate-suppressed.
	SideEffecting bool

	// DedupeArgs selects the semantically relevant argument subset
	// hashed for duplicate detection. Nil means all arguments except
	// the original user message.
	DedupeArgs func(args map[string]any) map[string]any

	Handler Handler
}

// dedupeKey hashes the subset of arguments that define call equivalence.
func (s *Spec) dedupeKey(args map[string]any) string {
	subset := args
	if s.DedupeArgs != nil {
		subset = s.DedupeArgs(args)
	} else {
		subset = map[string]any{}
		for k, v := range args {
			if k == paramOriginalMessage {
				continue
			}
			subset[k] = v
		}
	}
	return CallKey(s.Name, subset)
}

// MCPTool converts the spec into an MCP tool declaration. List
// parameters are published as comma-separated strings; normalization
// accepts the other encodings anyway.
func (s *Spec) MCPTool() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(s.Description)}
	for _, p := range s.Params {
		var propOpts []mcp.PropertyOption
		desc := p.Description
		if p.Type == ParamList {
			desc += " (comma-separated)"
		}
		propOpts = append(propOpts, mcp.Description(desc))
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		if len(p.Enum) > 0 {
			propOpts = append(propOpts, mcp.Enum(p.Enum...))
		}

		switch p.Type {
		case ParamNumber:
			opts = append(opts, mcp.WithNumber(p.Name, propOpts...))
		case ParamBoolean:
			opts = append(opts, mcp.WithBoolean(p.Name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		}
	}
	return mcp.NewTool(s.Name, opts...)
}

// JSONSchema renders the parameter schema in the JSON-schema shape the
// LLM function-calling boundary expects.
func (s *Spec) JSONSchema() map[string]any {
	properties := map[string]any{}
	var required []string
	for _, p := range s.Params {
		prop := map[string]any{"description": p.Description}
		switch p.Type {
		case ParamNumber:
			prop["type"] = "number"
		case ParamBoolean:
			prop["type"] = "boolean"
		case ParamList:
			prop["type"] = "array"
			prop["items"] = map[string]any{"type": "string"}
		default:
			prop["type"] = "string"
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		properties[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Registry is the tool catalog.
type Registry struct {
	specs map[string]*Spec
}

// NewRegistry returns an empty catalog.
func NewRegistry() *Registry {
	return &Registry{specs: map[string]*Spec{}}
}

// Register adds a spec, replacing any previous one with the same name.
func (r *Registry) Register(spec *Spec) {
	r.specs[spec.Name] = spec
}

// Get looks up a spec by name.
func (r *Registry) Get(name string) (*Spec, bool) {
	spec, ok := r.specs[name]
	return spec, ok
}

// Specs returns all specs in name order.
func (r *Registry) Specs() []*Spec {
	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*Spec, 0, len(names))
	for _, name := range names {
		out = append(out, r.specs[name])
	}
	return out
}
