package assistant

import (
	"context"
	"errors"

	"calassist/internal/instrumentation"
	"calassist/internal/logging"
)

// Call is one tool invocation: a declared name plus an argument bag.
type Call struct {
	Name      string
	Arguments map[string]any
}

// Router dispatches calls to registered handlers. Calls are processed
// one at a time; the snapshot and the duplicate cache are only mutated
// from within a call.
type Router struct {
	registry *Registry
	env      *Env
	dup      *DupCache
}

// NewRouter wires a registry to its environment.
func NewRouter(registry *Registry, env *Env) *Router {
	return &Router{registry: registry, env: env, dup: NewDupCache()}
}

// Registry exposes the catalog for the transport layers.
func (r *Router) Registry() *Registry {
	return r.registry
}

// paramOriginalMessage carries the user's utterance into handlers that
// recalculate dates or resolve recipients from it.
const paramOriginalMessage = "originalMessage"

// Execute runs one call. The returned error is non-nil only for an
// unknown operation; every other failure comes back as a structured
// result. originalMessage is the user utterance that produced the call,
// empty when the transport has none.
func (r *Router) Execute(ctx context.Context, call Call, originalMessage string) (*Result, error) {
	spec, ok := r.registry.Get(call.Name)
	if !ok {
		return nil, NewError(ErrUnknownOperation, "unknown operation %q", call.Name)
	}

	args := r.normalize(spec, call.Arguments)
	if originalMessage != "" && argString(args, paramOriginalMessage) == "" {
		args[paramOriginalMessage] = originalMessage
	}

	log := logging.WithTool(r.env.logger(), spec.Name)
	inv := instrumentation.NewToolInvocation(spec.Name).WithAccount(r.env.Account)

	var key string
	if spec.SideEffecting {
		key = spec.dedupeKey(args)
		if cached, ok := r.dup.Get(key); ok {
			log.Info("duplicate call suppressed", logging.Status(logging.StatusSuccess))
			r.env.Metrics.RecordDuplicateSuppression(ctx, spec.Name)
			r.env.Audit.LogToolInvocation(inv.CompleteDeduped())
			copied := *cached
			copied.Cached = true
			return &copied, nil
		}
	}

	result := r.dispatch(ctx, spec, args)

	if spec.SideEffecting && result.OK() {
		r.dup.Put(key, result)
	}

	var errValue error
	if result.Err != nil {
		errValue = result.Err
		log.Warn("tool call failed", logging.Err(result.Err))
	}
	inv.Complete(result.OK(), errValue)
	r.env.Metrics.RecordToolInvocation(ctx, spec.Name, inv.Status(), inv.Duration)
	r.env.Audit.LogToolInvocation(inv)

	return result, nil
}

// dispatch runs the handler, converting panics and plain errors into
// structured results so nothing escapes the router.
func (r *Router) dispatch(ctx context.Context, spec *Spec, args map[string]any) (result *Result) {
	defer func() {
		if rec := recover(); rec != nil {
			result = Failure(NewError(ErrValidation, "operation %s failed: %v", spec.Name, rec))
		}
	}()

	res, err := spec.Handler(ctx, r.env, args)
	if err != nil {
		var structured *Error
		if errors.As(err, &structured) {
			return Failure(structured)
		}
		return Failure(NewError(ErrValidation, "operation %s failed: %v", spec.Name, err))
	}
	if res == nil {
		return Failure(NewError(ErrValidation, "operation %s produced no result", spec.Name))
	}
	return res
}

// normalize applies list coercion to declared list parameters and
// copies the bag so handlers never mutate the caller's map.
func (r *Router) normalize(spec *Spec, args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	for _, p := range spec.Params {
		if p.Type != ParamList {
			continue
		}
		if v, ok := out[p.Name]; ok {
			out[p.Name] = StringList(v)
		}
	}
	return out
}
