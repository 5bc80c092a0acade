package metadata

import "context"

type scopeKey struct{}

// ProcessScope is the fallback scope used when the context carries none.
// Metadata cached under it lives for the process lifetime until reset.
const ProcessScope = ""

// ContextWithScope attaches an execution-scope identifier to the context,
// typically one per request or unit of work. Metadata is cached per scope.
func ContextWithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFromContext returns the scope identifier attached to the context, or
// ProcessScope when none is set.
func ScopeFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(scopeKey{}).(string); ok {
		return s
	}
	return ProcessScope
}
