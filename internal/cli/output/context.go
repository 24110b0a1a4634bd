package output

import "context"

// rendererKey is used to store the renderer in a command context.
type rendererKey struct{}

// WithRenderer returns a context carrying the renderer.
func WithRenderer(ctx context.Context, r *Renderer) context.Context {
	return context.WithValue(ctx, rendererKey{}, r)
}

// FromContext returns the renderer stored in the context, or nil when
// none was stored. Callers pick their own fallback streams.
func FromContext(ctx context.Context) *Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*Renderer); ok {
		return r
	}
	return nil
}
