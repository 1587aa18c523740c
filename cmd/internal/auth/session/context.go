package session

import "context"

type accessorKey struct{}

// NewContext returns a copy of ctx carrying a.
func NewContext(ctx context.Context, a *Accessor) context.Context {
	return context.WithValue(ctx, accessorKey{}, a)
}

// FromContext returns the Accessor carried by ctx, if any.
func FromContext(ctx context.Context) (*Accessor, bool) {
	if ctx == nil {
		return nil, false
	}
	a, ok := ctx.Value(accessorKey{}).(*Accessor)
	return a, ok && a != nil
}

// Use returns the session view of the Accessor in ctx.
// It panics with ErrNoProvider when ctx carries none: that is a wiring bug, not a runtime condition.
func Use(ctx context.Context) View {
	a, ok := FromContext(ctx)
	if !ok {
		panic(ErrNoProvider)
	}
	return a.Use()
}
