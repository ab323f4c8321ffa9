// Package session threads the acting provider through request handling as an
// explicit value instead of ambient global state.
package session

import "context"

// CurrentProvider identifies the professional whose calendar is being acted on.
type CurrentProvider struct {
	ID   string
	Name string
}

// Valid reports whether the provider carries a usable identity.
func (p CurrentProvider) Valid() bool {
	return p.ID != ""
}

type ctxKey string

const providerKey ctxKey = "vetcare.provider"

// WithProvider stores the current provider in context.
func WithProvider(ctx context.Context, p CurrentProvider) context.Context {
	return context.WithValue(ctx, providerKey, p)
}

// ProviderFromContext extracts the current provider if present.
func ProviderFromContext(ctx context.Context) (CurrentProvider, bool) {
	val := ctx.Value(providerKey)
	if val == nil {
		return CurrentProvider{}, false
	}
	p, ok := val.(CurrentProvider)
	return p, ok && p.Valid()
}
