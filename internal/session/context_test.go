package session

import (
	"context"
	"testing"
)

func TestProviderRoundTrip(t *testing.T) {
	ctx := WithProvider(context.Background(), CurrentProvider{ID: "dr-1", Name: "Dr. Ayala"})

	p, ok := ProviderFromContext(ctx)
	if !ok {
		t.Fatal("expected provider in context")
	}
	if p.ID != "dr-1" || p.Name != "Dr. Ayala" {
		t.Errorf("got %+v", p)
	}
}

func TestProviderMissing(t *testing.T) {
	if _, ok := ProviderFromContext(context.Background()); ok {
		t.Error("expected no provider in empty context")
	}
}

func TestProviderEmptyIDInvalid(t *testing.T) {
	ctx := WithProvider(context.Background(), CurrentProvider{Name: "nameless"})
	if _, ok := ProviderFromContext(ctx); ok {
		t.Error("provider without an id should not be usable")
	}
}
