// ABOUTME: Unit tests for principal context propagation helpers
// ABOUTME: Tests WithPrincipal, FromContext, and MustFromContext

package auth

import (
	"context"
	"testing"
)

func TestFromContext_Present(t *testing.T) {
	p := &Principal{
		UserID:   "user-123",
		Username: "alice",
		Role:     "admin",
	}

	ctx := WithPrincipal(context.Background(), p)

	got := FromContext(ctx)
	if got == nil {
		t.Fatal("FromContext() = nil, want principal")
	}
	if got.UserID != "user-123" || got.Username != "alice" || got.Role != "admin" {
		t.Errorf("FromContext() = %+v, want %+v", got, p)
	}
}

func TestFromContext_Absent(t *testing.T) {
	if got := FromContext(context.Background()); got != nil {
		t.Errorf("FromContext() = %+v, want nil", got)
	}
}

func TestMustFromContext_Present(t *testing.T) {
	p := &Principal{UserID: "user-123"}
	ctx := WithPrincipal(context.Background(), p)

	got := MustFromContext(ctx)
	if got.UserID != "user-123" {
		t.Errorf("MustFromContext().UserID = %q, want %q", got.UserID, "user-123")
	}
}

func TestMustFromContext_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustFromContext() should panic without a principal")
		}
	}()

	MustFromContext(context.Background())
}
