package auth

import (
	"context"
	"testing"
)

func TestClaimsContextRoundTrip(t *testing.T) {
	c := &Claims{UserID: "user-1", Email: "gp@fund.example", Role: RoleOwner}
	ctx := WithClaims(context.Background(), c)
	got := ClaimsFromContext(ctx)
	if got == nil || got.UserID != "user-1" {
		t.Fatalf("Expected claims back from context, got %+v", got)
	}
}

func TestClaimsFromContext_Empty(t *testing.T) {
	if ClaimsFromContext(context.Background()) != nil {
		t.Error("Expected nil claims from empty context")
	}
}
