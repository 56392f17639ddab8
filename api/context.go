package api

import (
	"context"

	"github.com/rpupo63/student-showcase-backend/services"
)

type keyType string

const claimsKey keyType = "claims"

// ctxWithClaims attaches the verified token claims to the context
func ctxWithClaims(ctx context.Context, claims *services.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// claimsFromCtx retrieves the verified token claims, or nil when the
// request was not authenticated.
func claimsFromCtx(ctx context.Context) *services.Claims {
	if claims, ok := ctx.Value(claimsKey).(*services.Claims); ok {
		return claims
	}
	return nil
}
