package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/rbac"
	"github.com/aussiebroadwan/treasury/internal/treasury/service"
	"github.com/aussiebroadwan/treasury/pkg/httpx"
	"github.com/aussiebroadwan/treasury/pkg/jwtx"
	"github.com/aussiebroadwan/treasury/pkg/slogx"
	"github.com/aussiebroadwan/treasury/pkg/treasurysdk"
)

type actorKey struct{}

// ActorMiddleware resolves the authenticated subject into an AuthContext
// holding the user's active roles. Roles are read per request so a revoked
// grant takes effect immediately, whatever the token's lifetime.
func ActorMiddleware(roles *service.RolesService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			userID, ok := httpx.UserIDFromContext(ctx)
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, treasurysdk.ErrorCodeInvalidToken, "missing subject")
				return
			}

			actor, err := roles.AuthContextFor(ctx, userID)
			if errors.Is(err, service.ErrNotFound) {
				httpx.WriteError(w, http.StatusUnauthorized, treasurysdk.ErrorCodeInvalidToken, "unknown subject")
				return
			}
			if err != nil {
				writeServiceError(w, r, err)
				return
			}

			ctx = context.WithValue(ctx, actorKey{}, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// actorFrom returns the caller placed in the context by ActorMiddleware. A
// missing actor is an empty AuthContext, which is denied everything.
func actorFrom(ctx context.Context) rbac.AuthContext {
	a, _ := ctx.Value(actorKey{}).(rbac.AuthContext)
	return a
}

// tokenIssuer mints access tokens for login and bootstrap.
type tokenIssuer struct {
	signer jwtx.Signer
	issuer string
	ttl    time.Duration
}

func (r *Router) newTokenIssuer() tokenIssuer {
	return tokenIssuer{signer: r.signer, issuer: r.issuer, ttl: r.AccessTTL}
}

func (t tokenIssuer) issue(ctx context.Context, userID, email, name string) (treasurysdk.TokenResponse, error) {
	claims := jwtx.NewAccessClaims(userID, email, name, t.ttl, t.issuer, nil, time.Now())
	raw, err := t.signer.Sign(claims)
	if err != nil {
		return treasurysdk.TokenResponse{}, err
	}
	slogx.FromContext(ctx).Debug("access token issued", "user_id", userID, "jti", claims.ID)
	return treasurysdk.TokenResponse{
		AccessToken: raw,
		TokenType:   "Bearer",
		ExpiresIn:   int(t.ttl.Seconds()),
		UserID:      userID,
	}, nil
}
