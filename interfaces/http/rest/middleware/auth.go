package middleware

import (
	"net/http"
	"strings"

	"lattice-backend/pkg/auth"
	"lattice-backend/pkg/common"

	"go.uber.org/zap"
)

// Authenticate validates the bearer token and stores the organization
// context for downstream handlers. Every graph query route requires it:
// the org claim is the tenant scope of the whole request.
func Authenticate(validator *auth.JWTValidator, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing authorization header")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authorization header must be a bearer token")
				return
			}

			orgCtx, err := validator.Validate(token)
			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithOrganization(r.Context(), orgCtx)))
		})
	}
}

// RateLimit rejects requests once the authenticated organization exceeds its
// query allowance for the current window
func RateLimit(limiter *auth.OrganizationRateLimiter, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			orgCtx, err := auth.GetOrganizationFromContext(r.Context())
			if err != nil {
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
				return
			}

			allowed, err := limiter.Allow(r.Context(), orgCtx.OrganizationID)
			if err != nil {
				logger.Error("Rate limiter failure", zap.Error(err))
				common.RespondError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
				return
			}
			if !allowed {
				logger.Warn("Organization rate limited",
					zap.String("organizationID", orgCtx.OrganizationID),
				)
				common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMIT", "query rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
