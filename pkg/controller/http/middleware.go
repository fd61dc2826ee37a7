package http

import (
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/model/auth"
	"github.com/memoraid/memoraid/pkg/usecase"
)

// ShareTokenHeader carries the share token handed to contributors
const ShareTokenHeader = "X-Share-Token"

// shareTokenQuery is the query parameter alternative to ShareTokenHeader
const shareTokenQuery = "share_token"

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

func shareToken(r *http.Request) string {
	if t := r.Header.Get(ShareTokenHeader); t != "" {
		return t
	}
	return r.URL.Query().Get(shareTokenQuery)
}

// userAuthMiddleware requires a patient bearer token. Without an auth use
// case requests pass through with no principal.
func userAuthMiddleware(authUC AuthUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authUC == nil {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := authUC.Authenticate(r.Context(), bearerToken(r))
			if err != nil {
				writeError(r.Context(), w, err)
				return
			}

			ctx := auth.ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// contributorAuthMiddleware accepts a patient bearer token or a share token
func contributorAuthMiddleware(authUC AuthUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authUC == nil {
				next.ServeHTTP(w, r)
				return
			}

			var (
				principal *auth.Principal
				err       error
			)
			switch {
			case bearerToken(r) != "":
				principal, err = authUC.Authenticate(r.Context(), bearerToken(r))
			case shareToken(r) != "":
				principal, err = authUC.AuthenticateShare(r.Context(), shareToken(r))
			case authUC.IsNoAuthn():
				principal, err = authUC.Authenticate(r.Context(), "")
			default:
				err = goerr.Wrap(usecase.ErrUnauthenticated, "bearer or share token is required")
			}
			if err != nil {
				writeError(r.Context(), w, err)
				return
			}

			ctx := auth.ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
