package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/taskme/pkg/jwtx"
	"github.com/aussiebroadwan/taskme/pkg/slogx"
)

type authnOptions struct {
	queryParam string
}

// AuthnOption tweaks AuthnMiddleware.
type AuthnOption func(*authnOptions)

// AllowQueryToken also accepts the token from the named query parameter when
// no Authorization header is present. Browsers cannot set headers on
// websocket upgrades.
func AllowQueryToken(param string) AuthnOption {
	return func(o *authnOptions) { o.queryParam = param }
}

// AuthnMiddleware requires a valid bearer token and injects its claims.
func AuthnMiddleware(v jwtx.Verifier, opts ...AuthnOption) Middleware {
	var o authnOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok && o.queryParam != "" {
				raw = strings.TrimSpace(r.URL.Query().Get(o.queryParam))
				ok = raw != ""
			}
			if !ok {
				WriteBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				WriteBearerError(w, "could not validate credentials")
				return
			}

			if err := claims.ValidateExpiry(); err != nil {
				WriteBearerError(w, "token expired")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithAuth(ctx, claims)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// WriteBearerError writes an RFC 6750 style 401 with a JSON body.
func WriteBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "unauthorized",
		"error_description": desc,
	})
}
