package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/aussiebroadwan/taskme/internal/taskme/service"
	"github.com/aussiebroadwan/taskme/pkg/httpx"
	"github.com/aussiebroadwan/taskme/pkg/slogx"
	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
)

type userCtxKey struct{}

// resolveUser loads the account named by the verified token. A token for a
// deleted account is rejected like a bad token.
func (r *Router) resolveUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		userID, ok := httpx.UserIDFromContext(ctx)
		if !ok {
			taskmesdk.ErrNotAuthed.WriteError(w)
			return
		}

		user, err := r.AuthService.CurrentUser(ctx, userID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				taskmesdk.ErrNotAuthed.WriteError(w)
				return
			}
			slogx.FromContext(ctx).Error("failed to load user", slog.Int64("user_id", userID), slog.Any("error", err))
			taskmesdk.ErrInternal.WriteError(w)
			return
		}

		ctx = context.WithValue(ctx, userCtxKey{}, user)
		ctx = slogx.With(ctx, slog.Int64("user_id", user.ID))
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// currentUser returns the user placed by resolveUser.
func currentUser(r *http.Request) domain.User {
	u, _ := r.Context().Value(userCtxKey{}).(domain.User)
	return u
}
