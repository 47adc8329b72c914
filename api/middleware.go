package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"RevTrackSaas/api/auth"
	"RevTrackSaas/api/constants"
)

type contextKey string

const (
	SessionKey       contextKey = "session"
	CustomerScopeKey contextKey = "customerScope"
)

// ExtractUserID parses the request body once and pulls out user_id, restoring
// the body for downstream handlers. Multipart uploads carry it as a form
// field instead.
func ExtractUserID(r *http.Request) (string, error) {
	ct := strings.ToLower(r.Header.Get(constants.ContentTypeHeader))
	if strings.Contains(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err == nil {
			if userID := r.FormValue("user_id"); userID != "" {
				return userID, nil
			}
		}
		return "", fmt.Errorf("user_id not found in form")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	var reqMap map[string]interface{}
	if err := json.Unmarshal(body, &reqMap); err == nil {
		if userID, ok := reqMap["user_id"].(string); ok && userID != "" {
			return userID, nil
		}
	}
	return "", fmt.Errorf("user_id not found in request")
}

// ValidateSession checks the in-memory session set for the user, no DB hit.
func ValidateSession(userID string) *auth.UserSession {
	for _, s := range auth.GetActiveSessions() {
		if s.UserID == userID {
			return s
		}
	}
	return nil
}

// SessionMiddleware admits only requests carrying a user_id with a live
// session, attaches the session to the context, and for client-role sessions
// records the customer scope every record query must honor.
func SessionMiddleware(roles ...auth.Role) func(http.Handler) http.Handler {
	allowed := make(map[auth.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := ExtractUserID(r)
			if err != nil {
				RespondWithError(w, http.StatusBadRequest, constants.ErrUserIDRequired)
				return
			}
			session := ValidateSession(userID)
			if session == nil {
				RespondWithError(w, http.StatusUnauthorized, constants.ErrInvalidSession)
				return
			}
			if len(allowed) > 0 {
				if _, ok := allowed[session.Role]; !ok {
					RespondWithError(w, http.StatusForbidden, constants.ErrForbiddenRole)
					return
				}
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)
			if session.Role == auth.RoleClient {
				ctx = context.WithValue(ctx, CustomerScopeKey, session.CustomerID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromCtx returns the session the middleware attached, or nil.
func SessionFromCtx(ctx context.Context) *auth.UserSession {
	if s, ok := ctx.Value(SessionKey).(*auth.UserSession); ok {
		return s
	}
	return nil
}

// CustomerScopeFromCtx returns the customer_id a client session is confined
// to; empty for finance/admin sessions.
func CustomerScopeFromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(CustomerScopeKey).(string); ok {
		return id
	}
	return ""
}

// RequestedByFromCtx resolves the display name for audit rows.
func RequestedByFromCtx(ctx context.Context, userID string) string {
	if s := SessionFromCtx(ctx); s != nil && strings.TrimSpace(s.Name) != "" {
		return s.Name
	}
	for _, s := range auth.GetActiveSessions() {
		if s.UserID == userID {
			return s.Name
		}
	}
	return ""
}
