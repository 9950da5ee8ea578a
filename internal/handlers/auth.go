package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/demomarket/marketplace/internal/models"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
)

const sessionName = "marketplace-session"

type contextKey string

const userContextKey contextKey = "current_user"

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFrom returns the authenticated user stored by RequireAuth, or nil.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// UserProvider is the slice of the store the auth handler needs.
type UserProvider interface {
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}

type AuthHandler struct {
	Store        UserProvider
	SessionStore sessions.Store
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.Store.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			// Same response as a bad password, so usernames can't be probed.
			writeError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		slog.Error("Failed to look up user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	session.Values["authenticated"] = true
	session.Values["user_id"] = user.ID
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	slog.Info("Login successful", "user_id", user.ID)
	writeMessage(w, http.StatusOK, "Login successful")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	session.Values["authenticated"] = false
	session.Options.MaxAge = -1 // Expire immediately
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}
	writeMessage(w, http.StatusOK, "Logout successful")
}

// RequireAuth resolves the session to a user, stores it in the request
// context and rejects unauthenticated callers.
func (h *AuthHandler) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.SessionStore.Get(r, sessionName)
		if auth, ok := session.Values["authenticated"].(bool); !ok || !auth {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		userID, ok := session.Values["user_id"].(uint)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		user, err := h.Store.GetUserByID(userID)
		if err != nil {
			if errors.Is(err, models.ErrUserNotFound) {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			slog.Error("Failed to load session user", "error", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		next(w, r.WithContext(WithUser(r.Context(), user)))
	}
}

// RequireAdmin gates product administration. Must run inside RequireAuth.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := UserFrom(r.Context())
		if user == nil || !user.IsAdmin {
			writeError(w, http.StatusForbidden, "admin privileges required")
			return
		}
		next(w, r)
	}
}

// RequireShopper gates cart and checkout. Admin accounts manage the
// catalog and do not hold carts. Must run inside RequireAuth.
func RequireShopper(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := UserFrom(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if user.IsAdmin {
			writeError(w, http.StatusForbidden, "admin accounts cannot shop")
			return
		}
		next(w, r)
	}
}
