package handlers

import (
	"net/http"

	"github.com/gorilla/csrf"
)

// Welcome is the unauthenticated landing route. When CSRF protection is
// enabled it doubles as the token-fetch endpoint for API clients.
func Welcome(w http.ResponseWriter, r *http.Request) {
	if token := csrf.Token(r); token != "" {
		w.Header().Set("X-CSRF-Token", token)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Welcome to the Demo Marketplace"))
}
