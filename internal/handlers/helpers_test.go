package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/demomarket/marketplace/internal/models"
)

func newShopper(id uint) *models.User {
	return &models.User{
		ID:       id,
		Username: "shopper",
		Email:    "shopper@example.com",
		IsAdmin:  false,
	}
}

func newAdmin(id uint) *models.User {
	return &models.User{
		ID:       id,
		Username: "admin",
		Email:    "admin@example.com",
		IsAdmin:  true,
	}
}

// authedRequest builds a request carrying user in its context, the way
// RequireAuth would after resolving the session.
func authedRequest(method, target, body string, user *models.User) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if user != nil {
		req = req.WithContext(WithUser(req.Context(), user))
	}
	return req
}
