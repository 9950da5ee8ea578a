package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/demomarket/marketplace/internal/models"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- Mock Repo ---

type MockUserRepo struct {
	Users []*models.User
	Err   error
}

func (m *MockUserRepo) GetUserByUsername(username string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *MockUserRepo) GetUserByID(id uint) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func newAuthHandler(t *testing.T, users ...*models.User) *AuthHandler {
	t.Helper()
	return &AuthHandler{
		Store:        &MockUserRepo{Users: users},
		SessionStore: sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef")),
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// --- Tests ---

func TestLogin(t *testing.T) {
	user := &models.User{
		ID:           1,
		Username:     "alice",
		PasswordHash: "", // set per test
	}

	testCases := []struct {
		name               string
		body               string
		password           string
		expectedStatusCode int
	}{
		{
			name:               "Success with correct credentials",
			body:               `{"username": "alice", "password": "s3cret"}`,
			password:           "s3cret",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "Wrong password rejected",
			body:               `{"username": "alice", "password": "nope"}`,
			password:           "s3cret",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "Unknown username rejected",
			body:               `{"username": "bob", "password": "s3cret"}`,
			password:           "s3cret",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "Missing fields rejected",
			body:               `{"username": "alice"}`,
			password:           "s3cret",
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Malformed JSON rejected",
			body:               `{"username": `,
			password:           "s3cret",
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user.PasswordHash = hashPassword(t, tc.password)
			h := newAuthHandler(t, user)

			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Login(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedStatusCode == http.StatusOK {
				assert.NotEmpty(t, rec.Header().Get("Set-Cookie"), "login should set a session cookie")
				var resp map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "Login successful", resp["message"])
			}
		})
	}
}

func TestLoginThenAuthenticatedRequest(t *testing.T) {
	user := &models.User{
		ID:           7,
		Username:     "alice",
		PasswordHash: hashPassword(t, "s3cret"),
	}
	h := newAuthHandler(t, user)

	// Login to obtain a session cookie.
	loginReq := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"alice","password":"s3cret"}`))
	loginRec := httptest.NewRecorder()
	h.Login(loginRec, loginReq)
	require.Equal(t, http.StatusOK, loginRec.Code)
	cookies := loginRec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// The protected handler should see the resolved user.
	var seen *models.User
	protected := h.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	protected(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, uint(7), seen.ID)
}

func TestRequireAuthRejectsUnauthenticated(t *testing.T) {
	h := newAuthHandler(t)
	protected := h.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	protected(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout(t *testing.T) {
	user := &models.User{
		ID:           1,
		Username:     "alice",
		PasswordHash: hashPassword(t, "s3cret"),
	}
	h := newAuthHandler(t, user)

	loginReq := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"alice","password":"s3cret"}`))
	loginRec := httptest.NewRecorder()
	h.Login(loginRec, loginReq)
	require.Equal(t, http.StatusOK, loginRec.Code)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	for _, c := range loginRec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	// The expired cookie must no longer authenticate.
	after := httptest.NewRequest(http.MethodGet, "/orders", nil)
	for _, c := range rec.Result().Cookies() {
		after.AddCookie(c)
	}
	afterRec := httptest.NewRecorder()
	h.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached after logout")
	})(afterRec, after)
	assert.Equal(t, http.StatusUnauthorized, afterRec.Code)
}

func TestRoleMiddleware(t *testing.T) {
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

	testCases := []struct {
		name               string
		middleware         func(http.HandlerFunc) http.HandlerFunc
		user               *models.User
		expectedStatusCode int
	}{
		{"Admin passes RequireAdmin", RequireAdmin, newAdmin(1), http.StatusOK},
		{"Shopper blocked by RequireAdmin", RequireAdmin, newShopper(2), http.StatusForbidden},
		{"Shopper passes RequireShopper", RequireShopper, newShopper(2), http.StatusOK},
		{"Admin blocked by RequireShopper", RequireShopper, newAdmin(1), http.StatusForbidden},
		{"Nil user blocked by RequireShopper", RequireShopper, nil, http.StatusUnauthorized},
		{"Nil user blocked by RequireAdmin", RequireAdmin, nil, http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := authedRequest(http.MethodGet, "/", "", tc.user)
			rec := httptest.NewRecorder()
			tc.middleware(ok)(rec, req)
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
		})
	}
}
