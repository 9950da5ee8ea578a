package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/demomarket/marketplace/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserCreator is the slice of the store registration needs.
type UserCreator interface {
	CreateUser(user *models.User) error
}

type RegisterHandler struct {
	Store UserCreator
}

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	PaymentInfo string `json:"payment_info"`
}

// Register creates a regular shopper account.
func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, false, "User registered successfully")
}

// AdminRegister creates an account with the admin flag set.
func (h *RegisterHandler) AdminRegister(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, true, "Admin registered successfully")
}

func (h *RegisterHandler) register(w http.ResponseWriter, r *http.Request, isAdmin bool, successMsg string) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Address:      req.Address,
		PhoneNumber:  req.PhoneNumber,
		PaymentInfo:  req.PaymentInfo,
		IsAdmin:      isAdmin,
	}

	if err := h.Store.CreateUser(user); err != nil {
		if errors.Is(err, models.ErrDuplicateUser) {
			writeError(w, http.StatusConflict, "username or email already taken")
			return
		}
		slog.Error("Failed to create user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeMessage(w, http.StatusCreated, successMsg)
}
