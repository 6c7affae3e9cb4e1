package handlers

import (
	"errors"
	"net/http"

	"github.com/sportmeet/server/internal/api/problem"
	"github.com/sportmeet/server/internal/domain/users"
)

type AuthHandler struct {
	Service *users.Service
	Env     string
}

func NewAuthHandler(service *users.Service, env string) *AuthHandler {
	return &AuthHandler{Service: service, Env: env}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	User    users.Summary `json:"user"`
}

type loginResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	User    users.Summary `json:"user"`
	Token   string        `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if fields, err := decodeAndValidate(r, &req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env,
			problem.WithErrors(fields))
		return
	}

	summary, err := h.Service.Register(r.Context(), users.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			problem.Write(w, r, http.StatusConflict, problem.TypeConflict, "Registration failed", err, h.Env,
				problem.WithDetail("This email address is already in use"))
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Registration failed", err, h.Env)
		return
	}

	// Registration does not log the user in; no token here.
	writeJSON(w, http.StatusOK, registerResponse{
		Success: true,
		Message: "Registration successful",
		User:    *summary,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if fields, err := decodeAndValidate(r, &req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env,
			problem.WithErrors(fields))
		return
	}

	result, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			// One message for unknown email and wrong password alike.
			problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Login failed", err, h.Env,
				problem.WithDetail("Invalid email or password"))
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Login failed", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Message: "Login successful",
		User:    result.User,
		Token:   result.Token,
	})
}
