package handlers

import (
	"net/http"

	"devboard/internal/auth"
	"devboard/internal/domain"
	"devboard/internal/logger"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates a new account keyed by email.
func (h *Handler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(c, &domain.ValidationError{Msg: "email and password are required"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.Users.Create(c.Request.Context(), req.Email, hash); err != nil {
		writeError(c, err)
		return
	}

	logger.Info("user created", "email", req.Email)
	c.JSON(http.StatusCreated, gin.H{"message": "user created successfully"})
}

// Login verifies the password and issues a fresh opaque token, displacing
// whatever token the user held before.
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(c, &domain.ValidationError{Msg: "email and password are required"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.Get(ctx, req.Email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		// Same response for unknown email and wrong password.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token := auth.NewToken()
	if err := h.Users.SetToken(ctx, req.Email, token); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": token})
}
