package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"pantrybook/internal/auth"
	"pantrybook/internal/database"
	"pantrybook/internal/logger"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func handleRegister(db *sql.DB, tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)

		if req.Username == "" || req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username, email and password are required"})
			return
		}

		user, err := database.CreateUser(db, req.Username, req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := tokens.Generate(user.ID)
		if err != nil {
			respondError(c, err)
			return
		}

		logger.Info("User registered",
			"user_id", user.ID,
			"email", user.Email)

		c.JSON(http.StatusCreated, gin.H{
			"message": "User created",
			"token":   token,
			"user":    user,
		})
	}
}

func handleLogin(db *sql.DB, tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		if req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
			return
		}

		user, err := database.AuthenticateUser(db, strings.TrimSpace(req.Email), req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := tokens.Generate(user.ID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user":  user,
		})
	}
}

func handleProfile(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)

		user, err := database.GetUserByID(db, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}
