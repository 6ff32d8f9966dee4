package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"video-sharing/pkg/auth"
	"video-sharing/pkg/models"
	"video-sharing/pkg/repository"
)

type Credentials struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

func (h *Handler) Join(c *gin.Context) {
	var creds Credentials
	if err := c.ShouldBind(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	hashedPassword, err := auth.HashPassword(creds.Password)
	if err != nil {
		h.log.Error("failed to hash password", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
		return
	}

	user := models.User{
		Username: creds.Username,
		Password: hashedPassword,
	}
	if err := h.users.Create(&user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "This username is already taken."})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "Account created", "id": user.ID})
}

func (h *Handler) Login(c *gin.Context) {
	var creds Credentials
	if err := c.ShouldBind(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.users.GetByUsername(creds.Username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		h.respondError(c, err)
		return
	}
	if !auth.CheckPassword(user.Password, creds.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := h.tokens.GenerateJWT(user.ID, user.Username)
	if err != nil {
		h.log.Error("failed to generate token", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}
	if err := h.sessions.Login(c.Writer, c.Request, user.ID); err != nil {
		h.log.Error("failed to save session", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error starting session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "id": user.ID})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Writer, c.Request); err != nil {
		h.log.Error("failed to end session", err)
	}
	c.JSON(http.StatusOK, gin.H{"status": "Logged out"})
}

func (h *Handler) Channel(c *gin.Context) {
	user, videos, err := h.videos.Channel(c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "videos": videos})
}
