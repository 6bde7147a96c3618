package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"placebook/internal/apperr"
)

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}

func (h *Handler) signup(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if name == "" || !strings.Contains(email, "@") || len(password) < 6 {
		h.writeError(c, apperr.New(apperr.Validation, "invalid inputs passed, please check your data"))
		return
	}

	imagePath, err := h.saveUploadedImage(c, false)
	if err != nil {
		h.writeError(c, err)
		return
	}

	user, token, err := h.users.Signup(c.Request.Context(), name, email, password, imagePath)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": userToResponse(*user), "token": token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Wrap(apperr.Validation, "invalid inputs passed, please check your data", err))
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userToResponse(*user), "token": token})
}
