package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const userNotFound = "User not found"

type verifyUserRequest struct {
	Username string `json:"username" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=1,max=100"`
}

type changePasswordRequest struct {
	Password    string `json:"password" binding:"required,min=1,max=100"`
	NewPassword string `json:"new_password" binding:"required,min=1"`
}

func (h *Handler) currentUser(c *gin.Context) {
	identity, _ := currentIdentity(c)
	user, err := h.users.GetByID(c.Request.Context(), identity.UserID)
	if err != nil {
		h.fail(c, err, userNotFound)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) verifyUser(c *gin.Context) {
	var req verifyUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.VerifyPassword(c.Request.Context(), req.Username, req.Password); err != nil {
		h.fail(c, err, userNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User verified successfully"})
}

func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, _ := currentIdentity(c)
	if err := h.users.ChangePassword(c.Request.Context(), identity.UserID, req.Password, req.NewPassword); err != nil {
		h.fail(c, err, userNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
