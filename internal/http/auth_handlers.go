package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"todo-service/internal/service"
)

type createUserRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Password    string `json:"password" binding:"required"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number"`
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    req.Password,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
		AdminSecret: c.GetHeader("X-Admin-Secret"),
	})
	if err != nil {
		h.fail(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, userToResponse(*user))
}

// login accepts only the form-encoded OAuth2 password grant. Every failure,
// including missing fields, gets the same 400.
func (h *Handler) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect username or password"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token.AccessToken, TokenType: token.TokenType})
}
