package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todo-service/internal/domain"
	"todo-service/internal/service"
)

// Options tunes the HTTP surface.
type Options struct {
	// LegacyStatusCodes reports role failures as 401 like the first API version.
	LegacyStatusCodes bool
	Logger            *logrus.Logger
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth    service.AuthService
	users   service.UserService
	todos   service.TodoService
	exports service.ExportService
	opts    Options
	logger  *logrus.Logger
}

func NewHandler(auth service.AuthService, users service.UserService, todos service.TodoService, exports service.ExportService, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		auth:    auth,
		users:   users,
		todos:   todos,
		exports: exports,
		opts:    opts,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.requestLogger(), corsMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/", h.createUser)
		authGroup.POST("/token", h.login)
	}

	todos := router.Group("/todos", h.requireAuth())
	{
		todos.GET("/", h.listTodos)
		todos.GET("/:id", h.getTodo)
		todos.POST("/todos", h.createTodo)
		todos.PUT("/:id", h.updateTodo)
		todos.DELETE("/:id", h.deleteTodo)
	}

	router.POST("/users/verify", h.verifyUser)
	users := router.Group("/users", h.requireAuth())
	{
		users.GET("/me", h.currentUser)
		users.PUT("/password", h.changePassword)
		users.PUT("/update", h.changePassword)
	}

	admin := router.Group("/admin", h.requireAuth(), h.requireAdmin())
	{
		admin.GET("/todos", h.adminListTodos)
		admin.DELETE("/todos/:id", h.adminDeleteTodo)
		admin.GET("/users", h.adminListUsers)
		admin.POST("/exports", h.adminCreateExport)
		admin.GET("/exports", h.adminListExports)

		// first API version paths
		admin.GET("/", h.adminListTodos)
		admin.GET("/users/all", h.adminListUsers)
		admin.DELETE("/:id", h.adminDeleteTodo)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type UserResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
	PhoneNumber string `json:"phone_number"`
	CreatedAt   string `json:"created_at"`
}

type TodoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Completed   bool   `json:"completed"`
	OwnerID     int64  `json:"owner_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ExportResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        user.Role,
		IsActive:    user.IsActive,
		PhoneNumber: user.PhoneNumber,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
	}
}

func todoToResponse(todo domain.Todo) TodoResponse {
	return TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Priority:    todo.Priority,
		Completed:   todo.Completed,
		OwnerID:     todo.OwnerID,
		CreatedAt:   todo.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   todo.UpdatedAt.Format(time.RFC3339),
	}
}

func todosToResponse(todos []domain.Todo) []TodoResponse {
	resp := make([]TodoResponse, len(todos))
	for i := range todos {
		resp[i] = todoToResponse(todos[i])
	}
	return resp
}

func exportToResponse(export domain.Export) ExportResponse {
	resp := ExportResponse{Key: export.Key, Size: export.Size}
	if export.LastModified != nil && !export.LastModified.IsZero() {
		v := export.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}
