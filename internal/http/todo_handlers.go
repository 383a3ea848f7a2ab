package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todo-service/internal/service"
)

const todoNotFound = "Todo not found"

type todoRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"required,min=1,max=100"`
	Priority    int    `json:"priority" binding:"required,gte=1,lte=5"`
	Completed   bool   `json:"completed"`
}

func (r todoRequest) input() service.TodoInput {
	return service.TodoInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Completed:   r.Completed,
	}
}

func (h *Handler) listTodos(c *gin.Context) {
	identity, _ := currentIdentity(c)
	todos, err := h.todos.ListForOwner(c.Request.Context(), identity.UserID)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, todosToResponse(todos))
}

func (h *Handler) getTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}

	identity, _ := currentIdentity(c)
	todo, err := h.todos.GetForOwner(c.Request.Context(), id, identity.UserID)
	if err != nil {
		h.fail(c, err, todoNotFound)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(*todo))
}

func (h *Handler) createTodo(c *gin.Context) {
	var req todoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, _ := currentIdentity(c)
	todo, err := h.todos.Create(c.Request.Context(), identity.UserID, req.input())
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, todoToResponse(*todo))
}

func (h *Handler) updateTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}

	var req todoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, _ := currentIdentity(c)
	todo, err := h.todos.UpdateForOwner(c.Request.Context(), id, identity.UserID, req.input())
	if err != nil {
		h.fail(c, err, todoNotFound)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(*todo))
}

func (h *Handler) deleteTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}

	identity, _ := currentIdentity(c)
	if err := h.todos.DeleteForOwner(c.Request.Context(), id, identity.UserID); err != nil {
		h.fail(c, err, todoNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
