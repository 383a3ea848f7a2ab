package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) adminListTodos(c *gin.Context) {
	todos, err := h.todos.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, todosToResponse(todos))
}

func (h *Handler) adminDeleteTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}

	if err := h.todos.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, todoNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) adminListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "")
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) adminCreateExport(c *gin.Context) {
	location, err := h.exports.ExportTodos(c.Request.Context())
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"location": location})
}

func (h *Handler) adminListExports(c *gin.Context) {
	exports, err := h.exports.ListExports(c.Request.Context())
	if err != nil {
		h.fail(c, err, "")
		return
	}

	resp := make([]ExportResponse, len(exports))
	for i := range exports {
		resp[i] = exportToResponse(exports[i])
	}
	c.JSON(http.StatusOK, resp)
}
