package handler

import (
	"net/http"

	"counting-down-back/internal/model"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListTodos(c *gin.Context) {
	todos, err := h.todos.List(c.Request.Context())
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

func (h *Handler) GetTodo(c *gin.Context) {
	todo, err := h.todos.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (h *Handler) CreateTodo(c *gin.Context) {
	var input model.TodoCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid input"})
		return
	}
	todo, err := h.todos.Create(c.Request.Context(), input)
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

func (h *Handler) UpdateTodo(c *gin.Context) {
	var input model.TodoUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid input"})
		return
	}
	todo, err := h.todos.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (h *Handler) ToggleTodo(c *gin.Context) {
	todo, err := h.todos.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (h *Handler) DeleteTodo(c *gin.Context) {
	if err := h.todos.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.BooleanResponse{Success: true})
}
