package handler

import (
	"net/http"

	"counting-down-back/internal/model"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListMessages(c *gin.Context) {
	messages, err := h.messages.List(c.Request.Context())
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *Handler) CreateMessage(c *gin.Context) {
	var input model.MessageCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid input"})
		return
	}
	msg, err := h.messages.Create(c.Request.Context(), input)
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *Handler) DeleteMessage(c *gin.Context) {
	if err := h.messages.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.BooleanResponse{Success: true})
}
