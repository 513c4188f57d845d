package handler

import (
	"net/http"

	"counting-down-back/internal/model"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListTogetherItems(c *gin.Context) {
	items, err := h.together.List(c.Request.Context())
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetTogetherItem(c *gin.Context) {
	item, err := h.together.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) CreateTogetherItem(c *gin.Context) {
	var input model.TogetherListItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid input"})
		return
	}
	item, err := h.together.Create(c.Request.Context(), input)
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateTogetherItem — PUT: тело заменяет пункт целиком
func (h *Handler) UpdateTogetherItem(c *gin.Context) {
	var input model.TogetherListItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid input"})
		return
	}
	item, err := h.together.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) ToggleTogetherItem(c *gin.Context) {
	item, err := h.together.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteTogetherItem(c *gin.Context) {
	if err := h.together.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.BooleanResponse{Success: true})
}
