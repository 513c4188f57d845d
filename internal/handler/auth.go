package handler

import (
	"net/http"

	"counting-down-back/internal/model"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Login(c *gin.Context) {
	var input model.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid input"})
		return
	}
	session, err := h.auth.Login(c.Request.Context(), input.AccessKey)
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.auth.GetSession(c.Request.Context(), c.GetHeader(sessionHeader))
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) Logout(c *gin.Context) {
	ok, err := h.auth.Logout(c.Request.Context(), c.GetHeader(sessionHeader))
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.BooleanResponse{Success: ok})
}

func (h *Handler) CountSessions(c *gin.Context) {
	count, err := h.auth.CountActiveSessions(c.Request.Context())
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SessionCountResponse{ActiveSessions: count})
}
