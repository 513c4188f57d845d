package handler

import (
	"io"
	"net/http"
	"strconv"

	"counting-down-back/internal/model"
	"counting-down-back/internal/service"

	"github.com/gin-gonic/gin"
)

func sessionUser(c *gin.Context) model.UserType {
	return c.MustGet("user_type").(model.UserType)
}

// ListAdventByMe возвращает записи календаря, загруженные моим пользователем
func (h *Handler) ListAdventByMe(c *gin.Context) {
	items, err := h.advent.ListUploadedBy(c.Request.Context(), sessionUser(c))
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListAdventForMe возвращает записи, которые загрузил второй пользователь
func (h *Handler) ListAdventForMe(c *gin.Context) {
	other := model.OtherUserType(sessionUser(c))
	items, err := h.advent.ListUploadedBy(c.Request.Context(), other)
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// TodayAdvent — сюрприз второго пользователя на сегодняшний день
func (h *Handler) TodayAdvent(c *gin.Context) {
	other := model.OtherUserType(sessionUser(c))
	items, err := h.advent.Today(c.Request.Context(), other)
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetAdventByDay — мои записи на конкретный день.
// GET /api/v1/advent/day/:day
func (h *Handler) GetAdventByDay(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid day"})
		return
	}
	items, err := h.advent.ListForDay(c.Request.Context(), day, sessionUser(c))
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetAdvent(c *gin.Context) {
	item, err := h.advent.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateAdvent принимает multipart: day, title, description, file.
// Запись привязывается к пользователю сессии.
func (h *Handler) CreateAdvent(c *gin.Context) {
	day, err := strconv.Atoi(c.PostForm("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid day"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Missing file"})
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Cannot read file"})
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Cannot read file"})
		return
	}

	var mediaType *string
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" {
		mediaType = &ct
	}

	created, err := h.advent.Create(c.Request.Context(), service.AdventCreateInput{
		Day:         day,
		UploadedBy:  sessionUser(c),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		MediaType:   mediaType,
	}, data)
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) DeleteAdvent(c *gin.Context) {
	if err := h.advent.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.BooleanResponse{Success: true})
}
