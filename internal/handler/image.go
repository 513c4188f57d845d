package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"counting-down-back/internal/model"
	"counting-down-back/internal/service"

	"github.com/gin-gonic/gin"
)

// ListImages возвращает страницу keyset-пагинации.
// GET /api/v1/images?limit=&cursor=&uploaded_by=
func (h *Handler) ListImages(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid limit"})
			return
		}
		limit = n
	}

	var userFilter *model.UserType
	if raw := c.Query("uploaded_by"); raw != "" {
		ut, err := model.ParseUserType(raw)
		if err != nil {
			h.abortError(c, err)
			return
		}
		userFilter = &ut
	}

	page, err := h.images.List(c.Request.Context(), limit, c.Query("cursor"), userFilter)
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// UploadImage принимает multipart: uploader, title, description, image_tags, file
func (h *Handler) UploadImage(c *gin.Context) {
	uploader, err := model.ParseUserType(c.PostForm("uploader"))
	if err != nil {
		h.abortError(c, err)
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

	created, err := h.images.Create(c.Request.Context(), service.ImageCreateInput{
		UploadedBy:  uploader,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		ImageTags:   c.PostFormArray("image_tags"),
		MediaType:   mediaType,
	}, data)
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetImage отдает байты оригинала
func (h *Handler) GetImage(c *gin.Context) {
	data, contentType, err := h.images.GetOriginal(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

// GetThumbnail отдает миниатюру, создавая ее при первом обращении.
// GET /api/v1/images/:key/thumbnail?size=
func (h *Handler) GetThumbnail(c *gin.Context) {
	size := h.cfg.ThumbnailSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid size"})
			return
		}
		size = n
	}

	data, contentType, err := h.images.GetThumbnail(c.Request.Context(), c.Param("key"), size)
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

// GetImageURL выдает подписанную ссылку на оригинал.
// GET /api/v1/images/:key/url?expires_in=
func (h *Handler) GetImageURL(c *gin.Context) {
	expiresIn, ok := h.expiresInQuery(c)
	if !ok {
		return
	}
	resp, err := h.images.OriginalURL(c.Request.Context(), c.Param("key"), expiresIn)
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetThumbnailURL выдает подписанную ссылку на миниатюру.
// GET /api/v1/images/:key/thumbnail/url?size=&expires_in=
func (h *Handler) GetThumbnailURL(c *gin.Context) {
	size := h.cfg.ThumbnailSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid size"})
			return
		}
		size = n
	}
	expiresIn, ok := h.expiresInQuery(c)
	if !ok {
		return
	}

	resp, err := h.images.ThumbnailURL(c.Request.Context(), c.Param("key"), size, expiresIn)
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) UpdateImage(c *gin.Context) {
	var upd model.ImageMetadataUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid input"})
		return
	}
	meta, err := h.images.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

func (h *Handler) DeleteImage(c *gin.Context) {
	if err := h.images.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.BooleanResponse{Success: true})
}

func (h *Handler) expiresInQuery(c *gin.Context) (time.Duration, bool) {
	raw := c.Query("expires_in")
	if raw == "" {
		return 0, true
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid expires_in"})
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}
