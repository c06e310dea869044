package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"accounthub/internal/app"
	"accounthub/internal/imaging"
	"accounthub/internal/transport/http/middleware"
	"accounthub/internal/transport/http/response"
)

type AvatarHandler struct {
	avatarService *app.AvatarService
}

func NewAvatarHandler(avatarService *app.AvatarService) *AvatarHandler {
	return &AvatarHandler{avatarService: avatarService}
}

// Upload accepts a multipart form with the image under field "upload".
func (h *AvatarHandler) Upload(c *gin.Context) {
	user, _, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "please authenticate")
		return
	}

	file, err := c.FormFile("upload")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "missing avatar file (form field 'upload')")
		return
	}

	// Reject oversized parts up front instead of buffering them whole.
	if file.Size > imaging.MaxUploadBytes {
		response.Error(c, http.StatusBadRequest, fmt.Sprintf("avatar file too large: max %d bytes", imaging.MaxUploadBytes))
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "failed to open uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	if err := h.avatarService.Store(c.Request.Context(), user, data, file.Filename); err != nil {
		var verr *imaging.ValidationError
		if errors.As(err, &verr) {
			response.Error(c, http.StatusBadRequest, verr.Error())
			return
		}
		response.Empty(c, http.StatusInternalServerError)
		return
	}
	response.Empty(c, http.StatusOK)
}

func (h *AvatarHandler) Delete(c *gin.Context) {
	user, _, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "please authenticate")
		return
	}

	if err := h.avatarService.Clear(c.Request.Context(), user); err != nil {
		response.Empty(c, http.StatusInternalServerError)
		return
	}
	response.Empty(c, http.StatusOK)
}

// GetByID is the only public read: anyone holding a user id can fetch
// that user's avatar.
func (h *AvatarHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Empty(c, http.StatusNotFound)
		return
	}

	blob, err := h.avatarService.GetByUserID(c.Request.Context(), uint(id))
	if err != nil {
		response.Empty(c, http.StatusNotFound)
		return
	}

	c.Data(http.StatusOK, "image/png", blob)
}
