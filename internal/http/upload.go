package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"placebook/internal/apperr"
)

// mimeExtensions is the closed set of accepted upload types.
var mimeExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

// saveUploadedImage pulls the "image" part out of a multipart request,
// checks type and size and stores it under a fresh uuid filename. Returns
// the stored location.
func (h *Handler) saveUploadedImage(c *gin.Context, required bool) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if !required {
			return "", nil
		}
		return "", apperr.Wrap(apperr.Validation, "an image upload is required", err)
	}

	if file.Size > h.maxUploadBytes {
		return "", apperr.New(apperr.Validation,
			fmt.Sprintf("image exceeds the %d byte upload limit", h.maxUploadBytes))
	}

	ext, ok := mimeExtensions[file.Header.Get("Content-Type")]
	if !ok {
		return "", apperr.New(apperr.Validation, "invalid mime type, only png and jpeg images are accepted")
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded image: %w", err)
	}
	defer src.Close()

	key := uuid.NewString() + "." + ext
	location, err := h.assets.Save(c.Request.Context(), key, file.Header.Get("Content-Type"), src)
	if err != nil {
		return "", fmt.Errorf("store uploaded image: %w", err)
	}
	return location, nil
}
