package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"placebook/internal/apperr"
	"placebook/internal/auth"
	"placebook/internal/service"
)

func (h *Handler) getPlace(c *gin.Context) {
	place, err := h.places.Get(c.Request.Context(), c.Param("pid"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"place": placeToResponse(*place)})
}

func (h *Handler) listPlacesByUser(c *gin.Context) {
	places, err := h.places.ListByCreator(c.Request.Context(), c.Param("uid"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]PlaceResponse, len(places))
	for i := range places {
		resp[i] = placeToResponse(places[i])
	}
	c.JSON(http.StatusOK, gin.H{"places": resp})
}

func (h *Handler) createPlace(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))
	address := strings.TrimSpace(c.PostForm("address"))
	creator := strings.TrimSpace(c.PostForm("creator"))

	if err := validatePlaceFields(title, description, address); err != nil {
		h.writeError(c, err)
		return
	}
	if creator == "" {
		h.writeError(c, apperr.New(apperr.Validation, "invalid inputs passed, please check your data"))
		return
	}

	imagePath, err := h.saveUploadedImage(c, true)
	if err != nil {
		h.writeError(c, err)
		return
	}

	place, err := h.places.Create(c.Request.Context(), service.CreatePlaceInput{
		Title:       title,
		Description: description,
		Address:     address,
		CreatorID:   creator,
		ImagePath:   imagePath,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"place": placeToResponse(*place)})
}

type updatePlaceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *Handler) updatePlace(c *gin.Context) {
	caller, ok := auth.CallerID(c)
	if !ok {
		h.writeError(c, apperr.New(apperr.Forbidden, "authentication failed"))
		return
	}

	var req updatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Wrap(apperr.Validation, "invalid inputs passed, please check your data", err))
		return
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || len(description) < 5 {
		h.writeError(c, apperr.New(apperr.Validation, "invalid inputs passed, please check your data"))
		return
	}

	place, err := h.places.Update(c.Request.Context(), c.Param("pid"), title, description, caller)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"place": placeToResponse(*place)})
}

func (h *Handler) deletePlace(c *gin.Context) {
	caller, ok := auth.CallerID(c)
	if !ok {
		h.writeError(c, apperr.New(apperr.Forbidden, "authentication failed"))
		return
	}

	if err := h.places.Delete(c.Request.Context(), c.Param("pid"), caller); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted place."})
}

func validatePlaceFields(title, description, address string) error {
	if title == "" || len(description) < 5 || address == "" {
		return apperr.New(apperr.Validation, "invalid inputs passed, please check your data")
	}
	return nil
}
