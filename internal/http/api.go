package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"placebook/internal/apperr"
	"placebook/internal/auth"
	"placebook/internal/domain"
	"placebook/internal/service"
	"placebook/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	places         service.PlaceService
	users          service.UserService
	tokens         *auth.Tokens
	assets         storage.Service
	uploadsDir     string
	maxUploadBytes int64
	logger         *logrus.Logger
}

func NewHandler(
	places service.PlaceService,
	users service.UserService,
	tokens *auth.Tokens,
	assets storage.Service,
	uploadsDir string,
	maxUploadBytes int64,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		places:         places,
		users:          users,
		tokens:         tokens,
		assets:         assets,
		uploadsDir:     uploadsDir,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	if h.uploadsDir != "" {
		router.Static("/uploads/images", h.uploadsDir)
	}

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		places := api.Group("/places")
		places.GET("/:pid", h.getPlace)
		places.GET("/users/:uid", h.listPlacesByUser)

		guarded := places.Group("", h.tokens.Middleware())
		guarded.POST("", h.createPlace)
		guarded.PATCH("/:pid", h.updatePlace)
		guarded.DELETE("/:pid", h.deletePlace)

		users := api.Group("/users")
		users.GET("", h.listUsers)
		users.POST("/signup", h.signup)
		users.POST("/login", h.login)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// writeError translates the error taxonomy into the JSON failure body.
// Anything outside the taxonomy is logged and surfaced as a 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Wrap(apperr.Internal, "something went wrong, please try again", err)
	}
	if ae.Kind == apperr.Internal {
		h.logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(ae.Status(), gin.H{"message": ae.Message, "code": ae.Status()})
}

type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PlaceResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Address     string           `json:"address"`
	Location    LocationResponse `json:"location"`
	Image       string           `json:"image"`
	Creator     string           `json:"creator"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}

type UserResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Image     string   `json:"image"`
	Places    []string `json:"places"`
	CreatedAt string   `json:"created_at"`
}

func placeToResponse(place domain.Place) PlaceResponse {
	return PlaceResponse{
		ID:          place.ID,
		Title:       place.Title,
		Description: place.Description,
		Address:     place.Address,
		Location:    LocationResponse{Lat: place.Location.Lat, Lng: place.Location.Lng},
		Image:       place.ImagePath,
		Creator:     place.CreatorID,
		CreatedAt:   place.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   place.UpdatedAt.Format(time.RFC3339),
	}
}

func userToResponse(user domain.User) UserResponse {
	places := user.Places
	if places == nil {
		places = []string{}
	}
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Image:     user.ImagePath,
		Places:    places,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
