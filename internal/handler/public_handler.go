package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"citizen_registry/internal/model"
	"citizen_registry/internal/service"

	"github.com/gin-gonic/gin"
)

const MaxImageSize = 5 * 1024 * 1024 // 5MB

// PublicHandler handles the public registration form
type PublicHandler struct {
	service service.RegisterService
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(s service.RegisterService) *PublicHandler {
	return &PublicHandler{service: s}
}

// Register accepts multipart/form-data with an imageFile, or JSON with a
// base64 imageData payload from camera capture.
func (h *PublicHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
		return
	}

	var (
		image       []byte
		contentType string
	)
	if file, err := c.FormFile("imageFile"); err == nil {
		if file.Size > MaxImageSize {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image exceeds the 5MB limit"})
			return
		}
		contentType = file.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Not an image! Please upload a specific image type."})
			return
		}
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to read uploaded image"})
			return
		}
		defer src.Close()
		image, err = io.ReadAll(src)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to read uploaded image"})
			return
		}
	}

	registrationID, err := h.service.RegisterCitizen(c.Request.Context(), req, image, contentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidNINLength):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "NIN must be 11 digits"})
		case errors.Is(err, service.ErrAlreadyRegistered):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "This NIN has already been registered."})
		case errors.Is(err, service.ErrImageRequired):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image is required"})
		case errors.Is(err, service.ErrInvalidImagePayload):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to upload image"})
		default:
			log.Printf("Registration error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error occurred during registration."})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"message":        "Registration successful!",
		"registrationId": registrationID,
	})
}

// RegisterPublicRoutes registers public routes
func (h *PublicHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	publicGroup := rg.Group("/public")
	{
		publicGroup.POST("/register", h.Register)
	}
}
