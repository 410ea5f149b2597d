package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"citizen_registry/internal/middleware"
	"citizen_registry/internal/model"
	"citizen_registry/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const MaxUploadSize = 10 * 1024 * 1024 // 10MB

// AdminHandler handles the admin/board portal endpoints
type AdminHandler struct {
	importer   service.ImportService
	registry   service.RegistryService
	uploadsDir string
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(importer service.ImportService, registry service.RegistryService, uploadsDir string) *AdminHandler {
	return &AdminHandler{importer: importer, registry: registry, uploadsDir: uploadsDir}
}

func paginationFromQuery(c *gin.Context) model.Pagination {
	page := model.Pagination{Page: 1, Limit: 50}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.Page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.Limit = n
		}
	}
	return page
}

// GetDashboardStats serves the aggregate counters for admin/board views
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.registry.GetDashboardStats(c.Request.Context())
	if err != nil {
		log.Printf("Error getting dashboard stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// GetCitizens serves the paginated, filterable listing of imported records
func (h *AdminHandler) GetCitizens(c *gin.Context) {
	var filters model.CitizenFilters
	if v := c.Query("pvcStatus"); v != "" {
		filters.PVCStatus = &v
	}
	if v := c.Query("state"); v != "" {
		filters.State = &v
	}

	records, total, err := h.registry.ListCitizens(c.Request.Context(), filters, paginationFromQuery(c))
	if err != nil {
		log.Printf("Error listing citizens: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}
	if records == nil {
		records = []model.NINRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(records),
		"total":   total,
		"data":    records,
	})
}

// GetRegistrations serves the paginated listing of public submissions
func (h *AdminHandler) GetRegistrations(c *gin.Context) {
	regs, total, err := h.registry.ListRegistrations(c.Request.Context(), paginationFromQuery(c))
	if err != nil {
		log.Printf("Error listing registrations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}
	if regs == nil {
		regs = []model.Registration{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(regs),
		"total":   total,
		"data":    regs,
	})
}

// UploadNINs stages the uploaded spreadsheet and runs the import pipeline
func (h *AdminHandler) UploadNINs(c *gin.Context) {
	file, err := c.FormFile("csvFile")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please upload a CSV or Excel file"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".csv" && ext != ".xlsx" && ext != ".xls" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only CSV, XLSX, and XLS files are allowed!"})
		return
	}
	if file.Size > MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "File exceeds the 10MB limit"})
		return
	}

	stagedPath := filepath.Join(h.uploadsDir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, stagedPath); err != nil {
		log.Printf("Error staging upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error processing file"})
		return
	}

	result, err := h.importer.ImportFile(c.Request.Context(), stagedPath)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFileType) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only CSV, XLSX, and XLS files are allowed!"})
			return
		}
		log.Printf("Error processing upload %s: %v", file.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error processing file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Processed %d records successfully. %d errors.", result.Count, result.Errors),
		"count":   result.Count,
		"errors":  result.Errors,
	})
}

// RegisterAdminRoutes registers the protected admin routes. Each endpoint
// declares its own allowed role subset.
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup, authMW, auditMW gin.HandlerFunc) {
	adminRoutes := rg.Group("/admin")
	adminRoutes.Use(authMW)
	if auditMW != nil {
		adminRoutes.Use(auditMW)
	}
	{
		adminRoutes.GET("/stats",
			middleware.RoleMiddleware(model.RoleAdmin, model.RoleBoard, model.RoleOfficerRead),
			h.GetDashboardStats)
		adminRoutes.GET("/citizens",
			middleware.RoleMiddleware(model.RoleAdmin, model.RoleOfficerRead, model.RoleOfficerEngagement),
			h.GetCitizens)
		adminRoutes.GET("/registrations",
			middleware.RoleMiddleware(model.RoleAdmin, model.RoleBoard),
			h.GetRegistrations)
		adminRoutes.POST("/upload-nins",
			middleware.RoleMiddleware(model.RoleAdmin, model.RoleOfficerUpload),
			h.UploadNINs)
	}
}
