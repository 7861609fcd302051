package gallery

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studioportal/internal/audit"
	"studioportal/internal/middleware"
	"studioportal/internal/pkg/response"
	"studioportal/internal/pkg/validator"
)

// Limits are enforced before the creation workflow runs.
type Limits struct {
	MaxFileSize int64
	MaxFiles    int
}

type Handler struct {
	service *Service
	auditor *audit.Recorder
	limits  Limits
}

func NewHandler(service *Service, auditor *audit.Recorder, limits Limits) *Handler {
	return &Handler{service: service, auditor: auditor, limits: limits}
}

// RegisterAdminRoutes mounts the admin gallery surface; the group already
// carries the admin role gate.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/createGallery", h.Create)
	r.GET("/getAllGalleries", h.ListAll)
	r.GET("/getGallery/:galleryId", h.GetByID)
	r.PUT("/updateGallery/:galleryId", h.Update)
	r.DELETE("/deleteGallery/:galleryId", h.Delete)
}

// RegisterClientRoutes mounts the client gallery surface; the group already
// carries the client role gate.
func RegisterClientRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/getGallery", h.ListMine)
	r.GET("/downloadImage/:imageId", h.DownloadImage)
	r.PUT("/selectImage/:imageId", h.SelectImage)
}

func (h *Handler) Create(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)

	var req CreateGalleryRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid form data")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", fields)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid multipart form")
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "At least one image file is required")
		return
	}
	if len(files) > h.limits.MaxFiles {
		response.Error(c, http.StatusBadRequest, response.CodeValidation,
			fmt.Sprintf("Too many files: maximum is %d per gallery", h.limits.MaxFiles))
		return
	}
	for _, fh := range files {
		if fh.Size > h.limits.MaxFileSize {
			response.Error(c, http.StatusBadRequest, response.CodeValidation,
				fmt.Sprintf("File %s exceeds the %d MB limit", fh.Filename, h.limits.MaxFileSize/(1024*1024)))
			return
		}
	}

	result, err := h.service.Create(c.Request.Context(), id.UserID, req, files)
	if err != nil {
		switch err {
		case ErrClientNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Client not found")
		case ErrNoFiles:
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "At least one image file is required")
		case ErrAllUploadsFailed:
			response.Error(c, http.StatusInternalServerError, response.CodeStorage, "All file uploads failed; nothing was saved")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to create gallery")
		}
		return
	}

	h.auditor.Record(c.Request.Context(), id.UserID, audit.Entry{
		ActionType:   "gallery.create",
		Description:  fmt.Sprintf("Created gallery %q with %d images", result.Gallery.Title, len(result.Images)),
		ResourceType: "gallery",
		ResourceID:   result.Gallery.ID,
		ResourceName: result.Gallery.Title,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
		NewValues: map[string]any{
			"client_id":    result.Gallery.ClientID,
			"photos_count": result.Gallery.PhotosCount,
			"folder":       result.Folder,
		},
	})

	response.Success(c, http.StatusCreated, gin.H{
		"gallery":        result.Gallery,
		"images":         result.Images,
		"total_images":   len(result.Images),
		"folder":         result.Folder,
		"upload_results": result.UploadResults,
	})
}

func (h *Handler) ListAll(c *gin.Context) {
	galleries, err := h.service.ListWithClients(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to list galleries")
		return
	}
	response.Success(c, http.StatusOK, galleries)
}

func (h *Handler) GetByID(c *gin.Context) {
	galleryID, ok := h.galleryParam(c)
	if !ok {
		return
	}

	g, err := h.service.GetByID(c.Request.Context(), galleryID)
	if err != nil {
		if err == ErrGalleryNotFound {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Gallery not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to load gallery")
		return
	}

	response.Success(c, http.StatusOK, g)
}

func (h *Handler) Update(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	galleryID, ok := h.galleryParam(c)
	if !ok {
		return
	}

	var req UpdateGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	g, err := h.service.UpdateMeta(c.Request.Context(), galleryID, req)
	if err != nil {
		if err == ErrGalleryNotFound {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Gallery not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to update gallery")
		return
	}

	h.auditor.Record(c.Request.Context(), id.UserID, audit.Entry{
		ActionType:   "gallery.update",
		Description:  fmt.Sprintf("Updated gallery %d", galleryID),
		ResourceType: "gallery",
		ResourceID:   galleryID,
		ResourceName: g.Title,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
		NewValues: map[string]any{
			"title":       g.Title,
			"service":     g.ServiceType,
			"description": g.Description,
			"status":      g.Status,
		},
	})

	response.Success(c, http.StatusOK, g)
}

func (h *Handler) Delete(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	galleryID, ok := h.galleryParam(c)
	if !ok {
		return
	}

	result, err := h.service.Delete(c.Request.Context(), galleryID)
	if err != nil {
		if err == ErrGalleryNotFound {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Gallery not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to delete gallery")
		return
	}

	h.auditor.Record(c.Request.Context(), id.UserID, audit.Entry{
		ActionType:   "gallery.delete",
		Description:  fmt.Sprintf("Deleted gallery %d", galleryID),
		ResourceType: "gallery",
		ResourceID:   galleryID,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
		AdditionalData: map[string]any{
			"deleted_files": result.DeletedFiles,
			"failed_files":  result.FailedFiles,
		},
	})

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Gallery deleted",
		"deleted_files": result.DeletedFiles,
		"failed_files":  result.FailedFiles,
	})
}

func (h *Handler) ListMine(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)

	galleries, err := h.service.ListForClient(c.Request.Context(), id.UserID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to load galleries")
		return
	}
	if len(galleries) == 0 {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "No galleries found")
		return
	}

	response.Success(c, http.StatusOK, galleries)
}

func (h *Handler) DownloadImage(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	imageID, err := strconv.ParseInt(c.Param("imageId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid image ID")
		return
	}

	body, contentType, filename, err := h.service.DownloadImage(c.Request.Context(), id.UserID, imageID)
	if err != nil {
		switch err {
		case ErrImageNotFound, ErrGalleryNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Image not found")
		case ErrNotGalleryOwner:
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "You do not own this image")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeStorage, "Failed to download image")
		}
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.DataFromReader(http.StatusOK, -1, contentType, body, nil)
}

func (h *Handler) SelectImage(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	imageID, err := strconv.ParseInt(c.Param("imageId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid image ID")
		return
	}

	var req struct {
		Selected bool `json:"selected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	if err := h.service.SelectImage(c.Request.Context(), id.UserID, imageID, req.Selected); err != nil {
		switch err {
		case ErrImageNotFound, ErrGalleryNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Image not found")
		case ErrNotGalleryOwner:
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "You do not own this image")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to update image")
		}
		return
	}

	response.Message(c, http.StatusOK, "Image selection updated")
}

func (h *Handler) galleryParam(c *gin.Context) (int64, bool) {
	galleryID, err := strconv.ParseInt(c.Param("galleryId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid gallery ID")
		return 0, false
	}
	return galleryID, true
}
