package video

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

type Handler struct {
	service      *Service
	auditor      *audit.Recorder
	maxVideoSize int64
}

func NewHandler(service *Service, auditor *audit.Recorder, maxVideoSize int64) *Handler {
	return &Handler{service: service, auditor: auditor, maxVideoSize: maxVideoSize}
}

func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/createVideo", h.Create)
	r.GET("/getAllVideos", h.ListAll)
	r.DELETE("/deleteVideo/:videoId", h.Delete)
}

func RegisterClientRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/getVideos", h.ListMine)
}

func (h *Handler) Create(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)

	var req CreateVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid form data")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", fields)
		return
	}

	fh, err := c.FormFile("video")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "A video file is required")
		return
	}
	if fh.Size > h.maxVideoSize {
		response.Error(c, http.StatusBadRequest, response.CodeValidation,
			fmt.Sprintf("File %s exceeds the %d MB limit", fh.Filename, h.maxVideoSize/(1024*1024)))
		return
	}

	v, err := h.service.Create(c.Request.Context(), id.UserID, req, fh)
	if err != nil {
		switch err {
		case ErrClientNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Client not found")
		case ErrNotVideoFile:
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "File is not a video")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeStorage, "Failed to create video")
		}
		return
	}

	h.auditor.Record(c.Request.Context(), id.UserID, audit.Entry{
		ActionType:   "video.create",
		Description:  fmt.Sprintf("Uploaded video %q for client %d", v.Title, v.ClientID),
		ResourceType: "video",
		ResourceID:   v.ID,
		ResourceName: v.Title,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})

	response.Success(c, http.StatusCreated, gin.H{"video": v})
}

func (h *Handler) ListAll(c *gin.Context) {
	videos, err := h.service.ListWithClients(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to list videos")
		return
	}
	response.Success(c, http.StatusOK, videos)
}

func (h *Handler) ListMine(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)

	videos, err := h.service.ListForClient(c.Request.Context(), id.UserID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to list videos")
		return
	}
	response.Success(c, http.StatusOK, videos)
}

func (h *Handler) Delete(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	videoID, err := strconv.ParseInt(c.Param("videoId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid video ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), videoID); err != nil {
		if err == ErrVideoNotFound {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Video not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to delete video")
		return
	}

	h.auditor.Record(c.Request.Context(), id.UserID, audit.Entry{
		ActionType:   "video.delete",
		Description:  fmt.Sprintf("Deleted video %d", videoID),
		ResourceType: "video",
		ResourceID:   videoID,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})

	response.Message(c, http.StatusOK, "Video deleted")
}
