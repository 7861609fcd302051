package request

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
	service *Service
	auditor *audit.Recorder
}

func NewHandler(service *Service, auditor *audit.Recorder) *Handler {
	return &Handler{service: service, auditor: auditor}
}

func RegisterClientRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/request", h.Create)
	r.GET("/requests", h.ListMine)
}

func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/requests", h.ListAll)
	r.PUT("/requests/:requestId/status", h.UpdateStatus)
}

func (h *Handler) Create(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", fields)
		return
	}

	gr, err := h.service.Create(c.Request.Context(), id.UserID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to create request")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"request": gr})
}

func (h *Handler) ListMine(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)

	requests, err := h.service.ListForClient(c.Request.Context(), id.UserID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to list requests")
		return
	}

	response.Success(c, http.StatusOK, requests)
}

func (h *Handler) ListAll(c *gin.Context) {
	requests, err := h.service.ListForAdmin(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to list requests")
		return
	}

	response.Success(c, http.StatusOK, requests)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	requestID, err := strconv.ParseInt(c.Param("requestId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), requestID, req.Status); err != nil {
		switch err {
		case ErrRequestNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Request not found")
		case ErrInvalidStatus:
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request status")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to update request")
		}
		return
	}

	h.auditor.Record(c.Request.Context(), id.UserID, audit.Entry{
		ActionType:   "request.status",
		Description:  fmt.Sprintf("Set request %d status to %s", requestID, req.Status),
		ResourceType: "request",
		ResourceID:   requestID,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
		NewValues:    map[string]any{"status": req.Status},
	})

	response.Message(c, http.StatusOK, "Request status updated")
}
