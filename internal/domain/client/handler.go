package client

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

func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/getAllClients", h.List)
	r.POST("/createClient", h.Create)
	r.PUT("/updateClient/:clientId", h.Update)
	r.DELETE("/deleteClient/:clientId", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	clients, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to list clients")
		return
	}
	response.Success(c, http.StatusOK, clients)
}

func (h *Handler) Create(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", fields)
		return
	}

	user, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if err == ErrEmailTaken {
			response.Error(c, http.StatusConflict, response.CodeConflict, "Email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to create client")
		return
	}

	h.auditor.Record(c.Request.Context(), id.UserID, audit.Entry{
		ActionType:   "client.create",
		Description:  fmt.Sprintf("Created client %s", user.FullName()),
		ResourceType: "client",
		ResourceID:   user.ID,
		ResourceName: user.FullName(),
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
		NewValues:    map[string]any{"email": user.Email, "service_type": user.ServiceType},
	})

	response.Success(c, http.StatusCreated, gin.H{"client": user})
}

func (h *Handler) Update(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	clientID, ok := h.clientParam(c)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	user, err := h.service.Update(c.Request.Context(), clientID, req)
	if err != nil {
		if err == ErrClientNotFound {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Client not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to update client")
		return
	}

	h.auditor.Record(c.Request.Context(), id.UserID, audit.Entry{
		ActionType:   "client.update",
		Description:  fmt.Sprintf("Updated client %d", clientID),
		ResourceType: "client",
		ResourceID:   clientID,
		ResourceName: user.FullName(),
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})

	response.Success(c, http.StatusOK, gin.H{"client": user})
}

func (h *Handler) Delete(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	clientID, ok := h.clientParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), clientID); err != nil {
		if err == ErrClientNotFound {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Client not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to delete client")
		return
	}

	h.auditor.Record(c.Request.Context(), id.UserID, audit.Entry{
		ActionType:   "client.delete",
		Description:  fmt.Sprintf("Deleted client %d", clientID),
		ResourceType: "client",
		ResourceID:   clientID,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})

	response.Message(c, http.StatusOK, "Client deleted")
}

func (h *Handler) clientParam(c *gin.Context) (int64, bool) {
	clientID, err := strconv.ParseInt(c.Param("clientId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid client ID")
		return 0, false
	}
	return clientID, true
}
