package audit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studioportal/internal/pkg/response"
)

type Handler struct {
	recorder *Recorder
}

func NewHandler(recorder *Recorder) *Handler {
	return &Handler{recorder: recorder}
}

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/logs", h.List)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, total, err := h.recorder.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to list admin logs")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"logs":  rows,
		"total": total,
	})
}
