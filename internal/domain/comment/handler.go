package comment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studioportal/internal/middleware"
	"studioportal/internal/pkg/response"
	"studioportal/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func RegisterClientRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/comment", h.Create)
	r.GET("/comments/:galleryId", h.ListMine)
	r.PUT("/comment/:commentId", h.Update)
	r.DELETE("/comment/:commentId", h.Delete)
}

func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/comments/:galleryId", h.ListForAdmin)
}

func (h *Handler) Create(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", fields)
		return
	}

	cm, err := h.service.Create(c.Request.Context(), id.UserID, req)
	if err != nil {
		h.mapError(c, err, "Failed to create comment")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"comment": cm})
}

func (h *Handler) ListMine(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	galleryID, ok := galleryParam(c)
	if !ok {
		return
	}

	comments, err := h.service.ListForClient(c.Request.Context(), id.UserID, galleryID)
	if err != nil {
		h.mapError(c, err, "Failed to list comments")
		return
	}

	response.Success(c, http.StatusOK, comments)
}

func (h *Handler) ListForAdmin(c *gin.Context) {
	galleryID, ok := galleryParam(c)
	if !ok {
		return
	}

	comments, err := h.service.ListForAdmin(c.Request.Context(), galleryID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to list comments")
		return
	}

	response.Success(c, http.StatusOK, comments)
}

func (h *Handler) Update(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	commentID, ok := commentParam(c)
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	cm, err := h.service.Update(c.Request.Context(), id.UserID, commentID, req)
	if err != nil {
		h.mapError(c, err, "Failed to update comment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"comment": cm})
}

func (h *Handler) Delete(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	commentID, ok := commentParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id.UserID, commentID); err != nil {
		h.mapError(c, err, "Failed to delete comment")
		return
	}

	response.Message(c, http.StatusOK, "Comment deleted")
}

func (h *Handler) mapError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrCommentNotFound, ErrImageNotFound:
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	case ErrNotAuthor, ErrNotImageOwner:
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	case ErrCommentTooLong:
		response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, fallback)
	}
}

func galleryParam(c *gin.Context) (int64, bool) {
	galleryID, err := strconv.ParseInt(c.Param("galleryId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid gallery ID")
		return 0, false
	}
	return galleryID, true
}

func commentParam(c *gin.Context) (int64, bool) {
	commentID, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid comment ID")
		return 0, false
	}
	return commentID, true
}
