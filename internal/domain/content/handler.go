package content

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studioportal/internal/domain"
	"studioportal/internal/pkg/response"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterPublicRoutes mounts the world-readable marketing surface. These
// endpoints behave identically with or without a token.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/companyInfo", h.GetCompanyInfo)
	r.GET("/projects", h.ListProjects)
	r.GET("/testimonials", h.ListTestimonials)
	r.GET("/faqs", h.ListFAQs)
	r.GET("/policies", h.ListPolicies)
}

func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	r.PUT("/companyInfo", h.UpdateCompanyInfo)

	r.POST("/projects", h.CreateProject)
	r.PUT("/projects/:id", h.UpdateProject)
	r.DELETE("/projects/:id", h.DeleteProject)

	r.POST("/testimonials", h.CreateTestimonial)
	r.DELETE("/testimonials/:id", h.DeleteTestimonial)

	r.POST("/faqs", h.CreateFAQ)
	r.PUT("/faqs/:id", h.UpdateFAQ)
	r.DELETE("/faqs/:id", h.DeleteFAQ)

	r.POST("/policies", h.CreatePolicy)
	r.PUT("/policies/:id", h.UpdatePolicy)
	r.DELETE("/policies/:id", h.DeletePolicy)
}

func (h *Handler) GetCompanyInfo(c *gin.Context) {
	info, err := h.repo.GetCompanyInfo(c.Request.Context())
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Company info not set")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to load company info")
		return
	}
	response.Success(c, http.StatusOK, info)
}

func (h *Handler) UpdateCompanyInfo(c *gin.Context) {
	var info domain.CompanyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	if err := h.repo.UpsertCompanyInfo(c.Request.Context(), &info); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to save company info")
		return
	}
	response.Success(c, http.StatusOK, info)
}

func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.repo.ListProjects(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to list projects")
		return
	}
	response.Success(c, http.StatusOK, projects)
}

func (h *Handler) CreateProject(c *gin.Context) {
	var p domain.Project
	if err := c.ShouldBindJSON(&p); err != nil || p.Title == "" {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Project title is required")
		return
	}
	if err := h.repo.CreateProject(c.Request.Context(), &p); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to create project")
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var p domain.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	updates := map[string]any{
		"title":        p.Title,
		"service_type": p.ServiceType,
		"description":  p.Description,
		"cover_url":    p.CoverURL,
		"featured":     p.Featured,
	}
	if err := h.repo.UpdateProject(c.Request.Context(), id, updates); err != nil {
		h.mapError(c, err, "Failed to update project")
		return
	}
	response.Message(c, http.StatusOK, "Project updated")
}

func (h *Handler) DeleteProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteProject(c.Request.Context(), id); err != nil {
		h.mapError(c, err, "Failed to delete project")
		return
	}
	response.Message(c, http.StatusOK, "Project deleted")
}

func (h *Handler) ListTestimonials(c *gin.Context) {
	testimonials, err := h.repo.ListTestimonials(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to list testimonials")
		return
	}
	response.Success(c, http.StatusOK, testimonials)
}

func (h *Handler) CreateTestimonial(c *gin.Context) {
	var t domain.Testimonial
	if err := c.ShouldBindJSON(&t); err != nil || t.AuthorName == "" || t.Quote == "" {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Author name and quote are required")
		return
	}
	if err := h.repo.CreateTestimonial(c.Request.Context(), &t); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to create testimonial")
		return
	}
	response.Success(c, http.StatusCreated, t)
}

func (h *Handler) DeleteTestimonial(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteTestimonial(c.Request.Context(), id); err != nil {
		h.mapError(c, err, "Failed to delete testimonial")
		return
	}
	response.Message(c, http.StatusOK, "Testimonial deleted")
}

func (h *Handler) ListFAQs(c *gin.Context) {
	faqs, err := h.repo.ListFAQs(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to list FAQs")
		return
	}
	response.Success(c, http.StatusOK, faqs)
}

func (h *Handler) CreateFAQ(c *gin.Context) {
	var f domain.FAQ
	if err := c.ShouldBindJSON(&f); err != nil || f.Question == "" || f.Answer == "" {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Question and answer are required")
		return
	}
	if err := h.repo.CreateFAQ(c.Request.Context(), &f); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to create FAQ")
		return
	}
	response.Success(c, http.StatusCreated, f)
}

func (h *Handler) UpdateFAQ(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var f domain.FAQ
	if err := c.ShouldBindJSON(&f); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	updates := map[string]any{
		"question":   f.Question,
		"answer":     f.Answer,
		"sort_order": f.SortOrder,
	}
	if err := h.repo.UpdateFAQ(c.Request.Context(), id, updates); err != nil {
		h.mapError(c, err, "Failed to update FAQ")
		return
	}
	response.Message(c, http.StatusOK, "FAQ updated")
}

func (h *Handler) DeleteFAQ(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteFAQ(c.Request.Context(), id); err != nil {
		h.mapError(c, err, "Failed to delete FAQ")
		return
	}
	response.Message(c, http.StatusOK, "FAQ deleted")
}

func (h *Handler) ListPolicies(c *gin.Context) {
	policies, err := h.repo.ListPolicies(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to list policies")
		return
	}
	response.Success(c, http.StatusOK, policies)
}

func (h *Handler) CreatePolicy(c *gin.Context) {
	var p domain.ServicePolicy
	if err := c.ShouldBindJSON(&p); err != nil || p.ServiceType == "" || p.Title == "" {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Service type and title are required")
		return
	}
	if err := h.repo.CreatePolicy(c.Request.Context(), &p); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Failed to create policy")
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) UpdatePolicy(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var p domain.ServicePolicy
	if err := c.ShouldBindJSON(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	updates := map[string]any{
		"service_type": p.ServiceType,
		"title":        p.Title,
		"body":         p.Body,
	}
	if err := h.repo.UpdatePolicy(c.Request.Context(), id, updates); err != nil {
		h.mapError(c, err, "Failed to update policy")
		return
	}
	response.Message(c, http.StatusOK, "Policy updated")
}

func (h *Handler) DeletePolicy(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeletePolicy(c.Request.Context(), id); err != nil {
		h.mapError(c, err, "Failed to delete policy")
		return
	}
	response.Message(c, http.StatusOK, "Policy deleted")
}

func (h *Handler) mapError(c *gin.Context, err error, fallback string) {
	if err == ErrNotFound {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Not found")
		return
	}
	response.Error(c, http.StatusInternalServerError, response.CodeDatabase, fallback)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid ID")
		return 0, false
	}
	return id, true
}
