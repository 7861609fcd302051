package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"studioportal/internal/middleware"
	"studioportal/internal/pkg/response"
	"studioportal/internal/pkg/validator"
)

// CookieConfig controls the auth cookie the login handler sets.
type CookieConfig struct {
	Name     string
	Domain   string
	Secure   bool
	SameSite string
	TTL      time.Duration
}

type Handler struct {
	service *Service
	cookie  CookieConfig
}

func NewHandler(service *Service, cookie CookieConfig) *Handler {
	return &Handler{service: service, cookie: cookie}
}

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.POST("/forgotPassword", h.ForgotPassword)
	r.POST("/resetPassword", h.ResetPassword)

	authed := r.Group("/", middleware.RequireAuth())
	{
		authed.GET("/me", h.Me)
		authed.PUT("/profile", h.UpdateProfile)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", fields)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if err == ErrEmailTaken {
			response.Error(c, http.StatusConflict, response.CodeConflict, "Email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Registration failed")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", fields)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if err == ErrInvalidCredentials {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Login failed")
		return
	}

	h.setSameSite(c)
	c.SetCookie(h.cookie.Name, result.AccessToken, int(h.cookie.TTL.Seconds()), "/", h.cookie.Domain, h.cookie.Secure, true)

	response.Success(c, http.StatusOK, gin.H{
		"user":  result.User,
		"token": result.AccessToken,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	h.setSameSite(c)
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
	response.Message(c, http.StatusOK, "Logged out")
}

func (h *Handler) Me(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)

	user, err := h.service.GetCurrentUser(c.Request.Context(), id.UserID)
	if err != nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "User not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), id.UserID, req)
	if err != nil {
		if err == ErrUserNotFound {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Profile update failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", fields)
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Could not process request")
		return
	}

	// Same answer whether or not the account exists
	response.Message(c, http.StatusOK, "If the email is registered, a reset code has been sent")
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", fields)
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		switch err {
		case ErrInvalidResetCode:
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Reset code is invalid")
		case ErrResetCodeExpired:
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Reset code has expired")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Password reset failed")
		}
		return
	}

	response.Message(c, http.StatusOK, "Password updated")
}

func (h *Handler) setSameSite(c *gin.Context) {
	switch h.cookie.SameSite {
	case "Strict":
		c.SetSameSite(http.SameSiteStrictMode)
	case "None":
		c.SetSameSite(http.SameSiteNoneMode)
	default:
		c.SetSameSite(http.SameSiteLaxMode)
	}
}
