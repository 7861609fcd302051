package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"studioportal/internal/audit"
	"studioportal/internal/database"
	"studioportal/internal/domain"
	"studioportal/internal/domain/auth"
	"studioportal/internal/domain/client"
	"studioportal/internal/domain/comment"
	"studioportal/internal/domain/content"
	"studioportal/internal/domain/gallery"
	"studioportal/internal/domain/request"
	"studioportal/internal/domain/video"
	"studioportal/internal/middleware"
	jwtsvc "studioportal/internal/pkg/jwt"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

// memoryStorage is an in-memory blob store standing in for S3.
type memoryStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
	types map[string]string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{blobs: map[string][]byte{}, types: map[string]string{}}
}

func (m *memoryStorage) Upload(ctx context.Context, body io.Reader, folder, name, contentType string) (string, string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", "", err
	}
	path := folder + "/" + name
	m.mu.Lock()
	m.blobs[path] = data
	m.types[path] = contentType
	m.mu.Unlock()
	return "https://cdn.test/" + path, path, nil
}

func (m *memoryStorage) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	delete(m.blobs, path)
	delete(m.types, path)
	m.mu.Unlock()
	return nil
}

func (m *memoryStorage) Download(ctx context.Context, path string) (io.ReadCloser, string, error) {
	m.mu.Lock()
	data, ok := m.blobs[path]
	contentType := m.types[path]
	m.mu.Unlock()
	if !ok {
		return nil, "", fmt.Errorf("blob not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), contentType, nil
}

func (m *memoryStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}

type testSuite struct {
	router  *gin.Engine
	db      *gorm.DB
	storage *memoryStorage
}

type testResponse struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
	Error   *errorDetail   `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func setupSuite(t *testing.T) *testSuite {
	t.Helper()

	db, err := database.Connect(fmt.Sprintf("file:e2e_%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	zlog := zap.NewNop()
	storage := newMemoryStorage()
	jwt := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	auditor := audit.NewRecorder(db, zlog)
	mailer := auth.NewDevConsoleMailer(zlog, false)

	authService := auth.NewService(auth.NewRepository(db), jwt, mailer, 15*time.Minute)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{Name: "auth_token", TTL: 24 * time.Hour})

	galleryService := gallery.NewService(gallery.NewRepository(db), storage, zlog)
	galleryHandler := gallery.NewHandler(galleryService, auditor, gallery.Limits{MaxFileSize: 10 << 20, MaxFiles: 50})

	clientHandler := client.NewHandler(client.NewService(client.NewRepository(db)), auditor)
	commentHandler := comment.NewHandler(comment.NewService(comment.NewRepository(db)))
	requestHandler := request.NewHandler(request.NewService(request.NewRepository(db)), auditor)
	videoHandler := video.NewHandler(video.NewService(video.NewRepository(db), storage, zlog), auditor, 200<<20)
	contentHandler := content.NewHandler(content.NewRepository(db))
	auditHandler := audit.NewHandler(auditor)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Identify(jwt, "auth_token"))

	public := r.Group("/public")
	content.RegisterPublicRoutes(public, contentHandler)

	authGroup := r.Group("/auth")
	auth.RegisterRoutes(authGroup, authHandler)

	admin := r.Group("/admin", middleware.AdminOnly())
	{
		gallery.RegisterAdminRoutes(admin, galleryHandler)
		client.RegisterAdminRoutes(admin, clientHandler)
		comment.RegisterAdminRoutes(admin, commentHandler)
		request.RegisterAdminRoutes(admin, requestHandler)
		video.RegisterAdminRoutes(admin, videoHandler)
		content.RegisterAdminRoutes(admin, contentHandler)
		audit.RegisterRoutes(admin, auditHandler)
	}

	user := r.Group("/user", middleware.ClientOnly())
	{
		gallery.RegisterClientRoutes(user, galleryHandler)
		comment.RegisterClientRoutes(user, commentHandler)
		request.RegisterClientRoutes(user, requestHandler)
		video.RegisterClientRoutes(user, videoHandler)
	}

	return &testSuite{router: r, db: db, storage: storage}
}

func (s *testSuite) createUser(t *testing.T, email string, role domain.UserRole) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password-123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &domain.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, s.db.Create(u).Error)
	return u
}

func (s *testSuite) login(t *testing.T, email string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": "password-123"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp testResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token, _ := resp.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (s *testSuite) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testSuite) doJSON(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}
	return s.do(t, method, path, token, body, "application/json")
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) testResponse {
	t.Helper()
	var resp testResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func buildGalleryForm(t *testing.T, clientID int64, title string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("id", fmt.Sprint(clientID)))
	require.NoError(t, w.WriteField("title", title))
	require.NoError(t, w.WriteField("service", "wedding"))
	require.NoError(t, w.WriteField("status", "active"))
	for name, data := range files {
		fw, err := w.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestAuthFlow(t *testing.T) {
	s := setupSuite(t)

	// Register a new client account.
	w := s.doJSON(t, "POST", "/auth/register", "", map[string]string{
		"first_name": "Anna",
		"last_name":  "Korobova",
		"email":      "anna@test.com",
		"password":   "password-123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Registration always produces a client, regardless of what is posted.
	var count int64
	s.db.Model(&domain.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	assert.Equal(t, int64(0), count)

	token := s.login(t, "anna@test.com")

	w = s.do(t, "GET", "/auth/me", token, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anna@test.com")

	// /me without a token is rejected.
	w = s.do(t, "GET", "/auth/me", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGalleryLifecycle(t *testing.T) {
	s := setupSuite(t)
	s.createUser(t, "admin@test.com", domain.RoleAdmin)
	clientUser := s.createUser(t, "client@test.com", domain.RoleClient)

	adminToken := s.login(t, "admin@test.com")
	clientToken := s.login(t, "client@test.com")

	// Client has no galleries yet.
	w := s.do(t, "GET", "/user/getGallery", clientToken, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")

	// Admin creates a gallery with two images.
	body, contentType := buildGalleryForm(t, clientUser.ID, "Wedding Day", map[string][]byte{
		"one.png": pngBytes,
		"two.png": pngBytes,
	})
	w = s.do(t, "POST", "/admin/createGallery", adminToken, body, contentType)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := parseResponse(t, w)
	assert.EqualValues(t, 2, resp.Data["total_images"])
	assert.Contains(t, resp.Data["folder"], fmt.Sprint(clientUser.ID))
	assert.Equal(t, 2, s.storage.count())

	galleryData := resp.Data["gallery"].(map[string]any)
	galleryID := int64(galleryData["id"].(float64))
	assert.EqualValues(t, 2, galleryData["photos_count"])

	// Admin listing includes the client's display fields.
	w = s.do(t, "GET", "/admin/getAllGalleries", adminToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "client@test.com")

	// The client now sees their gallery.
	w = s.do(t, "GET", "/user/getGallery", clientToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Wedding Day")

	// The client cannot reach the admin surface.
	w = s.do(t, "GET", "/admin/getAllGalleries", clientToken, nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Update gallery metadata.
	w = s.doJSON(t, "PUT", fmt.Sprintf("/admin/updateGallery/%d", galleryID), adminToken, map[string]string{"title": "Wedding Final"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Wedding Final")

	// Deleting the gallery removes the rows and the blobs.
	w = s.do(t, "DELETE", fmt.Sprintf("/admin/deleteGallery/%d", galleryID), adminToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, s.storage.count())

	var imgCount int64
	s.db.Model(&domain.GalleryImage{}).Count(&imgCount)
	assert.Equal(t, int64(0), imgCount)

	// Deleting again reports not found.
	w = s.do(t, "DELETE", fmt.Sprintf("/admin/deleteGallery/%d", galleryID), adminToken, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The audit log recorded the admin actions.
	w = s.do(t, "GET", "/admin/logs", adminToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gallery.create")
	assert.Contains(t, w.Body.String(), "gallery.delete")
}

func TestGalleryImageDownloadAndSelection(t *testing.T) {
	s := setupSuite(t)
	s.createUser(t, "admin@test.com", domain.RoleAdmin)
	owner := s.createUser(t, "owner@test.com", domain.RoleClient)
	s.createUser(t, "other@test.com", domain.RoleClient)

	adminToken := s.login(t, "admin@test.com")
	ownerToken := s.login(t, "owner@test.com")
	otherToken := s.login(t, "other@test.com")

	body, contentType := buildGalleryForm(t, owner.ID, "Portraits", map[string][]byte{"pic.png": pngBytes})
	w := s.do(t, "POST", "/admin/createGallery", adminToken, body, contentType)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var img domain.GalleryImage
	require.NoError(t, s.db.First(&img).Error)

	// Owner can download their image.
	w = s.do(t, "GET", fmt.Sprintf("/user/downloadImage/%d", img.ID), ownerToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "pic.png")

	// A different client is refused.
	w = s.do(t, "GET", fmt.Sprintf("/user/downloadImage/%d", img.ID), otherToken, nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Owner picks the image.
	w = s.doJSON(t, "PUT", fmt.Sprintf("/user/selectImage/%d", img.ID), ownerToken, map[string]bool{"selected": true})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated domain.GalleryImage
	require.NoError(t, s.db.First(&updated, img.ID).Error)
	assert.True(t, updated.IsSelected)
}

func TestPublicContentOpenToAnonymous(t *testing.T) {
	s := setupSuite(t)
	require.NoError(t, s.db.Create(&domain.CompanyInfo{Name: "Studio Portal"}).Error)
	require.NoError(t, s.db.Create(&domain.FAQ{Question: "Q", Answer: "A", SortOrder: 1}).Error)

	w := s.do(t, "GET", "/public/companyInfo", "", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Studio Portal")

	w = s.do(t, "GET", "/public/faqs", "", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Admin content management needs the admin role.
	w = s.doJSON(t, "POST", "/admin/faqs", "", map[string]any{"question": "X", "answer": "Y"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestsFlow(t *testing.T) {
	s := setupSuite(t)
	s.createUser(t, "admin@test.com", domain.RoleAdmin)
	s.createUser(t, "client@test.com", domain.RoleClient)

	adminToken := s.login(t, "admin@test.com")
	clientToken := s.login(t, "client@test.com")

	w := s.doJSON(t, "POST", "/user/request", clientToken, map[string]string{
		"type":    "scheduling",
		"subject": "Reschedule",
		"message": "Can we move the shoot to Friday?",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, "GET", "/admin/requests", adminToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Reschedule")
	assert.Contains(t, w.Body.String(), "client@test.com")

	var req domain.GeneralRequest
	require.NoError(t, s.db.First(&req).Error)

	w = s.doJSON(t, "PUT", fmt.Sprintf("/admin/requests/%d/status", req.ID), adminToken, map[string]string{"status": "resolved"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, "GET", "/user/requests", clientToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "resolved")

	// Unknown status value is rejected.
	w = s.doJSON(t, "PUT", fmt.Sprintf("/admin/requests/%d/status", req.ID), adminToken, map[string]string{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
