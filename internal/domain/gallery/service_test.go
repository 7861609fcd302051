package gallery

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studioportal/internal/domain"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

type mockRepo struct {
	client *domain.User

	createErr   error
	createdG    *domain.Gallery
	createdImgs []domain.GalleryImage

	gallery *domain.Gallery
	image   *domain.GalleryImage

	paths     []string
	deleteErr error
	deleted   []int64

	selectedID    int64
	selectedValue bool
}

func (m *mockRepo) GetClient(ctx context.Context, clientID int64) (*domain.User, error) {
	if m.client == nil || m.client.ID != clientID {
		return nil, ErrClientNotFound
	}
	return m.client, nil
}

func (m *mockRepo) CreateWithImages(ctx context.Context, g *domain.Gallery, images []domain.GalleryImage) error {
	if m.createErr != nil {
		return m.createErr
	}
	g.ID = 1
	m.createdG = g
	m.createdImgs = images
	return nil
}

func (m *mockRepo) ListWithClients(ctx context.Context) ([]GalleryWithClient, error) {
	return nil, nil
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Gallery, error) {
	if m.gallery == nil || m.gallery.ID != id {
		return nil, ErrGalleryNotFound
	}
	return m.gallery, nil
}

func (m *mockRepo) ListByClient(ctx context.Context, clientID int64) ([]domain.Gallery, error) {
	return nil, nil
}

func (m *mockRepo) UpdateMeta(ctx context.Context, id int64, updates map[string]any) error {
	return nil
}

func (m *mockRepo) ImagePaths(ctx context.Context, galleryID int64) ([]string, error) {
	return m.paths, nil
}

func (m *mockRepo) DeleteWithImages(ctx context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRepo) GetImage(ctx context.Context, imageID int64) (*domain.GalleryImage, error) {
	if m.image == nil || m.image.ID != imageID {
		return nil, ErrImageNotFound
	}
	return m.image, nil
}

func (m *mockRepo) SetImageSelected(ctx context.Context, imageID int64, selected bool) error {
	m.selectedID = imageID
	m.selectedValue = selected
	return nil
}

type mockStorage struct {
	uploads     []string // storage names, in call order
	deletes     []string // paths, in call order
	failUploads int      // fail this many leading Upload calls
	uploadCalls int
	deleteErrOn map[string]bool
}

func (m *mockStorage) Upload(ctx context.Context, body io.Reader, folder, name, contentType string) (string, string, error) {
	m.uploadCalls++
	if m.uploadCalls <= m.failUploads {
		return "", "", errors.New("storage unavailable")
	}
	path := folder + "/" + name
	m.uploads = append(m.uploads, name)
	return "https://cdn.test/" + path, path, nil
}

func (m *mockStorage) Delete(ctx context.Context, path string) error {
	if m.deleteErrOn[path] {
		return errors.New("delete failed")
	}
	m.deletes = append(m.deletes, path)
	return nil
}

func (m *mockStorage) Download(ctx context.Context, path string) (io.ReadCloser, string, error) {
	return io.NopCloser(strings.NewReader("blob")), "image/jpeg", nil
}

type testFile struct {
	name string
	data []byte
}

func buildFileHeaders(t *testing.T, files []testFile) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		fw, err := w.CreateFormFile("images", f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["images"]
}

func newTestService(repo *mockRepo, storage *mockStorage) *Service {
	return NewService(repo, storage, zap.NewNop())
}

func TestCreate_PartialSuccess(t *testing.T) {
	repo := &mockRepo{client: &domain.User{ID: 5, FirstName: "Anna", LastName: "Korobova", Role: domain.RoleClient}}
	storage := &mockStorage{}
	svc := newTestService(repo, storage)

	files := buildFileHeaders(t, []testFile{
		{name: "one.png", data: pngBytes},
		{name: "notes.txt", data: []byte("plain text, not an image at all")},
		{name: "two.png", data: pngBytes},
	})

	result, err := svc.Create(context.Background(), 1, CreateGalleryRequest{
		ClientID: 5, Title: "Wedding", ServiceType: "wedding",
	}, files)
	require.NoError(t, err)

	// Two of three uploaded; the text file failed but did not abort the batch.
	assert.Len(t, result.Images, 2)
	assert.Len(t, result.UploadResults, 3)
	assert.True(t, result.UploadResults[0].OK)
	assert.False(t, result.UploadResults[1].OK)
	assert.NotEmpty(t, result.UploadResults[1].Error)
	assert.True(t, result.UploadResults[2].OK)

	assert.Equal(t, 2, result.Gallery.PhotosCount)
	assert.True(t, result.Images[0].IsPrimary)
	assert.False(t, result.Images[1].IsPrimary)
	assert.Equal(t, result.Images[0].ImageURL, result.Gallery.CoverImageURL)
	assert.Equal(t, "5-annakorobova", result.Folder)
	assert.Equal(t, 1, result.Images[0].UploadOrder)
	assert.Equal(t, 3, result.Images[1].UploadOrder)

	require.NotNil(t, repo.createdG)
	assert.Len(t, repo.createdImgs, 2)
}

func TestCreate_FirstUploadFailsPrimaryShifts(t *testing.T) {
	repo := &mockRepo{client: &domain.User{ID: 5, FirstName: "Anna", LastName: "K", Role: domain.RoleClient}}
	storage := &mockStorage{failUploads: 1}
	svc := newTestService(repo, storage)

	files := buildFileHeaders(t, []testFile{
		{name: "one.png", data: pngBytes},
		{name: "two.png", data: pngBytes},
	})

	result, err := svc.Create(context.Background(), 1, CreateGalleryRequest{ClientID: 5, Title: "T", ServiceType: "s"}, files)
	require.NoError(t, err)

	require.Len(t, result.Images, 1)
	assert.True(t, result.Images[0].IsPrimary)
	assert.Equal(t, "two.png", result.Images[0].OriginalFilename)
	assert.Equal(t, result.Images[0].ImageURL, result.Gallery.CoverImageURL)
}

func TestCreate_AllUploadsFailedPersistsNothing(t *testing.T) {
	repo := &mockRepo{client: &domain.User{ID: 5, FirstName: "A", LastName: "B", Role: domain.RoleClient}}
	storage := &mockStorage{failUploads: 2}
	svc := newTestService(repo, storage)

	files := buildFileHeaders(t, []testFile{
		{name: "one.png", data: pngBytes},
		{name: "two.png", data: pngBytes},
	})

	_, err := svc.Create(context.Background(), 1, CreateGalleryRequest{ClientID: 5, Title: "T", ServiceType: "s"}, files)
	assert.ErrorIs(t, err, ErrAllUploadsFailed)
	assert.Nil(t, repo.createdG)
}

func TestCreate_NoFiles(t *testing.T) {
	svc := newTestService(&mockRepo{}, &mockStorage{})
	_, err := svc.Create(context.Background(), 1, CreateGalleryRequest{ClientID: 5}, nil)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestCreate_UnknownClient(t *testing.T) {
	svc := newTestService(&mockRepo{}, &mockStorage{})
	files := buildFileHeaders(t, []testFile{{name: "one.png", data: pngBytes}})
	_, err := svc.Create(context.Background(), 1, CreateGalleryRequest{ClientID: 99}, files)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestCreate_DBFailureCleansUpBlobs(t *testing.T) {
	repo := &mockRepo{
		client:    &domain.User{ID: 5, FirstName: "A", LastName: "B", Role: domain.RoleClient},
		createErr: errors.New("db down"),
	}
	storage := &mockStorage{}
	svc := newTestService(repo, storage)

	files := buildFileHeaders(t, []testFile{
		{name: "one.png", data: pngBytes},
		{name: "two.png", data: pngBytes},
	})

	_, err := svc.Create(context.Background(), 1, CreateGalleryRequest{ClientID: 5, Title: "T", ServiceType: "s"}, files)
	require.Error(t, err)

	// No rows landed, so every uploaded blob must be cleaned up again.
	assert.Len(t, storage.deletes, 2)
}

func TestDelete_CountsBlobFailuresIndependently(t *testing.T) {
	repo := &mockRepo{
		gallery: &domain.Gallery{ID: 3, ClientID: 5},
		paths:   []string{"5-a/x.png", "5-a/y.png", "5-a/z.png"},
	}
	storage := &mockStorage{deleteErrOn: map[string]bool{"5-a/y.png": true}}
	svc := newTestService(repo, storage)

	result, err := svc.Delete(context.Background(), 3)
	require.NoError(t, err)

	// One failing blob never blocks the rest.
	assert.Equal(t, 2, result.DeletedFiles)
	assert.Equal(t, 1, result.FailedFiles)
	assert.Equal(t, []int64{3}, repo.deleted)
	assert.Equal(t, []string{"5-a/x.png", "5-a/z.png"}, storage.deletes)
}

func TestDelete_MissingGallery(t *testing.T) {
	repo := &mockRepo{deleteErr: ErrGalleryNotFound}
	svc := newTestService(repo, &mockStorage{})

	_, err := svc.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, ErrGalleryNotFound)
	assert.Empty(t, repo.deleted)
}

func TestSelectImage_OwnershipEnforced(t *testing.T) {
	repo := &mockRepo{
		gallery: &domain.Gallery{ID: 3, ClientID: 5},
		image:   &domain.GalleryImage{ID: 10, GalleryID: 3},
	}
	svc := newTestService(repo, &mockStorage{})

	err := svc.SelectImage(context.Background(), 5, 10, true)
	require.NoError(t, err)
	assert.Equal(t, int64(10), repo.selectedID)
	assert.True(t, repo.selectedValue)

	err = svc.SelectImage(context.Background(), 6, 10, true)
	assert.ErrorIs(t, err, ErrNotGalleryOwner)
}

func TestDownloadImage_OwnershipEnforced(t *testing.T) {
	repo := &mockRepo{
		gallery: &domain.Gallery{ID: 3, ClientID: 5},
		image:   &domain.GalleryImage{ID: 10, GalleryID: 3, FilePath: "5-a/x.png", OriginalFilename: "x.png"},
	}
	svc := newTestService(repo, &mockStorage{})

	body, contentType, filename, err := svc.DownloadImage(context.Background(), 5, 10)
	require.NoError(t, err)
	defer body.Close()
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, "x.png", filename)

	_, _, _, err = svc.DownloadImage(context.Background(), 6, 10)
	assert.ErrorIs(t, err, ErrNotGalleryOwner)
}

func TestFolderKey(t *testing.T) {
	assert.Equal(t, "7-annamariaoneil", FolderKey(7, "Anna-Maria O'Neil"))
	assert.Equal(t, "12-ivanpetrov2", FolderKey(12, "Ivan Petrov 2"))
	assert.Equal(t, "3-", FolderKey(3, "---"))
}
