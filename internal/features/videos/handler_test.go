package videos

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hazra-dev/vidtube/internal/pkg/cloudinary"
	"github.com/hazra-dev/vidtube/internal/pkg/response"
	apperrors "github.com/hazra-dev/vidtube/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestViewerID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// No identity set: anonymous.
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := viewerID(c)
	require.False(t, ok)

	// Malformed identity is treated as anonymous, never as a zero id.
	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Set("userID", "not-an-object-id")
	_, ok = viewerID(c)
	require.False(t, ok)

	want := primitive.NewObjectID()
	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Set("userID", want.Hex())
	got, ok := viewerID(c)
	require.True(t, ok)
	require.Equal(t, want, got)
}

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	video *Video

	deleteErr error

	incrementCalls    int
	setPublishedCalls []bool
	deleteCalls       int
	lastIncludeDrafts bool

	published   int64
	unpublished int64
}

func (f *fakeStore) Insert(ctx context.Context, video *Video) error {
	video.ID = primitive.NewObjectID()
	return nil
}

func (f *fakeStore) FindByID(ctx context.Context, id primitive.ObjectID) (*Video, error) {
	if f.video == nil || f.video.ID != id {
		return nil, apperrors.ErrNotFound
	}
	v := *f.video
	return &v, nil
}

func (f *fakeStore) FindWithOwner(ctx context.Context, id primitive.ObjectID) (*VideoWithOwner, error) {
	if f.video == nil || f.video.ID != id {
		return nil, apperrors.ErrNotFound
	}
	return &VideoWithOwner{
		ID:    f.video.ID,
		Title: f.video.Title,
		Views: f.video.Views,
	}, nil
}

func (f *fakeStore) CountPublished(ctx context.Context) (int64, error) {
	return f.published, nil
}

func (f *fakeStore) ListPublished(ctx context.Context, offset, limit int) ([]VideoWithOwner, error) {
	return nil, nil
}

func (f *fakeStore) ListByOwner(ctx context.Context, ownerID primitive.ObjectID, includeDrafts bool, offset, limit int) ([]VideoWithOwner, error) {
	f.lastIncludeDrafts = includeDrafts
	return nil, nil
}

func (f *fakeStore) CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, int64, error) {
	return f.published, f.unpublished, nil
}

func (f *fakeStore) UpdateDetails(ctx context.Context, id primitive.ObjectID, title, description, thumbnail, thumbnailPublicID string) (*Video, error) {
	v := *f.video
	v.Title = title
	v.Description = description
	return &v, nil
}

func (f *fakeStore) SetPublished(ctx context.Context, id primitive.ObjectID, published bool) error {
	f.setPublishedCalls = append(f.setPublishedCalls, published)
	f.video.IsPublished = published
	return nil
}

func (f *fakeStore) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	f.incrementCalls++
	f.video.Views++
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.video = nil
	return nil
}

type fakeHistory struct {
	watched      bool
	recordCalls  int
	lastRecorded primitive.ObjectID
}

func (f *fakeHistory) HasWatched(ctx context.Context, userID, videoID primitive.ObjectID) (bool, error) {
	return f.watched, nil
}

func (f *fakeHistory) RecordVisit(ctx context.Context, userID, videoID primitive.ObjectID) error {
	f.recordCalls++
	f.lastRecorded = videoID
	return nil
}

type fakeMedia struct {
	released []string
}

func (f *fakeMedia) UploadVideo(ctx context.Context, file multipart.File) (*cloudinary.UploadResult, error) {
	return &cloudinary.UploadResult{URL: "http://cdn.test/v", PublicID: "v"}, nil
}

func (f *fakeMedia) UploadImage(ctx context.Context, file multipart.File) (*cloudinary.UploadResult, error) {
	return &cloudinary.UploadResult{URL: "http://cdn.test/i", PublicID: "i"}, nil
}

func (f *fakeMedia) Release(ctx context.Context, publicID, resourceType string) error {
	f.released = append(f.released, publicID)
	return nil
}

type fakeCleaner struct {
	calls []primitive.ObjectID
}

func (f *fakeCleaner) CleanupVideo(ctx context.Context, videoID primitive.ObjectID) error {
	f.calls = append(f.calls, videoID)
	return nil
}

// identity plants an authenticated user the way the auth middleware
// does.
func identity(id primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id.Hex())
		c.Next()
	}
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()
	var envelope response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestTogglePublishNonOwnerForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)

	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	store := &fakeStore{video: &Video{ID: primitive.NewObjectID(), Owner: owner, IsPublished: true}}
	handler := NewHandler(store, &fakeHistory{}, nil, nil)

	router := gin.New()
	router.PATCH("/videos/:id/publish", identity(stranger), handler.TogglePublish)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/videos/"+store.video.ID.Hex()+"/publish", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "NOT_OWNER", decodeEnvelope(t, w).Code)
	require.Empty(t, store.setPublishedCalls)
	require.True(t, store.video.IsPublished)
}

func TestTogglePublishOwnerFlips(t *testing.T) {
	gin.SetMode(gin.TestMode)

	owner := primitive.NewObjectID()
	store := &fakeStore{video: &Video{ID: primitive.NewObjectID(), Owner: owner, IsPublished: false}}
	handler := NewHandler(store, &fakeHistory{}, nil, nil)

	router := gin.New()
	router.PATCH("/videos/:id/publish", identity(owner), handler.TogglePublish)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/videos/"+store.video.ID.Hex()+"/publish", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []bool{true}, store.setPublishedCalls)
	require.True(t, store.video.IsPublished)
}

func TestDeleteFailureKeepsAssets(t *testing.T) {
	gin.SetMode(gin.TestMode)

	owner := primitive.NewObjectID()
	store := &fakeStore{
		video:     &Video{ID: primitive.NewObjectID(), Owner: owner, VideoPublicID: "vid-1", ThumbnailPublicID: "thumb-1"},
		deleteErr: apperrors.ErrDependency,
	}
	media := &fakeMedia{}
	cleaner := &fakeCleaner{}
	handler := NewHandler(store, &fakeHistory{}, media, cleaner)

	router := gin.New()
	router.DELETE("/videos/:id", identity(owner), handler.Delete)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/videos/"+store.video.ID.Hex(), nil)
	router.ServeHTTP(w, req)

	// A failed database delete must never release remote media or
	// remove engagement records.
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Empty(t, media.released)
	require.Empty(t, cleaner.calls)
}

func TestDeleteReleasesAssetsAndEngagement(t *testing.T) {
	gin.SetMode(gin.TestMode)

	owner := primitive.NewObjectID()
	videoID := primitive.NewObjectID()
	store := &fakeStore{
		video: &Video{ID: videoID, Owner: owner, VideoPublicID: "vid-1", ThumbnailPublicID: "thumb-1"},
	}
	media := &fakeMedia{}
	cleaner := &fakeCleaner{}
	handler := NewHandler(store, &fakeHistory{}, media, cleaner)

	router := gin.New()
	router.DELETE("/videos/:id", identity(owner), handler.Delete)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/videos/"+videoID.Hex(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, store.deleteCalls)
	require.Equal(t, []primitive.ObjectID{videoID}, cleaner.calls)
	require.Equal(t, []string{"vid-1", "thumb-1"}, media.released)
}

func TestGetIncrementsViewsOnFirstViewOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	viewer := primitive.NewObjectID()
	videoID := primitive.NewObjectID()

	// First visit: the viewer has no history entry yet.
	store := &fakeStore{video: &Video{ID: videoID, Views: 4}}
	history := &fakeHistory{watched: false}
	handler := NewHandler(store, history, nil, nil)

	router := gin.New()
	router.GET("/videos/:id", identity(viewer), handler.Get)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/videos/"+videoID.Hex(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, store.incrementCalls)
	require.Equal(t, 1, history.recordCalls)
	require.Equal(t, videoID, history.lastRecorded)

	// Repeat visit: the counter stays put but recency still updates.
	history.watched = true
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/videos/"+videoID.Hex(), nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, store.incrementCalls)
	require.Equal(t, 2, history.recordCalls)
}

func TestGetAnonymousLeavesViewsAlone(t *testing.T) {
	gin.SetMode(gin.TestMode)

	videoID := primitive.NewObjectID()
	store := &fakeStore{video: &Video{ID: videoID, Views: 4}}
	history := &fakeHistory{}
	handler := NewHandler(store, history, nil, nil)

	router := gin.New()
	router.GET("/videos/:id", handler.Get)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/videos/"+videoID.Hex(), nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Zero(t, store.incrementCalls)
	require.Zero(t, history.recordCalls)
}

func TestListByOwnerDraftVisibility(t *testing.T) {
	gin.SetMode(gin.TestMode)

	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	store := &fakeStore{published: 3, unpublished: 2}
	handler := NewHandler(store, &fakeHistory{}, nil, nil)

	serve := func(viewer primitive.ObjectID) *httptest.ResponseRecorder {
		router := gin.New()
		router.GET("/videos/owner/:ownerId", identity(viewer), handler.ListByOwner)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/videos/owner/"+owner.Hex(), nil))
		return w
	}

	// The owner sees drafts and a total that includes them.
	w := serve(owner)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, store.lastIncludeDrafts)

	var ownerBody struct {
		Data OwnerListingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ownerBody))
	require.EqualValues(t, 5, ownerBody.Data.Total)
	require.EqualValues(t, 3, ownerBody.Data.TotalPublished)
	require.EqualValues(t, 2, ownerBody.Data.TotalUnpublished)

	// Everyone else gets the published slice only.
	w = serve(stranger)
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, store.lastIncludeDrafts)

	var strangerBody struct {
		Data OwnerListingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &strangerBody))
	require.EqualValues(t, 3, strangerBody.Data.Total)
}
