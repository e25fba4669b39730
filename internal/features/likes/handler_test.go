package likes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hazra-dev/vidtube/internal/features/comments"
	"github.com/hazra-dev/vidtube/internal/features/videos"
	apperrors "github.com/hazra-dev/vidtube/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore keeps likes in memory, keyed the way the unique index
// would.
type fakeStore struct {
	likes     map[string]*Like
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{likes: make(map[string]*Like)}
}

func key(userID, targetID primitive.ObjectID, targetKind string) string {
	return userID.Hex() + "/" + targetID.Hex() + "/" + targetKind
}

func (f *fakeStore) Find(ctx context.Context, userID, targetID primitive.ObjectID, targetKind string) (*Like, error) {
	if like, ok := f.likes[key(userID, targetID, targetKind)]; ok {
		return like, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeStore) Create(ctx context.Context, userID, targetID primitive.ObjectID, targetKind string) error {
	if f.createErr != nil {
		return f.createErr
	}
	k := key(userID, targetID, targetKind)
	if _, ok := f.likes[k]; ok {
		return apperrors.ErrConflict
	}
	f.likes[k] = &Like{
		ID:         primitive.NewObjectID(),
		TargetID:   targetID,
		TargetKind: targetKind,
		LikedBy:    userID,
		CreatedAt:  time.Now(),
	}
	return nil
}

func (f *fakeStore) DeleteByID(ctx context.Context, likeID primitive.ObjectID) error {
	for k, like := range f.likes {
		if like.ID == likeID {
			delete(f.likes, k)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) Exists(ctx context.Context, userID, targetID primitive.ObjectID, targetKind string) (bool, error) {
	_, ok := f.likes[key(userID, targetID, targetKind)]
	return ok, nil
}

func (f *fakeStore) Count(ctx context.Context, targetID primitive.ObjectID, targetKind string) (int64, error) {
	var total int64
	for _, like := range f.likes {
		if like.TargetID == targetID && like.TargetKind == targetKind {
			total++
		}
	}
	return total, nil
}

func (f *fakeStore) CountLikedVideos(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	var total int64
	for _, like := range f.likes {
		if like.LikedBy == userID && like.TargetKind == KindVideo {
			total++
		}
	}
	return total, nil
}

func (f *fakeStore) ListLikedVideos(ctx context.Context, userID primitive.ObjectID, offset, limit int) ([]videos.VideoWithOwner, error) {
	return nil, nil
}

type fakeVideoFinder struct {
	known map[primitive.ObjectID]bool
}

func (f *fakeVideoFinder) FindByID(ctx context.Context, id primitive.ObjectID) (*videos.Video, error) {
	if f.known[id] {
		return &videos.Video{ID: id}, nil
	}
	return nil, apperrors.ErrNotFound
}

type fakeCommentFinder struct {
	known map[primitive.ObjectID]bool
}

func (f *fakeCommentFinder) FindByID(ctx context.Context, id primitive.ObjectID) (*comments.Comment, error) {
	if f.known[id] {
		return &comments.Comment{ID: id}, nil
	}
	return nil, apperrors.ErrNotFound
}

// identity plants an authenticated user the way the auth middleware
// does.
func identity(id primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id.Hex())
		c.Next()
	}
}

func newVideoLikeRouter(t *testing.T, store Store, videoID primitive.ObjectID, user primitive.ObjectID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewHandler(store, &fakeVideoFinder{known: map[primitive.ObjectID]bool{videoID: true}}, &fakeCommentFinder{})

	router := gin.New()
	router.POST("/videos/:id/like", identity(user), handler.ToggleVideoLike)
	router.GET("/videos/:id/like/status", handler.VideoLikeStatus)
	return router
}

func TestToggleVideoLikeRoundTrip(t *testing.T) {
	user := primitive.NewObjectID()
	videoID := primitive.NewObjectID()
	store := newFakeStore()
	router := newVideoLikeRouter(t, store, videoID, user)

	toggle := func() VideoToggleResponse {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/videos/"+videoID.Hex()+"/like", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data VideoToggleResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body.Data
	}

	first := toggle()
	require.True(t, first.Liked)
	require.EqualValues(t, 1, first.TotalLikes)

	// The second toggle undoes the first, leaving no record behind.
	second := toggle()
	require.False(t, second.Liked)
	require.EqualValues(t, 0, second.TotalLikes)
	require.Empty(t, store.likes)
}

func TestToggleVideoLikeLostRaceConflicts(t *testing.T) {
	user := primitive.NewObjectID()
	videoID := primitive.NewObjectID()
	store := newFakeStore()
	// Simulate a concurrent insert landing between the handler's check
	// and its own insert.
	store.createErr = apperrors.ErrConflict
	router := newVideoLikeRouter(t, store, videoID, user)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/videos/"+videoID.Hex()+"/like", nil))

	require.Equal(t, http.StatusConflict, w.Code)

	var envelope struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "ALREADY_LIKED", envelope.Code)
}

func TestToggleVideoLikeMissingVideo(t *testing.T) {
	user := primitive.NewObjectID()
	router := newVideoLikeRouter(t, newFakeStore(), primitive.NewObjectID(), user)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/videos/"+primitive.NewObjectID().Hex()+"/like", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestVideoLikeStatusViewerFlag(t *testing.T) {
	user := primitive.NewObjectID()
	videoID := primitive.NewObjectID()
	store := newFakeStore()
	require.NoError(t, store.Create(context.Background(), user, videoID, KindVideo))
	router := newVideoLikeRouter(t, store, videoID, user)

	status := func(path string) map[string]json.RawMessage {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code)

		var envelope struct {
			Data map[string]json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		return envelope.Data
	}

	// Anonymous lookups get the count only; the liked flag is absent,
	// not false.
	data := status("/videos/" + videoID.Hex() + "/like/status")
	require.JSONEq(t, "1", string(data["totalLikes"]))
	require.NotContains(t, data, "liked")

	// A malformed uId is ignored the same way.
	data = status("/videos/" + videoID.Hex() + "/like/status?uId=garbage")
	require.NotContains(t, data, "liked")

	data = status("/videos/" + videoID.Hex() + "/like/status?uId=" + user.Hex())
	require.JSONEq(t, "true", string(data["liked"]))

	data = status("/videos/" + videoID.Hex() + "/like/status?uId=" + primitive.NewObjectID().Hex())
	require.JSONEq(t, "false", string(data["liked"]))
}

func TestToggleCommentLike(t *testing.T) {
	gin.SetMode(gin.TestMode)

	user := primitive.NewObjectID()
	commentID := primitive.NewObjectID()
	store := newFakeStore()
	handler := NewHandler(store, &fakeVideoFinder{}, &fakeCommentFinder{known: map[primitive.ObjectID]bool{commentID: true}})

	router := gin.New()
	router.POST("/comments/:id/like", identity(user), handler.ToggleCommentLike)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/comments/"+commentID.Hex()+"/like", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data CommentToggleResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Data.Liked)

	exists, err := store.Exists(context.Background(), user, commentID, KindComment)
	require.NoError(t, err)
	require.True(t, exists)
}
