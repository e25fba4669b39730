package likes

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/hazra-dev/vidtube/internal/features/comments"
	"github.com/hazra-dev/vidtube/internal/features/videos"
	"github.com/hazra-dev/vidtube/internal/pkg/pagination"
	"github.com/hazra-dev/vidtube/internal/pkg/response"
	apperrors "github.com/hazra-dev/vidtube/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the persistence surface the handler needs. *Repository
// implements it; tests substitute fakes.
type Store interface {
	Find(ctx context.Context, userID, targetID primitive.ObjectID, targetKind string) (*Like, error)
	Create(ctx context.Context, userID, targetID primitive.ObjectID, targetKind string) error
	DeleteByID(ctx context.Context, likeID primitive.ObjectID) error
	Exists(ctx context.Context, userID, targetID primitive.ObjectID, targetKind string) (bool, error)
	Count(ctx context.Context, targetID primitive.ObjectID, targetKind string) (int64, error)
	CountLikedVideos(ctx context.Context, userID primitive.ObjectID) (int64, error)
	ListLikedVideos(ctx context.Context, userID primitive.ObjectID, offset, limit int) ([]videos.VideoWithOwner, error)
}

// VideoFinder resolves like targets in the videos collection.
type VideoFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*videos.Video, error)
}

// CommentFinder resolves like targets in the comments collection.
type CommentFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*comments.Comment, error)
}

// Handler handles like-related HTTP requests
type Handler struct {
	repo         Store
	videosRepo   VideoFinder
	commentsRepo CommentFinder
}

// NewHandler creates a new like handler
func NewHandler(repo Store, videosRepo VideoFinder, commentsRepo CommentFinder) *Handler {
	return &Handler{
		repo:         repo,
		videosRepo:   videosRepo,
		commentsRepo: commentsRepo,
	}
}

func requestorID(c *gin.Context) (primitive.ObjectID, bool) {
	raw := c.GetString("userID")
	if raw == "" {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// toggle flips the requestor's like on a target. It returns the
// resulting liked state.
func (h *Handler) toggle(c *gin.Context, userID, targetID primitive.ObjectID, targetKind string) (bool, bool) {
	ctx := c.Request.Context()

	existing, err := h.repo.Find(ctx, userID, targetID, targetKind)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		response.InternalServerError(c, "Failed to check like state", "DATABASE_ERROR")
		return false, false
	}

	if existing != nil {
		if err := h.repo.DeleteByID(ctx, existing.ID); err != nil {
			response.InternalServerError(c, "Failed to remove like", "DATABASE_ERROR")
			return false, false
		}
		return false, true
	}

	if err := h.repo.Create(ctx, userID, targetID, targetKind); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// Another request liked the target between our check and
			// the insert.
			response.Conflict(c, "Already liked", "ALREADY_LIKED")
			return false, false
		}
		response.InternalServerError(c, "Failed to create like", "DATABASE_ERROR")
		return false, false
	}
	return true, true
}

// ToggleVideoLike godoc
// @Summary Toggle a like on a video
// @Description Like the video if not yet liked, unlike it otherwise
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} response.APIResponse{data=VideoToggleResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /videos/{id}/like [post]
func (h *Handler) ToggleVideoLike(c *gin.Context) {
	userID, ok := requestorID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid video ID format", "INVALID_ID")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.videosRepo.FindByID(ctx, videoID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Video not found", "VIDEO_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch video", "DATABASE_ERROR")
		return
	}

	liked, ok := h.toggle(c, userID, videoID, KindVideo)
	if !ok {
		return
	}

	total, err := h.repo.Count(ctx, videoID, KindVideo)
	if err != nil {
		response.InternalServerError(c, "Failed to count likes", "DATABASE_ERROR")
		return
	}

	message := "Video unliked."
	if liked {
		message = "Video liked."
	}
	response.Success(c, VideoToggleResponse{Liked: liked, TotalLikes: total}, message)
}

// ToggleCommentLike godoc
// @Summary Toggle a like on a comment
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} response.APIResponse{data=CommentToggleResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /comments/{id}/like [post]
func (h *Handler) ToggleCommentLike(c *gin.Context) {
	userID, ok := requestorID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	commentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid comment ID format", "INVALID_ID")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.commentsRepo.FindByID(ctx, commentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Comment not found", "COMMENT_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch comment", "DATABASE_ERROR")
		return
	}

	liked, ok := h.toggle(c, userID, commentID, KindComment)
	if !ok {
		return
	}

	message := "Comment unliked."
	if liked {
		message = "Comment liked."
	}
	response.Success(c, CommentToggleResponse{Liked: liked}, message)
}

// status reports the like count for a target, with the viewer state
// resolved from the optional uId query parameter. An absent or
// malformed uId yields a count-only response, never an error.
func (h *Handler) status(c *gin.Context, targetID primitive.ObjectID, targetKind string) {
	ctx := c.Request.Context()

	total, err := h.repo.Count(ctx, targetID, targetKind)
	if err != nil {
		response.InternalServerError(c, "Failed to count likes", "DATABASE_ERROR")
		return
	}

	result := StatusResponse{TotalLikes: total}
	if uID, err := primitive.ObjectIDFromHex(c.Query("uId")); err == nil {
		liked, err := h.repo.Exists(ctx, uID, targetID, targetKind)
		if err != nil {
			response.InternalServerError(c, "Failed to check like state", "DATABASE_ERROR")
			return
		}
		result.Liked = &liked
	}

	response.Success(c, result)
}

// VideoLikeStatus godoc
// @Summary Like status for a video
// @Description Returns the like count, plus the given user's liked flag when uId is a valid user id
// @Tags likes
// @Produce json
// @Param id path string true "Video ID"
// @Param uId query string false "Viewer user ID"
// @Success 200 {object} response.APIResponse{data=StatusResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /videos/{id}/like/status [get]
func (h *Handler) VideoLikeStatus(c *gin.Context) {
	videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid video ID format", "INVALID_ID")
		return
	}

	if _, err := h.videosRepo.FindByID(c.Request.Context(), videoID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Video not found", "VIDEO_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch video", "DATABASE_ERROR")
		return
	}

	h.status(c, videoID, KindVideo)
}

// CommentLikeStatus godoc
// @Summary Like status for a comment
// @Tags likes
// @Produce json
// @Param id path string true "Comment ID"
// @Param uId query string false "Viewer user ID"
// @Success 200 {object} response.APIResponse{data=StatusResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /comments/{id}/like/status [get]
func (h *Handler) CommentLikeStatus(c *gin.Context) {
	commentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid comment ID format", "INVALID_ID")
		return
	}

	if _, err := h.commentsRepo.FindByID(c.Request.Context(), commentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Comment not found", "COMMENT_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch comment", "DATABASE_ERROR")
		return
	}

	h.status(c, commentID, KindComment)
}

// LikedVideos godoc
// @Summary List videos the requestor has liked
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} response.APIResponse{data=response.PaginatedData}
// @Router /likes/videos [get]
func (h *Handler) LikedVideos(c *gin.Context) {
	userID, ok := requestorID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", "INVALID_QUERY")
		return
	}

	ctx := c.Request.Context()
	total, err := h.repo.CountLikedVideos(ctx, userID)
	if err != nil {
		response.InternalServerError(c, "Failed to count liked videos", "DATABASE_ERROR")
		return
	}

	p := pagination.New(query.Page, query.Limit, total)
	items, err := h.repo.ListLikedVideos(ctx, userID, p.Offset, p.Limit)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch liked videos", "DATABASE_ERROR")
		return
	}

	response.Paginated(c, items, total, p.Limit, p.Page, p.Pages)
}
