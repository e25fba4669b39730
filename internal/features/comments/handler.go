package comments

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/hazra-dev/vidtube/internal/features/videos"
	"github.com/hazra-dev/vidtube/internal/pkg/pagination"
	"github.com/hazra-dev/vidtube/internal/pkg/response"
	apperrors "github.com/hazra-dev/vidtube/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler handles comment-related HTTP requests
type Handler struct {
	repo       *Repository
	videosRepo *videos.Repository
}

// NewHandler creates a new comment handler
func NewHandler(repo *Repository, videosRepo *videos.Repository) *Handler {
	return &Handler{
		repo:       repo,
		videosRepo: videosRepo,
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

// Create godoc
// @Summary Post a comment on a video
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Param request body CreateRequest true "Comment content"
// @Success 201 {object} response.APIResponse{data=Comment}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /videos/{id}/comments [post]
func (h *Handler) Create(c *gin.Context) {
	owner, ok := requestorID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid video ID format", "INVALID_ID")
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", "INVALID_BODY")
		return
	}
	if err := ValidateContent(req.Content); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_CONTENT")
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

	comment := &Comment{
		Video:   videoID,
		Owner:   owner,
		Content: req.Content,
	}
	if err := h.repo.Insert(ctx, comment); err != nil {
		response.InternalServerError(c, "Failed to store comment", "INSERT_FAILED")
		return
	}

	response.Created(c, comment, "Comment added successfully.")
}

// List godoc
// @Summary List comments on a video
// @Tags comments
// @Produce json
// @Param id path string true "Video ID"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} response.APIResponse{data=response.PaginatedData}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /videos/{id}/comments [get]
func (h *Handler) List(c *gin.Context) {
	videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid video ID format", "INVALID_ID")
		return
	}

	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", "INVALID_QUERY")
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

	total, err := h.repo.CountByVideo(ctx, videoID)
	if err != nil {
		response.InternalServerError(c, "Failed to count comments", "DATABASE_ERROR")
		return
	}

	p := pagination.New(query.Page, query.Limit, total)
	items, err := h.repo.ListByVideo(ctx, videoID, p.Offset, p.Limit)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch comments", "DATABASE_ERROR")
		return
	}

	response.Paginated(c, items, total, p.Limit, p.Page, p.Pages)
}

// Delete godoc
// @Summary Delete a comment
// @Description Owner only
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /comments/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	requestor, ok := requestorID(c)
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
	comment, err := h.repo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Comment not found", "COMMENT_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch comment", "DATABASE_ERROR")
		return
	}

	if comment.Owner != requestor {
		response.Forbidden(c, "Only the owner can delete this comment", "NOT_OWNER")
		return
	}

	if err := h.repo.Delete(ctx, commentID); err != nil {
		response.InternalServerError(c, "Failed to delete comment", "DELETE_FAILED")
		return
	}

	response.Success(c, nil, "Comment deleted successfully.")
}
