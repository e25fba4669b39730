package users

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/hazra-dev/vidtube/internal/features/videos"
	"github.com/hazra-dev/vidtube/internal/pkg/pagination"
	"github.com/hazra-dev/vidtube/internal/pkg/response"
	apperrors "github.com/hazra-dev/vidtube/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler handles user-related HTTP requests
type Handler struct {
	repo       *Repository
	videosRepo *videos.Repository
}

// NewHandler creates a new user handler
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

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=User}
// @Failure 404 {object} response.APIResponse
// @Router /users/me [get]
func (h *Handler) Me(c *gin.Context) {
	userID, ok := requestorID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	user, err := h.repo.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "User not found", "USER_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch user", "DATABASE_ERROR")
		return
	}

	response.Success(c, user)
}

// WatchHistory godoc
// @Summary Get the authenticated user's watch history
// @Description Paginated, most recently watched first
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} response.APIResponse{data=response.PaginatedData}
// @Router /users/watch-history [get]
func (h *Handler) WatchHistory(c *gin.Context) {
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
	ids, err := h.repo.WatchHistoryIDs(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "User not found", "USER_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch watch history", "DATABASE_ERROR")
		return
	}

	p := pagination.New(query.Page, query.Limit, int64(len(ids)))
	pageIDs := PageIDs(ids, p.Offset, p.Limit)

	items, err := h.videosRepo.FindWithOwnerByIDs(ctx, pageIDs)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch videos", "DATABASE_ERROR")
		return
	}

	response.Paginated(c, OrderByHistory(pageIDs, items), int64(len(ids)), p.Limit, p.Page, p.Pages)
}

// RemoveFromHistory godoc
// @Summary Remove one video from the watch history
// @Description Removing a video that is not in the history succeeds silently
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RemoveHistoryRequest true "Video to remove"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /users/watch-history [patch]
func (h *Handler) RemoveFromHistory(c *gin.Context) {
	userID, ok := requestorID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	var req RemoveHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "videoId is required", "INVALID_BODY")
		return
	}

	videoID, err := primitive.ObjectIDFromHex(req.VideoID)
	if err != nil {
		response.BadRequest(c, "Invalid video ID format", "INVALID_ID")
		return
	}

	if err := h.repo.RemoveVisit(c.Request.Context(), userID, videoID); err != nil {
		response.InternalServerError(c, "Failed to update watch history", "DATABASE_ERROR")
		return
	}

	response.Success(c, nil, "Watch history updated.")
}

// ClearHistory godoc
// @Summary Clear the entire watch history
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /users/watch-history [delete]
func (h *Handler) ClearHistory(c *gin.Context) {
	userID, ok := requestorID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	if err := h.repo.ClearHistory(c.Request.Context(), userID); err != nil {
		response.InternalServerError(c, "Failed to clear watch history", "DATABASE_ERROR")
		return
	}

	response.Success(c, nil, "Watch history cleared.")
}
