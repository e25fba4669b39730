package videos

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/hazra-dev/vidtube/internal/pkg/cloudinary"
	"github.com/hazra-dev/vidtube/internal/pkg/logger"
	"github.com/hazra-dev/vidtube/internal/pkg/pagination"
	"github.com/hazra-dev/vidtube/internal/pkg/response"
	apperrors "github.com/hazra-dev/vidtube/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the persistence surface the handler needs. *Repository
// implements it; tests substitute fakes.
type Store interface {
	Insert(ctx context.Context, video *Video) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Video, error)
	FindWithOwner(ctx context.Context, id primitive.ObjectID) (*VideoWithOwner, error)
	CountPublished(ctx context.Context) (int64, error)
	ListPublished(ctx context.Context, offset, limit int) ([]VideoWithOwner, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID, includeDrafts bool, offset, limit int) ([]VideoWithOwner, error)
	CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (published, unpublished int64, err error)
	UpdateDetails(ctx context.Context, id primitive.ObjectID, title, description, thumbnail, thumbnailPublicID string) (*Video, error)
	SetPublished(ctx context.Context, id primitive.ObjectID, published bool) error
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// WatchHistory is the slice of the users feature the video detail
// endpoint needs for view accounting and recency tracking.
type WatchHistory interface {
	HasWatched(ctx context.Context, userID, videoID primitive.ObjectID) (bool, error)
	RecordVisit(ctx context.Context, userID, videoID primitive.ObjectID) error
}

// MediaStore is the remote asset surface. *cloudinary.Service
// implements it; nil means no media store is configured.
type MediaStore interface {
	UploadVideo(ctx context.Context, file multipart.File) (*cloudinary.UploadResult, error)
	UploadImage(ctx context.Context, file multipart.File) (*cloudinary.UploadResult, error)
	Release(ctx context.Context, publicID, resourceType string) error
}

// Cleaner removes engagement records attached to a deleted video.
type Cleaner interface {
	CleanupVideo(ctx context.Context, videoID primitive.ObjectID) error
}

// Handler handles video-related HTTP requests
type Handler struct {
	repo    Store
	history WatchHistory
	media   MediaStore
	cleanup Cleaner
}

// NewHandler creates a new video handler
func NewHandler(repo Store, history WatchHistory, media MediaStore, cleanup Cleaner) *Handler {
	return &Handler{
		repo:    repo,
		history: history,
		media:   media,
		cleanup: cleanup,
	}
}

// viewerID extracts the optional authenticated viewer from the context.
// The second return is false for anonymous requests; callers must not
// substitute a zero identity.
func viewerID(c *gin.Context) (primitive.ObjectID, bool) {
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

// Upload godoc
// @Summary Upload a video
// @Description Upload a video file with thumbnail, title and description
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param videoFile formData file true "Video file"
// @Param thumbnail formData file true "Thumbnail image"
// @Success 201 {object} response.APIResponse{data=Video}
// @Failure 400 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /videos [post]
func (h *Handler) Upload(c *gin.Context) {
	owner, ok := viewerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	if err := ValidateDetails(title, description); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_DETAILS")
		return
	}

	video := &Video{
		Title:       title,
		Description: description,
		Owner:       owner,
		IsPublished: true,
	}

	// Media upload fails soft: a failed upload leaves the references
	// empty instead of aborting the whole operation.
	if result := h.uploadFormFile(c, "videoFile", "video"); result != nil {
		video.VideoFile = result.URL
		video.VideoPublicID = result.PublicID
		video.Duration = result.Duration
	}
	if result := h.uploadFormFile(c, "thumbnail", "image"); result != nil {
		video.Thumbnail = result.URL
		video.ThumbnailPublicID = result.PublicID
	}

	if err := h.repo.Insert(c.Request.Context(), video); err != nil {
		response.InternalServerError(c, "Failed to store video", "INSERT_FAILED")
		return
	}

	response.Created(c, video, "Video uploaded successfully.")
}

// uploadFormFile pushes one multipart field to the media store, logging
// and returning nil on any failure.
func (h *Handler) uploadFormFile(c *gin.Context, field, kind string) *cloudinary.UploadResult {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return nil
	}
	defer file.Close()

	if h.media == nil {
		logger.Warn("media store unavailable, skipping %s upload", field)
		return nil
	}

	var result *cloudinary.UploadResult
	var uploadErr error
	if kind == "video" {
		if uploadErr = cloudinary.ValidateVideoFile(header); uploadErr == nil {
			result, uploadErr = h.media.UploadVideo(c.Request.Context(), file)
		}
	} else {
		if uploadErr = cloudinary.ValidateImageFile(header); uploadErr == nil {
			result, uploadErr = h.media.UploadImage(c.Request.Context(), file)
		}
	}
	if uploadErr != nil {
		logger.Warn("%s upload failed: %v", field, uploadErr)
		return nil
	}
	return result
}

// List godoc
// @Summary List published videos
// @Description Paginated listing of published videos with owner summaries
// @Tags videos
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} response.APIResponse{data=response.PaginatedData}
// @Router /videos [get]
func (h *Handler) List(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", "INVALID_QUERY")
		return
	}

	total, err := h.repo.CountPublished(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to count videos", "DATABASE_ERROR")
		return
	}

	p := pagination.New(query.Page, query.Limit, total)
	items, err := h.repo.ListPublished(c.Request.Context(), p.Offset, p.Limit)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch videos", "DATABASE_ERROR")
		return
	}

	response.Paginated(c, items, total, p.Limit, p.Page, p.Pages)
}

// ListByOwner godoc
// @Summary List an owner's videos
// @Description Owners see their drafts too; everyone else sees published videos only
// @Tags videos
// @Produce json
// @Param ownerId path string true "Owner user ID"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} response.APIResponse{data=OwnerListingResponse}
// @Failure 400 {object} response.APIResponse
// @Router /videos/owner/{ownerId} [get]
func (h *Handler) ListByOwner(c *gin.Context) {
	ownerID, err := primitive.ObjectIDFromHex(c.Param("ownerId"))
	if err != nil {
		response.BadRequest(c, "Invalid owner ID format", "INVALID_ID")
		return
	}

	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", "INVALID_QUERY")
		return
	}

	// The visibility variant is chosen once, here, from the viewer
	// identity. Drafts are returned only to their owner.
	viewer, authenticated := viewerID(c)
	isOwner := authenticated && viewer == ownerID

	published, unpublished, err := h.repo.CountByOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.InternalServerError(c, "Failed to count videos", "DATABASE_ERROR")
		return
	}

	total := published
	if isOwner {
		total += unpublished
	}

	p := pagination.New(query.Page, query.Limit, total)
	items, err := h.repo.ListByOwner(c.Request.Context(), ownerID, isOwner, p.Offset, p.Limit)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch videos", "DATABASE_ERROR")
		return
	}

	response.Success(c, OwnerListingResponse{
		Items:            items,
		Total:            total,
		TotalPages:       p.Pages,
		Page:             p.Page,
		Limit:            p.Limit,
		TotalPublished:   published,
		TotalUnpublished: unpublished,
	})
}

// Get godoc
// @Summary Get a video by id
// @Description Fetch a single video with owner summary. For authenticated viewers the view counter increments on first view and the video moves to the front of their watch history.
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} response.APIResponse{data=VideoWithOwner}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /videos/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid video ID format", "INVALID_ID")
		return
	}

	ctx := c.Request.Context()
	video, err := h.repo.FindWithOwner(ctx, videoID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Video not found", "VIDEO_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch video", "DATABASE_ERROR")
		return
	}

	if viewer, ok := viewerID(c); ok {
		// First-time view accounting: the counter moves only when the
		// video is not already in the viewer's history. The recency
		// update below happens unconditionally.
		watched, err := h.history.HasWatched(ctx, viewer, videoID)
		if err == nil && !watched {
			if err := h.repo.IncrementViews(ctx, videoID); err == nil {
				video.Views++
			}
		}
		if err := h.history.RecordVisit(ctx, viewer, videoID); err != nil {
			logger.Warn("failed to record visit for user %s: %v", viewer.Hex(), err)
		}
	}

	response.Success(c, video, "Video fetched successfully.")
}

// Update godoc
// @Summary Update video details
// @Description Update title, description and optionally the thumbnail
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param thumbnail formData file false "New thumbnail image"
// @Success 200 {object} response.APIResponse{data=Video}
// @Failure 400 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /videos/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	requestor, ok := viewerID(c)
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
	video, err := h.repo.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Video not found", "VIDEO_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch video", "DATABASE_ERROR")
		return
	}

	if video.Owner != requestor {
		response.Forbidden(c, "Only the owner can edit this video", "NOT_OWNER")
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	if err := ValidateDetails(title, description); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_DETAILS")
		return
	}

	// A record without a stored thumbnail reference cannot be edited;
	// there would be nothing to release on replacement.
	if video.ThumbnailPublicID == "" {
		response.BadRequest(c, "Video has no stored thumbnail reference", "MISSING_THUMBNAIL_REF")
		return
	}

	var newThumb *cloudinary.UploadResult
	if file, header, ferr := c.Request.FormFile("thumbnail"); ferr == nil {
		newThumb, err = h.replaceThumbnail(ctx, file, header)
		if err != nil {
			response.BadGateway(c, "Thumbnail upload failed", "UPLOAD_FAILED")
			return
		}
	}

	thumbURL, thumbPublicID := "", ""
	if newThumb != nil {
		thumbURL = newThumb.URL
		thumbPublicID = newThumb.PublicID
	}

	updated, err := h.repo.UpdateDetails(ctx, videoID, title, description, thumbURL, thumbPublicID)
	if err != nil {
		response.InternalServerError(c, "Failed to update video", "UPDATE_FAILED")
		return
	}

	// Release the replaced asset only after the record points at the
	// new one.
	if newThumb != nil {
		if err := h.media.Release(ctx, video.ThumbnailPublicID, "image"); err != nil {
			logger.Warn("failed to release old thumbnail %s: %v", video.ThumbnailPublicID, err)
		}
	}

	response.Success(c, updated, "Video details updated successfully.")
}

func (h *Handler) replaceThumbnail(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*cloudinary.UploadResult, error) {
	defer file.Close()

	if h.media == nil {
		return nil, apperrors.ErrDependency
	}
	if err := cloudinary.ValidateImageFile(header); err != nil {
		return nil, err
	}
	return h.media.UploadImage(ctx, file)
}

// Delete godoc
// @Summary Delete a video
// @Description Delete the database record, then release the remote media assets
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /videos/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	requestor, ok := viewerID(c)
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
	video, err := h.repo.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Video not found", "VIDEO_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch video", "DATABASE_ERROR")
		return
	}

	if video.Owner != requestor {
		response.Forbidden(c, "Only the owner can delete this video", "NOT_OWNER")
		return
	}

	// The database record goes first. Remote assets are released only
	// on confirmed deletion, so a failed delete never orphans a live
	// record.
	if err := h.repo.Delete(ctx, videoID); err != nil {
		response.InternalServerError(c, "Failed to delete video", "DELETE_FAILED")
		return
	}

	// Comments and likes attached to the record go with it.
	if h.cleanup != nil {
		if err := h.cleanup.CleanupVideo(ctx, videoID); err != nil {
			logger.Warn("failed to clean up engagement records for video %s: %v", videoID.Hex(), err)
		}
	}

	h.releaseAsset(ctx, video.VideoPublicID, "video")
	h.releaseAsset(ctx, video.ThumbnailPublicID, "image")

	response.Success(c, nil, "Video deleted successfully.")
}

// releaseAsset is best-effort: failures are logged, never surfaced.
func (h *Handler) releaseAsset(ctx context.Context, publicID, kind string) {
	if publicID == "" || h.media == nil {
		return
	}
	if err := h.media.Release(ctx, publicID, kind); err != nil {
		logger.Warn("failed to release %s asset %s: %v", kind, publicID, err)
	}
}

// TogglePublish godoc
// @Summary Toggle publish status
// @Description Flip the published flag. Owner only.
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} response.APIResponse{data=PublishToggleResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /videos/{id}/publish [patch]
func (h *Handler) TogglePublish(c *gin.Context) {
	requestor, ok := viewerID(c)
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
	video, err := h.repo.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Video not found", "VIDEO_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch video", "DATABASE_ERROR")
		return
	}

	if video.Owner != requestor {
		response.Forbidden(c, "Only the owner can change publish status", "NOT_OWNER")
		return
	}

	next := !video.IsPublished
	if err := h.repo.SetPublished(ctx, videoID, next); err != nil {
		response.InternalServerError(c, "Failed to update publish status", "UPDATE_FAILED")
		return
	}

	message := "Video unpublished."
	if next {
		message = "Video published."
	}
	response.Success(c, PublishToggleResponse{IsPublished: next}, message)
}
