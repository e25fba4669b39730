package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Service handles Cloudinary upload and release operations
type Service struct {
	cld          *cloudinary.Cloudinary
	uploadFolder string
}

// UploadResult contains the result of a successful upload
type UploadResult struct {
	URL      string
	PublicID string
	Duration float64 // seconds, video uploads only
	FileSize int64
	Format   string
}

// File validation constants
var (
	AllowedVideoTypes = []string{".mp4", ".webm", ".mov", ".mkv", ".avi"}
	AllowedImageTypes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

	MaxVideoSize = int64(200 * 1024 * 1024) // 200MB
	MaxImageSize = int64(10 * 1024 * 1024)  // 10MB
)

// NewService creates a new Cloudinary service instance
func NewService(cloudName, apiKey, apiSecret, uploadFolder string) (*Service, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary credentials are required")
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	if uploadFolder == "" {
		uploadFolder = "vidtube"
	}

	return &Service{
		cld:          cld,
		uploadFolder: uploadFolder,
	}, nil
}

// UploadVideo uploads a video file and reports its duration when the API
// returns one.
func (s *Service) UploadVideo(ctx context.Context, file multipart.File) (*UploadResult, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       s.uploadFolder + "/videos",
		ResourceType: "video",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload video: %w", err)
	}

	// TODO: Extract duration via Admin API
	// The upload response doesn't include duration in the current SDK version
	// To get duration, we need to call: s.cld.Admin.Asset(ctx, admin.AssetParams{PublicID: result.PublicID})
	// For now, duration will be 0 and should be extracted client-side or via webhook
	duration := 0.0

	return &UploadResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Duration: duration,
		FileSize: int64(result.Bytes),
		Format:   result.Format,
	}, nil
}

// UploadImage uploads an image file (thumbnails, avatars).
func (s *Service) UploadImage(ctx context.Context, file multipart.File) (*UploadResult, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       s.uploadFolder + "/images",
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return &UploadResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		FileSize: int64(result.Bytes),
		Format:   result.Format,
	}, nil
}

// Release removes an asset from Cloudinary. Callers treat failures as
// best-effort and only log them.
func (s *Service) Release(ctx context.Context, publicID, resourceType string) error {
	if publicID == "" {
		return errors.New("publicID is required")
	}
	if resourceType == "" {
		resourceType = "image"
	}

	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("failed to release asset: %w", err)
	}
	return nil
}

// ValidateVideoFile validates a video file upload
func ValidateVideoFile(header *multipart.FileHeader) error {
	if header.Size > MaxVideoSize {
		return fmt.Errorf("video file size exceeds maximum allowed size of %d MB", MaxVideoSize/(1024*1024))
	}

	ext := getFileExtension(header.Filename)
	if !isAllowedExtension(ext, AllowedVideoTypes) {
		return fmt.Errorf("invalid video file type: %s. Allowed types: %s", ext, strings.Join(AllowedVideoTypes, ", "))
	}
	return nil
}

// ValidateImageFile validates an image file upload
func ValidateImageFile(header *multipart.FileHeader) error {
	if header.Size > MaxImageSize {
		return fmt.Errorf("image file size exceeds maximum allowed size of %d MB", MaxImageSize/(1024*1024))
	}

	ext := getFileExtension(header.Filename)
	if !isAllowedExtension(ext, AllowedImageTypes) {
		return fmt.Errorf("invalid image file type: %s. Allowed types: %s", ext, strings.Join(AllowedImageTypes, ", "))
	}
	return nil
}

// getFileExtension returns the lowercase file extension including the dot
func getFileExtension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// isAllowedExtension checks if the extension is in the allowed list
func isAllowedExtension(ext string, allowedTypes []string) bool {
	for _, allowed := range allowedTypes {
		if ext == allowed {
			return true
		}
	}
	return false
}
