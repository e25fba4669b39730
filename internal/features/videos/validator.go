package videos

import (
	"fmt"
	"strings"

	apperrors "github.com/hazra-dev/vidtube/pkg/errors"
)

const (
	maxTitleLength       = 120
	maxDescriptionLength = 5000
)

// ValidateDetails checks the title/description pair required by upload
// and edit. Failures wrap apperrors.ErrValidation.
func ValidateDetails(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("%w: title is too long", apperrors.ErrValidation)
	}
	if len(description) > maxDescriptionLength {
		return fmt.Errorf("%w: description is too long", apperrors.ErrValidation)
	}
	return nil
}
