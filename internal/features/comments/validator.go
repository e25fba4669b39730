package comments

import (
	"fmt"
	"strings"

	apperrors "github.com/hazra-dev/vidtube/pkg/errors"
)

const maxContentLength = 2000

// ValidateContent checks a comment body before it is stored. Failures
// wrap apperrors.ErrValidation.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is required", apperrors.ErrValidation)
	}
	if len(content) > maxContentLength {
		return fmt.Errorf("%w: content must be at most %d characters", apperrors.ErrValidation, maxContentLength)
	}
	return nil
}
