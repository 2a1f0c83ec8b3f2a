package storage

import (
	"context"
	"errors"
	"io"

	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

const ProfilePictureDir = "profile_pictures"

// SaveProfilePicture stores an uploaded avatar and reports rejections as
// profile_picture field errors.
func SaveProfilePicture(ctx context.Context, store Store, content io.Reader) (string, error) {
	url, err := store.Save(ctx, ProfilePictureDir, content)
	switch {
	case err == nil:
		return url, nil
	case errors.Is(err, ErrFileTooLarge):
		return "", apperrors.FieldError("profile_picture", "Profile picture exceeds the maximum allowed size.")
	case errors.Is(err, ErrInvalidContentType):
		return "", apperrors.FieldError("profile_picture", "Upload a valid image. Allowed types: JPEG, PNG, GIF, WEBP.")
	case errors.Is(err, ErrEmptyFile):
		return "", apperrors.FieldError("profile_picture", "The submitted file is empty.")
	default:
		return "", apperrors.Internal(err)
	}
}
