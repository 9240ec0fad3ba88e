package photo

import "errors"

var (
	ErrPhotoNotFound = errors.New("photo not found")
	ErrNotPhotoOwner = errors.New("you do not have permission to access this photo")
	ErrInvalidImage  = errors.New("file is not a supported image")
	ErrFileTooLarge  = errors.New("file exceeds the maximum upload size")
)
