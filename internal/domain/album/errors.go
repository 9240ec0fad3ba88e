package album

import "errors"

var (
	ErrAlbumNotFound  = errors.New("album not found")
	ErrPageNotFound   = errors.New("page not found in the specified album")
	ErrObjectNotFound = errors.New("object not found")
	ErrNotAlbumOwner  = errors.New("you do not have permission to modify this album")
	ErrAlbumMismatch  = errors.New("object does not belong to the specified album")
	ErrInvalidContent = errors.New("invalid content data")
)
