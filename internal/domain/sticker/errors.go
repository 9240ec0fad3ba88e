package sticker

import "errors"

var (
	ErrStickerNotFound = errors.New("sticker not found")
)
