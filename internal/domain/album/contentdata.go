package album

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Object types
const (
	TypePhoto   = "photo"
	TypeSticker = "sticker"
	TypeText    = "text"
	TypeDrawing = "drawing"
)

// Crop shapes
const (
	CropRectangle = "rectangle"
	CropCircle    = "circle"
	CropFreehand  = "freehand"
)

// CropInfo describes how a photo object is cropped
type CropInfo struct {
	Shape  string   `json:"shape"`
	Path   string   `json:"path,omitempty"` // freehand outline
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// PhotoContent is the content payload of a photo object
type PhotoContent struct {
	PhotoID  string    `json:"photoId"`
	CropInfo *CropInfo `json:"cropInfo,omitempty"`
}

// StickerContent is the content payload of a sticker object
type StickerContent struct {
	StickerID string `json:"stickerId"`
}

// TextContent is the content payload of a text object
type TextContent struct {
	Text  string  `json:"text"`
	Font  string  `json:"font,omitempty"`
	Size  float64 `json:"size,omitempty"`
	Color string  `json:"color,omitempty"`
	Bold  bool    `json:"bold,omitempty"`
}

// DrawingContent is the content payload of a drawing object.
// PathData is a sequence of move/line commands: "M x y L x y L x y ...".
type DrawingContent struct {
	PathData  string  `json:"pathData"`
	Color     string  `json:"color,omitempty"`
	Thickness float64 `json:"thickness,omitempty"`
}

// ValidateContentData checks that raw is a well-formed payload for the given
// object type. Returns an error wrapping ErrInvalidContent on failure.
func ValidateContentData(objectType string, raw json.RawMessage) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: contentData is required", ErrInvalidContent)
	}

	switch objectType {
	case TypePhoto:
		var c PhotoContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidContent, err)
		}
		if _, err := uuid.Parse(c.PhotoID); err != nil {
			return fmt.Errorf("%w: photoId must be a valid identifier", ErrInvalidContent)
		}
		if c.CropInfo != nil {
			if err := validateCrop(c.CropInfo); err != nil {
				return err
			}
		}

	case TypeSticker:
		var c StickerContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidContent, err)
		}
		if _, err := uuid.Parse(c.StickerID); err != nil {
			return fmt.Errorf("%w: stickerId must be a valid identifier", ErrInvalidContent)
		}

	case TypeText:
		var c TextContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidContent, err)
		}
		if c.Text == "" {
			return fmt.Errorf("%w: text is required", ErrInvalidContent)
		}

	case TypeDrawing:
		var c DrawingContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidContent, err)
		}
		if strings.TrimSpace(c.PathData) == "" {
			return fmt.Errorf("%w: pathData is required", ErrInvalidContent)
		}

	default:
		return fmt.Errorf("%w: unknown object type %q", ErrInvalidContent, objectType)
	}

	return nil
}

func validateCrop(crop *CropInfo) error {
	switch crop.Shape {
	case CropFreehand:
		if strings.TrimSpace(crop.Path) == "" {
			return fmt.Errorf("%w: cropInfo path is required for freehand shape", ErrInvalidContent)
		}
	case CropRectangle, CropCircle:
		if crop.X == nil || crop.Y == nil || crop.Width == nil || crop.Height == nil {
			return fmt.Errorf("%w: cropInfo x, y, width and height are required for %s shape", ErrInvalidContent, crop.Shape)
		}
		if *crop.Width <= 0 || *crop.Height <= 0 {
			return fmt.Errorf("%w: cropInfo width and height must be positive", ErrInvalidContent)
		}
	default:
		return fmt.Errorf("%w: cropInfo shape must be rectangle, circle or freehand", ErrInvalidContent)
	}
	return nil
}
