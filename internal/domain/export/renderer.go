package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/albumforge/albumforge-api/internal/domain/album"
)

// PhotoSource resolves a photo id to its decoded image
type PhotoSource interface {
	PhotoImage(ctx context.Context, id uuid.UUID) (image.Image, error)
}

// StickerSource resolves a sticker id to its decoded image
type StickerSource interface {
	StickerImage(ctx context.Context, id uuid.UUID) (image.Image, error)
}

// Renderer turns an album's pages into a PDF document. Object coordinates
// map 1:1 to PDF points on an A4 portrait page. A failure on one object is
// logged and the object skipped; the document is still produced.
type Renderer struct {
	photos   PhotoSource
	stickers StickerSource
}

// NewRenderer creates a PDF renderer
func NewRenderer(photos PhotoSource, stickers StickerSource) *Renderer {
	return &Renderer{photos: photos, stickers: stickers}
}

// Render produces the PDF bytes for the given pages. Pages must arrive in
// page-number order and objects in draw order (back to front).
func (r *Renderer) Render(ctx context.Context, pages []*album.Page, objectsByPage map[uuid.UUID][]*album.Object) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	for _, p := range pages {
		pdf.AddPage()
		for _, o := range objectsByPage[p.ID] {
			if err := r.renderObject(ctx, pdf, o); err != nil {
				log.Warn().
					Err(err).
					Str("object_id", o.ID.String()).
					Str("type", o.Type).
					Int("page_number", p.PageNumber).
					Msg("skipping object during export")
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderObject(ctx context.Context, pdf *fpdf.Fpdf, o *album.Object) error {
	switch o.Type {
	case album.TypePhoto:
		return r.renderPhoto(ctx, pdf, o)
	case album.TypeSticker:
		return r.renderSticker(ctx, pdf, o)
	case album.TypeText:
		return r.renderText(pdf, o)
	case album.TypeDrawing:
		return r.renderDrawing(pdf, o)
	default:
		return fmt.Errorf("unknown object type %q", o.Type)
	}
}

func (r *Renderer) renderPhoto(ctx context.Context, pdf *fpdf.Fpdf, o *album.Object) error {
	var content album.PhotoContent
	if err := json.Unmarshal(o.ContentData, &content); err != nil {
		return fmt.Errorf("bad photo content: %w", err)
	}
	photoID, err := uuid.Parse(content.PhotoID)
	if err != nil {
		return fmt.Errorf("bad photo id: %w", err)
	}

	img, err := r.photos.PhotoImage(ctx, photoID)
	if err != nil {
		return err
	}

	if content.CropInfo != nil {
		img = applyCrop(img, content.CropInfo)
	}

	return r.placeImage(pdf, o, img, "photo-"+o.ID.String())
}

func (r *Renderer) renderSticker(ctx context.Context, pdf *fpdf.Fpdf, o *album.Object) error {
	var content album.StickerContent
	if err := json.Unmarshal(o.ContentData, &content); err != nil {
		return fmt.Errorf("bad sticker content: %w", err)
	}
	stickerID, err := uuid.Parse(content.StickerID)
	if err != nil {
		return fmt.Errorf("bad sticker id: %w", err)
	}

	img, err := r.stickers.StickerImage(ctx, stickerID)
	if err != nil {
		return err
	}

	return r.placeImage(pdf, o, img, "sticker-"+o.ID.String())
}

// placeImage registers the image under a unique name and draws it inside
// the object's box, rotated about the box center.
func (r *Renderer) placeImage(pdf *fpdf.Fpdf, o *album.Object, img image.Image, name string) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode image for pdf: %w", err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, &buf)
	if pdf.Err() {
		return fmt.Errorf("failed to register image: %v", pdf.Error())
	}

	x := float64(o.PositionX)
	y := float64(o.PositionY)
	w := float64(o.Width)
	h := float64(o.Height)

	withRotation(pdf, o, func() {
		pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	})
	if pdf.Err() {
		return fmt.Errorf("failed to draw image: %v", pdf.Error())
	}
	return nil
}

func (r *Renderer) renderText(pdf *fpdf.Fpdf, o *album.Object) error {
	var content album.TextContent
	if err := json.Unmarshal(o.ContentData, &content); err != nil {
		return fmt.Errorf("bad text content: %w", err)
	}
	if content.Text == "" {
		return fmt.Errorf("empty text content")
	}

	size := content.Size
	if size <= 0 {
		size = 14
	}
	style := ""
	if content.Bold {
		style = "B"
	}
	family := mapFont(content.Font)

	red, green, blue := parseHexColor(content.Color)
	pdf.SetTextColor(red, green, blue)
	pdf.SetFont(family, style, size)

	x := float64(o.PositionX)
	y := float64(o.PositionY)
	w := float64(o.Width)

	withRotation(pdf, o, func() {
		pdf.SetXY(x, y)
		pdf.MultiCell(w, size*1.2, content.Text, "", "L", false)
	})
	if pdf.Err() {
		return fmt.Errorf("failed to draw text: %v", pdf.Error())
	}
	return nil
}

func (r *Renderer) renderDrawing(pdf *fpdf.Fpdf, o *album.Object) error {
	var content album.DrawingContent
	if err := json.Unmarshal(o.ContentData, &content); err != nil {
		return fmt.Errorf("bad drawing content: %w", err)
	}

	points, err := ParsePath(content.PathData)
	if err != nil {
		return err
	}

	thickness := content.Thickness
	if thickness <= 0 {
		thickness = 2
	}
	red, green, blue := parseHexColor(content.Color)
	pdf.SetDrawColor(red, green, blue)
	pdf.SetLineWidth(thickness)

	offX := float64(o.PositionX)
	offY := float64(o.PositionY)

	withRotation(pdf, o, func() {
		for _, cmd := range points {
			if cmd.Move {
				pdf.MoveTo(offX+cmd.X, offY+cmd.Y)
			} else {
				pdf.LineTo(offX+cmd.X, offY+cmd.Y)
			}
		}
		pdf.DrawPath("D")
	})
	if pdf.Err() {
		return fmt.Errorf("failed to draw path: %v", pdf.Error())
	}
	return nil
}

// withRotation wraps draw in a rotation transform about the object center
// when the object carries a non-zero rotation. Angles are clockwise degrees;
// the PDF transform rotates counter-clockwise, hence the sign flip.
func withRotation(pdf *fpdf.Fpdf, o *album.Object, draw func()) {
	if o.Rotation == 0 {
		draw()
		return
	}

	cx := float64(o.PositionX) + float64(o.Width)/2
	cy := float64(o.PositionY) + float64(o.Height)/2
	pdf.TransformBegin()
	pdf.TransformRotate(-o.Rotation, cx, cy)
	draw()
	pdf.TransformEnd()
}

// PathCommand is one move-to or line-to step of a drawing path
type PathCommand struct {
	Move bool
	X    float64
	Y    float64
}

// ParsePath parses drawing path data of the form "M x y L x y L x y ...".
// Coordinates are object-local.
func ParsePath(data string) ([]PathCommand, error) {
	fields := strings.Fields(data)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty path data")
	}

	var commands []PathCommand
	i := 0
	for i < len(fields) {
		op := strings.ToUpper(fields[i])
		if op != "M" && op != "L" {
			return nil, fmt.Errorf("unexpected path token %q", fields[i])
		}
		if i+2 >= len(fields) {
			return nil, fmt.Errorf("truncated path command %q", op)
		}

		x, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad x coordinate %q", fields[i+1])
		}
		y, err := strconv.ParseFloat(fields[i+2], 64)
		if err != nil {
			return nil, fmt.Errorf("bad y coordinate %q", fields[i+2])
		}

		commands = append(commands, PathCommand{Move: op == "M", X: x, Y: y})
		i += 3
	}

	if !commands[0].Move {
		return nil, fmt.Errorf("path must start with a move command")
	}
	return commands, nil
}

// applyCrop cuts the configured region out of the source image. Freehand
// outlines are not rasterized; the image is used as-is.
func applyCrop(img image.Image, crop *album.CropInfo) image.Image {
	switch crop.Shape {
	case album.CropRectangle, album.CropCircle:
		if crop.X == nil || crop.Y == nil || crop.Width == nil || crop.Height == nil {
			return img
		}
		rect := image.Rect(
			int(*crop.X),
			int(*crop.Y),
			int(*crop.X+*crop.Width),
			int(*crop.Y+*crop.Height),
		)
		cropped := imaging.Crop(img, rect)
		if crop.Shape == album.CropCircle {
			return ellipseMask(cropped)
		}
		return cropped
	default:
		return img
	}
}

// ellipseMask makes everything outside the inscribed ellipse transparent
func ellipseMask(img image.Image) image.Image {
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)

	cx := float64(bounds.Min.X+bounds.Max.X) / 2
	cy := float64(bounds.Min.Y+bounds.Max.Y) / 2
	rx := float64(bounds.Dx()) / 2
	ry := float64(bounds.Dy()) / 2
	if rx == 0 || ry == 0 {
		return img
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				out.Set(x, y, img.At(x, y))
			} else {
				out.Set(x, y, color.NRGBA{})
			}
		}
	}
	return out
}

// mapFont maps a requested font family onto one of the core PDF fonts
func mapFont(font string) string {
	switch strings.ToLower(font) {
	case "times", "serif", "georgia":
		return "Times"
	case "courier", "monospace":
		return "Courier"
	default:
		return "Helvetica"
	}
}

// parseHexColor parses "#rrggbb" (or "#rgb"), defaulting to black
func parseHexColor(s string) (int, int, int) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 6:
		v, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return 0, 0, 0
		}
		return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
	case 3:
		v, err := strconv.ParseUint(s, 16, 16)
		if err != nil {
			return 0, 0, 0
		}
		r := int(v >> 8 & 0xf)
		g := int(v >> 4 & 0xf)
		b := int(v & 0xf)
		return r*17, g*17, b*17
	default:
		return 0, 0, 0
	}
}
