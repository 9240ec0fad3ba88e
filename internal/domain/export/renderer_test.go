package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"

	"github.com/albumforge/albumforge-api/internal/domain/album"
)

type stubPhotoSource struct {
	img image.Image
	err error
}

func (s *stubPhotoSource) PhotoImage(ctx context.Context, id uuid.UUID) (image.Image, error) {
	return s.img, s.err
}

type stubStickerSource struct {
	img image.Image
	err error
}

func (s *stubStickerSource) StickerImage(ctx context.Context, id uuid.UUID) (image.Image, error) {
	return s.img, s.err
}

func testObject(t *testing.T, pageID uuid.UUID, objType string, content interface{}) *album.Object {
	t.Helper()
	data, err := json.Marshal(content)
	if err != nil {
		t.Fatal(err)
	}
	return &album.Object{
		ID:          uuid.New(),
		PageID:      pageID,
		Type:        objType,
		PositionX:   40,
		PositionY:   60,
		Width:       200,
		Height:      100,
		ContentData: types.JSONText(data),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func testImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 8, 8))
}

func renderSinglePage(t *testing.T, r *Renderer, objects ...*album.Object) []byte {
	t.Helper()
	page := &album.Page{ID: uuid.New(), AlbumID: uuid.New(), PageNumber: 1}
	for _, o := range objects {
		o.PageID = page.ID
	}
	data, err := r.Render(context.Background(), []*album.Page{page}, map[uuid.UUID][]*album.Object{page.ID: objects})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return data
}

func TestRenderEmptyAlbumProducesPdf(t *testing.T) {
	r := NewRenderer(&stubPhotoSource{}, &stubStickerSource{})

	pages := []*album.Page{
		{ID: uuid.New(), PageNumber: 1},
		{ID: uuid.New(), PageNumber: 2},
	}
	data, err := r.Render(context.Background(), pages, map[uuid.UUID][]*album.Object{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("expected PDF magic header")
	}
}

func TestRenderTextAndDrawing(t *testing.T) {
	r := NewRenderer(&stubPhotoSource{}, &stubStickerSource{})

	pageID := uuid.New()
	text := testObject(t, pageID, album.TypeText, album.TextContent{Text: "Hello Album", Size: 24, Color: "#336699", Bold: true})
	drawing := testObject(t, pageID, album.TypeDrawing, album.DrawingContent{PathData: "M 0 0 L 50 50 L 100 0", Color: "#ff0000", Thickness: 3})

	data := renderSinglePage(t, r, text, drawing)
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("expected PDF magic header")
	}
}

func TestRenderPhotoAndSticker(t *testing.T) {
	r := NewRenderer(&stubPhotoSource{img: testImage()}, &stubStickerSource{img: testImage()})

	pageID := uuid.New()
	photoObj := testObject(t, pageID, album.TypePhoto, album.PhotoContent{PhotoID: uuid.New().String()})
	stickerObj := testObject(t, pageID, album.TypeSticker, album.StickerContent{StickerID: uuid.New().String()})

	data := renderSinglePage(t, r, photoObj, stickerObj)
	if len(data) == 0 {
		t.Fatal("expected PDF bytes")
	}
}

func TestRenderRotatedPhoto(t *testing.T) {
	r := NewRenderer(&stubPhotoSource{img: testImage()}, &stubStickerSource{})

	obj := testObject(t, uuid.New(), album.TypePhoto, album.PhotoContent{PhotoID: uuid.New().String()})
	obj.Rotation = 45

	data := renderSinglePage(t, r, obj)
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("expected PDF magic header")
	}
}

func TestRenderSkipsFailingObject(t *testing.T) {
	r := NewRenderer(&stubPhotoSource{err: fmt.Errorf("blob gone")}, &stubStickerSource{})

	pageID := uuid.New()
	broken := testObject(t, pageID, album.TypePhoto, album.PhotoContent{PhotoID: uuid.New().String()})
	text := testObject(t, pageID, album.TypeText, album.TextContent{Text: "still here"})

	// The broken photo is skipped, the rest of the page still renders
	data := renderSinglePage(t, r, broken, text)
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("expected PDF despite failing object")
	}
}

func TestParsePath(t *testing.T) {
	commands, err := ParsePath("M 0 0 L 10 20 L 30.5 -4")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(commands) != 3 {
		t.Fatalf("expected 3 commands, got %d", len(commands))
	}
	if !commands[0].Move || commands[1].Move || commands[2].Move {
		t.Fatalf("unexpected command kinds: %+v", commands)
	}
	if commands[2].X != 30.5 || commands[2].Y != -4 {
		t.Fatalf("unexpected coordinates: %+v", commands[2])
	}
}

func TestParsePathRejectsMalformedInput(t *testing.T) {
	for _, data := range []string{
		"",
		"L 0 0",
		"M 0",
		"M x y",
		"M 0 0 Z",
	} {
		if _, err := ParsePath(data); err == nil {
			t.Fatalf("expected error for %q", data)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in      string
		r, g, b int
	}{
		{"#ff0000", 255, 0, 0},
		{"#336699", 51, 102, 153},
		{"#fff", 255, 255, 255},
		{"", 0, 0, 0},
		{"not-a-color", 0, 0, 0},
	}
	for _, tc := range cases {
		r, g, b := parseHexColor(tc.in)
		if r != tc.r || g != tc.g || b != tc.b {
			t.Fatalf("parseHexColor(%q) = %d,%d,%d want %d,%d,%d", tc.in, r, g, b, tc.r, tc.g, tc.b)
		}
	}
}

func TestEllipseMaskMakesCornersTransparent(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			src.Set(x, y, color.White)
		}
	}

	masked := ellipseMask(src)
	_, _, _, corner := masked.At(0, 0).RGBA()
	if corner != 0 {
		t.Fatal("expected transparent corner outside the ellipse")
	}
	_, _, _, center := masked.At(5, 5).RGBA()
	if center == 0 {
		t.Fatal("expected opaque center inside the ellipse")
	}
}
