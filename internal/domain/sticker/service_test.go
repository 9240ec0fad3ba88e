package sticker

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

type memStickerRepo struct {
	items map[uuid.UUID]*Sticker

	listCalls int
}

func newMemStickerRepo() *memStickerRepo {
	return &memStickerRepo{items: map[uuid.UUID]*Sticker{}}
}

func (m *memStickerRepo) List(ctx context.Context, category string) ([]*Sticker, error) {
	m.listCalls++
	var result []*Sticker
	for _, s := range m.items {
		if category == "" || s.Category == category {
			cp := *s
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *memStickerRepo) GetByID(ctx context.Context, id uuid.UUID) (*Sticker, error) {
	if s, ok := m.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (m *memStickerRepo) Create(ctx context.Context, s *Sticker) error {
	cp := *s
	m.items[s.ID] = &cp
	return nil
}

func (m *memStickerRepo) Update(ctx context.Context, s *Sticker) error {
	cp := *s
	m.items[s.ID] = &cp
	return nil
}

func (m *memStickerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func seedSticker(t *testing.T, repo *memStickerRepo, name, category string) *Sticker {
	t.Helper()
	s := &Sticker{
		ID:        uuid.New(),
		Name:      name,
		URL:       "https://cdn.example.com/" + name + ".png",
		Category:  category,
		Tags:      []string{category},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestListWithoutCacheHitsRepository(t *testing.T) {
	repo := newMemStickerRepo()
	seedSticker(t, repo, "heart", "love")
	seedSticker(t, repo, "star", "shapes")

	// nil cache client means caching is disabled
	svc := NewService(repo, nil)

	result, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 stickers, got %d", len(result))
	}

	if _, err := svc.List(context.Background(), ""); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.listCalls != 2 {
		t.Fatalf("expected repo hit on every list without cache, got %d calls", repo.listCalls)
	}
}

func TestListFiltersByCategory(t *testing.T) {
	repo := newMemStickerRepo()
	seedSticker(t, repo, "heart", "love")
	seedSticker(t, repo, "star", "shapes")
	svc := NewService(repo, nil)

	result, err := svc.List(context.Background(), "love")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result) != 1 || result[0].Name != "heart" {
		t.Fatalf("unexpected filtered result: %+v", result)
	}
}

func TestGetUnknownSticker(t *testing.T) {
	svc := NewService(newMemStickerRepo(), nil)

	if _, err := svc.Get(context.Background(), uuid.New()); !errors.Is(err, ErrStickerNotFound) {
		t.Fatalf("expected ErrStickerNotFound, got %v", err)
	}
}

func TestCreateAndUpdateSticker(t *testing.T) {
	repo := newMemStickerRepo()
	svc := NewService(repo, nil)

	created, err := svc.Create(context.Background(), &CreateStickerRequest{
		Name:     "balloon",
		URL:      "https://cdn.example.com/balloon.png",
		Category: "party",
		Tags:     []string{"party", "birthday"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Category != "party" || len(created.Tags) != 2 {
		t.Fatalf("unexpected created sticker: %+v", created)
	}

	newName := "red balloon"
	updated, err := svc.Update(context.Background(), created.StickerID, &UpdateStickerRequest{Name: &newName})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "red balloon" {
		t.Fatalf("expected renamed sticker, got %q", updated.Name)
	}
	if updated.Category != "party" {
		t.Fatal("partial update touched category")
	}
}

func TestDeleteUnknownSticker(t *testing.T) {
	svc := NewService(newMemStickerRepo(), nil)

	if err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, ErrStickerNotFound) {
		t.Fatalf("expected ErrStickerNotFound, got %v", err)
	}
}

func TestExists(t *testing.T) {
	repo := newMemStickerRepo()
	s := seedSticker(t, repo, "heart", "love")
	svc := NewService(repo, nil)

	ok, err := svc.Exists(context.Background(), s.ID)
	if err != nil || !ok {
		t.Fatalf("expected sticker to exist, ok=%v err=%v", ok, err)
	}
	ok, err = svc.Exists(context.Background(), uuid.New())
	if err != nil || ok {
		t.Fatalf("expected sticker to not exist, ok=%v err=%v", ok, err)
	}
}
