package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/plinkhq/plink/internal/app/model"
	"github.com/plinkhq/plink/internal/app/repository"
)

type mockLinkRepository struct {
	listFn       func(ctx context.Context, ownerID string) ([]model.Link, error)
	listActiveFn func(ctx context.Context, ownerID string) ([]model.Link, error)
	getFn        func(ctx context.Context, ownerID, id string) (*model.Link, error)
	createFn     func(ctx context.Context, link *model.Link) error
	updateFn     func(ctx context.Context, link *model.Link) error
	deleteFn     func(ctx context.Context, ownerID, id string) error
	reorderFn    func(ctx context.Context, ownerID string, positions []repository.LinkPosition) error
}

func (m *mockLinkRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Link, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockLinkRepository) ListActiveByOwner(ctx context.Context, ownerID string) ([]model.Link, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockLinkRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Link, error) {
	if m.getFn != nil {
		return m.getFn(ctx, ownerID, id)
	}
	return nil, repository.ErrLinkNotFound
}

func (m *mockLinkRepository) Create(ctx context.Context, link *model.Link) error {
	if m.createFn != nil {
		return m.createFn(ctx, link)
	}
	return nil
}

func (m *mockLinkRepository) Update(ctx context.Context, link *model.Link) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, link)
	}
	return nil
}

func (m *mockLinkRepository) Delete(ctx context.Context, ownerID, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, ownerID, id)
	}
	return nil
}

func (m *mockLinkRepository) Reorder(ctx context.Context, ownerID string, positions []repository.LinkPosition) error {
	if m.reorderFn != nil {
		return m.reorderFn(ctx, ownerID, positions)
	}
	return nil
}

func TestLinkService_CreateLink(t *testing.T) {
	repo := &mockLinkRepository{
		createFn: func(ctx context.Context, link *model.Link) error {
			if link.ID == "" {
				t.Fatal("expected id to be minted")
			}
			if link.UserID != "u1" {
				t.Fatalf("expected owner u1, got %s", link.UserID)
			}
			if link.Position != 0 {
				t.Fatalf("expected default position 0, got %d", link.Position)
			}
			if !link.IsActive {
				t.Fatal("expected new link to be active")
			}
			return nil
		},
	}

	svc := NewLinkService(repo)
	_, err := svc.CreateLink(context.Background(), "u1", CreateLinkInput{
		Title: "Shop",
		URL:   "https://x.com",
	})
	if err != nil {
		t.Fatalf("CreateLink returned error: %v", err)
	}
}

func TestLinkService_CreateLink_ExplicitPosition(t *testing.T) {
	repo := &mockLinkRepository{
		createFn: func(ctx context.Context, link *model.Link) error {
			if link.Position != 4 {
				t.Fatalf("expected position 4, got %d", link.Position)
			}
			return nil
		},
	}

	svc := NewLinkService(repo)
	position := 4
	_, err := svc.CreateLink(context.Background(), "u1", CreateLinkInput{
		Title:    "Blog",
		URL:      "https://y.com",
		Position: &position,
	})
	if err != nil {
		t.Fatalf("CreateLink returned error: %v", err)
	}
}

func TestLinkService_CreateLink_Validation(t *testing.T) {
	called := false
	repo := &mockLinkRepository{
		createFn: func(ctx context.Context, link *model.Link) error {
			called = true
			return nil
		},
	}
	svc := NewLinkService(repo)

	if _, err := svc.CreateLink(context.Background(), "u1", CreateLinkInput{URL: "https://x.com"}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := svc.CreateLink(context.Background(), "u1", CreateLinkInput{Title: "Shop"}); !errors.Is(err, ErrEmptyURL) {
		t.Fatalf("expected ErrEmptyURL, got %v", err)
	}
	if called {
		t.Fatal("expected no store call for invalid input")
	}
}

func TestLinkService_UpdateLink_AppliesPatch(t *testing.T) {
	repo := &mockLinkRepository{
		getFn: func(ctx context.Context, ownerID, id string) (*model.Link, error) {
			return &model.Link{ID: id, UserID: ownerID, Title: "Old", URL: "https://old.com", IsActive: true}, nil
		},
		updateFn: func(ctx context.Context, link *model.Link) error {
			if link.Title != "New" {
				t.Fatalf("expected updated title, got %s", link.Title)
			}
			if link.URL != "https://old.com" {
				t.Fatalf("expected url untouched, got %s", link.URL)
			}
			if link.IsActive {
				t.Fatal("expected is_active flipped off")
			}
			return nil
		},
	}

	svc := NewLinkService(repo)
	title := "New"
	active := false
	_, err := svc.UpdateLink(context.Background(), "u1", "l1", UpdateLinkInput{
		Title:    &title,
		IsActive: &active,
	})
	if err != nil {
		t.Fatalf("UpdateLink returned error: %v", err)
	}
}

func TestLinkService_UpdateLink_RejectsEmptyFieldsBeforeLoad(t *testing.T) {
	loads := 0
	repo := &mockLinkRepository{
		getFn: func(ctx context.Context, ownerID, id string) (*model.Link, error) {
			loads++
			return &model.Link{ID: id, UserID: ownerID, Title: "Old", URL: "https://old.com"}, nil
		},
	}

	svc := NewLinkService(repo)
	empty := ""
	if _, err := svc.UpdateLink(context.Background(), "u1", "l1", UpdateLinkInput{Title: &empty}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := svc.UpdateLink(context.Background(), "u1", "l1", UpdateLinkInput{URL: &empty}); !errors.Is(err, ErrEmptyURL) {
		t.Fatalf("expected ErrEmptyURL, got %v", err)
	}
	if loads != 0 {
		t.Fatalf("expected validation before any store read, got %d loads", loads)
	}
}

func TestLinkService_UpdateLink_NotFound(t *testing.T) {
	repo := &mockLinkRepository{
		getFn: func(ctx context.Context, ownerID, id string) (*model.Link, error) {
			return nil, repository.ErrLinkNotFound
		},
	}

	svc := NewLinkService(repo)
	_, err := svc.UpdateLink(context.Background(), "u1", "someone-elses-link", UpdateLinkInput{})
	if !errors.Is(err, repository.ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}

func TestLinkService_DeleteLink_NotFound(t *testing.T) {
	calls := 0
	repo := &mockLinkRepository{
		deleteFn: func(ctx context.Context, ownerID, id string) error {
			calls++
			if calls > 1 {
				return repository.ErrLinkNotFound
			}
			return nil
		},
	}

	svc := NewLinkService(repo)
	if err := svc.DeleteLink(context.Background(), "u1", "l1"); err != nil {
		t.Fatalf("first delete returned error: %v", err)
	}
	err := svc.DeleteLink(context.Background(), "u1", "l1")
	if !errors.Is(err, repository.ErrLinkNotFound) {
		t.Fatalf("expected second delete to fail with ErrLinkNotFound, got %v", err)
	}
}

func TestLinkService_ReorderLinks_Validation(t *testing.T) {
	called := false
	repo := &mockLinkRepository{
		reorderFn: func(ctx context.Context, ownerID string, positions []repository.LinkPosition) error {
			called = true
			return nil
		},
	}
	svc := NewLinkService(repo)

	if err := svc.ReorderLinks(context.Background(), "u1", nil); !errors.Is(err, ErrEmptyReorder) {
		t.Fatalf("expected ErrEmptyReorder, got %v", err)
	}
	err := svc.ReorderLinks(context.Background(), "u1", []ReorderItem{
		{ID: "l1", Position: 0},
		{ID: "l1", Position: 1},
	})
	if !errors.Is(err, ErrDuplicateReorderID) {
		t.Fatalf("expected ErrDuplicateReorderID, got %v", err)
	}
	if called {
		t.Fatal("expected no store call for invalid payload")
	}
}

func TestLinkService_ReorderLinks_ForeignIDFailsBatch(t *testing.T) {
	repo := &mockLinkRepository{
		reorderFn: func(ctx context.Context, ownerID string, positions []repository.LinkPosition) error {
			return repository.ErrLinkNotFound
		},
	}

	svc := NewLinkService(repo)
	err := svc.ReorderLinks(context.Background(), "u1", []ReorderItem{
		{ID: "mine", Position: 0},
		{ID: "foreign", Position: 1},
	})
	if !errors.Is(err, repository.ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}

// fakeLinkStore is a stateful in-memory repository honoring the same contract
// as the GORM implementation: owner scoping, display ordering, and
// all-or-nothing reorder batches.
type fakeLinkStore struct {
	links []model.Link
}

func (f *fakeLinkStore) sorted(ownerID string, activeOnly bool) []model.Link {
	var out []model.Link
	for _, l := range f.links {
		if l.UserID != ownerID {
			continue
		}
		if activeOnly && !l.IsActive {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f *fakeLinkStore) ListByOwner(ctx context.Context, ownerID string) ([]model.Link, error) {
	return f.sorted(ownerID, false), nil
}

func (f *fakeLinkStore) ListActiveByOwner(ctx context.Context, ownerID string) ([]model.Link, error) {
	return f.sorted(ownerID, true), nil
}

func (f *fakeLinkStore) GetByID(ctx context.Context, ownerID, id string) (*model.Link, error) {
	for i := range f.links {
		if f.links[i].ID == id && f.links[i].UserID == ownerID {
			l := f.links[i]
			return &l, nil
		}
	}
	return nil, repository.ErrLinkNotFound
}

func (f *fakeLinkStore) Create(ctx context.Context, link *model.Link) error {
	f.links = append(f.links, *link)
	return nil
}

func (f *fakeLinkStore) Update(ctx context.Context, link *model.Link) error {
	for i := range f.links {
		if f.links[i].ID == link.ID && f.links[i].UserID == link.UserID {
			f.links[i] = *link
			return nil
		}
	}
	return repository.ErrLinkNotFound
}

func (f *fakeLinkStore) Delete(ctx context.Context, ownerID, id string) error {
	for i := range f.links {
		if f.links[i].ID == id && f.links[i].UserID == ownerID {
			f.links = append(f.links[:i], f.links[i+1:]...)
			return nil
		}
	}
	return repository.ErrLinkNotFound
}

func (f *fakeLinkStore) Reorder(ctx context.Context, ownerID string, positions []repository.LinkPosition) error {
	indexByID := make(map[string]int, len(f.links))
	for i := range f.links {
		if f.links[i].UserID == ownerID {
			indexByID[f.links[i].ID] = i
		}
	}
	// Validate the whole batch before touching anything, mirroring the
	// transaction rollback of the real store.
	for _, p := range positions {
		if _, ok := indexByID[p.ID]; !ok {
			return repository.ErrLinkNotFound
		}
	}
	for _, p := range positions {
		f.links[indexByID[p.ID]].Position = p.Position
	}
	return nil
}

func TestLinkService_ReorderScenario(t *testing.T) {
	store := &fakeLinkStore{}
	svc := NewLinkService(store)
	ctx := context.Background()

	shop, err := svc.CreateLink(ctx, "u1", CreateLinkInput{Title: "Shop", URL: "https://x.com"})
	if err != nil {
		t.Fatalf("create shop: %v", err)
	}
	position := 1
	blog, err := svc.CreateLink(ctx, "u1", CreateLinkInput{Title: "Blog", URL: "https://y.com", Position: &position})
	if err != nil {
		t.Fatalf("create blog: %v", err)
	}

	err = svc.ReorderLinks(ctx, "u1", []ReorderItem{
		{ID: shop.ID, Position: 1},
		{ID: blog.ID, Position: 0},
	})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}

	list, err := svc.ListLinks(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 links, got %d", len(list))
	}
	if list[0].Title != "Blog" || list[1].Title != "Shop" {
		t.Fatalf("expected [Blog, Shop], got [%s, %s]", list[0].Title, list[1].Title)
	}
}

func TestLinkService_ReorderAtomicity(t *testing.T) {
	store := &fakeLinkStore{}
	svc := NewLinkService(store)
	ctx := context.Background()

	p0, p1 := 0, 1
	a, _ := svc.CreateLink(ctx, "u1", CreateLinkInput{Title: "A", URL: "https://a.com", Position: &p0})
	b, _ := svc.CreateLink(ctx, "u1", CreateLinkInput{Title: "B", URL: "https://b.com", Position: &p1})
	foreign, _ := svc.CreateLink(ctx, "u2", CreateLinkInput{Title: "F", URL: "https://f.com", Position: &p0})

	err := svc.ReorderLinks(ctx, "u1", []ReorderItem{
		{ID: a.ID, Position: 1},
		{ID: b.ID, Position: 0},
		{ID: foreign.ID, Position: 2},
	})
	if !errors.Is(err, repository.ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}

	list, _ := svc.ListLinks(ctx, "u1")
	if list[0].Title != "A" || list[1].Title != "B" {
		t.Fatalf("expected stored order untouched [A, B], got [%s, %s]", list[0].Title, list[1].Title)
	}
	foreignRow, err := store.GetByID(ctx, "u2", foreign.ID)
	if err != nil || foreignRow.Position != 0 {
		t.Fatalf("expected foreign link untouched, got %+v (err %v)", foreignRow, err)
	}
}

func TestLinkService_ListLinks_Idempotent(t *testing.T) {
	store := &fakeLinkStore{}
	svc := NewLinkService(store)
	ctx := context.Background()

	if _, err := svc.CreateLink(ctx, "u1", CreateLinkInput{Title: "Shop", URL: "https://x.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := svc.ListLinks(ctx, "u1")
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	second, err := svc.ListLinks(ctx, "u1")
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if len(first) != len(second) || first[0].ID != second[0].ID {
		t.Fatal("expected identical results from repeated reads")
	}
}

func TestLinkService_ListLinks_EmptyOwner(t *testing.T) {
	svc := NewLinkService(&fakeLinkStore{})
	list, err := svc.ListLinks(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(list))
	}
}
