package menuclient

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oshmenu/menu-service/internal/logging"
	"github.com/oshmenu/menu-service/internal/ordering"
)

// Store is the client-side mirror of the server state. It is initialized by
// one bulk fetch and kept consistent after each mutation by merging the
// server-returned canonical entity back in. The server remains the single
// source of truth; the mirror is refreshed only by Load.
type Store struct {
	client *Client

	mu         sync.RWMutex
	branches   []Branch
	categories []Category
	dishes     []Dish
	branding   Branding
	loaded     bool
	lastErr    string
	failed     bool

	// in-flight optimistic reorder persistence
	pending sync.WaitGroup
}

// NewStore creates a store backed by the given client.
func NewStore(client *Client) *Store {
	return &Store{client: client}
}

// Load replaces the mirror with a full fetch of every entity. A failed Load
// is fatal to the session: the mirror stays unusable until a reload
// succeeds.
func (s *Store) Load(ctx context.Context) error {
	branches, err := s.client.Branches(ctx)
	if err != nil {
		return s.fail(err)
	}
	categories, err := s.client.Categories(ctx)
	if err != nil {
		return s.fail(err)
	}
	dishes, err := s.client.Dishes(ctx)
	if err != nil {
		return s.fail(err)
	}
	branding, err := s.client.Branding(ctx)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.branches = branches
	s.categories = categories
	s.dishes = dishes
	s.branding = branding
	s.loaded = true
	s.failed = false
	s.lastErr = ""
	return nil
}

// Loaded reports whether the initial bulk fetch has succeeded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Failed reports whether the last operation failed.
func (s *Store) Failed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failed
}

// Err returns the human-readable message of the last failure, empty when
// the last operation succeeded.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Wait blocks until in-flight reorder persistence calls have finished.
func (s *Store) Wait() {
	s.pending.Wait()
}

func (s *Store) fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed = true
	s.lastErr = err.Error()
	return err
}

func (s *Store) ok() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed = false
	s.lastErr = ""
}

// --- Read accessors ---

// Branding returns the current theme settings.
func (s *Store) Branding() Branding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.branding
}

// Branches returns the branch list.
func (s *Store) Branches() []Branch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Branch, len(s.branches))
	copy(out, s.branches)
	return out
}

// Categories returns the categories in display order.
func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

// Dishes returns every dish, unfiltered.
func (s *Store) Dishes() []Dish {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Dish, len(s.dishes))
	copy(out, s.dishes)
	return out
}

// DishesByCategory returns the dishes rendered for one category at one
// branch: filtered by category, the active flag and the branch allowlist,
// sorted by sort order ascending.
func (s *Store) DishesByCategory(categoryID, branchID string) []Dish {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Dish
	for _, d := range s.dishes {
		if d.CategoryID != categoryID {
			continue
		}
		if !d.VisibleAt(branchID) {
			continue
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

// --- Branding ---

// UpdateBranding persists theme settings and merges the canonical result.
func (s *Store) UpdateBranding(ctx context.Context, b Branding) error {
	updated, err := s.client.UpdateBranding(ctx, b)
	if err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.branding = updated
	s.mu.Unlock()
	s.ok()
	return nil
}

// --- Branches ---

// AddBranch creates a branch and merges the server-assigned entity.
func (s *Store) AddBranch(ctx context.Context, b Branch) (Branch, error) {
	created, err := s.client.CreateBranch(ctx, b)
	if err != nil {
		return Branch{}, s.fail(err)
	}
	s.mu.Lock()
	s.branches = append(s.branches, created)
	s.mu.Unlock()
	s.ok()
	return created, nil
}

// UpdateBranch persists branch changes and replaces the mirrored entity.
func (s *Store) UpdateBranch(ctx context.Context, b Branch) (Branch, error) {
	updated, err := s.client.UpdateBranch(ctx, b)
	if err != nil {
		return Branch{}, s.fail(err)
	}
	s.mu.Lock()
	for i := range s.branches {
		if s.branches[i].ID == updated.ID {
			s.branches[i] = updated
			break
		}
	}
	s.mu.Unlock()
	s.ok()
	return updated, nil
}

// DeleteBranch removes a branch remotely, then locally.
func (s *Store) DeleteBranch(ctx context.Context, id string) error {
	if err := s.client.DeleteBranch(ctx, id); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.branches = deleteByID(s.branches, func(b Branch) bool { return b.ID == id })
	s.mu.Unlock()
	s.ok()
	return nil
}

// --- Categories ---

// AddCategory creates a category at the end of the list. The server assigns
// the id and the appended sort order.
func (s *Store) AddCategory(ctx context.Context, name string, viewType ViewType) (Category, error) {
	created, err := s.client.CreateCategory(ctx, Category{Name: name, ViewType: viewType})
	if err != nil {
		return Category{}, s.fail(err)
	}
	s.mu.Lock()
	s.categories = append(s.categories, created)
	s.mu.Unlock()
	s.ok()
	return created, nil
}

// UpdateCategory persists category changes and replaces the mirrored entity.
func (s *Store) UpdateCategory(ctx context.Context, cat Category) (Category, error) {
	updated, err := s.client.UpdateCategory(ctx, cat)
	if err != nil {
		return Category{}, s.fail(err)
	}
	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == updated.ID {
			s.categories[i] = updated
			break
		}
	}
	s.mu.Unlock()
	s.ok()
	return updated, nil
}

// DeleteCategory removes a category remotely, then drops it and every dish
// referencing it from the mirror. The server cascades the same way, so no
// dish is ever left pointing at a missing category on either side.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if err := s.client.DeleteCategory(ctx, id); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.categories = deleteByID(s.categories, func(c Category) bool { return c.ID == id })
	s.dishes = deleteByID(s.dishes, func(d Dish) bool { return d.CategoryID == id })
	s.mu.Unlock()
	s.ok()
	return nil
}

// ReorderCategories applies a full reordered category id sequence. The new
// order is applied to the mirror immediately; persistence runs in the
// background and a failure is logged without rolling the local order back.
func (s *Store) ReorderCategories(orderedIDs []string) {
	entries := ordering.Sequence(orderedIDs)

	s.mu.Lock()
	for _, e := range entries {
		for i := range s.categories {
			if s.categories[i].ID == e.ID {
				s.categories[i].SortOrder = e.SortOrder
				break
			}
		}
	}
	s.mu.Unlock()

	s.persistReorder("categories", entries, s.client.ReorderCategories)
}

// --- Dishes ---

// AddDish creates a dish and merges the server-assigned entity. The server
// appends it to its category and derives the price from the variants.
func (s *Store) AddDish(ctx context.Context, d Dish) (Dish, error) {
	created, err := s.client.CreateDish(ctx, d)
	if err != nil {
		return Dish{}, s.fail(err)
	}
	s.mu.Lock()
	s.dishes = append(s.dishes, created)
	s.mu.Unlock()
	s.ok()
	return created, nil
}

// UpdateDish persists dish changes and replaces the mirrored entity.
func (s *Store) UpdateDish(ctx context.Context, d Dish) (Dish, error) {
	updated, err := s.client.UpdateDish(ctx, d)
	if err != nil {
		return Dish{}, s.fail(err)
	}
	s.mu.Lock()
	for i := range s.dishes {
		if s.dishes[i].ID == updated.ID {
			s.dishes[i] = updated
			break
		}
	}
	s.mu.Unlock()
	s.ok()
	return updated, nil
}

// DeleteDish removes a dish remotely, then locally.
func (s *Store) DeleteDish(ctx context.Context, id string) error {
	if err := s.client.DeleteDish(ctx, id); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.dishes = deleteByID(s.dishes, func(d Dish) bool { return d.ID == id })
	s.mu.Unlock()
	s.ok()
	return nil
}

// ReorderDishes applies a full reordered dish id sequence for one category:
// sort orders become index+1 in submission order. Optimistic like
// ReorderCategories.
func (s *Store) ReorderDishes(orderedIDs []string) {
	entries := ordering.Sequence(orderedIDs)

	s.mu.Lock()
	for _, e := range entries {
		for i := range s.dishes {
			if s.dishes[i].ID == e.ID {
				s.dishes[i].SortOrder = e.SortOrder
				break
			}
		}
	}
	s.mu.Unlock()

	s.persistReorder("products", entries, s.client.ReorderDishes)
}

// MoveDish moves a dish one position up or down within its category by
// swapping sort orders with its neighbor. Moving past either end of the
// list is a silent no-op.
func (s *Store) MoveDish(id string, dir Direction) {
	s.mu.Lock()

	var categoryID string
	for _, d := range s.dishes {
		if d.ID == id {
			categoryID = d.CategoryID
			break
		}
	}
	if categoryID == "" {
		s.mu.Unlock()
		return
	}

	var cohort []ordering.Entry
	for _, d := range s.dishes {
		if d.CategoryID == categoryID {
			cohort = append(cohort, ordering.Entry{ID: d.ID, SortOrder: d.SortOrder})
		}
	}

	moved, adjacent, ok := ordering.Swap(cohort, id, ordering.Direction(dir))
	if !ok {
		s.mu.Unlock()
		return
	}

	for i := range s.dishes {
		switch s.dishes[i].ID {
		case moved.ID:
			s.dishes[i].SortOrder = moved.SortOrder
		case adjacent.ID:
			s.dishes[i].SortOrder = adjacent.SortOrder
		}
	}
	s.mu.Unlock()

	s.persistReorder("products", []ordering.Entry{moved, adjacent}, s.client.ReorderDishes)
}

// persistReorder fires the reorder persistence call in the background. On
// failure the optimistic local order is kept; the failure is logged and
// recorded in the error state only.
func (s *Store) persistReorder(kind string, entries []ordering.Entry, call func(context.Context, []ordering.Entry) error) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := call(ctx, entries); err != nil {
			logging.LogKV("error", "reorder persistence failed", map[string]interface{}{
				"kind":  kind,
				"count": len(entries),
				"error": err.Error(),
			})
			s.fail(err)
			return
		}
		s.ok()
	}()
}

func deleteByID[T any](items []T, match func(T) bool) []T {
	out := items[:0]
	for _, item := range items {
		if !match(item) {
			out = append(out, item)
		}
	}
	return out
}
