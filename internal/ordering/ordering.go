// Package ordering implements the sort-order arithmetic shared by the
// category list and the per-category dish lists: append-to-end, adjacent
// swaps for move up/down, and full-sequence reassignment for drag-and-drop.
package ordering

import "sort"

// Entry pairs an entity id with its current sort position.
type Entry struct {
	ID        string
	SortOrder int
}

// Direction of a move-by-one operation.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Next returns the sort order for an entry appended to the end of the list:
// one past the current maximum, 1 for an empty list.
func Next(entries []Entry) int {
	max := 0
	for _, e := range entries {
		if e.SortOrder > max {
			max = e.SortOrder
		}
	}
	return max + 1
}

// Sorted returns a copy of entries in display order: ascending sort order,
// original position as tie-break so duplicate sort orders degrade to
// insertion order.
func Sorted(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}

// Swap plans a move-by-one for the entry with the given id. It returns the
// two affected entries with their sort orders exchanged. ok is false when
// the id is absent or the move would leave the list bounds; callers treat
// that as a silent no-op.
func Swap(entries []Entry, id string, dir Direction) (moved, adjacent Entry, ok bool) {
	sorted := Sorted(entries)

	idx := -1
	for i, e := range sorted {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Entry{}, Entry{}, false
	}

	target := idx + 1
	if dir == Up {
		target = idx - 1
	}
	if target < 0 || target >= len(sorted) {
		return Entry{}, Entry{}, false
	}

	moved = Entry{ID: sorted[idx].ID, SortOrder: sorted[target].SortOrder}
	adjacent = Entry{ID: sorted[target].ID, SortOrder: sorted[idx].SortOrder}
	return moved, adjacent, true
}

// Sequence assigns sort orders from submission order: index+1 for each id.
// Resubmitting the same order yields the same result.
func Sequence(ids []string) []Entry {
	entries := make([]Entry, len(ids))
	for i, id := range ids {
		entries[i] = Entry{ID: id, SortOrder: i + 1}
	}
	return entries
}
