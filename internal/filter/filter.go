// Package filter narrows small in-memory collections by category and free text.
//
// A Filter holds the selected category and query for one collection and
// recomputes the visible subset on demand. Order is always preserved from
// the source collection.
package filter

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
)

// All is the sentinel category that matches every item.
const All = "all"

// ErrUnknownCategory is returned when selecting a category that no item carries.
var ErrUnknownCategory = errors.New("unknown category")

// Item is anything that can be filtered.
type Item interface {
	FilterTitle() string
	FilterCategory() string
	FilterDescription() string
	FilterTags() []string
}

// State is the user-controlled filter input.
type State struct {
	ActiveCategory string `json:"active_category"`
	Query          string `json:"query"`
}

// DefaultState selects every item.
func DefaultState() State {
	return State{ActiveCategory: All}
}

// Result is the visible subset for a state.
type Result[T Item] struct {
	Items []T
	State State
	Total int
	// Empty is set when nothing matched; callers render a "no results" notice.
	Empty bool
}

// Filter is the category/search state machine for one collection.
type Filter[T Item] struct {
	items      []T
	categories []string
	state      State
}

// New creates a Filter over items. The slice is not copied; callers must not
// mutate it afterwards.
func New[T Item](items []T) *Filter[T] {
	return &Filter[T]{
		items:      items,
		categories: Categories(items),
		state:      DefaultState(),
	}
}

// State returns the current filter state.
func (f *Filter[T]) State() State { return f.state }

// Categories returns All followed by the distinct categories in first-seen order.
func (f *Filter[T]) Categories() []string {
	return append([]string(nil), f.categories...)
}

// SelectCategory makes category active. Matching is case-insensitive and the
// stored value is the collection's own spelling. Selecting an unknown
// category leaves the state untouched.
func (f *Filter[T]) SelectCategory(category string) error {
	c, ok := resolve(f.categories, category)
	if !ok {
		return ErrUnknownCategory
	}
	f.state.ActiveCategory = c
	return nil
}

// resolve finds category in categories. An exact match wins over a
// case-insensitive one, so categories differing only by case stay distinct.
func resolve(categories []string, category string) (string, bool) {
	category = strings.TrimSpace(category)
	for _, c := range categories {
		if c == category {
			return c, true
		}
	}
	for _, c := range categories {
		if strings.EqualFold(c, category) {
			return c, true
		}
	}
	return "", false
}

// SetQuery sets the free-text query.
func (f *Filter[T]) SetQuery(q string) {
	f.state.Query = strings.TrimSpace(q)
}

// ClearQuery restores the category-only view.
func (f *Filter[T]) ClearQuery() {
	f.state.Query = ""
}

// Reset returns to the default state.
func (f *Filter[T]) Reset() {
	f.state = DefaultState()
}

// Apply sets both category and query. On an unknown category nothing changes.
func (f *Filter[T]) Apply(s State) error {
	cat := s.ActiveCategory
	if cat == "" {
		cat = All
	}
	if err := f.SelectCategory(cat); err != nil {
		return err
	}
	f.SetQuery(s.Query)
	return nil
}

// Visible computes the visible subset for the current state.
func (f *Filter[T]) Visible() Result[T] {
	items := Apply(f.items, f.state)
	return Result[T]{
		Items: items,
		State: f.state,
		Total: len(f.items),
		Empty: len(items) == 0,
	}
}

// Counts returns the number of items per category, including All.
func (f *Filter[T]) Counts() map[string]int {
	counts := map[string]int{All: len(f.items)}
	for _, it := range f.items {
		counts[it.FilterCategory()]++
	}
	return counts
}

// Categories lists All followed by the distinct categories of items in
// first-seen order.
func Categories[T Item](items []T) []string {
	out := []string{All}
	seen := map[string]bool{All: true}
	for _, it := range items {
		c := it.FilterCategory()
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Apply returns the stable subsequence of items matching s as a new slice.
// The category is resolved the same way SelectCategory resolves it; an
// unknown category matches nothing.
func Apply[T Item](items []T, s State) []T {
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(s.Query))
	category := All
	if strings.TrimSpace(s.ActiveCategory) != "" {
		c, ok := resolve(Categories(items), s.ActiveCategory)
		if !ok {
			return []T{}
		}
		category = c
	}

	out := make([]T, 0, len(items))
	for _, it := range items {
		if category != All && it.FilterCategory() != category {
			continue
		}
		if query != "" && !matches(fold, it, query) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matches(fold cases.Caser, it Item, query string) bool {
	if strings.Contains(fold.String(it.FilterTitle()), query) {
		return true
	}
	if strings.Contains(fold.String(it.FilterDescription()), query) {
		return true
	}
	for _, tag := range it.FilterTags() {
		if strings.Contains(fold.String(tag), query) {
			return true
		}
	}
	return false
}
