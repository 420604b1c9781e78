// Package ingredient matches player items against bundle ingredient requirements.
package ingredient

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/appengine-ltd/bundle-forge/internal/item"
)

// CategoryMoney marks a purchase slot: Stack is a currency amount, not an item count.
const CategoryMoney = -1

// Requirement is what one bundle slot asks for. Exactly one of ID or Category is
// set; categories are negative so a zero Category means unset.
type Requirement struct {
	ID          string `json:"id,omitempty"`
	Category    int    `json:"category,omitempty"`
	PreservesID string `json:"preserves_id,omitempty"`
	Stack       int    `json:"stack"`
	Quality     int    `json:"quality,omitempty"`
}

// Parse reads a raw ingredient id. Negative integers are categories.
func Parse(raw string, stack, quality int) Requirement {
	raw = strings.TrimSpace(raw)
	r := Requirement{Stack: stack, Quality: quality}
	if n, err := strconv.Atoi(raw); err == nil && n < 0 {
		r.Category = n
		return r
	}
	r.ID = raw
	return r
}

// WithPreserve returns a copy that only accepts flavored variants of preservesID.
func (r Requirement) WithPreserve(preservesID string) Requirement {
	r.PreservesID = strings.TrimSpace(preservesID)
	return r
}

func (r Requirement) IsCategory() bool { return r.Category != 0 }
func (r Requirement) IsMoney() bool    { return r.Category == CategoryMoney }

func (r Requirement) Validate() error {
	hasID := strings.TrimSpace(r.ID) != ""
	if hasID == r.IsCategory() {
		return fmt.Errorf("ingredient must set exactly one of id or category (id=%q category=%d)", r.ID, r.Category)
	}
	if r.Category > 0 {
		return fmt.Errorf("ingredient category must be negative, got %d", r.Category)
	}
	if r.Stack < 1 {
		return fmt.Errorf("ingredient stack must be positive, got %d", r.Stack)
	}
	if r.Quality < 0 {
		return fmt.Errorf("ingredient quality must not be negative, got %d", r.Quality)
	}
	return nil
}

func (r Requirement) String() string {
	switch {
	case r.IsMoney():
		return fmt.Sprintf("%dg", r.Stack)
	case r.IsCategory():
		return fmt.Sprintf("category %d x%d q%d", r.Category, r.Stack, r.Quality)
	case r.PreservesID != "":
		return fmt.Sprintf("%s(%s) x%d q%d", r.ID, r.PreservesID, r.Stack, r.Quality)
	default:
		return fmt.Sprintf("%s x%d q%d", r.ID, r.Stack, r.Quality)
	}
}

// Matches reports whether candidate satisfies req's identity and quality. Stack size
// is not considered; partial stacks are handled by the contribution ledger.
func Matches(req Requirement, candidate *item.Item) bool {
	if candidate == nil || candidate.Quality < req.Quality {
		return false
	}
	if req.PreservesID != "" {
		return candidate.PreservedParentID != "" &&
			item.SameID(candidate.ID, req.ID) &&
			item.SameID(candidate.PreservedParentID, req.PreservesID)
	}
	if req.IsCategory() {
		if req.IsMoney() {
			return false
		}
		return candidate.Category == req.Category
	}
	if item.IsCategoryID(candidate.ID) {
		return false
	}
	return candidate.HasID(req.ID)
}

// FirstMatch returns the index of the first requirement candidate satisfies,
// ignoring indexes for which skip returns true. -1 when none.
func FirstMatch(reqs []Requirement, candidate *item.Item, skip func(i int) bool) int {
	for i, req := range reqs {
		if skip != nil && skip(i) {
			continue
		}
		if Matches(req, candidate) {
			return i
		}
	}
	return -1
}
