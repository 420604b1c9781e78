package ingredient

import "github.com/appengine-ltd/bundle-forge/internal/item"

type highlightKey struct {
	it    *item.Item
	stack int
}

// HighlightCache memoises "can this item be used here" answers between slot changes
// so the scan can run every frame.
type HighlightCache struct {
	memo map[highlightKey]bool
}

func (c *HighlightCache) Invalidate() {
	c.memo = nil
}

func (c *HighlightCache) Eligible(it *item.Item, compute func(*item.Item) bool) bool {
	if it == nil || compute == nil {
		return false
	}
	if c.memo == nil {
		c.memo = make(map[highlightKey]bool)
	}
	key := highlightKey{it: it, stack: it.Stack}
	if v, ok := c.memo[key]; ok {
		return v
	}
	v := compute(it)
	c.memo[key] = v
	return v
}

func (c *HighlightCache) Len() int {
	return len(c.memo)
}
