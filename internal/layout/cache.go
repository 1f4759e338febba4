package layout

import lltypes "github.com/llir/llvm/ir/types"

type cacheEntry struct {
	Layout TypeLayout
	Err    *LayoutError
}

type cache struct {
	byType map[lltypes.Type]cacheEntry
}

func newCache() *cache {
	return &cache{byType: make(map[lltypes.Type]cacheEntry, 256)}
}

func (c *cache) get(t lltypes.Type) (cacheEntry, bool) {
	if c == nil {
		return cacheEntry{}, false
	}
	l, ok := c.byType[t]
	return l, ok
}

func (c *cache) put(t lltypes.Type, l *cacheEntry) {
	if c == nil {
		return
	}
	if l == nil {
		delete(c.byType, t)
		return
	}
	c.byType[t] = *l
}
