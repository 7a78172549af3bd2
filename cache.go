package tableau

import (
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"tableau/formula"
	"tableau/model"
	"tableau/sign"
)

// cacheKey implements spec.md §4.7's "(system, canonical-form(formulas),
// query-kind)" cache key.
type cacheKey struct {
	system    sign.System
	canonical string
	queryKind string
}

func canonicalForm(formulas []formula.Formula) string {
	parts := make([]string, len(formulas))
	for i, f := range formulas {
		parts[i] = f.String()
	}
	sort.Strings(parts)
	return strings.Join(parts, "∧") // ∧, an arbitrary but stable separator
}

type cacheEntry struct {
	satisfiable bool
	models      []model.Model
	stats       Stats
}

// cacheType names the concrete LRU instantiation so facade.go can hold
// a pointer to it without repeating the generic parameters.
type cacheType = lru.Cache[cacheKey, cacheEntry]

func newCache(size int) *cacheType {
	if size <= 0 {
		size = 256
	}
	c, err := lru.New[cacheKey, cacheEntry](size)
	if err != nil {
		// Only returns an error for a non-positive size, already guarded
		// above; unreachable in practice.
		panic(err)
	}
	return c
}

// lookup reports a cached entry for (sys, formulas, queryKind), a
// no-op miss when caching is disabled (fc.cache is nil).
func (fc *Facade) lookup(sys sign.System, formulas []formula.Formula, queryKind string) (cacheEntry, bool) {
	if fc.cache == nil {
		return cacheEntry{}, false
	}
	key := cacheKey{system: sys, canonical: canonicalForm(formulas), queryKind: queryKind}
	return fc.cache.Get(key)
}

// store records a cache entry; a no-op when caching is disabled.
func (fc *Facade) store(sys sign.System, formulas []formula.Formula, queryKind string, entry cacheEntry) {
	if fc.cache == nil {
		return
	}
	key := cacheKey{system: sys, canonical: canonicalForm(formulas), queryKind: queryKind}
	fc.cache.Add(key, entry)
}
