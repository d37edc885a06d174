package lang

import (
	"io"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parsed trees keyed by source hash. Caching parsed
// expressions is sound because trees are immutable after construction and
// structurally value-equal, so sharing one tree across callers is
// indistinguishable from reparsing.
//
//nolint:gochecknoglobals
var globalCache sync.Map

// cacheEntry pins the full source alongside the tree to rule out hash
// collisions serving the wrong expression.
type cacheEntry struct {
	source string
	expr   Expr
}

// ParseCached parses source, memoizing successful parses process-wide.
// Failed parses are not cached. Template compilers evaluate the same
// attribute directive once per expansion site, so repeated sources are the
// common case.
func ParseCached(source string) (Expr, error) {
	key := xxh3.HashString(source)

	if v, ok := globalCache.Load(key); ok {
		entry := v.(cacheEntry)
		if entry.source == source {
			return entry.expr, nil
		}
	}

	e, err := Parse(source)
	if err != nil {
		return nil, err
	}

	globalCache.Store(key, cacheEntry{source: source, expr: e})

	return e, nil
}

// ResetCache drops every memoized parse. Intended for tests and long-lived
// processes that recompile templates.
func ResetCache() {
	globalCache.Clear()
}

// ParseReader parses an expression read in full from r.
// The reader is wrapped with async read-ahead so data is pre-fetched while
// earlier chunks are consumed.
func ParseReader(r io.Reader) (Expr, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return ParseCached(string(data))
}
