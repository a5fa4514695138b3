package solve

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vmihailenco/msgpack/v5"

	"gridbot/puzzle"
)

/*

Dead-state memo

Different guess orders can reach the same board, and a board proven
unsolvable once stays unsolvable.  The memo remembers boards whose
every extension failed, keyed by a canonical encoding of the grid
values.  A bounded LRU keeps the memory footprint flat on long runs;
evicting an old entry only costs re-deriving a refutation.

*/

type deadCache struct {
	lru *lru.Cache[string, struct{}]
}

// newDeadCache makes a memo holding up to size board snapshots.
func newDeadCache(size int) (*deadCache, error) {
	c, err := lru.New[string, struct{}](size)
	if err != nil {
		return nil, err
	}
	return &deadCache{lru: c}, nil
}

// boardKey is the canonical msgpack image of a grid's values.  The
// dimensions ride along so grids of different shapes never collide.
type boardKey struct {
	H int   `msgpack:"h"`
	W int   `msgpack:"w"`
	V []int `msgpack:"v"`
}

func encodeBoard(g *puzzle.Grid) (string, bool) {
	raw, err := msgpack.Marshal(boardKey{H: g.Height, W: g.Width, V: g.Flat()})
	if err != nil {
		return "", false
	}
	return string(raw), true
}

// dead reports whether this exact board was proven unsolvable
// before.  A nil memo (memoing disabled) never matches.
func (d *deadCache) dead(g *puzzle.Grid) bool {
	if d == nil {
		return false
	}
	key, ok := encodeBoard(g)
	if !ok {
		return false
	}
	_, hit := d.lru.Get(key)
	return hit
}

// mark records a board as proven unsolvable.
func (d *deadCache) mark(g *puzzle.Grid) {
	if d == nil {
		return
	}
	if key, ok := encodeBoard(g); ok {
		d.lru.Add(key, struct{}{})
	}
}

// Len reports how many dead boards the memo currently holds.
func (d *deadCache) Len() int {
	if d == nil {
		return 0
	}
	return d.lru.Len()
}
