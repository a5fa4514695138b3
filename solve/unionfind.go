package solve

/*

Union-find with rollback

The loop family tracks the connected components of the drawn edges
incrementally: accepting an edge unions its endpoints, backtracking
must undo that union.  Union by rank without path compression keeps
every mutation a single parent or rank write, so an undo log of
those writes makes rollback exact.

*/

type ufChange struct {
	root    int // the root that gained a parent
	oldRank int // rank of the surviving root before the union
}

// A UnionFind is a disjoint-set forest over elements 0..n-1 whose
// unions can be rolled back in LIFO order.
type UnionFind struct {
	parent []int
	rank   []int
	log    []ufChange
}

// NewUnionFind makes a forest of n singleton sets.
func NewUnionFind(n int) *UnionFind {
	u := &UnionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range u.parent {
		u.parent[i] = i
	}
	return u
}

// Find returns the representative of x's set.  No path compression:
// compressed paths could not be uncompressed on rollback.
func (u *UnionFind) Find(x int) int {
	for u.parent[x] != x {
		x = u.parent[x]
	}
	return x
}

// Same reports whether a and b are in one set.
func (u *UnionFind) Same(a, b int) bool {
	return u.Find(a) == u.Find(b)
}

// Union merges the sets of a and b, reporting whether a merge
// happened (false means they were already together, which for the
// loop family means the edge would close a cycle).
func (u *UnionFind) Union(a, b int) bool {
	ra, rb := u.Find(a), u.Find(b)
	if ra == rb {
		return false
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.log = append(u.log, ufChange{root: rb, oldRank: u.rank[ra]})
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
	return true
}

// Mark returns a position in the undo log for a later Rollback.
func (u *UnionFind) Mark() int {
	return len(u.log)
}

// Rollback undoes every union made since the matching Mark.
func (u *UnionFind) Rollback(mark int) {
	for len(u.log) > mark {
		ch := u.log[len(u.log)-1]
		u.log = u.log[:len(u.log)-1]
		ra := u.parent[ch.root]
		u.parent[ch.root] = ch.root
		u.rank[ra] = ch.oldRank
	}
}
