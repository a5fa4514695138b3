package solve

import (
	"testing"
)

func TestUnionFindBasics(t *testing.T) {
	u := NewUnionFind(6)
	for i := 0; i < 6; i++ {
		if got := u.Find(i); got != i {
			t.Errorf("fresh element %d has root %d", i, got)
		}
	}
	if !u.Union(0, 1) || !u.Union(2, 3) {
		t.Fatal("disjoint unions reported as merges of one set")
	}
	if u.Same(0, 2) {
		t.Error("separate sets reported as one")
	}
	if !u.Union(1, 2) {
		t.Fatal("joining the two sets failed")
	}
	if !u.Same(0, 3) {
		t.Error("transitive membership lost")
	}
}

func TestUnionFindDetectsCycle(t *testing.T) {
	// the four corners of a square: three sides union fine, the
	// fourth closes a cycle and must report it
	u := NewUnionFind(4)
	edges := [][2]int{{0, 1}, {1, 2}, {2, 3}}
	for _, e := range edges {
		if !u.Union(e[0], e[1]) {
			t.Fatalf("edge %v closed a cycle prematurely", e)
		}
	}
	if u.Union(3, 0) {
		t.Error("the closing edge was not detected as a cycle")
	}
}

func TestUnionFindRollback(t *testing.T) {
	u := NewUnionFind(5)
	u.Union(0, 1)
	mark := u.Mark()
	u.Union(1, 2)
	u.Union(3, 4)
	if !u.Same(0, 2) || !u.Same(3, 4) {
		t.Fatal("unions after the mark did not take")
	}
	u.Rollback(mark)
	if u.Same(0, 2) {
		t.Error("rollback kept a union made after the mark")
	}
	if u.Same(3, 4) {
		t.Error("rollback kept a second union made after the mark")
	}
	if !u.Same(0, 1) {
		t.Error("rollback undid a union made before the mark")
	}
	// the forest must be reusable after rollback
	if !u.Union(1, 2) || !u.Same(0, 2) {
		t.Error("union after rollback failed")
	}
}

func TestUnionFindNestedRollback(t *testing.T) {
	u := NewUnionFind(8)
	outer := u.Mark()
	u.Union(0, 1)
	inner := u.Mark()
	u.Union(2, 3)
	u.Union(1, 3)
	u.Rollback(inner)
	if u.Same(2, 3) || u.Same(0, 3) {
		t.Error("inner rollback incomplete")
	}
	if !u.Same(0, 1) {
		t.Error("inner rollback went too far")
	}
	u.Rollback(outer)
	if u.Same(0, 1) {
		t.Error("outer rollback incomplete")
	}
}
