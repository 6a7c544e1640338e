// Package store implements the persistent environment map: an immutable
// Hash Array Mapped Trie (HAMT) from integer keys to arbitrary handles.
// Nodes are never mutated after construction; Set returns a new Map that
// shares every subtrie untouched by the update with its parent, which is
// what makes the RKNL machine's environment extension cheap.
//
// The trie layout follows the classic HAMT design: 5-bit hash partitions
// (32-way branching), a node holding two disjoint bitmaps (elementMap for
// slots that hold a key/value pair, branchMap for slots that hold a child
// subtrie) plus popcount-indexed backing slices, and collision nodes once
// the 32-bit hash is exhausted. Go generics let the same trie serve any
// value type instead of the void* handles the design is usually sketched
// with.
package store

import "math/bits"

const (
	partitionBits = 5
	partitionSize = 1 << partitionBits // 32
	partitionMask = partitionSize - 1
	maxShift      = 30 // shifts 0..30: 6 levels of 5 bits plus a 7th on the top 2 bits; an 8th level is a collision node
)

type entry[V any] struct {
	key   int
	value V
}

// node is both the ordinary trie node and, when collision is set, a flat
// list of entries sharing a fully-exhausted hash. The two are distinguished
// by a single flag rather than a separate Go type so that code walking the
// trie (Equals, Iterate, destruction-by-GC) dispatches on one shape.
type node[V any] struct {
	collision  bool
	elementMap uint32
	branchMap  uint32
	elems      []entry[V]
	kids       []*node[V]
}

// Map is an immutable mapping from int keys to values of type V. The zero
// value is the empty map, which is what Empty returns.
type Map[V any] struct {
	root   *node[V]
	length int
}

// Empty returns the empty map. A nil *node[V] root is the distinguished
// empty node: every Empty() call is O(1) and Set on it produces a fresh
// single-entry node, exactly as the design calls for, without needing a
// shared global (Go has no natural home for a single generic constant
// shared across every V instantiation, and a nil root costs nothing extra).
func Empty[V any]() *Map[V] {
	return &Map[V]{}
}

// Length returns the number of entries in m.
func (m *Map[V]) Length() int {
	if m == nil {
		return 0
	}
	return m.length
}

// Get returns the value bound to key, and whether it was found.
func (m *Map[V]) Get(key int) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}
	return getNode(m.root, hashKey(key), key, 0)
}

func getNode[V any](n *node[V], hash uint32, key int, shift uint) (V, bool) {
	var zero V
	if n == nil {
		return zero, false
	}
	if n.collision {
		for _, e := range n.elems {
			if e.key == key {
				return e.value, true
			}
		}
		return zero, false
	}
	bit := bitAt(hash, shift)
	if n.elementMap&bit != 0 {
		e := n.elems[popIndex(n.elementMap, bit)]
		if e.key == key {
			return e.value, true
		}
		return zero, false
	}
	if n.branchMap&bit != 0 {
		return getNode(n.kids[popIndex(n.branchMap, bit)], hash, key, shift+partitionBits)
	}
	return zero, false
}

// Set returns a new map derived from m with key bound to value. m is left
// untouched.
func (m *Map[V]) Set(key int, value V) *Map[V] {
	var root *node[V]
	length := 0
	if m != nil {
		root = m.root
		length = m.length
	}
	newRoot, grew := setNode(root, hashKey(key), key, value, 0)
	if grew {
		length++
	}
	return &Map[V]{root: newRoot, length: length}
}

func setNode[V any](n *node[V], hash uint32, key int, value V, shift uint) (*node[V], bool) {
	if n == nil {
		return &node[V]{
			elementMap: bitAt(hash, shift),
			elems:      []entry[V]{{key: key, value: value}},
		}, true
	}

	if n.collision {
		for i, e := range n.elems {
			if e.key == key {
				elems := append([]entry[V](nil), n.elems...)
				elems[i] = entry[V]{key: key, value: value}
				return &node[V]{collision: true, elems: elems}, false
			}
		}
		elems := append(append([]entry[V](nil), n.elems...), entry[V]{key: key, value: value})
		return &node[V]{collision: true, elems: elems}, true
	}

	bit := bitAt(hash, shift)

	if n.elementMap&bit != 0 {
		pos := popIndex(n.elementMap, bit)
		existing := n.elems[pos]
		if existing.key == key {
			elems := append([]entry[V](nil), n.elems...)
			elems[pos] = entry[V]{key: key, value: value}
			return cloneNode(n, n.elementMap, n.branchMap, elems, n.kids), false
		}
		// Same partition, different key: push both one level deeper until
		// their hashes diverge (or collapse into a collision node once the
		// hash is exhausted).
		child := mergeIntoChild(existing, hashKey(existing.key), key, value, hash, shift+partitionBits)

		newElementMap := n.elementMap &^ bit
		newBranchMap := n.branchMap | bit
		elems := removeAt(n.elems, pos)
		kidPos := popIndex(newBranchMap, bit)
		kids := insertAt(n.kids, kidPos, child)
		return cloneNode(n, newElementMap, newBranchMap, elems, kids), true
	}

	if n.branchMap&bit != 0 {
		pos := popIndex(n.branchMap, bit)
		newChild, grew := setNode(n.kids[pos], hash, key, value, shift+partitionBits)
		kids := append([]*node[V](nil), n.kids...)
		kids[pos] = newChild
		return cloneNode(n, n.elementMap, n.branchMap, n.elems, kids), grew
	}

	pos := popIndex(n.elementMap, bit)
	elems := insertAt(n.elems, pos, entry[V]{key: key, value: value})
	return cloneNode(n, n.elementMap|bit, n.branchMap, elems, n.kids), true
}

// mergeIntoChild builds the subtrie holding both the existing (key, value)
// pair at (existingHash, existingKey) and the newly inserted one, starting
// at shift. Once shift exceeds the depth the 32-bit hash can address, the
// two collide for good and we build a collision node instead.
func mergeIntoChild[V any](existing entry[V], existingHash uint32, newKey int, newValue V, newHash uint32, shift uint) *node[V] {
	if shift > maxShift {
		return &node[V]{collision: true, elems: []entry[V]{existing, {key: newKey, value: newValue}}}
	}
	n, _ := setNode[V](nil, existingHash, existing.key, existing.value, shift)
	n, _ = setNode(n, newHash, newKey, newValue, shift)
	return n
}

func cloneNode[V any](old *node[V], elementMap, branchMap uint32, elems []entry[V], kids []*node[V]) *node[V] {
	return &node[V]{elementMap: elementMap, branchMap: branchMap, elems: elems, kids: kids}
}

// Equals reports whether m and other hold the same key/value pairs,
// comparing values with eq. Collision nodes are compared as unordered
// multisets, per the design (their entries share no canonical order).
func (m *Map[V]) Equals(other *Map[V], eq func(a, b V) bool) bool {
	if m.Length() != other.Length() {
		return false
	}
	var a, b *node[V]
	if m != nil {
		a = m.root
	}
	if other != nil {
		b = other.root
	}
	return nodesEqual(a, b, eq)
}

func nodesEqual[V any](a, b *node[V], eq func(a, b V) bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.collision != b.collision {
		return false
	}
	if a.collision {
		if len(a.elems) != len(b.elems) {
			return false
		}
		used := make([]bool, len(b.elems))
		for _, ea := range a.elems {
			found := false
			for j, eb := range b.elems {
				if !used[j] && ea.key == eb.key && eq(ea.value, eb.value) {
					used[j] = true
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
	if a.elementMap != b.elementMap || a.branchMap != b.branchMap {
		return false
	}
	for i := range a.elems {
		if a.elems[i].key != b.elems[i].key || !eq(a.elems[i].value, b.elems[i].value) {
			return false
		}
	}
	for i := range a.kids {
		if !nodesEqual(a.kids[i], b.kids[i], eq) {
			return false
		}
	}
	return true
}

func bitAt(hash uint32, shift uint) uint32 {
	return 1 << ((hash >> shift) & partitionMask)
}

func popIndex(bitmap, bit uint32) int {
	return bits.OnesCount32(bitmap & (bit - 1))
}

func removeAt[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	out = append(out, s[i+1:]...)
	return out
}

func insertAt[T any](s []T, i int, v T) []T {
	out := make([]T, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, v)
	out = append(out, s[i:]...)
	return out
}

// hashKey mixes key (a de Bruijn index or unique binder name - a small,
// often-sequential int) into a well-distributed 32-bit hash so that
// sequential keys don't all land in the trie's first few slots.
func hashKey(key int) uint32 {
	x := uint64(uint32(key))
	x = (x ^ (x >> 16)) * 0x45d9f3b
	x = (x ^ (x >> 16)) * 0x45d9f3b
	x = x ^ (x >> 16)
	return uint32(x)
}
