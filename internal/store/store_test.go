package store_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blclang/rknl/internal/store"
)

func intEq(a, b int) bool { return a == b }

func TestGetAfterSet(t *testing.T) {
	m := store.Empty[int]()
	m2 := m.Set(5, 42)
	v, ok := m2.Get(5)
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = m.Get(5)
	assert.False(t, ok, "original map must be untouched by Set")
}

func TestSetExistingKeyDoesNotIncreaseLength(t *testing.T) {
	m := store.Empty[int]().Set(1, 10)
	before := m.Length()
	m2 := m.Set(1, 20)
	assert.Equal(t, before, m2.Length())
	v, _ := m2.Get(1)
	assert.Equal(t, 20, v)
}

func TestSetOrderIndependence(t *testing.T) {
	keys := make([]int, 200)
	for i := range keys {
		keys[i] = i * 7
	}

	build := func(order []int) *store.Map[int] {
		m := store.Empty[int]()
		for _, k := range order {
			m = m.Set(k, k*2)
		}
		return m
	}

	m1 := build(keys)

	shuffled := append([]int(nil), keys...)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	m2 := build(shuffled)

	assert.True(t, m1.Equals(m2, intEq))
	assert.Equal(t, m1.Length(), m2.Length())
}

func TestIterateVisitsEveryEntry(t *testing.T) {
	m := store.Empty[int]()
	want := map[int]int{}
	for i := 0; i < 500; i++ {
		m = m.Set(i, i*i)
		want[i] = i * i
	}

	got := map[int]int{}
	it := m.Iterate()
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		got[k] = v
	}
	assert.Equal(t, want, got)
}

func TestEqualsDetectsDifference(t *testing.T) {
	a := store.Empty[int]().Set(1, 1).Set(2, 2)
	b := store.Empty[int]().Set(1, 1).Set(2, 3)
	assert.False(t, a.Equals(b, intEq))

	c := store.Empty[int]().Set(1, 1)
	assert.False(t, a.Equals(c, intEq))
}

func TestEmptyMapGet(t *testing.T) {
	m := store.Empty[int]()
	_, ok := m.Get(0)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Length())
}

// TestSequentialKeysRetrievable inserts a run of small sequential keys
// through the public Set/Get API. Real hashKey outputs essentially never
// collide within a test-sized key set, so this does not reach the
// collision-node path; it checks that keys sharing hash partitions at some
// depth (and so pushed into subtries) all stay retrievable.
func TestSequentialKeysRetrievable(t *testing.T) {
	m := store.Empty[int]()
	// The structural property under test is that every inserted key is
	// still retrievable and the length counts each key once.
	keys := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	for _, k := range keys {
		m = m.Set(k, k+1000)
	}
	for _, k := range keys {
		v, ok := m.Get(k)
		require.True(t, ok)
		assert.Equal(t, k+1000, v)
	}
	assert.Equal(t, len(keys), m.Length())
}
