package btree

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"
)

// scenario: a scaled-down version of a large sequential load (the
// original exercises ten million keys; CI runs twenty thousand).
func TestScenarioSequentialLoad(t *testing.T) {
	const n = 20000
	tr := New()
	defer tr.Close()

	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("seq-%08d", i))
		if err := tr.Insert(key, []byte(fmt.Sprintf("v%d", i))); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	entries := tr.All()
	if len(entries) != n {
		t.Fatalf("got %d entries, want %d", len(entries), n)
	}
	for i := 1; i < len(entries); i++ {
		if byteCompare(entries[i-1].Key, entries[i].Key) >= 0 {
			t.Fatalf("entries not strictly sorted at %d: %q >= %q", i, entries[i-1].Key, entries[i].Key)
		}
	}
}

// scenario: random insert order must still produce a sorted tree and
// every key must be independently retrievable.
func TestScenarioRandomLoad(t *testing.T) {
	const n = 10000
	rng := rand.New(rand.NewSource(1))
	perm := rng.Perm(n)

	tr := New()
	defer tr.Close()
	for _, i := range perm {
		key := []byte(fmt.Sprintf("rnd-%08d", i))
		if err := tr.Insert(key, []byte{byte(i), byte(i >> 8)}); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("rnd-%08d", i))
		got, found := tr.Lookup(key)
		if !found {
			t.Fatalf("key %d missing", i)
		}
		if got[0] != byte(i) || got[1] != byte(i>>8) {
			t.Fatalf("key %d: wrong payload %v", i, got)
		}
	}
}

// scenario: interleaved insert/remove/insert on overlapping key ranges
// exercises both split and merge propagation in the same run.
func TestScenarioInterleavedInsertRemove(t *testing.T) {
	const n = 8000
	tr := New()
	defer tr.Close()

	present := make(map[int]bool)
	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("io-%08d", i))
		tr.Insert(key, []byte("v"))
		present[i] = true
		if i%3 == 0 && i > 0 {
			victim := i - 1
			if present[victim] {
				key := []byte(fmt.Sprintf("io-%08d", victim))
				if err := tr.Remove(key); err != nil {
					t.Fatalf("remove %d: %v", victim, err)
				}
				present[victim] = false
			}
		}
	}
	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("io-%08d", i))
		_, found := tr.Lookup(key)
		if found != present[i] {
			t.Fatalf("key %d: found=%v want=%v", i, found, present[i])
		}
	}
}

// scenario: keys that share very long common prefixes must still split
// and compare correctly once the head digest alone can't distinguish
// them.
func TestScenarioLongSharedPrefix(t *testing.T) {
	const n = 3000
	tr := New()
	defer tr.Close()
	prefix := bytes.Repeat([]byte("p"), 200)
	for i := 0; i < n; i++ {
		key := append(append([]byte(nil), prefix...), []byte(fmt.Sprintf("-%06d", i))...)
		if err := tr.Insert(key, []byte("v")); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	for i := 0; i < n; i++ {
		key := append(append([]byte(nil), prefix...), []byte(fmt.Sprintf("-%06d", i))...)
		if _, found := tr.Lookup(key); !found {
			t.Fatalf("key %d missing", i)
		}
	}
}

// scenario: variable-length payloads, including large ones near the
// quarter-page limit, force repeated compaction.
func TestScenarioVariablePayloadSizes(t *testing.T) {
	tr := New()
	defer tr.Close()
	sizes := []int{1, 7, 64, 255, 900, 1000}
	for i, sz := range sizes {
		for j := 0; j < 200; j++ {
			key := []byte(fmt.Sprintf("vp-%d-%05d", i, j))
			val := bytes.Repeat([]byte{byte(sz)}, sz)
			if err := tr.Insert(key, val); err != nil {
				t.Fatalf("insert size=%d j=%d: %v", sz, j, err)
			}
		}
	}
	for i, sz := range sizes {
		for j := 0; j < 200; j++ {
			key := []byte(fmt.Sprintf("vp-%d-%05d", i, j))
			got, found := tr.Lookup(key)
			if !found || len(got) != sz {
				t.Fatalf("size=%d j=%d: found=%v len=%d", sz, j, found, len(got))
			}
		}
	}
}

// scenario: repeatedly overwriting the same small set of keys with
// growing and shrinking payloads exercises compaction and the
// overwrite-in-place path without ever touching split/merge.
func TestScenarioRepeatedOverwrite(t *testing.T) {
	tr := New()
	defer tr.Close()
	keys := [][]byte{[]byte("alpha"), []byte("beta"), []byte("gamma")}
	for round := 0; round < 500; round++ {
		for _, k := range keys {
			sz := (round%7 + 1) * 3
			val := bytes.Repeat([]byte("z"), sz)
			if err := tr.Insert(k, val); err != nil {
				t.Fatalf("round %d key %s: %v", round, k, err)
			}
		}
	}
	for _, k := range keys {
		if _, found := tr.Lookup(k); !found {
			t.Fatalf("key %s missing after repeated overwrite", k)
		}
	}
}
